package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/satishbabariya/migconvert/internal/core/migration/ledger"
)

// ErrInterrupted is returned when the operator aborts a prompt.
var ErrInterrupted = errors.New("prompt interrupted")

// SurveyConfirmer asks yes/no questions on the terminal. Unanswered
// questions default to no.
type SurveyConfirmer struct {
	opts []survey.AskOpt
}

// NewSurveyConfirmer creates a terminal confirmer.
func NewSurveyConfirmer(opts ...survey.AskOpt) *SurveyConfirmer {
	return &SurveyConfirmer{opts: opts}
}

// Confirm implements ledger.Confirmer.
func (c *SurveyConfirmer) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	ok := false
	prompt := &survey.Confirm{
		Message: question,
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok, c.opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, ErrInterrupted
		}
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	return ok, nil
}

// Ensure SurveyConfirmer implements Confirmer interface.
var _ ledger.Confirmer = (*SurveyConfirmer)(nil)
