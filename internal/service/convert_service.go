// Package service implements application services (use cases).
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
	"github.com/satishbabariya/migconvert/internal/core/migration/filter"
	"github.com/satishbabariya/migconvert/internal/core/migration/ledger"
	"github.com/satishbabariya/migconvert/internal/core/migration/mapper"
	"github.com/satishbabariya/migconvert/internal/core/migration/scanner"
	"github.com/satishbabariya/migconvert/internal/core/migration/synthesizer"
	"github.com/satishbabariya/migconvert/internal/debug"
	"github.com/satishbabariya/migconvert/internal/repository"
)

// ConvertService orchestrates the conversion of live tables into migrations.
type ConvertService struct {
	schema       domain.SchemaReader
	sourceRepo   repository.SourceRepository
	historyRepo  repository.HistoryRepository
	manifestRepo repository.ManifestRepository
	synthesizer  *synthesizer.Synthesizer
	reconciler   *ledger.Reconciler
	historyTable string
}

// NewConvertService creates a new convert service.
func NewConvertService(
	schema domain.SchemaReader,
	sourceRepo repository.SourceRepository,
	historyRepo repository.HistoryRepository,
	manifestRepo repository.ManifestRepository,
	synth *synthesizer.Synthesizer,
	historyTable string,
) *ConvertService {
	if historyTable == "" {
		historyTable = repository.DefaultHistoryTable
	}
	return &ConvertService{
		schema:       schema,
		sourceRepo:   sourceRepo,
		historyRepo:  historyRepo,
		manifestRepo: manifestRepo,
		synthesizer:  synth,
		reconciler:   ledger.NewReconciler(historyRepo),
		historyTable: historyTable,
	}
}

// ConvertInput represents input for a conversion run.
type ConvertInput struct {
	// Destination is the directory new migrations are written to.
	Destination string
	// ScanPaths are the directories holding existing migrations.
	ScanPaths []string
	// Prefix restricts generation to tables starting with it. Empty disables it.
	Prefix string
	// ManifestPath enables the manifest registry when set.
	ManifestPath string
	// OnGenerated is called after each file is written.
	OnGenerated func(file *domain.MigrationFile)
}

// ConvertResult represents the outcome of a conversion run.
type ConvertResult struct {
	// Files are the generated migrations in generation order.
	Files []*domain.MigrationFile
	// Exclusions are the tables that already had a migration.
	Exclusions domain.ExclusionSet
}

// Identifiers returns the identifiers of the generated files.
func (r *ConvertResult) Identifiers() []string {
	ids := make([]string, len(r.Files))
	for i, f := range r.Files {
		ids[i] = f.ID
	}
	return ids
}

// Convert writes a migration for every eligible table. Generation stops at
// the first failure; files already written stay on disk and are returned
// alongside the error.
func (s *ConvertService) Convert(ctx context.Context, input ConvertInput) (*ConvertResult, error) {
	if err := s.requireHistory(ctx); err != nil {
		return nil, err
	}

	plan, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}

	result := &ConvertResult{Exclusions: plan.exclusions}

	tables, err := s.schema.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	for _, table := range tables {
		reason := filter.Classify(table, plan.exclusions, input.Prefix)
		if reason != filter.Eligible {
			debug.Debug("Skipping table", "table", table, "reason", reason)
			continue
		}

		file, err := s.generate(ctx, table, input.Destination)
		if err != nil {
			if saveErr := s.saveManifest(ctx, input, plan, result); saveErr != nil {
				debug.Warn("Failed to record partial run in manifest", "error", saveErr)
			}
			return result, err
		}

		result.Files = append(result.Files, file)
		if plan.manifest != nil {
			plan.manifest.Record(table, file.ID)
		}
		if input.OnGenerated != nil {
			input.OnGenerated(file)
		}
	}

	if err := s.saveManifest(ctx, input, plan, result); err != nil {
		return result, err
	}

	return result, nil
}

// saveManifest records the files written so far, if any.
func (s *ConvertService) saveManifest(ctx context.Context, input ConvertInput, plan *convertPlan, result *ConvertResult) error {
	if plan.manifest == nil || len(result.Files) == 0 {
		return nil
	}
	return s.manifestRepo.Save(ctx, input.ManifestPath, plan.manifest)
}

func (s *ConvertService) generate(ctx context.Context, table, destination string) (*domain.MigrationFile, error) {
	columns, err := s.schema.ListColumns(ctx, table)
	if err != nil {
		return nil, err
	}

	fields := mapper.MapColumns(columns)
	return s.synthesizer.Synthesize(ctx, table, fields, destination)
}

// Reconcile records generated identifiers in the ledger under one new batch.
func (s *ConvertService) Reconcile(ctx context.Context, identifiers []string, confirm ledger.Confirmer) (*domain.ReconcileResult, error) {
	return s.reconciler.Reconcile(ctx, identifiers, confirm)
}

// TableStatus describes how a live table relates to existing migrations.
type TableStatus struct {
	Table  string        `yaml:"table"`
	Status filter.Reason `yaml:"status"`
	// Migration is the identifier covering an excluded table, when known.
	Migration string `yaml:"migration,omitempty"`
}

// Status reports, for every live table, whether a migration would be
// generated. Nothing is written.
func (s *ConvertService) Status(ctx context.Context, input ConvertInput) ([]TableStatus, error) {
	plan, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}

	tables, err := s.schema.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	statuses := make([]TableStatus, 0, len(tables))
	for _, table := range tables {
		statuses = append(statuses, TableStatus{
			Table:     table,
			Status:    filter.Classify(table, plan.exclusions, input.Prefix),
			Migration: plan.exclusions.Source(table),
		})
	}
	return statuses, nil
}

type convertPlan struct {
	exclusions domain.ExclusionSet
	manifest   *scanner.Manifest
}

// prepare builds the exclusion set and raises the namer floor above every
// known identifier.
func (s *ConvertService) prepare(ctx context.Context, input ConvertInput) (*convertPlan, error) {
	sources, err := s.sourceRepo.ListSources(ctx, input.ScanPaths)
	if err != nil {
		return nil, err
	}

	plan := &convertPlan{
		exclusions: scanner.BuildExclusions(sources, s.historyTable),
	}

	if input.ManifestPath != "" {
		plan.manifest, err = s.manifestRepo.Load(ctx, input.ManifestPath)
		if err != nil {
			return nil, err
		}
		scanner.MergeManifest(plan.exclusions, plan.manifest)
	}

	namer := s.synthesizer.Namer()
	for _, src := range sources {
		namer.Seed(src.ID)
	}
	if entries, err := s.historyRepo.Entries(ctx); err == nil {
		for _, e := range entries {
			namer.Seed(e.Migration)
		}
	} else {
		debug.Debug("Ledger not readable, namer seeded from sources only", "error", err)
	}

	debug.Debug("Exclusions built", "sources", len(sources), "tables", plan.exclusions.Tables())
	return plan, nil
}

func (s *ConvertService) requireHistory(ctx context.Context) error {
	exists, err := s.historyRepo.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrMissingHistoryStore
	}
	return nil
}

// IsMissingHistory reports whether err means the ledger table is absent.
func IsMissingHistory(err error) bool {
	return errors.Is(err, domain.ErrMissingHistoryStore)
}
