package scanner

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// sourceLexer tokenizes the tail of a migration source line after the
// creation marker. Only string literals matter; everything else is skipped.
var sourceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "SingleString", Pattern: `'(?:\\.|[^'\\])*'`},
	{Name: "DoubleString", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[\p{L}_$][\p{L}\p{N}_]*`},
	{Name: "Number", Pattern: `\p{N}+(?:\.\p{N}+)?`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Punct", Pattern: `[^\s'"\p{L}\p{N}_$]+`},
	// An unterminated quote swallows the rest of the line.
	{Name: "Unterminated", Pattern: `['"].*`},
})

var (
	singleString = sourceLexer.Symbols()["SingleString"]
	doubleString = sourceLexer.Symbols()["DoubleString"]
)

// firstLiteral returns the first complete quoted literal in text.
func firstLiteral(text string) (string, bool) {
	lex, err := sourceLexer.LexString("", text)
	if err != nil {
		return "", false
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return "", false
	}

	for _, tok := range tokens {
		switch tok.Type {
		case singleString:
			return unquoteSingle(tok.Value), true
		case doubleString:
			if s, err := strconv.Unquote(tok.Value); err == nil {
				return s, true
			}
			return tok.Value[1 : len(tok.Value)-1], true
		}
	}
	return "", false
}

// unquoteSingle strips single quotes and resolves \' and \\ escapes.
func unquoteSingle(s string) string {
	s = s[1 : len(s)-1]
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '\'' || s[i+1] == '\\') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
