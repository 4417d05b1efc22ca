package verse

import (
	"strings"

	"github.com/FocuswithJustin/greekverse/core/errors"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// locatorGrammar is the participle grammar for locator strings.
// Examples: "306", "306a", "1.306a", "Argon1.1134"
type locatorGrammar struct {
	First string  `parser:"@Ident"`
	Rest  *string `parser:"( \".\" @Ident )?"`
}

// locatorLexer splits a locator on its single dot separator.
var locatorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[^.\s]+`},
	{Name: "Punct", Pattern: `\.`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// locatorParser is the participle parser for locators.
var locatorParser = participle.MustBuild[locatorGrammar](
	participle.Lexer(locatorLexer),
	participle.Elide("Whitespace"),
)

// ParseLocator parses the string form produced by Locator.String:
// "book.line" or a bare "line".
func ParseLocator(s string) (Locator, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Locator{}, &errors.ParseError{Format: "locator", Message: "empty string"}
	}

	parsed, err := locatorParser.ParseString("", s)
	if err != nil {
		return Locator{}, &errors.ParseError{Format: "locator", Input: s, Message: err.Error(), Err: errors.ErrInvalidInput}
	}

	if parsed.Rest == nil {
		return Locator{Line: parsed.First}, nil
	}
	return Locator{Book: parsed.First, Line: *parsed.Rest}, nil
}
