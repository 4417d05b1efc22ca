package verse

import "strings"

// Line is one verse line: an immutable, trimmed sequence of tokens.
type Line struct {
	tokens []Token
}

// NewLine builds a Line from tokens, applying Trim. The tokens slice is not
// retained.
func NewLine(tokens []Token) Line {
	return Line{tokens: Trim(tokens)}
}

// Tokens returns a copy of the line's tokens.
func (l Line) Tokens() []Token {
	return append([]Token(nil), l.tokens...)
}

// Len returns the number of tokens.
func (l Line) Len() int {
	return len(l.tokens)
}

// IsEmpty reports whether the line has no tokens.
func (l Line) IsEmpty() bool {
	return len(l.tokens) == 0
}

// Text returns the concatenated text of all tokens, quotation marks included.
func (l Line) Text() string {
	return join(l.tokens)
}

// TextWithoutQuotes returns the text with synthesized quotation marks
// removed and the remainder re-trimmed.
func (l Line) TextWithoutQuotes() string {
	kept := make([]Token, 0, len(l.tokens))
	for _, tok := range l.tokens {
		if tok.Kind != OpenQuote && tok.Kind != CloseQuote {
			kept = append(kept, tok)
		}
	}
	return join(Trim(kept))
}

// Words returns the text of the Word tokens in order.
func (l Line) Words() []string {
	var words []string
	for _, tok := range l.tokens {
		if tok.Kind == Word {
			words = append(words, tok.Text)
		}
	}
	return words
}

func (l Line) String() string {
	return l.Text()
}

func join(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}

// Entry pairs a line with its locator.
type Entry struct {
	Locator Locator
	Line    Line
}
