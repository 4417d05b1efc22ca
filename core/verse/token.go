package verse

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/FocuswithJustin/greekverse/core/errors"
	"golang.org/x/text/unicode/norm"
)

// Kind distinguishes words from the text between them and from synthesized
// quotation marks.
type Kind int

const (
	// Word is a run of letters, digits, combining diacritics and elision marks.
	Word Kind = iota + 1
	// NonWord is whitespace, punctuation, and anything else between words.
	NonWord
	// OpenQuote is a quotation mark synthesized from markup.
	OpenQuote
	// CloseQuote is a quotation mark synthesized from markup.
	CloseQuote
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "WORD"
	case NonWord:
		return "NONWORD"
	case OpenQuote:
		return "OPEN_QUOTE"
	case CloseQuote:
		return "CLOSE_QUOTE"
	}
	return "UNKNOWN"
}

// Quotation marks used for synthesized quote tokens.
const (
	OpenQuoteMark  = "‘"
	CloseQuoteMark = "’"
)

// Token is a typed piece of line text.
type Token struct {
	Kind Kind
	Text string
}

// wordPattern matches word characters plus the eight Greek combining
// diacritics and the right single quotation mark used for elision.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_\x{0313}\x{0314}\x{0301}\x{0342}\x{0300}\x{0308}\x{0345}\x{0323}\x{2019}]+`)

// Apostrophe variants. U+02BC looks like ’ and is accepted as elision;
// U+02BB looks like ‘ and never marks elision.
const (
	modifierApostrophe   = '\u02BC'
	modifierTurnedComma  = '\u02BB'
	rightSingleQuotation = '\u2019'
)

// CanonicalizeQuotes maps U+02BC MODIFIER LETTER APOSTROPHE to U+2019. Text
// containing U+02BB MODIFIER LETTER TURNED COMMA is rejected.
func CanonicalizeQuotes(text string) (string, error) {
	if i := strings.IndexRune(text, modifierTurnedComma); i >= 0 {
		return "", &errors.StructureError{
			Context: text,
			Message: "U+02BB MODIFIER LETTER TURNED COMMA is not a valid apostrophe",
		}
	}
	return strings.Map(func(r rune) rune {
		if r == modifierApostrophe {
			return rightSingleQuotation
		}
		return r
	}, text), nil
}

// Tokenize normalizes text to NFD, canonicalizes apostrophes, and splits it
// into alternating Word and NonWord tokens. Concatenating the token texts
// gives back the normalized input.
func Tokenize(text string) ([]Token, error) {
	text, err := CanonicalizeQuotes(norm.NFD.String(text))
	if err != nil {
		return nil, err
	}
	return split(text), nil
}

func split(text string) []Token {
	var tokens []Token
	prev := 0
	for _, m := range wordPattern.FindAllStringIndex(text, -1) {
		if m[0] > prev {
			tokens = append(tokens, Token{Kind: NonWord, Text: text[prev:m[0]]})
		}
		tokens = append(tokens, Token{Kind: Word, Text: text[m[0]:m[1]]})
		prev = m[1]
	}
	if prev < len(text) {
		tokens = append(tokens, Token{Kind: NonWord, Text: text[prev:]})
	}
	return tokens
}

// Consolidate merges runs of adjacent Word tokens and of adjacent NonWord
// tokens. Quote tokens are never merged. The input is not modified.
func Consolidate(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if n := len(out); n > 0 && out[n-1].Kind == tok.Kind && (tok.Kind == Word || tok.Kind == NonWord) {
			out[n-1].Text += tok.Text
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Trim consolidates tokens, collapses whitespace runs inside NonWord tokens
// to a single space, strips leading whitespace from a leading NonWord and
// trailing whitespace from a trailing NonWord, and drops either when it
// becomes empty. The input is not modified.
func Trim(tokens []Token) []Token {
	out := Consolidate(tokens)
	for i := range out {
		if out[i].Kind == NonWord {
			out[i].Text = collapseSpace(out[i].Text)
		}
	}
	if len(out) > 0 && out[0].Kind == NonWord {
		out[0].Text = strings.TrimLeftFunc(out[0].Text, unicode.IsSpace)
		if out[0].Text == "" {
			out = out[1:]
		}
	}
	if n := len(out); n > 0 && out[n-1].Kind == NonWord {
		out[n-1].Text = strings.TrimRightFunc(out[n-1].Text, unicode.IsSpace)
		if out[n-1].Text == "" {
			out = out[:n-1]
		}
	}
	return out
}

// collapseSpace replaces each run of whitespace with one space.
func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
