package tei

import (
	"github.com/FocuswithJustin/greekverse/core/betacode"
	"github.com/FocuswithJustin/greekverse/core/errors"
	"github.com/FocuswithJustin/greekverse/core/verse"
	"github.com/FocuswithJustin/greekverse/internal/logging"
)

// Assembler turns corrected events into located lines.
type Assembler struct {
	src    Source
	opts   Options
	loc    verse.Locator
	tokens []verse.Token
}

// NewAssembler returns an Assembler reading from src, normally a Filter.
func NewAssembler(src Source, opts Options) *Assembler {
	return &Assembler{src: src, opts: opts}
}

// Next returns the next non-empty line with its locator, or io.EOF.
func (a *Assembler) Next() (verse.Entry, error) {
	for {
		ev, err := a.src.Next()
		if err != nil {
			return verse.Entry{}, err
		}

		switch ev := ev.(type) {
		case BookBegin:
			a.loc = verse.Locator{Book: ev.N}
		case BookEnd:
			a.loc = verse.Locator{}
		case LineBegin:
			a.loc = a.next(ev.N)
			a.tokens = nil
		case LineEnd:
			line := verse.NewLine(a.tokens)
			a.tokens = nil
			if !line.IsEmpty() {
				return verse.Entry{Locator: a.loc, Line: line}, nil
			}
		case QuoteBegin:
			a.tokens = append(a.tokens, verse.Token{Kind: verse.OpenQuote, Text: verse.OpenQuoteMark})
		case QuoteEnd:
			a.tokens = append(a.tokens, verse.Token{Kind: verse.CloseQuote, Text: verse.CloseQuoteMark})
		case Text:
			if err := a.text(ev.Content); err != nil {
				return verse.Entry{}, err
			}
		}
	}
}

// next computes the locator of a new line. An explicit id is used as given;
// otherwise the successor of the current locator is guessed.
func (a *Assembler) next(n string) verse.Locator {
	if n == "" {
		return a.loc.Successor()
	}
	next := verse.Locator{Book: a.loc.Book, Line: n}
	if a.opts.CheckLineNumbers && !a.loc.MayPrecede(next) {
		logging.LineNumberWarning(a.opts.logger(), a.loc.String(), a.loc.Successor().String(), next.String())
	}
	return next
}

func (a *Assembler) text(content string) error {
	if a.opts.BetaCode {
		decoded, err := betacode.Decode(content)
		if err != nil {
			return errors.Wrapf(err, "line %s", a.loc)
		}
		content = decoded
	}
	tokens, err := verse.Tokenize(content)
	if err != nil {
		return errors.Wrapf(err, "line %s", a.loc)
	}
	a.tokens = append(a.tokens, tokens...)
	return nil
}
