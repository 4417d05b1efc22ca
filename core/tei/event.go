// Package tei extracts verse lines from TEI XML documents.
//
// Extraction is a three-stage pull pipeline. A Generator walks the document
// body and emits structural events; a Filter joins line fragments and
// resolves quotation merges; an Assembler turns the corrected events into
// located, tokenized lines. Each stage pulls from the one before it, so a
// document is processed in a single pass with bounded buffering.
package tei

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/greekverse/core/errors"
)

// Event is one structural event in a TEI body. The concrete types are
// BookBegin, BookEnd, LineBegin, LineEnd, QuoteBegin, QuoteEnd and Text.
type Event interface {
	event()
}

// Source produces events until it returns io.EOF.
type Source interface {
	Next() (Event, error)
}

// BookBegin opens a book-level division.
type BookBegin struct {
	N string // book id, "" if absent
}

// BookEnd closes the current book.
type BookEnd struct{}

// LineBegin opens a line or a line fragment.
type LineBegin struct {
	N    string // explicit line id, "" if absent
	Part Part
}

// LineEnd closes the current line.
type LineEnd struct{}

// QuoteBegin opens a quotation. Merge asks to cancel the immediately
// preceding quotation end instead of opening a new quotation.
type QuoteBegin struct {
	Merge bool
}

// QuoteEnd closes a quotation.
type QuoteEnd struct{}

// Text is character data inside a line.
type Text struct {
	Content string
}

func (BookBegin) event()  {}
func (BookEnd) event()    {}
func (LineBegin) event()  {}
func (LineEnd) event()    {}
func (QuoteBegin) event() {}
func (QuoteEnd) event()   {}
func (Text) event()       {}

func (e BookBegin) String() string { return fmt.Sprintf("BOOK_BEGIN(%q)", e.N) }
func (BookEnd) String() string     { return "BOOK_END" }
func (e LineBegin) String() string { return fmt.Sprintf("LINE_BEGIN(%q, %s)", e.N, e.Part) }
func (LineEnd) String() string     { return "LINE_END" }
func (e QuoteBegin) String() string {
	if e.Merge {
		return "QUOTE_BEGIN(merge)"
	}
	return "QUOTE_BEGIN"
}
func (QuoteEnd) String() string { return "QUOTE_END" }
func (e Text) String() string   { return fmt.Sprintf("TEXT(%q)", e.Content) }

// Part is the fragment tag of a line: a verse split across speakers or
// layout is marked as an initial, medial and final part.
type Part int

const (
	PartNone Part = iota
	PartInitial
	PartMedial
	PartFinal
)

func (p Part) String() string {
	switch p {
	case PartInitial:
		return "I"
	case PartMedial:
		return "M"
	case PartFinal:
		return "F"
	}
	return "N"
}

// complete reports whether a line tagged p leaves no fragment open.
func (p Part) complete() bool {
	return p == PartNone || p == PartFinal
}

// ParsePart parses the value of a part attribute. An absent attribute and
// "N" both mean PartNone.
func ParsePart(value string, present bool) (Part, error) {
	if !present {
		return PartNone, nil
	}
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "N":
		return PartNone, nil
	case "I":
		return PartInitial, nil
	case "M":
		return PartMedial, nil
	case "F":
		return PartFinal, nil
	}
	return PartNone, &errors.StructureError{
		Element: "l",
		Context: fmt.Sprintf("part=%q", value),
		Message: "unknown line part",
	}
}
