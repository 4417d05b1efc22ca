package tei

import (
	"container/list"
	"io"

	"github.com/FocuswithJustin/greekverse/core/errors"
)

// Filter corrects a raw event stream. It joins line fragments (part I, M,
// F) into one line, moves quotation marks that sit between lines onto the
// adjacent lines, and cancels a quotation end followed directly by a
// merge-flagged quotation begin.
//
// Events are held in a buffer until no later event can change them, then
// released in order.
type Filter struct {
	src Source
	buf *list.List
	out []Event
	err error
	eof bool

	inLine   bool
	prevPart Part
	// lastLineEnd is the buffered LINE_END of the most recent line, kept
	// while a quotation end or fragment join may still need it.
	lastLineEnd *list.Element
	// quoteEnds holds buffered QUOTE_ENDs that a merge may still cancel.
	quoteEnds []*list.Element
	// pendingQuotes counts QUOTE_BEGINs seen between lines, to be placed
	// after the next LINE_BEGIN.
	pendingQuotes int
}

// NewFilter returns a Filter reading from src.
func NewFilter(src Source) *Filter {
	return &Filter{src: src, buf: list.New()}
}

// Next returns the next corrected event, or io.EOF at the end of the
// stream. Once an error is returned every later call returns it too.
func (f *Filter) Next() (Event, error) {
	for len(f.out) == 0 {
		if f.err != nil {
			return nil, f.err
		}
		if f.eof {
			return nil, io.EOF
		}

		ev, err := f.src.Next()
		switch {
		case err == io.EOF:
			f.err = f.finish()
		case err != nil:
			f.err = err
		default:
			if f.err = f.step(ev); f.err == nil {
				f.flush(false)
			}
		}
	}
	ev := f.out[0]
	f.out = f.out[1:]
	return ev, nil
}

func (f *Filter) step(ev Event) error {
	switch ev := ev.(type) {
	case LineBegin:
		return f.lineBegin(ev)

	case LineEnd:
		if !f.inLine {
			return &errors.StructureError{Message: "line end outside a line"}
		}
		f.lastLineEnd = f.buf.PushBack(ev)
		f.inLine = false

	case QuoteBegin:
		if ev.Merge {
			n := len(f.quoteEnds)
			if n == 0 {
				return &errors.StructureError{Element: "q", Message: "merge with no immediately preceding quotation end"}
			}
			f.buf.Remove(f.quoteEnds[n-1])
			f.quoteEnds = f.quoteEnds[:n-1]
			return nil
		}
		f.quoteEnds = nil
		if f.inLine {
			f.buf.PushBack(ev)
		} else {
			f.pendingQuotes++
		}

	case QuoteEnd:
		switch {
		case f.inLine:
			f.quoteEnds = append(f.quoteEnds, f.buf.PushBack(ev))
		case f.pendingQuotes > 0:
			// The quotation opened and closed between lines without
			// reaching one; it is empty.
			f.pendingQuotes--
		case f.lastLineEnd != nil:
			f.quoteEnds = append(f.quoteEnds, f.buf.InsertBefore(ev, f.lastLineEnd))
		default:
			return &errors.StructureError{Element: "q", Message: "quotation end with no line to attach to"}
		}

	case Text:
		if !f.inLine {
			return &errors.StructureError{Context: excerpt(ev.Content), Message: "text outside a line"}
		}
		f.quoteEnds = nil
		f.buf.PushBack(ev)

	case BookBegin:
		if f.inLine {
			return &errors.StructureError{Context: ev.N, Message: "book begins inside a line"}
		}
		f.quoteEnds = nil
		f.lastLineEnd = nil
		f.buf.PushBack(ev)

	case BookEnd:
		if f.inLine {
			return &errors.StructureError{Message: "book ends inside a line"}
		}
		if !f.prevPart.complete() {
			return &errors.StructureError{Message: "book ends inside an unfinished line fragment"}
		}
		f.quoteEnds = nil
		f.buf.PushBack(ev)
	}
	return nil
}

func (f *Filter) lineBegin(ev LineBegin) error {
	if f.inLine {
		return &errors.StructureError{Element: "l", Context: ev.N, Message: "line begins inside another line"}
	}

	if f.prevPart.complete() {
		if ev.Part != PartNone && ev.Part != PartInitial {
			return &errors.StructureError{
				Element: "l",
				Context: ev.N,
				Message: "line part " + ev.Part.String() + " without a preceding initial part",
			}
		}
		f.buf.PushBack(ev)
		f.lastLineEnd = nil
	} else {
		if ev.Part != PartMedial && ev.Part != PartFinal {
			return &errors.StructureError{
				Element: "l",
				Context: ev.N,
				Message: "line part " + ev.Part.String() + " cannot follow part " + f.prevPart.String(),
			}
		}
		if f.lastLineEnd == nil {
			return &errors.StructureError{Element: "l", Context: ev.N, Message: "line fragment continues nothing"}
		}
		// Splice the fragment onto the previous one; its own number is
		// dropped.
		f.lastLineEnd.Value = Text{Content: " "}
		f.lastLineEnd = nil
	}

	f.prevPart = ev.Part
	f.inLine = true
	for ; f.pendingQuotes > 0; f.pendingQuotes-- {
		f.buf.PushBack(QuoteBegin{})
	}
	return nil
}

// finish handles the end of the input stream.
func (f *Filter) finish() error {
	if f.inLine {
		// A line opened by <lb> has no explicit end.
		f.lastLineEnd = f.buf.PushBack(LineEnd{})
		f.inLine = false
	}
	if !f.prevPart.complete() {
		return &errors.StructureError{Message: "document ends inside an unfinished line fragment"}
	}
	if f.pendingQuotes > 0 {
		return &errors.StructureError{Element: "q", Message: "quotation never reaches a line"}
	}
	f.flush(true)
	f.eof = true
	return nil
}

// flush releases buffered events once nothing pending can modify them.
func (f *Filter) flush(force bool) {
	if !force && (f.lastLineEnd != nil || len(f.quoteEnds) > 0 || !f.prevPart.complete() || f.pendingQuotes > 0) {
		return
	}
	for e := f.buf.Front(); e != nil; e = e.Next() {
		f.out = append(f.out, e.Value.(Event))
	}
	f.buf.Init()
	f.lastLineEnd = nil
	f.quoteEnds = nil
}
