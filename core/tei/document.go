package tei

import (
	"io"

	"github.com/FocuswithJustin/greekverse/core/errors"
	"github.com/FocuswithJustin/greekverse/core/verse"
	"github.com/FocuswithJustin/greekverse/core/xml"
)

const (
	titleXPath  = "//teiHeader/fileDesc/titleStmt/title"
	authorXPath = "//teiHeader/fileDesc/titleStmt/author"
)

// Document is a parsed TEI document.
type Document struct {
	doc *xml.Document
}

// Parse parses a TEI document. XML that is not well-formed fails with
// *errors.MalformedDocumentError.
func Parse(data []byte) (*Document, error) {
	doc, err := xml.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// Open reads and parses a TEI document from r.
func Open(r io.Reader) (*Document, error) {
	doc, err := xml.ParseReader(r)
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// Title returns the first title in the header's title statement, or "".
func (d *Document) Title() (string, error) {
	return d.doc.XPathString(titleXPath)
}

// Author returns the first author in the header's title statement, or "".
func (d *Document) Author() (string, error) {
	return d.doc.XPathString(authorXPath)
}

// Root returns the document element.
func (d *Document) Root() *xml.Node {
	return d.doc.Root()
}

// Reader returns a pull reader over the document's lines.
func (d *Document) Reader(opts Options) (*Assembler, error) {
	return NewReader(d.Root(), opts)
}

// Lines extracts every line of the document.
func (d *Document) Lines(opts Options) ([]verse.Entry, error) {
	return ExtractLines(d.Root(), opts)
}

// Each calls fn for every line in document order, stopping at the first
// error from extraction or from fn.
func (d *Document) Each(opts Options, fn func(verse.Entry) error) error {
	r, err := d.Reader(opts)
	if err != nil {
		return err
	}
	return each(r, fn)
}

// NewReader builds the generator, filter and assembler chain over the body
// of root. root may be the TEI element, its text element, or the body.
func NewReader(root *xml.Node, opts Options) (*Assembler, error) {
	body, err := findBody(root)
	if err != nil {
		return nil, err
	}
	return NewAssembler(NewFilter(NewGenerator(body, opts)), opts), nil
}

// ExtractLines returns all lines under root.
func ExtractLines(root *xml.Node, opts Options) ([]verse.Entry, error) {
	r, err := NewReader(root, opts)
	if err != nil {
		return nil, err
	}
	var entries []verse.Entry
	err = each(r, func(e verse.Entry) error {
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func each(r *Assembler, fn func(verse.Entry) error) error {
	for {
		e, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
}

func findBody(root *xml.Node) (*xml.Node, error) {
	if root == nil {
		return nil, &errors.StructureError{Message: "document has no root element"}
	}
	switch root.Name() {
	case "body":
		return root, nil
	case "text":
		if body := root.Child("body"); body != nil {
			return body, nil
		}
	default:
		if body := root.Child("text").Child("body"); body != nil {
			return body, nil
		}
	}
	return nil, &errors.StructureError{Element: root.Name(), Message: "no text/body element"}
}
