package tei

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/FocuswithJustin/greekverse/core/errors"
	"github.com/FocuswithJustin/greekverse/core/xml"
)

// Elements whose contents never contribute to verse text.
var ignoredElements = map[string]bool{
	"milestone": true,
	"head":      true,
	"gap":       true,
	"pb":        true,
	"cb":        true,
	"note":      true,
	"speaker":   true,
	"figure":    true,
}

// Elements walked as if their children appeared in their place.
var transparentElements = map[string]bool{
	"lg":        true,
	"p":         true,
	"sp":        true,
	"add":       true,
	"del":       true,
	"name":      true,
	"persName":  true,
	"placeName": true,
	"supplied":  true,
	"unclear":   true,
	"hi":        true,
	"foreign":   true,
	"seg":       true,
	"sic":       true,
	"corr":      true,
	"emph":      true,
}

type role int

const (
	roleContainer role = iota
	roleBook
	roleLine
	roleQuote
)

// frame is an element being walked: next is the child to visit next.
type frame struct {
	elem  *xml.Node
	next  *xml.Node
	role  role
	trim  bool
	depth int // div nesting depth of elem
}

// Generator walks a TEI body in document order and emits events. It keeps
// an explicit stack of open elements, so document depth does not grow the
// Go call stack.
type Generator struct {
	opts  Options
	stack []*frame
	queue []Event
	err   error

	inLine  bool
	lineTag bool // the open line came from <l> rather than <lb>
	inBook  bool
}

// NewGenerator returns a Generator over the children of body.
func NewGenerator(body *xml.Node, opts Options) *Generator {
	g := &Generator{opts: opts}
	if body != nil {
		g.push(body, roleContainer, false, 0)
	}
	return g
}

// Next returns the next event, or io.EOF when the body is exhausted. Once
// an error is returned every later call returns it too.
func (g *Generator) Next() (Event, error) {
	for len(g.queue) == 0 {
		if g.err != nil {
			return nil, g.err
		}
		if len(g.stack) == 0 {
			return nil, io.EOF
		}
		if err := g.step(); err != nil {
			g.err = err
		}
	}
	ev := g.queue[0]
	g.queue = g.queue[1:]
	return ev, nil
}

func (g *Generator) emit(ev Event) {
	g.queue = append(g.queue, ev)
}

func (g *Generator) push(n *xml.Node, r role, trim bool, depth int) {
	g.stack = append(g.stack, &frame{elem: n, next: n.FirstChild(), role: r, trim: trim, depth: depth})
}

func (g *Generator) step() error {
	top := g.stack[len(g.stack)-1]
	child := top.next
	if child == nil {
		g.stack = g.stack[:len(g.stack)-1]
		g.close(top)
		return nil
	}
	top.next = child.NextSibling()

	switch child.Kind() {
	case xml.KindText:
		return g.text(top, child)
	case xml.KindElement:
		return g.element(top, child)
	}
	return nil
}

func (g *Generator) close(f *frame) {
	switch f.role {
	case roleBook:
		g.closeBreakLine()
		g.emit(BookEnd{})
		g.inBook = false
	case roleLine:
		g.emit(LineEnd{})
		g.inLine, g.lineTag = false, false
	case roleQuote:
		g.emit(QuoteEnd{})
	}
}

// closeBreakLine ends a line opened by <lb>, which has no closing tag.
func (g *Generator) closeBreakLine() {
	if g.inLine && !g.lineTag {
		g.emit(LineEnd{})
		g.inLine = false
	}
}

func (g *Generator) text(f *frame, n *xml.Node) error {
	content := n.Data()
	if f.trim {
		if n.PrevSibling() == nil {
			content = strings.TrimLeftFunc(content, unicode.IsSpace)
		}
		if n.NextSibling() == nil {
			content = strings.TrimRightFunc(content, unicode.IsSpace)
		}
	}
	if content == "" {
		return nil
	}
	if !g.inLine {
		if strings.TrimSpace(content) == "" {
			return nil
		}
		return &errors.StructureError{
			Element: f.elem.Name(),
			Context: excerpt(content),
			Message: "text outside a line",
		}
	}
	g.emit(Text{Content: content})
	return nil
}

func (g *Generator) element(f *frame, n *xml.Node) error {
	name := n.Name()
	switch name {
	case "div1":
		if typ := n.AttrOr("type", ""); !g.opts.isBookType(typ) {
			return &errors.StructureError{Element: name, Context: describe(n), Message: "not a book division"}
		}
		return g.openBook(n, f.depth+1)

	case "div":
		depth := f.depth + 1
		if !g.inBook && depth <= g.opts.MaxBookDepth &&
			n.AttrOr("type", "") == "textpart" && g.opts.isBookType(n.AttrOr("subtype", "")) {
			return g.openBook(n, depth)
		}
		g.push(n, roleContainer, false, depth)

	case "div2", "div3":
		g.push(n, roleContainer, false, f.depth+1)

	case "l":
		if g.inLine {
			if g.lineTag {
				return &errors.StructureError{Element: name, Context: describe(n), Message: "line begins inside another line"}
			}
			g.closeBreakLine()
		}
		part, err := ParsePart(n.Attr("part"))
		if err != nil {
			return err
		}
		g.emit(LineBegin{N: n.AttrOr("n", ""), Part: part})
		g.inLine, g.lineTag = true, true
		g.push(n, roleLine, true, f.depth)

	case "lb":
		if g.inLine && g.lineTag {
			return &errors.StructureError{Element: name, Context: describe(n), Message: "line break inside <l>"}
		}
		part, err := ParsePart(n.Attr("part"))
		if err != nil {
			return err
		}
		g.closeBreakLine()
		g.emit(LineBegin{N: n.AttrOr("n", ""), Part: part})
		g.inLine, g.lineTag = true, false

	case "q", "quote":
		g.emit(QuoteBegin{Merge: hasToken(n.AttrOr("rend", ""), "merge")})
		g.push(n, roleQuote, true, f.depth)

	case "choice":
		corr, err := correction(n)
		if err != nil {
			return err
		}
		g.push(corr, roleContainer, false, f.depth)

	default:
		switch {
		case ignoredElements[name]:
		case transparentElements[name]:
			g.push(n, roleContainer, false, f.depth)
		default:
			return &errors.StructureError{Element: name, Context: describe(n), Message: "unknown element"}
		}
	}
	return nil
}

func (g *Generator) openBook(n *xml.Node, depth int) error {
	if g.inBook {
		return &errors.StructureError{Element: n.Name(), Context: describe(n), Message: "book nested inside another book"}
	}
	if g.inLine {
		if g.lineTag {
			return &errors.StructureError{Element: n.Name(), Context: describe(n), Message: "book begins inside a line"}
		}
		g.closeBreakLine()
	}
	g.emit(BookBegin{N: n.AttrOr("n", "")})
	g.inBook = true
	g.push(n, roleBook, false, depth)
	return nil
}

// correction returns the corr branch of a sic/corr choice.
func correction(n *xml.Node) (*xml.Node, error) {
	var corr *xml.Node
	for _, c := range n.Children() {
		switch c.Name() {
		case "corr":
			if corr != nil {
				return nil, &errors.StructureError{Element: "choice", Message: "more than one <corr>"}
			}
			corr = c
		case "sic":
		default:
			return nil, &errors.StructureError{Element: "choice", Context: "<" + c.Name() + ">", Message: "unexpected child"}
		}
	}
	if corr == nil {
		return nil, &errors.StructureError{Element: "choice", Message: "missing <corr>"}
	}
	return corr, nil
}

// hasToken reports whether the whitespace-separated list s contains tok.
func hasToken(s, tok string) bool {
	for _, f := range strings.Fields(s) {
		if f == tok {
			return true
		}
	}
	return false
}

func describe(n *xml.Node) string {
	if v, ok := n.Attr("n"); ok {
		return fmt.Sprintf("n=%q", v)
	}
	return ""
}

func excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > 40 {
		return string(r[:40]) + "..."
	}
	return s
}
