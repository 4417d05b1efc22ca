// Package xml provides the parsed-tree view of TEI documents that the verse
// extraction pipeline walks: element names, attributes, text and tail text in
// document order, plus XPath queries for header metadata.
//
// Security Notes:
//   - The xmlquery library is used for parsing. It uses Go's encoding/xml
//     internally, which never fetches external entities.
package xml

import (
	"bytes"
	"io"
	"strings"

	"github.com/FocuswithJustin/greekverse/core/errors"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Kind classifies a node.
type Kind int

const (
	// KindOther covers declarations, processing instructions and the like.
	KindOther Kind = iota
	// KindElement is an element node.
	KindElement
	// KindText is character data, including CDATA sections.
	KindText
	// KindComment is a comment.
	KindComment
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node represents an XML node (element, text, comment, ...).
type Node struct {
	node *xmlquery.Node
}

// Parse parses XML data and returns a Document. Input that is not
// well-formed fails with *errors.MalformedDocumentError.
func Parse(data []byte) (*Document, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader parses XML from r.
func ParseReader(r io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &errors.MalformedDocumentError{Err: err}
	}
	return &Document{root: root}, nil
}

// Root returns the root element of the document.
func (d *Document) Root() *Node {
	if d == nil || d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// XPath executes an XPath query and returns matching nodes.
func (d *Document) XPath(expr string) ([]*Node, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid xpath")
	}

	nodes := xmlquery.QuerySelectorAll(d.root, compiled)
	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n}
	}
	return result, nil
}

// XPathFirst executes an XPath query and returns the first matching node,
// or nil when nothing matches.
func (d *Document) XPathFirst(expr string) (*Node, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid xpath")
	}

	node := xmlquery.QuerySelector(d.root, compiled)
	if node == nil {
		return nil, nil
	}
	return &Node{node: node}, nil
}

// XPathString evaluates expr and returns the whitespace-normalized inner
// text of the first match, or "" if nothing matches.
func (d *Document) XPathString(expr string) (string, error) {
	n, err := d.XPathFirst(expr)
	if err != nil || n == nil {
		return "", err
	}
	return strings.Join(strings.Fields(n.InnerText()), " "), nil
}

func wrap(n *xmlquery.Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{node: n}
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind {
	if n == nil || n.node == nil {
		return KindOther
	}
	switch n.node.Type {
	case xmlquery.ElementNode:
		return KindElement
	case xmlquery.TextNode, xmlquery.CharDataNode:
		return KindText
	case xmlquery.CommentNode:
		return KindComment
	}
	return KindOther
}

// Name returns the local element name.
func (n *Node) Name() string {
	if n == nil || n.node == nil || n.node.Type != xmlquery.ElementNode {
		return ""
	}
	return n.node.Data
}

// Data returns the character data of a text node.
func (n *Node) Data() string {
	if n == nil || n.node == nil {
		return ""
	}
	if n.Kind() != KindText {
		return ""
	}
	return n.node.Data
}

// InnerText returns all text content of the node and its descendants.
func (n *Node) InnerText() string {
	if n == nil || n.node == nil {
		return ""
	}
	return n.node.InnerText()
}

// FirstChild returns the first child of any kind.
func (n *Node) FirstChild() *Node {
	if n == nil || n.node == nil {
		return nil
	}
	return wrap(n.node.FirstChild)
}

// NextSibling returns the following sibling of any kind. For an element
// this is where its tail text lives.
func (n *Node) NextSibling() *Node {
	if n == nil || n.node == nil {
		return nil
	}
	return wrap(n.node.NextSibling)
}

// PrevSibling returns the preceding sibling of any kind.
func (n *Node) PrevSibling() *Node {
	if n == nil || n.node == nil {
		return nil
	}
	return wrap(n.node.PrevSibling)
}

// Children returns the child element nodes.
func (n *Node) Children() []*Node {
	if n == nil || n.node == nil {
		return nil
	}

	var children []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, &Node{node: child})
		}
	}
	return children
}

// Child returns the first child element with the given name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Attributes returns all attributes of the node, keyed by local name.
func (n *Node) Attributes() map[string]string {
	if n == nil || n.node == nil {
		return nil
	}

	attrs := make(map[string]string)
	for _, attr := range n.node.Attr {
		attrs[attr.Name.Local] = attr.Value
	}
	return attrs
}

// Attr returns the value of a specific attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil || n.node == nil {
		return "", false
	}
	for _, attr := range n.node.Attr {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// AttrOr returns the value of an attribute, or def when it is absent.
func (n *Node) AttrOr(name, def string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return def
}
