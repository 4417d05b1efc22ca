// Package verse is the canonical line model shared by the extraction
// pipeline and its downstream consumers: locators, tokens, and lines.
package verse

import (
	"cmp"
	"regexp"
	"strconv"
)

// Locator identifies a verse line by book and line number. Either part may
// be empty, meaning unknown. Line may carry an alphabetic suffix ("306a")
// for interpolated lines.
type Locator struct {
	Book string `json:"book,omitempty"`
	Line string `json:"line,omitempty"`
}

// lineNumberPattern splits a line id into its leading decimal number and
// whatever follows.
var lineNumberPattern = regexp.MustCompile(`^([0-9]*)(.*)$`)

// SplitLine splits a line id into its numeric part and suffix. ok is false
// when the id does not start with a number.
func SplitLine(line string) (number int, suffix string, ok bool) {
	m := lineNumberPattern.FindStringSubmatch(line)
	if m == nil || m[1] == "" {
		return 0, line, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, line, false
	}
	return n, m[2], true
}

// Successor guesses the locator of the line following l: the same book,
// with the numeric part of the line incremented and any suffix dropped. An
// unknown line is followed by line 1.
func (l Locator) Successor() Locator {
	n, _, ok := SplitLine(l.Line)
	if !ok {
		n = 0
	}
	return Locator{Book: l.Book, Line: strconv.Itoa(n + 1)}
}

// MayPrecede reports whether next is a plausible locator for the line after
// l. Within a book, n is followed by n+1 or n+1"a", n by n"a", and n"a" by
// n"b". After a book change or an unknown line, numbering restarts at 1 or
// 1"a".
func (l Locator) MayPrecede(next Locator) bool {
	selfNumber, selfSuffix, selfOK := SplitLine(l.Line)
	otherNumber, otherSuffix, otherOK := SplitLine(next.Line)

	if l.Line == "" || l.Book != next.Book {
		return next.Line == "" || (otherOK && otherNumber == 1 && (otherSuffix == "" || otherSuffix == "a"))
	}
	if !selfOK || !otherOK {
		return false
	}
	if selfNumber != otherNumber {
		return otherNumber == selfNumber+1 && (otherSuffix == "" || otherSuffix == "a")
	}
	if selfSuffix == "" {
		return otherSuffix == "a"
	}
	self, other := []rune(selfSuffix), []rune(otherSuffix)
	return len(self) == 1 && len(other) == 1 && other[0] == self[0]+1
}

// String returns "book.line", or the bare line when the book is unknown.
func (l Locator) String() string {
	if l.Book == "" {
		return l.Line
	}
	if l.Line == "" {
		return l.Book
	}
	return l.Book + "." + l.Line
}

// Compare orders locators within one book by line number and then suffix.
// Locators in different books compare by book id; lines without a number
// sort first.
func (l Locator) Compare(other Locator) int {
	if c := cmp.Compare(l.Book, other.Book); c != 0 {
		if bn, bok := atoi(l.Book); bok {
			if on, ook := atoi(other.Book); ook {
				return cmp.Compare(bn, on)
			}
		}
		return c
	}
	ln, ls, lok := SplitLine(l.Line)
	on, os, ook := SplitLine(other.Line)
	switch {
	case !lok && !ook:
		return cmp.Compare(l.Line, other.Line)
	case !lok:
		return -1
	case !ook:
		return 1
	}
	if c := cmp.Compare(ln, on); c != 0 {
		return c
	}
	return cmp.Compare(ls, os)
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}
