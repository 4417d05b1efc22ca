// Package lemma wraps an external lemmatizer with the conventions the rest
// of greekverse relies on: NFD in and out, local override tables, accent
// pre-transformations, and memoisation.
package lemma

import (
	"fmt"

	"github.com/FocuswithJustin/greekverse/core/cache"
	"github.com/FocuswithJustin/greekverse/core/errors"
	"golang.org/x/text/unicode/norm"
)

// Backoff is the lemmatizer consulted after local overrides.
type Backoff interface {
	Lemmatize(word string) (lemma string, ok bool)
}

// BackoffFunc adapts a function to the Backoff interface.
type BackoffFunc func(word string) (string, bool)

// Lemmatize calls f.
func (f BackoffFunc) Lemmatize(word string) (string, bool) {
	return f(word)
}

// Table is a Backoff backed by a fixed word-to-lemma map. Keys must be NFD.
type Table map[string]string

// Lemmatize looks word up in the table.
func (t Table) Lemmatize(word string) (string, bool) {
	lemma, ok := t[word]
	return lemma, ok
}

// Coord locates one word of one line: the work abbreviation, book, line
// id, and 1-based position of the word in the line.
type Coord struct {
	Work string
	Book string
	Line string
	Word int
}

func (c Coord) String() string {
	return fmt.Sprintf("%s %s.%s #%d", c.Work, c.Book, c.Line, c.Word)
}

type coordOverride struct {
	word  string
	lemma string
}

// Lemmatizer resolves words to lemmas. It is safe for concurrent lookups
// once overrides have been added.
type Lemmatizer struct {
	backoff Backoff
	words   map[string]string
	coords  map[Coord]coordOverride
	memo    cache.Cache[string, string]
}

// New returns a Lemmatizer that consults backoff after its overrides. A nil
// backoff means only overrides are used.
func New(backoff Backoff, config cache.Config) *Lemmatizer {
	return &Lemmatizer{
		backoff: backoff,
		words:   make(map[string]string),
		coords:  make(map[Coord]coordOverride),
		memo:    cache.New[string, string](config),
	}
}

// AddWord records that word always has the given lemma.
func (l *Lemmatizer) AddWord(word, lemma string) {
	l.words[norm.NFD.String(word)] = norm.NFD.String(lemma)
	l.memo.Clear()
}

// AddCoord records the lemma of the word at coord. The word is kept so a
// lookup can detect that the text has shifted under the override.
func (l *Lemmatizer) AddCoord(coord Coord, word, lemma string) {
	l.coords[coord] = coordOverride{word: norm.NFD.String(word), lemma: norm.NFD.String(lemma)}
}

// Lookup returns the NFD lemma of word, which may be in any normalization
// form. Word overrides win; otherwise each pre-transformation of the word
// is offered to the backoff in turn.
func (l *Lemmatizer) Lookup(word string) (string, error) {
	word = norm.NFD.String(word)
	return l.memo.GetOrCompute(word, func() (string, error) {
		for _, candidate := range PreTransformations(word) {
			if lemma, ok := l.words[candidate]; ok {
				return lemma, nil
			}
			if l.backoff == nil {
				continue
			}
			if lemma, ok := l.backoff.Lemmatize(candidate); ok {
				return norm.NFD.String(lemma), nil
			}
		}
		return "", errors.NewNotFound("lemma", word)
	})
}

// LookupAt is Lookup with a coordinate override checked first. If an
// override exists for coord but records a different word, the lookup fails
// with a NotFoundError rather than silently returning the wrong lemma.
func (l *Lemmatizer) LookupAt(word string, coord Coord) (string, error) {
	if o, ok := l.coords[coord]; ok {
		if nfd := norm.NFD.String(word); nfd != o.word {
			return "", &errors.NotFoundError{
				Resource: "override",
				ID:       fmt.Sprintf("%s (expected %q, got %q)", coord, o.word, nfd),
			}
		}
		return o.lemma, nil
	}
	return l.Lookup(word)
}

// Stats reports memoisation statistics.
func (l *Lemmatizer) Stats() cache.Stats {
	return l.memo.Stats()
}
