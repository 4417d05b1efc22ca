// Package betacode decodes Beta Code, the ASCII transliteration of
// polytonic Greek, into Unicode.
//
// References:
//   - http://www.stoa.org/unicode/
//   - http://www.tlg.uci.edu/encoding/quickbeta.pdf
//
// Decoding is a whole-string operation: on error no partial output is
// returned. Output is always in NFD. The tables are read-only, so Decode is
// safe for concurrent use.
package betacode

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/FocuswithJustin/greekverse/core/errors"
	"golang.org/x/text/unicode/norm"
)

type state int

const (
	stateInit state = iota
	stateLetterPrediacritics
	stateLetterDigits
	stateNonletterDigits
	stateLetterPostdiacritics
	stateEmit
	stateDone
)

// decoder holds the scanning state for one call to Decode.
type decoder struct {
	input string
	runes []rune
	pos   int // number of runes consumed

	out []rune

	// prevKey is the key of the most recently emitted character; it decides
	// whether a following "s" is medial.
	prevKey string
	// prevBase indexes the most recently emitted base character in out, so
	// an already emitted final sigma can be rewritten to medial.
	prevBase int
}

// Decode converts Beta Code to Unicode in NFD. Code points that are not part
// of a Beta Code sequence are copied through, except for the literal
// substitutions colon → middle dot, apostrophe → right single quotation
// mark, hyphen → hyphen (U+2010) and underscore → em dash.
//
// Decode fails with *errors.DecodeError on a diacritic with no base letter,
// a duplicated diacritic, two diacritics that cannot be ordered, an unknown
// key (such as "*s1", which has no capital form), or a trailing "*".
func Decode(beta string) (string, error) {
	d := &decoder{
		input:    beta,
		runes:    []rune(beta),
		prevBase: -1,
	}
	out, err := d.run()
	if err != nil {
		return "", err
	}
	return norm.NFD.String(out), nil
}

func (d *decoder) next() (rune, bool) {
	if d.pos < len(d.runes) {
		r := d.runes[d.pos]
		d.pos++
		return r, true
	}
	return 0, false
}

func (d *decoder) fail(key, format string, args ...any) error {
	return errors.NewDecode(d.input, d.pos, key, fmt.Sprintf(format, args...))
}

func (d *decoder) run() (string, error) {
	var (
		key        string
		diacritics []rune
	)

	c, ok := d.next()
	st := stateInit
	for st != stateDone {
		switch st {
		case stateInit:
			key = ""
			diacritics = diacritics[:0]

			switch {
			case !ok:
				st = stateDone
			case c == '`':
				// Separator: interrupts a sequence, emits nothing.
				c, ok = d.next()
			case c == '*':
				key = "*"
				st = stateLetterPrediacritics
				c, ok = d.next()
			case unicode.IsLetter(c):
				key = string(unicode.ToLower(c))
				st = stateLetterDigits
				c, ok = d.next()
			case strings.ContainsRune(nonletterStarts, c):
				key = string(c)
				st = stateNonletterDigits
				c, ok = d.next()
			case IsDiacritic(c):
				return "", d.fail(string(c), "unexpected diacritic")
			default:
				// Not a Beta Code sequence; copy the code point.
				d.prevKey = string(c)
				d.prevBase = len(d.out)
				d.out = append(d.out, literal(c))
				c, ok = d.next()
			}

		case stateLetterPrediacritics:
			switch {
			case ok && IsDiacritic(c):
				if slices.Contains(diacritics, c) {
					return "", d.fail(string(c), "duplicate diacritic")
				}
				diacritics = append(diacritics, c)
				c, ok = d.next()
			case ok && unicode.IsLetter(c):
				key += string(unicode.ToLower(c))
				st = stateLetterDigits
				c, ok = d.next()
			default:
				return "", d.fail(key, "expected diacritic or letter after")
			}

		case stateLetterDigits:
			if ok && isDigit(c) {
				key += string(c)
				c, ok = d.next()
			} else {
				st = stateLetterPostdiacritics
			}

		case stateNonletterDigits:
			if ok && isDigit(c) {
				key += string(c)
				c, ok = d.next()
			} else {
				st = stateEmit
			}

		case stateLetterPostdiacritics:
			if ok && IsDiacritic(c) {
				if slices.Contains(diacritics, c) {
					return "", d.fail(string(c), "duplicate diacritic")
				}
				diacritics = append(diacritics, c)
				c, ok = d.next()
			} else {
				st = stateEmit
			}

		case stateEmit:
			if err := d.emit(key, diacritics); err != nil {
				return "", err
			}
			st = stateInit
		}
	}

	return string(d.out), nil
}

// emit appends the glyph for key and its ordered combining diacritics,
// resolving sigma forms against the previously emitted key.
func (d *decoder) emit(key string, diacritics []rune) error {
	_, isLetter := letterMap[key]
	if d.prevKey == "s" && d.prevBase >= 0 && string(d.out[d.prevBase]) == finalSigma && isLetter {
		d.out[d.prevBase] = []rune(medialSigma)[0]
	}
	if _, prevLetter := letterMap[d.prevKey]; !prevLetter && key == "s" {
		// Word-initial sigma is always medial.
		key = "s1"
	}

	glyph, ok := lookup(key)
	if !ok {
		return d.fail(key, "unknown character")
	}
	ordered, err := orderDiacritics(diacritics)
	if err != nil {
		return d.fail(key, "%v on", err)
	}

	d.prevKey = key
	d.prevBase = len(d.out)
	d.out = append(d.out, glyph)
	for _, sym := range ordered {
		d.out = append(d.out, diacriticMap[sym])
	}
	return nil
}

// orderDiacritics sorts diacritic symbols by tier. It fails when two
// symbols share a tier.
func orderDiacritics(symbols []rune) ([]rune, error) {
	seen := make(map[int]rune, len(symbols))
	for _, sym := range symbols {
		t := diacriticTier[sym]
		if other, dup := seen[t]; dup {
			return nil, fmt.Errorf("cannot order diacritics %q and %q", other, sym)
		}
		seen[t] = sym
	}
	ordered := slices.Clone(symbols)
	slices.SortFunc(ordered, func(a, b rune) int {
		return cmp.Compare(diacriticTier[a], diacriticTier[b])
	})
	return ordered, nil
}

func lookup(key string) (rune, bool) {
	s, ok := letterMap[key]
	if !ok {
		s, ok = nonletterMap[key]
	}
	if !ok {
		return 0, false
	}
	return []rune(s)[0], true
}

func literal(c rune) rune {
	if s, ok := nonletterMap[string(c)]; ok {
		return []rune(s)[0]
	}
	return c
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
