package lemma

import (
	"unicode"
)

const (
	acute = '\u0301'
	grave = '\u0300'
)

func isGreekVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'α', 'ε', 'η', 'ι', 'ο', 'υ', 'ω':
		return true
	}
	return false
}

// baseOf returns the index of the base character of the group ending at i:
// the nearest rune at or before i that is not a combining mark, or -1.
func baseOf(runes []rune, i int) int {
	for i >= 0 && unicode.Is(unicode.Mn, runes[i]) {
		i--
	}
	return i
}

// PreTransformations returns word followed by accent variants to try when
// the word itself is not found. Only the final vowel cluster is touched:
// scanning it from the end, each grave accent yields a variant with that
// grave made acute (a grave stands for an acute before another word), and
// each acute yields a variant with that acute removed (an enclitic may have
// thrown its accent back). Each variant differs from word in one mark.
// word must be NFD.
func PreTransformations(word string) []string {
	variants := []string{word}
	runes := []rune(word)

	// Skip trailing non-vowels, with their combining marks.
	i := len(runes) - 1
	for i >= 0 {
		base := baseOf(runes, i)
		if base >= 0 && isGreekVowel(runes[base]) {
			break
		}
		i = base - 1
	}

	// Walk the vowel cluster backward, one base letter at a time.
	for i >= 0 {
		base := baseOf(runes, i)
		if base < 0 || !isGreekVowel(runes[base]) {
			break
		}
		for j := i; j > base; j-- {
			switch runes[j] {
			case grave:
				variants = append(variants, replaceAt(runes, j, []rune{acute}))
			case acute:
				variants = append(variants, replaceAt(runes, j, nil))
			}
		}
		i = base - 1
	}
	return variants
}

func replaceAt(runes []rune, i int, with []rune) string {
	out := make([]rune, 0, len(runes)+len(with))
	out = append(out, runes[:i]...)
	out = append(out, with...)
	out = append(out, runes[i+1:]...)
	return string(out)
}
