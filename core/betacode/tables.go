package betacode

// letterMap maps a Beta Code letter key (lower-case letter, optional "*"
// prefix for capitals, optional variant digits) to its Greek code point.
// "j" has no mapping.
var letterMap = map[string]string{
	"a": "α", "*a": "Α",
	"b": "β", "*b": "Β",
	"c": "ξ", "*c": "Ξ",
	"d": "δ", "*d": "Δ",
	"e": "ε", "*e": "Ε",
	"f": "φ", "*f": "Φ",
	"g": "γ", "*g": "Γ",
	"h": "η", "*h": "Η",
	"i": "ι", "*i": "Ι",
	"k": "κ", "*k": "Κ",
	"l": "λ", "*l": "Λ",
	"m": "μ", "*m": "Μ",
	"n": "ν", "*n": "Ν",
	"o": "ο", "*o": "Ο",
	"p": "π", "*p": "Π",
	"q": "θ", "*q": "Θ",
	"r": "ρ", "*r": "Ρ",
	// Plain "s" is emitted as final sigma and rewritten to medial when a
	// letter follows.
	"s": finalSigma, "*s": "Σ",
	"s1": medialSigma,
	"s2": finalSigma,
	"s3": "ϲ", "*s3": "Ϲ",
	"t": "τ", "*t": "Τ",
	"u": "υ", "*u": "Υ",
	"v": "ϝ", "*v": "Ϝ",
	"w": "ω", "*w": "Ω",
	"x": "χ", "*x": "Χ",
	"y": "ψ", "*y": "Ψ",
	"z": "ζ", "*z": "Ζ",
}

const (
	medialSigma = "σ"
	finalSigma  = "ς"
)

// nonletterMap holds the non-letter keys and the literal substitutions for
// code points that are not Beta Code sequences.
var nonletterMap = map[string]string{
	":": "·",
	"'": "’",
	"-": "‐",
	"_": "—",

	"[":  "[",
	"]":  "]",
	"[1": "(",
	"]1": ")",

	"\"": "\"",
}

// nonletterStarts are the symbols that begin a non-letter key. A key begun
// by one of these may be refined by digits ("[1"); keys missing from
// nonletterMap are errors.
const nonletterStarts = ":'-_$&^@{<>\"[]%#"

// diacriticMap maps Beta Code diacritic symbols to combining characters.
var diacriticMap = map[rune]rune{
	')':  '\u0313', // COMBINING COMMA ABOVE
	'(':  '\u0314', // COMBINING REVERSED COMMA ABOVE
	'/':  '\u0301', // COMBINING ACUTE ACCENT
	'=':  '\u0342', // COMBINING GREEK PERISPOMENI
	'\\': '\u0300', // COMBINING GRAVE ACCENT
	'+':  '\u0308', // COMBINING DIAERESIS
	'|':  '\u0345', // COMBINING GREEK YPOGEGRAMMENI
	'?':  '\u0323', // COMBINING DOT BELOW
}

// diacriticTier orders diacritics so that the decoded sequence composes fully
// under NFC. Breathings and diaeresis must precede the accents: all six have
// canonical combining class 230, so normalization keeps whatever order they
// arrive in, and only breathing-then-accent matches the decompositions of the
// precomposed Greek letters. Dot below (220) and ypogegrammeni (240) are
// placed in combining-class order.
//
// Two diacritics in the same tier cannot be ordered and must not share a
// base letter.
var diacriticTier = map[rune]int{
	'?': 0,
	'(': 1, ')': 1, '+': 1,
	'/': 2, '\\': 2, '=': 2,
	'|': 3,
}

// Tier returns the ordering tier of a Beta Code diacritic symbol.
func Tier(symbol rune) (int, bool) {
	t, ok := diacriticTier[symbol]
	return t, ok
}

// IsDiacritic reports whether r is a Beta Code diacritic symbol.
func IsDiacritic(r rune) bool {
	_, ok := diacriticMap[r]
	return ok
}
