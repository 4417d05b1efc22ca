package lemma

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/FocuswithJustin/greekverse/core/cache"
	apperrors "github.com/FocuswithJustin/greekverse/core/errors"
	"golang.org/x/text/unicode/norm"
)

var forms = []struct {
	name string
	form norm.Form
}{
	{"NFC", norm.NFC},
	{"NFKC", norm.NFKC},
	{"NFD", norm.NFD},
	{"NFKD", norm.NFKD},
}

func nfd(s string) string { return norm.NFD.String(s) }

func newTestLemmatizer() *Lemmatizer {
	l := New(Table{
		nfd("μῆνιν"):  "μῆνις",
		nfd("ἀγαθήν"): "ἀγαθός",
		nfd("τ’"):     "τε",
		nfd("βιόν"):   "βίος",
	}, cache.DefaultConfig())
	l.AddWord("βιὸν", "βιός")
	l.AddCoord(Coord{Work: "Argon.", Book: "1", Line: "134", Word: 2}, "ἦ", "ἦ")
	l.AddCoord(Coord{Work: "Argon.", Book: "1", Line: "306", Word: 1}, "ἦ", "ἠμί")
	return l
}

func TestLookupNormalization(t *testing.T) {
	l := newTestLemmatizer()
	tests := []struct {
		word, want string
	}{
		{"μῆνιν", "μῆνις"}, // backoff
		{"βιὸν", "βιός"},   // override wins over the backoff's βιόν
	}

	for _, tt := range tests {
		for _, f := range forms {
			t.Run(tt.word+"/"+f.name, func(t *testing.T) {
				got, err := l.Lookup(f.form.String(tt.word))
				if err != nil {
					t.Fatalf("Lookup() error: %v", err)
				}
				if got != nfd(tt.want) {
					t.Errorf("Lookup() = %q, want NFD %q", got, nfd(tt.want))
				}
			})
		}
	}
}

func TestLookupAt(t *testing.T) {
	l := newTestLemmatizer()
	tests := []struct {
		word  string
		want  string
		coord Coord
	}{
		{"ἦ", "ἦ", Coord{Work: "Argon.", Book: "1", Line: "134", Word: 2}},
		{"ἦ", "ἠμί", Coord{Work: "Argon.", Book: "1", Line: "306", Word: 1}},
	}

	for _, tt := range tests {
		for _, f := range forms {
			t.Run(tt.coord.String()+"/"+f.name, func(t *testing.T) {
				got, err := l.LookupAt(f.form.String(tt.word), tt.coord)
				if err != nil {
					t.Fatalf("LookupAt() error: %v", err)
				}
				if got != nfd(tt.want) {
					t.Errorf("LookupAt() = %q, want %q", got, nfd(tt.want))
				}
			})
		}
	}

	// The word at a coordinate must match the override.
	_, err := l.LookupAt("XXX", Coord{Work: "Argon.", Book: "1", Line: "306", Word: 1})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("LookupAt(mismatch) error = %v, want ErrNotFound", err)
	}

	// Without an override the plain lookup is used.
	if got, err := l.LookupAt("μῆνιν", Coord{Work: "Il.", Book: "1", Line: "1", Word: 1}); err != nil || got != nfd("μῆνις") {
		t.Errorf("LookupAt(no override) = %q, %v", got, err)
	}
}

func TestLookupUsesPreTransformations(t *testing.T) {
	l := newTestLemmatizer()
	for word, want := range map[string]string{
		"ἀγαθὴν": "ἀγαθός",
		"τ’":     "τε",
	} {
		got, err := l.Lookup(word)
		if err != nil {
			t.Errorf("Lookup(%q) error: %v", word, err)
			continue
		}
		if got != nfd(want) {
			t.Errorf("Lookup(%q) = %q, want %q", word, got, nfd(want))
		}
	}
}

func TestLookupNotFound(t *testing.T) {
	l := New(nil, cache.DefaultConfig())
	_, err := l.Lookup("ἄνδρα")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Lookup() error = %v, want ErrNotFound", err)
	}
	var nf *apperrors.NotFoundError
	if !errors.As(err, &nf) || nf.Resource != "lemma" {
		t.Errorf("error = %#v, want lemma NotFoundError", err)
	}
}

func TestLookupIsMemoised(t *testing.T) {
	calls := 0
	l := New(BackoffFunc(func(word string) (string, bool) {
		calls++
		return "x", true
	}), cache.Config{MaxSize: 8})

	for i := 0; i < 5; i++ {
		if _, err := l.Lookup("λόγος"); err != nil {
			t.Fatalf("Lookup() error: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("backoff called %d times, want 1", calls)
	}
	if s := l.Stats(); s.Hits != 4 || s.Misses != 1 {
		t.Errorf("Stats() = %+v, want 4 hits and 1 miss", s)
	}

	// New overrides invalidate memoised answers.
	l.AddWord("λόγος", "λέγω")
	if got, _ := l.Lookup("λόγος"); got != nfd("λέγω") {
		t.Errorf("Lookup() after AddWord = %q", got)
	}
}

func TestPreTransformations(t *testing.T) {
	tests := []struct {
		word string
		want []string
	}{
		// Non-letters.
		{"", []string{""}},
		{".", []string{"."}},
		{"abc", []string{"abc"}},
		// Single vowel, no trailing non-vowels.
		{"ἄϊδι", []string{"ἄϊδι"}},
		{"μηρὼ", []string{"μηρὼ", "μηρώ"}},
		{"δαιτί", []string{"δαιτί", "δαιτι"}},
		// Multiple vowels, no trailing non-vowels.
		{"Ζεῦ", []string{"Ζεῦ"}},
		{"ἀοιδοὶ", []string{"ἀοιδοὶ", "ἀοιδοί"}},
		{"πολεμήϊα", []string{"πολεμήϊα", "πολεμηϊα"}},
		// Single vowel with trailing non-vowels.
		{"ἀτροπος", []string{"ἀτροπος"}},
		{"σαρκὸς", []string{"σαρκὸς", "σαρκός"}},
		{"φρῖσσόν", []string{"φρῖσσόν", "φρῖσσον"}},
		// Multiple vowels with trailing non-vowels.
		{"σφεας", []string{"σφεας"}},
		{"ἀοιδοῖς", []string{"ἀοιδοῖς"}},
		{"περσεὺς", []string{"περσεὺς", "περσεύς"}},
		{"ὑμεναίους", []string{"ὑμεναίους", "ὑμεναιους"}},
		// Multiple diacritics, not all transformable.
		{"εἴδεΐ", []string{"εἴδεΐ", "εἴδεϊ"}},
		// Transformable diacritics not in the final syllable.
		{"κτείνειν", []string{"κτείνειν"}},
		{"κοΐλην", []string{"κοΐλην"}},
		{"Προΐωξίς", []string{"Προΐωξίς", "Προΐωξις"}},
		// More than one transformation.
		{"αβίὸν", []string{"αβίὸν", "αβίόν", "αβιὸν"}},
		{"αβό̀ν", []string{"αβό̀ν", "αβό́ν", "αβὸν"}},
		// A final vowel cluster spanning syllables is transformed throughout.
		{"ἁθρόοι", []string{"ἁθρόοι", "ἁθροοι"}},
		{"Ἠελίοιο", []string{"Ἠελίοιο", "Ἠελιοιο"}},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			word := nfd(tt.word)
			want := make([]string, len(tt.want))
			for i, w := range tt.want {
				want[i] = nfd(w)
			}
			if got := PreTransformations(word); !reflect.DeepEqual(got, want) {
				t.Errorf("PreTransformations(%q) = %q, want %q", word, got, want)
			}

			// Upper-case variants too.
			upper := strings.ToUpper(word)
			for i := range want {
				want[i] = strings.ToUpper(want[i])
			}
			if got := PreTransformations(upper); !reflect.DeepEqual(got, want) {
				t.Errorf("PreTransformations(%q) = %q, want %q", upper, got, want)
			}
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	input := "# overrides\n" +
		"βιὸν\tβιός\n" +
		"\n" +
		"Argon.\t1\t306\t1\tἦ\tἠμί\r\n"

	l := New(nil, cache.DefaultConfig())
	if err := l.LoadOverrides(strings.NewReader(input)); err != nil {
		t.Fatalf("LoadOverrides() error: %v", err)
	}
	if got, err := l.Lookup("βιὸν"); err != nil || got != nfd("βιός") {
		t.Errorf("Lookup(βιὸν) = %q, %v", got, err)
	}
	coord := Coord{Work: "Argon.", Book: "1", Line: "306", Word: 1}
	if got, err := l.LookupAt("ἦ", coord); err != nil || got != nfd("ἠμί") {
		t.Errorf("LookupAt(ἦ) = %q, %v", got, err)
	}
}

func TestLoadOverridesErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"one field", "βιὸν\n"},
		{"three fields", "a\tb\tc\n"},
		{"bad word number", "Argon.\t1\t306\tx\tἦ\tἠμί\n"},
		{"zero word number", "Argon.\t1\t306\t0\tἦ\tἠμί\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(nil, cache.DefaultConfig())
			err := l.LoadOverrides(strings.NewReader(tt.input))
			var perr *apperrors.ParseError
			if !errors.As(err, &perr) || perr.Format != "override" {
				t.Fatalf("LoadOverrides() error = %v, want override ParseError", err)
			}
			if !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Errorf("error does not wrap ErrInvalidInput: %v", err)
			}
		})
	}
}
