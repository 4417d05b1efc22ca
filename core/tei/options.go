package tei

import (
	"log/slog"
	"strings"

	"github.com/FocuswithJustin/greekverse/internal/logging"
)

// Options configures line extraction.
type Options struct {
	// BetaCode decodes text content from Beta Code before tokenizing, for
	// corpora that store Greek in transliteration.
	BetaCode bool

	// CheckLineNumbers logs a warning when an explicit line number does not
	// plausibly follow the previous line. The number is used regardless.
	CheckLineNumbers bool

	// MaxBookDepth is the deepest div nesting level at which a
	// type="textpart" div may be recognized as a book.
	MaxBookDepth int

	// BookTypes lists the div1 type and textpart subtype values that mark a
	// book, compared case-insensitively.
	BookTypes []string

	// Logger receives line-number warnings. Nil means the global logger.
	Logger *slog.Logger
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		CheckLineNumbers: true,
		MaxBookDepth:     2,
		BookTypes:        []string{"book", "hymn", "poem"},
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logging.GetLogger()
}

func (o Options) isBookType(value string) bool {
	for _, t := range o.BookTypes {
		if strings.EqualFold(t, value) {
			return true
		}
	}
	return false
}
