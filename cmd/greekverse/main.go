// Command greekverse extracts verse lines from TEI-encoded Greek poetry and
// decodes Beta Code.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"github.com/FocuswithJustin/greekverse/core/betacode"
	"github.com/FocuswithJustin/greekverse/core/cache"
	"github.com/FocuswithJustin/greekverse/core/errors"
	"github.com/FocuswithJustin/greekverse/core/lemma"
	"github.com/FocuswithJustin/greekverse/core/tei"
	"github.com/FocuswithJustin/greekverse/core/verse"
	"github.com/FocuswithJustin/greekverse/internal/logging"
	"github.com/FocuswithJustin/greekverse/internal/source"
)

const version = "0.1.0"

// CLI defines the command-line interface for greekverse.
type CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"warn" enum:"debug,info,warn,error" env:"GREEKVERSE_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" env:"GREEKVERSE_LOG_FORMAT" help:"Log format (text, json)"`

	Decode  DecodeCmd  `cmd:"" help:"Decode Beta Code to Unicode Greek"`
	Lines   LinesCmd   `cmd:"" help:"Print the verse lines of a TEI document"`
	Info    InfoCmd    `cmd:"" help:"Summarize a TEI document"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// runContext carries what every command needs. It is bound into kong so
// that Run methods receive it.
type runContext struct {
	ctx    context.Context
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name("greekverse"),
		kong.Description("Verse line extraction for TEI Greek poetry"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	}
}

// run configures logging from the global flags, tags the invocation with a
// run ID and dispatches to the selected command.
func (c *CLI) run(kctx *kong.Context, rc *runContext) error {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return err
	}
	logging.SetLogger(logging.NewLogger(rc.stderr, level, format))
	rc.ctx = logging.WithRunID(rc.ctx, logging.NewRunID())
	return kctx.Run(rc)
}

// DecodeCmd decodes Beta Code given as arguments, or line by line from
// standard input when there are none.
type DecodeCmd struct {
	Text []string `arg:"" optional:"" help:"Beta Code strings to decode"`
}

func (c *DecodeCmd) Run(rc *runContext) error {
	if len(c.Text) > 0 {
		for _, beta := range c.Text {
			if err := decodeLine(rc.stdout, beta); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(rc.stdin)
	for scanner.Scan() {
		if err := decodeLine(rc.stdout, scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.NewIO("read", "stdin", err)
	}
	return nil
}

func decodeLine(w io.Writer, beta string) error {
	greek, err := betacode.Decode(beta)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, greek)
	return err
}

// LinesCmd prints one verse line per output line, prefixed by its locator.
type LinesCmd struct {
	Path          string `arg:"" help:"TEI document (.xml, optionally xz or gzip compressed)"`
	Beta          bool   `help:"Text content is Beta Code"`
	From          string `help:"First locator to print (line or book.line)"`
	To            string `help:"Last locator to print (line or book.line)"`
	WithoutQuotes bool   `name:"without-quotes" help:"Drop quotation marks"`
	Words         bool   `help:"Print the words of each line separated by tabs"`
	Lemmas        string `help:"Tab-separated lemma overrides; print word/lemma pairs" type:"existingfile"`
	Work          string `help:"Work abbreviation for coordinate lemma overrides"`
	NoCheck       bool   `name:"no-check-line-numbers" help:"Do not warn about implausible line numbers"`
	MaxBookDepth  int    `name:"max-book-depth" default:"2" help:"Deepest div level recognized as a book"`
	MaxBytes      int64  `name:"max-bytes" default:"268435456" help:"Maximum decompressed document size"`
}

func (c *LinesCmd) Run(rc *runContext) error {
	from, to, err := c.bounds()
	if err != nil {
		return err
	}

	var lemmatizer *lemma.Lemmatizer
	if c.Lemmas != "" {
		if lemmatizer, err = loadLemmatizer(c.Lemmas); err != nil {
			return err
		}
	}

	start := time.Now()
	src, doc, err := loadDocument(rc.ctx, c.Path, c.MaxBytes)
	if err != nil {
		return err
	}

	opts := tei.DefaultOptions()
	opts.BetaCode = c.Beta
	opts.CheckLineNumbers = !c.NoCheck
	opts.MaxBookDepth = c.MaxBookDepth
	opts.Logger = logging.LoggerFromContext(rc.ctx)

	count := 0
	err = doc.Each(opts, func(e verse.Entry) error {
		if !inRange(e.Locator, from, to) {
			return nil
		}
		count++
		text, err := c.render(e, lemmatizer)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(rc.stdout, "%s\t%s\n", e.Locator, text)
		return err
	})
	if err != nil {
		logging.DocumentError(rc.ctx, c.Path, "lines", err)
		return err
	}
	logging.DocumentProcessed(rc.ctx, c.Path, count, time.Since(start), "blake3", src.Fingerprint())
	return nil
}

func (c *LinesCmd) bounds() (from, to *verse.Locator, err error) {
	if c.From != "" {
		loc, err := verse.ParseLocator(c.From)
		if err != nil {
			return nil, nil, err
		}
		from = &loc
	}
	if c.To != "" {
		loc, err := verse.ParseLocator(c.To)
		if err != nil {
			return nil, nil, err
		}
		to = &loc
	}
	return from, to, nil
}

func (c *LinesCmd) render(e verse.Entry, lemmatizer *lemma.Lemmatizer) (string, error) {
	switch {
	case lemmatizer != nil:
		words := e.Line.Words()
		pairs := make([]string, len(words))
		for i, word := range words {
			coord := lemma.Coord{Work: c.Work, Book: e.Locator.Book, Line: e.Locator.Line, Word: i + 1}
			l, err := lemmatizer.LookupAt(word, coord)
			if errors.Is(err, errors.ErrNotFound) {
				l = "?"
			} else if err != nil {
				return "", err
			}
			pairs[i] = word + "/" + l
		}
		return strings.Join(pairs, " "), nil
	case c.Words:
		return strings.Join(e.Line.Words(), "\t"), nil
	case c.WithoutQuotes:
		return e.Line.TextWithoutQuotes(), nil
	}
	return e.Line.Text(), nil
}

// inRange reports whether loc lies within the optional bounds. A bound
// without a book applies to every book.
func inRange(loc verse.Locator, from, to *verse.Locator) bool {
	if from != nil && loc.Compare(inBook(*from, loc.Book)) < 0 {
		return false
	}
	if to != nil && loc.Compare(inBook(*to, loc.Book)) > 0 {
		return false
	}
	return true
}

func inBook(bound verse.Locator, book string) verse.Locator {
	if bound.Book == "" {
		bound.Book = book
	}
	return bound
}

func loadLemmatizer(path string) (*lemma.Lemmatizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	l := lemma.New(nil, cache.DefaultConfig())
	if err := l.LoadOverrides(f); err != nil {
		return nil, errors.Wrapf(err, "load lemmas %s", path)
	}
	return l, nil
}

func loadDocument(ctx context.Context, path string, maxBytes int64) (*source.Source, *tei.Document, error) {
	src, err := source.Load(path, source.Limits{MaxBytes: maxBytes})
	if err != nil {
		logging.DocumentError(ctx, path, "load", err)
		return nil, nil, err
	}
	doc, err := tei.Parse(src.Data)
	if err != nil {
		logging.DocumentError(ctx, path, "parse", err)
		return nil, nil, err
	}
	return src, doc, nil
}

// InfoCmd prints document metadata and counts.
type InfoCmd struct {
	Path     string `arg:"" help:"TEI document (.xml, optionally xz or gzip compressed)"`
	Beta     bool   `help:"Text content is Beta Code"`
	MaxBytes int64  `name:"max-bytes" default:"268435456" help:"Maximum decompressed document size"`
}

func (c *InfoCmd) Run(rc *runContext) error {
	start := time.Now()
	src, doc, err := loadDocument(rc.ctx, c.Path, c.MaxBytes)
	if err != nil {
		return err
	}

	title, err := doc.Title()
	if err != nil {
		return err
	}
	author, err := doc.Author()
	if err != nil {
		return err
	}

	opts := tei.DefaultOptions()
	opts.BetaCode = c.Beta
	opts.CheckLineNumbers = false

	var lines, words int
	var books []string
	err = doc.Each(opts, func(e verse.Entry) error {
		lines++
		words += len(e.Line.Words())
		if e.Locator.Book != "" && (len(books) == 0 || books[len(books)-1] != e.Locator.Book) {
			books = append(books, e.Locator.Book)
		}
		return nil
	})
	if err != nil {
		logging.DocumentError(rc.ctx, c.Path, "info", err)
		return err
	}

	w := rc.stdout
	fmt.Fprintf(w, "Path:        %s\n", src.Path)
	fmt.Fprintf(w, "Title:       %s\n", orNone(title))
	fmt.Fprintf(w, "Author:      %s\n", orNone(author))
	fmt.Fprintf(w, "Compression: %s\n", src.Compression)
	fmt.Fprintf(w, "Stored:      %s\n", humanize.Bytes(uint64(src.StoredSize)))
	fmt.Fprintf(w, "Size:        %s\n", humanize.Bytes(uint64(src.Size())))
	fmt.Fprintf(w, "BLAKE3:      %s\n", src.Fingerprint())
	fmt.Fprintf(w, "Books:       %s\n", humanize.Comma(int64(len(books))))
	fmt.Fprintf(w, "Lines:       %s\n", humanize.Comma(int64(lines)))
	fmt.Fprintf(w, "Words:       %s\n", humanize.Comma(int64(words)))

	logging.DocumentProcessed(rc.ctx, c.Path, lines, time.Since(start))
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

type VersionCmd struct{}

func (c *VersionCmd) Run(rc *runContext) error {
	fmt.Fprintf(rc.stdout, "greekverse version %s\n", version)
	return nil
}

func main() {
	var cli CLI
	rc := &runContext{
		ctx:    context.Background(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	ctx := kong.Parse(&cli, options()...)
	err := cli.run(ctx, rc)
	ctx.FatalIfErrorf(err)
}
