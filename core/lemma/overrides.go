package lemma

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/greekverse/core/errors"
)

// LoadOverrides reads tab-separated overrides from r. A line holds either
// two fields (word, lemma) or six (work, book, line, word number, word,
// lemma). Blank lines and lines starting with '#' are skipped.
func (l *Lemmatizer) LoadOverrides(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		switch len(fields) {
		case 2:
			l.AddWord(fields[0], fields[1])
		case 6:
			n, err := strconv.Atoi(fields[3])
			if err != nil || n < 1 {
				return overrideError(lineNo, text, fmt.Sprintf("bad word number %q", fields[3]))
			}
			l.AddCoord(Coord{Work: fields[0], Book: fields[1], Line: fields[2], Word: n}, fields[4], fields[5])
		default:
			return overrideError(lineNo, text, fmt.Sprintf("expected 2 or 6 fields, got %d", len(fields)))
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.NewIO("read", "overrides", err)
	}
	return nil
}

func overrideError(lineNo int, text, message string) error {
	return &errors.ParseError{
		Format:  "override",
		Input:   text,
		Message: fmt.Sprintf("line %d: %s", lineNo, message),
	}
}
