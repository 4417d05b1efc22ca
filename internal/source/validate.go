package source

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/FocuswithJustin/greekverse/core/errors"
)

// MaxPathLength is the maximum accepted source path length.
const MaxPathLength = 4096

// ValidatePath rejects paths that are empty, too long, or carry null bytes
// or control characters.
func ValidatePath(path string) error {
	if path == "" {
		return errors.NewValidation("path", "path cannot be empty")
	}
	if len(path) > MaxPathLength {
		return errors.NewValidation("path", fmt.Sprintf("path longer than %d bytes", MaxPathLength))
	}
	if strings.Contains(path, "\x00") {
		return errors.NewValidation("path", "null byte not allowed")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return errors.NewValidation("path", "control character not allowed")
		}
	}
	return nil
}
