package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with ID",
			err:      &NotFoundError{Resource: "override", ID: "Il.1.1#1"},
			wantMsg:  "override not found: Il.1.1#1",
			wantBase: ErrNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "lemma"},
			wantMsg:  "lemma not found",
			wantBase: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	// Test with underlying error separately
	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("disk error")
		err := &NotFoundError{Resource: "file", ID: "test.txt", Err: underlyingErr}
		if got := err.Error(); got != "file not found: test.txt" {
			t.Errorf("Error() = %q, want %q", got, "file not found: test.txt")
		}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with field",
			err:      &ValidationError{Field: "path", Message: "must not be empty"},
			wantMsg:  "validation failed for path: must not be empty",
			wantBase: ErrInvalidInput,
		},
		{
			name:     "without field",
			err:      &ValidationError{Message: "invalid format"},
			wantMsg:  "validation failed: invalid format",
			wantBase: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("file too large")
		err := &ValidationError{Field: "size", Message: "over limit", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestIOError(t *testing.T) {
	baseErr := fmt.Errorf("permission denied")
	tests := []struct {
		name    string
		err     *IOError
		wantMsg string
	}{
		{
			name:    "with path",
			err:     &IOError{Operation: "read", Path: "/test/file.txt", Err: baseErr},
			wantMsg: "failed to read /test/file.txt: permission denied",
		},
		{
			name:    "without path",
			err:     &IOError{Operation: "write", Err: baseErr},
			wantMsg: "failed to write: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, baseErr) {
				t.Errorf("Unwrap() = %v, want %v", got, baseErr)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with input",
			err:      &ParseError{Format: "locator", Input: "1.", Message: "unexpected EOF"},
			wantMsg:  `failed to parse locator "1.": unexpected EOF`,
			wantBase: ErrInvalidInput,
		},
		{
			name:     "without input",
			err:      &ParseError{Format: "locator", Message: "empty string"},
			wantMsg:  "failed to parse locator: empty string",
			wantBase: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("unexpected token")
		err := &ParseError{Format: "locator", Input: "a.b.c", Message: "invalid syntax", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestDecodeError(t *testing.T) {
	tests := []struct {
		name    string
		err     *DecodeError
		wantMsg string
	}{
		{
			name:    "with key",
			err:     &DecodeError{Input: "a)(", Offset: 2, Key: "(", Message: "duplicate breathing"},
			wantMsg: `beta code: duplicate breathing "(" at "a)"|"("`,
		},
		{
			name:    "without key",
			err:     &DecodeError{Input: "*", Offset: 1, Message: "unexpected end of input"},
			wantMsg: `beta code: unexpected end of input at "*"|""`,
		},
		{
			name:    "offset past end is clamped",
			err:     &DecodeError{Input: "ab", Offset: 9, Message: "bad"},
			wantMsg: `beta code: bad at "ab"|""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrDecode) {
				t.Error("DecodeError does not match ErrDecode")
			}
		})
	}
}

func TestStructureError(t *testing.T) {
	tests := []struct {
		name    string
		err     *StructureError
		wantMsg string
	}{
		{
			name:    "element and context",
			err:     &StructureError{Element: "l", Context: "1.5", Message: "nested line"},
			wantMsg: "tei: <l>: nested line (1.5)",
		},
		{
			name:    "element only",
			err:     &StructureError{Element: "choice", Message: "missing corr"},
			wantMsg: "tei: <choice>: missing corr",
		},
		{
			name:    "context only",
			err:     &StructureError{Context: "abc", Message: "text outside a line"},
			wantMsg: "tei: text outside a line (abc)",
		},
		{
			name:    "message only",
			err:     &StructureError{Message: "unterminated line fragment"},
			wantMsg: "tei: unterminated line fragment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrStructure) {
				t.Error("StructureError does not match ErrStructure")
			}
		})
	}
}

func TestMalformedDocumentError(t *testing.T) {
	parserErr := fmt.Errorf("XML syntax error on line 3")

	err := &MalformedDocumentError{Path: "iliad.xml", Err: parserErr}
	if got, want := err.Error(), "malformed XML in iliad.xml: XML syntax error on line 3"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrMalformedDocument) {
		t.Error("MalformedDocumentError does not match ErrMalformedDocument")
	}
	if !errors.Is(err, parserErr) {
		t.Error("MalformedDocumentError does not unwrap to the parser error")
	}

	bare := &MalformedDocumentError{Err: parserErr}
	if got, want := bare.Error(), "malformed XML: XML syntax error on line 3"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(Wrap(bare, "open"), ErrMalformedDocument) {
		t.Error("wrapped MalformedDocumentError does not match ErrMalformedDocument")
	}
}

func TestHelperFunctions(t *testing.T) {
	t.Run("NewNotFound", func(t *testing.T) {
		err := NewNotFound("lemma", "test-id")
		if err.Resource != "lemma" || err.ID != "test-id" {
			t.Errorf("NewNotFound() = %+v, want Resource=lemma, ID=test-id", err)
		}
	})

	t.Run("NewValidation", func(t *testing.T) {
		err := NewValidation("path", "invalid format")
		if err.Field != "path" || err.Message != "invalid format" {
			t.Errorf("NewValidation() = %+v, want Field=path, Message=invalid format", err)
		}
	})

	t.Run("NewDecode", func(t *testing.T) {
		err := NewDecode("a//", 2, "/", "duplicate accent")
		if err.Input != "a//" || err.Offset != 2 || err.Key != "/" || err.Message != "duplicate accent" {
			t.Errorf("NewDecode() = %+v, unexpected values", err)
		}
	})

	t.Run("NewStructure", func(t *testing.T) {
		err := NewStructure("lb", "line break inside <l>")
		if err.Element != "lb" || err.Message != "line break inside <l>" {
			t.Errorf("NewStructure() = %+v, unexpected values", err)
		}
	})

	t.Run("NewIO", func(t *testing.T) {
		baseErr := fmt.Errorf("disk full")
		err := NewIO("write", "/tmp/test", baseErr)
		if err.Operation != "write" || err.Path != "/tmp/test" || err.Err != baseErr {
			t.Errorf("NewIO() = %+v, unexpected values", err)
		}
	})
}

func TestWrap(t *testing.T) {
	t.Run("wraps error", func(t *testing.T) {
		baseErr := fmt.Errorf("base error")
		wrapped := Wrap(baseErr, "context message")
		if wrapped == nil {
			t.Fatal("Wrap() returned nil")
		}
		if !errors.Is(wrapped, baseErr) {
			t.Errorf("Wrap() error does not unwrap to base error")
		}
		wantMsg := "context message: base error"
		if wrapped.Error() != wantMsg {
			t.Errorf("Wrap() = %q, want %q", wrapped.Error(), wantMsg)
		}
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		if got := Wrap(nil, "context"); got != nil {
			t.Errorf("Wrap(nil) = %v, want nil", got)
		}
	})
}

func TestWrapf(t *testing.T) {
	t.Run("wraps error with formatting", func(t *testing.T) {
		baseErr := fmt.Errorf("base error")
		wrapped := Wrapf(baseErr, "failed to process %s", "file.txt")
		if wrapped == nil {
			t.Fatal("Wrapf() returned nil")
		}
		if !errors.Is(wrapped, baseErr) {
			t.Errorf("Wrapf() error does not unwrap to base error")
		}
		wantMsg := "failed to process file.txt: base error"
		if wrapped.Error() != wantMsg {
			t.Errorf("Wrapf() = %q, want %q", wrapped.Error(), wantMsg)
		}
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		if got := Wrapf(nil, "context %s", "test"); got != nil {
			t.Errorf("Wrapf(nil) = %v, want nil", got)
		}
	})
}

func TestIs(t *testing.T) {
	err := &NotFoundError{Resource: "test"}
	if !Is(err, ErrNotFound) {
		t.Error("Is() failed to match NotFoundError to ErrNotFound")
	}
}

func TestAs(t *testing.T) {
	err := &NotFoundError{Resource: "test", ID: "123"}
	var nfErr *NotFoundError
	if !As(err, &nfErr) {
		t.Error("As() failed to match NotFoundError")
	}
	if nfErr.ID != "123" {
		t.Errorf("As() nfErr.ID = %q, want %q", nfErr.ID, "123")
	}
}
