// Package source loads TEI documents from disk for the command line. It
// validates paths, enforces size limits, transparently decompresses xz and
// gzip files, and fingerprints the decompressed content with BLAKE3.
package source

import (
	"bytes"
	"compress/gzip"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/FocuswithJustin/greekverse/core/errors"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
)

// Compression identifies how a source file is stored.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionXZ   Compression = "xz"
	CompressionGzip Compression = "gzip"
)

var magicBytes = []struct {
	compression Compression
	magic       []byte
}{
	{CompressionXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{CompressionGzip, []byte{0x1f, 0x8b}},
}

// Limits bounds what Load accepts.
type Limits struct {
	// MaxBytes caps the decompressed size (0 = unlimited).
	MaxBytes int64
}

// DefaultLimits returns the limits used by the command line (256 MB).
func DefaultLimits() Limits {
	return Limits{MaxBytes: 256 << 20}
}

// Source is a loaded document.
type Source struct {
	Path        string
	Compression Compression
	StoredSize  int64 // size on disk
	Data        []byte
}

// Size returns the decompressed size.
func (s *Source) Size() int64 {
	return int64(len(s.Data))
}

// Fingerprint returns the hex BLAKE3 hash of the decompressed content.
func (s *Source) Fingerprint() string {
	return Fingerprint(s.Data)
}

// Fingerprint returns the hex BLAKE3 hash of data.
func Fingerprint(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Detect reports the compression of a file from its leading bytes.
func Detect(header []byte) Compression {
	for _, sig := range magicBytes {
		if bytes.HasPrefix(header, sig.magic) {
			return sig.compression
		}
	}
	return CompressionNone
}

// Load reads the file at path, decompressing it if needed.
func Load(path string, limits Limits) (*Source, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.NewIO("stat", path, err)
	}
	if info.IsDir() {
		return nil, errors.NewValidation("path", fmt.Sprintf("%s is a directory", path))
	}

	data, compression, err := Read(f, limits)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return &Source{
		Path:        path,
		Compression: compression,
		StoredSize:  info.Size(),
		Data:        data,
	}, nil
}

// Read reads all of r, decompressing it if its leading bytes say so.
func Read(r io.Reader, limits Limits) ([]byte, Compression, error) {
	header := make([]byte, 6)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, CompressionNone, errors.NewIO("read", "", err)
	}
	header = header[:n]
	r = io.MultiReader(bytes.NewReader(header), r)

	compression := Detect(header)
	switch compression {
	case CompressionXZ:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, compression, fmt.Errorf("xz reader: %w", err)
		}
		r = xzr
	case CompressionGzip:
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, compression, fmt.Errorf("gzip reader: %w", err)
		}
		defer gzr.Close()
		r = gzr
	}

	if limits.MaxBytes > 0 {
		r = io.LimitReader(r, limits.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, compression, errors.NewIO("read", "", err)
	}
	if limits.MaxBytes > 0 && int64(len(data)) > limits.MaxBytes {
		return nil, compression, &errors.ValidationError{
			Field:   "size",
			Message: fmt.Sprintf("content exceeds %d bytes", limits.MaxBytes),
		}
	}
	return data, compression, nil
}
