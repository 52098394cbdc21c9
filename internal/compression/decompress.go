// Package compression transparently unwraps compressed image files.
package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/colorific/internal/security"
)

// DefaultMaxBytes bounds the size of decompressed data.
const DefaultMaxBytes int64 = 256 << 20

// Format identifies a compression container.
type Format string

// Supported compression formats.
const (
	None  Format = ""
	Gzip  Format = "gzip"
	Xz    Format = "xz"
	Bzip2 Format = "bzip2"
)

var magic = []struct {
	format Format
	prefix []byte
}{
	{Gzip, []byte{0x1f, 0x8b}},
	{Xz, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
	{Bzip2, []byte("BZh")},
}

// Detect identifies the compression format of data from its leading bytes.
func Detect(data []byte) Format {
	for _, m := range magic {
		if bytes.HasPrefix(data, m.prefix) {
			return m.format
		}
	}
	return None
}

// Decompress returns the decompressed contents of data and the format it
// was stored in. Data in no known format is returned unchanged. Output
// larger than maxBytes is an error; zero means DefaultMaxBytes.
func Decompress(data []byte, maxBytes int64) ([]byte, Format, error) {
	if maxBytes == 0 {
		maxBytes = DefaultMaxBytes
	}

	format := Detect(data)
	var r io.Reader
	switch format {
	case Gzip:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, format, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzr.Close()
		r = gzr
	case Xz:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, format, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzr
	case Bzip2:
		r = bzip2.NewReader(bytes.NewReader(data))
	default:
		return data, None, nil
	}

	out, err := io.ReadAll(security.NewLimitedReader(r, maxBytes))
	if err != nil {
		return nil, format, fmt.Errorf("failed to decompress %s data: %w", format, err)
	}
	return out, format, nil
}
