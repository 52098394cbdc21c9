// Package security provides input validation and resource limits for
// untrusted image sources.
package security

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
)

// ErrLimitExceeded is returned by LimitedReader once its budget is spent.
var ErrLimitExceeded = errors.New("size limit exceeded")

// ValidateImageURL checks that urlStr is an absolute HTTP(S) URL with a host.
func ValidateImageURL(urlStr string) error {
	if urlStr == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("only HTTP(S) URLs are allowed (got %q)", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must have a hostname")
	}
	if parsed.User != nil {
		return fmt.Errorf("URL must not carry credentials")
	}

	return nil
}

// SafeJoin joins a relative file path onto baseDir, rejecting absolute
// paths and paths that would escape baseDir.
func SafeJoin(baseDir, filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("empty file path")
	}
	if filepath.IsAbs(filePath) {
		return "", fmt.Errorf("absolute paths are not allowed: %s", filePath)
	}

	cleanBase := filepath.Clean(baseDir)
	final := filepath.Join(cleanBase, filePath)
	rel, err := filepath.Rel(cleanBase, final)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file path would escape base directory: %s", filePath)
	}
	return final, nil
}

// LimitedReader wraps an io.Reader and fails once more than Remaining
// bytes would be read. Unlike io.LimitReader it reports the overrun
// instead of a silent EOF, which guards against decompression bombs.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		// Probe for one more byte so that input ending exactly at the
		// limit is not reported as an overrun.
		var probe [1]byte
		n, err := l.R.Read(probe[:])
		if n > 0 {
			return 0, ErrLimitExceeded
		}
		return 0, err
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
