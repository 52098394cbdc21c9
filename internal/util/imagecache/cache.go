// Package imagecache keeps downloaded images on disk, keyed by URL.
package imagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	httputil "github.com/jmylchreest/colorific/internal/util/http"
)

// Cache stores fetched image bytes in a directory.
type Cache struct {
	dir string
}

// DefaultDir returns the default cache directory path.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "colorific", "images"), nil
	}
	return filepath.Join(cacheDir, "colorific", "images"), nil
}

// New returns a cache rooted at dir, creating it if needed. An empty dir
// selects DefaultDir.
func New(dir string) (*Cache, error) {
	if dir == "" {
		defaultDir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = defaultDir
	}

	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Path returns where the image for url is stored.
func (c *Cache) Path(url string) string {
	return filepath.Join(c.dir, key(url))
}

// key derives a stable filename from a URL: a hash of the URL plus the
// extension of its path, when it has a short one.
func key(url string) string {
	sum := sha256.Sum256([]byte(url))
	name := hex.EncodeToString(sum[:16])

	p := url
	if i := strings.IndexAny(p, "?#"); i != -1 {
		p = p[:i]
	}
	if ext := path.Ext(p); ext != "" && len(ext) <= 5 && !strings.Contains(ext, "/") {
		name += strings.ToLower(ext)
	}
	return name
}

// Fetch returns the bytes at url, downloading them only when they are not
// already cached.
func (c *Cache) Fetch(ctx context.Context, url string) ([]byte, error) {
	cached := c.Path(url)
	data, err := os.ReadFile(cached) // #nosec G304 - Path derived from a hash inside the cache directory
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read cached image: %w", err)
	}

	data, err = httputil.Fetch(ctx, url, httputil.FetchOptions{})
	if err != nil {
		return nil, err
	}

	if err := c.store(cached, data); err != nil {
		return nil, err
	}
	return data, nil
}

// store writes data to dest through a temporary file so that readers
// never see a partial image.
func (c *Cache) store(dest string, data []byte) error {
	tmp, err := os.CreateTemp(c.dir, ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to store cached image: %w", err)
	}
	return nil
}
