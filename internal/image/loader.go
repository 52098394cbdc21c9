// Package image loads images and prepares them for palette extraction.
package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/colorific/internal/compression"
	"github.com/jmylchreest/colorific/internal/security"
	httputil "github.com/jmylchreest/colorific/internal/util/http"
	"github.com/jmylchreest/colorific/internal/util/imagecache"
)

// ErrSourceNotFound is returned when an image path does not exist.
var ErrSourceNotFound = errors.New("image source not found")

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(ctx context.Context, path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP, BMP, TIFF, optionally wrapped in
// gzip, xz or bzip2 compression.
func (l *FileLoader) Load(_ context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve image path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, abs)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", abs)
	}

	data, err := os.ReadFile(abs) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	img, err := LoadBytes(data)
	if err != nil && !IsImageFile(abs) {
		return nil, fmt.Errorf("%w (unsupported extension %q)", err, filepath.Ext(abs))
	}
	return img, err
}

// LoadBytes decodes an image held in memory, decompressing it first when
// it is gzip, xz or bzip2 compressed.
func LoadBytes(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data cannot be empty")
	}

	data, _, err := compression.Decompress(data, 0)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff"}
}

// compressedExtensions are stripped before matching an image extension.
var compressedExtensions = []string{".gz", ".xz", ".bz2"}

// IsImageFile checks if a file has a supported image extension, possibly
// followed by a compression extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if slices.Contains(compressedExtensions, ext) {
		path = strings.TrimSuffix(path, filepath.Ext(path))
		ext = strings.ToLower(filepath.Ext(path))
	}
	return slices.Contains(SupportedImageExtensions(), ext)
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
	cache      *imagecache.Cache
}

// LoaderOption configures a SmartLoader.
type LoaderOption func(*SmartLoader)

// WithCache keeps downloaded images in cache and reuses them on later loads.
func WithCache(cache *imagecache.Cache) LoaderOption {
	return func(l *SmartLoader) {
		l.cache = cache
	}
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader(opts ...LoaderOption) *SmartLoader {
	l := &SmartLoader{
		fileLoader: NewFileLoader(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if isURL(path) {
		return l.loadFromURL(ctx, path)
	}
	return l.fileLoader.Load(ctx, path)
}

// loadFromURL fetches and decodes an image from an HTTP(S) URL.
func (l *SmartLoader) loadFromURL(ctx context.Context, url string) (image.Image, error) {
	if err := security.ValidateImageURL(url); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	if l.cache != nil {
		data, err = l.cache.Fetch(ctx, url)
	} else {
		data, err = httputil.Fetch(ctx, url, httputil.FetchOptions{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}

	return LoadBytes(data)
}
