package colour

import (
	"errors"
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"
)

// DefaultQuantized is the size of the adaptive palette the image is reduced
// to before aggregation.
const DefaultQuantized = 200

// Quantized is a preprocessed image: its pixels, restricted to a small
// palette, and the histogram of that palette.
type Quantized struct {
	// Pixels is the quantised pixel grid. Border sampling reads from it.
	Pixels PixelSource

	// Counts lists each palette colour with its pixel count, in the
	// quantiser's enumeration order.
	Counts []Count
}

// Preprocessor reduces an image to at most n representative colours.
type Preprocessor interface {
	Preprocess(img image.Image, n int) (*Quantized, error)
}

// Config holds the tunables of the extraction pipeline.
type Config struct {
	// MinSaturation is the HSV saturation a colour must exceed to be kept.
	MinSaturation float64

	// MinDistance is the CMC distance below which colours are merged.
	MinDistance float64

	// MaxColors caps the number of foreground colours kept after filtering.
	MaxColors int

	// MinProminence is the fraction of the top colour's prominence a colour
	// needs to be kept.
	MinProminence float64

	// NQuantized is the number of colours the image is quantised to.
	NQuantized int

	// BackgroundProminence is the prominence at which the top colour is
	// assumed to be the background.
	BackgroundProminence float64
}

// DefaultConfig returns the default extraction configuration.
func DefaultConfig() Config {
	return Config{
		MinSaturation:        DefaultMinSaturation,
		MinDistance:          DefaultMinDistance,
		MaxColors:            DefaultMaxColors,
		MinProminence:        DefaultMinProminence,
		NQuantized:           DefaultQuantized,
		BackgroundProminence: DefaultBackgroundProminence,
	}
}

// Validate validates the extraction configuration.
func (c Config) Validate() error {
	if c.MinSaturation < 0 || c.MinSaturation >= 1 {
		return fmt.Errorf("min saturation must be in [0, 1), got %g", c.MinSaturation)
	}
	if c.MinDistance <= 0 {
		return fmt.Errorf("min distance must be positive, got %g", c.MinDistance)
	}
	if c.MaxColors < 1 {
		return fmt.Errorf("max colours must be at least 1, got %d", c.MaxColors)
	}
	if c.MinProminence < 0 || c.MinProminence > 1 {
		return fmt.Errorf("min prominence must be in [0, 1], got %g", c.MinProminence)
	}
	if c.NQuantized < 2 {
		return fmt.Errorf("quantised colour count must be at least 2, got %d", c.NQuantized)
	}
	if c.NQuantized > 256 {
		return fmt.Errorf("quantised colour count too large: %d (maximum: 256)", c.NQuantized)
	}
	if c.BackgroundProminence <= 0 || c.BackgroundProminence > 1 {
		return fmt.Errorf("background prominence must be in (0, 1], got %g", c.BackgroundProminence)
	}
	return nil
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger hclog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// Extractor runs the palette extraction pipeline. It holds no per-call
// state and may be shared between goroutines.
type Extractor struct {
	cfg          Config
	preprocessor Preprocessor
	logger       hclog.Logger
}

// NewExtractor creates an Extractor. The configuration is validated here
// so Extract never sees bad tunables.
func NewExtractor(cfg Config, preprocessor Preprocessor, opts ...Option) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if preprocessor == nil {
		return nil, errors.New("preprocessor cannot be nil")
	}

	e := &Extractor{
		cfg:          cfg,
		preprocessor: preprocessor,
		logger:       hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the extractor's configuration.
func (e *Extractor) Config() Config {
	return e.cfg
}

// Extract determines the main colours of img.
func (e *Extractor) Extract(img image.Image) (*Palette, error) {
	if img == nil {
		return nil, errors.New("image cannot be nil")
	}

	quantized, err := e.preprocessor.Preprocess(img, e.cfg.NQuantized)
	if err != nil {
		return nil, fmt.Errorf("failed to preprocess image: %w", err)
	}
	bounds := quantized.Pixels.Bounds()
	e.logger.Debug("image quantised", "width", bounds.Dx(), "height", bounds.Dy(), "colours", len(quantized.Counts))

	agg, err := Aggregate(quantized.Counts, e.cfg.MinDistance)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate colours: %w", err)
	}
	e.logger.Trace("colours aggregated", "canonical", len(agg.Colours))

	ranked, err := Rank(agg, bounds.Dx()*bounds.Dy())
	if err != nil {
		return nil, err
	}

	colors, bg, err := DetectBackground(ranked, agg.Canonical, quantized.Pixels, e.cfg.BackgroundProminence)
	if err != nil {
		return nil, err
	}
	if bg != nil {
		e.logger.Debug("background detected", "colour", bg.Value.Hex(), "prominence", bg.Prominence)
	}

	colors = FilterSaturation(colors, e.cfg.MinSaturation)
	bg = SaturatedBackground(bg, e.cfg.MinSaturation)
	colors = FilterProminence(colors, e.cfg.MinProminence, e.cfg.MaxColors)

	palette := NewPalette(colors, bg)
	e.logger.Debug("palette extracted", "colours", palette.Len(), "background", bg != nil)
	return palette, nil
}

// ExtractHex determines the main colours of img and returns the reported
// ones as hex strings.
func (e *Extractor) ExtractHex(img image.Image) ([]string, error) {
	palette, err := e.Extract(img)
	if err != nil {
		return nil, err
	}
	return palette.Hex(), nil
}
