package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/colorific/internal/colour"
	"github.com/jmylchreest/colorific/internal/image"
	"github.com/jmylchreest/colorific/internal/plugin/executor"
	"github.com/jmylchreest/colorific/internal/security"
	"github.com/jmylchreest/colorific/internal/util/imagecache"
)

// Output formats accepted by --format.
const (
	formatHex   = "hex"
	formatJSON  = "json"
	formatTable = "table"
)

var outputFormats = []string{formatHex, formatJSON, formatTable}

// extractOptions holds the flags of the extract command.
type extractOptions struct {
	config    colour.Config
	format    string
	output    string
	preview   bool
	cache     bool
	cacheDir  string
	plugins   []string
	pluginDir string
	border    string
}

// extraction is the palette of one input image.
type extraction struct {
	source  string
	palette *colour.Palette
}

func newExtractCmd() *cobra.Command {
	opts := &extractOptions{config: colour.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "extract <image> [image...]",
		Short: "Extract the main colours of one or more images",
		Long: `Extract the main colours of one or more images.

Each image is cropped of any white border, reduced to an adaptive palette
and its colours merged by perceptual distance. Greyish colours and the
background are set aside, and up to five colours are reported in order of
prominence.

Images may be local files or HTTP(S) URLs.
Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF

Examples:
  # Print the main colours of an image
  colorific extract photo.jpg

  # Print colours and background as JSON
  colorific extract --format json photo.jpg

  # Show a table with colour swatches
  colorific extract --format table --preview photo.jpg

  # Merge more aggressively and keep fewer colours
  colorific extract --min-distance 20 --max-colours 3 photo.jpg

  # Send the palette to an output plugin, writing its files to ./theme
  colorific extract --plugin ./colorific-css --plugin-dir theme photo.jpg

  # Extract from a URL, keeping the download for later runs
  colorific extract --cache https://example.com/photo.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("preview") {
				opts.preview = isTerminal(cmd.OutOrStdout()) && opts.output == ""
			}
			return runExtract(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&opts.config.MinSaturation, "min-saturation", colour.DefaultMinSaturation, "minimum HSV saturation of a reported colour [0,1)")
	flags.Float64Var(&opts.config.MinDistance, "min-distance", colour.DefaultMinDistance, "CMC distance below which colours are merged")
	flags.IntVar(&opts.config.MaxColors, "max-colours", colour.DefaultMaxColors, "maximum number of colours kept before reporting")
	flags.Float64Var(&opts.config.MinProminence, "min-prominence", colour.DefaultMinProminence, "minimum prominence relative to the most prominent colour [0,1]")
	flags.IntVar(&opts.config.NQuantized, "quantized", colour.DefaultQuantized, "number of colours in the adaptive palette (2-256)")
	flags.Float64Var(&opts.config.BackgroundProminence, "background-prominence", colour.DefaultBackgroundProminence, "prominence at which the top colour is taken as background (0,1]")
	flags.StringVarP(&opts.format, "format", "f", formatHex, "output format ("+strings.Join(outputFormats, ", ")+")")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	flags.BoolVar(&opts.preview, "preview", false, "show colour swatches (default: on when writing to a terminal)")
	flags.BoolVar(&opts.cache, "cache", false, "keep downloaded images and reuse them on later runs")
	flags.StringVar(&opts.cacheDir, "cache-dir", "", "directory for downloaded images (implies --cache)")
	flags.StringVar(&opts.border, "border", "#"+colour.White.Hex(), "border colour cropped from images before extraction (#rrggbb)")
	flags.StringArrayVar(&opts.plugins, "plugin", nil, "output plugin executable to send each palette to (repeatable)")
	flags.StringVar(&opts.pluginDir, "plugin-dir", ".", "directory for files written by output plugins")

	return cmd
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, opts *extractOptions, sources []string) error {
	if !slices.Contains(outputFormats, opts.format) {
		return fmt.Errorf("unsupported format: %s (supported: %s)", opts.format, strings.Join(outputFormats, ", "))
	}

	logger := newLogger(cmd)

	border, err := colour.ParseHex(opts.border)
	if err != nil {
		return fmt.Errorf("invalid border colour: %w", err)
	}
	preprocessor := image.NewPreprocessor()
	preprocessor.Border = border.RGBA()

	extractor, err := colour.NewExtractor(opts.config, preprocessor,
		colour.WithLogger(logger.Named("extract")))
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	var loaderOpts []image.LoaderOption
	if opts.cache || opts.cacheDir != "" {
		cache, err := imagecache.New(opts.cacheDir)
		if err != nil {
			return err
		}
		logger.Debug("caching downloaded images", "dir", cache.Dir())
		loaderOpts = append(loaderOpts, image.WithCache(cache))
	}

	loader := image.NewSmartLoader(loaderOpts...)
	results := make([]extraction, 0, len(sources))
	for _, source := range sources {
		logger.Debug("loading image", "source", source)
		img, err := loader.Load(cmd.Context(), source)
		if err != nil {
			return fmt.Errorf("failed to load image %s: %w", source, err)
		}

		bounds := img.Bounds()
		logger.Debug("image loaded", "source", source, "width", bounds.Dx(), "height", bounds.Dy())

		palette, err := extractor.Extract(img)
		if err != nil {
			return fmt.Errorf("failed to extract colours from %s: %w", source, err)
		}
		results = append(results, extraction{source: source, palette: palette})
	}

	if err := runPlugins(cmd, opts, logger, results); err != nil {
		return err
	}

	output, err := formatResults(results, opts.format, opts.preview)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), output)
		return err
	}

	if err := os.WriteFile(opts.output, []byte(output), 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Info("palette written", "path", opts.output, "images", len(results))
	return nil
}

// runPlugins sends every palette to each output plugin and writes the
// files they return under the plugin directory.
func runPlugins(cmd *cobra.Command, opts *extractOptions, logger hclog.Logger, results []extraction) error {
	for _, path := range opts.plugins {
		runner, err := executor.New(path, logger.Named("plugin"))
		if err != nil {
			return err
		}

		err = func() error {
			defer runner.Close()
			for _, r := range results {
				files, err := runner.Generate(cmd.Context(), executor.PaletteData(r.source, r.palette))
				if err != nil {
					return err
				}
				if err := writePluginFiles(opts.pluginDir, files, logger); err != nil {
					return err
				}
			}
			return nil
		}()
		if err != nil {
			return err
		}
	}
	return nil
}

// writePluginFiles writes files below dir in name order.
func writePluginFiles(dir string, files map[string][]byte, logger hclog.Logger) error {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		dest, err := security.SafeJoin(dir, name)
		if err != nil {
			return fmt.Errorf("refusing plugin output: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil { // #nosec G301 - Output directory needs standard permissions
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(dest, files[name], 0o644); err != nil { // #nosec G306 - Generated files are meant to be read by other tools
			return fmt.Errorf("failed to write plugin output: %w", err)
		}
		logger.Info("wrote plugin output", "path", dest)
	}
	return nil
}

// formatResults renders the palettes of all images. A header naming the
// source precedes each palette when there is more than one.
func formatResults(results []extraction, format string, preview bool) (string, error) {
	if format == formatJSON {
		return formatJSONResults(results)
	}

	var b strings.Builder
	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "%s:\n", r.source)
		}
		switch format {
		case formatTable:
			b.WriteString(paletteTable(r.palette, preview))
		default:
			b.WriteString(formatHexPalette(r.palette, preview))
		}
	}
	return b.String(), nil
}

// formatHexPalette lists the reported colours one per line, followed by
// the background when there is one.
func formatHexPalette(palette *colour.Palette, preview bool) string {
	var b strings.Builder
	for _, c := range palette.Reported() {
		if preview {
			b.WriteString(colour.FormatColourWithPreview(c, 8))
		} else {
			b.WriteString(c.Value.Hex())
		}
		b.WriteString("\n")
	}
	if bg := palette.Background; bg != nil {
		if preview {
			fmt.Fprintf(&b, "%s (background)\n", colour.FormatColourWithPreview(*bg, 8))
		} else {
			fmt.Fprintf(&b, "background: %s\n", bg.Value.Hex())
		}
	}
	return b.String()
}

// sourcePalette is the JSON form of a palette when several images are
// extracted at once.
type sourcePalette struct {
	Source  string          `json:"source"`
	Palette json.RawMessage `json:"palette"`
}

func formatJSONResults(results []extraction) (string, error) {
	if len(results) == 1 {
		data, err := results[0].palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	}

	out := make([]sourcePalette, 0, len(results))
	for _, r := range results {
		data, err := r.palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert %s to JSON: %w", r.source, err)
		}
		out = append(out, sourcePalette{Source: r.source, Palette: data})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to convert to JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// paletteTable renders the reported colours and background as a table.
func paletteTable(palette *colour.Palette, preview bool) string {
	headers := []string{"ROLE", "HEX", "RGB", "PROMINENCE"}
	if preview {
		headers = append([]string{"SWATCH"}, headers...)
	}
	table := NewTable(headers)

	addRow := func(role string, c colour.Color) {
		row := []string{role, c.Value.Hex(), c.Value.String(), fmt.Sprintf("%.1f%%", c.Prominence*100)}
		if preview {
			row = append([]string{colour.ColourPreviewWithText(c.Value, "Aa", 6)}, row...)
		}
		table.AddRow(row)
	}

	for i, c := range palette.Reported() {
		addRow(fmt.Sprintf("colour %d", i+1), c)
	}
	if palette.Background != nil {
		addRow("background", *palette.Background)
	}
	return table.Render()
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}
