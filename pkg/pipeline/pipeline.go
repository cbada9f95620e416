// Package pipeline provides the render pipeline shared by the CLI and the
// HTTP server.
//
// This package turns a decoded formula tree into an output artifact in one of
// the supported formats, with caching. By centralizing this logic, the
// render command, watch mode and the server behave identically.
//
// # Formats
//
//   - tex: TikZ source, a standalone LaTeX document or a figure fragment
//   - dot: Graphviz node-link diagram source
//   - svg, pdf, png: the node-link diagram rendered by Graphviz (pdf and
//     png additionally need rsvg-convert)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Libraries = []string{"arrows", "shapes"}
//	result, err := runner.Execute(ctx, tree, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifact)
//
// Use [Render] to bypass the cache.
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stltree/pkg/cache"
	"github.com/matzehuels/stltree/pkg/errors"
)

// Format constants for output formats.
const (
	FormatTeX = "tex"
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// DefaultFormat is the output format used when none is given.
const DefaultFormat = FormatTeX

// DefaultScale is the PNG scale factor used when none is given.
const DefaultScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatTeX: true,
	FormatDOT: true,
	FormatSVG: true,
	FormatPDF: true,
	FormatPNG: true,
}

var contentTypes = map[string]string{
	FormatTeX: "application/x-tex; charset=utf-8",
	FormatDOT: "text/vnd.graphviz; charset=utf-8",
	FormatSVG: "image/svg+xml",
	FormatPDF: "application/pdf",
	FormatPNG: "image/png",
}

// ContentType returns the MIME type of an artifact in format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// IsText reports whether artifacts in format are text and safe to print.
func IsText(format string) bool {
	return format == FormatTeX || format == FormatDOT || format == FormatSVG
}

// FormatFromPath infers the format from an output file name, e.g. "out.pdf".
// It returns "" for unknown extensions.
func FormatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "gv" {
		return FormatDOT
	}
	if ValidFormats[ext] {
		return ext
	}
	return ""
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one render.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Format is one of tex, dot, svg, pdf, png.
	Format string `json:"format"`

	// TikZ options
	Standalone bool     `json:"standalone"`
	Libraries  []string `json:"libraries,omitempty"`

	// Node-link options
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"` // PNG only

	// Runtime options (not serialized)
	Refresh bool          `json:"-"` // ignore cached artifacts
	TTL     time.Duration `json:"-"`
	Logger  *log.Logger   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns options for a standalone TikZ document without
// extra libraries.
func DefaultOptions() Options {
	return Options{Format: DefaultFormat, Standalone: true}
}

// Result contains the output of a pipeline run.
type Result struct {
	// Artifact is the rendered output.
	Artifact []byte

	// Format is the format of Artifact.
	Format string

	// TreeHash is the content hash of the canonical tree.
	TreeHash string

	// Cached reports whether Artifact came from the cache.
	Cached bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	Depth      int
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: tex, dot, svg, pdf, png)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := errors.ValidateLibraries(o.Libraries); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.TTL == 0 {
		o.TTL = cache.DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for the artifact. Options that
// do not affect the chosen format are left out so they do not split the
// cache.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: o.Format}
	switch o.Format {
	case FormatTeX:
		k.Standalone = o.Standalone
		if o.Standalone {
			k.Libraries = o.Libraries
		}
	case FormatPNG:
		k.Detailed = o.Detailed
		k.Scale = o.Scale
	default:
		k.Detailed = o.Detailed
	}
	return k
}
