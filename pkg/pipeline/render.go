package pipeline

import (
	"context"

	"github.com/matzehuels/stltree/pkg/errors"
	"github.com/matzehuels/stltree/pkg/render/nodelink"
	"github.com/matzehuels/stltree/pkg/render/tikz"
	"github.com/matzehuels/stltree/pkg/stl"
)

// Render generates the artifact for n without caching. opts must have been
// validated with ValidateAndSetDefaults.
func Render(ctx context.Context, n stl.Node, opts Options) ([]byte, error) {
	if opts.Format == FormatTeX {
		doc, err := tikz.ToDocument(n,
			tikz.WithStandalone(opts.Standalone),
			tikz.WithLibraries(opts.Libraries...),
		)
		if err != nil {
			return nil, err
		}
		return []byte(doc), nil
	}

	dot, err := nodelink.ToDOT(n, nodelink.Options{Detailed: opts.Detailed})
	if err != nil {
		return nil, err
	}
	switch opts.Format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot, opts.Scale)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", opts.Format)
}
