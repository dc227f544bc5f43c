package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/ltschart/pkg/chart/layout"
	"github.com/matzehuels/ltschart/pkg/chart/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, scene layout.Scene, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	svgOpts := svgOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(scene, svgOpts...)
		case FormatHTML:
			data = sink.RenderHTML(scene, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, scene, sink.WithPNGTheme(opts.Theme), sink.WithScale(opts.PNGScale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, scene, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(scene, sink.WithJSONTheme(opts.Theme))
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func svgOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithTheme(opts.Theme)}
	if opts.EmbedFont {
		svgOpts = append(svgOpts, sink.WithEmbeddedFont())
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	return svgOpts
}
