package pipeline

import (
	"github.com/matzehuels/ltschart/pkg/chart/layout"
	"github.com/matzehuels/ltschart/pkg/segment"
)

// Layout places segments on the configured canvas.
func Layout(segs []segment.Segment, opts Options) (layout.Scene, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Scene{}, err
	}
	return layout.Build(segs, opts.Window(), opts.Canvas(), opts.LayoutOptions()), nil
}
