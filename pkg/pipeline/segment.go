package pipeline

import (
	"github.com/matzehuels/ltschart/pkg/release"
	"github.com/matzehuels/ltschart/pkg/segment"
)

// Segment selects the requested tracks and segments them over the window.
func Segment(ds release.Dataset, opts Options) ([]segment.Segment, error) {
	if err := opts.ValidateForSegment(); err != nil {
		return nil, err
	}
	selected, err := ds.Select(opts.Tracks)
	if err != nil {
		return nil, err
	}
	return segment.Run(selected, opts.Window(), opts.SegmentOptions())
}
