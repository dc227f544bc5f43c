package layout

import (
	"time"

	"github.com/matzehuels/ltschart/pkg/chart/scale"
)

// Default canvas and layout values.
const (
	DefaultWidth  = 1600.0
	DefaultHeight = 900.0

	DefaultMarginTop    = 100.0
	DefaultMarginRight  = 30.0
	DefaultMarginBottom = 30.0
	DefaultMarginLeft   = 320.0

	// DefaultLabelCharWidth is the per-character width used by the label fit
	// test, sized for the default 36px label font.
	DefaultLabelCharWidth = 20.0

	DefaultBandPadding     = 0.3
	DefaultJoinWidth       = 4.0
	DefaultLabelOffset     = 20.0
	DefaultAnimateDuration = time.Second

	// labelBaselineShift nudges label text down so it looks centred.
	labelBaselineShift = 4.0
	// axisLabelGap separates tick labels from the plot.
	axisLabelGap = 10.0
)

// Margin is the space around the plot area.
type Margin struct {
	Top    float64 `json:"top" toml:"top" yaml:"top"`
	Right  float64 `json:"right" toml:"right" yaml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" toml:"left" yaml:"left"`
}

// Canvas is the full image size plus margins.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// DefaultCanvas returns the default canvas.
func DefaultCanvas() Canvas {
	return Canvas{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Margin: Margin{
			Top:    DefaultMarginTop,
			Right:  DefaultMarginRight,
			Bottom: DefaultMarginBottom,
			Left:   DefaultMarginLeft,
		},
	}
}

// PlotWidth returns the width available for bars.
func (c Canvas) PlotWidth() float64 { return c.Width - c.Margin.Left - c.Margin.Right }

// PlotHeight returns the height available for bars.
func (c Canvas) PlotHeight() float64 { return c.Height - c.Margin.Top - c.Margin.Bottom }

// Options tunes layout decisions. Zero values take the defaults.
type Options struct {
	// LabelCharWidth is the approximate pixel width of one label character.
	LabelCharWidth float64
	// Animate marks bars as growing from zero width when rendered.
	Animate bool
	// AnimateDuration is how long the grow animation lasts.
	AnimateDuration time.Duration
	// BandPadding is the fraction of each band step left empty.
	BandPadding float64
	// JoinWidth is the width of join markers.
	JoinWidth float64
	// LabelOffset is the distance between a bar's start and its label.
	LabelOffset float64
	// TickCount is the approximate number of time-axis ticks.
	TickCount int
}

func (o Options) withDefaults() Options {
	if o.LabelCharWidth <= 0 {
		o.LabelCharWidth = DefaultLabelCharWidth
	}
	if o.AnimateDuration <= 0 {
		o.AnimateDuration = DefaultAnimateDuration
	}
	if o.BandPadding <= 0 || o.BandPadding >= 1 {
		o.BandPadding = DefaultBandPadding
	}
	if o.JoinWidth <= 0 {
		o.JoinWidth = DefaultJoinWidth
	}
	if o.LabelOffset == 0 {
		o.LabelOffset = DefaultLabelOffset
	}
	if o.TickCount <= 0 {
		o.TickCount = scale.DefaultTickCount
	}
	return o
}
