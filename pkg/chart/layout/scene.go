package layout

import (
	"time"

	"github.com/matzehuels/ltschart/pkg/chart/scale"
	"github.com/matzehuels/ltschart/pkg/segment"
)

// Scene is a fully resolved chart, ready for a sink to draw.
type Scene struct {
	Canvas Canvas         `json:"canvas"`
	Window segment.Window `json:"window"`

	// XScale and YScale are the scales every coordinate below was derived
	// from.
	XScale scale.Time `json:"x_scale"`
	YScale scale.Band `json:"y_scale"`

	XAxis Axis `json:"x_axis"`
	YAxis Axis `json:"y_axis"`

	// Baseline closes the plot along its bottom edge.
	Baseline Line `json:"baseline"`

	// Items are in segment order; later items draw over earlier ones.
	Items []Item `json:"items"`
}

// PlotWidth returns the width of the plot area.
func (s Scene) PlotWidth() float64 { return s.Canvas.PlotWidth() }

// PlotHeight returns the height of the plot area.
func (s Scene) PlotHeight() float64 { return s.Canvas.PlotHeight() }

// Axis is a set of ticks. Axes have no domain line; each tick draws a
// gridline across the whole plot instead.
type Axis struct {
	Ticks []Tick `json:"ticks"`
}

// Tick is one axis tick: its gridline and its label anchor.
type Tick struct {
	Value    string  `json:"value"`
	Position float64 `json:"position"`
	Label    string  `json:"label"`
	Line     Line    `json:"line"`
	LabelX   float64 `json:"label_x"`
	LabelY   float64 `json:"label_y"`
}

// Line is a straight segment.
type Line struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Item holds the primitives drawn for one segment.
type Item struct {
	Segment segment.Segment `json:"segment"`
	Bar     Bar             `json:"bar"`
	Join    Join            `json:"join"`
	Label   Label           `json:"label"`
}

// Bar is the phase rectangle.
type Bar struct {
	Rect
	// Animation is set when the bar should grow into place. It does not
	// affect the resolved geometry.
	Animation *Animation `json:"animation,omitempty"`
}

// Animation describes a bar growing from zero to its resolved width.
type Animation struct {
	From     float64       `json:"from"`
	To       float64       `json:"to"`
	Duration time.Duration `json:"duration"`
}

// Join is the thin marker at a bar's start.
type Join struct {
	Rect
	Visible bool `json:"visible"`
}

// Label is the phase name drawn inside a bar. X is the text start and Y the
// vertical middle.
type Label struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Text    string  `json:"text"`
	Visible bool    `json:"visible"`
}
