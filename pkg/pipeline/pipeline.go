// Package pipeline runs the chart pipeline: segment -> layout -> render.
//
// The CLI and the HTTP server share this package so both produce identical
// charts for identical options.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Start:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
//	    End:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, ds, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	segs, err := runner.Segment(ctx, ds, opts)
//	scene, err := runner.Layout(ctx, segs, opts)
//	artifacts, err := runner.Render(ctx, scene, opts)
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ltschart/pkg/cache"
	"github.com/matzehuels/ltschart/pkg/chart/layout"
	"github.com/matzehuels/ltschart/pkg/chart/styles"
	"github.com/matzehuels/ltschart/pkg/errors"
	"github.com/matzehuels/ltschart/pkg/segment"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default image width in pixels.
	DefaultWidth = layout.DefaultWidth

	// DefaultHeight is the default image height in pixels.
	DefaultHeight = layout.DefaultHeight

	// DefaultMarginLeft leaves room for track names.
	DefaultMarginLeft = layout.DefaultMarginLeft

	// DefaultPNGScale is the default PNG resolution multiplier.
	DefaultPNGScale = 1.0

	// MaxCanvas bounds the image width and height in pixels.
	MaxCanvas = 8192.0

	// MaxPNGScale bounds the PNG resolution multiplier.
	MaxPNGScale = 8.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatHTML: true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// DefaultWindow returns the window used when none is given: one year from
// now.
func DefaultWindow(now time.Time) segment.Window {
	now = now.UTC()
	return segment.Window{Start: now, End: now.AddDate(1, 0, 0)}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Segment options
	Start                 time.Time `json:"start"`
	End                   time.Time `json:"end"`
	IncludeUnstableBranch bool      `json:"include_unstable_branch,omitempty"`
	BranchName            string    `json:"branch_name,omitempty"`
	Tracks                []string  `json:"tracks,omitempty"` // Name or display name filter

	// Layout options
	Width          float64 `json:"width,omitempty"`
	Height         float64 `json:"height,omitempty"`
	MarginLeft     float64 `json:"margin_left,omitempty"`
	LabelCharWidth float64 `json:"label_char_width,omitempty"`
	Animate        bool    `json:"animate,omitempty"`

	// Render options
	Formats   []string     `json:"formats,omitempty"`
	Theme     styles.Theme `json:"theme"`
	PNGScale  float64      `json:"png_scale,omitempty"`
	EmbedFont bool         `json:"embed_font,omitempty"`
	Title     string       `json:"title,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger      `json:"-"`
	Now    func() time.Time `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DatasetHash is the content hash of the input dataset.
	DatasetHash string

	// Segments is the segmenter output.
	Segments []segment.Segment

	// Scene is the resolved chart.
	Scene layout.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TrackCount   int
	SegmentCount int
	SegmentTime  time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SegmentsHit bool
	LayoutHit   bool
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, html, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateWindow checks that end is after start.
func ValidateWindow(start, end time.Time) error {
	if !end.After(start) {
		return errors.New(errors.ErrCodeInvalidWindow,
			"window end %s must be after start %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every option and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSegment(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSegment fills the window and branch defaults and checks them.
// A missing start is now; a missing end is one year after the start.
func (o *Options) ValidateForSegment() error {
	if o.Start.IsZero() {
		now := time.Now
		if o.Now != nil {
			now = o.Now
		}
		o.Start = DefaultWindow(now()).Start
	}
	if o.End.IsZero() {
		o.End = o.Start.AddDate(1, 0, 0)
	}
	o.Start, o.End = o.Start.UTC(), o.End.UTC()
	if err := ValidateWindow(o.Start, o.End); err != nil {
		return err
	}
	if o.BranchName == "" {
		o.BranchName = segment.DefaultBranchName
	}
	for _, t := range o.Tracks {
		if err := errors.ValidateTrackName(t); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

func validateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "%s must be a finite number", name)
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MarginLeft == 0 {
		o.MarginLeft = DefaultMarginLeft
	}
	if o.LabelCharWidth == 0 {
		o.LabelCharWidth = layout.DefaultLabelCharWidth
	}
	o.setLogger()
}

// ValidateForLayout sets layout defaults and checks the canvas leaves a
// positive plot area.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"width", o.Width},
		{"height", o.Height},
		{"margin left", o.MarginLeft},
		{"label char width", o.LabelCharWidth},
	} {
		if err := validateFinite(f.name, f.v); err != nil {
			return err
		}
	}
	if o.Width > MaxCanvas || o.Height > MaxCanvas {
		return errors.New(errors.ErrCodeInvalidInput,
			"canvas %gx%g exceeds the %g pixel limit", o.Width, o.Height, MaxCanvas)
	}
	c := o.Canvas()
	if c.PlotWidth() <= 0 || c.PlotHeight() <= 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"canvas %gx%g leaves no room for the plot with margins %+v", c.Width, c.Height, c.Margin)
	}
	if o.LabelCharWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "label char width must not be negative")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Theme.Name == "" && o.Theme.Font.Size == 0 {
		o.Theme = styles.DefaultTheme()
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	o.setLogger()
}

// ValidateForRender sets render defaults and checks formats and theme.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := validateFinite("png scale", o.PNGScale); err != nil {
		return err
	}
	if o.PNGScale < 0 || o.PNGScale > MaxPNGScale {
		return errors.New(errors.ErrCodeInvalidInput, "png scale must be between 0 and %g", MaxPNGScale)
	}
	return o.Theme.Validate()
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Window returns the query window.
func (o *Options) Window() segment.Window {
	return segment.Window{Start: o.Start, End: o.End}
}

// SegmentOptions returns the segmenter options.
func (o *Options) SegmentOptions() segment.Options {
	return segment.Options{IncludeUnstableBranch: o.IncludeUnstableBranch, BranchName: o.BranchName}
}

// Canvas returns the layout canvas.
func (o *Options) Canvas() layout.Canvas {
	c := layout.DefaultCanvas()
	c.Width, c.Height = o.Width, o.Height
	c.Margin.Left = o.MarginLeft
	return c
}

// LayoutOptions returns the layout engine options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{LabelCharWidth: o.LabelCharWidth, Animate: o.Animate}
}

// SegmentsKeyOpts returns cache key options for segmentation.
func (o *Options) SegmentsKeyOpts() cache.SegmentsKeyOpts {
	return cache.SegmentsKeyOpts{
		Start:         o.Start,
		End:           o.End,
		IncludeBranch: o.IncludeUnstableBranch,
		BranchName:    o.BranchName,
		Tracks:        o.Tracks,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	c := o.Canvas()
	return cache.LayoutKeyOpts{
		Start:          o.Start,
		End:            o.End,
		Width:          c.Width,
		Height:         c.Height,
		Margins:        []float64{c.Margin.Top, c.Margin.Right, c.Margin.Bottom, c.Margin.Left},
		LabelCharWidth: o.LabelCharWidth,
		Animate:        o.Animate,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	themeHash, _ := cache.HashJSON(o.Theme)
	k := cache.ArtifactKeyOpts{Format: format, ThemeHash: themeHash}
	switch format {
	case FormatPNG:
		k.Scale = o.PNGScale
	case FormatSVG, FormatHTML, FormatPDF:
		k.EmbedFont = o.EmbedFont
		k.Title = o.Title
	}
	return k
}
