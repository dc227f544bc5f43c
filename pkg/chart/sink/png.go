package sink

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/ltschart/pkg/chart/layout"
	"github.com/matzehuels/ltschart/pkg/chart/styles"
	"github.com/matzehuels/ltschart/pkg/errors"
	"github.com/matzehuels/ltschart/pkg/fonts"
)

// MaxRasterSize bounds each side of a rendered PNG in pixels.
const MaxRasterSize = 8192

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	theme   styles.Theme
	scale   float64
	rsvg    bool
	svgOpts []SVGOption
}

// WithPNGTheme sets the theme. Defaults to [styles.DefaultTheme].
func WithPNGTheme(t styles.Theme) PNGOption {
	return func(r *pngRenderer) { r.theme = t }
}

// WithScale sets the PNG scale factor (default 1). A scale of 2 produces a
// 2x resolution image.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithRSVG rasterises the SVG output with rsvg-convert instead of drawing
// natively. The result then matches the SVG exactly, including CSS fonts and
// shadows.
func WithRSVG(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.rsvg = true; r.svgOpts = opts }
}

// RenderPNG rasterises the scene.
func RenderPNG(ctx context.Context, s layout.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{theme: styles.DefaultTheme(), scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if err := checkRaster(s.Canvas, r.scale); err != nil {
		return nil, err
	}
	if r.rsvg {
		return rsvgConvert(ctx, RenderSVG(s, append([]SVGOption{WithTheme(r.theme)}, r.svgOpts...)...),
			"png", "-z", fmt.Sprintf("%.2f", r.scale))
	}
	return r.draw(s)
}

func checkRaster(c layout.Canvas, scale float64) error {
	w, h := c.Width*scale, c.Height*scale
	for _, v := range []float64{w, h} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 1 || v > MaxRasterSize {
			return errors.New(errors.ErrCodeInvalidInput,
				"png size %gx%g must be between 1 and %d pixels per side", w, h, MaxRasterSize)
		}
	}
	return nil
}

func (r pngRenderer) draw(s layout.Scene) ([]byte, error) {
	if err := r.theme.Validate(); err != nil {
		return nil, err
	}
	th := r.theme

	tickFace, err := fonts.Face(fonts.Weight(th.Font.Weight), th.Font.Size)
	if err != nil {
		return nil, err
	}
	labelFace, err := fonts.Face(fonts.Weight(th.Font.LabelWeight), th.Font.Size)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(int(s.Canvas.Width*r.scale+0.5), int(s.Canvas.Height*r.scale+0.5))
	dc.Scale(r.scale, r.scale)
	if bg := th.Colors.Background; bg != "" {
		dc.SetColor(styles.MustColor(bg))
		dc.Clear()
	}
	dc.Translate(s.Canvas.Margin.Left, s.Canvas.Margin.Top)

	r.drawAxes(dc, s, tickFace)
	for _, it := range s.Items {
		r.drawItem(dc, it, labelFace)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r pngRenderer) drawAxes(dc *gg.Context, s layout.Scene, face font.Face) {
	th := r.theme
	dc.SetColor(styles.MustColor(th.Colors.Axis))
	dc.SetLineWidth(th.Axis.TickWidth)
	for _, a := range []layout.Axis{s.XAxis, s.YAxis} {
		for _, t := range a.Ticks {
			dc.DrawLine(t.Line.X1, t.Line.Y1, t.Line.X2, t.Line.Y2)
			dc.Stroke()
		}
	}
	if th.Axis.BaselineWidth > 0 {
		dc.SetLineWidth(th.Axis.BaselineWidth)
		dc.DrawLine(s.Baseline.X1, s.Baseline.Y1, s.Baseline.X2, s.Baseline.Y2)
		dc.Stroke()
	}

	dc.SetFontFace(face)
	dc.SetColor(styles.MustColor(th.Colors.Text))
	// x labels sit on their baseline above the plot; y labels are
	// right-aligned and vertically centred.
	for _, t := range s.XAxis.Ticks {
		dc.DrawStringAnchored(t.Label, t.LabelX, t.LabelY, 0.5, 0)
	}
	for _, t := range s.YAxis.Ticks {
		dc.DrawStringAnchored(t.Label, t.LabelX, t.LabelY, 1, 0.35)
	}
}

func (r pngRenderer) drawItem(dc *gg.Context, it layout.Item, face font.Face) {
	th := r.theme
	b := it.Bar
	if b.Width > 0 {
		dc.SetColor(styles.MustColor(th.Fill(it.Segment.Kind)))
		dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
		dc.Fill()
	}
	if j := it.Join; j.Visible {
		dc.SetColor(styles.MustColor(th.Colors.Join))
		dc.DrawRectangle(j.X, j.Y, j.Width, j.Height)
		dc.Fill()
	}
	if l := it.Label; l.Visible {
		dc.SetFontFace(face)
		dc.SetColor(styles.MustColor(th.Colors.Label))
		dc.DrawStringAnchored(l.Text, l.X, l.Y, 0, 0.35)
	}
}
