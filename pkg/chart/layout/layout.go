package layout

import (
	"time"

	"github.com/matzehuels/ltschart/pkg/chart/scale"
	"github.com/matzehuels/ltschart/pkg/segment"
)

// Scales builds the time and band scales for a canvas. Both map into plot
// coordinates.
func Scales(segs []segment.Segment, w segment.Window, c Canvas, padding float64) (scale.Time, scale.Band) {
	x := scale.NewTime(w.Start, w.End, 0, c.PlotWidth())
	y := scale.NewBand(segment.Names(segs), 0, c.PlotHeight(), padding)
	return x, y
}

// Build lays segs out on the canvas for window w.
func Build(segs []segment.Segment, w segment.Window, c Canvas, opts Options) Scene {
	opts = opts.withDefaults()
	x, y := Scales(segs, w, c, opts.BandPadding)

	items := make([]Item, len(segs))
	for i, s := range segs {
		items[i] = buildItem(s, x, y, opts)
	}

	return Scene{
		Canvas:   c,
		Window:   w,
		XScale:   x,
		YScale:   y,
		XAxis:    timeAxis(x, c.PlotHeight(), opts.TickCount),
		YAxis:    nameAxis(y, c.PlotWidth()),
		Baseline: Line{X1: 0, Y1: c.PlotHeight(), X2: c.PlotWidth(), Y2: c.PlotHeight()},
		Items:    items,
	}
}

func buildItem(s segment.Segment, x scale.Time, y scale.Band, opts Options) Item {
	x0 := x.Map(s.Start)
	width := max(0, x.Map(s.End)-x0)
	top, _ := y.Map(s.Name)
	h := y.Bandwidth()

	bar := Bar{Rect: Rect{X: x0, Y: top, Width: width, Height: h}}
	if opts.Animate {
		bar.Animation = &Animation{From: 0, To: width, Duration: opts.AnimateDuration}
	}

	text := s.Kind.Label()
	return Item{
		Segment: s,
		Bar:     bar,
		Join: Join{
			Rect:    Rect{X: x0, Y: top, Width: opts.JoinWidth, Height: h},
			Visible: !s.SuppressJoinMarker && x0 > 0,
		},
		Label: Label{
			X:       x0 + opts.LabelOffset,
			Y:       top + h/2 + labelBaselineShift,
			Text:    text,
			Visible: LabelFits(width, text, opts.LabelCharWidth),
		},
	}
}

// LabelFits reports whether text is expected to fit inside a bar of the given
// width.
func LabelFits(width float64, text string, charWidth float64) bool {
	return width >= float64(len(text))*charWidth
}

func timeAxis(x scale.Time, plotHeight float64, count int) Axis {
	dates := x.Ticks(count)
	ticks := make([]Tick, len(dates))
	for i, t := range dates {
		pos := x.Map(t)
		ticks[i] = Tick{
			Value:    t.UTC().Format(time.DateOnly),
			Position: pos,
			Label:    scale.Format(t),
			Line:     Line{X1: pos, Y1: 0, X2: pos, Y2: plotHeight},
			LabelX:   pos,
			LabelY:   -axisLabelGap,
		}
	}
	return Axis{Ticks: ticks}
}

func nameAxis(y scale.Band, plotWidth float64) Axis {
	ticks := make([]Tick, len(y.Domain))
	for i, name := range y.Domain {
		pos, _ := y.Center(name)
		ticks[i] = Tick{
			Value:    name,
			Position: pos,
			Label:    name,
			Line:     Line{X1: 0, Y1: pos, X2: plotWidth, Y2: pos},
			LabelX:   -axisLabelGap,
			LabelY:   pos,
		}
	}
	return Axis{Ticks: ticks}
}
