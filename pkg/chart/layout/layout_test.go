package layout

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/ltschart/pkg/segment"
)

func d(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

// testCanvas gives a 366px plot for 2024 so one day is one pixel.
var testCanvas = Canvas{
	Width:  466,
	Height: 430,
	Margin: Margin{Top: 100, Right: 0, Bottom: 0, Left: 100},
}

var window2024 = segment.Window{Start: d("2024-01-01"), End: d("2025-01-01")}

func TestBuildBarGeometry(t *testing.T) {
	segs := []segment.Segment{
		{Name: "Master", Kind: segment.KindUnstableBranch, Start: window2024.Start, End: window2024.End},
		{Name: "20", Kind: segment.KindLTS, Start: d("2023-10-24"), End: d("2024-10-22")},
		{Name: "20", Kind: segment.KindMaintenance, Start: d("2024-10-22"), End: d("2026-04-30")},
		{Name: "16", Kind: segment.KindMaintenance, Start: d("2020-01-01"), End: d("2021-01-01")},
	}
	scene := Build(segs, window2024, testCanvas, Options{})

	if len(scene.Items) != len(segs) {
		t.Fatalf("len(Items) = %d, want %d", len(scene.Items), len(segs))
	}

	tests := []struct {
		name  string
		item  int
		x     float64
		width float64
	}{
		{"full window", 0, 0, 366},
		{"clamped start", 1, 0, 295}, // 2024-10-22 is day 295
		{"clamped end", 2, 295, 71},
		{"entirely before", 3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := scene.Items[tt.item].Bar
			if !approx(bar.X, tt.x) || !approx(bar.Width, tt.width) {
				t.Errorf("bar = x %v width %v, want x %v width %v", bar.X, bar.Width, tt.x, tt.width)
			}
			if bar.Width < 0 {
				t.Error("negative width")
			}
			if !approx(bar.Height, scene.YScale.Bandwidth()) {
				t.Errorf("height = %v, want bandwidth %v", bar.Height, scene.YScale.Bandwidth())
			}
		})
	}

	// both "20" items share a band
	if scene.Items[1].Bar.Y != scene.Items[2].Bar.Y {
		t.Error("segments of one track should share a band")
	}
	if got := scene.YScale.Domain; !reflect.DeepEqual(got, []string{"Master", "20", "16"}) {
		t.Errorf("YScale.Domain = %v", got)
	}
}

func TestBuildJoinVisibility(t *testing.T) {
	tests := []struct {
		name     string
		seg      segment.Segment
		expected bool
	}{
		{
			name:     "inside window",
			seg:      segment.Segment{Name: "a", Kind: segment.KindMaintenance, Start: d("2024-06-01"), End: d("2024-09-01")},
			expected: true,
		},
		{
			name:     "suppressed",
			seg:      segment.Segment{Name: "a", Kind: segment.KindActive, Start: d("2024-06-01"), End: d("2024-09-01"), SuppressJoinMarker: true},
			expected: false,
		},
		{
			name:     "at left edge",
			seg:      segment.Segment{Name: "a", Kind: segment.KindMaintenance, Start: d("2024-01-01"), End: d("2024-09-01")},
			expected: false,
		},
		{
			name:     "clamped to left edge",
			seg:      segment.Segment{Name: "a", Kind: segment.KindMaintenance, Start: d("2022-01-01"), End: d("2024-09-01")},
			expected: false,
		},
		{
			name:     "suppressed even off the edge",
			seg:      segment.Segment{Name: "a", Kind: segment.KindPreRelease, Start: d("2024-03-01"), End: d("2024-09-01"), SuppressJoinMarker: true},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := Build([]segment.Segment{tt.seg}, window2024, testCanvas, Options{})
			j := scene.Items[0].Join
			if j.Visible != tt.expected {
				t.Errorf("Join.Visible = %v, want %v", j.Visible, tt.expected)
			}
			if j.Width != DefaultJoinWidth || j.X != scene.Items[0].Bar.X {
				t.Errorf("Join rect = %+v", j.Rect)
			}
		})
	}
}

func TestBuildLabels(t *testing.T) {
	segs := []segment.Segment{
		// 10px wide: "LTS" needs 60px
		{Name: "a", Kind: segment.KindLTS, Start: d("2024-03-01"), End: d("2024-03-11")},
		// 100px wide: "LTS" fits
		{Name: "a", Kind: segment.KindLTS, Start: d("2024-04-01"), End: d("2024-07-10")},
		// 100px wide: "maintenance" needs 220px
		{Name: "b", Kind: segment.KindMaintenance, Start: d("2024-04-01"), End: d("2024-07-10")},
		{Name: "c", Kind: segment.KindPreRelease, Start: d("2024-01-01"), End: d("2024-12-31")},
	}
	scene := Build(segs, window2024, testCanvas, Options{})

	wantText := []string{"LTS", "LTS", "maintenance", "unstable"}
	wantVisible := []bool{false, true, false, true}
	for i, it := range scene.Items {
		if it.Label.Text != wantText[i] {
			t.Errorf("item %d label = %q, want %q", i, it.Label.Text, wantText[i])
		}
		if it.Label.Visible != wantVisible[i] {
			t.Errorf("item %d label visible = %v, want %v (bar width %v)", i, it.Label.Visible, wantVisible[i], it.Bar.Width)
		}
		if !approx(it.Label.X, it.Bar.X+DefaultLabelOffset) {
			t.Errorf("item %d label x = %v", i, it.Label.X)
		}
		if !approx(it.Label.Y, it.Bar.Y+it.Bar.Height/2+4) {
			t.Errorf("item %d label y = %v", i, it.Label.Y)
		}
	}

	// a narrower character width lets "maintenance" fit in 100px
	scene = Build(segs, window2024, testCanvas, Options{LabelCharWidth: 9})
	if !scene.Items[2].Label.Visible {
		t.Error("maintenance label should fit with LabelCharWidth 9")
	}
}

func TestLabelFits(t *testing.T) {
	tests := []struct {
		width float64
		text  string
		want  bool
	}{
		{60, "LTS", true},
		{59.9, "LTS", false},
		{0, "", true},
		{0, "active", false},
	}
	for _, tt := range tests {
		if got := LabelFits(tt.width, tt.text, 20); got != tt.want {
			t.Errorf("LabelFits(%v, %q) = %v, want %v", tt.width, tt.text, got, tt.want)
		}
	}
}

func TestBuildAxes(t *testing.T) {
	segs := []segment.Segment{
		{Name: "Master", Kind: segment.KindUnstableBranch, Start: window2024.Start, End: window2024.End},
		{Name: "20", Kind: segment.KindActive, Start: d("2024-04-01"), End: d("2024-10-01")},
	}
	scene := Build(segs, window2024, testCanvas, Options{})

	if len(scene.XAxis.Ticks) != 13 {
		t.Fatalf("x ticks = %d, want 13 monthly ticks", len(scene.XAxis.Ticks))
	}
	first := scene.XAxis.Ticks[0]
	if first.Label != "Jan 2024" || first.Position != 0 {
		t.Errorf("first x tick = %+v", first)
	}
	if first.Line.Y1 != 0 || first.Line.Y2 != scene.PlotHeight() {
		t.Errorf("x gridline should span the plot height: %+v", first.Line)
	}
	if first.LabelY >= 0 {
		t.Errorf("x tick label should sit above the plot, got y %v", first.LabelY)
	}

	if len(scene.YAxis.Ticks) != 2 {
		t.Fatalf("y ticks = %d, want 2", len(scene.YAxis.Ticks))
	}
	y := scene.YAxis.Ticks[1]
	center, _ := scene.YScale.Center("20")
	if y.Label != "20" || !approx(y.Position, center) {
		t.Errorf("y tick = %+v, want centred on band", y)
	}
	if y.Line.X1 != 0 || y.Line.X2 != scene.PlotWidth() {
		t.Errorf("y gridline should span the plot width: %+v", y.Line)
	}

	if scene.Baseline.Y1 != scene.PlotHeight() || scene.Baseline.X2 != scene.PlotWidth() {
		t.Errorf("Baseline = %+v", scene.Baseline)
	}
}

func TestBuildAnimation(t *testing.T) {
	segs := []segment.Segment{{Name: "a", Kind: segment.KindActive, Start: d("2024-02-01"), End: d("2024-03-01")}}

	scene := Build(segs, window2024, testCanvas, Options{})
	if scene.Items[0].Bar.Animation != nil {
		t.Error("animation should be nil by default")
	}

	animated := Build(segs, window2024, testCanvas, Options{Animate: true})
	a := animated.Items[0].Bar.Animation
	if a == nil {
		t.Fatal("animation missing")
	}
	if a.From != 0 || a.To != animated.Items[0].Bar.Width || a.Duration != time.Second {
		t.Errorf("Animation = %+v", a)
	}
	if animated.Items[0].Bar.Rect != scene.Items[0].Bar.Rect {
		t.Error("animation must not change geometry")
	}
}

func TestBuildIdempotent(t *testing.T) {
	segs := []segment.Segment{
		{Name: "Master", Kind: segment.KindUnstableBranch, Start: window2024.Start, End: window2024.End},
		{Name: "18", Kind: segment.KindMaintenance, Start: d("2023-04-19"), End: d("2025-04-30")},
	}
	a := Build(segs, window2024, DefaultCanvas(), Options{Animate: true})
	b := Build(segs, window2024, DefaultCanvas(), Options{Animate: true})
	if !reflect.DeepEqual(a, b) {
		t.Error("Build should be deterministic")
	}
}

func TestBuildEmpty(t *testing.T) {
	scene := Build(nil, window2024, DefaultCanvas(), Options{})
	if len(scene.Items) != 0 || len(scene.YAxis.Ticks) != 0 {
		t.Errorf("empty scene = %+v", scene)
	}
	if len(scene.XAxis.Ticks) == 0 {
		t.Error("x axis should still have ticks")
	}
}

func TestDefaultCanvas(t *testing.T) {
	c := DefaultCanvas()
	if c.PlotWidth() != DefaultWidth-DefaultMarginLeft-DefaultMarginRight {
		t.Errorf("PlotWidth() = %v", c.PlotWidth())
	}
	if c.PlotHeight() != DefaultHeight-DefaultMarginTop-DefaultMarginBottom {
		t.Errorf("PlotHeight() = %v", c.PlotHeight())
	}
}
