package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"image/color"
	"image/png"
	"math"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/ltschart/pkg/chart/layout"
	"github.com/matzehuels/ltschart/pkg/chart/styles"
	"github.com/matzehuels/ltschart/pkg/errors"
	"github.com/matzehuels/ltschart/pkg/segment"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func testScene(opts layout.Options) layout.Scene {
	w := segment.Window{Start: date("2024-01-01"), End: date("2025-01-01")}
	segs := []segment.Segment{
		{Name: "Master", Kind: segment.KindUnstableBranch, Start: w.Start, End: w.End},
		{Name: "22", Kind: segment.KindPreRelease, Start: date("2023-10-01"), End: date("2024-04-24"), SuppressJoinMarker: true},
		{Name: "22", Kind: segment.KindActive, Start: date("2024-04-24"), End: date("2024-10-29")},
		{Name: "22", Kind: segment.KindLTS, Start: date("2024-10-29"), End: date("2025-10-21")},
		{Name: "<x&y>", Kind: segment.KindMaintenance, Start: date("2023-01-01"), End: date("2024-02-01")},
	}
	return layout.Build(segs, w, layout.DefaultCanvas(), opts)
}

func TestRenderSVG(t *testing.T) {
	scene := testScene(layout.Options{})
	svg := string(RenderSVG(scene))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1600 900" width="1600" height="900">`) {
		t.Errorf("unexpected header: %.120s", svg)
	}
	if got := strings.Count(svg, `<rect class="bar `); got != len(scene.Items) {
		t.Errorf("bar count = %d, want %d", got, len(scene.Items))
	}
	if got := strings.Count(svg, `<rect class="bar-join `); got != len(scene.Items) {
		t.Errorf("join count = %d, want %d", got, len(scene.Items))
	}
	if got := strings.Count(svg, `class="label"`); got != len(scene.Items) {
		t.Errorf("label count = %d, want %d", got, len(scene.Items))
	}

	for _, want := range []string{
		`<g id="bar-container" transform="translate(320, 100)">`,
		`<g class="axis axis--x">`,
		`<g class="axis axis--y">`,
		`<line class="baseline" x1="0" y1="770" x2="1250" y2="770"/>`,
		`>Jan 2024</text>`,
		`data-name="&lt;x&amp;y&gt;"`,
		`>&lt;x&amp;y&gt;</text>`,
		`<rect class="bar-join pre-release"`,
		".active { fill: #2aa748; }",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, "<animate") {
		t.Error("unexpected animation")
	}
	if strings.Contains(svg, "<x&y>") {
		t.Error("unescaped track name")
	}
}

func TestRenderSVGVisibility(t *testing.T) {
	svg := string(RenderSVG(testScene(layout.Options{})))
	lines := strings.Split(svg, "\n")

	find := func(prefix string) []string {
		var out []string
		for _, l := range lines {
			if strings.Contains(l, prefix) {
				out = append(out, l)
			}
		}
		return out
	}

	joins := find(`<rect class="bar-join `)
	// Master starts at the left edge, the pre-release suppresses its marker,
	// and the clamped maintenance bar starts at the edge too.
	wantJoin := []string{"opacity: 0", "opacity: 0", "opacity: 1", "opacity: 1", "opacity: 0"}
	for i, j := range joins {
		if !strings.Contains(j, wantJoin[i]) {
			t.Errorf("join %d = %s, want %s", i, j, wantJoin[i])
		}
	}
}

func TestRenderSVGAnimation(t *testing.T) {
	scene := testScene(layout.Options{Animate: true})
	svg := string(RenderSVG(scene))
	if got := strings.Count(svg, `<animate attributeName="width" from="0"`); got != len(scene.Items) {
		t.Errorf("animate count = %d, want %d", got, len(scene.Items))
	}
	if !strings.Contains(svg, `dur="1s"`) {
		t.Error("missing 1s duration")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(testScene(layout.Options{}),
		WithTheme(styles.DarkTheme()),
		WithTitle("Node & friends"),
		WithEmbeddedFont(),
	))
	for _, want := range []string{
		"<title>Node &amp; friends</title>",
		"@font-face { font-family: 'Go';",
		`fill="#0d1117"`,
		"font-family: 'Go', 'Inter', sans-serif;",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderHTML(t *testing.T) {
	scene := testScene(layout.Options{})
	html := string(RenderHTML(scene))
	if !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Errorf("missing doctype: %.40s", html)
	}
	if !strings.Contains(html, "<title>Release schedule</title>") {
		t.Error("missing default title")
	}
	if !strings.Contains(html, string(RenderSVG(scene))) {
		t.Error("HTML should embed the SVG verbatim")
	}
}

func TestRenderJSON(t *testing.T) {
	scene := testScene(layout.Options{})
	data, err := RenderJSON(scene, WithJSONTheme(styles.DefaultTheme()))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out struct {
		Canvas layout.Canvas `json:"canvas"`
		Items  []layout.Item `json:"items"`
		Theme  *styles.Theme `json:"theme"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Canvas.Width != 1600 {
		t.Errorf("Width = %v, want 1600", out.Canvas.Width)
	}
	if len(out.Items) != len(scene.Items) {
		t.Fatalf("Items = %d, want %d", len(out.Items), len(scene.Items))
	}
	if out.Items[2].Segment.Kind != segment.KindActive || !out.Items[2].Join.Visible {
		t.Errorf("item 2 = %+v", out.Items[2])
	}
	if out.Theme == nil || out.Theme.Name != styles.DefaultThemeName {
		t.Errorf("Theme = %+v", out.Theme)
	}

	data, err = RenderJSON(scene)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte(`"theme"`)) {
		t.Error("theme should be omitted by default")
	}
}

func TestRenderPNG(t *testing.T) {
	scene := testScene(layout.Options{})

	tests := []struct {
		name  string
		scale float64
	}{
		{"1x", 1},
		{"2x", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderPNG(context.Background(), scene, WithPNGTheme(styles.DarkTheme()), WithScale(tt.scale))
			if err != nil {
				t.Fatalf("RenderPNG() error: %v", err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("png.Decode() error: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != int(1600*tt.scale) || b.Dy() != int(900*tt.scale) {
				t.Errorf("size = %dx%d", b.Dx(), b.Dy())
			}

			// top-left corner is background, the middle of the active bar is
			// its fill colour
			if got := rgba(img.At(1, 1)); got != styles.MustColor("#0d1117") {
				t.Errorf("background = %v", got)
			}
			bar := scene.Items[2].Bar
			x := (scene.Canvas.Margin.Left + bar.X + bar.Width/2) * tt.scale
			y := (scene.Canvas.Margin.Top + bar.Y + 4) * tt.scale
			if got := rgba(img.At(int(x), int(y))); got != styles.MustColor("#2aa748") {
				t.Errorf("bar pixel = %v", got)
			}
		})
	}
}

func TestRenderPNGInvalidTheme(t *testing.T) {
	th := styles.DefaultTheme()
	th.Colors.Active = "green"
	_, err := RenderPNG(context.Background(), testScene(layout.Options{}), WithPNGTheme(th))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("got %v, want INVALID_INPUT", err)
	}
}

func TestRenderPNGRasterBounds(t *testing.T) {
	huge := testScene(layout.Options{})
	huge.Canvas.Width = 100000

	tests := []struct {
		name  string
		scene layout.Scene
		scale float64
	}{
		{"infinite scale", testScene(layout.Options{}), math.Inf(1)},
		{"oversized scale", testScene(layout.Options{}), 10},
		{"oversized canvas", huge, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenderPNG(context.Background(), tt.scene, WithScale(tt.scale))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("got %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestRenderPDFMissingConverter(t *testing.T) {
	orig := lookPath
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	defer func() { lookPath = orig }()

	_, err := RenderPDF(context.Background(), testScene(layout.Options{}))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Fatalf("got %v, want UNSUPPORTED", err)
	}
	if !strings.Contains(errors.UserMessage(err), "librsvg") {
		t.Errorf("message should mention librsvg: %v", err)
	}

	_, err = RenderPNG(context.Background(), testScene(layout.Options{}), WithRSVG())
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("rsvg png: got %v, want UNSUPPORTED", err)
	}
}

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
