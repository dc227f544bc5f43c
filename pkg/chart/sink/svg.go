package sink

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/ltschart/pkg/chart/layout"
	"github.com/matzehuels/ltschart/pkg/chart/styles"
	"github.com/matzehuels/ltschart/pkg/fonts"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme     styles.Theme
	embedFont bool
	title     string
}

// WithTheme sets the theme. Defaults to [styles.DefaultTheme].
func WithTheme(t styles.Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithEmbeddedFont embeds Go Regular and uses it as the first font choice.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// WithTitle adds a <title> element.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{theme: styles.DefaultTheme()}
	for _, opt := range opts {
		opt(&r)
	}
	if r.embedFont {
		r.theme.Font.Family = fmt.Sprintf("'%s', %s", fonts.FontFamily, r.theme.Font.Family)
	}
	return r
}

// RenderSVG draws the scene as a standalone SVG document.
func RenderSVG(s layout.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(s.Canvas.Width), num(s.Canvas.Height), num(s.Canvas.Width), num(s.Canvas.Height))
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(r.title))
	}
	r.renderStyle(&buf)
	if bg := r.theme.Colors.Background; bg != "" {
		fmt.Fprintf(&buf, `  <rect class="background" width="100%%" height="100%%" fill="%s"/>`+"\n", bg)
	}

	fmt.Fprintf(&buf, `  <g id="bar-container" transform="translate(%s, %s)">`+"\n",
		num(s.Canvas.Margin.Left), num(s.Canvas.Margin.Top))
	renderAxis(&buf, "axis axis--x", s.XAxis, "")
	renderAxis(&buf, "axis axis--y", s.YAxis, fmt.Sprintf(
		`      <line class="baseline" x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
		num(s.Baseline.X1), num(s.Baseline.Y1), num(s.Baseline.X2), num(s.Baseline.Y2)))
	for _, it := range s.Items {
		renderItem(&buf, it)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderStyle(buf *bytes.Buffer) {
	buf.WriteString("  <style>\n")
	if r.embedFont {
		fmt.Fprintf(buf, "@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			fonts.FontFamily, fonts.RegularBase64())
	}
	buf.WriteString(r.theme.CSS())
	buf.WriteString("  </style>\n")
}

func renderAxis(buf *bytes.Buffer, class string, a layout.Axis, extra string) {
	fmt.Fprintf(buf, `    <g class="%s">`+"\n", class)
	for _, t := range a.Ticks {
		fmt.Fprintf(buf, `      <g class="tick" data-value="%s">`, styles.EscapeXML(t.Value))
		fmt.Fprintf(buf, `<line x1="%s" y1="%s" x2="%s" y2="%s"/>`,
			num(t.Line.X1), num(t.Line.Y1), num(t.Line.X2), num(t.Line.Y2))
		fmt.Fprintf(buf, `<text x="%s" y="%s">%s</text>`,
			num(t.LabelX), num(t.LabelY), styles.EscapeXML(t.Label))
		buf.WriteString("</g>\n")
	}
	buf.WriteString(extra)
	buf.WriteString("    </g>\n")
}

func renderItem(buf *bytes.Buffer, it layout.Item) {
	kind := string(it.Segment.Kind)
	bar := it.Bar

	fmt.Fprintf(buf, `    <g class="item" data-name="%s">`+"\n", styles.EscapeXML(it.Segment.Name))
	fmt.Fprintf(buf, `      <rect class="bar %s" x="%s" y="%s" width="%s" height="%s"`,
		kind, num(bar.X), num(bar.Y), num(bar.Width), num(bar.Height))
	if a := bar.Animation; a != nil {
		fmt.Fprintf(buf, `><animate attributeName="width" from="%s" to="%s" dur="%ss"/></rect>`+"\n",
			num(a.From), num(a.To), num(a.Duration.Seconds()))
	} else {
		buf.WriteString("/>\n")
	}

	j := it.Join
	fmt.Fprintf(buf, `      <rect class="bar-join %s" x="%s" y="%s" width="%s" height="%s" style="opacity: %d"/>`+"\n",
		kind, num(j.X), num(j.Y), num(j.Width), num(j.Height), opacity(j.Visible))

	l := it.Label
	fmt.Fprintf(buf, `      <text class="label" x="%s" y="%s" style="opacity: %d">%s</text>`+"\n",
		num(l.X), num(l.Y), opacity(l.Visible), styles.EscapeXML(l.Text))
	buf.WriteString("    </g>\n")
}

func opacity(visible bool) int {
	if visible {
		return 1
	}
	return 0
}

// num formats a coordinate with at most two decimals.
func num(f float64) string {
	s := strings.TrimRight(strconv.FormatFloat(f, 'f', 2, 64), "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
