package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/ltschart/pkg/chart/layout"
	"github.com/matzehuels/ltschart/pkg/chart/styles"
)

const defaultHTMLTitle = "Release schedule"

// RenderHTML wraps the SVG chart in a minimal HTML page. SVG options apply
// unchanged; WithTitle also sets the page title.
func RenderHTML(s layout.Scene, opts ...SVGOption) []byte {
	title := newSVGRenderer(opts...).title
	if title == "" {
		title = defaultHTMLTitle
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	buf.WriteString(`<meta charset="utf-8">` + "\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", styles.EscapeXML(title))
	buf.WriteString("</head>\n<body>\n")
	buf.Write(RenderSVG(s, opts...))
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}
