package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/ltschart/pkg/segment"
)

// CSS returns the stylesheet embedded in SVG output. Each bar carries its
// kind as a class, so one rule per kind sets the fill.
func (t Theme) CSS() string {
	var buf bytes.Buffer
	for _, k := range segment.Kinds {
		fmt.Fprintf(&buf, ".%s { fill: %s; }\n", k, t.Fill(k))
	}
	fmt.Fprintf(&buf, ".bar-join { fill: %s; }\n", t.Colors.Join)
	if t.Shadow != "" {
		fmt.Fprintf(&buf, ".bar { filter: %s; }\n", t.Shadow)
	}
	fmt.Fprintf(&buf, ".tick line { stroke: %s; stroke-width: %g; }\n", t.Colors.Axis, t.Axis.TickWidth)
	fmt.Fprintf(&buf, ".baseline { stroke: %s; stroke-width: %g; }\n", t.Colors.Axis, t.Axis.BaselineWidth)
	fmt.Fprintf(&buf, ".tick text { font-size: %gpx; font-family: %s; font-weight: %d; fill: %s; stroke: %s; }\n",
		t.Font.Size, t.Font.Family, t.Font.Weight, t.Colors.Text, t.Colors.Text)
	buf.WriteString(".axis--x .tick text { text-anchor: middle; }\n")
	buf.WriteString(".axis--y .tick text { text-anchor: end; dominant-baseline: middle; }\n")
	fmt.Fprintf(&buf, ".label { font-size: %gpx; font-family: %s; font-weight: %d; text-anchor: start; dominant-baseline: middle; fill: %s; stroke: %s; }\n",
		t.Font.Size, t.Font.Family, t.Font.LabelWeight, t.Colors.Label, t.Colors.Label)
	return buf.String()
}
