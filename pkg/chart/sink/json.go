package sink

import (
	"encoding/json"

	"github.com/matzehuels/ltschart/pkg/chart/layout"
	"github.com/matzehuels/ltschart/pkg/chart/styles"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	theme *styles.Theme
}

// WithJSONTheme records the theme so consumers can reproduce the colours.
func WithJSONTheme(t styles.Theme) JSONOption {
	return func(r *jsonRenderer) { r.theme = &t }
}

type jsonOutput struct {
	layout.Scene
	Theme *styles.Theme `json:"theme,omitempty"`
}

// RenderJSON exports the resolved scene as pretty-printed JSON. Coordinates
// are in plot space; add the canvas margins to get image space.
func RenderJSON(s layout.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	return json.MarshalIndent(jsonOutput{Scene: s, Theme: r.theme}, "", "  ")
}
