package styles

import (
	"fmt"
	"image/color"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ltschart/pkg/errors"
	"github.com/matzehuels/ltschart/pkg/segment"
)

// Theme is the complete visual configuration of a chart.
type Theme struct {
	Name   string `toml:"name" json:"name"`
	Colors Colors `toml:"colors" json:"colors"`
	Font   Font   `toml:"font" json:"font"`
	Axis   Axis   `toml:"axis" json:"axis"`

	// Shadow is a CSS filter applied to bars. Empty disables it.
	Shadow string `toml:"shadow" json:"shadow,omitempty"`
}

// Colors holds hex colours ("#rrggbb" or "#rgb").
type Colors struct {
	UnstableBranch string `toml:"unstable_branch" json:"unstable_branch"`
	PreRelease     string `toml:"pre_release" json:"pre_release"`
	Active         string `toml:"active" json:"active"`
	LTS            string `toml:"lts" json:"lts"`
	Maintenance    string `toml:"maintenance" json:"maintenance"`

	Join  string `toml:"join" json:"join"`
	Label string `toml:"label" json:"label"`
	Text  string `toml:"text" json:"text"`
	Axis  string `toml:"axis" json:"axis"`

	// Background is empty for a transparent canvas.
	Background string `toml:"background" json:"background,omitempty"`
}

// Font configures tick and bar label text.
type Font struct {
	Family      string  `toml:"family" json:"family"`
	Size        float64 `toml:"size" json:"size"`
	Weight      int     `toml:"weight" json:"weight"`
	LabelWeight int     `toml:"label_weight" json:"label_weight"`
}

// Axis configures gridline strokes.
type Axis struct {
	TickWidth     float64 `toml:"tick_width" json:"tick_width"`
	BaselineWidth float64 `toml:"baseline_width" json:"baseline_width"`
}

// DefaultThemeName is the name of [DefaultTheme].
const DefaultThemeName = "default"

// DefaultTheme returns the standard release-chart look.
func DefaultTheme() Theme {
	return Theme{
		Name: DefaultThemeName,
		Colors: Colors{
			UnstableBranch: "#000000",
			PreRelease:     "#805d03",
			Active:         "#2aa748",
			LTS:            "#47b4ff",
			Maintenance:    "#89a19d",
			Join:           "#ffffff",
			Label:          "#ffffff",
			Text:           "#000000",
			Axis:           "#000000",
		},
		Font: Font{
			Family:      "'Inter', sans-serif",
			Size:        36,
			Weight:      400,
			LabelWeight: 500,
		},
		Axis: Axis{
			TickWidth:     2,
			BaselineWidth: 3,
		},
		Shadow: "drop-shadow(0px 0px 4px rgba(100, 100, 111, 0.87))",
	}
}

// DarkTheme returns a variant for dark backgrounds.
func DarkTheme() Theme {
	t := DefaultTheme()
	t.Name = "dark"
	t.Colors.UnstableBranch = "#d0d7de"
	t.Colors.Join = "#0d1117"
	t.Colors.Text = "#e6edf3"
	t.Colors.Axis = "#8b949e"
	t.Colors.Background = "#0d1117"
	t.Shadow = ""
	return t
}

var builtin = map[string]func() Theme{
	DefaultThemeName: DefaultTheme,
	"dark":           DarkTheme,
}

// Names lists the built-in theme names.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the built-in theme called nameOrPath, or loads it as a
// TOML file. An empty argument yields DefaultTheme.
func Resolve(nameOrPath string) (Theme, error) {
	if nameOrPath == "" {
		return DefaultTheme(), nil
	}
	if fn, ok := builtin[nameOrPath]; ok {
		return fn(), nil
	}
	return Load(nameOrPath)
}

// Load reads a TOML theme file.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Theme{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "theme %s not found", path)
		}
		return Theme{}, fmt.Errorf("read theme: %w", err)
	}
	return Decode(data)
}

// Decode parses a TOML theme over DefaultTheme and validates it.
func Decode(data []byte) (Theme, error) {
	t := DefaultTheme()
	md, err := toml.Decode(string(data), &t)
	if err != nil {
		return Theme{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode theme")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Theme{}, errors.New(errors.ErrCodeInvalidInput, "unknown theme keys: %s", strings.Join(keys, ", "))
	}
	if err := t.Validate(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// Validate checks every colour and size.
func (t Theme) Validate() error {
	c := t.Colors
	for _, f := range []struct{ key, val string }{
		{"unstable_branch", c.UnstableBranch},
		{"pre_release", c.PreRelease},
		{"active", c.Active},
		{"lts", c.LTS},
		{"maintenance", c.Maintenance},
		{"join", c.Join},
		{"label", c.Label},
		{"text", c.Text},
		{"axis", c.Axis},
	} {
		if _, err := ParseColor(f.val); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "colors.%s", f.key)
		}
	}
	if c.Background != "" {
		if _, err := ParseColor(c.Background); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "colors.background")
		}
	}
	if t.Font.Size <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "font.size must be positive, got %v", t.Font.Size)
	}
	if t.Axis.TickWidth < 0 || t.Axis.BaselineWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "axis widths must not be negative")
	}
	return nil
}

// Fill returns the bar colour for a phase kind.
func (t Theme) Fill(k segment.Kind) string {
	switch k {
	case segment.KindUnstableBranch:
		return t.Colors.UnstableBranch
	case segment.KindPreRelease:
		return t.Colors.PreRelease
	case segment.KindActive:
		return t.Colors.Active
	case segment.KindLTS:
		return t.Colors.LTS
	case segment.KindMaintenance:
		return t.Colors.Maintenance
	}
	return t.Colors.Text
}

// ParseColor parses "#rgb" or "#rrggbb".
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("color %q must start with #", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q must have 3 or 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustColor is ParseColor for colours already checked by Validate.
func MustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
