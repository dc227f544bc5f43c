// Package fonts provides the fonts used to rasterise charts.
//
// The Go font family ships with golang.org/x/image as TTF byte slices, so
// PNG output needs no system fonts. SVG output names its font in CSS and can
// optionally embed Go Regular as a fallback.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name used when Go Regular is embedded.
const FontFamily = "Go"

// Weight selects between the bundled faces.
type Weight int

// Supported weights. Anything at or above WeightMedium uses Go Medium.
const (
	WeightRegular Weight = 400
	WeightMedium  Weight = 500
)

var (
	parseOnce sync.Once
	regular   *truetype.Font
	medium    *truetype.Font
	parseErr  error

	b64Once sync.Once
	b64     string
)

func parse() {
	if regular, parseErr = truetype.Parse(goregular.TTF); parseErr != nil {
		parseErr = fmt.Errorf("parse go regular: %w", parseErr)
		return
	}
	if medium, parseErr = truetype.Parse(gomedium.TTF); parseErr != nil {
		parseErr = fmt.Errorf("parse go medium: %w", parseErr)
	}
}

// Face returns a font face of the given size in points at 72 DPI, so one
// point is one pixel.
func Face(w Weight, size float64) (font.Face, error) {
	parseOnce.Do(parse)
	if parseErr != nil {
		return nil, parseErr
	}
	f := regular
	if w >= WeightMedium {
		f = medium
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}

// RegularTTF returns the Go Regular TTF data.
func RegularTTF() []byte { return goregular.TTF }

// RegularBase64 returns Go Regular as a base64 string for CSS data URLs.
// The result is cached after first computation.
func RegularBase64() string {
	b64Once.Do(func() {
		b64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return b64
}
