// Package sink renders a [layout.Scene] into output formats.
//
//   - SVG: vector chart with an embedded stylesheet built from the theme
//   - HTML: a minimal page wrapping the SVG
//   - PNG: rasterised natively with gg and the Go fonts
//   - PDF: the SVG converted by rsvg-convert
//   - JSON: the resolved scene, for external tooling
//
// Sinks only draw. Every coordinate and visibility decision was made by the
// layout package, so all formats agree on what is shown.
//
// Basic usage:
//
//	scene := layout.Build(segs, window, layout.DefaultCanvas(), layout.Options{})
//	svg := sink.RenderSVG(scene, sink.WithTheme(styles.DarkTheme()))
//	png, err := sink.RenderPNG(scene, sink.WithPNGTheme(styles.DarkTheme()), sink.WithScale(2))
//
// PDF output requires librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [layout.Scene]: github.com/matzehuels/ltschart/pkg/chart/layout.Scene
package sink
