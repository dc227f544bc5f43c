// Package styles defines the visual theme of a chart.
//
// A [Theme] carries one fill colour per phase kind plus fonts and stroke
// widths. Sinks receive the theme explicitly; nothing here is global.
//
// Themes are plain TOML:
//
//	name = "print"
//
//	[colors]
//	active = "#2aa748"
//	lts = "#47b4ff"
//
//	[font]
//	size = 28
//
// Keys missing from the file keep their [DefaultTheme] value. [Resolve]
// accepts either a built-in theme name or a path to such a file.
package styles
