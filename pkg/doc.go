// Package pkg provides the core libraries for ltschart, a renderer for
// long-term-support release schedules.
//
// # Overview
//
// ltschart turns a table of release milestones (start, lts, maintenance,
// end) into a Gantt-style chart with one row per release line. The pkg
// directory is organized into these areas:
//
//  1. [release] - Dataset model and JSON/YAML/TOML decoding
//  2. [segment] - Splitting each track into lifecycle segments inside a window
//  3. [chart/layout] - Resolving segments into a positioned scene
//  4. [chart/sink] - SVG, HTML, PNG, PDF and JSON output
//  5. [pipeline] - Orchestration (segment → layout → render) with caching
//
// # Architecture
//
// The typical data flow through ltschart:
//
//	lts.json / lts.yaml / lts.toml
//	         ↓
//	    [release] package (decode tracks and milestones)
//	         ↓
//	    [segment] package (windowed lifecycle segments)
//	         ↓
//	    [chart/layout] package (scales, bars, labels, axes)
//	         ↓
//	    [chart/sink] package (SVG/HTML/PNG/PDF/JSON)
//
// # Quick Start
//
//	ds, _ := release.Load("lts.json")
//	w := segment.Window{Start: start, End: end}
//	segs, _ := segment.Run(ds, w, segment.Options{IncludeUnstableBranch: true})
//	scene := layout.Build(segs, w, layout.DefaultCanvas(), layout.Options{})
//	svg := sink.RenderSVG(scene, sink.WithTheme(styles.DarkTheme()))
//
// The [pipeline] package wraps the same steps and caches each stage:
//
//	runner := pipeline.NewRunner(c, cache.NewDefaultKeyer(), logger)
//	res, err := runner.Execute(ctx, ds, pipeline.Options{Formats: []string{"svg"}})
//
// # Supporting Packages
//
// [cache] - Cache interface with file, Redis and null backends plus
// content-addressed keys for each pipeline stage.
//
// [errors] - Coded errors shared by the CLI and the HTTP server.
//
// [httputil] - Fetching remote datasets with retries and caching.
//
// [observability] - Pipeline, cache and HTTP hooks with a logging
// implementation.
//
// [chart/scale] - Time and band scales with tick generation.
//
// [chart/styles] - Themes (built-in or loaded from file) and CSS.
//
// [fonts] - Embedded Go fonts for PNG rendering and SVG embedding.
//
// [buildinfo] - Version metadata injected at link time.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/segment/...  # Specific package
//	go test -run Example       # Examples only
//
// [release]: https://pkg.go.dev/github.com/matzehuels/ltschart/pkg/release
// [segment]: https://pkg.go.dev/github.com/matzehuels/ltschart/pkg/segment
// [chart/layout]: https://pkg.go.dev/github.com/matzehuels/ltschart/pkg/chart/layout
// [chart/sink]: https://pkg.go.dev/github.com/matzehuels/ltschart/pkg/chart/sink
// [chart/scale]: https://pkg.go.dev/github.com/matzehuels/ltschart/pkg/chart/scale
// [chart/styles]: https://pkg.go.dev/github.com/matzehuels/ltschart/pkg/chart/styles
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/ltschart/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/ltschart/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/ltschart/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/ltschart/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/ltschart/pkg/observability
// [fonts]: https://pkg.go.dev/github.com/matzehuels/ltschart/pkg/fonts
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/ltschart/pkg/buildinfo
package pkg
