// Package layout resolves phase segments into pixel geometry.
//
// [Build] takes the ordered segment list produced by package segment, the query
// window and the canvas size, and returns a [Scene]: both axes with their
// ticks and gridlines, and one [Item] per segment holding the bar, the join
// marker and the label, each with a visibility flag already decided.
//
// # Coordinates
//
// Scene coordinates are relative to the plot area, whose origin sits at
// (Margin.Left, Margin.Top) on the canvas. x grows with time, y grows down
// the list of track names.
//
// # Rules
//
//   - The time scale is clamped: dates outside the window pin to the plot edge.
//     This is the only clipping in the whole pipeline.
//   - Bar width is never negative; a segment entirely outside the window
//     collapses to zero width at the nearest edge.
//   - A join marker is shown unless the segment suppresses it or it would sit
//     on the left edge of the plot.
//   - A label is shown only if the bar is at least len(text) * LabelCharWidth
//     pixels wide.
//
// Build is pure: identical inputs give identical scenes.
package layout
