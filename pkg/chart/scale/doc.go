// Package scale maps data values to pixel coordinates.
//
// [Time] is a clamped linear map from a date range to a pixel range: dates
// outside the domain saturate at the nearest range boundary. [Band] is a
// banded ordinal map that splits a pixel range into equal bands separated by
// fractional padding, matching the behaviour of d3's scaleBand. [Time.Ticks]
// chooses calendar-aligned tick dates for an axis.
//
// Scales are plain values. They hold no caches and can be copied and shared
// freely between goroutines.
package scale
