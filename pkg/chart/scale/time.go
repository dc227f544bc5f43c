package scale

import "time"

// TickFormat is the layout used for time-axis labels ("Jan 2024").
const TickFormat = "Jan 2006"

// Time is a clamped linear scale from dates to pixels.
type Time struct {
	Domain [2]time.Time `json:"domain"`
	Range  [2]float64   `json:"range"`
}

// NewTime returns a time scale mapping [start, end] onto [r0, r1].
func NewTime(start, end time.Time, r0, r1 float64) Time {
	return Time{Domain: [2]time.Time{start, end}, Range: [2]float64{r0, r1}}
}

// Map returns the pixel position of t. Dates before the domain map to
// Range[0] and dates after it map to Range[1]. When the domain is empty or
// reversed, dates up to Domain[0] map to Range[0] and later dates to Range[1].
func (s Time) Map(t time.Time) float64 {
	start, end := s.Domain[0], s.Domain[1]
	if !end.After(start) {
		if t.After(start) {
			return s.Range[1]
		}
		return s.Range[0]
	}

	f := float64(t.Sub(start)) / float64(end.Sub(start))
	f = max(0, min(1, f))
	return s.Range[0] + f*(s.Range[1]-s.Range[0])
}

// Format formats a tick date.
func Format(t time.Time) string {
	return t.UTC().Format(TickFormat)
}
