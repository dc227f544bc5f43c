package scale

import (
	"math"
	"time"
)

// DefaultTickCount is the approximate number of ticks [Time.Ticks] aims for.
const DefaultTickCount = 10

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
	year  = 365 * day
)

// unit is a calendar unit that tick intervals are built from.
type unit int

const (
	unitDay unit = iota
	unitWeek
	unitMonth
	unitYear
)

// interval is a calendar-aligned tick interval: every step-th unit.
type interval struct {
	unit     unit
	step     int
	duration time.Duration
}

// ladder holds the candidate intervals in increasing duration. Spans longer
// than a year per tick use a multi-year interval instead.
var ladder = []interval{
	{unitDay, 1, day},
	{unitDay, 2, 2 * day},
	{unitWeek, 1, week},
	{unitMonth, 1, month},
	{unitMonth, 3, 3 * month},
	{unitYear, 1, year},
}

// Ticks returns calendar-aligned dates inside the domain (inclusive), spaced so
// that roughly count of them fit. All calculations are in UTC.
func (s Time) Ticks(count int) []time.Time {
	start, end := s.Domain[0].UTC(), s.Domain[1].UTC()
	if count <= 0 || end.Before(start) {
		return nil
	}
	iv := chooseInterval(start, end, count)

	var ticks []time.Time
	for t := ceil(start, iv.unit); !t.After(end); t = next(t, iv.unit) {
		if iv.matches(t) {
			ticks = append(ticks, t)
		}
	}
	return ticks
}

func chooseInterval(start, end time.Time, count int) interval {
	target := end.Sub(start) / time.Duration(count)

	i := 0
	for i < len(ladder) && ladder[i].duration <= target {
		i++
	}
	switch {
	case i == len(ladder):
		step := tickStep(float64(start.Year()), float64(end.Year()), count)
		return interval{unitYear, max(1, int(step)), time.Duration(step) * year}
	case i == 0:
		return ladder[0]
	}

	lo, hi := ladder[i-1], ladder[i]
	if float64(target)/float64(lo.duration) < float64(hi.duration)/float64(target) {
		return lo
	}
	return hi
}

// tickStep returns a step of 1, 2 or 5 times a power of ten that splits
// [start, stop] into about count pieces.
func tickStep(start, stop float64, count int) float64 {
	step0 := math.Abs(stop-start) / float64(count)
	if step0 == 0 {
		return 1
	}
	step1 := math.Pow(10, math.Floor(math.Log10(step0)))
	switch e := step0 / step1; {
	case e >= math.Sqrt(50):
		step1 *= 10
	case e >= math.Sqrt(10):
		step1 *= 5
	case e >= math.Sqrt(2):
		step1 *= 2
	}
	return step1
}

// matches reports whether t falls on the interval's step, counted from the
// start of the enclosing month (days) or year (months), or from year zero.
func (iv interval) matches(t time.Time) bool {
	switch iv.unit {
	case unitDay:
		return (t.Day()-1)%iv.step == 0
	case unitMonth:
		return (int(t.Month())-1)%iv.step == 0
	case unitYear:
		return t.Year()%iv.step == 0
	default:
		return true
	}
}

// ceil returns the first unit boundary at or after t.
func ceil(t time.Time, u unit) time.Time {
	var b time.Time
	switch u {
	case unitDay:
		b = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case unitWeek:
		b = time.Date(t.Year(), t.Month(), t.Day()-int(t.Weekday()), 0, 0, 0, 0, time.UTC)
	case unitMonth:
		b = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case unitYear:
		b = time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	if b.Before(t) {
		b = next(b, u)
	}
	return b
}

func next(t time.Time, u unit) time.Time {
	switch u {
	case unitDay:
		return t.AddDate(0, 0, 1)
	case unitWeek:
		return t.AddDate(0, 0, 7)
	case unitMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(1, 0, 0)
	}
}
