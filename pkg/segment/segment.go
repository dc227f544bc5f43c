package segment

import (
	"time"

	"github.com/matzehuels/ltschart/pkg/errors"
	"github.com/matzehuels/ltschart/pkg/release"
)

// Kind identifies a lifecycle phase.
type Kind string

// Phase kinds.
const (
	KindUnstableBranch Kind = "unstable-branch"
	KindPreRelease     Kind = "pre-release"
	KindActive         Kind = "active"
	KindLTS            Kind = "long-term-support"
	KindMaintenance    Kind = "maintenance"
)

// Kinds lists every phase kind.
var Kinds = []Kind{KindUnstableBranch, KindPreRelease, KindActive, KindLTS, KindMaintenance}

// Label returns the text drawn inside a segment's bar.
func (k Kind) Label() string {
	switch k {
	case KindLTS:
		return "LTS"
	case KindPreRelease:
		return "unstable"
	default:
		return string(k)
	}
}

// DefaultBranchName names the synthetic rolling-branch segment.
const DefaultBranchName = "Master"

// Segment is one contiguous phase of one track.
type Segment struct {
	Name               string    `json:"name"`
	Kind               Kind      `json:"kind"`
	Start              time.Time `json:"start"`
	End                time.Time `json:"end"`
	SuppressJoinMarker bool      `json:"suppress_join_marker"`
}

// Window is the date range a chart visualises.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether [start, end) intersects the window.
func (w Window) Overlaps(start, end time.Time) bool {
	return start.Before(w.End) && end.After(w.Start)
}

// Options configures [Run].
type Options struct {
	// IncludeUnstableBranch prepends a segment spanning the whole window for
	// the rolling mainline.
	IncludeUnstableBranch bool

	// BranchName names the rolling-branch segment. Defaults to
	// DefaultBranchName.
	BranchName string
}

// ErrMissingMilestone matches every error Run returns, via errors.Is.
var ErrMissingMilestone = errors.ErrMissingMilestone

// phase is one step of the cursor reduction.
type phase struct {
	kind      Kind
	milestone func(release.Milestones) time.Time
	suppress  func(release.Milestones) bool
}

// phases are ordered from the latest-starting milestone to the earliest.
var phases = []phase{
	{
		kind:      KindMaintenance,
		milestone: func(m release.Milestones) time.Time { return m.MaintenanceStart },
		suppress:  func(release.Milestones) bool { return false },
	},
	{
		kind:      KindLTS,
		milestone: func(m release.Milestones) time.Time { return m.LTSStart },
		suppress:  func(release.Milestones) bool { return false },
	},
	{
		kind:      KindActive,
		milestone: func(m release.Milestones) time.Time { return m.ActiveStart },
		// a pre-release bar already abuts the active bar
		suppress: func(m release.Milestones) bool { return m.UnstableStart.IsZero() },
	},
}

// Run converts a dataset into phase segments for the given window.
//
// Tracks are processed in dataset order. A track without an unstable or
// active start, or without an end, aborts the whole run with a
// MISSING_MILESTONE error naming the track and milestone; no partial result
// is returned.
func Run(ds release.Dataset, w Window, opts Options) ([]Segment, error) {
	var out []Segment
	for _, t := range ds.Tracks {
		segs, err := track(t, w)
		if err != nil {
			return nil, err
		}
		out = append(out, segs...)
	}

	if opts.IncludeUnstableBranch {
		name := opts.BranchName
		if name == "" {
			name = DefaultBranchName
		}
		branch := Segment{Name: name, Kind: KindUnstableBranch, Start: w.Start, End: w.End}
		out = append([]Segment{branch}, out...)
	}
	return out, nil
}

func track(t release.Track, w Window) ([]Segment, error) {
	m := t.Milestones
	name := t.DisplayName()

	var out []Segment
	if !m.UnstableStart.IsZero() {
		end := m.ActiveStart
		if end.IsZero() {
			end = m.End
		}
		out = append(out, Segment{Name: name, Kind: KindPreRelease, Start: m.UnstableStart, End: end, SuppressJoinMarker: true})
	} else if m.ActiveStart.IsZero() {
		return nil, missing(t.Name, release.KeyActiveStart)
	}

	if m.End.IsZero() {
		return nil, missing(t.Name, release.KeyEnd)
	}

	cursor := m.End
	for _, p := range phases {
		start := p.milestone(m)
		if start.IsZero() {
			continue
		}
		if w.Overlaps(start, cursor) {
			out = append(out, Segment{Name: name, Kind: p.kind, Start: start, End: cursor, SuppressJoinMarker: p.suppress(m)})
		}
		cursor = start
	}
	return out, nil
}

func missing(track, milestone string) error {
	return errors.Wrap(errors.ErrCodeMissingMilestone,
		&errors.MilestoneError{Track: track, Milestone: milestone},
		"cannot segment track %s", track)
}

// Names returns the distinct segment names in first-occurrence order.
func Names(segs []Segment) []string {
	seen := make(map[string]struct{}, len(segs))
	var names []string
	for _, s := range segs {
		if _, ok := seen[s.Name]; ok {
			continue
		}
		seen[s.Name] = struct{}{}
		names = append(names, s.Name)
	}
	return names
}
