package release

import (
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/ltschart/pkg/errors"
)

// Dataset keys for each milestone.
const (
	KeyUnstableStart    = "unstable_start"
	KeyActiveStart      = "start"
	KeyLTSStart         = "lts"
	KeyMaintenanceStart = "supported"
	KeyEnd              = "end"
)

// Milestones holds the lifecycle dates of a track. A zero time means the
// milestone is not set.
type Milestones struct {
	UnstableStart    time.Time
	ActiveStart      time.Time
	LTSStart         time.Time
	MaintenanceStart time.Time
	End              time.Time
}

// Track is a named release line.
type Track struct {
	Name       string
	Milestones Milestones
}

// DisplayName returns the label used for the track on charts: the name with a
// leading "v" removed, so "v18" is drawn as "18".
func (t Track) DisplayName() string {
	return strings.TrimPrefix(t.Name, "v")
}

// Dataset is an ordered collection of tracks.
type Dataset struct {
	Tracks []Track
}

// Len returns the number of tracks.
func (d Dataset) Len() int { return len(d.Tracks) }

// Names returns track names in dataset order.
func (d Dataset) Names() []string {
	names := make([]string, len(d.Tracks))
	for i, t := range d.Tracks {
		names[i] = t.Name
	}
	return names
}

// Lookup returns the track with the given name.
func (d Dataset) Lookup(name string) (Track, bool) {
	for _, t := range d.Tracks {
		if t.Name == name {
			return t, true
		}
	}
	return Track{}, false
}

// Filter returns a dataset holding only the named tracks, in dataset order.
// Names that do not match a track are ignored; an empty names list returns d
// unchanged.
func (d Dataset) Filter(names []string) Dataset {
	if len(names) == 0 {
		return d
	}
	out := Dataset{}
	for _, t := range d.Tracks {
		if slices.Contains(names, t.Name) {
			out.Tracks = append(out.Tracks, t)
		}
	}
	return out
}

// Missing returns the names from names that do not exist in d.
func (d Dataset) Missing(names []string) []string {
	var missing []string
	for _, n := range names {
		if _, ok := d.Lookup(n); !ok {
			missing = append(missing, n)
		}
	}
	return missing
}

// Select returns the tracks named in names, in dataset order. A name matches
// either a track's Name or its DisplayName, so "v18" and "18" select the same
// track. Unknown names fail with TRACK_NOT_FOUND.
func (d Dataset) Select(names []string) (Dataset, error) {
	if len(names) == 0 {
		return d, nil
	}
	want := make(map[string]bool, len(names))
	var missing []string
	for _, n := range names {
		found := false
		for _, t := range d.Tracks {
			if t.Name == n || t.DisplayName() == n {
				want[t.Name] = true
				found = true
			}
		}
		if !found {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return Dataset{}, errors.New(errors.ErrCodeTrackNotFound, "unknown tracks: %s", strings.Join(missing, ", "))
	}

	out := Dataset{}
	for _, t := range d.Tracks {
		if want[t.Name] {
			out.Tracks = append(out.Tracks, t)
		}
	}
	return out, nil
}
