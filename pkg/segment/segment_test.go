package segment

import (
	stderrors "errors"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/ltschart/pkg/errors"
	"github.com/matzehuels/ltschart/pkg/release"
)

func d(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func window(start, end string) Window { return Window{Start: d(start), End: d(end)} }

func dataset(tracks ...release.Track) release.Dataset { return release.Dataset{Tracks: tracks} }

var v18 = release.Track{Name: "18", Milestones: release.Milestones{
	ActiveStart:      d("2022-04-19"),
	MaintenanceStart: d("2023-04-19"),
	End:              d("2025-04-30"),
}}

func TestSegmentMaintenanceThenActive(t *testing.T) {
	got, err := Run(dataset(v18), window("2022-01-01", "2026-01-01"), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []Segment{
		{Name: "18", Kind: KindMaintenance, Start: d("2023-04-19"), End: d("2025-04-30")},
		{Name: "18", Kind: KindActive, Start: d("2022-04-19"), End: d("2023-04-19"), SuppressJoinMarker: true},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Run() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestSegmentOverlapExcludesPastPhases(t *testing.T) {
	got, err := Run(dataset(v18), window("2024-01-01", "2024-06-01"), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 1 || got[0].Kind != KindMaintenance {
		t.Fatalf("Run() = %+v, want only maintenance", got)
	}
	// stored dates are never clipped
	if !got[0].Start.Equal(d("2023-04-19")) || !got[0].End.Equal(d("2025-04-30")) {
		t.Errorf("maintenance = [%v, %v)", got[0].Start, got[0].End)
	}
}

func TestSegmentPreReleaseOnly(t *testing.T) {
	tr := release.Track{Name: "v17", Milestones: release.Milestones{
		UnstableStart: d("2021-01-01"),
		End:           d("2021-10-01"),
	}}
	got, err := Run(dataset(tr), window("2020-01-01", "2022-01-01"), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []Segment{{Name: "17", Kind: KindPreRelease, Start: d("2021-01-01"), End: d("2021-10-01"), SuppressJoinMarker: true}}
	if !slices.Equal(got, want) {
		t.Errorf("Run() = %+v, want %+v", got, want)
	}
}

func TestSegmentPreReleaseIgnoresWindow(t *testing.T) {
	tr := release.Track{Name: "old", Milestones: release.Milestones{
		UnstableStart: d("2010-01-01"),
		ActiveStart:   d("2010-06-01"),
		End:           d("2011-01-01"),
	}}
	got, err := Run(dataset(tr), window("2024-01-01", "2025-01-01"), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 1 || got[0].Kind != KindPreRelease {
		t.Errorf("Run() = %+v, want the pre-release segment only", got)
	}
}

func TestSegmentFullLifecycleOrder(t *testing.T) {
	tr := release.Track{Name: "v20", Milestones: release.Milestones{
		UnstableStart:    d("2022-10-18"),
		ActiveStart:      d("2023-04-18"),
		LTSStart:         d("2023-10-24"),
		MaintenanceStart: d("2024-10-22"),
		End:              d("2026-04-30"),
	}}
	got, err := Run(dataset(tr), window("2022-01-01", "2027-01-01"), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []Segment{
		{Name: "20", Kind: KindPreRelease, Start: d("2022-10-18"), End: d("2023-04-18"), SuppressJoinMarker: true},
		{Name: "20", Kind: KindMaintenance, Start: d("2024-10-22"), End: d("2026-04-30")},
		{Name: "20", Kind: KindLTS, Start: d("2023-10-24"), End: d("2024-10-22")},
		{Name: "20", Kind: KindActive, Start: d("2023-04-18"), End: d("2023-10-24"), SuppressJoinMarker: false},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Run() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestSegmentCursorAdvancesWhenPhaseSkipped(t *testing.T) {
	// maintenance starts after the window, so it is skipped; LTS must still
	// end at the maintenance start rather than at the track end.
	tr := release.Track{Name: "v22", Milestones: release.Milestones{
		ActiveStart:      d("2024-04-24"),
		LTSStart:         d("2024-10-29"),
		MaintenanceStart: d("2025-10-21"),
		End:              d("2027-04-30"),
	}}
	got, err := Run(dataset(tr), window("2024-01-01", "2025-01-01"), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Run() = %+v, want LTS and active", got)
	}
	if got[0].Kind != KindLTS || !got[0].End.Equal(d("2025-10-21")) {
		t.Errorf("first segment = %+v, want LTS ending 2025-10-21", got[0])
	}
	if got[1].Kind != KindActive || !got[1].End.Equal(d("2024-10-29")) {
		t.Errorf("second segment = %+v, want active ending 2024-10-29", got[1])
	}
}

func TestSegmentUnstableBranch(t *testing.T) {
	w := window("2024-01-01", "2025-01-01")

	got, err := Run(dataset(v18), w, Options{IncludeUnstableBranch: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := Segment{Name: DefaultBranchName, Kind: KindUnstableBranch, Start: w.Start, End: w.End}
	if got[0] != want {
		t.Errorf("first segment = %+v, want %+v", got[0], want)
	}

	got, _ = Run(dataset(v18), w, Options{IncludeUnstableBranch: true, BranchName: "main"})
	if got[0].Name != "main" {
		t.Errorf("branch name = %q, want main", got[0].Name)
	}

	got, _ = Run(dataset(v18), w, Options{})
	for _, s := range got {
		if s.Kind == KindUnstableBranch {
			t.Errorf("unexpected unstable-branch segment %+v", s)
		}
	}
	if slices.Contains(Names(got), DefaultBranchName) {
		t.Error("Names() should not include the branch when excluded")
	}
}

func TestSegmentMissingMilestone(t *testing.T) {
	tests := []struct {
		name      string
		m         release.Milestones
		milestone string
	}{
		{"no start", release.Milestones{LTSStart: d("2020-01-01"), End: d("2021-01-01")}, release.KeyActiveStart},
		{"no end", release.Milestones{ActiveStart: d("2020-01-01")}, release.KeyEnd},
		{"no end with unstable", release.Milestones{UnstableStart: d("2020-01-01")}, release.KeyEnd},
		{"nothing", release.Milestones{}, release.KeyActiveStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := dataset(v18, release.Track{Name: "bad", Milestones: tt.m})
			got, err := Run(ds, window("2020-01-01", "2030-01-01"), Options{IncludeUnstableBranch: true})
			if err == nil {
				t.Fatal("expected error")
			}
			if got != nil {
				t.Errorf("partial output returned: %+v", got)
			}
			if !errors.Is(err, errors.ErrCodeMissingMilestone) {
				t.Errorf("code = %v, want MISSING_MILESTONE", errors.GetCode(err))
			}
			if !stderrors.Is(err, ErrMissingMilestone) {
				t.Error("errors.Is(err, ErrMissingMilestone) = false")
			}
			var me *errors.MilestoneError
			if !stderrors.As(err, &me) {
				t.Fatal("error does not carry *MilestoneError")
			}
			if me.Track != "bad" || me.Milestone != tt.milestone {
				t.Errorf("MilestoneError = %+v, want track bad milestone %s", me, tt.milestone)
			}
		})
	}
}

func TestSegmentDegenerateDatesAccepted(t *testing.T) {
	tr := release.Track{Name: "odd", Milestones: release.Milestones{
		ActiveStart: d("2024-06-01"),
		End:         d("2024-01-01"),
	}}
	if _, err := Run(dataset(tr), window("2023-01-01", "2025-01-01"), Options{}); err != nil {
		t.Errorf("end before start should not be an error: %v", err)
	}
}

func TestNames(t *testing.T) {
	segs := []Segment{{Name: "Master"}, {Name: "20"}, {Name: "20"}, {Name: "18"}, {Name: "20"}}
	if got := Names(segs); !slices.Equal(got, []string{"Master", "20", "18"}) {
		t.Errorf("Names() = %v", got)
	}
	if got := Names(nil); len(got) != 0 {
		t.Errorf("Names(nil) = %v", got)
	}
}

func TestKindLabel(t *testing.T) {
	tests := map[Kind]string{
		KindLTS:            "LTS",
		KindPreRelease:     "unstable",
		KindActive:         "active",
		KindMaintenance:    "maintenance",
		KindUnstableBranch: "unstable-branch",
	}
	for k, want := range tests {
		if got := k.Label(); got != want {
			t.Errorf("%s.Label() = %q, want %q", k, got, want)
		}
	}
}
