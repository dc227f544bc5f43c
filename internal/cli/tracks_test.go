package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/ltschart/pkg/segment"
)

func TestTracksTable(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, append([]string{"tracks", "-d", env.data}, window()...)...)
	if err != nil {
		t.Fatalf("tracks: %v", err)
	}
	for _, want := range []string{"2024-01-01 → 2025-01-01", "Master", "long-term-support", "maintenance", "2024-10-22"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestTracksJSON(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, append([]string{"tracks", "-d", env.data, "--format", "json", "-m", "--track", "v20"}, window()...)...)
	if err != nil {
		t.Fatalf("tracks: %v", err)
	}
	var body struct {
		Window   segment.Window    `json:"window"`
		Segments []segment.Segment `json:"segments"`
	}
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(body.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(body.Segments))
	}
	if body.Segments[0].Kind != segment.KindMaintenance || body.Segments[1].Kind != segment.KindLTS {
		t.Errorf("kinds = %s, %s", body.Segments[0].Kind, body.Segments[1].Kind)
	}
	if body.Window.End.Year() != 2025 {
		t.Errorf("window = %+v", body.Window)
	}
}

func TestTracksBadFormat(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.run(t, "tracks", "-d", env.data, "--format", "xml"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestSegmentTable(t *testing.T) {
	segs := []segment.Segment{
		{Name: "22", Kind: segment.KindPreRelease, SuppressJoinMarker: true},
		{Name: "22", Kind: segment.KindActive},
	}
	table := segmentTable(segs)
	for _, want := range []string{"Track", "Phase", "pre-release", "active", "no", "yes"} {
		if !strings.Contains(table, want) {
			t.Errorf("table missing %q", want)
		}
	}
}
