package release

import (
	"slices"
	"testing"

	"github.com/matzehuels/ltschart/pkg/errors"
)

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"v18":    "18",
		"18":     "18",
		"vv1":    "v1",
		"Master": "Master",
	}
	for name, want := range tests {
		if got := (Track{Name: name}).DisplayName(); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestFilter(t *testing.T) {
	ds := Dataset{Tracks: []Track{{Name: "a"}, {Name: "b"}, {Name: "c"}}}

	tests := []struct {
		name  string
		names []string
		want  []string
	}{
		{"empty keeps all", nil, []string{"a", "b", "c"}},
		{"dataset order wins", []string{"c", "a"}, []string{"a", "c"}},
		{"unknown ignored", []string{"b", "zzz"}, []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ds.Filter(tt.names).Names(); !slices.Equal(got, tt.want) {
				t.Errorf("Filter(%v) = %v, want %v", tt.names, got, tt.want)
			}
		})
	}

	if got := ds.Missing([]string{"a", "x", "y"}); !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("Missing() = %v", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2022-04-19", "2022-04-19T00:00:00Z", false},
		{"2022-04-19T10:00:00+02:00", "2022-04-19T08:00:00Z", false},
		{"2022-04-19T10:00:00", "2022-04-19T10:00:00Z", false},
		{"2022-04-19T10:00", "2022-04-19T10:00:00Z", false},
		{"04/19/2022", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && got.Format("2006-01-02T15:04:05Z07:00") != tt.want {
			t.Errorf("ParseDate(%q) = %v, want %s", tt.input, got, tt.want)
		}
	}
}

func TestSelect(t *testing.T) {
	ds := Dataset{Tracks: []Track{{Name: "v16"}, {Name: "v18"}, {Name: "v20"}}}

	tests := []struct {
		name    string
		names   []string
		want    []string
		wantErr bool
	}{
		{"empty keeps all", nil, []string{"v16", "v18", "v20"}, false},
		{"dataset order", []string{"v20", "v16"}, []string{"v16", "v20"}, false},
		{"display name", []string{"18"}, []string{"v18"}, false},
		{"both forms once", []string{"18", "v18"}, []string{"v18"}, false},
		{"unknown", []string{"18", "22"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ds.Select(tt.names)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeTrackNotFound) {
					t.Fatalf("err = %v, want TRACK_NOT_FOUND", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got.Names(), tt.want) {
				t.Errorf("Select(%v) = %v, want %v", tt.names, got.Names(), tt.want)
			}
		})
	}
}
