package cache

import "time"

// Keyer derives cache keys for each pipeline stage. An error means the
// options cannot be encoded, for example a NaN float.
type Keyer interface {
	SegmentsKey(datasetHash string, opts SegmentsKeyOpts) (string, error)
	LayoutKey(segmentsHash string, opts LayoutKeyOpts) (string, error)
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) (string, error)
}

// SegmentsKeyOpts are the segmenter inputs besides the dataset.
type SegmentsKeyOpts struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	IncludeBranch bool      `json:"include_branch"`
	BranchName    string    `json:"branch_name"`
	Tracks        []string  `json:"tracks,omitempty"`
}

// LayoutKeyOpts are the layout inputs besides the segments.
type LayoutKeyOpts struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Width          float64   `json:"width"`
	Height         float64   `json:"height"`
	Margins        []float64 `json:"margins"`
	LabelCharWidth float64   `json:"label_char_width"`
	Animate        bool      `json:"animate"`
}

// ArtifactKeyOpts are the render inputs besides the scene.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	ThemeHash string  `json:"theme_hash"`
	Scale     float64 `json:"scale,omitempty"`
	EmbedFont bool    `json:"embed_font,omitempty"`
	Title     string  `json:"title,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SegmentsKey generates a key for segmenter output.
func (DefaultKeyer) SegmentsKey(datasetHash string, opts SegmentsKeyOpts) (string, error) {
	return hashKey("segments", datasetHash, opts)
}

// LayoutKey generates a key for a laid-out scene.
func (DefaultKeyer) LayoutKey(segmentsHash string, opts LayoutKeyOpts) (string, error) {
	return hashKey("layout", segmentsHash, opts)
}

// ArtifactKey generates a key for rendered output.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) (string, error) {
	return hashKey("artifact", sceneHash, opts)
}
