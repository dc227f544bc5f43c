package release

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ltschart/pkg/errors"
)

// rawTrack is the decoded form of one dataset record before date parsing.
// Values are strings (JSON, quoted YAML/TOML) or time.Time (YAML timestamps,
// TOML dates).
type rawTrack map[string]any

// ReadJSON decodes a JSON dataset from r, preserving key order.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (Dataset, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode dataset")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Dataset{}, errors.New(errors.ErrCodeInvalidInput, "dataset must be a JSON object keyed by track name")
	}

	var ds Dataset
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode dataset")
		}
		name := tok.(string) // object keys are always strings

		var raw rawTrack
		if err := dec.Decode(&raw); err != nil {
			return Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode track %s", name)
		}
		if err := ds.add(name, raw); err != nil {
			return Dataset{}, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode dataset")
	}
	if _, err := dec.Token(); err != io.EOF {
		return Dataset{}, errors.New(errors.ErrCodeInvalidInput, "unexpected data after the dataset object")
	}
	return ds, nil
}

// ReadYAML decodes a YAML dataset from r, preserving key order.
func ReadYAML(r io.Reader) (Dataset, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return Dataset{}, nil
		}
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode dataset")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return Dataset{}, errors.New(errors.ErrCodeInvalidInput, "dataset must be a YAML mapping keyed by track name")
	}

	var ds Dataset
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		var raw rawTrack
		if err := root.Content[i+1].Decode(&raw); err != nil {
			return Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode track %s", name)
		}
		if err := ds.add(name, raw); err != nil {
			return Dataset{}, err
		}
	}
	return ds, nil
}

// ReadTOML decodes a TOML dataset from r. Each track is a table:
//
//	[v18]
//	start = 2022-04-19
//	supported = 2023-04-19
//	end = 2025-04-30
//
// Table order follows the document.
func ReadTOML(r io.Reader) (Dataset, error) {
	var tables map[string]rawTrack
	md, err := toml.NewDecoder(r).Decode(&tables)
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode dataset")
	}

	var ds Dataset
	for _, key := range md.Keys() {
		if len(key) != 1 {
			continue
		}
		name := key[0]
		raw, ok := tables[name]
		if !ok {
			return Dataset{}, errors.New(errors.ErrCodeInvalidInput, "track %s must be a table", name)
		}
		if err := ds.add(name, raw); err != nil {
			return Dataset{}, err
		}
	}
	return ds, nil
}

// Load reads a dataset file, choosing the decoder from its extension.
// Unknown extensions are decoded as JSON.
func Load(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Dataset{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("read %s: %w", path, err)
	}

	ds, err := Decode(data, Format(path))
	if err != nil {
		return Dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Input formats accepted by [Decode].
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Format returns the dataset format implied by a file name.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Decode decodes data in the given format.
func Decode(data []byte, format string) (Dataset, error) {
	r := bytes.NewReader(data)
	switch format {
	case FormatJSON, "":
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatTOML:
		return ReadTOML(r)
	default:
		return Dataset{}, errors.New(errors.ErrCodeInvalidFormat, "unknown dataset format %q", format)
	}
}

func (d *Dataset) add(name string, raw rawTrack) error {
	if err := errors.ValidateTrackName(name); err != nil {
		return err
	}
	if _, dup := d.Lookup(name); dup {
		return errors.New(errors.ErrCodeInvalidTrack, "duplicate track %s", name)
	}

	t := Track{Name: name}
	fields := []struct {
		key string
		dst *time.Time
	}{
		{KeyUnstableStart, &t.Milestones.UnstableStart},
		{KeyActiveStart, &t.Milestones.ActiveStart},
		{KeyLTSStart, &t.Milestones.LTSStart},
		{KeyMaintenanceStart, &t.Milestones.MaintenanceStart},
		{KeyEnd, &t.Milestones.End},
	}
	for _, f := range fields {
		v, err := milestoneValue(raw[f.key])
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDate, err, "track %s: %s", name, f.key)
		}
		*f.dst = v
	}

	d.Tracks = append(d.Tracks, t)
	return nil
}

// milestoneValue converts a decoded value to a date. Missing, null and empty
// values are unset milestones.
func milestoneValue(v any) (time.Time, error) {
	switch v := v.(type) {
	case nil:
		return time.Time{}, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return time.Time{}, nil
		}
		return ParseDate(strings.TrimSpace(v))
	case time.Time:
		return v.UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported value %v (%T)", v, v)
	}
}
