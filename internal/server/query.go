package server

import (
	"math"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/matzehuels/ltschart/pkg/chart/styles"
	"github.com/matzehuels/ltschart/pkg/errors"
	"github.com/matzehuels/ltschart/pkg/pipeline"
	"github.com/matzehuels/ltschart/pkg/release"
)

// options builds pipeline options from the request query. Unset parameters
// keep the pipeline defaults; the unstable branch is included unless
// exclude_master is true.
func (s *server) options(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		BranchName: q.Get("branch_name"),
		Tracks:     q["track"],
		Title:      q.Get("title"),
		Now:        s.now,
	}

	var err error
	if opts.Start, err = dateParam(q, "start"); err != nil {
		return opts, err
	}
	if opts.End, err = dateParam(q, "end"); err != nil {
		return opts, err
	}

	exclude, err := boolParam(q, "exclude_master")
	if err != nil {
		return opts, err
	}
	opts.IncludeUnstableBranch = !exclude
	if opts.Animate, err = boolParam(q, "animate"); err != nil {
		return opts, err
	}
	if opts.EmbedFont, err = boolParam(q, "embed_font"); err != nil {
		return opts, err
	}

	for name, dst := range map[string]*float64{
		"width":            &opts.Width,
		"height":           &opts.Height,
		"margin_left":      &opts.MarginLeft,
		"label_char_width": &opts.LabelCharWidth,
		"scale":            &opts.PNGScale,
	} {
		if *dst, err = floatParam(q, name); err != nil {
			return opts, err
		}
	}

	// Only built-in themes: a theme parameter must never name a server file.
	if name := q.Get("theme"); name != "" {
		if !slices.Contains(styles.Names(), name) {
			return opts, errors.New(errors.ErrCodeInvalidInput, "unknown theme %q", name)
		}
		if opts.Theme, err = styles.Resolve(name); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func dateParam(q url.Values, name string) (time.Time, error) {
	v := q.Get(name)
	if v == "" {
		return time.Time{}, nil
	}
	return release.ParseDate(v)
}

func boolParam(q url.Values, name string) (bool, error) {
	v := q.Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s: want a boolean, got %q", name, v)
	}
	return b, nil
}

func floatParam(q url.Values, name string) (float64, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: want a finite number, got %q", name, v)
	}
	return f, nil
}
