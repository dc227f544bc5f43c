package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ltschart/pkg/cache"
	"github.com/matzehuels/ltschart/pkg/chart/layout"
	"github.com/matzehuels/ltschart/pkg/observability"
	"github.com/matzehuels/ltschart/pkg/release"
	"github.com/matzehuels/ltschart/pkg/segment"
)

// Cache key types reported to observability hooks.
const (
	stageSegments = "segments"
	stageLayout   = "layout"
	stageArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete segment -> layout -> render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, ds release.Dataset, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Segment
	segStart := time.Now()
	segs, segHit, err := r.SegmentWithCacheInfo(ctx, ds, opts)
	if err != nil {
		return nil, err
	}
	result.Segments = segs
	result.DatasetHash, _ = cache.HashJSON(ds)
	result.Stats.TrackCount = ds.Len()
	result.Stats.SegmentCount = len(segs)
	result.Stats.SegmentTime = time.Since(segStart)
	result.CacheInfo.SegmentsHit = segHit

	r.Logger.Info("segmented tracks",
		"tracks", ds.Len(),
		"segments", len(segs),
		"duration", result.Stats.SegmentTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	scene, layoutHit, err := r.LayoutWithCacheInfo(ctx, segs, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Scene = scene
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"bars", len(scene.Items),
		"ticks", len(scene.XAxis.Ticks),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, scene, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SegmentWithCacheInfo segments the dataset with caching and returns cache
// hit info.
func (r *Runner) SegmentWithCacheInfo(ctx context.Context, ds release.Dataset, opts Options) (segs []segment.Segment, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForSegment(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnSegmentStart(ctx, ds.Len())
	start := time.Now()
	defer func() { hooks.OnSegmentComplete(ctx, len(segs), time.Since(start), err) }()

	datasetHash, err := cache.HashJSON(ds)
	if err != nil {
		return nil, false, err
	}
	cacheKey, err := r.Keyer.SegmentsKey(datasetHash, opts.SegmentsKeyOpts())
	if err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		var cached []segment.Segment
		if r.get(ctx, stageSegments, cacheKey, &cached) {
			return cached, true, nil
		}
	}

	segs, err = Segment(ds, opts)
	if err != nil {
		return nil, false, err
	}
	r.set(ctx, stageSegments, cacheKey, segs, cache.TTLSegments)
	return segs, false, nil
}

// Segment is a convenience wrapper that calls SegmentWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Segment(ctx context.Context, ds release.Dataset, opts Options) ([]segment.Segment, error) {
	segs, _, err := r.SegmentWithCacheInfo(ctx, ds, opts)
	return segs, err
}

// LayoutWithCacheInfo lays out segments with caching and returns cache hit
// info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, segs []segment.Segment, opts Options) (scene layout.Scene, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForSegment(); err != nil {
		return layout.Scene{}, false, err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Scene{}, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(segs))
	start := time.Now()
	defer func() { hooks.OnLayoutComplete(ctx, time.Since(start), err) }()

	segsHash, err := cache.HashJSON(segs)
	if err != nil {
		return layout.Scene{}, false, err
	}
	cacheKey, err := r.Keyer.LayoutKey(segsHash, opts.LayoutKeyOpts())
	if err != nil {
		return layout.Scene{}, false, err
	}

	if !opts.Refresh {
		var cached layout.Scene
		if r.get(ctx, stageLayout, cacheKey, &cached) {
			return cached, true, nil
		}
	}

	scene, err = Layout(segs, opts)
	if err != nil {
		return layout.Scene{}, false, err
	}
	r.set(ctx, stageLayout, cacheKey, scene, cache.TTLLayout)
	return scene, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, segs []segment.Segment, opts Options) (layout.Scene, error) {
	scene, _, err := r.LayoutWithCacheInfo(ctx, segs, opts)
	return scene, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. The hit flag is true only if every format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scene layout.Scene, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	sceneHash, err := cache.HashJSON(scene)
	if err != nil {
		return nil, false, fmt.Errorf("serialize scene for cache key: %w", err)
	}

	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		if keys[format], err = r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format)); err != nil {
			return nil, false, err
		}
	}

	if !opts.Refresh {
		artifacts = make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, ok := r.getRaw(ctx, stageArtifact, keys[format])
			if !ok {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(uniq(opts.Formats)) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, scene, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		if err := r.Cache.Set(ctx, keys[format], data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, stageArtifact, len(data))
		}
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, scene layout.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, scene, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// get decodes a cached JSON value into v. Undecodable entries count as
// misses.
func (r *Runner) get(ctx context.Context, stage, key string, v any) bool {
	data, ok := r.getRaw(ctx, stage, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		r.Logger.Debug("discarding cache entry", "stage", stage, "err", err)
		return false
	}
	return true
}

func (r *Runner) getRaw(ctx context.Context, stage, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "stage", stage, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, stage)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, stage)
	return data, true
}

func (r *Runner) set(ctx context.Context, stage, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "stage", stage, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, stage, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func uniq(ss []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		m[s] = struct{}{}
	}
	return m
}
