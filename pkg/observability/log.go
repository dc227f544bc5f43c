package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements all
// three hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks { return &LogHooks{logger: l} }

// OnSegmentStart logs the number of tracks about to be segmented.
func (h *LogHooks) OnSegmentStart(_ context.Context, tracks int) {
	h.logger.Debug("segment start", "tracks", tracks)
}

// OnSegmentComplete logs the segment count and elapsed time.
func (h *LogHooks) OnSegmentComplete(_ context.Context, segments int, d time.Duration, err error) {
	h.logger.Debug("segment done", "segments", segments, "duration", d, "err", err)
}

// OnLayoutStart logs the number of segments being laid out.
func (h *LogHooks) OnLayoutStart(_ context.Context, segments int) {
	h.logger.Debug("layout start", "segments", segments)
}

// OnLayoutComplete logs the layout duration.
func (h *LogHooks) OnLayoutComplete(_ context.Context, d time.Duration, err error) {
	h.logger.Debug("layout done", "duration", d, "err", err)
}

// OnRenderStart logs the requested formats.
func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

// OnRenderComplete logs the formats produced and the render duration.
func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "duration", d, "err", err)
}

// OnCacheHit logs a cache hit for a pipeline stage.
func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "stage", keyType)
}

// OnCacheMiss logs a cache miss for a pipeline stage.
func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "stage", keyType)
}

// OnCacheSet logs the size of a stored cache entry.
func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "stage", keyType, "bytes", size)
}

// OnRequest logs an incoming request by route pattern.
func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

// OnResponse logs the response status and latency at info level.
func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
