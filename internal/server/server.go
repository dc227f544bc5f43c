// Package server exposes the chart pipeline over HTTP.
//
// The dataset is read once when the handler is built; every request derives
// its own window and rendering options from the query string:
//
//	GET /healthz
//	GET /v1/tracks
//	GET /v1/segments?start=2024-01-01&end=2025-01-01&exclude_master=true
//	GET /v1/chart.svg?width=1200&animate=true&theme=dark
//
// Errors are returned as {"error": {"code": "...", "message": "..."}} with
// the status derived from the error code.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/ltschart/pkg/buildinfo"
	"github.com/matzehuels/ltschart/pkg/errors"
	"github.com/matzehuels/ltschart/pkg/observability"
	"github.com/matzehuels/ltschart/pkg/pipeline"
	"github.com/matzehuels/ltschart/pkg/release"
)

// RequestIDHeader carries the per-request identifier.
const RequestIDHeader = "X-Request-ID"

// Config for the HTTP handler.
type Config struct {
	Dataset release.Dataset
	Runner  *pipeline.Runner // nil runs without a cache
	Logger  *log.Logger
	Now     func() time.Time // clock for default windows; nil means time.Now
}

type server struct {
	ds     release.Dataset
	runner *pipeline.Runner
	logger *log.Logger
	now    func() time.Time
}

// New returns an HTTP handler serving the dataset in cfg.
func New(cfg Config) http.Handler {
	s := &server{ds: cfg.Dataset, runner: cfg.Runner, logger: cfg.Logger, now: cfg.Now}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	if s.now == nil {
		s.now = time.Now
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/tracks", s.tracks)
		r.Get("/segments", s.segments)
		r.Get("/chart.{format}", s.chart)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no such route"))
	})
	return r
}

// requestID stamps every response with a fresh request ID unless the caller
// supplied one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		w.Header().Set("Server", buildinfo.UserAgent())
		next.ServeHTTP(w, r)
	})
}

// observe reports requests to the HTTP hooks using the matched route pattern.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}

func (s *server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{Status: "ok", Info: buildinfo.Current()})
}

type trackJSON struct {
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Milestones  map[string]string `json:"milestones"`
}

func (s *server) tracks(w http.ResponseWriter, _ *http.Request) {
	out := make([]trackJSON, 0, s.ds.Len())
	for _, t := range s.ds.Tracks {
		m := t.Milestones
		ms := map[string]string{}
		for key, v := range map[string]time.Time{
			release.KeyUnstableStart:    m.UnstableStart,
			release.KeyActiveStart:      m.ActiveStart,
			release.KeyLTSStart:         m.LTSStart,
			release.KeyMaintenanceStart: m.MaintenanceStart,
			release.KeyEnd:              m.End,
		} {
			if !v.IsZero() {
				ms[key] = release.FormatDate(v)
			}
		}
		out = append(out, trackJSON{Name: t.Name, DisplayName: t.DisplayName(), Milestones: ms})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tracks": out})
}

func (s *server) segments(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := opts.ValidateForSegment(); err != nil {
		writeError(w, err)
		return
	}
	segs, err := s.runner.Segment(r.Context(), s.ds, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"window":   opts.Window(),
		"segments": segs,
	})
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatHTML: "text/html; charset=utf-8",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *server) chart(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), s.ds, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, map[string]errorBody{"error": {Code: code, Message: msg}})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDate, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidWindow, errors.ErrCodeInvalidTrack, errors.ErrCodeMissingMilestone:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeTrackNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
