package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/ltschart/pkg/cache"
	"github.com/matzehuels/ltschart/pkg/errors"
)

func testFetcher(t *testing.T) *Fetcher {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	f := NewFetcher(fc)
	f.Delay = time.Millisecond
	return f
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.org/lts.json", true},
		{"http://localhost:8080/data.yaml", true},
		{"lts.json", false},
		{"/etc/lts.json", false},
		{"file:///tmp/lts.json", false},
		{"https://", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.in); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFetchCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "ltschart/") {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte(`{"v1": {}}`))
	}))
	defer srv.Close()

	f := testFetcher(t)
	for range 2 {
		data, err := f.Fetch(context.Background(), srv.URL+"/lts.json")
		if err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
		if string(data) != `{"v1": {}}` {
			t.Errorf("body = %q", data)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d, want 1 (second fetch cached)", hits.Load())
	}
}

func TestFetchRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	data, err := testFetcher(t).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(data) != "ok" || hits.Load() != 3 {
		t.Errorf("body %q after %d hits", data, hits.Load())
	}
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantHits int32
		code     errors.Code
	}{
		{"not found", http.StatusNotFound, 1, errors.ErrCodeFileNotFound},
		{"client error", http.StatusForbidden, 1, ""},
		{"server error exhausts retries", http.StatusBadGateway, DefaultAttempts, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := testFetcher(t).Fetch(context.Background(), srv.URL)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.code != "" && !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
			if hits.Load() != tt.wantHits {
				t.Errorf("hits = %d, want %d", hits.Load(), tt.wantHits)
			}
		})
	}

	if _, err := testFetcher(t).Fetch(context.Background(), "lts.json"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("local path: err = %v", err)
	}
}

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, 5, time.Hour, func() error {
		calls++
		cancel()
		return &RetryableError{Err: context.DeadlineExceeded}
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestPath(t *testing.T) {
	if got := Path("https://example.org/data/lts.yaml?ref=main"); got != "/data/lts.yaml" {
		t.Errorf("Path() = %q", got)
	}
}
