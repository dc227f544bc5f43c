package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/ltschart/pkg/buildinfo"
	"github.com/matzehuels/ltschart/pkg/cache"
	"github.com/matzehuels/ltschart/pkg/errors"
)

// Defaults for [NewFetcher].
const (
	DefaultTimeout  = 10 * time.Second
	DefaultTTL      = time.Hour
	DefaultAttempts = 3
	DefaultDelay    = time.Second

	// maxBodySize bounds a fetched dataset.
	maxBodySize = 10 << 20
)

// Fetcher downloads dataset files with retries and caching.
type Fetcher struct {
	Client   *http.Client
	Cache    cache.Cache
	TTL      time.Duration
	Attempts int
	Delay    time.Duration
}

// NewFetcher returns a Fetcher with default timeout, retry and TTL
// settings. A nil cache disables caching.
func NewFetcher(c cache.Cache) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Fetcher{
		Client:   &http.Client{Timeout: DefaultTimeout},
		Cache:    c,
		TTL:      DefaultTTL,
		Attempts: DefaultAttempts,
		Delay:    DefaultDelay,
	}
}

// IsURL reports whether s names an http or https resource rather than a
// local path.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch returns the body at rawURL, from the cache when a fresh copy is
// stored.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if !IsURL(rawURL) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "not an http(s) URL: %q", rawURL)
	}
	key := "fetch:" + rawURL
	if data, ok, err := f.Cache.Get(ctx, key); err == nil && ok {
		return data, nil
	}

	var body []byte
	err := Retry(ctx, f.Attempts, f.Delay, func() error {
		var err error
		body, err = f.get(ctx, rawURL)
		return err
	})
	if err != nil {
		return nil, err
	}
	_ = f.Cache.Set(ctx, key, body, f.TTL)
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := f.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: fmt.Errorf("fetch %s: %w", rawURL, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(rawURL, resp.StatusCode); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("read %s: %w", rawURL, err)}
	}
	if len(data) > maxBodySize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: dataset larger than %d bytes", rawURL, maxBodySize)
	}
	return data, nil
}

func checkStatus(rawURL string, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeFileNotFound, "dataset %s not found", rawURL)
	case code >= 500 || code == http.StatusTooManyRequests:
		return &RetryableError{Err: fmt.Errorf("fetch %s: status %d", rawURL, code)}
	default:
		return fmt.Errorf("fetch %s: status %d", rawURL, code)
	}
}

// Path returns the path component of rawURL, for choosing a decoder by
// extension.
func Path(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return strings.TrimSuffix(u.Path, "/")
}
