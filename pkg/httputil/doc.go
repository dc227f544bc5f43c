// Package httputil fetches remote datasets over HTTP.
//
// A dataset may live at a URL rather than on disk, for example the
// schedule file published in a project's repository:
//
//	f := httputil.NewFetcher(cache.NewNullCache())
//	data, err := f.Fetch(ctx, "https://example.org/schedule.json")
//
// [Fetcher] retries transient failures (network errors, 5xx and 429
// responses) with exponential backoff via [Retry], maps 404 to a
// FILE_NOT_FOUND error, and stores successful bodies in a [cache.Cache] so
// repeated runs do not hit the network.
package httputil
