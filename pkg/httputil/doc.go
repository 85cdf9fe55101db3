// Package httputil provides HTTP utilities for remote asset fetching.
//
// # Overview
//
// This package provides the infrastructure shared by the font service and
// the image loader:
//
//   - [Cache]: File-based response caching with TTL
//   - [Retry]: Automatic retry with exponential backoff
//   - [FetchBytes]: GET a URL with retry and observability hooks
//
// # Caching
//
// [Cache] stores fetched bytes in the filesystem (~/.cache/slidekit/) with
// a configurable TTL based on file modification time. Remote images reuse
// cached bytes across renders; font assets use the richer pkg/cache tier
// instead.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	images := cache.Namespace("img:")
//	var data []byte
//	ok, err := images.Get(url, &data)
//	if !ok {
//	    data, err = httputil.FetchBytes(ctx, nil, url)
//	    _ = images.Set(url, data)
//	}
//
// # Retry
//
// [Retry] re-attempts operations that fail with a [RetryableError]
// (network errors, 5xx responses) using exponential backoff. Client
// errors (404 and friends) are returned immediately: a missing font or
// image will not become present by retrying.
package httputil
