package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/KudcraftsHQ/slidekit/pkg/observability"
)

// maxFetchBytes caps remote asset downloads at 50 MB.
// Fonts run a few hundred KB; source images a few MB. Anything larger is
// a misconfigured reference, not an asset.
const maxFetchBytes = 50 << 20

// FetchBytes performs a GET request and returns the response body.
//
// Transient failures (network errors, 5xx responses) are retried with
// exponential backoff; client errors (4xx) fail immediately. The download
// is capped at 50 MB. If client is nil, http.DefaultClient is used.
//
// No timeout is imposed here; pass a client with a Timeout or a ctx with
// a deadline to bound the fetch.
func FetchBytes(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	host, path := splitURL(rawURL)

	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		observability.HTTP().OnRequest(ctx, http.MethodGet, host, path)
		start := time.Now()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			observability.HTTP().OnError(ctx, http.MethodGet, host, path, err)
			return &RetryableError{Err: err}
		}
		defer resp.Body.Close()

		observability.HTTP().OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

		if resp.StatusCode >= 500 {
			return &RetryableError{Err: fmt.Errorf("GET %s: status %d", rawURL, resp.StatusCode)}
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("GET %s: status %d", rawURL, resp.StatusCode)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes+1))
		if err != nil {
			observability.HTTP().OnError(ctx, http.MethodGet, host, path, err)
			return &RetryableError{Err: err}
		}
		if len(body) > maxFetchBytes {
			return fmt.Errorf("GET %s: response exceeds %d bytes", rawURL, maxFetchBytes)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func splitURL(rawURL string) (host, path string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL, ""
	}
	return u.Host, u.Path
}
