// Package fetch implements the crawler's HTTP transport contract: fetch
// a URL and return its body on 2xx, or nothing otherwise.
package fetch

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"time"
)

// Timeout is the fixed total request timeout enforced by the fetcher.
const Timeout = 10 * time.Second

// UserAgent identifies the crawler with a browser-like string, matching
// sites that reject unrecognized or empty user agents.
const UserAgent = "Mozilla/5.0 (compatible; PageRankCrawler/1.0; +https://example.invalid/bot)"

// MaxBodyBytes bounds how much of a response body is read, in line with
// the extractor's oversize-body safety limit.
const MaxBodyBytes = 100 * 1024 * 1024

// Fetcher downloads page bodies over HTTP(S). It follows redirects,
// ignores certificate errors, and enforces a fixed total timeout.
type Fetcher struct {
	client *http.Client
}

// New returns a Fetcher configured per the crawler's fetch contract.
func New() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: Timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // crawler ignores certificate errors by contract
			},
		},
	}
}

// Fetch downloads url and returns its body. A fetch is successful iff
// the transport call succeeds and the status is in [200, 300); on any
// other outcome, Fetch returns a nil body and ok=false — the caller
// treats this as "drop silently", not as an error to propagate.
func (f *Fetcher) Fetch(ctx context.Context, url string) (body []byte, ok bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false
	}

	limited := io.LimitReader(resp.Body, MaxBodyBytes)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, false
	}

	return b, true
}
