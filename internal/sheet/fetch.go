// Package sheet downloads the published inventory spreadsheet and parses its
// CSV export.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrUpstreamUnavailable = errors.New("inventory sheet unavailable")

const (
	DefaultTimeout  = 10 * time.Second
	DefaultMaxBytes = 8 << 20
)

// Fetcher retrieves the raw CSV text of a published sheet.
type Fetcher struct {
	url      string
	client   *http.Client
	maxBytes int64
}

func NewFetcher(url string, timeout time.Duration, maxBytes int64) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Fetcher{
		url:      url,
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Fetch issues a single uncached GET. Every failure wraps ErrUpstreamUnavailable.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "text/csv")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUpstreamUnavailable, err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrUpstreamUnavailable, f.maxBytes)
	}
	return body, nil
}
