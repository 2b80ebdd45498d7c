package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "ardalis-cli"

// transport is what fetchers share: one HTTP client and one User-Agent.
type transport struct {
	client    *http.Client
	userAgent string
}

func newTransport(client *http.Client, userAgent string) transport {
	if client == nil {
		client = &http.Client{}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return transport{client: client, userAgent: userAgent}
}

// get issues a GET and returns the body of a 200 response. The caller closes it.
func (t transport) get(ctx context.Context, rawURL string, header http.Header) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &StatusError{URL: rawURL, Code: resp.StatusCode}
	}
	return resp.Body, nil
}

// getJSON decodes a 200 JSON response into v.
func (t transport) getJSON(ctx context.Context, rawURL string, header http.Header, v any) error {
	body, err := t.get(ctx, rawURL, header)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}

// withTimeout bounds ctx by d when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
