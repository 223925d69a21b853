package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	mimeJSON          = "application/json"
	headerContentType = "Content-Type"

	defaultTimeout = 30 * time.Second
)

// errUnsupportedEndpoint marks a 404 from the vendor: the installed API
// surface does not expose this call shape. Clients use it to fall back to
// their legacy endpoint before giving up.
var errUnsupportedEndpoint = errors.New("endpoint not supported by backend")

// newHTTPClient returns an http.Client bounded by timeoutSeconds
// (defaultTimeout when zero). No retries, no backoff: a failed vendor call
// is terminal for that request.
func newHTTPClient(timeoutSeconds int) *http.Client {
	timeout := time.Duration(timeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// postJSON sends payload to url and decodes the response body into a
// generic JSON value for the extraction strategies to probe. A 404 maps to
// errUnsupportedEndpoint; any other non-2xx status becomes an error
// carrying the body text.
func postJSON(ctx context.Context, hc *http.Client, url string, headers map[string]string, payload any) (any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(headerContentType, mimeJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil, errUnsupportedEndpoint
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var decoded any
	if decodeErr := json.NewDecoder(resp.Body).Decode(&decoded); decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	return decoded, nil
}

// getStatus issues a GET and reports non-2xx statuses as errors; used by
// provider health checks.
func getStatus(ctx context.Context, hc *http.Client, url string, headers map[string]string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
