package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// requestIDHeader matches the header the service echoes back.
const requestIDHeader = "X-Request-ID"

// httpClient wraps http.Client and tags every request with the run id.
type httpClient struct {
	client *http.Client
	base   string
	runID  string
}

func newHTTPClient(base, runID string, timeout time.Duration) *httpClient {
	return &httpClient{
		client: &http.Client{Timeout: timeout},
		base:   strings.TrimRight(base, "/"),
		runID:  runID,
	}
}

// response is a fully read reply.
type response struct {
	status      int
	contentType string
	requestID   string
	body        []byte
}

// get performs a GET request and reads the whole body.
func (c *httpClient) get(ctx context.Context, path string, q url.Values) (*response, error) {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(requestIDHeader, c.runID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &response{
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		requestID:   resp.Header.Get(requestIDHeader),
		body:        body,
	}, nil
}

// baseQuery carries the parameters shared by every data endpoint.
func baseQuery(cfg *Config) url.Values {
	q := url.Values{}
	if cfg.Lang != "" {
		q.Set("lang", cfg.Lang)
	}
	if cfg.Start > 0 {
		q.Set("start", strconv.Itoa(cfg.Start))
	}
	if cfg.End > 0 {
		q.Set("end", strconv.Itoa(cfg.End))
	}
	if len(cfg.Countries) > 0 {
		q.Set("countries", strings.Join(cfg.Countries, ","))
	}
	return q
}
