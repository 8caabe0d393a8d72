package enka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// --- Error kinds ---

// Each non-200 status the API documents maps to exactly one of these.
var (
	ErrMalformedUID     = errors.New("wrong UID format")
	ErrPlayerNotFound   = errors.New("player does not exist (MiHoYo server said that)")
	ErrMaintenance      = errors.New("game maintenance")
	ErrRateLimited      = errors.New("too many requests")
	ErrUpstreamInternal = errors.New("general server error")
	ErrFetchFailed      = errors.New("failed to fetch data")
	ErrResponseMismatch = errors.New("response does not match the requested UID")
)

var statusKinds = map[int]error{
	http.StatusBadRequest:          ErrMalformedUID,
	http.StatusNotFound:            ErrPlayerNotFound,
	http.StatusFailedDependency:    ErrMaintenance,
	http.StatusTooManyRequests:     ErrRateLimited,
	http.StatusInternalServerError: ErrUpstreamInternal,
}

// StatusError is returned for any non-200 response. It unwraps to its Kind.
type StatusError struct {
	StatusCode int
	Kind       error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v (HTTP %d)", e.Kind, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return e.Kind }

// KindForStatus maps an HTTP status to its error kind, nil for 200.
func KindForStatus(code int) error {
	if code == http.StatusOK {
		return nil
	}
	if kind, ok := statusKinds[code]; ok {
		return kind
	}
	return ErrFetchFailed
}

// --- Fetcher ---

// Fetcher retrieves a player's public profile.
type Fetcher interface {
	FetchProfile(ctx context.Context, uid string) (*Response, error)
}

// Client implements Fetcher against the Enka.Network HTTP API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a client for baseURL (e.g. https://enka.network/api/uid).
// A nil httpClient gets a plain client with library default timeouts.
func NewClient(baseURL, userAgent string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// ProfileURL is the endpoint for uid.
func (c *Client) ProfileURL(uid string) string {
	return c.baseURL + "/" + url.PathEscape(uid) + "/"
}

// FetchProfile performs one GET for uid. A 200 response is only accepted when
// it echoes uid and carries playerInfo. Nothing is retried.
func (c *Client) FetchProfile(ctx context.Context, uid string) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ProfileURL(uid), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(httpResp.Body)

	if kind := KindForStatus(httpResp.StatusCode); kind != nil {
		return nil, &StatusError{StatusCode: httpResp.StatusCode, Kind: kind}
	}

	respBodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respBodyBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrResponseMismatch, err)
	}
	if resp.UID != uid || !resp.HasPlayerInfo() {
		return nil, ErrResponseMismatch
	}
	return &resp, nil
}
