package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "tracklist"

// maxBodySize caps how much of a response body Get reads.
const maxBodySize = 16 << 20

// StatusError is returned for any response other than 200 OK.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (%s)", e.Code, e.Status, e.URL)
}

// Client fetches pages for the importer.
//
// Client provides:
//   - A fixed User-Agent header
//   - Timeout handling
//   - Response size limiting
//
// Example usage:
//
//	client := NewClient()
//	html, err := client.GetString(ctx, "https://artist.bandcamp.com/album/name")
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client with a 60 second timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: DefaultUserAgent,
	}
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK (a *StatusError)
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, Code: resp.StatusCode, Status: resp.Status}
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}

// GetString performs a GET request and returns the response body as a string.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
