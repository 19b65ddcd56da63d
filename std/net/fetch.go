package net

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

const DefaultUserAgent = "minibrowse/1.0 (compatible; Go)"

// Client fetches network URLs.
type Client struct {
	UserAgent string
	HTTP      *http.Client
}

func NewClient(userAgent string) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		UserAgent: userAgent,
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch retrieves an http or https URL and returns the body decoded to
// UTF-8 along with the response content type.
func (c *Client) Fetch(u *URL) (body []byte, contentType string, err error) {
	if !u.IsNetwork() {
		return nil, "", fmt.Errorf("fetching %s: %w %q", u, ErrUnsupportedScheme, u.Scheme)
	}
	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, u)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading response body: %w", err)
	}
	contentType = resp.Header.Get("Content-Type")
	body, err = Decode(raw, contentType)
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", u, err)
	}
	return body, contentType, nil
}

// Decode converts raw document bytes to UTF-8, using the charset from the
// content type, a byte order mark, or a <meta> declaration.
func Decode(raw []byte, contentType string) ([]byte, error) {
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
