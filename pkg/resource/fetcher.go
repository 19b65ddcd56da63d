package resource

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	stdnet "minibrowse/std/net"
)

// Fetcher retrieves resources by URL.
type Fetcher interface {
	Fetch(u *stdnet.URL) (body []byte, contentType string, err error)
}

// DefaultFetcher fetches http and https URLs over the network and file
// URLs from the local filesystem. Bodies are decoded to UTF-8.
type DefaultFetcher struct {
	client *stdnet.Client
}

func NewFetcher(userAgent string) *DefaultFetcher {
	return &DefaultFetcher{client: stdnet.NewClient(userAgent)}
}

func (f *DefaultFetcher) Fetch(u *stdnet.URL) ([]byte, string, error) {
	if u.IsNetwork() {
		return f.client.Fetch(u)
	}
	if u.Scheme != "file" {
		return nil, "", fmt.Errorf("cannot fetch %s: %w", u, stdnet.ErrUnsupportedScheme)
	}
	raw, err := os.ReadFile(filepath.FromSlash(u.Path))
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", u, err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(u.Path))
	body, err := stdnet.Decode(raw, contentType)
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", u, err)
	}
	return body, contentType, nil
}

// FetchCSS fetches a stylesheet and returns its text. It fails when the
// content type is known and does not look like CSS or text.
func FetchCSS(f Fetcher, u *stdnet.URL) (string, error) {
	body, contentType, err := f.Fetch(u)
	if err != nil {
		return "", err
	}
	ct := strings.ToLower(contentType)
	if ct != "" && !strings.HasPrefix(ct, "text/") && !strings.Contains(ct, "css") {
		return "", fmt.Errorf("unexpected content type for CSS: %s", contentType)
	}
	return string(body), nil
}
