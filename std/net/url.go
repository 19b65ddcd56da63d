package net

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrNoScheme          = errors.New("missing scheme separator")
	ErrUnsupportedScheme = errors.New("unsupported scheme")
	ErrBadPort           = errors.New("invalid port")
)

var defaultPorts = map[string]int{
	"http":  80,
	"https": 443,
}

// URL is an absolute scheme://host[:port]/path reference. File URLs have
// an empty host and no port.
type URL struct {
	Scheme string
	Host   string
	Port   int
	Path   string
}

// ParseURL splits raw into its parts. Only http, https and file are
// accepted. A missing path becomes "/".
func ParseURL(raw string) (*URL, error) {
	scheme, rest, ok := strings.Cut(strings.TrimSpace(raw), "://")
	if !ok {
		return nil, fmt.Errorf("parsing %q: %w", raw, ErrNoScheme)
	}
	scheme = strings.ToLower(scheme)

	if scheme == "file" {
		path := rest
		if !strings.HasPrefix(path, "/") {
			// file://localhost/x and file://x/ both name a local path
			_, after, found := strings.Cut(path, "/")
			path = "/"
			if found {
				path += after
			}
		}
		return &URL{Scheme: scheme, Path: path}, nil
	}

	port, ok := defaultPorts[scheme]
	if !ok {
		return nil, fmt.Errorf("parsing %q: %w %q", raw, ErrUnsupportedScheme, scheme)
	}
	host, path, found := strings.Cut(rest, "/")
	path = "/" + path
	if !found {
		path = "/"
	}
	if h, p, hasPort := strings.Cut(host, ":"); hasPort {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 || n > 65535 {
			return nil, fmt.Errorf("parsing %q: %w %q", raw, ErrBadPort, p)
		}
		host, port = h, n
	}
	if host == "" {
		return nil, fmt.Errorf("parsing %q: empty host", raw)
	}
	return &URL{Scheme: scheme, Host: strings.ToLower(host), Port: port, Path: path}, nil
}

// NewURL parses raw and falls back to fallback when raw is malformed. The
// fallback itself must parse.
func NewURL(raw, fallback string, logger *zap.Logger) (*URL, error) {
	u, err := ParseURL(raw)
	if err == nil {
		return u, nil
	}
	if logger != nil {
		logger.Warn("malformed URL, using fallback",
			zap.String("url", raw),
			zap.String("fallback", fallback),
			zap.Error(err))
	}
	return ParseURL(fallback)
}

// Resolve returns href interpreted relative to u. It accepts absolute URLs,
// scheme-relative ("//host/x"), host-relative ("/x") and path-relative
// references, where each leading "../" drops one directory.
func (u *URL) Resolve(href string) (*URL, error) {
	href = strings.TrimSpace(href)
	if i := strings.IndexByte(href, '#'); i >= 0 {
		href = href[:i]
	}
	switch {
	case strings.Contains(href, "://"):
		return ParseURL(href)
	case strings.HasPrefix(href, "//"):
		return ParseURL(u.Scheme + ":" + href)
	case href == "":
		c := *u
		return &c, nil
	}

	c := *u
	if strings.HasPrefix(href, "/") {
		c.Path = href
		return &c, nil
	}

	dir := u.Path[:strings.LastIndexByte(u.Path, '/')+1]
	dir = strings.TrimSuffix(dir, "/")
	for {
		if rest, ok := strings.CutPrefix(href, "../"); ok {
			href = rest
			if i := strings.LastIndexByte(dir, '/'); i >= 0 {
				dir = dir[:i]
			}
			continue
		}
		if rest, ok := strings.CutPrefix(href, "./"); ok {
			href = rest
			continue
		}
		break
	}
	c.Path = dir + "/" + href
	return &c, nil
}

// IsNetwork reports whether u is fetched over HTTP.
func (u *URL) IsNetwork() bool {
	_, ok := defaultPorts[u.Scheme]
	return ok
}

// String renders u, leaving out the port when it is the scheme default.
func (u *URL) String() string {
	if u.Scheme == "file" {
		return "file://" + u.Path
	}
	host := u.Host
	if u.Port != defaultPorts[u.Scheme] {
		host += ":" + strconv.Itoa(u.Port)
	}
	return u.Scheme + "://" + host + u.Path
}

// IsNetworkURL returns true if the string looks like an HTTP or HTTPS URL.
func IsNetworkURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
