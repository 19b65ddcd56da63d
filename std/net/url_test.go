package net

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		raw  string
		want URL
	}{
		{"http://example.org/index.html", URL{"http", "example.org", 80, "/index.html"}},
		{"https://example.org", URL{"https", "example.org", 443, "/"}},
		{"https://Example.org:8443/a/b", URL{"https", "example.org", 8443, "/a/b"}},
		{"HTTP://x.org/", URL{"http", "x.org", 80, "/"}},
		{"file:///tmp/page.html", URL{Scheme: "file", Path: "/tmp/page.html"}},
		{"file://localhost/tmp/page.html", URL{Scheme: "file", Path: "/tmp/page.html"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			u, err := ParseURL(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *u)
		})
	}
}

func TestParseURL_Malformed(t *testing.T) {
	_, err := ParseURL("example.org")
	assert.ErrorIs(t, err, ErrNoScheme)

	_, err = ParseURL("ftp://example.org/")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	_, err = ParseURL("http://example.org:http/")
	assert.ErrorIs(t, err, ErrBadPort)

	_, err = ParseURL("http:///path")
	assert.Error(t, err)
}

func TestNewURL_Fallback(t *testing.T) {
	log := zaptest.NewLogger(t)

	u, err := NewURL("http://ok.org/x", "https://browser.engineering/", log)
	require.NoError(t, err)
	assert.Equal(t, "http://ok.org/x", u.String())

	u, err = NewURL("not a url", "https://browser.engineering/", log)
	require.NoError(t, err)
	assert.Equal(t, "https://browser.engineering/", u.String())

	_, err = NewURL("bad", "also bad", nil)
	assert.Error(t, err)
}

func TestURLString(t *testing.T) {
	for _, raw := range []string{
		"http://example.org/",
		"https://example.org:8443/a",
		"http://example.org:443/",
		"file:///tmp/x.html",
	} {
		u, err := ParseURL(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, u.String())
	}
}

func TestResolve(t *testing.T) {
	base, err := ParseURL("https://example.org:8443/docs/guide/page.html")
	require.NoError(t, err)

	tests := []struct {
		href, want string
	}{
		{"http://other.org/x.css", "http://other.org/x.css"},
		{"//cdn.org/s.css", "https://cdn.org/s.css"},
		{"/root.css", "https://example.org:8443/root.css"},
		{"style.css", "https://example.org:8443/docs/guide/style.css"},
		{"./style.css", "https://example.org:8443/docs/guide/style.css"},
		{"../style.css", "https://example.org:8443/docs/style.css"},
		{"../../../../style.css", "https://example.org:8443/style.css"},
		{"sub/a.css#frag", "https://example.org:8443/docs/guide/sub/a.css"},
		{"", "https://example.org:8443/docs/guide/page.html"},
	}
	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			u, err := base.Resolve(tt.href)
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.String())
		})
	}
}

func TestResolve_File(t *testing.T) {
	base, err := ParseURL("file:///srv/site/index.html")
	require.NoError(t, err)
	u, err := base.Resolve("css/main.css")
	require.NoError(t, err)
	assert.Equal(t, "file:///srv/site/css/main.css", u.String())
}

func TestIsNetworkURL(t *testing.T) {
	assert.True(t, IsNetworkURL("https://x.org"))
	assert.True(t, IsNetworkURL("http://x.org"))
	assert.False(t, IsNetworkURL("file:///x"))
	assert.False(t, IsNetworkURL("x.css"))
}
