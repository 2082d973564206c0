package emailtemplate

import (
	"net/url"
	"strings"
)

// AssetResolver turns a stored asset path such as a logo into a public URL.
type AssetResolver interface {
	AssetURL(path string) string
}

// BaseURLAssets resolves asset paths relative to a base URL.
type BaseURLAssets string

// AssetURL implements AssetResolver.
func (b BaseURLAssets) AssetURL(path string) string {
	if path == "" || isURL(path) {
		return path
	}
	base := strings.TrimRight(string(b), "/")
	if base == "" {
		return path
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

// isURL reports whether s is an absolute http(s) URL with a host.
func isURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
