// Package weburl classifies and normalises image URLs for the editor. The
// site root is always an explicit parameter so callers never depend on
// process-wide configuration.
package weburl

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	errEmptyURL  = errors.New("url cannot be empty")
	errEmptyRoot = errors.New("root url cannot be empty")
)

// allowed schemes for image sources. Inline data URLs are rejected;
// pasted images go through the upload flow instead.
var allowedSchemes = map[string]struct{}{
	"http":  {},
	"https": {},
}

// Normalize resolves the raw URL against the site root and validates its
// scheme. Root-relative references such as /uploads/cat.png become
// absolute using the root. The returned URL is always absolute.
func Normalize(raw, rootURL string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errEmptyURL
	}

	root, err := parseRoot(rootURL)
	if err != nil {
		return "", err
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", raw, err)
	}

	resolved := root.ResolveReference(parsed)
	if _, ok := allowedSchemes[strings.ToLower(resolved.Scheme)]; !ok {
		return "", fmt.Errorf("unsupported url scheme %q", resolved.Scheme)
	}

	return resolved.String(), nil
}

// IsLocal reports whether the URL points at the site identified by
// rootURL. Relative references are local by definition.
func IsLocal(raw, rootURL string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}

	root, err := parseRoot(rootURL)
	if err != nil {
		return false
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return false
	}

	if parsed.Host == "" && parsed.Scheme == "" {
		return true
	}

	return strings.EqualFold(parsed.Host, root.Host) &&
		(parsed.Scheme == "" || strings.EqualFold(parsed.Scheme, root.Scheme))
}

// RelativeToRoot strips the root prefix from a local URL, yielding the
// path served by the backend (e.g. /uploads/cat.png). External URLs are
// returned unchanged.
func RelativeToRoot(raw, rootURL string) string {
	if !IsLocal(raw, rootURL) {
		return raw
	}

	root, err := parseRoot(rootURL)
	if err != nil {
		return raw
	}

	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}

	path := parsed.Path
	if rootPath := strings.TrimSuffix(root.Path, "/"); rootPath != "" {
		path = strings.TrimPrefix(path, rootPath)
	}
	if path == "" {
		path = "/"
	}
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}
	return path
}

func parseRoot(rootURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rootURL)
	if trimmed == "" {
		return nil, errEmptyRoot
	}

	root, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid root url %q: %w", rootURL, err)
	}
	if root.Host == "" || root.Scheme == "" {
		return nil, fmt.Errorf("root url %q must be absolute", rootURL)
	}
	return root, nil
}
