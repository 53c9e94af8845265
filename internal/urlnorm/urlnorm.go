// Package urlnorm implements the URL normalization and domain-extraction
// rules that the crawler and frontier depend on: fragment stripping,
// lowercasing, and bare-host trailing-slash removal.
package urlnorm

import (
	"fmt"
	"strings"

	whatwgurl "github.com/nlnwa/whatwg-url/url"
)

// MaxURLLength is the maximum number of bytes a URL may occupy anywhere
// in the system (frontier dedup set, extracted links, CLI seed).
const MaxURLLength = 10000

var parser = whatwgurl.NewParser()

// Valid reports whether raw looks like an http(s) URL within the size bound.
// It does not normalize; callers should call Normalize first when the
// resulting string will be compared or stored.
func Valid(raw string) bool {
	if raw == "" || len(raw) > MaxURLLength {
		return false
	}
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}

// Normalize strips the fragment, lowercases the URL, and removes a
// trailing slash immediately following a bare host. It returns an error
// if raw cannot be parsed as an absolute URL.
func Normalize(raw string) (string, error) {
	u, err := parser.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("urlnorm: parse %q: %w", raw, err)
	}
	u.SetHash("")

	normalized := strings.ToLower(u.Href(true))
	normalized = stripBareHostTrailingSlash(normalized)
	return normalized, nil
}

// Resolve resolves ref against base (which must already be an absolute
// URL) and returns the normalized absolute result.
func Resolve(base, ref string) (string, error) {
	u, err := parser.ParseRef(base, ref)
	if err != nil {
		return "", fmt.Errorf("urlnorm: resolve %q against %q: %w", ref, base, err)
	}
	u.SetHash("")

	normalized := strings.ToLower(u.Href(true))
	return stripBareHostTrailingSlash(normalized), nil
}

// stripBareHostTrailingSlash removes a single trailing slash that
// immediately follows the host, e.g. "http://example.com/" ->
// "http://example.com". Paths with more than a bare "/" are untouched.
func stripBareHostTrailingSlash(u string) string {
	schemeEnd := strings.Index(u, "://")
	if schemeEnd < 0 {
		return u
	}
	hostStart := schemeEnd + len("://")
	rest := u[hostStart:]

	slashIdx := strings.IndexByte(rest, '/')
	if slashIdx < 0 {
		return u
	}
	// bare host + single trailing slash with nothing after it
	if slashIdx == len(rest)-1 {
		return u[:hostStart+slashIdx]
	}
	return u
}

// Domain returns the host portion of raw with any leading "www." removed
// and the result lowercased. Returns an error if raw cannot be parsed.
func Domain(raw string) (string, error) {
	u, err := parser.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("urlnorm: parse %q: %w", raw, err)
	}
	return domainFromHost(u.Hostname()), nil
}

func domainFromHost(host string) string {
	host = strings.ToLower(host)
	return strings.TrimPrefix(host, "www.")
}
