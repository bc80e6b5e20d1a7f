package core

import (
	"fmt"
	"strings"
)

// NormalizeDomain lowercases a raw user-supplied domain and strips scheme,
// path, port, and trailing dot, then checks hostname syntax. Returns
// ErrInvalidDomain (wrapped) for anything that is not a plausible
// registrable hostname.
func NormalizeDomain(raw string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(raw))

	if _, rest, found := strings.Cut(d, "://"); found {
		d = rest
	}
	if host, _, found := strings.Cut(d, "/"); found {
		d = host
	}
	if host, _, found := strings.Cut(d, ":"); found {
		d = host
	}
	d = strings.TrimSuffix(d, ".")

	if d == "" {
		return "", fmt.Errorf("%w: empty domain", ErrInvalidDomain)
	}
	if strings.Contains(d, "*") {
		return "", fmt.Errorf("%w: wildcard domains are not supported", ErrInvalidDomain)
	}
	if !isValidHostname(d) {
		return "", fmt.Errorf("%w: %q is not a valid hostname", ErrInvalidDomain, d)
	}
	if !strings.Contains(d, ".") {
		return "", fmt.Errorf("%w: %q has no top-level domain", ErrInvalidDomain, d)
	}
	return d, nil
}

// isValidHostname checks DNS hostname syntax: dot-separated labels, each
// 1-63 chars, alphanumeric plus hyphens, no leading/trailing hyphen,
// 253 chars total.
func isValidHostname(s string) bool {
	if s == "" || len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if !isValidLabel(label) {
			return false
		}
	}
	return true
}

func isValidLabel(label string) bool {
	n := len(label)
	if n == 0 || n > 63 {
		return false
	}
	if label[0] == '-' || label[n-1] == '-' {
		return false
	}
	for _, c := range label {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-') {
			return false
		}
	}
	return true
}
