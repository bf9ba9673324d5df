// Package domain holds the value types shared across the checker: normalized
// domain names and helpers to parse the configured domain list.
package domain

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

// ListSeparator separates entries in a configured domain list. A normalized
// name never contains it.
const ListSeparator = ","

// Normalize turns user or configuration input into an ASCII domain name
// suitable for registry lookups: trims whitespace, lower-cases, strips a
// trailing dot, converts IDN labels via IDNA and validates the result.
func Normalize(input string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return "", fmt.Errorf("empty domain")
	}

	ascii, err := idna.Lookup.ToASCII(s)
	if err != nil {
		return "", fmt.Errorf("idna: %w", err)
	}

	// Single-label names are not registrable domains.
	if !strings.Contains(ascii, ".") {
		return "", fmt.Errorf("domain must contain a dot: %q", input)
	}

	if !validASCII(ascii) {
		return "", fmt.Errorf("invalid domain: %q", input)
	}

	return ascii, nil
}

// ParseList splits a comma-separated domain list into an ordered slice,
// trimming and lower-casing each entry and dropping empty ones. Entries are
// not validated here; the resolver rejects malformed names per lookup so one
// bad entry cannot poison the whole list.
func ParseList(raw string) []string {
	parts := strings.Split(raw, ListSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}

	return out
}

// validASCII is a small, pragmatic validation for registrable names.
func validASCII(s string) bool {
	if len(s) < 1 || len(s) > 253 {
		return false
	}
	labels := strings.Split(s, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if len(label) < 1 || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' {
				continue
			}

			return false
		}
	}

	return true
}
