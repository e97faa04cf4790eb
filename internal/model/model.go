// Package model defines the blog, comment and user records exchanged with
// the remote content API. Decoding a record normalizes it: ids are taken from
// "_id" or "id" and missing optional fields receive their defaults, so the
// rest of the application never repeats fallbacks.
package model

import (
	"strings"
	"time"
)

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseTime accepts RFC 3339 timestamps and plain dates; anything else is zero.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// cleanList trims every entry and drops empty ones. It never returns nil.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
