// Package sanitize is the boundary every untrusted string passes through
// before it reaches the directory or a broadcast.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Length caps applied after markup stripping.
const (
	TextLimit     = 2000
	NameLimit     = 50
	TagLimit      = 50
	PasswordLimit = 200
)

var policy = bluemonday.StrictPolicy()

// Clean strips all markup from s and truncates it to max runes.
func Clean(s string, max int) string {
	s = policy.Sanitize(s)
	if runes := []rune(s); len(runes) > max {
		s = string(runes[:max])
	}
	return s
}

// CleanTags splits a comma-separated tag string, sanitizes and trims each
// tag, and drops empties.
func CleanTags(csv string) []string {
	tags := make([]string, 0)
	for _, t := range strings.Split(csv, ",") {
		t = Clean(strings.TrimSpace(t), TagLimit)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
