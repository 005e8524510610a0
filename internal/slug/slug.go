// Package slug derives URL-safe identifiers for content from free text.
package slug

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	apperr "desaweb/internal/errors"
)

var (
	// RE2 \s is ASCII only; NBSP and the other Unicode separators count too.
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{85}\x{FEFF}]+`)
	disallowed    = regexp.MustCompile(`[^a-z0-9-]`)
)

// ExistsFunc reports whether candidate is already taken by a persisted entity.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Slugify lower-cases text, turns each run of whitespace into a single
// hyphen, and drops every character outside [a-z0-9-].
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = whitespaceRun.ReplaceAllString(s, "-")
	return disallowed.ReplaceAllString(s, "")
}

// GenerateUnique returns Slugify(text) if exists reports it free, otherwise
// the first free candidate among base-2, base-3, ... tried in order.
//
// The check and the later insert are not atomic: two concurrent creations of
// the same title can both observe a candidate as free. Callers that persist
// into a table with a unique index should retry on a duplicate-key error.
func GenerateUnique(ctx context.Context, text string, exists ExistsFunc) (string, error) {
	base := Slugify(text)
	if strings.Trim(base, "-") == "" {
		return "", apperr.ErrEmptySlug
	}

	candidate := base
	for n := 2; ; n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
}
