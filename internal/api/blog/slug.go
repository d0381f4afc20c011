package blogs

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	maxSlugLength   = 50
	wordsPerMinute  = 200
	untitledSlug    = "untitled"
	maxSlugAttempts = 10000
)

// Word separators for slugs and read time: ASCII whitespace, \v, U+0085 and every Unicode separator.
const whitespace = `\f\n\r\t\v\x{85}\p{Z}`

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9` + whitespace + `-]`)
	whitespaceRun    = regexp.MustCompile(`[` + whitespace + `]+`)
	slugHyphens      = regexp.MustCompile(`-+`)
)

// Slugify turns a title into a lowercase, hyphen separated identifier of at most 50 characters.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	slug = slugHyphens.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}

	if slug == "" {
		return untitledSlug
	}
	return slug
}

// SlugTaken reports whether a non-deleted blog other than the excluded one already uses slug.
type SlugTaken func(ctx context.Context, slug string) (bool, error)

// GenerateUniqueSlug returns Slugify(title), or the first free "<base>-N" for N = 1, 2, ...
func GenerateUniqueSlug(ctx context.Context, title string, taken SlugTaken) (string, error) {
	base := Slugify(title)

	candidate := base
	for i := 1; i <= maxSlugAttempts; i++ {
		exists, err := taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}

	return "", ErrSlugUnavailable
}

// EstimateReadTime is minutes at 200 words per minute, never less than one.
func EstimateReadTime(content string) int {
	words := 0
	for _, w := range whitespaceRun.Split(content, -1) {
		if w != "" {
			words++
		}
	}
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
