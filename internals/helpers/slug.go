package helper

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Slugify turns free text into an [a-z0-9-] slug: strips diacritics,
// compresses "-", trims the ends, enforces maxLen (default 100 when <=0),
// falls back to "item".
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = strings.ToLower(strings.TrimSpace(s))

	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) { // nonspacing marks (diacritics)
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		s = "item"
	}
	if utf8.RuneCountInString(s) > maxLen {
		rs := []rune(s)
		s = strings.Trim(string(rs[:maxLen]), "-")
	}
	if s == "" {
		s = "item"
	}
	return s
}

// EnsureUniqueSlugCI guarantees a case-insensitive unique slug in one
// table/column. scopeFn may be nil; when set it narrows the check (e.g. per
// tenant). maxLen bounds the total length while "-2", "-3", ... suffixes are
// tried; after 25 collisions a short time-based suffix is used.
func EnsureUniqueSlugCI(
	ctx context.Context,
	db *gorm.DB,
	table string,
	column string,
	baseSlug string,
	scopeFn func(*gorm.DB) *gorm.DB,
	maxLen int,
) (string, error) {
	if maxLen <= 0 {
		maxLen = 100
	}
	slug := baseSlug
	lower := strings.ToLower(slug)

	for i := 0; i < 25; i++ {
		q := db.WithContext(ctx).Table(table)
		if scopeFn != nil {
			q = scopeFn(q)
		}

		var count int64
		if err := q.Where(fmt.Sprintf("LOWER(%s) = ?", column), lower).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}

		suffix := fmt.Sprintf("-%d", i+2)
		slug = trimForSuffix(baseSlug, suffix, maxLen) + suffix
		lower = strings.ToLower(slug)
	}

	r := fmt.Sprintf("-%x", (time.Now().UnixNano() & 0xffff))
	return trimForSuffix(baseSlug, r, maxLen) + r, nil
}

func trimForSuffix(base, suffix string, maxLen int) string {
	if maxLen <= 0 {
		return base
	}
	need := len(suffix)
	if need >= maxLen {
		return "x"
	}
	rs := []rune(base)
	keep := maxLen - need
	if keep < 1 {
		keep = 1
	}
	if len(rs) > keep {
		rs = rs[:keep]
	}
	out := strings.Trim(string(rs), "-")
	if out == "" {
		out = "x"
	}
	return out
}
