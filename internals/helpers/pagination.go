package helper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const DefaultPage = 1

type PagingOptions struct {
	DefaultPerPage int
	MaxPerPage     int
}

// ===== Presets =====
var (
	DefaultOpts = PagingOptions{DefaultPerPage: 25, MaxPerPage: 200}
	AdminOpts   = PagingOptions{DefaultPerPage: 50, MaxPerPage: 500}
)

type PagingParams struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string // asc|desc
}

// ParseFiber reads ?page= & ?per_page= (alias ?limit=) plus sorting params and
// normalizes them against the preset.
func ParseFiber(c *fiber.Ctx, defaultSortBy, defaultSortOrder string, opt PagingOptions) PagingParams {
	page := atoiDefault(c.Query("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	perRaw := strings.TrimSpace(firstNonEmpty(c.Query("per_page"), c.Query("limit")))
	per := opt.DefaultPerPage
	if n, err := strconv.Atoi(perRaw); err == nil && n > 0 {
		per = n
	}
	if per > opt.MaxPerPage {
		per = opt.MaxPerPage
	}
	if per < 1 {
		per = opt.DefaultPerPage
	}

	sortBy := strings.TrimSpace(c.Query("sort_by"))
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	order := strings.ToLower(strings.TrimSpace(firstNonEmpty(c.Query("order"), c.Query("sort"))))
	if order != "asc" && order != "desc" {
		order = strings.ToLower(defaultSortOrder)
		if order != "asc" && order != "desc" {
			order = "desc"
		}
	}

	return PagingParams{Page: page, PerPage: per, SortBy: sortBy, SortOrder: order}
}

func (p PagingParams) Limit() int  { return p.PerPage }
func (p PagingParams) Offset() int { return (p.Page - 1) * p.PerPage }

// SafeOrderClause builds an ORDER BY from a column whitelist so sort keys from
// the query string never reach SQL directly.
func (p PagingParams) SafeOrderClause(allowed map[string]string, defaultKey string) (string, error) {
	key := p.SortBy
	if key == "" {
		key = defaultKey
	}
	col, ok := allowed[key]
	if !ok {
		col, ok = allowed[defaultKey]
		if !ok {
			return "", fmt.Errorf("no valid default sort key")
		}
	}
	dir := "DESC"
	if p.SortOrder == "asc" {
		dir = "ASC"
	}
	return col + " " + dir, nil
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
