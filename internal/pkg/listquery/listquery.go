// Package listquery parses the optional search, sort and paging parameters
// accepted by every list endpoint and turns them into gorm scopes.
package listquery

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

var ErrInvalid = errors.New("invalid list query")

// Query is the parsed form of ?q=&page=&limit=&sort=.
type Query struct {
	Search string
	Page   int
	Limit  int
	// Paged is false when the caller asked for the whole table.
	Paged bool

	sortColumn string
	sortDesc   bool
}

// Parse reads the list parameters. sortable maps public field names to SQL columns.
func Parse(v url.Values, sortable map[string]string) (Query, error) {
	q := Query{Search: strings.TrimSpace(v.Get("q"))}

	pageStr := strings.TrimSpace(v.Get("page"))
	limitStr := strings.TrimSpace(v.Get("limit"))
	if pageStr != "" || limitStr != "" {
		q.Paged = true
		q.Page = 1
		q.Limit = DefaultLimit
		if pageStr != "" {
			p, err := strconv.Atoi(pageStr)
			if err != nil || p < 1 {
				return Query{}, fmt.Errorf("%w: page must be a positive integer", ErrInvalid)
			}
			q.Page = p
		}
		if limitStr != "" {
			l, err := strconv.Atoi(limitStr)
			if err != nil || l < 1 {
				return Query{}, fmt.Errorf("%w: limit must be a positive integer", ErrInvalid)
			}
			if l > MaxLimit {
				l = MaxLimit
			}
			q.Limit = l
		}
	}

	if s := strings.TrimSpace(v.Get("sort")); s != "" {
		desc := strings.HasPrefix(s, "-")
		field := strings.TrimPrefix(s, "-")
		col, ok := sortable[field]
		if !ok {
			return Query{}, fmt.Errorf("%w: cannot sort by %q", ErrInvalid, field)
		}
		q.sortColumn = col
		q.sortDesc = desc
	}

	return q, nil
}

// Offset of the first row of the requested page.
func (q Query) Offset() int {
	if !q.Paged {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// TotalPages for a result of total rows.
func (q Query) TotalPages(total int64) int {
	if !q.Paged || q.Limit == 0 {
		return 1
	}
	pages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	if pages == 0 {
		pages = 1
	}
	return pages
}

// Match restricts rows to those where any of columns contains the search text,
// ignoring case.
func (q Query) Match(columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Search == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + escapeLike(strings.ToLower(q.Search)) + "%"
		parts := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, col := range columns {
			parts = append(parts, fmt.Sprintf(`LOWER(COALESCE(%s, '')) LIKE ? ESCAPE '\'`, col))
			args = append(args, pattern)
		}
		return db.Where("("+strings.Join(parts, " OR ")+")", args...)
	}
}

// Order sorts by the requested column, then by fallback for a stable order.
func (q Query) Order(fallback string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.sortColumn != "" {
			dir := "ASC"
			if q.sortDesc {
				dir = "DESC"
			}
			db = db.Order(q.sortColumn + " " + dir)
		}
		return db.Order(fallback)
	}
}

func (q Query) Paginate() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !q.Paged {
			return db
		}
		return db.Limit(q.Limit).Offset(q.Offset())
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
