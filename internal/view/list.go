// Package view holds the state a page keeps over data fetched from the API:
// the fetched rows, a filtered copy for the search box, and paging.
package view

import "strings"

// List keeps the rows of one page and the subset matching the current search.
// Filtering never touches the fetched rows.
type List[T any] struct {
	items    []T
	filtered []T
	query    string
	fields   func(T) []string
}

// NewList builds a list searched over the strings fields returns for each row.
func NewList[T any](items []T, fields func(T) []string) *List[T] {
	l := &List[T]{fields: fields}
	l.Replace(items)
	return l
}

// Replace swaps in a fresh fetch and reapplies the current search.
func (l *List[T]) Replace(items []T) {
	l.items = append([]T(nil), items...)
	l.apply()
}

func (l *List[T]) SetQuery(q string) {
	l.query = strings.TrimSpace(q)
	l.apply()
}

func (l *List[T]) Query() string { return l.query }

// All returns the fetched rows.
func (l *List[T]) All() []T { return l.items }

// Visible returns the rows matching the search.
func (l *List[T]) Visible() []T { return l.filtered }

func (l *List[T]) apply() {
	if l.query == "" || l.fields == nil {
		l.filtered = l.items
		return
	}
	needle := strings.ToLower(l.query)
	out := make([]T, 0, len(l.items))
	for _, it := range l.items {
		for _, f := range l.fields(it) {
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, it)
				break
			}
		}
	}
	l.filtered = out
}

// Pager walks a row count in pages of Size rows.
type Pager struct {
	Size    int
	current int
	total   int
}

const DefaultPageSize = 10

func NewPager(size int) *Pager {
	if size < 1 {
		size = DefaultPageSize
	}
	return &Pager{Size: size}
}

// SetTotal updates the row count and clamps the current page when rows went away.
func (p *Pager) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	if last := p.Pages() - 1; p.current > last {
		p.current = last
	}
}

// Pages is never less than one, so an empty table still shows page 1.
func (p *Pager) Pages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.Size - 1) / p.Size
}

// Current is zero-based.
func (p *Pager) Current() int { return p.current }

func (p *Pager) HasNext() bool { return p.current < p.Pages()-1 }
func (p *Pager) HasPrev() bool { return p.current > 0 }

func (p *Pager) Next() {
	if p.HasNext() {
		p.current++
	}
}

func (p *Pager) Prev() {
	if p.HasPrev() {
		p.current--
	}
}

// Bounds returns the half-open row range of the current page.
func (p *Pager) Bounds() (int, int) {
	start := p.current * p.Size
	end := start + p.Size
	if end > p.total {
		end = p.total
	}
	return start, end
}

// Page slices rows to the current page, updating the row count first.
func Page[T any](p *Pager, rows []T) []T {
	p.SetTotal(len(rows))
	start, end := p.Bounds()
	return rows[start:end]
}
