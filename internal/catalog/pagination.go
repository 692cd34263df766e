package catalog

import (
	"net/url"
	"strconv"
)

// Ellipsis is the token rendered between non-adjacent page numbers.
const Ellipsis = -1

// PageToken is either a 1-based page number or Ellipsis.
type PageToken int

// IsEllipsis reports whether the token is a gap marker rather than a page.
func (t PageToken) IsEllipsis() bool { return t == Ellipsis }

// Int returns the token as a plain page number for template comparisons.
func (t PageToken) Int() int { return int(t) }

// PageTokens produces the compact page-selector sequence for the given
// current page and page count. With seven or fewer pages every number is
// listed; beyond that the sequence is page 1, an optional leading gap, a
// window of one page either side of current clamped to the interior, an
// optional trailing gap, and the last page. current is clamped into
// [1, total] so hand-edited query strings cannot break the selector.
func PageTokens(current, total int) []PageToken {
	if total <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	if total <= 7 {
		tokens := make([]PageToken, total)
		for i := range tokens {
			tokens[i] = PageToken(i + 1)
		}
		return tokens
	}

	tokens := []PageToken{1}
	if current > 3 {
		tokens = append(tokens, Ellipsis)
	}
	lo, hi := current-1, current+1
	if lo < 2 {
		lo = 2
	}
	if hi > total-1 {
		hi = total - 1
	}
	for p := lo; p <= hi; p++ {
		tokens = append(tokens, PageToken(p))
	}
	if current < total-2 {
		tokens = append(tokens, Ellipsis)
	}
	tokens = append(tokens, PageToken(total))

	return dedupe(tokens)
}

// dedupe drops consecutive duplicates, which appear when the window touches
// page 1 or the last page.
func dedupe(tokens []PageToken) []PageToken {
	out := tokens[:0]
	for i, t := range tokens {
		if i > 0 && t == tokens[i-1] {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Page is one page of a larger list plus the metadata the page-selector
// template needs. Templates render no controls when TotalPages <= 1.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
	TotalItems  int
	PerPage     int
	HasPrev     bool
	HasNext     bool

	query url.Values
}

// Tokens returns the page-selector sequence for this page.
func (p Page[T]) Tokens() []PageToken {
	return PageTokens(p.CurrentPage, p.TotalPages)
}

// WithQuery attaches the request's query parameters so page links keep the
// active filter criteria. The page parameter itself is dropped here; PageURL
// sets it per link.
func (p Page[T]) WithQuery(q url.Values) Page[T] {
	kept := make(url.Values, len(q))
	for k, vs := range q {
		if k == "page" {
			continue
		}
		kept[k] = vs
	}
	p.query = kept
	return p
}

// PageURL builds the href for the given page number, preserving any query
// attached with WithQuery.
func (p Page[T]) PageURL(page int) string {
	q := make(url.Values, len(p.query)+1)
	for k, vs := range p.query {
		q[k] = vs
	}
	q.Set("page", strconv.Itoa(page))
	return "?" + q.Encode()
}

// Paginate slices items into the requested page. Out-of-range pages clamp to
// the nearest valid page; a non-positive perPage falls back to 9 (three rows
// of three cards).
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = 9
	}
	total := len(items)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:       items[start:end],
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		PerPage:     perPage,
		HasPrev:     page > 1,
		HasNext:     page < totalPages,
	}
}
