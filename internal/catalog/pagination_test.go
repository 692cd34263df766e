package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func toks(ns ...int) []PageToken {
	out := make([]PageToken, len(ns))
	for i, n := range ns {
		out[i] = PageToken(n)
	}
	return out
}

func TestPageTokens_SmallCounts(t *testing.T) {
	assert.Nil(t, PageTokens(1, 0))
	assert.Equal(t, toks(1), PageTokens(1, 1))

	for total := 2; total <= 7; total++ {
		got := PageTokens(1, total)
		assert.Len(t, got, total, "total=%d", total)
		for i, tok := range got {
			assert.Equal(t, PageToken(i+1), tok)
		}
	}
}

func TestPageTokens_Windows(t *testing.T) {
	tests := []struct {
		name           string
		current, total int
		want           []PageToken
	}{
		{"first page", 1, 10, toks(1, 2, Ellipsis, 10)},
		{"second page", 2, 10, toks(1, 2, 3, Ellipsis, 10)},
		{"window clear of both ends", 5, 10, toks(1, Ellipsis, 4, 5, 6, Ellipsis, 10)},
		{"window touching end", 9, 10, toks(1, Ellipsis, 8, 9, 10)},
		{"last page", 10, 10, toks(1, Ellipsis, 9, 10)},
		{"current 3 keeps leading run", 3, 10, toks(1, 2, 3, 4, Ellipsis, 10)},
		{"current 4 gains leading gap", 4, 10, toks(1, Ellipsis, 3, 4, 5, Ellipsis, 10)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PageTokens(tc.current, tc.total))
		})
	}
}

func TestPageTokens_ClampsCurrent(t *testing.T) {
	assert.Equal(t, PageTokens(1, 10), PageTokens(-3, 10))
	assert.Equal(t, PageTokens(10, 10), PageTokens(99, 10))
}

func TestPageTokens_NoAdjacentDuplicates(t *testing.T) {
	for total := 8; total <= 20; total++ {
		for current := 1; current <= total; current++ {
			got := PageTokens(current, total)
			assert.Equal(t, PageToken(1), got[0])
			assert.Equal(t, PageToken(total), got[len(got)-1])
			for i := 1; i < len(got); i++ {
				assert.NotEqual(t, got[i-1], got[i],
					"duplicate at current=%d total=%d: %v", current, total, got)
			}
		}
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	p := Paginate(items, 1, 9)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 25, p.TotalItems)
	assert.Len(t, p.Items, 9)
	assert.False(t, p.HasPrev)
	assert.True(t, p.HasNext)

	last := Paginate(items, 3, 9)
	assert.Len(t, last.Items, 7)
	assert.True(t, last.HasPrev)
	assert.False(t, last.HasNext)

	clamped := Paginate(items, 99, 9)
	assert.Equal(t, 3, clamped.CurrentPage)

	empty := Paginate([]int{}, 1, 9)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Items)
	assert.Empty(t, empty.Tokens()[1:], "single page should yield a single token")
}

func TestPageURL_PreservesFilterQuery(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	p := Paginate(items, 2, 9).WithQuery(url.Values{
		"duration": {"1-7"},
		"q":        {"leh"},
		"page":     {"2"},
	})

	assert.Equal(t, "?duration=1-7&page=3&q=leh", p.PageURL(3))
	assert.Equal(t, "?duration=1-7&page=1&q=leh", p.PageURL(1))
}

func TestPageURL_NoQueryAttached(t *testing.T) {
	p := Paginate(make([]int, 25), 1, 9)
	assert.Equal(t, "?page=2", p.PageURL(2))
}
