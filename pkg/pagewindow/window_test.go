package pagewindow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// e is shorthand for ellipsis in expectations.
const e = -1

func pages(nums ...int) []Entry {
	out := make([]Entry, 0, len(nums))
	for _, n := range nums {
		if n == e {
			out = append(out, EllipsisEntry())
			continue
		}
		out = append(out, PageEntry(n))
	}
	return out
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []Entry
	}{
		{name: "single page", current: 0, total: 1, want: pages()},
		{name: "middle of ten", current: 5, total: 10, want: pages(0, e, 3, 4, 5, 6, 7, e, 9)},
		{name: "core covers all", current: 1, total: 5, want: pages(0, 1, 2, 3, 4)},
		{name: "first of many", current: 0, total: 20, want: pages(0, 1, 2, e, 19)},
		{name: "last of many", current: 19, total: 20, want: pages(0, e, 17, 18, 19)},
		{name: "first page adjacent to core", current: 3, total: 20, want: pages(0, 1, 2, 3, 4, 5, e, 19)},
		{name: "last page adjacent to core", current: 16, total: 20, want: pages(0, e, 14, 15, 16, 17, 18, 19)},
		{name: "two pages", current: 0, total: 2, want: pages(0, 1)},
		{name: "two pages on last", current: 1, total: 2, want: pages(0, 1)},
		{name: "tail threshold", current: 5, total: 9, want: pages(0, e, 3, 4, 5, 6, 7, 8)},
		{name: "tail gap threshold", current: 4, total: 9, want: pages(0, e, 2, 3, 4, 5, 6, e, 8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.current, tt.total))
		})
	}
}

func TestCompute_OrderingProperties(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for current := 0; current < total; current++ {
			got := Compute(current, total)

			last := -1
			for i, entry := range got {
				if entry.IsEllipsis() {
					require.NotZero(t, i, "leading ellipsis at %d/%d", current, total)
					require.False(t, got[i-1].IsEllipsis(), "adjacent ellipses at %d/%d", current, total)
					continue
				}
				require.Greater(t, entry.Page, last, "not ascending at %d/%d", current, total)
				require.Less(t, entry.Page, total)
				last = entry.Page
			}

			if total > 1 {
				assert.Contains(t, got, PageEntry(current))
				assert.Contains(t, got, PageEntry(0))
				assert.Contains(t, got, PageEntry(total-1))
			}
		}
	}
}

func TestCompute_PastLastPage(t *testing.T) {
	last := Compute(4, 5)
	for _, current := range []int{5, 7, 9, 1000} {
		assert.NotPanics(t, func() { Compute(current, 5) })
		assert.Equal(t, last, Compute(current, 5), "current %d", current)
	}

	w := New(1000, 20)
	assert.Equal(t, 19, w.Current)
	assert.False(t, w.HasNext)
	assert.True(t, w.IsCurrent(PageEntry(19)))
}

func TestNavigation(t *testing.T) {
	assert.False(t, HasPrevious(0))
	assert.True(t, HasPrevious(1))
	assert.True(t, HasNext(0, 2))
	assert.False(t, HasNext(1, 2))
	assert.False(t, HasNext(0, 1))
}

func TestNew(t *testing.T) {
	w := New(5, 10)

	assert.True(t, w.Visible())
	assert.True(t, w.HasPrevious)
	assert.True(t, w.HasNext)
	assert.Equal(t, 4, w.Previous())
	assert.Equal(t, 6, w.Next())
	assert.True(t, w.IsCurrent(PageEntry(5)))
	assert.False(t, w.IsCurrent(EllipsisEntry()))
	assert.Len(t, w.Entries, 9)

	single := New(0, 1)
	assert.False(t, single.Visible())
	assert.Empty(t, single.Entries)
	assert.False(t, single.HasPrevious)
	assert.False(t, single.HasNext)
}

func TestEntry_Label(t *testing.T) {
	assert.Equal(t, "1", PageEntry(0).Label())
	assert.Equal(t, "10", PageEntry(9).Label())
	assert.Equal(t, "…", EllipsisEntry().Label())
}

func TestEntry_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(pages(0, e, 9))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"kind":"page","page":0},{"kind":"ellipsis"},{"kind":"page","page":9}]`, string(raw))
}
