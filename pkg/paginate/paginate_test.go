package paginate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClampsPageAndLimit(t *testing.T) {
	p := Params{Page: 0, Limit: -5, SortOrder: "desc"}.Normalize()
	assert.Equal(t, int64(1), p.Page)
	assert.Equal(t, int64(1), p.Limit)

	p = Params{Page: 3, Limit: 25, SortOrder: "asc"}.Normalize()
	assert.Equal(t, int64(3), p.Page)
	assert.Equal(t, int64(25), p.Limit)
}

func TestNormalizeDefaultsSortOrderToDesc(t *testing.T) {
	for _, order := range []string{"", "descending", "ASC", "random"} {
		p := Params{Page: 1, Limit: 10, SortOrder: order}.Normalize()
		assert.Equal(t, OrderDesc, p.SortOrder, "order %q should fall back to desc", order)
	}

	p := Params{Page: 1, Limit: 10, SortOrder: OrderAsc}.Normalize()
	assert.Equal(t, OrderAsc, p.SortOrder)
}

func TestSortValue(t *testing.T) {
	assert.Equal(t, 1, Params{SortOrder: OrderAsc}.SortValue())
	assert.Equal(t, -1, Params{SortOrder: OrderDesc}.SortValue())
	assert.Equal(t, -1, Params{SortOrder: "whatever"}.SortValue())
}

func TestNewPaginationComputesPageCount(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int64
		page       int64
		limit      int64
		totalPages int64
		hasNext    bool
		hasPrev    bool
	}{
		{"empty collection", 0, 1, 10, 0, false, false},
		{"exact multiple", 20, 1, 10, 2, true, false},
		{"remainder adds a page", 21, 1, 10, 3, true, false},
		{"middle page", 21, 2, 10, 3, true, true},
		{"last page", 21, 3, 10, 3, false, true},
		{"page past the end", 5, 9, 10, 1, false, true},
		{"limit one", 3, 2, 1, 3, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.totalItems, tt.page, tt.limit)
			assert.Equal(t, tt.totalItems, p.TotalItems)
			assert.Equal(t, tt.page, p.CurrentPage)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.hasNext, p.HasNextPage)
			assert.Equal(t, tt.hasPrev, p.HasPrevPage)
		})
	}
}
