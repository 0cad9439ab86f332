package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	p := &PaginationParams{Page: -1, PerPage: 500}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)

	p = &PaginationParams{}
	p.Validate()
	assert.Equal(t, 15, p.PerPage)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name    string
		params  *PaginationParams
		want    []int
		hasNext bool
		hasPrev bool
		pages   int
	}{
		{name: "first page", params: &PaginationParams{Page: 1, PerPage: 3}, want: []int{1, 2, 3}, hasNext: true, pages: 3},
		{name: "last partial page", params: &PaginationParams{Page: 3, PerPage: 3}, want: []int{7}, hasPrev: true, pages: 3},
		{name: "past the end", params: &PaginationParams{Page: 9, PerPage: 3}, want: []int{}, hasPrev: true, pages: 3},
		{name: "defaults", params: nil, want: items, pages: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Paginate(items, tc.params)
			assert.Equal(t, tc.want, got.Items)
			assert.Equal(t, int64(7), got.Pagination.Total)
			assert.Equal(t, tc.pages, got.Pagination.TotalPages)
			assert.Equal(t, tc.hasNext, got.Pagination.HasNext)
			assert.Equal(t, tc.hasPrev, got.Pagination.HasPrev)
		})
	}
}

func TestPaginateFarPage(t *testing.T) {
	items := []int{1, 2, 3}

	assert.NotPanics(t, func() {
		got := Paginate(items, &PaginationParams{Page: 1 << 62, PerPage: 15})
		assert.Empty(t, got.Items)
		assert.Equal(t, int64(3), got.Pagination.Total)
		assert.False(t, got.Pagination.HasNext)
	})

	p := &PaginationParams{Page: math.MaxInt, PerPage: 100}
	assert.Equal(t, math.MaxInt, p.Offset())
	assert.Equal(t, 0, (&PaginationParams{Page: 0, PerPage: 10}).Offset())
}
