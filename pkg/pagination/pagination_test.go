package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		page    int
		perPage int
		offset  int
	}{
		{"defaults", "", 1, DefaultPerPage, 0},
		{"custom", "?page=3&per_page=50", 3, 50, 100},
		{"negative page", "?page=-1", 1, DefaultPerPage, 0},
		{"zero page", "?page=0", 1, DefaultPerPage, 0},
		{"non numeric", "?page=abc&per_page=x", 1, DefaultPerPage, 0},
		{"per_page over cap", "?per_page=200", 1, DefaultPerPage, 0},
		{"per_page at cap", "?page=2&per_page=100", 2, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FromRequest(httptest.NewRequest(http.MethodGet, "/api/v1/products"+tt.query, nil))
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.perPage, p.PerPage)
			assert.Equal(t, tt.offset, p.Offset)
		})
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Slice(items, Params{Page: 1, PerPage: 2, Offset: 0}))
	assert.Equal(t, []int{5}, Slice(items, Params{Page: 3, PerPage: 2, Offset: 4}))

	past := Slice(items, Params{Page: 4, PerPage: 2, Offset: 6})
	assert.NotNil(t, past)
	assert.Empty(t, past)

	assert.Empty(t, Slice([]int(nil), DefaultParams()))
}
