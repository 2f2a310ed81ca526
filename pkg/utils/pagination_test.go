package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageFromQuery(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantPage int
		wantSize int
	}{
		{name: "defaults", url: "/api/customers", wantPage: 1, wantSize: DefaultPageSize},
		{name: "explicit values", url: "/api/customers?page=3&page_size=50", wantPage: 3, wantSize: 50},
		{name: "size clamped to max", url: "/api/customers?page_size=5000", wantPage: 1, wantSize: MaxPageSize},
		{name: "zero page falls back", url: "/api/customers?page=0", wantPage: 1, wantSize: DefaultPageSize},
		{name: "negative page falls back", url: "/api/customers?page=-2", wantPage: 1, wantSize: DefaultPageSize},
		{name: "garbage ignored", url: "/api/customers?page=abc&page_size=xyz", wantPage: 1, wantSize: DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			p := PageFromQuery(r)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantSize, p.PageSize)
		})
	}
}

func TestPageParamsOffset(t *testing.T) {
	p := PageParams{Page: 3, PageSize: 25}
	assert.Equal(t, 25, p.Limit())
	assert.Equal(t, 50, p.Offset())
}

func TestPaginate(t *testing.T) {
	t.Run("middle page has both links", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/customers?page=2&page_size=10", nil)
		resp := Paginate(r, 35, PageParams{Page: 2, PageSize: 10}, []int{})

		require.NotNil(t, resp.Next)
		assert.Contains(t, *resp.Next, "page=3")
		assert.Contains(t, *resp.Next, "page_size=10")
		require.NotNil(t, resp.Previous)
		assert.Contains(t, *resp.Previous, "page=1")
		assert.Equal(t, 35, resp.Count)
	})

	t.Run("first page has no previous", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/customers", nil)
		resp := Paginate(r, 35, PageParams{Page: 1, PageSize: 10}, []int{})
		assert.Nil(t, resp.Previous)
		require.NotNil(t, resp.Next)
	})

	t.Run("last page has no next", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/customers?page=4&page_size=10", nil)
		resp := Paginate(r, 35, PageParams{Page: 4, PageSize: 10}, []int{})
		assert.Nil(t, resp.Next)
		require.NotNil(t, resp.Previous)
	})

	t.Run("exact multiple has no next on final page", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/customers?page=2&page_size=10", nil)
		resp := Paginate(r, 20, PageParams{Page: 2, PageSize: 10}, []int{})
		assert.Nil(t, resp.Next)
	})

	t.Run("filters are preserved in links", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/customers?customer_type=Lead&page=1&page_size=10", nil)
		resp := Paginate(r, 35, PageParams{Page: 1, PageSize: 10}, []int{})
		require.NotNil(t, resp.Next)
		assert.Contains(t, *resp.Next, "customer_type=Lead")
	})
}
