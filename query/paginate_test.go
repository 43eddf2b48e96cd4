package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginateURL(t *testing.T) {
	tests := map[string]string{
		"/posts":                          "/posts?page=",
		"/posts?page=2":                   "/posts?page=",
		"/posts?search=surf&page=2":       "/posts?search=surf&page=",
		"/posts?page=2&search=surf":       "/posts?search=surf&page=",
		"/posts?search=surf":              "/posts?search=surf&page=",
		"/posts?price%5Bmin%5D=1&page=10": "/posts?price%5Bmin%5D=1&page=",
		"/posts?pages=3":                  "/posts?pages=3&page=",
	}
	for in, want := range tests {
		u, err := url.Parse(in)
		require.NoError(t, err)
		assert.Equal(t, want, PaginateURL(u), in)
	}
}

func TestPageOf(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, Limit: 10, Skip: 0}, PageOf(1))
	assert.Equal(t, Pagination{Page: 3, Limit: 10, Skip: 20}, PageOf(3))
	assert.Equal(t, Pagination{Page: 1, Limit: 10, Skip: 0}, PageOf(0))
}
