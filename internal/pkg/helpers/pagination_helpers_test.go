package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantOffset uint64
		wantSize   int
	}{
		{"first page", 1, 20, 0, 20},
		{"third page", 3, 10, 20, 10},
		{"zero limit takes default", 1, 0, 0, DefaultPageSize},
		{"limit above cap takes default", 1, 500, 0, DefaultPageSize},
		{"page below one takes first page", 0, 10, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, size := CalculateOffsetLimit(tt.page, tt.limit)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		info := NewPaginationInfo(45, 2, 20)
		assert.Equal(t, 2, info.Page)
		assert.Equal(t, 20, info.Limit)
		assert.Equal(t, int64(45), info.TotalItems)
		assert.Equal(t, 3, info.TotalPages)
		assert.True(t, info.HasNext)
		assert.True(t, info.HasPrev)
	})

	t.Run("first page", func(t *testing.T) {
		info := NewPaginationInfo(45, 1, 20)
		assert.True(t, info.HasNext)
		assert.False(t, info.HasPrev)
	})

	t.Run("last page", func(t *testing.T) {
		info := NewPaginationInfo(45, 3, 20)
		assert.False(t, info.HasNext)
		assert.True(t, info.HasPrev)
	})

	t.Run("empty result", func(t *testing.T) {
		info := NewPaginationInfo(0, 1, 20)
		assert.Equal(t, 0, info.TotalPages)
		assert.False(t, info.HasNext)
		assert.False(t, info.HasPrev)
	})

	t.Run("exact multiple of page size", func(t *testing.T) {
		info := NewPaginationInfo(40, 2, 20)
		assert.Equal(t, 2, info.TotalPages)
		assert.False(t, info.HasNext)
	})
}

func paginationContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/scholars"+query, nil)
	return c
}

func TestParsePaginationParams(t *testing.T) {
	t.Run("absent parameters take defaults", func(t *testing.T) {
		page, limit, err := ParsePaginationParams(paginationContext(t, ""))
		require.NoError(t, err)
		assert.Equal(t, DefaultPage, page)
		assert.Equal(t, DefaultPageSize, limit)
	})

	t.Run("explicit values pass through", func(t *testing.T) {
		page, limit, err := ParsePaginationParams(paginationContext(t, "?page=3&limit=50"))
		require.NoError(t, err)
		assert.Equal(t, 3, page)
		assert.Equal(t, 50, limit)
	})

	t.Run("non-numeric page rejected", func(t *testing.T) {
		_, _, err := ParsePaginationParams(paginationContext(t, "?page=abc"))
		assert.Error(t, err)
	})

	t.Run("zero page rejected", func(t *testing.T) {
		_, _, err := ParsePaginationParams(paginationContext(t, "?page=0"))
		assert.Error(t, err)
	})

	t.Run("negative limit rejected", func(t *testing.T) {
		_, _, err := ParsePaginationParams(paginationContext(t, "?limit=-5"))
		assert.Error(t, err)
	})

	t.Run("limit above cap rejected", func(t *testing.T) {
		_, _, err := ParsePaginationParams(paginationContext(t, "?limit=101"))
		assert.Error(t, err)
	})

	t.Run("limit at cap accepted", func(t *testing.T) {
		_, limit, err := ParsePaginationParams(paginationContext(t, "?limit=100"))
		require.NoError(t, err)
		assert.Equal(t, MaxPageSize, limit)
	})
}
