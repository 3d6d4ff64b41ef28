package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	page, limit := GetPaginationParams(paginationContext(t, "/promo-codes"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}

func TestGetPaginationParams(t *testing.T) {
	page, limit := GetPaginationParams(paginationContext(t, "/promo-codes?page=3&limit=50"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, limit)
}

func TestGetPaginationParamsClampsBadValues(t *testing.T) {
	page, limit := GetPaginationParams(paginationContext(t, "/promo-codes?page=0&limit=500"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = GetPaginationParams(paginationContext(t, "/promo-codes?page=abc&limit=-1"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}
