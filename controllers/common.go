package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/enosgb/admarket-back/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func parsePagination(c *gin.Context) (page, pageSize, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	offset = (page - 1) * pageSize
	return page, pageSize, offset
}

func listResponse(c *gin.Context, total int64, page int, results interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"count":        total,
		"current_page": page,
		"results":      results,
	})
}

func boolQuery(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func uintQuery(c *gin.Context, name string) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	u := uint(v)
	return &u
}

func decimalQuery(c *gin.Context, name string) *decimal.Decimal {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &v
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func currentUserID(c *gin.Context) uint {
	return uint(c.GetInt("user_id"))
}

func isAdminRequest(c *gin.Context) bool {
	return c.GetString("role") == models.RoleAdmin
}

// isDuplicateKeyErr recognizes uniqueness violations from Postgres (23505)
// and SQLite. Races that slip past the application pre-checks land here and
// are reported like any other validation failure.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func isForeignKeyErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23503") ||
		strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed")
}
