package controllers_test

import (
	"net/http"
	"testing"

	"github.com/enosgb/admarket-back/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	router, db, _ := setupTest(t)
	admin := createUser(t, db, "admin@example.com", "secret123", "admin")
	token := tokenFor(t, admin)

	w := doRequest(router, "POST", "/api/v1/categories", token, gin.H{
		"name": "Electronics", "description": "Gadgets",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	assert.Equal(t, "Electronics", created["name"])
	assert.Equal(t, true, created["active"])

	id := int(created["ID"].(float64))

	w = doRequest(router, "GET", "/api/v1/categories/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Electronics", decodeBody(t, w)["name"])

	w = doRequest(router, "PATCH", "/api/v1/categories/1", token, gin.H{"active": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["active"])

	w = doRequest(router, "PUT", "/api/v1/categories/1", token, gin.H{
		"name": "Home Electronics", "description": "Updated",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Home Electronics", decodeBody(t, w)["name"])

	w = doRequest(router, "DELETE", "/api/v1/categories/1", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCategoryListOrderedByName(t *testing.T) {
	router, db, _ := setupTest(t)
	user := createUser(t, db, "user@example.com", "secret123", "user")
	token := tokenFor(t, user)

	createCategory(t, db, "Vehicles")
	createCategory(t, db, "Apparel")
	createCategory(t, db, "Furniture")

	w := doRequest(router, "GET", "/api/v1/categories", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 3, body["count"])
	assert.EqualValues(t, 1, body["current_page"])

	results := body["results"].([]interface{})
	require.Len(t, results, 3)
	names := make([]string, 0, 3)
	for _, item := range results {
		names = append(names, item.(map[string]interface{})["name"].(string))
	}
	assert.Equal(t, []string{"Apparel", "Furniture", "Vehicles"}, names)

	w = doRequest(router, "GET", "/api/v1/categories?ordering=-name", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	results = decodeBody(t, w)["results"].([]interface{})
	assert.Equal(t, "Vehicles", results[0].(map[string]interface{})["name"])
}

func TestCategoryListFilters(t *testing.T) {
	router, db, _ := setupTest(t)
	user := createUser(t, db, "user@example.com", "secret123", "user")
	token := tokenFor(t, user)

	createCategory(t, db, "Electronics")
	inactive := models.Category{Name: "Archive", Active: false}
	require.NoError(t, db.Create(&inactive).Error)

	w := doRequest(router, "GET", "/api/v1/categories?active=true", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["count"])

	w = doRequest(router, "GET", "/api/v1/categories?search=elec", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["count"])
}

func TestCategoryDeleteBlockedByProducts(t *testing.T) {
	router, db, _ := setupTest(t)
	admin := createUser(t, db, "admin@example.com", "secret123", "admin")
	token := tokenFor(t, admin)

	category := createCategory(t, db, "Electronics")
	createProduct(t, db, category, "Phone", "499.90")

	w := doRequest(router, "DELETE", "/api/v1/categories/1", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCategoryWriteRequiresAdmin(t *testing.T) {
	router, db, _ := setupTest(t)
	user := createUser(t, db, "user@example.com", "secret123", "user")
	token := tokenFor(t, user)

	w := doRequest(router, "POST", "/api/v1/categories", token, gin.H{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(router, "GET", "/api/v1/categories", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
