package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/enosgb/admarket-back/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdPublicVisibility(t *testing.T) {
	router, db, _ := setupTest(t)
	admin := createUser(t, db, "admin@example.com", "secret123", "admin")
	token := tokenFor(t, admin)

	visible := createAd(t, db, "Visible", nil, nil, true, true)
	unpublished := createAd(t, db, "Draft", nil, nil, true, false)
	inactive := createAd(t, db, "Disabled", nil, nil, false, true)

	// anonymous public list sees only active AND published
	w := doRequest(router, "GET", "/api/v1/ads/public", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 1, body["count"])
	results := body["results"].([]interface{})
	require.Len(t, results, 1)
	assert.Equal(t, "Visible", results[0].(map[string]interface{})["title"])

	// the staff list sees everything
	w = doRequest(router, "GET", "/api/v1/ads", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, decodeBody(t, w)["count"])

	// public detail: hidden ads are indistinguishable from missing ones
	w = doRequest(router, "GET", fmt.Sprintf("/api/v1/ads/public/%d", visible.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(router, "GET", fmt.Sprintf("/api/v1/ads/public/%d", unpublished.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doRequest(router, "GET", fmt.Sprintf("/api/v1/ads/public/%d", inactive.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// but the staff detail endpoint still serves them
	w = doRequest(router, "GET", fmt.Sprintf("/api/v1/ads/%d", unpublished.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdPriceFilters(t *testing.T) {
	router, db, _ := setupTest(t)

	category := createCategory(t, db, "Electronics")
	cheap := createProduct(t, db, category, "Charger", "10.00")
	pricey := createProduct(t, db, category, "Phone", "50.00")

	createAd(t, db, "Charger deal", &cheap.ID, nil, true, true)
	createAd(t, db, "Phone deal", &pricey.ID, nil, true, true)
	createAd(t, db, "Store opening", nil, nil, true, true)

	w := doRequest(router, "GET", "/api/v1/ads/public?product_sale_price__lte=20", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.EqualValues(t, 1, body["count"])
	results := body["results"].([]interface{})
	assert.Equal(t, "Charger deal", results[0].(map[string]interface{})["title"])

	w = doRequest(router, "GET", "/api/v1/ads/public?product_sale_price__gte=20", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	require.EqualValues(t, 1, body["count"])
	results = body["results"].([]interface{})
	assert.Equal(t, "Phone deal", results[0].(map[string]interface{})["title"])

	// without a price filter, ads with no product come back too
	w = doRequest(router, "GET", "/api/v1/ads/public", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, decodeBody(t, w)["count"])
}

func TestAdListEmbedsProductSummary(t *testing.T) {
	router, db, _ := setupTest(t)

	category := createCategory(t, db, "Electronics")
	product := createProduct(t, db, category, "Phone", "499.90")
	require.NoError(t, db.Create(&models.ProductImage{ProductID: &product.ID, Image: "/media/front.jpg", IsMain: true}).Error)
	createAd(t, db, "Phone deal", &product.ID, nil, true, true)

	w := doRequest(router, "GET", "/api/v1/ads/public", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	results := decodeBody(t, w)["results"].([]interface{})
	require.Len(t, results, 1)

	embedded := results[0].(map[string]interface{})["product"].(map[string]interface{})
	assert.Equal(t, "Phone", embedded["name"])
	assert.Equal(t, "/media/front.jpg", embedded["main_image"])
	_, hasCost := embedded["cost_price"]
	assert.False(t, hasCost)
}

func TestAdCreateGeneratesUniqueSlug(t *testing.T) {
	router, db, _ := setupTest(t)
	admin := createUser(t, db, "admin@example.com", "secret123", "admin")
	token := tokenFor(t, admin)

	w := doRequest(router, "POST", "/api/v1/ads", token, gin.H{"title": "Grand Opening", "published": true})
	require.Equal(t, http.StatusCreated, w.Code)
	first := decodeBody(t, w)
	assert.Equal(t, "grand-opening", first["slug"])

	w = doRequest(router, "POST", "/api/v1/ads", token, gin.H{"title": "Grand Opening"})
	require.Equal(t, http.StatusCreated, w.Code)
	second := decodeBody(t, w)
	assert.Equal(t, "grand-opening-2", second["slug"])

	w = doRequest(router, "POST", "/api/v1/ads", token, gin.H{"title": "Grand Opening"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "grand-opening-3", decodeBody(t, w)["slug"])
}

func TestAdCreateValidatesReferences(t *testing.T) {
	router, db, _ := setupTest(t)
	admin := createUser(t, db, "admin@example.com", "secret123", "admin")
	token := tokenFor(t, admin)

	w := doRequest(router, "POST", "/api/v1/ads", token, gin.H{"title": "Bad ref", "product_id": 42})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, "POST", "/api/v1/ads", token, gin.H{"title": "Bad ref", "store_id": 42})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	category := createCategory(t, db, "Electronics")
	product := createProduct(t, db, category, "Phone", "499.90")
	w = doRequest(router, "POST", "/api/v1/ads", token, gin.H{"title": "Good ref", "product_id": product.ID})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAdSearchAndOrdering(t *testing.T) {
	router, db, _ := setupTest(t)

	createAd(t, db, "Winter clearance", nil, nil, true, true)
	createAd(t, db, "Summer sale", nil, nil, true, true)

	w := doRequest(router, "GET", "/api/v1/ads/public?search=summer", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.EqualValues(t, 1, body["count"])

	w = doRequest(router, "GET", "/api/v1/ads/public?ordering=title", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	results := decodeBody(t, w)["results"].([]interface{})
	require.Len(t, results, 2)
	assert.Equal(t, "Summer sale", results[0].(map[string]interface{})["title"])
}

func TestAdDeleteHiddenFromPublic(t *testing.T) {
	router, db, _ := setupTest(t)
	admin := createUser(t, db, "admin@example.com", "secret123", "admin")
	token := tokenFor(t, admin)

	ad := createAd(t, db, "Short lived", nil, nil, true, true)

	w := doRequest(router, "DELETE", fmt.Sprintf("/api/v1/ads/%d", ad.ID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, "GET", fmt.Sprintf("/api/v1/ads/public/%d", ad.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
