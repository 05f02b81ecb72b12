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

func TestFavoriteCreateIsIdempotent(t *testing.T) {
	router, db, _ := setupTest(t)
	user := createUser(t, db, "user@example.com", "secret123", "user")
	token := tokenFor(t, user)

	category := createCategory(t, db, "Electronics")
	product := createProduct(t, db, category, "Phone", "499.90")

	w := doRequest(router, "POST", "/api/v1/favorites", token, gin.H{"product_id": product.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	first := decodeBody(t, w)

	w = doRequest(router, "POST", "/api/v1/favorites", token, gin.H{"product_id": product.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	second := decodeBody(t, w)

	assert.Equal(t, first["id"], second["id"])

	var count int64
	require.NoError(t, db.Model(&models.Favorite{}).
		Where("user_id = ? AND product_id = ?", user.ID, product.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFavoriteCreateUnknownProduct(t *testing.T) {
	router, db, _ := setupTest(t)
	user := createUser(t, db, "user@example.com", "secret123", "user")
	token := tokenFor(t, user)

	w := doRequest(router, "POST", "/api/v1/favorites", token, gin.H{"product_id": 42})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavoriteListScopedToOwner(t *testing.T) {
	router, db, _ := setupTest(t)
	alice := createUser(t, db, "alice@example.com", "secret123", "user")
	bob := createUser(t, db, "bob@example.com", "secret123", "user")

	category := createCategory(t, db, "Electronics")
	phone := createProduct(t, db, category, "Phone", "499.90")
	charger := createProduct(t, db, category, "Charger", "29.90")

	require.NoError(t, db.Create(&models.Favorite{UserID: alice.ID, ProductID: phone.ID}).Error)
	require.NoError(t, db.Create(&models.Favorite{UserID: alice.ID, ProductID: charger.ID}).Error)
	require.NoError(t, db.Create(&models.Favorite{UserID: bob.ID, ProductID: phone.ID}).Error)

	w := doRequest(router, "GET", "/api/v1/favorites", tokenFor(t, alice), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decodeBody(t, w)["count"])

	w = doRequest(router, "GET", "/api/v1/favorites", tokenFor(t, bob), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 1, body["count"])

	results := body["results"].([]interface{})
	embedded := results[0].(map[string]interface{})["product"].(map[string]interface{})
	assert.Equal(t, "Phone", embedded["name"])
	_, hasCost := embedded["cost_price"]
	assert.False(t, hasCost)
}

func TestFavoriteGetAndDeleteScopedToOwner(t *testing.T) {
	router, db, _ := setupTest(t)
	alice := createUser(t, db, "alice@example.com", "secret123", "user")
	bob := createUser(t, db, "bob@example.com", "secret123", "user")

	category := createCategory(t, db, "Electronics")
	phone := createProduct(t, db, category, "Phone", "499.90")

	fav := models.Favorite{UserID: alice.ID, ProductID: phone.ID}
	require.NoError(t, db.Create(&fav).Error)
	path := fmt.Sprintf("/api/v1/favorites/%d", fav.ID)

	w := doRequest(router, "GET", path, tokenFor(t, bob), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doRequest(router, "DELETE", path, tokenFor(t, bob), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, "GET", path, tokenFor(t, alice), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(router, "DELETE", path, tokenFor(t, alice), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Favorite{}).Where("user_id = ?", alice.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFavoriteRecreateAfterDelete(t *testing.T) {
	router, db, _ := setupTest(t)
	user := createUser(t, db, "user@example.com", "secret123", "user")
	token := tokenFor(t, user)

	category := createCategory(t, db, "Electronics")
	product := createProduct(t, db, category, "Phone", "499.90")

	w := doRequest(router, "POST", "/api/v1/favorites", token, gin.H{"product_id": product.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(float64)

	w = doRequest(router, "DELETE", fmt.Sprintf("/api/v1/favorites/%d", int(id)), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// the soft-deleted row does not block a fresh favorite
	w = doRequest(router, "POST", "/api/v1/favorites", token, gin.H{"product_id": product.ID})
	assert.Equal(t, http.StatusCreated, w.Code)
}
