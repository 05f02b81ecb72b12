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

func TestProductImageSingleMain(t *testing.T) {
	router, db, _ := setupTest(t)
	admin := createUser(t, db, "admin@example.com", "secret123", "admin")
	token := tokenFor(t, admin)

	category := createCategory(t, db, "Electronics")
	product := createProduct(t, db, category, "Phone", "499.90")
	base := fmt.Sprintf("/api/v1/products/%d/images", product.ID)

	w := doRequest(router, "POST", base, token, gin.H{"image": "/media/front.jpg", "is_main": true})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, "POST", base, token, gin.H{"image": "/media/side.jpg", "is_main": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// non-main images are unrestricted
	w = doRequest(router, "POST", base, token, gin.H{"image": "/media/side.jpg"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doRequest(router, "POST", base, token, gin.H{"image": "/media/back.jpg"})
	require.Equal(t, http.StatusCreated, w.Code)

	var mainCount int64
	require.NoError(t, db.Model(&models.ProductImage{}).
		Where("product_id = ? AND is_main = ?", product.ID, true).
		Count(&mainCount).Error)
	assert.EqualValues(t, 1, mainCount)
}

func TestProductImagePromoteBlockedWhileMainExists(t *testing.T) {
	router, db, _ := setupTest(t)
	admin := createUser(t, db, "admin@example.com", "secret123", "admin")
	token := tokenFor(t, admin)

	category := createCategory(t, db, "Electronics")
	product := createProduct(t, db, category, "Phone", "499.90")

	main := models.ProductImage{ProductID: &product.ID, Image: "/media/front.jpg", IsMain: true}
	other := models.ProductImage{ProductID: &product.ID, Image: "/media/side.jpg"}
	require.NoError(t, db.Create(&main).Error)
	require.NoError(t, db.Create(&other).Error)

	w := doRequest(router, "PATCH", fmt.Sprintf("/api/v1/products/images/%d", other.ID), token, gin.H{"is_main": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// demote the current main first, then the promotion goes through
	w = doRequest(router, "PATCH", fmt.Sprintf("/api/v1/products/images/%d", main.ID), token, gin.H{"is_main": false})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, "PATCH", fmt.Sprintf("/api/v1/products/images/%d", other.ID), token, gin.H{"is_main": true})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProductImageCreateUnknownProduct(t *testing.T) {
	router, db, _ := setupTest(t)
	admin := createUser(t, db, "admin@example.com", "secret123", "admin")
	token := tokenFor(t, admin)

	w := doRequest(router, "POST", "/api/v1/products/42/images", token, gin.H{"image": "/media/x.jpg"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductImageDelete(t *testing.T) {
	router, db, _ := setupTest(t)
	admin := createUser(t, db, "admin@example.com", "secret123", "admin")
	token := tokenFor(t, admin)

	category := createCategory(t, db, "Electronics")
	product := createProduct(t, db, category, "Phone", "499.90")
	image := models.ProductImage{ProductID: &product.ID, Image: "/media/front.jpg", IsMain: true}
	require.NoError(t, db.Create(&image).Error)

	w := doRequest(router, "DELETE", fmt.Sprintf("/api/v1/products/images/%d", image.ID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// the slot frees up after deletion
	w = doRequest(router, "POST", fmt.Sprintf("/api/v1/products/%d/images", product.ID), token, gin.H{
		"image": "/media/new-front.jpg", "is_main": true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}
