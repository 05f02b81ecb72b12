package controllers

import (
	"net/http"

	"github.com/enosgb/admarket-back/models"
	"github.com/enosgb/admarket-back/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FavoriteController struct {
	db *gorm.DB
}

func NewFavoriteController() *FavoriteController {
	return &FavoriteController{db: utils.GetDB()}
}

func (fc *FavoriteController) loadFavorite(id, userID uint) (*models.Favorite, error) {
	var fav models.Favorite
	err := fc.db.
		Preload("Product").
		Preload("Product.Category").
		Preload("Product.Images", "is_main = ?", true).
		Where("id = ? AND user_id = ?", id, userID).
		First(&fav).Error
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

// GET /favorites
func (fc *FavoriteController) List(c *gin.Context) {
	userID := currentUserID(c)
	page, pageSize, offset := parsePagination(c)

	query := fc.db.Model(&models.Favorite{}).Where("user_id = ?", userID)
	if productID := uintQuery(c, "product"); productID != nil {
		query = query.Where("product_id = ?", *productID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count favorites"})
		return
	}

	order := "created_at DESC"
	if c.Query("ordering") == "created_at" {
		order = "created_at ASC"
	}

	var favorites []models.Favorite
	err := query.
		Preload("Product").
		Preload("Product.Category").
		Preload("Product.Images", "is_main = ?", true).
		Order(order).
		Offset(offset).Limit(pageSize).
		Find(&favorites).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list favorites"})
		return
	}

	staff := isAdminRequest(c)
	results := make([]favoritePayload, 0, len(favorites))
	for i := range favorites {
		results = append(results, serializeFavorite(&favorites[i], staff))
	}

	listResponse(c, total, page, results)
}

// POST /favorites
// Idempotent per (user, product): a repeated request returns the existing
// row instead of erroring.
func (fc *FavoriteController) Create(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var productCount int64
	if err := fc.db.Model(&models.Product{}).Where("id = ?", req.ProductID).Count(&productCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check product"})
		return
	}
	if productCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id does not reference an existing product"})
		return
	}

	fav := models.Favorite{UserID: userID, ProductID: req.ProductID}
	err := fc.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).FirstOrCreate(&fav).Error
	if err != nil {
		if isDuplicateKeyErr(err) {
			// race lost: the row now exists, return it
			if err := fc.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&fav).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create favorite"})
				return
			}
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create favorite"})
			return
		}
	}

	utils.InvalidateAdCache(c.Request.Context())

	loaded, err := fc.loadFavorite(fav.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load favorite"})
		return
	}
	c.JSON(http.StatusCreated, serializeFavorite(loaded, isAdminRequest(c)))
}

// GET /favorites/:id
func (fc *FavoriteController) Get(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	fav, err := fc.loadFavorite(id, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
		return
	}

	c.JSON(http.StatusOK, serializeFavorite(fav, isAdminRequest(c)))
}

// DELETE /favorites/:id
func (fc *FavoriteController) Delete(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var fav models.Favorite
	if err := fc.db.Where("id = ? AND user_id = ?", id, userID).First(&fav).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
		return
	}

	if err := fc.db.Delete(&fav).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete favorite"})
		return
	}

	utils.InvalidateAdCache(c.Request.Context())

	c.JSON(http.StatusNoContent, nil)
}
