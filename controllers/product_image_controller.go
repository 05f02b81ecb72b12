package controllers

import (
	"net/http"

	"github.com/enosgb/admarket-back/models"
	"github.com/enosgb/admarket-back/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductImageController struct {
	db *gorm.DB
}

func NewProductImageController() *ProductImageController {
	return &ProductImageController{db: utils.GetDB()}
}

type productImagePayload struct {
	Image  string `json:"image" binding:"required"`
	IsMain bool   `json:"is_main"`
}

// hasOtherMainImage reports whether another image of the product is
// already flagged main. The partial unique index is the final authority;
// this pre-check only produces the friendlier error.
func (ic *ProductImageController) hasOtherMainImage(productID uint, excludeID uint) (bool, error) {
	var count int64
	query := ic.db.Model(&models.ProductImage{}).
		Where("product_id = ? AND is_main = ?", productID, true)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// POST /products/:id/images
func (ic *ProductImageController) Create(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := ic.db.First(&product, productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req productImagePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.IsMain {
		exists, err := ic.hasOtherMainImage(productID, 0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check main image"})
			return
		}
		if exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "This product already has a main image"})
			return
		}
	}

	image := models.ProductImage{
		ProductID: &product.ID,
		Image:     req.Image,
		IsMain:    req.IsMain,
	}
	if err := ic.db.Create(&image).Error; err != nil {
		if isDuplicateKeyErr(err) {
			// lost the race against a concurrent main-image write
			c.JSON(http.StatusBadRequest, gin.H{"error": "This product already has a main image"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create image"})
		return
	}

	utils.InvalidateAdCache(c.Request.Context())

	c.JSON(http.StatusCreated, image)
}

// GET /products/images/:id
func (ic *ProductImageController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var image models.ProductImage
	if err := ic.db.First(&image, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	c.JSON(http.StatusOK, image)
}

// PUT /products/images/:id
func (ic *ProductImageController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req productImagePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var image models.ProductImage
	if err := ic.db.First(&image, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	// No silent demotion of the current main image: callers must unset it
	// explicitly before promoting another one.
	if req.IsMain && !image.IsMain && image.ProductID != nil {
		exists, err := ic.hasOtherMainImage(*image.ProductID, image.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check main image"})
			return
		}
		if exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "This product already has a main image"})
			return
		}
	}

	image.Image = req.Image
	image.IsMain = req.IsMain

	if err := ic.db.Save(&image).Error; err != nil {
		if isDuplicateKeyErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "This product already has a main image"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update image"})
		return
	}

	utils.InvalidateAdCache(c.Request.Context())

	c.JSON(http.StatusOK, image)
}

// PATCH /products/images/:id
func (ic *ProductImageController) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Image  *string `json:"image"`
		IsMain *bool   `json:"is_main"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var image models.ProductImage
	if err := ic.db.First(&image, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	if req.Image != nil {
		if *req.Image == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image cannot be empty"})
			return
		}
		image.Image = *req.Image
	}
	if req.IsMain != nil {
		if *req.IsMain && !image.IsMain && image.ProductID != nil {
			exists, err := ic.hasOtherMainImage(*image.ProductID, image.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check main image"})
				return
			}
			if exists {
				c.JSON(http.StatusBadRequest, gin.H{"error": "This product already has a main image"})
				return
			}
		}
		image.IsMain = *req.IsMain
	}

	if err := ic.db.Save(&image).Error; err != nil {
		if isDuplicateKeyErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "This product already has a main image"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update image"})
		return
	}

	utils.InvalidateAdCache(c.Request.Context())

	c.JSON(http.StatusOK, image)
}

// DELETE /products/images/:id
func (ic *ProductImageController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var image models.ProductImage
	if err := ic.db.First(&image, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	if err := ic.db.Delete(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	utils.InvalidateAdCache(c.Request.Context())

	c.JSON(http.StatusNoContent, nil)
}
