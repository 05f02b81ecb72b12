package controllers

import (
	"net/http"

	"github.com/enosgb/admarket-back/models"
	"github.com/enosgb/admarket-back/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductController struct {
	db   *gorm.DB
	repo *models.ProductsRepository
}

func NewProductController() *ProductController {
	db := utils.GetDB()
	return &ProductController{db: db, repo: models.NewProductsRepository(db)}
}

type productPayload struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Active      *bool            `json:"active"`
	Stock       *uint            `json:"stock"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	Image       string           `json:"image"`
	CategoryID  uint             `json:"category_id" binding:"required"`
}

func (pc *ProductController) categoryExists(id uint) (bool, error) {
	var count int64
	err := pc.db.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// GET /products
func (pc *ProductController) List(c *gin.Context) {
	page, pageSize, offset := parsePagination(c)

	filters := models.ProductFilters{
		Active:       boolQuery(c, "active"),
		CategoryID:   uintQuery(c, "category"),
		Stock:        uintQuery(c, "stock"),
		SalePriceLTE: decimalQuery(c, "sale_price__lte"),
		SalePriceGTE: decimalQuery(c, "sale_price__gte"),
		Search:       c.Query("search"),
		Ordering:     c.Query("ordering"),
	}

	products, total, err := pc.repo.List(offset, pageSize, filters)
	if err != nil {
		utils.LogError(err, "list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	staff := isAdminRequest(c)
	results := make([]interface{}, 0, len(products))
	for i := range products {
		results = append(results, serializeProductList(&products[i], staff))
	}

	listResponse(c, total, page, results)
}

// POST /products
func (pc *ProductController) Create(c *gin.Context) {
	var req productPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	exists, err := pc.categoryExists(req.CategoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check category"})
		return
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category_id does not reference an existing category"})
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
	}
	if req.SalePrice != nil {
		product.SalePrice = *req.SalePrice
	}

	if err := pc.db.Create(&product).Error; err != nil {
		if isForeignKeyErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category_id does not reference an existing category"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, serializeProductDetail(&product, isAdminRequest(c)))
}

// GET /products/:id
func (pc *ProductController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := pc.repo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, serializeProductDetail(product, isAdminRequest(c)))
}

// PUT /products/:id
func (pc *ProductController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req productPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var product models.Product
	if err := pc.db.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if req.CategoryID != product.CategoryID {
		exists, err := pc.categoryExists(req.CategoryID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check category"})
			return
		}
		if !exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category_id does not reference an existing category"})
			return
		}
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Image = req.Image
	product.CategoryID = req.CategoryID
	if req.Active != nil {
		product.Active = *req.Active
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
	}
	if req.SalePrice != nil {
		product.SalePrice = *req.SalePrice
	}

	if err := pc.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	updated, err := pc.repo.GetByID(product.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
		return
	}
	c.JSON(http.StatusOK, serializeProductDetail(updated, isAdminRequest(c)))
}

// PATCH /products/:id
func (pc *ProductController) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name        *string          `json:"name"`
		Description *string          `json:"description"`
		Active      *bool            `json:"active"`
		Stock       *uint            `json:"stock"`
		CostPrice   *decimal.Decimal `json:"cost_price"`
		SalePrice   *decimal.Decimal `json:"sale_price"`
		Image       *string          `json:"image"`
		CategoryID  *uint            `json:"category_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var product models.Product
	if err := pc.db.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
			return
		}
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
	}
	if req.SalePrice != nil {
		product.SalePrice = *req.SalePrice
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.CategoryID != nil {
		exists, err := pc.categoryExists(*req.CategoryID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check category"})
			return
		}
		if !exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category_id does not reference an existing category"})
			return
		}
		product.CategoryID = *req.CategoryID
	}

	if err := pc.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	updated, err := pc.repo.GetByID(product.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
		return
	}
	c.JSON(http.StatusOK, serializeProductDetail(updated, isAdminRequest(c)))
}

// DELETE /products/:id
// Images and ads survive the product with their reference set to NULL.
func (pc *ProductController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := pc.db.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	err := pc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProductImage{}).Where("product_id = ?", id).Update("product_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Ad{}).Where("product_id = ?", id).Update("product_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		utils.LogError(err, "delete product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	// ads may embed this product's data
	utils.InvalidateAdCache(c.Request.Context())

	c.JSON(http.StatusNoContent, nil)
}
