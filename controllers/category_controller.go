package controllers

import (
	"net/http"

	"github.com/enosgb/admarket-back/models"
	"github.com/enosgb/admarket-back/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryController struct {
	db *gorm.DB
}

func NewCategoryController() *CategoryController {
	return &CategoryController{db: utils.GetDB()}
}

var categoryOrderings = map[string]string{
	"id":         "id",
	"name":       "name",
	"created_at": "created_at",
}

type categoryPayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
	Image       string `json:"image"`
}

// GET /categories
func (cc *CategoryController) List(c *gin.Context) {
	page, pageSize, offset := parsePagination(c)

	query := cc.db.Model(&models.Category{})
	if active := boolQuery(c, "active"); active != nil {
		query = query.Where("active = ?", *active)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count categories"})
		return
	}

	order := "name ASC"
	if requested := c.Query("ordering"); requested != "" {
		direction := "ASC"
		field := requested
		if field[0] == '-' {
			direction = "DESC"
			field = field[1:]
		}
		if column, ok := categoryOrderings[field]; ok {
			order = column + " " + direction
		}
	}

	var categories []models.Category
	if err := query.Order(order).Offset(offset).Limit(pageSize).Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}

	listResponse(c, total, page, categories)
}

// POST /categories
func (cc *CategoryController) Create(c *gin.Context) {
	var req categoryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
		Image:       req.Image,
	}
	if req.Active != nil {
		category.Active = *req.Active
	}

	if err := cc.db.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GET /categories/:id
func (cc *CategoryController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := cc.db.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, category)
}

// PUT /categories/:id
func (cc *CategoryController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req categoryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var category models.Category
	if err := cc.db.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	category.Name = req.Name
	category.Description = req.Description
	category.Image = req.Image
	if req.Active != nil {
		category.Active = *req.Active
	}

	if err := cc.db.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, category)
}

// PATCH /categories/:id
func (cc *CategoryController) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Active      *bool   `json:"active"`
		Image       *string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var category models.Category
	if err := cc.db.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
			return
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Active != nil {
		category.Active = *req.Active
	}
	if req.Image != nil {
		category.Image = *req.Image
	}

	if err := cc.db.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, category)
}

// DELETE /categories/:id
// Deletion is blocked while products still reference the category.
func (cc *CategoryController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := cc.db.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var productCount int64
	if err := cc.db.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check category products"})
		return
	}
	if productCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category still has products attached"})
		return
	}

	if err := cc.db.Delete(&category).Error; err != nil {
		if isForeignKeyErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category still has products attached"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
