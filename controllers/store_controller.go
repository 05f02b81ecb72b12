package controllers

import (
	"net/http"

	"github.com/enosgb/admarket-back/models"
	"github.com/enosgb/admarket-back/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StoreController struct {
	db *gorm.DB
}

func NewStoreController() *StoreController {
	return &StoreController{db: utils.GetDB()}
}

var storeOrderings = map[string]string{
	"id":         "id",
	"name":       "name",
	"active":     "active",
	"city":       "city",
	"state":      "state",
	"created_at": "created_at",
}

type storePayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	City        string `json:"city"`
	State       string `json:"state"`
	Active      *bool  `json:"active"`
	Image       string `json:"image"`
}

// GET /stores
func (sc *StoreController) List(c *gin.Context) {
	page, pageSize, offset := parsePagination(c)

	query := sc.db.Model(&models.Store{})
	if active := boolQuery(c, "active"); active != nil {
		query = query.Where("active = ?", *active)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(city) LIKE LOWER(?) OR LOWER(state) LIKE LOWER(?)",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count stores"})
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
		if column, ok := storeOrderings[field]; ok {
			order = column + " " + direction
		}
	}

	var stores []models.Store
	if err := query.Order(order).Offset(offset).Limit(pageSize).Find(&stores).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stores"})
		return
	}

	listResponse(c, total, page, stores)
}

// POST /stores
func (sc *StoreController) Create(c *gin.Context) {
	var req storePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	store := models.Store{
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		State:       req.State,
		Active:      true,
		Image:       req.Image,
	}
	if req.Active != nil {
		store.Active = *req.Active
	}

	if err := sc.db.Create(&store).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create store"})
		return
	}

	c.JSON(http.StatusCreated, store)
}

// GET /stores/:id
func (sc *StoreController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var store models.Store
	if err := sc.db.First(&store, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}

	c.JSON(http.StatusOK, store)
}

// PUT /stores/:id
func (sc *StoreController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req storePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var store models.Store
	if err := sc.db.First(&store, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}

	store.Name = req.Name
	store.Description = req.Description
	store.City = req.City
	store.State = req.State
	store.Image = req.Image
	if req.Active != nil {
		store.Active = *req.Active
	}

	if err := sc.db.Save(&store).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update store"})
		return
	}

	c.JSON(http.StatusOK, store)
}

// PATCH /stores/:id
func (sc *StoreController) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		City        *string `json:"city"`
		State       *string `json:"state"`
		Active      *bool   `json:"active"`
		Image       *string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var store models.Store
	if err := sc.db.First(&store, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
			return
		}
		store.Name = *req.Name
	}
	if req.Description != nil {
		store.Description = *req.Description
	}
	if req.City != nil {
		store.City = *req.City
	}
	if req.State != nil {
		store.State = *req.State
	}
	if req.Active != nil {
		store.Active = *req.Active
	}
	if req.Image != nil {
		store.Image = *req.Image
	}

	if err := sc.db.Save(&store).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update store"})
		return
	}

	c.JSON(http.StatusOK, store)
}

// DELETE /stores/:id
// Ads referencing the store keep existing with the reference nulled.
func (sc *StoreController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var store models.Store
	if err := sc.db.First(&store, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}

	err := sc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Ad{}).Where("store_id = ?", id).Update("store_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&store).Error
	})
	if err != nil {
		utils.LogError(err, "delete store")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete store"})
		return
	}

	utils.InvalidateAdCache(c.Request.Context())

	c.JSON(http.StatusNoContent, nil)
}
