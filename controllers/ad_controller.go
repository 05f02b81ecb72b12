package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/enosgb/admarket-back/models"
	"github.com/enosgb/admarket-back/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdController struct {
	db   *gorm.DB
	repo *models.AdsRepository
}

func NewAdController() *AdController {
	db := utils.GetDB()
	return &AdController{db: db, repo: models.NewAdsRepository(db)}
}

type adPayload struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Slug        string     `json:"slug"`
	Active      *bool      `json:"active"`
	Published   *bool      `json:"published"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	ProductID   *uint      `json:"product_id"`
	StoreID     *uint      `json:"store_id"`
}

// generateUniqueSlug suffixes the base slug with a counter until it does
// not collide. Soft-deleted ads are included in the check since the
// unique index still sees them.
func generateUniqueSlug(db *gorm.DB, base string, excludeID uint) (string, error) {
	slug := base
	i := 1
	for {
		var count int64
		query := db.Unscoped().Model(&models.Ad{}).Where("slug = ?", slug)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		i++
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (ac *AdController) validateRefs(productID, storeID *uint) (string, bool) {
	if productID != nil {
		var count int64
		if err := ac.db.Model(&models.Product{}).Where("id = ?", *productID).Count(&count).Error; err != nil || count == 0 {
			return "product_id does not reference an existing product", false
		}
	}
	if storeID != nil {
		var count int64
		if err := ac.db.Model(&models.Store{}).Where("id = ?", *storeID).Count(&count).Error; err != nil || count == 0 {
			return "store_id does not reference an existing store", false
		}
	}
	return "", true
}

func (ac *AdController) adFiltersFromQuery(c *gin.Context, publicOnly bool) models.AdFilters {
	filters := models.AdFilters{
		StoreID:             uintQuery(c, "store"),
		ProductID:           uintQuery(c, "product"),
		ProductSalePriceLTE: decimalQuery(c, "product_sale_price__lte"),
		ProductSalePriceGTE: decimalQuery(c, "product_sale_price__gte"),
		Search:              c.Query("search"),
		Ordering:            c.Query("ordering"),
		PublicOnly:          publicOnly,
	}
	if !publicOnly {
		filters.Active = boolQuery(c, "active")
		filters.Published = boolQuery(c, "published")
	}
	return filters
}

func (ac *AdController) list(c *gin.Context, publicOnly bool) {
	page, pageSize, offset := parsePagination(c)

	ads, total, err := ac.repo.List(offset, pageSize, ac.adFiltersFromQuery(c, publicOnly))
	if err != nil {
		utils.LogError(err, "list ads")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ads"})
		return
	}

	results := make([]adListPayload, 0, len(ads))
	for i := range ads {
		results = append(results, serializeAdList(&ads[i]))
	}

	listResponse(c, total, page, results)
}

// GET /ads
func (ac *AdController) List(c *gin.Context) {
	ac.list(c, false)
}

// GET /ads/public
func (ac *AdController) PublicList(c *gin.Context) {
	ac.list(c, true)
}

// POST /ads
func (ac *AdController) Create(c *gin.Context) {
	var req adPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if msg, ok := ac.validateRefs(req.ProductID, req.StoreID); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	base := req.Slug
	if base == "" {
		base = utils.Slugify(req.Title)
	}
	slug, err := generateUniqueSlug(ac.db, base, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slug"})
		return
	}

	ad := models.Ad{
		Title:       req.Title,
		Description: req.Description,
		Slug:        slug,
		Active:      true,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ProductID:   req.ProductID,
		StoreID:     req.StoreID,
	}
	if req.Active != nil {
		ad.Active = *req.Active
	}
	if req.Published != nil {
		ad.Published = *req.Published
	}

	if err := ac.db.Create(&ad).Error; err != nil {
		if isDuplicateKeyErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Slug already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ad"})
		return
	}

	utils.InvalidateAdCache(c.Request.Context())

	created, err := ac.repo.GetByID(ad.ID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ad"})
		return
	}
	c.JSON(http.StatusCreated, serializeAdDetail(created, isAdminRequest(c)))
}

// GET /ads/:id
func (ac *AdController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ad, err := ac.repo.GetByID(id, false)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ad not found"})
		return
	}

	c.JSON(http.StatusOK, serializeAdDetail(ad, isAdminRequest(c)))
}

// GET /ads/public/:id
// Inactive or unpublished ads are indistinguishable from missing ones.
func (ac *AdController) PublicGet(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ad, err := ac.repo.GetByID(id, true)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ad not found"})
		return
	}

	c.JSON(http.StatusOK, serializeAdDetail(ad, false))
}

// PUT /ads/:id
func (ac *AdController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req adPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var ad models.Ad
	if err := ac.db.First(&ad, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ad not found"})
		return
	}

	if msg, ok := ac.validateRefs(req.ProductID, req.StoreID); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if req.Slug != "" && req.Slug != ad.Slug {
		slug, err := generateUniqueSlug(ac.db, req.Slug, ad.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slug"})
			return
		}
		ad.Slug = slug
	}

	ad.Title = req.Title
	ad.Description = req.Description
	ad.StartDate = req.StartDate
	ad.EndDate = req.EndDate
	ad.ProductID = req.ProductID
	ad.StoreID = req.StoreID
	if req.Active != nil {
		ad.Active = *req.Active
	}
	if req.Published != nil {
		ad.Published = *req.Published
	}

	if err := ac.db.Save(&ad).Error; err != nil {
		if isDuplicateKeyErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Slug already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ad"})
		return
	}

	utils.InvalidateAdCache(c.Request.Context())

	updated, err := ac.repo.GetByID(ad.ID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ad"})
		return
	}
	c.JSON(http.StatusOK, serializeAdDetail(updated, isAdminRequest(c)))
}

// PATCH /ads/:id
func (ac *AdController) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Slug        *string    `json:"slug"`
		Active      *bool      `json:"active"`
		Published   *bool      `json:"published"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
		ProductID   *uint      `json:"product_id"`
		StoreID     *uint      `json:"store_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var ad models.Ad
	if err := ac.db.First(&ad, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ad not found"})
		return
	}

	if msg, ok := ac.validateRefs(req.ProductID, req.StoreID); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title cannot be empty"})
			return
		}
		ad.Title = *req.Title
	}
	if req.Description != nil {
		ad.Description = *req.Description
	}
	if req.Slug != nil && *req.Slug != ad.Slug {
		slug, err := generateUniqueSlug(ac.db, *req.Slug, ad.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slug"})
			return
		}
		ad.Slug = slug
	}
	if req.Active != nil {
		ad.Active = *req.Active
	}
	if req.Published != nil {
		ad.Published = *req.Published
	}
	if req.StartDate != nil {
		ad.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		ad.EndDate = req.EndDate
	}
	if req.ProductID != nil {
		ad.ProductID = req.ProductID
	}
	if req.StoreID != nil {
		ad.StoreID = req.StoreID
	}

	if err := ac.db.Save(&ad).Error; err != nil {
		if isDuplicateKeyErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Slug already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ad"})
		return
	}

	utils.InvalidateAdCache(c.Request.Context())

	updated, err := ac.repo.GetByID(ad.ID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ad"})
		return
	}
	c.JSON(http.StatusOK, serializeAdDetail(updated, isAdminRequest(c)))
}

// DELETE /ads/:id
func (ac *AdController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var ad models.Ad
	if err := ac.db.First(&ad, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ad not found"})
		return
	}

	if err := ac.db.Delete(&ad).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ad"})
		return
	}

	utils.InvalidateAdCache(c.Request.Context())

	c.JSON(http.StatusNoContent, nil)
}
