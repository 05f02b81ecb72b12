package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrAdNotFound = errors.New("ad not found")

type AdFilters struct {
	Active              *bool
	Published           *bool
	StoreID             *uint
	ProductID           *uint
	ProductSalePriceLTE *decimal.Decimal
	ProductSalePriceGTE *decimal.Decimal
	Search              string
	Ordering            string

	// PublicOnly restricts results to active AND published rows. A row
	// failing the predicate is indistinguishable from a missing one.
	PublicOnly bool
}

var adOrderings = map[string]string{
	"id":         "ads.id",
	"title":      "ads.title",
	"active":     "ads.active",
	"published":  "ads.published",
	"store":      "ads.store_id",
	"product":    "ads.product_id",
	"created_at": "ads.created_at",
}

type AdsRepository struct {
	db *gorm.DB
}

func NewAdsRepository(db *gorm.DB) *AdsRepository {
	return &AdsRepository{db: db}
}

// List resolves the three-level listing projection (ad, store, product,
// product main image) in one bounded pass of queries.
func (r *AdsRepository) List(offset, limit int, filters AdFilters) ([]Ad, int64, error) {
	var ads []Ad
	var total int64

	query := r.db.Model(&Ad{})

	if filters.PublicOnly {
		query = query.Where("ads.active = ? AND ads.published = ?", true, true)
	}
	if filters.Active != nil {
		query = query.Where("ads.active = ?", *filters.Active)
	}
	if filters.Published != nil {
		query = query.Where("ads.published = ?", *filters.Published)
	}
	if filters.StoreID != nil {
		query = query.Where("ads.store_id = ?", *filters.StoreID)
	}
	if filters.ProductID != nil {
		query = query.Where("ads.product_id = ?", *filters.ProductID)
	}

	// Price bounds apply to the linked product; the inner join drops ads
	// without one, which is the documented behavior for these filters.
	if filters.ProductSalePriceLTE != nil || filters.ProductSalePriceGTE != nil {
		query = query.Joins("JOIN products ON products.id = ads.product_id AND products.deleted_at IS NULL")
		if filters.ProductSalePriceLTE != nil {
			query = query.Where("products.sale_price <= ?", *filters.ProductSalePriceLTE)
		}
		if filters.ProductSalePriceGTE != nil {
			query = query.Where("products.sale_price >= ?", *filters.ProductSalePriceGTE)
		}
	}

	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("LOWER(ads.title) LIKE LOWER(?) OR LOWER(ads.description) LIKE LOWER(?)", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := orderClause(filters.Ordering, adOrderings, "ads.created_at DESC")
	err := query.
		Preload("Store").
		Preload("Product").
		Preload("Product.Images", "is_main = ?", true).
		Order(order).
		Offset(offset).Limit(limit).
		Find(&ads).Error
	if err != nil {
		return nil, 0, err
	}

	return ads, total, nil
}

// GetByID returns the detail projection with the product's full ordered
// image set. With publicOnly set, inactive or unpublished ads come back
// as not found.
func (r *AdsRepository) GetByID(id uint, publicOnly bool) (*Ad, error) {
	query := r.db.
		Preload("Store").
		Preload("Product").
		Preload("Product.Category").
		Preload("Product.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		})

	if publicOnly {
		query = query.Where("ads.active = ? AND ads.published = ?", true, true)
	}

	var ad Ad
	if err := query.First(&ad, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	return &ad, nil
}
