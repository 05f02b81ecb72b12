package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type ProductFilters struct {
	Active       *bool
	CategoryID   *uint
	Stock        *uint
	SalePriceLTE *decimal.Decimal
	SalePriceGTE *decimal.Decimal
	Search       string
	Ordering     string
}

// productOrderings whitelists the sortable columns; a leading "-" on the
// query value flips direction.
var productOrderings = map[string]string{
	"id":         "id",
	"name":       "name",
	"created_at": "created_at",
	"stock":      "stock",
	"cost_price": "cost_price",
	"sale_price": "sale_price",
}

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{db: db}
}

// List returns the summary projection: category plus only the image row
// flagged as main. Everything is resolved in a bounded number of queries
// regardless of page size.
func (r *ProductsRepository) List(offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.Model(&Product{})

	if filters.Active != nil {
		query = query.Where("products.active = ?", *filters.Active)
	}
	if filters.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filters.CategoryID)
	}
	if filters.Stock != nil {
		query = query.Where("products.stock = ?", *filters.Stock)
	}
	if filters.SalePriceLTE != nil {
		query = query.Where("products.sale_price <= ?", *filters.SalePriceLTE)
	}
	if filters.SalePriceGTE != nil {
		query = query.Where("products.sale_price >= ?", *filters.SalePriceGTE)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.
			Joins("LEFT JOIN categories ON categories.id = products.category_id").
			Where("LOWER(products.name) LIKE LOWER(?) OR LOWER(categories.name) LIKE LOWER(?)", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := orderClause(filters.Ordering, productOrderings, "name ASC")
	err := query.
		Preload("Category").
		Preload("Images", "is_main = ?", true).
		Order(order).
		Offset(offset).Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// GetByID returns the detail projection: category and the full image set
// ordered by insertion.
func (r *ProductsRepository) GetByID(id uint) (*Product, error) {
	var product Product
	err := r.db.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// MainImage returns the preloaded main image, nil when no image is
// flagged main.
func (p *Product) MainImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsMain {
			return &p.Images[i]
		}
	}
	return nil
}

func orderClause(requested string, allowed map[string]string, fallback string) string {
	if requested == "" {
		return fallback
	}
	direction := "ASC"
	field := requested
	if field[0] == '-' {
		direction = "DESC"
		field = field[1:]
	}
	column, ok := allowed[field]
	if !ok {
		return fallback
	}
	return column + " " + direction
}
