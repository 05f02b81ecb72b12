package controllers

import (
	"time"

	"github.com/enosgb/admarket-back/models"

	"github.com/shopspring/decimal"
)

// View models. Staff payloads embed the public ones and add cost_price,
// so field visibility is a type distinction rather than a runtime strip:
// a non-staff payload has no cost_price field to leak.

type categoryRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type imagePayload struct {
	ID     uint   `json:"id"`
	Image  string `json:"image"`
	IsMain bool   `json:"is_main"`
}

type productBase struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Active      bool            `json:"active"`
	Stock       uint            `json:"stock"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Image       string          `json:"image"`
	Category    *categoryRef    `json:"category"`
}

type productListPayload struct {
	productBase
	MainImage *string `json:"main_image"`
}

type productListStaffPayload struct {
	productListPayload
	CostPrice decimal.Decimal `json:"cost_price"`
}

type productDetailPayload struct {
	productBase
	Images    []imagePayload `json:"images"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type productDetailStaffPayload struct {
	productDetailPayload
	CostPrice decimal.Decimal `json:"cost_price"`
}

func buildCategoryRef(p *models.Product) *categoryRef {
	if p.CategoryID == 0 || p.Category.ID == 0 {
		return nil
	}
	return &categoryRef{ID: p.Category.ID, Name: p.Category.Name, Image: p.Category.Image}
}

func buildProductBase(p *models.Product) productBase {
	return productBase{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Active:      p.Active,
		Stock:       p.Stock,
		SalePrice:   p.SalePrice,
		Image:       p.Image,
		Category:    buildCategoryRef(p),
	}
}

func mainImageURL(p *models.Product) *string {
	if img := p.MainImage(); img != nil {
		url := img.Image
		return &url
	}
	return nil
}

func serializeProductList(p *models.Product, staff bool) interface{} {
	payload := productListPayload{
		productBase: buildProductBase(p),
		MainImage:   mainImageURL(p),
	}
	if staff {
		return productListStaffPayload{productListPayload: payload, CostPrice: p.CostPrice}
	}
	return payload
}

func serializeProductDetail(p *models.Product, staff bool) interface{} {
	images := make([]imagePayload, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, imagePayload{ID: img.ID, Image: img.Image, IsMain: img.IsMain})
	}
	payload := productDetailPayload{
		productBase: buildProductBase(p),
		Images:      images,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if staff {
		return productDetailStaffPayload{productDetailPayload: payload, CostPrice: p.CostPrice}
	}
	return payload
}

// Ads

type adProductRef struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"sale_price"`
	MainImage *string         `json:"main_image"`
}

type adListPayload struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Slug        string        `json:"slug"`
	Active      bool          `json:"active"`
	Published   bool          `json:"published"`
	StartDate   *time.Time    `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
	Store       *uint         `json:"store"`
	Product     *adProductRef `json:"product"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type adDetailPayload struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Slug        string      `json:"slug"`
	Active      bool        `json:"active"`
	Published   bool        `json:"published"`
	StartDate   *time.Time  `json:"start_date"`
	EndDate     *time.Time  `json:"end_date"`
	Store       *uint       `json:"store"`
	Product     interface{} `json:"product"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func serializeAdList(ad *models.Ad) adListPayload {
	payload := adListPayload{
		ID:          ad.ID,
		Title:       ad.Title,
		Description: ad.Description,
		Slug:        ad.Slug,
		Active:      ad.Active,
		Published:   ad.Published,
		StartDate:   ad.StartDate,
		EndDate:     ad.EndDate,
		Store:       ad.StoreID,
		CreatedAt:   ad.CreatedAt,
		UpdatedAt:   ad.UpdatedAt,
	}
	if ad.Product != nil {
		payload.Product = &adProductRef{
			ID:        ad.Product.ID,
			Name:      ad.Product.Name,
			SalePrice: ad.Product.SalePrice,
			MainImage: mainImageURL(ad.Product),
		}
	}
	return payload
}

func serializeAdDetail(ad *models.Ad, staff bool) adDetailPayload {
	payload := adDetailPayload{
		ID:          ad.ID,
		Title:       ad.Title,
		Description: ad.Description,
		Slug:        ad.Slug,
		Active:      ad.Active,
		Published:   ad.Published,
		StartDate:   ad.StartDate,
		EndDate:     ad.EndDate,
		Store:       ad.StoreID,
		CreatedAt:   ad.CreatedAt,
		UpdatedAt:   ad.UpdatedAt,
	}
	if ad.Product != nil {
		payload.Product = serializeProductDetail(ad.Product, staff)
	}
	return payload
}

// Favorites

type favoritePayload struct {
	ID        uint        `json:"id"`
	UserID    uint        `json:"user_id"`
	Product   interface{} `json:"product"`
	CreatedAt time.Time   `json:"created_at"`
}

func serializeFavorite(f *models.Favorite, staff bool) favoritePayload {
	payload := favoritePayload{
		ID:        f.ID,
		UserID:    f.UserID,
		CreatedAt: f.CreatedAt,
	}
	if f.Product.ID != 0 {
		payload.Product = serializeProductList(&f.Product, staff)
	}
	return payload
}
