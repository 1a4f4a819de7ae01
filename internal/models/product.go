package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID               string   `json:"id" gorm:"type:uuid;primary_key"`
	WooID            int64    `json:"woo_id" gorm:"index"`
	Name             string   `json:"name" gorm:"not null"`
	Slug             string   `json:"slug" gorm:"not null"`
	Description      *string  `json:"description"`
	ShortDescription *string  `json:"short_description"`
	SKU              *string  `json:"sku"`
	Price            float64  `json:"price" gorm:"type:decimal(10,2)"`
	RegularPrice     *float64 `json:"regular_price" gorm:"type:decimal(10,2)"`
	SalePrice        *float64 `json:"sale_price" gorm:"type:decimal(10,2)"`
	OnSale           bool     `json:"on_sale" gorm:"default:false"`
	StockQuantity    *int     `json:"stock_quantity"`
	StockStatus      string   `json:"stock_status" gorm:"default:instock"`
	ManageStock      bool     `json:"manage_stock" gorm:"default:false"`
	Weight           *string  `json:"weight"`
	Status           string   `json:"status" gorm:"default:publish"`
	Featured         bool     `json:"featured" gorm:"default:false"`
	ProductType      string   `json:"product_type" gorm:"default:simple"`

	Images     []ProductImage     `json:"images,omitempty" gorm:"foreignKey:ProductID"`
	Attributes []ProductAttribute `json:"attributes,omitempty" gorm:"foreignKey:ProductID"`
	Variations []ProductVariation `json:"variations,omitempty" gorm:"foreignKey:ProductID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type ProductImage struct {
	ID        string    `json:"id" gorm:"type:uuid;primary_key"`
	ProductID string    `json:"product_id" gorm:"type:uuid;index;not null"`
	Src       string    `json:"src" gorm:"not null"`
	Alt       string    `json:"alt"`
	Position  int       `json:"position" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

type ProductAttribute struct {
	ID        string `json:"id" gorm:"type:uuid;primary_key"`
	ProductID string `json:"product_id" gorm:"type:uuid;index;not null"`
	Name      string `json:"name" gorm:"not null"`
	Value     string `json:"value"`
	Position  int    `json:"position" gorm:"default:0"`
	Visible   bool   `json:"visible" gorm:"default:true"`
	Variation bool   `json:"variation" gorm:"default:false"`
}

func (a *ProductAttribute) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

type ProductTag struct {
	ID        string `json:"id" gorm:"type:uuid;primary_key"`
	ProductID string `json:"product_id" gorm:"type:uuid;index;not null"`
	Name      string `json:"name" gorm:"not null"`
	Slug      string `json:"slug"`
}

func (t *ProductTag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

type RelatedProduct struct {
	ID        string `json:"id" gorm:"type:uuid;primary_key"`
	ProductID string `json:"product_id" gorm:"type:uuid;index;not null"`
	RelatedID string `json:"related_id" gorm:"type:uuid;not null"`
}

func (r *RelatedProduct) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
