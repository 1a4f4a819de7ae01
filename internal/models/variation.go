package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductVariation struct {
	ID            string   `json:"id" gorm:"type:uuid;primary_key"`
	ProductID     string   `json:"product_id" gorm:"type:uuid;index;not null"`
	WooID         int64    `json:"woo_id" gorm:"index"`
	SKU           *string  `json:"sku"`
	Price         float64  `json:"price" gorm:"type:decimal(10,2)"`
	RegularPrice  *float64 `json:"regular_price" gorm:"type:decimal(10,2)"`
	SalePrice     *float64 `json:"sale_price" gorm:"type:decimal(10,2)"`
	OnSale        bool     `json:"on_sale" gorm:"default:false"`
	StockQuantity *int     `json:"stock_quantity"`
	StockStatus   string   `json:"stock_status" gorm:"default:instock"`
	ManageStock   bool     `json:"manage_stock" gorm:"default:false"`
	Weight        *string  `json:"weight"`
	Length        *string  `json:"length"`
	Width         *string  `json:"width"`
	Height        *string  `json:"height"`
	Image         *string  `json:"image"`
	// Attributes holds the selected (name, option) pairs as a JSON array.
	Attributes string    `json:"attributes" gorm:"type:text"`
	Position   int       `json:"position" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at"`
}

func (v *ProductVariation) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

// VariationAttribute is one selected option of a variation, as stored in
// ProductVariation.Attributes.
type VariationAttribute struct {
	Name   string `json:"name"`
	Option string `json:"option"`
}

func (v *ProductVariation) DecodeAttributes() ([]VariationAttribute, error) {
	if v.Attributes == "" {
		return nil, nil
	}
	var attrs []VariationAttribute
	if err := json.Unmarshal([]byte(v.Attributes), &attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}
