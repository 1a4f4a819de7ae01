package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductCategory links a product to a category. The composite unique index
// backs the duplicate-link detection in the catalog writer.
type ProductCategory struct {
	ID         string `json:"id" gorm:"type:uuid;primary_key"`
	ProductID  string `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_category"`
	CategoryID string `json:"category_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_category"`
}

func (pc *ProductCategory) BeforeCreate(tx *gorm.DB) error {
	if pc.ID == "" {
		pc.ID = uuid.New().String()
	}
	return nil
}
