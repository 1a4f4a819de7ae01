package catalog

import (
	"errors"
	"fmt"
	"strings"

	"catsync/internal/logger"
	"catsync/internal/models"

	"gorm.io/gorm"
)

// Writer persists mapped catalog entities. It takes the gorm handle by
// injection so tests can run it against an in-memory store.
type Writer struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewWriter(db *gorm.DB, logger *logger.Logger) *Writer {
	return &Writer{
		db:     db,
		logger: logger,
	}
}

// DB exposes the underlying handle for callers that need ad-hoc reads.
func (w *Writer) DB() *gorm.DB {
	return w.db
}

// WipeCatalog deletes every catalog table, children before parents, so the
// foreign keys never trip.
func (w *Writer) WipeCatalog() error {
	tables := []string{
		"product_categories",
		"product_tags",
		"product_images",
		"product_attributes",
		"product_variations",
		"related_products",
		"products",
		"categories",
	}

	for _, table := range tables {
		if err := w.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to wipe %s: %w", table, err)
		}
		w.logger.Debug("Wiped table %s", table)
	}

	return nil
}

func (w *Writer) CreateCategory(category *models.Category) (string, error) {
	if err := w.db.Create(category).Error; err != nil {
		return "", fmt.Errorf("failed to create category %q: %w", category.Name, err)
	}
	return category.ID, nil
}

func (w *Writer) CreateProduct(product *models.Product) (string, error) {
	if err := w.db.Create(product).Error; err != nil {
		return "", fmt.Errorf("failed to create product %q: %w", product.Name, err)
	}
	return product.ID, nil
}

func (w *Writer) CreateImages(productID string, images []models.ProductImage) error {
	if len(images) == 0 {
		return nil
	}
	for i := range images {
		images[i].ProductID = productID
	}
	if err := w.db.Create(&images).Error; err != nil {
		return fmt.Errorf("failed to create images: %w", err)
	}
	return nil
}

func (w *Writer) CreateAttributes(productID string, attributes []models.ProductAttribute) error {
	if len(attributes) == 0 {
		return nil
	}
	for i := range attributes {
		attributes[i].ProductID = productID
	}
	if err := w.db.Create(&attributes).Error; err != nil {
		return fmt.Errorf("failed to create attributes: %w", err)
	}
	return nil
}

func (w *Writer) CreateVariations(productID string, variations []models.ProductVariation) error {
	if len(variations) == 0 {
		return nil
	}
	for i := range variations {
		variations[i].ProductID = productID
	}
	if err := w.db.Create(&variations).Error; err != nil {
		return fmt.Errorf("failed to create variations: %w", err)
	}
	return nil
}

// LinkCategory creates the product-category join row. A duplicate link is
// ignored; any other failure propagates.
func (w *Writer) LinkCategory(productID, categoryID string) error {
	link := models.ProductCategory{
		ProductID:  productID,
		CategoryID: categoryID,
	}
	if err := w.db.Create(&link).Error; err != nil {
		if isDuplicateError(err) {
			return nil
		}
		return fmt.Errorf("failed to link category: %w", err)
	}
	return nil
}

// RecomputeCategoryCounts stores the number of linked products on every
// category. Must run after all links are in place.
func (w *Writer) RecomputeCategoryCounts() error {
	var categories []models.Category
	if err := w.db.Find(&categories).Error; err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	for _, category := range categories {
		var count int64
		err := w.db.Model(&models.ProductCategory{}).
			Where("category_id = ?", category.ID).
			Distinct("product_id").
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to count products for category %q: %w", category.Name, err)
		}

		err = w.db.Model(&models.Category{}).
			Where("id = ?", category.ID).
			Update("product_count", count).Error
		if err != nil {
			return fmt.Errorf("failed to update count for category %q: %w", category.Name, err)
		}
	}

	return nil
}

// isDuplicateError reports whether err is a unique-constraint violation. The
// string checks cover drivers that predate gorm's error translation.
func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
