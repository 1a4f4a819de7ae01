package woocommerce

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"catsync/internal/models"
)

type Transformer struct{}

func NewTransformer() *Transformer {
	return &Transformer{}
}

// TransformCategory converts a WooCommerce category to the local model.
func (t *Transformer) TransformCategory(wcCategory *Category) *models.Category {
	category := &models.Category{
		Name: wcCategory.Name,
		Slug: wcCategory.Slug,
	}

	if wcCategory.Description != "" {
		category.Description = &wcCategory.Description
	}
	if wcCategory.Image != nil && wcCategory.Image.Src != "" {
		category.Image = &wcCategory.Image.Src
	}

	return category
}

// TransformProduct converts a WooCommerce product to the local model plus its
// ordered images and attributes. ProductID on the children is filled in by the
// catalog writer after the product row exists.
func (t *Transformer) TransformProduct(wcProduct *Product) (*models.Product, []models.ProductImage, []models.ProductAttribute) {
	price := parsePrice(wcProduct.Price, 0)
	regularPrice := parsePrice(wcProduct.RegularPrice, price)
	salePrice := parseOptionalPrice(wcProduct.SalePrice)

	product := &models.Product{
		WooID:       wcProduct.ID,
		Name:        wcProduct.Name,
		Slug:        wcProduct.Slug,
		Price:       price,
		SalePrice:   salePrice,
		StockStatus: wcProduct.StockStatus,
		ManageStock: wcProduct.ManageStock,
		Status:      wcProduct.Status,
		Featured:    wcProduct.Featured,
		ProductType: wcProduct.Type,
		// Computed from prices, not copied from the remote on_sale flag.
		OnSale:        salePrice != nil && *salePrice < regularPrice,
		StockQuantity: wcProduct.StockQuantity,
	}

	// A regular price at or below the current price carries no discount
	// information, so only a strictly greater one is kept.
	if regularPrice > price {
		product.RegularPrice = &regularPrice
	}

	if wcProduct.Description != "" {
		product.Description = &wcProduct.Description
	}
	if wcProduct.ShortDescription != "" {
		product.ShortDescription = &wcProduct.ShortDescription
	}
	if wcProduct.SKU != "" {
		product.SKU = &wcProduct.SKU
	}
	if wcProduct.Weight != "" {
		product.Weight = &wcProduct.Weight
	}
	if product.StockStatus == "" {
		product.StockStatus = "instock"
	}

	images := make([]models.ProductImage, len(wcProduct.Images))
	for i, img := range wcProduct.Images {
		alt := img.Alt
		if alt == "" {
			alt = wcProduct.Name
		}
		images[i] = models.ProductImage{
			Src:      img.Src,
			Alt:      alt,
			Position: i,
		}
	}

	attributes := make([]models.ProductAttribute, len(wcProduct.Attributes))
	for i, attr := range wcProduct.Attributes {
		attributes[i] = models.ProductAttribute{
			Name:      attr.Name,
			Value:     joinOptions(attr.Options),
			Position:  attr.Position,
			Visible:   attr.Visible,
			Variation: attr.Variation,
		}
	}

	return product, images, attributes
}

// TransformVariation converts a WooCommerce variation. Position is the
// zero-based index in the remote variation list.
func (t *Transformer) TransformVariation(wcVariation *Variation, position int) (*models.ProductVariation, error) {
	price := parsePrice(wcVariation.Price, 0)
	regularPrice := parsePrice(wcVariation.RegularPrice, price)

	attrs := make([]models.VariationAttribute, len(wcVariation.Attributes))
	for i, a := range wcVariation.Attributes {
		attrs[i] = models.VariationAttribute{Name: a.Name, Option: a.Option}
	}
	encoded, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode attributes for variation %d: %w", wcVariation.ID, err)
	}

	variation := &models.ProductVariation{
		WooID:     wcVariation.ID,
		Price:     price,
		SalePrice: parseOptionalPrice(wcVariation.SalePrice),
		// Copied verbatim from the remote, unlike the product flag.
		OnSale:        wcVariation.OnSale,
		StockQuantity: wcVariation.StockQuantity,
		StockStatus:   wcVariation.StockStatus,
		ManageStock:   wcVariation.ManageStock,
		Attributes:    string(encoded),
		Position:      position,
	}

	if regularPrice > price {
		variation.RegularPrice = &regularPrice
	}
	if wcVariation.SKU != "" {
		variation.SKU = &wcVariation.SKU
	}
	if wcVariation.Weight != "" {
		variation.Weight = &wcVariation.Weight
	}
	if wcVariation.Dimensions.Length != "" {
		variation.Length = &wcVariation.Dimensions.Length
	}
	if wcVariation.Dimensions.Width != "" {
		variation.Width = &wcVariation.Dimensions.Width
	}
	if wcVariation.Dimensions.Height != "" {
		variation.Height = &wcVariation.Dimensions.Height
	}
	if wcVariation.Image != nil && wcVariation.Image.Src != "" {
		variation.Image = &wcVariation.Image.Src
	}
	if variation.StockStatus == "" {
		variation.StockStatus = "instock"
	}

	return variation, nil
}

// parsePrice parses a WooCommerce decimal price string, falling back when the
// value is absent or unparseable.
func parsePrice(value string, fallback float64) float64 {
	if value == "" {
		return fallback
	}
	price, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return price
}

// parseOptionalPrice returns nil unless the remote field is a non-empty,
// parseable decimal string.
func parseOptionalPrice(value string) *float64 {
	if value == "" {
		return nil
	}
	price, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &price
}

func joinOptions(options []string) string {
	return strings.Join(options, ", ")
}
