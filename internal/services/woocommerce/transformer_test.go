package woocommerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestTransformProduct_RegularPriceOnlyKeptWhenGreater(t *testing.T) {
	tr := NewTransformer()

	// Equal regular price carries no discount information.
	product, _, _ := tr.TransformProduct(&Product{
		ID:           1,
		Name:         "Mug",
		Price:        "100",
		RegularPrice: "100",
	})
	assert.Equal(t, 100.0, product.Price)
	assert.Nil(t, product.RegularPrice)

	// Greater regular price is kept.
	product, _, _ = tr.TransformProduct(&Product{
		ID:           2,
		Name:         "Mug",
		Price:        "80",
		RegularPrice: "100",
	})
	assert.Equal(t, 80.0, product.Price)
	require.NotNil(t, product.RegularPrice)
	assert.Equal(t, 100.0, *product.RegularPrice)

	// Lower regular price is dropped too.
	product, _, _ = tr.TransformProduct(&Product{
		ID:           3,
		Name:         "Mug",
		Price:        "100",
		RegularPrice: "90",
	})
	assert.Nil(t, product.RegularPrice)
}

func TestTransformProduct_PriceFallbacks(t *testing.T) {
	tr := NewTransformer()

	product, _, _ := tr.TransformProduct(&Product{ID: 1, Name: "Empty"})
	assert.Equal(t, 0.0, product.Price)
	assert.Nil(t, product.RegularPrice)
	assert.Nil(t, product.SalePrice)

	// Unparseable values fall back the same way as absent ones.
	product, _, _ = tr.TransformProduct(&Product{
		ID:           2,
		Name:         "Garbled",
		Price:        "not-a-price",
		RegularPrice: "also-bad",
		SalePrice:    "nope",
	})
	assert.Equal(t, 0.0, product.Price)
	assert.Nil(t, product.RegularPrice)
	assert.Nil(t, product.SalePrice)
}

func TestTransformProduct_OnSaleIsComputed(t *testing.T) {
	tr := NewTransformer()

	product, _, _ := tr.TransformProduct(&Product{
		ID:           1,
		Name:         "Keyboard",
		Price:        "80",
		RegularPrice: "100",
		SalePrice:    "80",
		// The remote flag disagrees on purpose; it must be ignored.
		OnSale: false,
	})
	require.NotNil(t, product.SalePrice)
	assert.Equal(t, 80.0, *product.SalePrice)
	require.NotNil(t, product.RegularPrice)
	assert.Equal(t, 100.0, *product.RegularPrice)
	assert.True(t, product.OnSale)

	// Empty sale price means not on sale, whatever the remote flag says.
	product, _, _ = tr.TransformProduct(&Product{
		ID:           2,
		Name:         "Keyboard",
		Price:        "100",
		RegularPrice: "100",
		SalePrice:    "",
		OnSale:       true,
	})
	assert.Nil(t, product.SalePrice)
	assert.False(t, product.OnSale)
}

func TestTransformProduct_StockStatusDefault(t *testing.T) {
	tr := NewTransformer()

	product, _, _ := tr.TransformProduct(&Product{ID: 1, Name: "Mug", StockQuantity: intPtr(3)})
	assert.Equal(t, "instock", product.StockStatus)
	require.NotNil(t, product.StockQuantity)
	assert.Equal(t, 3, *product.StockQuantity)

	product, _, _ = tr.TransformProduct(&Product{ID: 2, Name: "Mug", StockStatus: "outofstock"})
	assert.Equal(t, "outofstock", product.StockStatus)
}

func TestTransformProduct_Images(t *testing.T) {
	tr := NewTransformer()

	_, images, _ := tr.TransformProduct(&Product{
		ID:   1,
		Name: "Teapot",
		Images: []Image{
			{Src: "https://cdn.example.com/a.jpg", Alt: "front"},
			{Src: "https://cdn.example.com/b.jpg"},
		},
	})
	require.Len(t, images, 2)
	assert.Equal(t, 0, images[0].Position)
	assert.Equal(t, "front", images[0].Alt)
	assert.Equal(t, 1, images[1].Position)
	// Empty alt falls back to the product name.
	assert.Equal(t, "Teapot", images[1].Alt)
}

func TestTransformProduct_AttributeOptionsJoined(t *testing.T) {
	tr := NewTransformer()

	_, _, attributes := tr.TransformProduct(&Product{
		ID:   1,
		Name: "Shirt",
		Attributes: []Attribute{
			{Name: "Size", Position: 0, Visible: true, Variation: true, Options: []string{"S", "M", "L"}},
			{Name: "Material", Position: 1, Options: []string{"Cotton"}},
		},
	})
	require.Len(t, attributes, 2)
	assert.Equal(t, "S, M, L", attributes[0].Value)
	assert.True(t, attributes[0].Variation)
	assert.Equal(t, "Cotton", attributes[1].Value)
	assert.False(t, attributes[1].Variation)
}

func TestTransformVariation_OnSaleCopiedVerbatim(t *testing.T) {
	tr := NewTransformer()

	// Prices say "not on sale" but the remote flag wins for variations.
	variation, err := tr.TransformVariation(&Variation{
		ID:           10,
		Price:        "100",
		RegularPrice: "100",
		OnSale:       true,
	}, 0)
	require.NoError(t, err)
	assert.True(t, variation.OnSale)

	variation, err = tr.TransformVariation(&Variation{
		ID:           11,
		Price:        "50",
		RegularPrice: "100",
		SalePrice:    "50",
		OnSale:       false,
	}, 1)
	require.NoError(t, err)
	assert.False(t, variation.OnSale)
	assert.Equal(t, 1, variation.Position)
}

func TestTransformVariation_AttributesRoundTrip(t *testing.T) {
	tr := NewTransformer()

	variation, err := tr.TransformVariation(&Variation{
		ID:    12,
		Price: "25",
		Attributes: []VariationAttribute{
			{Name: "Color", Option: "Blue"},
			{Name: "Size", Option: "M"},
		},
	}, 0)
	require.NoError(t, err)

	decoded, err := variation.DecodeAttributes()
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, "Color", decoded[0].Name)
	assert.Equal(t, "Blue", decoded[0].Option)
	assert.Equal(t, "Size", decoded[1].Name)
	assert.Equal(t, "M", decoded[1].Option)
}

func TestTransformVariation_Dimensions(t *testing.T) {
	tr := NewTransformer()

	variation, err := tr.TransformVariation(&Variation{
		ID:         13,
		Price:      "10",
		Weight:     "0.5",
		Dimensions: Dimensions{Length: "10", Width: "20", Height: "5"},
		Image:      &Image{Src: "https://cdn.example.com/v.jpg"},
	}, 0)
	require.NoError(t, err)
	require.NotNil(t, variation.Length)
	assert.Equal(t, "10", *variation.Length)
	require.NotNil(t, variation.Width)
	assert.Equal(t, "20", *variation.Width)
	require.NotNil(t, variation.Height)
	assert.Equal(t, "5", *variation.Height)
	require.NotNil(t, variation.Image)
	assert.Equal(t, "https://cdn.example.com/v.jpg", *variation.Image)
	assert.Equal(t, "instock", variation.StockStatus)
}

func TestTransformCategory(t *testing.T) {
	tr := NewTransformer()

	category := tr.TransformCategory(&Category{
		ID:          5,
		Name:        "Keyboards",
		Slug:        "keyboards",
		Description: "Clacky things",
		Image:       &Image{Src: "https://cdn.example.com/kb.jpg"},
	})
	assert.Equal(t, "Keyboards", category.Name)
	assert.Equal(t, "keyboards", category.Slug)
	require.NotNil(t, category.Description)
	assert.Equal(t, "Clacky things", *category.Description)
	require.NotNil(t, category.Image)

	bare := tr.TransformCategory(&Category{ID: 6, Name: "Misc", Slug: "misc"})
	assert.Nil(t, bare.Description)
	assert.Nil(t, bare.Image)
}
