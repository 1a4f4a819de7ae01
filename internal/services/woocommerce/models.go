package woocommerce

// Category represents a WooCommerce product category (wc/v3).
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Parent      int64  `json:"parent"`
	Description string `json:"description"`
	Image       *Image `json:"image"`
	Count       int    `json:"count"`
}

// Product represents a WooCommerce product. Prices come over the wire as
// decimal strings; parsing happens in the transformer.
type Product struct {
	ID               int64         `json:"id"`
	Name             string        `json:"name"`
	Slug             string        `json:"slug"`
	Status           string        `json:"status"`
	Type             string        `json:"type"`
	Featured         bool          `json:"featured"`
	Description      string        `json:"description"`
	ShortDescription string        `json:"short_description"`
	SKU              string        `json:"sku"`
	Price            string        `json:"price"`
	RegularPrice     string        `json:"regular_price"`
	SalePrice        string        `json:"sale_price"`
	OnSale           bool          `json:"on_sale"`
	StockQuantity    *int          `json:"stock_quantity"`
	StockStatus      string        `json:"stock_status"`
	ManageStock      bool          `json:"manage_stock"`
	Weight           string        `json:"weight"`
	Dimensions       Dimensions    `json:"dimensions"`
	Categories       []CategoryRef `json:"categories"`
	Images           []Image       `json:"images"`
	Attributes       []Attribute   `json:"attributes"`
	Variations       []int64       `json:"variations"`
}

// Variation represents one purchasable variation of a variable product.
type Variation struct {
	ID            int64                `json:"id"`
	SKU           string               `json:"sku"`
	Price         string               `json:"price"`
	RegularPrice  string               `json:"regular_price"`
	SalePrice     string               `json:"sale_price"`
	OnSale        bool                 `json:"on_sale"`
	StockQuantity *int                 `json:"stock_quantity"`
	StockStatus   string               `json:"stock_status"`
	ManageStock   bool                 `json:"manage_stock"`
	Weight        string               `json:"weight"`
	Dimensions    Dimensions           `json:"dimensions"`
	Image         *Image               `json:"image"`
	Attributes    []VariationAttribute `json:"attributes"`
}

// CategoryRef is the embedded category reference on a product.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Image struct {
	ID       int64  `json:"id"`
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Position int    `json:"position"`
}

type Attribute struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Position  int      `json:"position"`
	Visible   bool     `json:"visible"`
	Variation bool     `json:"variation"`
	Options   []string `json:"options"`
}

// VariationAttribute is one selected option on a variation.
type VariationAttribute struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Option string `json:"option"`
}

type Dimensions struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
}
