package commerce

import "encoding/json"

// StorefrontVariant is one purchasable size/color combination.
type StorefrontVariant struct {
	ID      string  `json:"id"`
	Size    string  `json:"size"`
	SizeID  string  `json:"size_id"`
	Color   string  `json:"color"`
	ColorID string  `json:"color_id"`
	Price   float64 `json:"price"`
}

// StorefrontProduct is a catalog product with its variants.
type StorefrontProduct struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Brand        string              `json:"brand"`
	Description  string              `json:"description"`
	CategoryName string              `json:"category_name"`
	Variants     []StorefrontVariant `json:"variants"`
}

// StorefrontCatalog is the public catalog.
type StorefrontCatalog struct {
	Products []StorefrontProduct `json:"products"`
}

// MapStorefront validates and decodes the storefront response.
// An empty products array is a valid, empty catalog.
func MapStorefront(raw json.RawMessage) (*StorefrontCatalog, error) {
	var catalog StorefrontCatalog
	if err := decode(storefrontSchema, raw, &catalog); err != nil {
		return nil, err
	}
	if catalog.Products == nil {
		catalog.Products = []StorefrontProduct{}
	}
	return &catalog, nil
}
