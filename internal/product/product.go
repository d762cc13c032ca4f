// Package product defines the internal product-summary value type shared by
// the client-side stores.
//
// The backend exposes two structurally overlapping product shapes: the full
// catalog/favorites snapshot (shopapi.Product) and the slim autocomplete
// suggestion (shopapi.Suggestion). Rather than letting consumers duck-type
// across both, everything past the API boundary works with a single Summary
// value produced by the adapter functions here.
package product

// Summary is the one product shape the stores and UI operate on. It carries
// exactly the fields the comparison and display surfaces need.
type Summary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	SalePrice     float64 `json:"salePrice,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
	ReviewCount   int     `json:"reviewCount,omitempty"`
	StockQuantity int     `json:"stockQuantity,omitempty"`
	Brand         string  `json:"brand,omitempty"`
	Category      string  `json:"category,omitempty"`
}

// EffectivePrice returns the sale price when one is set, the list price
// otherwise.
func (s Summary) EffectivePrice() float64 {
	if s.SalePrice > 0 && s.SalePrice < s.Price {
		return s.SalePrice
	}
	return s.Price
}

// OnSale reports whether the product currently has a reduced price.
func (s Summary) OnSale() bool {
	return s.SalePrice > 0 && s.SalePrice < s.Price
}
