package product

import "github.com/tqc04/basket/internal/shopapi"

// FromCatalog adapts a full catalog/favorites snapshot.
func FromCatalog(p shopapi.Product) Summary {
	return Summary{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		SalePrice:     p.SalePrice,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		StockQuantity: p.StockQuantity,
		Brand:         p.Brand,
		Category:      p.Category,
	}
}

// FromSuggestion adapts an autocomplete suggestion. Fields the slim shape
// does not carry stay zero.
func FromSuggestion(s shopapi.Suggestion) Summary {
	return Summary{
		ID:        s.ID,
		Name:      s.Name,
		Price:     s.Price,
		SalePrice: s.SalePrice,
		Brand:     s.Brand,
		Category:  s.Category,
	}
}
