package product

import (
	"testing"

	"github.com/tqc04/basket/internal/shopapi"
)

func TestFromCatalog_MapsAllCompareFields(t *testing.T) {
	p := shopapi.Product{
		ID:            "p-1",
		Name:          "Mechanical Keyboard",
		Description:   "Tenkeyless, hot-swappable",
		Price:         129.99,
		SalePrice:     99.99,
		Rating:        4.5,
		ReviewCount:   210,
		StockQuantity: 14,
		Brand:         "Keychron",
		Category:      "Peripherals",
	}

	s := FromCatalog(p)
	if s.ID != "p-1" || s.Name != "Mechanical Keyboard" {
		t.Fatalf("identity = %q/%q, want p-1/Mechanical Keyboard", s.ID, s.Name)
	}
	if s.Price != 129.99 || s.SalePrice != 99.99 {
		t.Fatalf("prices = %v/%v, want 129.99/99.99", s.Price, s.SalePrice)
	}
	if s.Rating != 4.5 || s.ReviewCount != 210 || s.StockQuantity != 14 {
		t.Fatalf("stats = %v/%d/%d, want 4.5/210/14", s.Rating, s.ReviewCount, s.StockQuantity)
	}
	if s.Brand != "Keychron" || s.Category != "Peripherals" {
		t.Fatalf("brand/category = %q/%q", s.Brand, s.Category)
	}
}

func TestFromSuggestion_MissingFieldsStayZero(t *testing.T) {
	s := FromSuggestion(shopapi.Suggestion{ID: "p-2", Name: "Mouse", Price: 25})
	if s.ID != "p-2" || s.Name != "Mouse" || s.Price != 25 {
		t.Fatalf("summary = %#v, want id/name/price mapped", s)
	}
	if s.Rating != 0 || s.ReviewCount != 0 || s.StockQuantity != 0 {
		t.Fatalf("summary = %#v, want zero stats", s)
	}
}

func TestEffectivePrice(t *testing.T) {
	cases := []struct {
		name string
		in   Summary
		want float64
		sale bool
	}{
		{"no sale price", Summary{Price: 100}, 100, false},
		{"sale below list", Summary{Price: 100, SalePrice: 80}, 80, true},
		{"sale equal to list", Summary{Price: 100, SalePrice: 100}, 100, false},
		{"sale above list", Summary{Price: 100, SalePrice: 120}, 100, false},
	}
	for _, tc := range cases {
		if got := tc.in.EffectivePrice(); got != tc.want {
			t.Fatalf("%s: EffectivePrice() = %v, want %v", tc.name, got, tc.want)
		}
		if got := tc.in.OnSale(); got != tc.sale {
			t.Fatalf("%s: OnSale() = %v, want %v", tc.name, got, tc.sale)
		}
	}
}
