package mockshop

import (
	"net/http"
	"strings"
	"testing"

	"github.com/tqc04/basket/internal/shopapi"
)

// findByName locates a seeded product for tests that need a known stock or
// activity state.
func findByName(t *testing.T, s *Store, name string) shopapi.Product {
	t.Helper()
	page := s.ListProducts("", 0, 100)
	for _, p := range page.Content {
		if p.Name == name {
			return p
		}
	}
	// Inactive products are hidden from listings; scan the raw catalog.
	for _, id := range s.ProductIDs() {
		s.mu.Lock()
		p := s.snapshotLocked(id)
		s.mu.Unlock()
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("seed product %q not found", name)
	return shopapi.Product{}
}

func TestStore_AddToCartComputesTotals(t *testing.T) {
	s := NewStore()
	stand := findByName(t, s, "Laptop Stand")

	cart, err := s.AddToCart("u1", stand.ID, 2)
	if err != nil {
		t.Fatalf("AddToCart() error: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("items = %+v, want one line with quantity 2", cart.Items)
	}
	wantSubtotal := round2(stand.Price * 2)
	if cart.Subtotal != wantSubtotal {
		t.Fatalf("Subtotal = %v, want %v", cart.Subtotal, wantSubtotal)
	}
	if cart.Tax != round2(wantSubtotal*taxRate) {
		t.Fatalf("Tax = %v, want %v", cart.Tax, round2(wantSubtotal*taxRate))
	}
	if wantSubtotal >= freeShippingAbove && cart.Shipping != 0 {
		t.Fatalf("Shipping = %v above free threshold, want 0", cart.Shipping)
	}
}

func TestStore_AddToCartUsesSalePrice(t *testing.T) {
	s := NewStore()
	sleeve := findByName(t, s, "Laptop Sleeve 14in")

	cart, err := s.AddToCart("u1", sleeve.ID, 1)
	if err != nil {
		t.Fatalf("AddToCart() error: %v", err)
	}
	if cart.Items[0].Price != sleeve.SalePrice {
		t.Fatalf("line price = %v, want sale price %v", cart.Items[0].Price, sleeve.SalePrice)
	}
}

func TestStore_AddToCartRejections(t *testing.T) {
	s := NewStore()
	mouse := findByName(t, s, "Wireless Mouse")    // stock 0
	webcam := findByName(t, s, "Retired Webcam")   // inactive
	monitor := findByName(t, s, "Monitor 27in")    // stock 7

	cases := []struct {
		name       string
		productID  string
		quantity   int
		wantStatus int
		wantSubstr string
	}{
		{"out of stock", mouse.ID, 1, http.StatusBadRequest, "out of stock"},
		{"not active", webcam.ID, 1, http.StatusBadRequest, "not active"},
		{"exceeds stock", monitor.ID, 8, http.StatusBadRequest, "exceeds available stock"},
		{"unknown product", "nope", 1, http.StatusNotFound, "product not found"},
		{"zero quantity", monitor.ID, 0, http.StatusBadRequest, "quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.AddToCart("u1", tc.productID, tc.quantity)
			if err == nil {
				t.Fatal("AddToCart() succeeded, want rejection")
			}
			storeErr, ok := err.(*Error)
			if !ok {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if storeErr.Status != tc.wantStatus {
				t.Fatalf("status = %d, want %d", storeErr.Status, tc.wantStatus)
			}
			if !strings.Contains(strings.ToLower(storeErr.Message), tc.wantSubstr) {
				t.Fatalf("message = %q, want substring %q", storeErr.Message, tc.wantSubstr)
			}
		})
	}
}

func TestStore_UpdateQuantityZeroRemovesLine(t *testing.T) {
	s := NewStore()
	stand := findByName(t, s, "Laptop Stand")
	if _, err := s.AddToCart("u1", stand.ID, 1); err != nil {
		t.Fatalf("AddToCart() error: %v", err)
	}

	if err := s.UpdateQuantity("u1", stand.ID, 0); err != nil {
		t.Fatalf("UpdateQuantity() error: %v", err)
	}
	if cart := s.Cart("u1"); len(cart.Items) != 0 {
		t.Fatalf("items = %+v after zero update, want empty", cart.Items)
	}
}

func TestStore_MergeCartsSumsSharedLines(t *testing.T) {
	s := NewStore()
	stand := findByName(t, s, "Laptop Stand")
	mat := findByName(t, s, "Desk Mat")

	if _, err := s.AddToCart("guest-1", stand.ID, 2); err != nil {
		t.Fatalf("guest add: %v", err)
	}
	if _, err := s.AddToCart("guest-1", mat.ID, 1); err != nil {
		t.Fatalf("guest add: %v", err)
	}
	if _, err := s.AddToCart("user-1", stand.ID, 1); err != nil {
		t.Fatalf("user add: %v", err)
	}

	merged := s.MergeCarts("user-1", "guest-1")
	if len(merged.Items) != 2 {
		t.Fatalf("merged items = %d, want 2", len(merged.Items))
	}
	for _, item := range merged.Items {
		if item.ProductID == stand.ID && item.Quantity != 3 {
			t.Fatalf("merged quantity = %d, want 3", item.Quantity)
		}
	}
	if guest := s.Cart("guest-1"); len(guest.Items) != 0 {
		t.Fatalf("guest cart not emptied after merge: %+v", guest.Items)
	}
}

func TestStore_ValidateVoucher(t *testing.T) {
	s := NewStore()

	res := s.ValidateVoucher(shopapi.VoucherRequest{VoucherCode: "save10", OrderAmount: 100})
	if !res.Valid {
		t.Fatalf("SAVE10 on 100: invalid (%s)", res.Message)
	}
	if res.DiscountAmount != 10 || res.FinalAmount != 90 {
		t.Fatalf("discount/final = %v/%v, want 10/90", res.DiscountAmount, res.FinalAmount)
	}
	if res.VoucherID == 0 {
		t.Fatal("voucher id missing")
	}

	res = s.ValidateVoucher(shopapi.VoucherRequest{VoucherCode: "SAVE10", OrderAmount: 5})
	if res.Valid {
		t.Fatal("SAVE10 below minimum order should be invalid")
	}
	if res.FinalAmount != 5 {
		t.Fatalf("invalid voucher changed final amount: %v", res.FinalAmount)
	}

	res = s.ValidateVoucher(shopapi.VoucherRequest{VoucherCode: "NOPE", OrderAmount: 100})
	if res.Valid {
		t.Fatal("unknown code should be invalid")
	}
}

func TestStore_FavoritesRoundTrip(t *testing.T) {
	s := NewStore()
	stand := findByName(t, s, "Laptop Stand")

	if err := s.AddFavorite("u1", stand.ID); err != nil {
		t.Fatalf("AddFavorite() error: %v", err)
	}
	if err := s.AddFavorite("u1", stand.ID); err != nil {
		t.Fatalf("re-AddFavorite() error: %v", err)
	}
	favs := s.Favorites("u1")
	if len(favs) != 1 || favs[0].ID != stand.ID {
		t.Fatalf("favorites = %+v, want just %s", favs, stand.ID)
	}

	s.RemoveFavorite("u1", stand.ID)
	s.RemoveFavorite("u1", stand.ID)
	if favs := s.Favorites("u1"); len(favs) != 0 {
		t.Fatalf("favorites = %+v after removal, want empty", favs)
	}
}

func TestStore_ListProductsFiltersAndPages(t *testing.T) {
	s := NewStore()

	page := s.ListProducts("laptop", 0, 20)
	if page.TotalElements != 2 {
		t.Fatalf("laptop matches = %d, want 2", page.TotalElements)
	}
	for _, p := range page.Content {
		if !strings.Contains(strings.ToLower(p.Name), "laptop") {
			t.Fatalf("unmatched product %q in results", p.Name)
		}
	}

	first := s.ListProducts("", 0, 3)
	if len(first.Content) != 3 || first.TotalPages < 2 {
		t.Fatalf("page 0 = %d items / %d pages", len(first.Content), first.TotalPages)
	}
	second := s.ListProducts("", 1, 3)
	if len(second.Content) == 0 {
		t.Fatal("page 1 empty")
	}
	if first.Content[0].ID == second.Content[0].ID {
		t.Fatal("pages overlap")
	}

	// Inactive products never appear in listings.
	all := s.ListProducts("", 0, 100)
	for _, p := range all.Content {
		if p.Name == "Retired Webcam" {
			t.Fatal("inactive product listed")
		}
	}
}

func TestStore_AutocompleteLimitsAndSorts(t *testing.T) {
	s := NewStore()

	got := s.Autocomplete("lap", 1)
	if len(got) != 1 {
		t.Fatalf("len = %d with limit 1, want 1", len(got))
	}

	got = s.Autocomplete("lap", 5)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name > got[1].Name {
		t.Fatalf("suggestions unsorted: %q, %q", got[0].Name, got[1].Name)
	}

	if got := s.Autocomplete("", 5); len(got) != 0 {
		t.Fatalf("empty query returned %d suggestions", len(got))
	}
}
