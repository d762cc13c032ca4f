package shopapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tqc04/basket/internal/mockshop"
	"github.com/tqc04/basket/internal/shopapi"
)

// newGateway stands up the development gateway on a local listener and
// returns a client pointed at it.
func newGateway(t *testing.T) *shopapi.Client {
	t.Helper()
	store := mockshop.NewStore()
	server := httptest.NewServer(mockshop.NewHandler(store).Router())
	t.Cleanup(server.Close)

	client, err := shopapi.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient(%q) error: %v", server.URL, err)
	}
	return client
}

func firstProductID(t *testing.T, client *shopapi.Client, search string) string {
	t.Helper()
	page, err := client.FetchProducts(context.Background(), shopapi.ProductQuery{Search: search})
	if err != nil {
		t.Fatalf("FetchProducts(%q) error: %v", search, err)
	}
	if len(page.Content) == 0 {
		t.Fatalf("no products match %q", search)
	}
	return page.Content[0].ID
}

func TestClient_CartRoundTrip(t *testing.T) {
	client := newGateway(t)
	ctx := context.Background()
	productID := firstProductID(t, client, "laptop stand")

	cart, err := client.AddToCart(ctx, "u1", productID, 2, 0)
	if err != nil {
		t.Fatalf("AddToCart() error: %v", err)
	}
	if cart.ItemCount() != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("cart after add = %+v", cart.Items)
	}
	if cart.Total <= 0 {
		t.Fatalf("Total = %v, want positive", cart.Total)
	}

	if err := client.UpdateCartItem(ctx, "u1", productID, 5); err != nil {
		t.Fatalf("UpdateCartItem() error: %v", err)
	}
	cart, err = client.FetchCart(ctx, "u1")
	if err != nil {
		t.Fatalf("FetchCart() error: %v", err)
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("quantity after update = %d, want 5", cart.Items[0].Quantity)
	}

	cart, err = client.RemoveFromCart(ctx, "u1", productID)
	if err != nil {
		t.Fatalf("RemoveFromCart() error: %v", err)
	}
	if cart.ItemCount() != 0 {
		t.Fatalf("cart after remove = %+v", cart.Items)
	}

	if err := client.ClearCart(ctx, "u1"); err != nil {
		t.Fatalf("ClearCart() error: %v", err)
	}
}

func TestClient_AddToCartRejectionCarriesErrorBody(t *testing.T) {
	client := newGateway(t)
	productID := firstProductID(t, client, "wireless mouse") // seeded with zero stock

	_, err := client.AddToCart(context.Background(), "u1", productID, 1, 0)
	if err == nil {
		t.Fatal("AddToCart() succeeded for out-of-stock product")
	}
	apiErr, ok := shopapi.AsAPIError(err)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", apiErr.Status)
	}
	msg, structured := apiErr.Structured()
	if !structured {
		t.Fatalf("body not structured: %+v", apiErr.Body)
	}
	if !strings.Contains(strings.ToLower(msg), "out of stock") {
		t.Fatalf("message = %q, want out-of-stock text", msg)
	}
}

func TestClient_UnknownProductIs404(t *testing.T) {
	client := newGateway(t)

	_, err := client.AddToCart(context.Background(), "u1", "no-such-id", 1, 0)
	apiErr, ok := shopapi.AsAPIError(err)
	if !ok {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", apiErr.Status)
	}
}

func TestClient_ValidateVoucher(t *testing.T) {
	client := newGateway(t)

	res, err := client.ValidateVoucher(context.Background(), shopapi.VoucherRequest{
		VoucherCode: "SAVE10",
		UserID:      "u1",
		OrderAmount: 100,
	})
	if err != nil {
		t.Fatalf("ValidateVoucher() error: %v", err)
	}
	if !res.Valid || res.DiscountAmount != 10 || res.FinalAmount != 90 {
		t.Fatalf("result = %+v", res)
	}
}

func TestClient_FavoritesRoundTrip(t *testing.T) {
	client := newGateway(t)
	ctx := context.Background()
	productID := firstProductID(t, client, "desk mat")

	if err := client.AddFavorite(ctx, "u1", productID); err != nil {
		t.Fatalf("AddFavorite() error: %v", err)
	}
	favs, err := client.FetchFavorites(ctx, "u1")
	if err != nil {
		t.Fatalf("FetchFavorites() error: %v", err)
	}
	if len(favs) != 1 || favs[0].ID != productID {
		t.Fatalf("favorites = %+v", favs)
	}
	if favs[0].Name == "" || favs[0].Price == 0 {
		t.Fatalf("favorite missing display data: %+v", favs[0])
	}

	if err := client.RemoveFavorite(ctx, "u1", productID); err != nil {
		t.Fatalf("RemoveFavorite() error: %v", err)
	}
	favs, err = client.FetchFavorites(ctx, "u1")
	if err != nil {
		t.Fatalf("FetchFavorites() error: %v", err)
	}
	if len(favs) != 0 {
		t.Fatalf("favorites after remove = %+v", favs)
	}
}

func TestClient_Autocomplete(t *testing.T) {
	client := newGateway(t)

	got, err := client.Autocomplete(context.Background(), "lap", 5)
	if err != nil {
		t.Fatalf("Autocomplete() error: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("no suggestions for lap")
	}
	for _, s := range got {
		if !strings.Contains(strings.ToLower(s.Name), "lap") {
			t.Fatalf("suggestion %q does not match query", s.Name)
		}
	}
}

func TestClient_BaseURLParsing(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"127.0.0.1:8080", false},
		{"http://shop.example.com", false},
		{"https://shop.example.com/api/", false},
		{"", false},
		{"http://bad url", true},
	}
	for _, tc := range cases {
		_, err := shopapi.NewClient(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("NewClient(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
	}
}
