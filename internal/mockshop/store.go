package mockshop

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tqc04/basket/internal/shopapi"
)

// Error is a handler-facing failure with an HTTP status and the message the
// gateway would put in its error body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func errf(status int, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

type catalogEntry struct {
	product shopapi.Product
	stock   int
	active  bool
}

type voucher struct {
	code     string
	id       int64
	percent  float64
	flat     float64
	minOrder float64
}

// Store is the in-memory state behind the development gateway: a seeded
// catalog plus per-user carts and favorite sets. All access goes through a
// single mutex; this store exists for local development and tests, not load.
type Store struct {
	mu        sync.Mutex
	catalog   map[string]*catalogEntry
	order     []string
	carts     map[string]*shopapi.Cart
	favorites map[string]map[string]bool
	vouchers  map[string]voucher
}

const (
	taxRate           = 0.08
	flatShipping      = 5.0
	freeShippingAbove = 50.0
)

// NewStore builds a store seeded with a small catalog and two vouchers.
func NewStore() *Store {
	s := &Store{
		catalog:   make(map[string]*catalogEntry),
		carts:     make(map[string]*shopapi.Cart),
		favorites: make(map[string]map[string]bool),
		vouchers: map[string]voucher{
			"SAVE10": {code: "SAVE10", id: 101, percent: 0.10, minOrder: 20},
			"FLAT5":  {code: "FLAT5", id: 102, flat: 5, minOrder: 10},
		},
	}
	for _, seed := range seedProducts() {
		s.addProduct(seed.product, seed.stock, seed.active)
	}
	return s
}

type seedProduct struct {
	product shopapi.Product
	stock   int
	active  bool
}

func seedProducts() []seedProduct {
	mk := func(name, desc, category, brand string, price, sale float64, stock int, active bool) seedProduct {
		return seedProduct{
			product: shopapi.Product{
				Name:        name,
				Description: desc,
				SKU:         strings.ToUpper(strings.ReplaceAll(name, " ", "-")),
				Price:       price,
				SalePrice:   sale,
				Category:    category,
				Brand:       brand,
				Rating:      4.2,
				ReviewCount: 37,
			},
			stock:  stock,
			active: active,
		}
	}
	return []seedProduct{
		mk("Laptop Stand", "Aluminium laptop riser", "Accessories", "Deskworks", 39.99, 0, 25, true),
		mk("Laptop Sleeve 14in", "Padded neoprene sleeve", "Accessories", "Carrier", 24.50, 19.99, 40, true),
		mk("Mechanical Keyboard", "Tenkeyless, brown switches", "Peripherals", "Keysmith", 89.00, 0, 12, true),
		mk("Wireless Mouse", "Low-latency 2.4GHz mouse", "Peripherals", "Keysmith", 29.99, 0, 0, true),
		mk("USB-C Hub", "7-port hub with HDMI", "Accessories", "Portly", 45.00, 39.00, 18, true),
		mk("Retired Webcam", "Discontinued 720p webcam", "Peripherals", "Oculon", 19.99, 0, 5, false),
		mk("Monitor 27in", "QHD IPS display", "Displays", "Viewpoint", 249.00, 229.00, 7, true),
		mk("Desk Mat", "Extended felt desk mat", "Accessories", "Deskworks", 21.00, 0, 60, true),
	}
}

func (s *Store) addProduct(p shopapi.Product, stock int, active bool) {
	p.ID = uuid.NewString()
	p.StockQuantity = stock
	p.IsActive = active
	now := time.Now().UTC().Format(time.RFC3339)
	p.CreatedAt = now
	p.UpdatedAt = now
	s.catalog[p.ID] = &catalogEntry{product: p, stock: stock, active: active}
	s.order = append(s.order, p.ID)
}

// ProductIDs returns catalog ids in seed order, mainly for tests.
func (s *Store) ProductIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// ListProducts returns one page of the catalog, optionally filtered by a
// case-insensitive substring match on name, brand, and category.
func (s *Store) ListProducts(search string, page, size int) shopapi.ProductPage {
	s.mu.Lock()
	defer s.mu.Unlock()

	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	var matched []shopapi.Product
	for _, id := range s.order {
		entry := s.catalog[id]
		if !entry.active {
			continue
		}
		if needle != "" && !matchesProduct(entry.product, needle) {
			continue
		}
		matched = append(matched, s.snapshotLocked(id))
	}

	total := len(matched)
	totalPages := (total + size - 1) / size
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return shopapi.ProductPage{
		Content:       matched[start:end],
		TotalElements: total,
		TotalPages:    totalPages,
		Page:          page,
		Size:          size,
	}
}

func matchesProduct(p shopapi.Product, needle string) bool {
	for _, field := range []string{p.Name, p.Brand, p.Category} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Autocomplete returns up to limit slim suggestions whose names contain the
// query, ordered by name.
func (s *Store) Autocomplete(query string, limit int) []shopapi.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 5
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []shopapi.Suggestion{}
	}

	var out []shopapi.Suggestion
	for _, id := range s.order {
		entry := s.catalog[id]
		if !entry.active || !strings.Contains(strings.ToLower(entry.product.Name), needle) {
			continue
		}
		p := entry.product
		out = append(out, shopapi.Suggestion{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			SalePrice: p.SalePrice,
			ImageURL:  p.ImageURL,
			Category:  p.Category,
			Brand:     p.Brand,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Cart returns the user's cart, creating an empty one on first touch.
func (s *Store) Cart(userID string) *shopapi.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCart(s.cartLocked(userID))
}

// AddToCart appends or grows a line after the stock and activity checks the
// real gateway performs, then returns the recomputed cart.
func (s *Store) AddToCart(userID, productID string, quantity int) (*shopapi.Cart, error) {
	if quantity <= 0 {
		return nil, errf(http.StatusBadRequest, "quantity must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.catalog[productID]
	if !ok {
		return nil, errf(http.StatusNotFound, "product not found: %s", productID)
	}
	if !entry.active {
		return nil, errf(http.StatusBadRequest, "product %q is not active", entry.product.Name)
	}
	if entry.stock == 0 {
		return nil, errf(http.StatusBadRequest, "product %q is out of stock", entry.product.Name)
	}

	cart := s.cartLocked(userID)
	line := findLine(cart, productID)
	want := quantity
	if line != nil {
		want += line.Quantity
	}
	if want > entry.stock {
		return nil, errf(http.StatusBadRequest,
			"requested quantity %d exceeds available stock (%d)", want, entry.stock)
	}

	if line != nil {
		line.Quantity = want
	} else {
		cart.Items = append(cart.Items, newLine(entry, quantity))
	}
	s.recomputeLocked(cart)
	return cloneCart(cart), nil
}

// UpdateQuantity sets a line's quantity; zero removes the line.
func (s *Store) UpdateQuantity(userID, productID string, quantity int) error {
	if quantity < 0 {
		return errf(http.StatusBadRequest, "quantity must not be negative")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartLocked(userID)
	line := findLine(cart, productID)
	if line == nil {
		return errf(http.StatusNotFound, "product not found in cart: %s", productID)
	}
	if quantity == 0 {
		removeLine(cart, productID)
	} else {
		entry, ok := s.catalog[productID]
		if ok && quantity > entry.stock {
			return errf(http.StatusBadRequest,
				"requested quantity %d exceeds available stock (%d)", quantity, entry.stock)
		}
		line.Quantity = quantity
	}
	s.recomputeLocked(cart)
	return nil
}

// RemoveFromCart drops a line and returns the recomputed cart. Removing an
// absent line is not an error; the cart is simply returned unchanged.
func (s *Store) RemoveFromCart(userID, productID string) *shopapi.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartLocked(userID)
	removeLine(cart, productID)
	s.recomputeLocked(cart)
	return cloneCart(cart)
}

// ClearCart drops every line and any applied voucher.
func (s *Store) ClearCart(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartLocked(userID)
	cart.Items = nil
	cart.VoucherCode = ""
	cart.VoucherID = 0
	cart.VoucherMessage = ""
	s.recomputeLocked(cart)
}

// MergeCarts folds the guest cart named in the request into the user's
// cart, summing quantities for shared products, and deletes the guest cart.
func (s *Store) MergeCarts(userID, guestID string) *shopapi.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartLocked(userID)
	if guest, ok := s.carts[guestID]; ok && guestID != userID {
		for _, item := range guest.Items {
			if line := findLine(cart, item.ProductID); line != nil {
				line.Quantity += item.Quantity
			} else {
				copied := item
				cart.Items = append(cart.Items, copied)
			}
		}
		delete(s.carts, guestID)
	}
	s.recomputeLocked(cart)
	return cloneCart(cart)
}

// ValidateVoucher checks a code against the order amount and returns the
// verdict. Invalid codes are a 200 with valid=false, matching the gateway.
func (s *Store) ValidateVoucher(req shopapi.VoucherRequest) shopapi.VoucherResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := strings.ToUpper(strings.TrimSpace(req.VoucherCode))
	v, ok := s.vouchers[code]
	if !ok {
		return shopapi.VoucherResult{
			Valid:       false,
			VoucherCode: code,
			Message:     "voucher code not recognized",
			FinalAmount: req.OrderAmount,
		}
	}
	if req.OrderAmount < v.minOrder {
		return shopapi.VoucherResult{
			Valid:       false,
			VoucherCode: code,
			Message:     fmt.Sprintf("order must be at least %.2f to use %s", v.minOrder, code),
			FinalAmount: req.OrderAmount,
		}
	}

	discount := v.flat
	if v.percent > 0 {
		discount = round2(req.OrderAmount * v.percent)
	}
	if discount > req.OrderAmount {
		discount = req.OrderAmount
	}
	return shopapi.VoucherResult{
		Valid:          true,
		VoucherCode:    code,
		VoucherID:      v.id,
		DiscountAmount: discount,
		Message:        fmt.Sprintf("voucher %s applied", code),
		FinalAmount:    round2(req.OrderAmount - discount),
	}
}

// Favorites lists the user's favorited products in catalog order.
func (s *Store) Favorites(userID string) []shopapi.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.favorites[userID]
	out := []shopapi.Product{}
	for _, id := range s.order {
		if set[id] {
			out = append(out, s.snapshotLocked(id))
		}
	}
	return out
}

// AddFavorite marks a product as favorited. Re-adding is a no-op.
func (s *Store) AddFavorite(userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.catalog[productID]; !ok {
		return errf(http.StatusNotFound, "product not found: %s", productID)
	}
	set := s.favorites[userID]
	if set == nil {
		set = make(map[string]bool)
		s.favorites[userID] = set
	}
	set[productID] = true
	return nil
}

// RemoveFavorite clears a product's favorited mark. Removing an absent mark
// is a no-op.
func (s *Store) RemoveFavorite(userID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.favorites[userID], productID)
}

func (s *Store) cartLocked(userID string) *shopapi.Cart {
	cart, ok := s.carts[userID]
	if !ok {
		now := time.Now().UTC().Format(time.RFC3339)
		cart = &shopapi.Cart{
			UserID:    userID,
			SessionID: uuid.NewString(),
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.carts[userID] = cart
	}
	return cart
}

// snapshotLocked copies a catalog product with its live stock figure.
func (s *Store) snapshotLocked(id string) shopapi.Product {
	entry := s.catalog[id]
	p := entry.product
	p.StockQuantity = entry.stock
	p.IsActive = entry.active
	return p
}

func newLine(entry *catalogEntry, quantity int) shopapi.CartItem {
	p := entry.product
	price := p.Price
	if p.SalePrice > 0 && p.SalePrice < p.Price {
		price = p.SalePrice
	}
	return shopapi.CartItem{
		ProductID:     p.ID,
		ProductName:   p.Name,
		ProductSKU:    p.SKU,
		Price:         price,
		Quantity:      quantity,
		ProductImage:  p.ImageURL,
		CategoryName:  p.Category,
		BrandName:     p.Brand,
		StockQuantity: entry.stock,
		IsActive:      entry.active,
	}
}

// recomputeLocked rebuilds every derived figure from the line items, the
// same way the real gateway owns totals end to end.
func (s *Store) recomputeLocked(cart *shopapi.Cart) {
	var subtotal float64
	for i := range cart.Items {
		line := &cart.Items[i]
		line.LineTotal = round2(line.Price * float64(line.Quantity))
		subtotal += line.LineTotal
	}
	cart.Subtotal = round2(subtotal)
	cart.Tax = round2(subtotal * taxRate)
	switch {
	case subtotal == 0:
		cart.Shipping = 0
	case subtotal >= freeShippingAbove:
		cart.Shipping = 0
	default:
		cart.Shipping = flatShipping
	}
	cart.Total = round2(cart.Subtotal + cart.Tax + cart.Shipping - cart.Discount)
	cart.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

func findLine(cart *shopapi.Cart, productID string) *shopapi.CartItem {
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			return &cart.Items[i]
		}
	}
	return nil
}

func removeLine(cart *shopapi.Cart, productID string) {
	kept := cart.Items[:0:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
}

func cloneCart(cart *shopapi.Cart) *shopapi.Cart {
	dup := *cart
	dup.Items = append([]shopapi.CartItem(nil), cart.Items...)
	return &dup
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
