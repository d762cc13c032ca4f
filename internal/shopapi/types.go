package shopapi

import "time"

// Cart mirrors the cart payload returned by the cart service. Totals are
// server-computed; the client treats them as authoritative.
type Cart struct {
	UserID         string     `json:"userId"`
	SessionID      string     `json:"sessionId,omitempty"`
	Items          []CartItem `json:"items"`
	Subtotal       float64    `json:"subtotal"`
	Tax            float64    `json:"tax"`
	Shipping       float64    `json:"shipping"`
	Discount       float64    `json:"discount"`
	Total          float64    `json:"total"`
	VoucherCode    string     `json:"voucherCode,omitempty"`
	VoucherID      int64      `json:"voucherId,omitempty"`
	VoucherMessage string     `json:"voucherMessage,omitempty"`
	CreatedAt      string     `json:"createdAt"`
	UpdatedAt      string     `json:"updatedAt"`
}

// CartItem is one product line within a cart. LineTotal is copied verbatim
// from the server, never recomputed client-side.
type CartItem struct {
	ProductID     string  `json:"productId"`
	ProductName   string  `json:"productName"`
	ProductSKU    string  `json:"productSku"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	LineTotal     float64 `json:"total"`
	ProductImage  string  `json:"productImage,omitempty"`
	CategoryName  string  `json:"categoryName,omitempty"`
	BrandName     string  `json:"brandName,omitempty"`
	StockQuantity int     `json:"stockQuantity,omitempty"`
	IsActive      bool    `json:"isActive"`
}

// ItemCount returns the number of line items in the cart.
func (c Cart) ItemCount() int {
	return len(c.Items)
}

// ParsedUpdatedAt returns the parsed UpdatedAt timestamp.
func (c Cart) ParsedUpdatedAt() time.Time {
	return parseTime(c.UpdatedAt)
}

// Product mirrors the product snapshot returned by the catalog and
// favorites endpoints.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	SKU           string  `json:"sku,omitempty"`
	Price         float64 `json:"price"`
	SalePrice     float64 `json:"salePrice,omitempty"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand"`
	StockQuantity int     `json:"stockQuantity"`
	Rating        float64 `json:"rating,omitempty"`
	ReviewCount   int     `json:"reviewCount,omitempty"`
	IsActive      bool    `json:"isActive"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}

// Suggestion is the slim product shape returned by the autocomplete
// endpoint. It overlaps Product structurally but carries fewer fields.
type Suggestion struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	SalePrice float64 `json:"salePrice,omitempty"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	Category  string  `json:"category,omitempty"`
	Brand     string  `json:"brand,omitempty"`
}

// ProductQuery configures catalog listing requests.
type ProductQuery struct {
	Search string
	Page   int
	Size   int
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Content       []Product `json:"content"`
	TotalElements int       `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
	Page          int       `json:"number"`
	Size          int       `json:"size"`
}

// VoucherRequest carries everything the voucher service needs to validate a
// code against the current cart.
type VoucherRequest struct {
	VoucherCode string        `json:"voucherCode"`
	UserID      string        `json:"userId"`
	OrderAmount float64       `json:"orderAmount"`
	Items       []VoucherItem `json:"items"`
}

// VoucherItem summarizes one cart line for voucher validation.
type VoucherItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	CategoryID  int64   `json:"categoryId"`
	BrandID     int64   `json:"brandId"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// VoucherResult is the voucher service's verdict.
type VoucherResult struct {
	Valid          bool    `json:"valid"`
	VoucherCode    string  `json:"voucherCode"`
	VoucherID      int64   `json:"voucherId"`
	DiscountAmount float64 `json:"discountAmount"`
	Message        string  `json:"message"`
	FinalAmount    float64 `json:"finalAmount"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
