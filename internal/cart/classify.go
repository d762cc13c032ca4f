package cart

import (
	"strings"

	"github.com/tqc04/basket/internal/notify"
	"github.com/tqc04/basket/internal/shopapi"
)

// User-facing messages for cart outcomes.
const (
	msgAdded        = "Added to cart"
	msgAddFailed    = "Could not add to cart"
	msgOutOfStock   = "This product is out of stock"
	msgExceedsStock = "Requested quantity exceeds available stock"
	msgNotActive    = "This product is no longer available"
	msgNotFound     = "Product not found"

	msgVoucherApplied      = "Voucher applied"
	msgVoucherRemoved      = "Voucher removed"
	msgVoucherInvalid      = "Invalid voucher code"
	msgVoucherApplyFailed  = "Could not apply voucher"
	msgVoucherRemoveFailed = "Could not remove voucher"
)

// classify maps a mutation error to a notification. A structured
// errorMessage from the service wins outright and is surfaced verbatim as a
// warning. Otherwise the raw server message is classified by substring into
// the known business-rule rejections; anything unrecognized falls through
// to the raw message, and errors with no server text at all (network, 5xx
// without a body) get the generic fallback.
func classify(err error, fallback string) (notify.Level, string) {
	apiErr, ok := shopapi.AsAPIError(err)
	if !ok {
		return notify.LevelError, fallback
	}

	if msg, structured := apiErr.Structured(); structured {
		return notify.LevelWarning, msg
	}

	raw := apiErr.ServerMessage()
	if raw == "" {
		return notify.LevelError, fallback
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "out of stock"), strings.Contains(lower, "insufficient stock"):
		return notify.LevelWarning, msgOutOfStock
	case strings.Contains(lower, "exceeds available stock"):
		return notify.LevelWarning, msgExceedsStock
	case strings.Contains(lower, "not active"):
		return notify.LevelWarning, msgNotActive
	case strings.Contains(lower, "product not found"):
		return notify.LevelError, msgNotFound
	}
	return notify.LevelError, raw
}
