package cart

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/tqc04/basket/internal/notify"
	"github.com/tqc04/basket/internal/session"
	"github.com/tqc04/basket/internal/shopapi"
)

// Phase describes the cart snapshot lifecycle. Unloaded ("no cart") and
// Empty ("zero items") are distinct on purpose: the first means the UI
// should solicit login, the second means it shows 0 items.
type Phase int

const (
	PhaseUnloaded Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseEmpty
)

// Consistency documents how an operation reconciles client state with the
// server. The policy is deliberate per operation, not incidental.
type Consistency int

const (
	// ReplaceFromResponse swaps the whole in-memory cart for the mutation
	// response. Used by add, remove, and merge.
	ReplaceFromResponse Consistency = iota
	// ForceReload ignores the mutation response and re-fetches the cart, so
	// server-side voucher re-validation is always reflected. Used by update.
	ForceReload
	// ExplicitEmpty resets to a locally built zero cart regardless of the
	// response shape. Used by clear.
	ExplicitEmpty
	// LocalOnly mutates the snapshot with client arithmetic and no further
	// network call. Used by voucher removal exclusively.
	LocalOnly
)

// Snapshot is an immutable copy of the store's view of the cart.
type Snapshot struct {
	Cart  *shopapi.Cart
	Phase Phase
}

// Count returns the number of line items, or 0 when no cart is loaded.
func (s Snapshot) Count() int {
	if s.Cart == nil {
		return 0
	}
	return s.Cart.ItemCount()
}

// Store is the single source of truth for the signed-in user's cart. Every
// mutation goes through the backend; the in-memory snapshot is reconciled
// from the server per the operation's Consistency policy.
type Store struct {
	backend  shopapi.Backend
	session  *session.Session
	notifier notify.Notifier
	logf     func(format string, args ...any)

	mu       sync.Mutex
	cart     *shopapi.Cart
	phase    Phase
	inflight int
	seq      uint64
}

// New builds a cart store. All dependencies are required.
func New(backend shopapi.Backend, sess *session.Session, notifier notify.Notifier) *Store {
	return &Store{
		backend:  backend,
		session:  sess,
		notifier: notifier,
		logf:     log.Printf,
		phase:    PhaseUnloaded,
	}
}

// WatchSession subscribes the store to the authentication signal: login
// loads the cart from the server, logout drops it to the unloaded state.
func (s *Store) WatchSession(ctx context.Context) {
	s.session.Watch(func(st session.State) {
		if st.Authenticated {
			go s.Refresh(ctx)
			return
		}
		s.Reset()
	})
}

// Snapshot returns a defensive copy of the current cart view.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Phase: s.phase}
	if s.inflight > 0 {
		snap.Phase = PhaseLoading
	}
	if s.cart != nil {
		dup := *s.cart
		dup.Items = make([]shopapi.CartItem, len(s.cart.Items))
		copy(dup.Items, s.cart.Items)
		snap.Cart = &dup
	}
	return snap
}

// Count returns the item count of the current snapshot, 0 when unloaded.
func (s *Store) Count() int {
	return s.Snapshot().Count()
}

// Loading reports whether any operation is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// Refresh forces a full reload from the server. On failure the snapshot
// falls back to an empty cart so the UI never renders a broken view.
func (s *Store) Refresh(ctx context.Context) {
	userID := s.session.UserID()
	if userID == "" {
		return
	}

	seq := s.begin()
	defer s.finish()

	s.reload(ctx, seq, userID)
}

// Add puts a product in the cart. Consistency: ReplaceFromResponse. The
// returned boolean is the only error signal; failures surface as toasts.
func (s *Store) Add(ctx context.Context, productID string, quantity int, variantID int64) bool {
	userID := s.session.UserID()
	if userID == "" {
		return false
	}
	if quantity < 1 {
		quantity = 1
	}

	seq := s.begin()
	defer s.finish()

	updated, err := s.backend.AddToCart(ctx, userID, productID, quantity, variantID)
	if err != nil {
		s.logf("add to cart failed: %v", err)
		level, msg := classify(err, msgAddFailed)
		s.notifier.Notify(level, msg)
		return false
	}
	s.apply(seq, updated, PhaseLoaded)
	s.notifier.Notify(notify.LevelSuccess, msgAdded)
	return true
}

// Remove deletes a product line. Consistency: ReplaceFromResponse.
// Unexpected errors are logged and swallowed; no toast on success.
func (s *Store) Remove(ctx context.Context, productID string) bool {
	userID := s.session.UserID()
	if userID == "" {
		return false
	}

	seq := s.begin()
	defer s.finish()

	updated, err := s.backend.RemoveFromCart(ctx, userID, productID)
	if err != nil {
		s.logf("remove from cart failed: %v", err)
		return false
	}
	s.apply(seq, updated, PhaseLoaded)
	return true
}

// UpdateQuantity changes a line's quantity. Consistency: ForceReload — the
// mutation response is not trusted because quantity changes can trigger
// voucher re-validation server-side.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) bool {
	userID := s.session.UserID()
	if userID == "" {
		return false
	}

	seq := s.begin()
	defer s.finish()

	if err := s.backend.UpdateCartItem(ctx, userID, productID, quantity); err != nil {
		s.logf("update cart item failed: %v", err)
		return false
	}
	s.reload(ctx, seq, userID)
	return true
}

// Clear empties the cart. Consistency: ExplicitEmpty — the local state is
// rebuilt as a zero cart rather than trusting the response shape.
func (s *Store) Clear(ctx context.Context) bool {
	userID := s.session.UserID()
	if userID == "" {
		return false
	}

	seq := s.begin()
	defer s.finish()

	if err := s.backend.ClearCart(ctx, userID); err != nil {
		s.logf("clear cart failed: %v", err)
		return false
	}
	s.apply(seq, emptyCart(userID), PhaseEmpty)
	return true
}

// ApplyVoucher validates a discount code against a freshly fetched cart and
// patches the voucher fields and total from the validation response.
func (s *Store) ApplyVoucher(ctx context.Context, code string) bool {
	userID := s.session.UserID()
	if userID == "" {
		return false
	}

	seq := s.begin()
	defer s.finish()

	// Always validate against fresh server state, never a possibly stale
	// local subtotal.
	fresh, err := s.backend.FetchCart(ctx, userID)
	if err != nil {
		s.logf("apply voucher: cart fetch failed: %v", err)
		s.notifier.Notify(notify.LevelError, msgVoucherApplyFailed)
		return false
	}

	req := shopapi.VoucherRequest{
		VoucherCode: code,
		UserID:      userID,
		OrderAmount: fresh.Subtotal,
		Items:       voucherItems(fresh.Items),
	}
	result, err := s.backend.ValidateVoucher(ctx, req)
	if err != nil {
		s.logf("apply voucher failed: %v", err)
		msg := msgVoucherApplyFailed
		if apiErr, ok := shopapi.AsAPIError(err); ok {
			if server := apiErr.ServerMessage(); server != "" {
				msg = server
			}
		}
		s.notifier.Notify(notify.LevelError, msg)
		return false
	}
	if !result.Valid {
		msg := result.Message
		if msg == "" {
			msg = msgVoucherInvalid
		}
		s.notifier.Notify(notify.LevelError, msg)
		return false
	}

	patched := *fresh
	patched.VoucherCode = result.VoucherCode
	patched.VoucherID = result.VoucherID
	patched.VoucherMessage = result.Message
	patched.Discount = result.DiscountAmount
	patched.Total = result.FinalAmount
	s.apply(seq, &patched, PhaseLoaded)
	s.notifier.Notify(notify.LevelSuccess, msgVoucherApplied)
	return true
}

// RemoveVoucher clears voucher state locally. Consistency: LocalOnly — the
// only place the client computes a total itself:
// total = subtotal + tax + shipping, discount forced to zero.
func (s *Store) RemoveVoucher(ctx context.Context) bool {
	userID := s.session.UserID()
	if userID == "" {
		return false
	}

	seq := s.begin()
	defer s.finish()

	fresh, err := s.backend.FetchCart(ctx, userID)
	if err != nil {
		s.logf("remove voucher: cart fetch failed: %v", err)
		s.notifier.Notify(notify.LevelError, msgVoucherRemoveFailed)
		return false
	}

	patched := *fresh
	patched.VoucherCode = ""
	patched.VoucherID = 0
	patched.VoucherMessage = ""
	patched.Discount = 0
	patched.Total = patched.Subtotal + patched.Tax + patched.Shipping
	s.apply(seq, &patched, PhaseLoaded)
	s.notifier.Notify(notify.LevelInfo, msgVoucherRemoved)
	return true
}

// MergeGuest folds the guest-session cart into the given user's cart.
// Consistency: ReplaceFromResponse. Called during login, before the session
// reports authenticated, so it takes the user id explicitly.
func (s *Store) MergeGuest(ctx context.Context, userID string) bool {
	seq := s.begin()
	defer s.finish()

	merged, err := s.backend.MergeGuestCart(ctx, userID)
	if err != nil {
		s.logf("merge guest cart failed: %v", err)
		return false
	}
	s.apply(seq, merged, PhaseLoaded)
	return true
}

// Reset drops the cart to the unloaded state ("no cart", not "empty
// cart"). In-flight responses from before the reset are discarded.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.cart = nil
	s.phase = PhaseUnloaded
}

// begin marks the start of an operation and returns its sequence number.
func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.inflight++
	return s.seq
}

func (s *Store) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
}

// apply installs a cart produced by the operation with sequence seq. When a
// later operation has started since, the response is stale and dropped.
func (s *Store) apply(seq uint64, cart *shopapi.Cart, phase Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return
	}
	s.cart = cart
	s.phase = phase
}

// reload fetches the cart and applies it, falling back to an empty cart on
// failure so the UI never shows a broken state.
func (s *Store) reload(ctx context.Context, seq uint64, userID string) {
	fetched, err := s.backend.FetchCart(ctx, userID)
	if err != nil {
		s.logf("cart load failed: %v", err)
		s.apply(seq, emptyCart(userID), PhaseEmpty)
		return
	}
	s.apply(seq, fetched, PhaseLoaded)
}

func emptyCart(userID string) *shopapi.Cart {
	now := time.Now().UTC().Format(time.RFC3339)
	return &shopapi.Cart{
		UserID:    userID,
		Items:     []shopapi.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func voucherItems(items []shopapi.CartItem) []shopapi.VoucherItem {
	out := make([]shopapi.VoucherItem, 0, len(items))
	for _, item := range items {
		out = append(out, shopapi.VoucherItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			// The client does not hold category or brand ids; the voucher
			// service treats 1 as "unscoped".
			CategoryID: 1,
			BrandID:    1,
			Price:      item.Price,
			Quantity:   item.Quantity,
		})
	}
	return out
}
