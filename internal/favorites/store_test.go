package favorites

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tqc04/basket/internal/notify"
	"github.com/tqc04/basket/internal/session"
	"github.com/tqc04/basket/internal/shopapi"
)

type fakeBackend struct {
	mu    sync.Mutex
	calls int

	fetchFavorites func(userID string) ([]shopapi.Product, error)
	addFavorite    func(userID, productID string) error
	removeFavorite func(userID, productID string) error
}

func (f *fakeBackend) record() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeBackend) FetchFavorites(_ context.Context, userID string) ([]shopapi.Product, error) {
	f.record()
	if f.fetchFavorites == nil {
		return nil, errors.New("unexpected FetchFavorites")
	}
	return f.fetchFavorites(userID)
}

func (f *fakeBackend) AddFavorite(_ context.Context, userID, productID string) error {
	f.record()
	if f.addFavorite == nil {
		return errors.New("unexpected AddFavorite")
	}
	return f.addFavorite(userID, productID)
}

func (f *fakeBackend) RemoveFavorite(_ context.Context, userID, productID string) error {
	f.record()
	if f.removeFavorite == nil {
		return errors.New("unexpected RemoveFavorite")
	}
	return f.removeFavorite(userID, productID)
}

func (f *fakeBackend) FetchCart(context.Context, string) (*shopapi.Cart, error) {
	f.record()
	return nil, errors.New("unexpected FetchCart")
}

func (f *fakeBackend) AddToCart(context.Context, string, string, int, int64) (*shopapi.Cart, error) {
	f.record()
	return nil, errors.New("unexpected AddToCart")
}

func (f *fakeBackend) UpdateCartItem(context.Context, string, string, int) error {
	f.record()
	return errors.New("unexpected UpdateCartItem")
}

func (f *fakeBackend) RemoveFromCart(context.Context, string, string) (*shopapi.Cart, error) {
	f.record()
	return nil, errors.New("unexpected RemoveFromCart")
}

func (f *fakeBackend) ClearCart(context.Context, string) error {
	f.record()
	return errors.New("unexpected ClearCart")
}

func (f *fakeBackend) MergeGuestCart(context.Context, string) (*shopapi.Cart, error) {
	f.record()
	return nil, errors.New("unexpected MergeGuestCart")
}

func (f *fakeBackend) ValidateVoucher(context.Context, shopapi.VoucherRequest) (*shopapi.VoucherResult, error) {
	f.record()
	return nil, errors.New("unexpected ValidateVoucher")
}

func (f *fakeBackend) FetchProducts(context.Context, shopapi.ProductQuery) (shopapi.ProductPage, error) {
	f.record()
	return shopapi.ProductPage{}, errors.New("unexpected FetchProducts")
}

func (f *fakeBackend) Autocomplete(context.Context, string, int) ([]shopapi.Suggestion, error) {
	f.record()
	return nil, errors.New("unexpected Autocomplete")
}

var _ shopapi.Backend = (*fakeBackend)(nil)

type recorder struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recorder) Notify(level notify.Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, notify.Event{Level: level, Message: message})
}

func (r *recorder) all() []notify.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	dup := make([]notify.Event, len(r.events))
	copy(dup, r.events)
	return dup
}

func newStore(backend shopapi.Backend) (*Store, *session.Session, *recorder) {
	sess := session.New()
	rec := &recorder{}
	s := New(backend, sess, rec)
	s.logf = func(string, ...any) {}
	return s, sess, rec
}

func products(ids ...string) []shopapi.Product {
	out := make([]shopapi.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, shopapi.Product{ID: id, Name: "Product " + id, IsActive: true})
	}
	return out
}

func TestStore_MembershipAfterAddAndRemove(t *testing.T) {
	server := map[string]bool{}
	backend := &fakeBackend{
		fetchFavorites: func(string) ([]shopapi.Product, error) {
			var ids []string
			for id, ok := range server {
				if ok {
					ids = append(ids, id)
				}
			}
			return products(ids...), nil
		},
		addFavorite:    func(_, productID string) error { server[productID] = true; return nil },
		removeFavorite: func(_, productID string) error { delete(server, productID); return nil },
	}
	s, sess, _ := newStore(backend)
	sess.Login("7")
	ctx := context.Background()

	if s.IsFavorite("42") {
		t.Fatal("IsFavorite(42) = true before add")
	}
	if !s.Add(ctx, "42") {
		t.Fatal("Add = false, want true")
	}
	if !s.IsFavorite("42") {
		t.Fatal("IsFavorite(42) = false after add")
	}
	if !s.Remove(ctx, "42") {
		t.Fatal("Remove = false, want true")
	}
	if s.IsFavorite("42") {
		t.Fatal("IsFavorite(42) = true after remove")
	}
}

func TestStore_AddReloadsListFromServer(t *testing.T) {
	var loads int
	backend := &fakeBackend{
		fetchFavorites: func(string) ([]shopapi.Product, error) {
			loads++
			return products("42"), nil
		},
		addFavorite: func(string, string) error { return nil },
	}
	s, sess, rec := newStore(backend)
	sess.Login("7")

	if !s.Add(context.Background(), "42") {
		t.Fatal("Add = false, want true")
	}
	if loads != 1 {
		t.Fatalf("list loads = %d, want 1 (reload after add)", loads)
	}
	events := rec.all()
	if len(events) != 1 || events[0].Level != notify.LevelSuccess || events[0].Message != msgAdded {
		t.Fatalf("events = %#v, want one success %q", events, msgAdded)
	}
}

func TestStore_RemoveIsOptimisticallyLocal(t *testing.T) {
	backend := &fakeBackend{
		fetchFavorites: func(string) ([]shopapi.Product, error) { return products("1", "2", "3"), nil },
		removeFavorite: func(string, string) error { return nil },
	}
	s, sess, rec := newStore(backend)
	sess.Login("7")
	ctx := context.Background()
	s.Load(ctx)

	loadsBefore := backend.callCount()
	if !s.Remove(ctx, "2") {
		t.Fatal("Remove = false, want true")
	}
	// Exactly one call (the delete), no reload.
	if got := backend.callCount() - loadsBefore; got != 1 {
		t.Fatalf("network calls during remove = %d, want 1", got)
	}
	items := s.Items()
	if len(items) != 2 || items[0].ID != "1" || items[1].ID != "3" {
		t.Fatalf("items = %#v, want [1 3]", items)
	}
	events := rec.all()
	if len(events) != 1 || events[0].Level != notify.LevelInfo || events[0].Message != msgRemoved {
		t.Fatalf("events = %#v, want one info %q", events, msgRemoved)
	}
}

func TestStore_AddUnauthenticatedWarnsWithoutNetwork(t *testing.T) {
	backend := &fakeBackend{}
	s, _, rec := newStore(backend)

	if s.Add(context.Background(), "42") {
		t.Fatal("Add = true while signed out, want false")
	}
	if n := backend.callCount(); n != 0 {
		t.Fatalf("network calls = %d, want 0", n)
	}
	events := rec.all()
	if len(events) != 1 || events[0].Level != notify.LevelWarning || events[0].Message != msgLoginRequired {
		t.Fatalf("events = %#v, want login-required warning", events)
	}
}

func TestStore_LoadFailureResetsToEmpty(t *testing.T) {
	fail := false
	backend := &fakeBackend{
		fetchFavorites: func(string) ([]shopapi.Product, error) {
			if fail {
				return nil, errors.New("boom")
			}
			return products("1"), nil
		},
	}
	s, sess, _ := newStore(backend)
	sess.Login("7")
	ctx := context.Background()

	s.Load(ctx)
	if !s.IsFavorite("1") {
		t.Fatal("IsFavorite(1) = false after load")
	}

	fail = true
	s.Load(ctx)
	if len(s.Items()) != 0 {
		t.Fatalf("items = %#v, want empty after failed load", s.Items())
	}
}

func TestStore_Load500IsMutedFromLog(t *testing.T) {
	backend := &fakeBackend{
		fetchFavorites: func(string) ([]shopapi.Product, error) {
			return nil, &shopapi.APIError{Status: 500, Path: "/api/favorites/user/7"}
		},
	}
	s, sess, _ := newStore(backend)
	var logged []string
	s.logf = func(format string, args ...any) { logged = append(logged, format) }
	sess.Login("7")

	s.Load(context.Background())
	if len(logged) != 0 {
		t.Fatalf("logged = %v, want 500s muted", logged)
	}
	if len(s.Items()) != 0 {
		t.Fatalf("items = %#v, want empty", s.Items())
	}

	// Any other failure still logs.
	backend.fetchFavorites = func(string) ([]shopapi.Product, error) {
		return nil, &shopapi.APIError{Status: 503, Path: "/api/favorites/user/7"}
	}
	s.Load(context.Background())
	if len(logged) != 1 {
		t.Fatalf("logged = %v, want one entry for non-500 failure", logged)
	}
}

func TestStore_ToggleDispatchesOnMembership(t *testing.T) {
	var added, removed int
	backend := &fakeBackend{
		fetchFavorites: func(string) ([]shopapi.Product, error) { return products("42"), nil },
		addFavorite:    func(string, string) error { added++; return nil },
		removeFavorite: func(string, string) error { removed++; return nil },
	}
	s, sess, _ := newStore(backend)
	sess.Login("7")
	ctx := context.Background()

	s.Toggle(ctx, "42") // not yet a member: adds (then reload makes it one)
	s.Toggle(ctx, "42") // member now: removes
	if added != 1 || removed != 1 {
		t.Fatalf("added/removed = %d/%d, want 1/1", added, removed)
	}
}
