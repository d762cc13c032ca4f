package favorites

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/tqc04/basket/internal/notify"
	"github.com/tqc04/basket/internal/session"
	"github.com/tqc04/basket/internal/shopapi"
)

// User-facing messages for favorites outcomes.
const (
	msgLoginRequired = "Sign in to save favorites"
	msgAdded         = "Added to favorites"
	msgRemoved       = "Removed from favorites"
	msgAddFailed     = "Could not add to favorites"
	msgRemoveFailed  = "Could not remove from favorites"
)

// Store maintains the signed-in user's favorited products and answers
// membership checks for UI badges.
//
// Add and remove deliberately reconcile differently: add reloads the whole
// list because the entry's denormalized display fields only exist
// server-side, while remove filters locally since the client already holds
// the full entry and deletion cannot change it.
type Store struct {
	backend  shopapi.Backend
	session  *session.Session
	notifier notify.Notifier
	logf     func(format string, args ...any)

	mu       sync.Mutex
	items    []shopapi.Product
	inflight int
}

// New builds a favorites store.
func New(backend shopapi.Backend, sess *session.Session, notifier notify.Notifier) *Store {
	return &Store{
		backend:  backend,
		session:  sess,
		notifier: notifier,
		logf:     log.Printf,
	}
}

// WatchSession subscribes the store to the authentication signal: login
// loads the list, logout empties it.
func (s *Store) WatchSession(ctx context.Context) {
	s.session.Watch(func(st session.State) {
		if st.Authenticated {
			go s.Load(ctx)
			return
		}
		s.replace(nil)
	})
}

// Load fetches the favorites list. A no-op when signed out. Any failure
// resets the list to empty rather than leaving stale entries; the
// known-flaky favorites service's 500s are muted from the log.
func (s *Store) Load(ctx context.Context) {
	userID := s.session.UserID()
	if userID == "" {
		return
	}

	s.beginLoad()
	defer s.finishLoad()

	items, err := s.backend.FetchFavorites(ctx, userID)
	if err != nil {
		if apiErr, ok := shopapi.AsAPIError(err); !ok || apiErr.Status != http.StatusInternalServerError {
			s.logf("load favorites failed: %v", err)
		}
		s.replace(nil)
		return
	}
	s.replace(items)
}

// Add marks a product as favorited, then reloads the full list so the new
// entry carries the server's denormalized product data.
func (s *Store) Add(ctx context.Context, productID string) bool {
	userID := s.session.UserID()
	if userID == "" {
		s.notifier.Notify(notify.LevelWarning, msgLoginRequired)
		return false
	}

	if err := s.backend.AddFavorite(ctx, userID, productID); err != nil {
		s.logf("add favorite failed: %v", err)
		msg := msgAddFailed
		if apiErr, ok := shopapi.AsAPIError(err); ok {
			if server := apiErr.ServerMessage(); server != "" {
				msg = server
			}
		}
		s.notifier.Notify(notify.LevelError, msg)
		return false
	}

	s.Load(ctx)
	s.notifier.Notify(notify.LevelSuccess, msgAdded)
	return true
}

// Remove clears a product's favorited mark and filters it out of the local
// list immediately; the client already holds everything deletion affects.
func (s *Store) Remove(ctx context.Context, productID string) bool {
	userID := s.session.UserID()
	if userID == "" {
		return false
	}

	if err := s.backend.RemoveFavorite(ctx, userID, productID); err != nil {
		s.logf("remove favorite failed: %v", err)
		msg := msgRemoveFailed
		if apiErr, ok := shopapi.AsAPIError(err); ok {
			if server := apiErr.ServerMessage(); server != "" {
				msg = server
			}
		}
		s.notifier.Notify(notify.LevelError, msg)
		return false
	}

	s.mu.Lock()
	kept := s.items[:0:0]
	for _, p := range s.items {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	s.items = kept
	s.mu.Unlock()

	s.notifier.Notify(notify.LevelInfo, msgRemoved)
	return true
}

// Toggle adds or removes based on current membership.
func (s *Store) Toggle(ctx context.Context, productID string) bool {
	if s.IsFavorite(productID) {
		return s.Remove(ctx, productID)
	}
	return s.Add(ctx, productID)
}

// IsFavorite reports membership by product id.
func (s *Store) IsFavorite(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.items {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// Items returns a copy of the current list.
func (s *Store) Items() []shopapi.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	dup := make([]shopapi.Product, len(s.items))
	copy(dup, s.items)
	return dup
}

// Loading reports whether a list fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

func (s *Store) replace(items []shopapi.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}

func (s *Store) beginLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight++
}

func (s *Store) finishLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
}
