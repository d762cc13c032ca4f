package compare

import (
	"fmt"
	"log"
	"sync"

	"github.com/tqc04/basket/internal/notify"
	"github.com/tqc04/basket/internal/product"
)

// MaxProducts bounds the comparison set. Four products is the widest
// side-by-side table the comparison view renders.
const MaxProducts = 4

// Store maintains the client-only comparison set: at most MaxProducts
// products, membership keyed by id, insertion order preserved for display.
// When full, adding a new product evicts the oldest entry (FIFO).
//
// The set is never sent to the server. Every mutation rewrites the whole
// set to local durable storage; it is lost if that storage is cleared and
// is not shared across devices.
type Store struct {
	notifier notify.Notifier
	persist  Persister
	logf     func(format string, args ...any)

	mu    sync.Mutex
	items []product.Summary
}

// Persister saves and loads the full comparison set. FilePersister is the
// production implementation; tests use an in-memory one.
type Persister interface {
	Save(items []product.Summary) error
	Load() ([]product.Summary, error)
}

// New builds a compare store, seeding the set from the persister. A load
// failure starts empty; comparison state is never worth failing startup.
func New(persist Persister, notifier notify.Notifier) *Store {
	s := &Store{
		notifier: notifier,
		persist:  persist,
		logf:     log.Printf,
	}
	items, err := persist.Load()
	if err != nil {
		s.logf("load compare set failed: %v", err)
		items = nil
	}
	if len(items) > MaxProducts {
		items = items[len(items)-MaxProducts:]
	}
	s.items = items
	return s
}

// Add puts a product in the comparison set.
//
//   - Already present: the set is untouched (idempotent), an info toast
//     notes the duplicate.
//   - At capacity: the oldest entry is evicted, the new product appended,
//     and the toast names both.
//   - Otherwise: appended, with a success toast carrying the running count.
func (s *Store) Add(p product.Summary) {
	s.mu.Lock()
	if s.containsLocked(p.ID) {
		s.mu.Unlock()
		s.notifier.Notify(notify.LevelInfo, fmt.Sprintf("%q is already in the comparison", p.Name))
		return
	}

	var evicted *product.Summary
	if len(s.items) >= MaxProducts {
		old := s.items[0]
		evicted = &old
		s.items = append(s.items[1:len(s.items):len(s.items)], p)
	} else {
		s.items = append(s.items, p)
	}
	count := len(s.items)
	s.persistLocked()
	s.mu.Unlock()

	if evicted != nil {
		s.notifier.Notify(notify.LevelInfo,
			fmt.Sprintf("Added %q, removed %q to make room", p.Name, evicted.Name))
		return
	}
	s.notifier.Notify(notify.LevelSuccess,
		fmt.Sprintf("Added %q to comparison (%d/%d)", p.Name, count, MaxProducts))
}

// Remove filters a product out of the set. Removing an absent id is a
// silent no-op.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	var removed *product.Summary
	kept := s.items[:0:0]
	for _, p := range s.items {
		if p.ID == productID {
			found := p
			removed = &found
			continue
		}
		kept = append(kept, p)
	}
	if removed == nil {
		s.mu.Unlock()
		return
	}
	s.items = kept
	s.persistLocked()
	s.mu.Unlock()

	s.notifier.Notify(notify.LevelInfo, fmt.Sprintf("Removed %q from comparison", removed.Name))
}

// Clear empties the set, with a toast naming the count cleared. Clearing an
// already empty set emits nothing.
func (s *Store) Clear() {
	s.mu.Lock()
	count := len(s.items)
	if count == 0 {
		s.mu.Unlock()
		return
	}
	s.items = nil
	s.persistLocked()
	s.mu.Unlock()

	s.notifier.Notify(notify.LevelInfo, fmt.Sprintf("Cleared %d products from comparison", count))
}

// Contains reports membership by product id.
func (s *Store) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.containsLocked(productID)
}

// CanAddMore reports whether the set is below capacity.
func (s *Store) CanAddMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) < MaxProducts
}

// Count returns the current set size.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Items returns the set in display order.
func (s *Store) Items() []product.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	dup := make([]product.Summary, len(s.items))
	copy(dup, s.items)
	return dup
}

func (s *Store) containsLocked(productID string) bool {
	for _, p := range s.items {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// persistLocked mirrors the whole set to durable storage. Persistence
// failures are logged only; the in-memory set stays usable.
func (s *Store) persistLocked() {
	if err := s.persist.Save(s.items); err != nil {
		s.logf("save compare set failed: %v", err)
	}
}
