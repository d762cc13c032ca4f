package compare

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/tqc04/basket/internal/notify"
	"github.com/tqc04/basket/internal/product"
)

type recorder struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recorder) Notify(level notify.Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, notify.Event{Level: level, Message: message})
}

func (r *recorder) last(t *testing.T) notify.Event {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		t.Fatal("no notifications recorded")
	}
	return r.events[len(r.events)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

type memPersister struct {
	items []product.Summary
	saves int
	fail  error
}

func (m *memPersister) Save(items []product.Summary) error {
	if m.fail != nil {
		return m.fail
	}
	m.items = append([]product.Summary(nil), items...)
	m.saves++
	return nil
}

func (m *memPersister) Load() ([]product.Summary, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	return m.items, nil
}

func summary(id, name string) product.Summary {
	return product.Summary{ID: id, Name: name, Price: 9.99}
}

func ids(items []product.Summary) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func newStore(t *testing.T, persist Persister, rec *recorder) *Store {
	t.Helper()
	s := New(persist, rec)
	s.logf = func(string, ...any) {}
	return s
}

func TestStore_AddEvictsOldestWhenFull(t *testing.T) {
	rec := &recorder{}
	s := newStore(t, &memPersister{}, rec)

	for _, p := range []product.Summary{
		summary("a", "Alpha"), summary("b", "Bravo"),
		summary("c", "Charlie"), summary("d", "Delta"),
	} {
		s.Add(p)
	}
	if got := ids(s.Items()); len(got) != 4 || got[0] != "a" || got[3] != "d" {
		t.Fatalf("items = %v, want [a b c d]", got)
	}
	if s.CanAddMore() {
		t.Fatal("CanAddMore() = true at capacity")
	}

	s.Add(summary("e", "Echo"))

	got := ids(s.Items())
	want := []string{"b", "c", "d", "e"}
	if len(got) != len(want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("items = %v, want %v", got, want)
		}
	}
	ev := rec.last(t)
	if ev.Level != notify.LevelInfo {
		t.Fatalf("eviction level = %v, want info", ev.Level)
	}
	if !strings.Contains(ev.Message, "Echo") || !strings.Contains(ev.Message, "Alpha") {
		t.Fatalf("eviction message %q should name both products", ev.Message)
	}
}

func TestStore_AddIsIdempotent(t *testing.T) {
	rec := &recorder{}
	persist := &memPersister{}
	s := newStore(t, persist, rec)

	s.Add(summary("a", "Alpha"))
	saves := persist.saves
	s.Add(summary("a", "Alpha"))

	if got := s.Count(); got != 1 {
		t.Fatalf("Count() = %d after duplicate add, want 1", got)
	}
	if persist.saves != saves {
		t.Fatalf("duplicate add persisted %d extra times", persist.saves-saves)
	}
	ev := rec.last(t)
	if ev.Level != notify.LevelInfo {
		t.Fatalf("duplicate add level = %v, want info", ev.Level)
	}
	if !strings.Contains(ev.Message, "already") {
		t.Fatalf("duplicate add message = %q, want mention of already present", ev.Message)
	}
}

func TestStore_RemoveFiltersAndAbsentIsSilent(t *testing.T) {
	rec := &recorder{}
	s := newStore(t, &memPersister{}, rec)
	s.Add(summary("a", "Alpha"))
	s.Add(summary("b", "Bravo"))

	before := rec.count()
	s.Remove("zzz")
	if rec.count() != before {
		t.Fatal("removing absent product should be silent")
	}

	s.Remove("a")
	if got := ids(s.Items()); len(got) != 1 || got[0] != "b" {
		t.Fatalf("items = %v, want [b]", got)
	}
	if ev := rec.last(t); !strings.Contains(ev.Message, "Alpha") {
		t.Fatalf("removal message = %q, want mention of Alpha", ev.Message)
	}
	if s.Contains("a") || !s.Contains("b") {
		t.Fatal("Contains out of sync after removal")
	}
}

func TestStore_ClearEmptySetIsSilent(t *testing.T) {
	rec := &recorder{}
	s := newStore(t, &memPersister{}, rec)

	s.Clear()
	if rec.count() != 0 {
		t.Fatal("clearing empty set should emit nothing")
	}

	s.Add(summary("a", "Alpha"))
	s.Add(summary("b", "Bravo"))
	s.Clear()
	if s.Count() != 0 {
		t.Fatalf("Count() = %d after clear, want 0", s.Count())
	}
	if ev := rec.last(t); !strings.Contains(ev.Message, "2") {
		t.Fatalf("clear message = %q, want count of 2", ev.Message)
	}
}

func TestStore_LoadFailureStartsEmpty(t *testing.T) {
	rec := &recorder{}
	s := newStore(t, &memPersister{fail: errors.New("disk gone")}, rec)
	if s.Count() != 0 {
		t.Fatalf("Count() = %d after failed load, want 0", s.Count())
	}
}

func TestFilePersister_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	persist := NewFilePersister(filepath.Join(dir, "state"))

	loaded, err := persist.Load()
	if err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("missing file loaded %d items, want 0", len(loaded))
	}

	want := []product.Summary{summary("a", "Alpha"), summary("b", "Bravo")}
	if err := persist.Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	loaded, err = persist.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(loaded) != 2 || loaded[0].ID != "a" || loaded[1].Name != "Bravo" {
		t.Fatalf("Load() = %+v, want %+v", loaded, want)
	}
}

func TestStore_PersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	persist := NewFilePersister(dir)

	s := newStore(t, persist, rec)
	s.Add(summary("a", "Alpha"))
	s.Add(summary("b", "Bravo"))

	reborn := newStore(t, NewFilePersister(dir), rec)
	if got := ids(reborn.Items()); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("items after restart = %v, want [a b]", got)
	}
}
