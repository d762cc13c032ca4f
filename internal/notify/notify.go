package notify

import "sync"

// Level describes the severity of a user-facing notification.
type Level int

const (
	LevelSuccess Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return "info"
}

// Event is a single notification: a severity and a display message.
type Event struct {
	Level   Level
	Message string
}

// Notifier is the publishing side of the relay. Stores depend on this
// interface rather than on the concrete Bus.
type Notifier interface {
	Notify(level Level, message string)
}

// Ensure Bus implements Notifier at compile time.
var _ Notifier = (*Bus)(nil)

// Bus is a process-wide fire-and-forget notification relay. Events are
// delivered synchronously to every subscriber registered at publish time;
// with no subscribers the event is dropped. There is no queue and no
// delivery guarantee.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

// NewBus returns an empty bus ready for use.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Event))}
}

// Subscribe registers fn to receive future events and returns a cancel
// function that removes the subscription.
func (b *Bus) Subscribe(fn func(Event)) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Notify publishes an event to all current subscribers.
func (b *Bus) Notify(level Level, message string) {
	b.mu.Lock()
	fns := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	ev := Event{Level: level, Message: message}
	for _, fn := range fns {
		fn(ev)
	}
}
