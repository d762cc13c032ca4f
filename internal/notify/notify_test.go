package notify

import "testing"

func TestBus_DeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()

	var first, second []Event
	bus.Subscribe(func(ev Event) { first = append(first, ev) })
	bus.Subscribe(func(ev Event) { second = append(second, ev) })

	bus.Notify(LevelSuccess, "added to cart")

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("deliveries = %d/%d, want 1/1", len(first), len(second))
	}
	if first[0].Level != LevelSuccess || first[0].Message != "added to cart" {
		t.Fatalf("event = %#v, want success/added to cart", first[0])
	}
}

func TestBus_NoSubscribersDropsSilently(t *testing.T) {
	bus := NewBus()

	// Must not panic or block.
	bus.Notify(LevelError, "nobody listening")
}

func TestBus_CancelStopsDelivery(t *testing.T) {
	bus := NewBus()

	var got []Event
	cancel := bus.Subscribe(func(ev Event) { got = append(got, ev) })

	bus.Notify(LevelInfo, "one")
	cancel()
	bus.Notify(LevelInfo, "two")

	if len(got) != 1 || got[0].Message != "one" {
		t.Fatalf("events = %#v, want exactly [one]", got)
	}
}

func TestBus_UnsubscribeFromCallback(t *testing.T) {
	bus := NewBus()

	var count int
	var cancel func()
	cancel = bus.Subscribe(func(Event) {
		count++
		cancel()
	})

	bus.Notify(LevelInfo, "first")
	bus.Notify(LevelInfo, "second")

	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestLevel_String(t *testing.T) {
	cases := map[Level]string{
		LevelSuccess: "success",
		LevelInfo:    "info",
		LevelWarning: "warning",
		LevelError:   "error",
		Level(99):    "info",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Fatalf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}
