package input

import "testing"

func TestDispatchRunsBoundHandler(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	d.On(Left, Tap, func() { calls++ })

	if !d.Dispatch(Left, Tap) {
		t.Fatal("expected bound handler to run")
	}
	if d.Dispatch(Left, LongPress) {
		t.Fatal("expected unbound event to be ignored")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestClearDropsHandlers(t *testing.T) {
	d := NewDispatcher()
	d.On(Select, Tap, func() {})
	d.On(Mode, Hold, func() {})
	d.Clear()
	if d.Len() != 0 || d.Bound(Select, Tap) {
		t.Fatal("expected no handlers after Clear")
	}
}

func TestOnReplacesAndNilRemoves(t *testing.T) {
	d := NewDispatcher()
	var got string
	d.On(Right, Tap, func() { got = "first" })
	d.On(Right, Tap, func() { got = "second" })
	d.Dispatch(Right, Tap)
	if got != "second" {
		t.Fatalf("expected replacement handler, got %q", got)
	}
	d.On(Right, Tap, nil)
	if d.Bound(Right, Tap) {
		t.Fatal("expected nil handler to unbind")
	}
}

func TestZeroDispatcherIsUsable(t *testing.T) {
	var d Dispatcher
	if d.Dispatch(Mode, Tap) {
		t.Fatal("expected nothing bound on a zero dispatcher")
	}
	d.Clear()
	d.On(Mode, Tap, nil)
	fired := false
	d.On(Mode, Tap, func() { fired = true })
	if !d.Dispatch(Mode, Tap) || !fired {
		t.Fatal("expected a zero dispatcher to accept handlers")
	}
}
