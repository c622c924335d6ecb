// Package input routes edge-triggered button events to whichever mode or
// page currently owns the buttons.
package input

// Button identifies a physical button on the clock.
type Button int

const (
	Mode Button = iota
	Left
	Right
	Select
)

func (b Button) String() string {
	switch b {
	case Mode:
		return "mode"
	case Left:
		return "left"
	case Right:
		return "right"
	case Select:
		return "select"
	default:
		return "unknown"
	}
}

// Event is the kind of press delivered for a button.
type Event int

const (
	Tap Event = iota
	LongPress
	Hold
)

func (e Event) String() string {
	switch e {
	case Tap:
		return "tap"
	case LongPress:
		return "long-press"
	case Hold:
		return "hold"
	default:
		return "unknown"
	}
}

type binding struct {
	button Button
	event  Event
}

// Dispatcher holds the handlers bound for the current screen. Owners clear
// it and attach their own handlers on every transition. The zero value is
// ready to use.
type Dispatcher struct {
	handlers map[binding]func()
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[binding]func())}
}

// On binds fn to the button/event pair, replacing any earlier handler.
func (d *Dispatcher) On(b Button, e Event, fn func()) {
	if fn == nil {
		delete(d.handlers, binding{b, e})
		return
	}
	if d.handlers == nil {
		d.handlers = make(map[binding]func())
	}
	d.handlers[binding{b, e}] = fn
}

// Clear drops every handler.
func (d *Dispatcher) Clear() {
	clear(d.handlers)
}

// Bound reports whether a handler is attached for the pair.
func (d *Dispatcher) Bound(b Button, e Event) bool {
	_, ok := d.handlers[binding{b, e}]
	return ok
}

// Len returns the number of bound handlers.
func (d *Dispatcher) Len() int {
	return len(d.handlers)
}

// Dispatch runs the handler for the pair and reports whether one was bound.
func (d *Dispatcher) Dispatch(b Button, e Event) bool {
	fn, ok := d.handlers[binding{b, e}]
	if !ok {
		return false
	}
	fn()
	return true
}
