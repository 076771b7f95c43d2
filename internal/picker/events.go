package picker

// Subscription is a registered event handler. Dispose is idempotent.
type Subscription interface {
	Dispose()
}

// PointerEvent is a click anywhere in the host document.
type PointerEvent struct {
	Target  TriggerID // trigger under the pointer, "" if none
	InPopup bool      // the click landed inside the open popup
}

// EventSource delivers host events to the controller.
type EventSource interface {
	SubscribeFocus(id TriggerID, fn func()) Subscription
	SubscribePointer(fn func(PointerEvent)) Subscription
}

// Bus is an in-process EventSource. Hosts without a native event system
// (the CLI, tests) push events through it. Not safe for concurrent use.
type Bus struct {
	nextID  int
	focus   map[TriggerID][]focusHandler
	pointer []pointerHandler
}

type focusHandler struct {
	id int
	fn func()
}

type pointerHandler struct {
	id int
	fn func(PointerEvent)
}

type subscription struct {
	dispose func()
	done    bool
}

func (s *subscription) Dispose() {
	if s.done {
		return
	}
	s.done = true
	s.dispose()
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{focus: make(map[TriggerID][]focusHandler)}
}

// SubscribeFocus registers fn for focus events on id.
func (b *Bus) SubscribeFocus(id TriggerID, fn func()) Subscription {
	b.nextID++
	hid := b.nextID
	b.focus[id] = append(b.focus[id], focusHandler{id: hid, fn: fn})

	return &subscription{dispose: func() {
		handlers := b.focus[id]
		for i, h := range handlers {
			if h.id == hid {
				b.focus[id] = append(handlers[:i:i], handlers[i+1:]...)
				break
			}
		}
		if len(b.focus[id]) == 0 {
			delete(b.focus, id)
		}
	}}
}

// SubscribePointer registers fn for every pointer event.
func (b *Bus) SubscribePointer(fn func(PointerEvent)) Subscription {
	b.nextID++
	hid := b.nextID
	b.pointer = append(b.pointer, pointerHandler{id: hid, fn: fn})

	return &subscription{dispose: func() {
		for i, h := range b.pointer {
			if h.id == hid {
				b.pointer = append(b.pointer[:i:i], b.pointer[i+1:]...)
				break
			}
		}
	}}
}

// Focus delivers a focus event to the handlers of id in registration order.
func (b *Bus) Focus(id TriggerID) {
	handlers := append([]focusHandler(nil), b.focus[id]...)
	for _, h := range handlers {
		h.fn()
	}
}

// Pointer delivers a pointer event to every pointer handler.
func (b *Bus) Pointer(ev PointerEvent) {
	handlers := append([]pointerHandler(nil), b.pointer...)
	for _, h := range handlers {
		h.fn(ev)
	}
}

// FocusSubscribers returns how many focus handlers id has.
func (b *Bus) FocusSubscribers(id TriggerID) int {
	return len(b.focus[id])
}

// PointerSubscribers returns how many pointer handlers are registered.
func (b *Bus) PointerSubscribers() int {
	return len(b.pointer)
}
