package events

import (
	"sync"

	"github.com/google/uuid"
)

// Observer receives pointer events dispatched to the document.
type Observer func(ev PointerEvent)

type registration struct {
	id uuid.UUID
	fn Observer
}

// Document is the shared event stream and scroll-lock flag.
type Document struct {
	mu           sync.Mutex
	observers    []registration
	scrollLocked bool
}

func NewDocument() *Document {
	return &Document{}
}

// Observe registers fn and returns a func that removes it. Calling the
// returned func more than once is harmless.
func (d *Document) Observe(fn Observer) (cancel func()) {
	id := uuid.New()

	d.mu.Lock()
	d.observers = append(d.observers, registration{id: id, fn: fn})
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(id) })
	}
}

func (d *Document) remove(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, r := range d.observers {
		if r.id == id {
			d.observers = append(d.observers[:i:i], d.observers[i+1:]...)
			return
		}
	}
}

// Dispatch delivers ev to the observers registered at the moment of the call,
// in registration order.
func (d *Document) Dispatch(ev PointerEvent) {
	d.mu.Lock()
	snapshot := make([]registration, len(d.observers))
	copy(snapshot, d.observers)
	d.mu.Unlock()

	for _, r := range snapshot {
		if !d.registered(r.id) {
			// Cancelled by an earlier observer of this same event.
			continue
		}
		r.fn(ev)
	}
}

func (d *Document) registered(id uuid.UUID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, r := range d.observers {
		if r.id == id {
			return true
		}
	}
	return false
}

// ObserverCount reports how many observers are registered.
func (d *Document) ObserverCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.observers)
}

func (d *Document) LockScroll() {
	d.mu.Lock()
	d.scrollLocked = true
	d.mu.Unlock()
}

func (d *Document) UnlockScroll() {
	d.mu.Lock()
	d.scrollLocked = false
	d.mu.Unlock()
}

func (d *Document) ScrollLocked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrollLocked
}
