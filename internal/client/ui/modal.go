package ui

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/headerauth/internal/client/events"
	"github.com/dmitrijs2005/headerauth/internal/logging"
)

// Modal controls visibility of the auth dialog.
//
// While open the document scroll is locked and an outside-click observer is
// registered; while closed neither is active. Every transition re-applies the
// side effects of the target state, so Mount and Teardown leave the document
// clean whatever happened before.
type Modal struct {
	doc    *events.Document
	region events.Region
	log    logging.Logger

	mu     sync.Mutex
	open   bool
	cancel func()
}

func NewModal(doc *events.Document, region events.Region, log logging.Logger) *Modal {
	return &Modal{
		doc:    doc,
		region: region,
		log:    log.With("component", "modal"),
	}
}

// Mount applies the closed state's side effects.
func (m *Modal) Mount() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enter(false)
}

func (m *Modal) Open() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.open {
		return
	}
	m.enter(true)
}

func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return
	}
	m.enter(false)
}

// Toggle flips the state and returns the new one.
func (m *Modal) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enter(!m.open)
	return m.open
}

func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Teardown runs the closed-state cleanup unconditionally.
func (m *Modal) Teardown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enter(false)
}

// enter must be called with mu held.
func (m *Modal) enter(open bool) {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.open = open
	if open {
		m.doc.LockScroll()
		m.cancel = m.doc.Observe(m.onPointer)
	} else {
		m.doc.UnlockScroll()
	}
	m.log.Debug(context.Background(), "modal state", "open", open)
}

func (m *Modal) onPointer(ev events.PointerEvent) {
	if m.region.Contains(ev.Point) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.open {
		m.enter(false)
	}
}
