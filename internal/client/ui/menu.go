package ui

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/headerauth/internal/client/events"
	"github.com/dmitrijs2005/headerauth/internal/logging"
)

// Menu controls the signed-in user's dropdown.
//
// Unlike Modal it registers its outside-click observer only while open and
// never touches the scroll lock.
type Menu struct {
	doc    *events.Document
	anchor events.Region
	log    logging.Logger

	mu     sync.Mutex
	open   bool
	cancel func()
}

func NewMenu(doc *events.Document, anchor events.Region, log logging.Logger) *Menu {
	return &Menu{
		doc:    doc,
		anchor: anchor,
		log:    log.With("component", "user-menu"),
	}
}

// Toggle flips the state and returns the new one.
func (m *Menu) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.open {
		m.closeLocked()
	} else {
		m.open = true
		m.cancel = m.doc.Observe(m.onPointer)
		m.log.Debug(context.Background(), "menu opened")
	}
	return m.open
}

func (m *Menu) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *Menu) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Teardown closes the menu and drops its observer.
func (m *Menu) Teardown() {
	m.Close()
}

func (m *Menu) closeLocked() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.open {
		m.open = false
		m.log.Debug(context.Background(), "menu closed")
	}
}

func (m *Menu) onPointer(ev events.PointerEvent) {
	if m.anchor.Contains(ev.Point) {
		return
	}
	m.Close()
}
