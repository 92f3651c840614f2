package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/headerauth/internal/client/events"
	"github.com/dmitrijs2005/headerauth/internal/logging"
)

var testAnchor = events.Rect{X: 60, Y: 0, W: 20, H: 5}

func TestMenu_ObserverOnlyWhileOpen(t *testing.T) {
	doc := events.NewDocument()
	m := NewMenu(doc, testAnchor, logging.Discard())

	assert.Zero(t, doc.ObserverCount())

	assert.True(t, m.Toggle())
	assert.Equal(t, 1, doc.ObserverCount())
	assert.False(t, doc.ScrollLocked())

	assert.False(t, m.Toggle())
	assert.Zero(t, doc.ObserverCount())
}

func TestMenu_OutsideClickCloses(t *testing.T) {
	doc := events.NewDocument()
	m := NewMenu(doc, testAnchor, logging.Discard())
	m.Toggle()

	doc.Dispatch(events.PointerEvent{Point: events.Point{X: 65, Y: 2}})
	assert.True(t, m.IsOpen())

	doc.Dispatch(events.PointerEvent{Point: events.Point{X: 5, Y: 20}})
	assert.False(t, m.IsOpen())
	assert.Zero(t, doc.ObserverCount())
}

func TestMenu_LeavesScrollLockAlone(t *testing.T) {
	doc := events.NewDocument()
	doc.LockScroll()
	m := NewMenu(doc, testAnchor, logging.Discard())

	m.Toggle()
	m.Close()
	m.Teardown()

	assert.True(t, doc.ScrollLocked())
}

func TestMenu_SharedDocumentWithModal(t *testing.T) {
	doc := events.NewDocument()
	modal := NewModal(doc, testModalRect, logging.Discard())
	menu := NewMenu(doc, testAnchor, logging.Discard())
	modal.Mount()

	modal.Open()
	menu.Toggle()
	assert.Equal(t, 2, doc.ObserverCount())

	doc.Dispatch(events.PointerEvent{Point: events.Point{X: 0, Y: 30}})

	assert.False(t, modal.IsOpen())
	assert.False(t, menu.IsOpen())
	assert.Zero(t, doc.ObserverCount())
	assert.False(t, doc.ScrollLocked())
}
