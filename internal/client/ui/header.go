package ui

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/headerauth/internal/client/client"
	"github.com/dmitrijs2005/headerauth/internal/client/events"
	"github.com/dmitrijs2005/headerauth/internal/client/models"
	"github.com/dmitrijs2005/headerauth/internal/client/session"
	"github.com/dmitrijs2005/headerauth/internal/common"
	"github.com/dmitrijs2005/headerauth/internal/logging"
)

// SessionState is the session store as seen by the header.
type SessionState interface {
	SessionCommitter
	Restore(ctx context.Context)
	Clear(ctx context.Context) error
	Identity() *models.Identity
	Subscribe(fn session.Listener) (cancel func())
	ConsumeLoggedOutMarker(ctx context.Context) bool
}

// NavLink is one entry of the static navigation bar.
type NavLink struct {
	Label string
	Route string
}

var navLinks = []NavLink{
	{Label: "Home", Route: common.RouteHome},
	{Label: "About", Route: common.RouteAbout},
	{Label: "Products", Route: common.RouteProducts},
	{Label: "Food library", Route: common.RouteContact},
	{Label: "40 years", Route: common.RouteContact},
}

// Layout places the hit regions of the header on the document.
type Layout struct {
	Modal      events.Rect
	MenuAnchor events.Rect
}

// DefaultLayout is an 80x24 terminal: the dialog in the middle, the user
// control in the top-right corner.
func DefaultLayout() Layout {
	return Layout{
		Modal:      events.Rect{X: 20, Y: 5, W: 40, H: 14},
		MenuAnchor: events.Rect{X: 60, Y: 0, W: 20, H: 6},
	}
}

// View is a snapshot of everything the header shows.
type View struct {
	LoggedIn     bool
	Greeting     string
	ModalOpen    bool
	MenuOpen     bool
	ScrollLocked bool
	Mode         Mode
	Fields       Fields
	Submitting   bool
}

type headerConfig struct {
	layout   Layout
	formOpts []FormOption
}

// HeaderOption configures a Header.
type HeaderOption func(*headerConfig)

func WithLayout(l Layout) HeaderOption {
	return func(c *headerConfig) { c.layout = l }
}

// WithFormOptions passes options through to the embedded Form.
func WithFormOptions(opts ...FormOption) HeaderOption {
	return func(c *headerConfig) { c.formOpts = append(c.formOpts, opts...) }
}

// Header composes the session store, the auth form, the modal and the user
// menu. A Header is mounted once; build a new one to remount.
type Header struct {
	store     SessionState
	doc       *events.Document
	notifier  Notifier
	navigator Navigator
	log       logging.Logger
	homeRoute string

	form  *Form
	modal *Modal
	menu  *Menu

	mu          sync.Mutex
	mounted     bool
	unmounted   bool
	unsubscribe func()
}

func NewHeader(store SessionState, c client.Client, doc *events.Document, n Notifier, nav Navigator, log logging.Logger, opts ...HeaderOption) *Header {
	cfg := headerConfig{layout: DefaultLayout()}
	for _, o := range opts {
		o(&cfg)
	}

	h := &Header{
		store:     store,
		doc:       doc,
		notifier:  n,
		navigator: nav,
		log:       log.With("component", "header"),
		homeRoute: common.RouteHome,
	}
	h.modal = NewModal(doc, cfg.layout.Modal, log)
	h.menu = NewMenu(doc, cfg.layout.MenuAnchor, log)

	formOpts := append([]FormOption{WithLoginHook(h.modal.Close)}, cfg.formOpts...)
	h.form = NewForm(c, store, n, nav, log, formOpts...)
	h.homeRoute = h.form.homeRoute
	return h
}

// Mount restores the session and wires the header to the document.
func (h *Header) Mount(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.mounted {
		return ErrAlreadyMounted
	}
	h.mounted = true

	h.store.Restore(ctx)
	h.modal.Mount()
	if h.store.ConsumeLoggedOutMarker(ctx) {
		h.notifier.Info(common.MsgLoggedOut)
	}
	h.unsubscribe = h.store.Subscribe(h.onIdentity)

	h.log.Info(ctx, "header mounted", "logged_in", h.store.Identity() != nil)
	return nil
}

func (h *Header) onIdentity(id *models.Identity) {
	if id == nil {
		h.menu.Close()
	}
}

// Unmount releases every document resource the header holds. In-flight
// submissions complete as no-ops.
func (h *Header) Unmount() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.unmounted {
		return
	}
	h.unmounted = true

	if h.unsubscribe != nil {
		h.unsubscribe()
		h.unsubscribe = nil
	}
	h.form.Close()
	h.modal.Teardown()
	h.menu.Teardown()
	h.log.Debug(context.Background(), "header unmounted")
}

// LoginButton toggles the auth dialog. It does nothing while signed in.
func (h *Header) LoginButton() bool {
	if h.store.Identity() != nil {
		return false
	}
	return h.modal.Toggle()
}

func (h *Header) CloseModal() {
	h.modal.Close()
}

// ToggleMenu opens or closes the user menu. It does nothing while signed out.
func (h *Header) ToggleMenu() bool {
	if h.store.Identity() == nil {
		return false
	}
	return h.menu.Toggle()
}

// Logout clears the session, closes the menu, goes home and says so once.
func (h *Header) Logout(ctx context.Context) error {
	if h.store.Identity() == nil {
		return ErrNotAuthenticated
	}
	if err := h.store.Clear(ctx); err != nil {
		// The in-memory session is gone regardless; the slots are retried on
		// the next restore.
		h.log.Warn(ctx, "clear persisted session", "error", err)
	}
	h.menu.Close()
	h.navigator.Navigate(h.homeRoute)
	h.notifier.Info(common.MsgLoggedOut)
	h.log.Info(ctx, "logged out")
	return nil
}

// Greeting is the label of the signed-in user control.
func (h *Header) Greeting() string {
	return "Hello, " + h.store.Identity().DisplayName(common.MsgFallbackName)
}

// NavLinks returns the navigation bar entries in display order.
func (h *Header) NavLinks() []NavLink {
	out := make([]NavLink, len(navLinks))
	copy(out, navLinks)
	return out
}

// Pointer delivers a pointer-down at p to the document.
func (h *Header) Pointer(p events.Point) {
	h.doc.Dispatch(events.PointerEvent{Point: p})
}

func (h *Header) Form() *Form   { return h.form }
func (h *Header) Modal() *Modal { return h.modal }
func (h *Header) Menu() *Menu   { return h.menu }

// Render snapshots the header state.
func (h *Header) Render() View {
	id := h.store.Identity()
	v := View{
		LoggedIn:     id != nil,
		ModalOpen:    h.modal.IsOpen(),
		MenuOpen:     h.menu.IsOpen(),
		ScrollLocked: h.doc.ScrollLocked(),
		Mode:         h.form.Mode(),
		Fields:       h.form.Values(),
		Submitting:   h.form.Submitting(),
	}
	if id != nil {
		v.Greeting = h.Greeting()
	}
	return v
}
