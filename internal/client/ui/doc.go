// Package ui implements the header's behaviour without any rendering: the
// auth form submission pipeline, the login modal and user menu visibility
// machines, and the Header that composes them around a session store.
//
// Rendering, toasts and routing belong to the caller and are reached through
// the Notifier and Navigator interfaces.
//
// All controllers are safe for concurrent use. Remote calls run without
// holding controller locks, and at most one form submission is in flight at a
// time.
package ui
