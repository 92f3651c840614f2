// Package events models the document the header lives in: a process-wide
// pointer-event stream that controllers can observe, and the scroll-lock flag
// a modal sets while it is shown.
//
// Observers are registered with Observe, which returns a cancel func. Both
// registration and cancellation are idempotent, and Dispatch runs observers
// outside the document lock, so an observer may cancel itself (or others)
// while handling an event.
package events
