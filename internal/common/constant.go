// Package common contains constants shared by the header client layers:
// storage slot names, route names, header metadata keys and validation limits.
package common

// Persisted slot names. Token and identity live in durable storage and are
// only ever removed together by logout.
const (
	SlotToken    = "token"
	SlotIdentity = "user"
)

// SlotLoggedOut is the one-shot marker kept in tab-scoped storage. It is set
// by surfaces that log out and reload, and consumed by the next mount.
const (
	SlotLoggedOut  = "loggedOut"
	LoggedOutValue = "true"
)

// AbsentMarker is what a careless writer stores when it serialises a missing
// value. Restoring treats it like corrupt data.
const AbsentMarker = "undefined"

// Routes known to the header.
const (
	RouteHome     = "/home"
	RouteAbout    = "/about"
	RouteProducts = "/products"
	RouteContact  = "/contact"
	RouteProfile  = "/profile"
)

// gRPC metadata keys attached to outbound calls.
const (
	AccessTokenHeaderName = "access_token"
	RequestIDHeaderName   = "x-request-id"
)

// MinPasswordLength is the shortest password the auth form will submit.
const MinPasswordLength = 6
