package ui

// Notifier shows short-lived messages to the user. Calls are fire-and-forget.
type Notifier interface {
	Info(msg string)
	Success(msg string)
	Error(msg string)
}

// Navigator moves the application to a named route.
type Navigator interface {
	Navigate(route string)
}
