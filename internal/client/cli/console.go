package cli

import (
	"fmt"
	"io"
	"sync"
)

// consoleNotifier prints notifications as tagged lines.
type consoleNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func newConsoleNotifier(w io.Writer) *consoleNotifier {
	return &consoleNotifier{w: w}
}

func (n *consoleNotifier) print(tag, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "[%s] %s\n", tag, msg)
}

func (n *consoleNotifier) Info(msg string)    { n.print("info", msg) }
func (n *consoleNotifier) Success(msg string) { n.print("success", msg) }
func (n *consoleNotifier) Error(msg string)   { n.print("error", msg) }

// router remembers the current route and announces every navigation.
type router struct {
	mu      sync.Mutex
	w       io.Writer
	current string
}

func newRouter(w io.Writer, start string) *router {
	return &router{w: w, current: start}
}

func (r *router) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = route
	fmt.Fprintf(r.w, "-> %s\n", route)
}

func (r *router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
