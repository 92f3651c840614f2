// Package cli provides the interactive terminal front-end for the site header.
//
// It wires configuration, session storage (SQLite or Redis), the gRPC
// credential client and a ui.Header, then drives the header from a REPL:
// the login dialog, the user menu, pointer clicks and navigation are all
// plain commands. Notifications print as tagged lines and navigation prints
// the target route.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and the command methods for details.
package cli
