package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Nav(ctx context.Context) error
	Go(ctx context.Context, route string) error
	LoginButton(ctx context.Context) error
	CloseModal(ctx context.Context) error
	SetMode(ctx context.Context, mode string) error
	SetField(ctx context.Context, name, value string) error
	Submit(ctx context.Context) error
	Click(ctx context.Context, x, y string) error
	Menu(ctx context.Context) error
	Logout(ctx context.Context, reload bool) error
	Reload(ctx context.Context) error
	WhoAmI(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the header client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
//	Always:
//	  - help                  — show available commands
//	  - nav                   — show the navigation bar
//	  - go <route>            — follow a link
//	  - click <x> <y>         — pointer-down at a screen position
//	  - reload                — remount the header from storage
//	  - whoami                — show the signed-in identity
//	  - exit | quit           — leave the program
//
//	Not logged in:
//	  - login                 — toggle the login dialog
//	  - close                 — close the dialog
//	  - mode login|register   — switch the dialog's form
//	  - set <field> [value]   — fill a field (password prompts without echo)
//	  - submit                — send the form
//
//	Logged in:
//	  - menu                  — toggle the user menu
//	  - logout [--reload]     — sign out
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("header %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: nav, go, click, menu, logout [--reload], whoami, reload, exit")
			} else {
				printlnFn("Available commands: nav, go, click, login, close, mode, set, submit, whoami, reload, exit")
			}

		case "nav":
			_ = a.Nav(ctx)

		case "go":
			_ = a.Go(ctx, arg(args, 0))

		case "login":
			_ = a.LoginButton(ctx)

		case "close":
			_ = a.CloseModal(ctx)

		case "mode":
			_ = a.SetMode(ctx, arg(args, 0))

		case "set":
			value := ""
			if len(args) > 1 {
				value = strings.Join(args[1:], " ")
			}
			_ = a.SetField(ctx, arg(args, 0), value)

		case "submit":
			_ = a.Submit(ctx)

		case "click":
			_ = a.Click(ctx, arg(args, 0), arg(args, 1))

		case "menu":
			_ = a.Menu(ctx)

		case "logout":
			_ = a.Logout(ctx, arg(args, 0) == "--reload")

		case "reload":
			_ = a.Reload(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
