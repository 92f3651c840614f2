package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/headerauth/internal/client/events"
	"github.com/dmitrijs2005/headerauth/internal/client/ui"
	"github.com/dmitrijs2005/headerauth/internal/common"
	"github.com/dmitrijs2005/headerauth/internal/logging"
)

var (
	errUsage       = errors.New("usage")
	errModalClosed = errors.New("the login dialog is closed, type 'login' first")
)

// Nav prints the navigation bar, marking the current route.
func (a *App) Nav(_ context.Context) error {
	current := a.router.Current()
	for _, l := range a.header.NavLinks() {
		marker := " "
		if l.Route == current {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %-14s %s\n", marker, l.Label, l.Route)
	}
	return nil
}

// Go follows a navigation link.
func (a *App) Go(_ context.Context, route string) error {
	if route == "" {
		fmt.Fprintln(a.out, "Usage: go <route>")
		return errUsage
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	a.router.Navigate(route)
	return nil
}

// LoginButton presses the login button.
func (a *App) LoginButton(_ context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, a.header.Greeting())
		return nil
	}
	if a.header.LoginButton() {
		a.printForm()
	} else {
		fmt.Fprintln(a.out, "Login dialog closed")
	}
	return nil
}

func (a *App) CloseModal(_ context.Context) error {
	a.header.CloseModal()
	return nil
}

// SetMode switches the dialog between login and register.
func (a *App) SetMode(_ context.Context, arg string) error {
	mode, err := ui.ParseMode(arg)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: mode login|register")
		return err
	}
	if err := a.header.Form().SwitchMode(mode); err != nil {
		return err
	}
	a.printForm()
	return nil
}

// SetField fills one form field. The password is read without echo when no
// value is given on the command line.
func (a *App) SetField(_ context.Context, name, value string) error {
	if name == "" {
		fmt.Fprintf(a.out, "Usage: set <%s> <value>\n", strings.Join(ui.FieldNames, "|"))
		return errUsage
	}
	if name == ui.FieldPassword && value == "" {
		pw, err := getPassword(a.out)
		if err != nil {
			return err
		}
		value = string(pw)
		common.WipeByteArray(pw)
	}
	if err := a.header.Form().UpdateField(name, value); err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	return nil
}

// Submit sends the dialog's form.
func (a *App) Submit(ctx context.Context) error {
	if !a.header.Modal().IsOpen() {
		fmt.Fprintln(a.out, errModalClosed)
		return errModalClosed
	}
	// Failures have already been shown by the notifier.
	return a.header.Form().Submit(ctx)
}

// Click dispatches a pointer-down at x,y.
func (a *App) Click(_ context.Context, xs, ys string) error {
	x, errX := strconv.Atoi(xs)
	y, errY := strconv.Atoi(ys)
	if errX != nil || errY != nil {
		fmt.Fprintln(a.out, "Usage: click <x> <y>")
		return errUsage
	}
	a.header.Pointer(events.Point{X: x, Y: y})
	return nil
}

// Menu toggles the signed-in user's dropdown.
func (a *App) Menu(_ context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return ui.ErrNotAuthenticated
	}
	if a.header.ToggleMenu() {
		fmt.Fprintf(a.out, "%s\n  - Account (go %s)\n  - Logout (logout)\n", a.header.Greeting(), common.RouteProfile)
	}
	return nil
}

// Logout signs out. With reload the logged-out marker is set and the page
// is reloaded, so the notice comes from the fresh mount instead.
func (a *App) Logout(ctx context.Context, reload bool) error {
	if !reload {
		if err := a.header.Logout(ctx); err != nil {
			fmt.Fprintln(a.out, "Not logged in")
			return err
		}
		return nil
	}

	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return ui.ErrNotAuthenticated
	}
	if err := a.store.Clear(ctx); err != nil {
		a.log.Warn(ctx, "clear session before reload", "error", err)
	}
	if err := a.store.MarkLoggedOut(ctx); err != nil {
		a.log.Warn(ctx, "set logged-out marker", "error", err)
	}
	a.router.Navigate(a.config.HomeRoute)
	return a.Reload(ctx)
}

// Reload unmounts the header and mounts a new one from persisted state.
func (a *App) Reload(ctx context.Context) error {
	a.unmount()
	return a.mount(ctx)
}

// WhoAmI prints the current identity. The token itself is never shown.
func (a *App) WhoAmI(_ context.Context) error {
	id := a.store.Identity()
	if id == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "name:    %s\n", id.Name)
	fmt.Fprintf(a.out, "email:   %s\n", id.Email)
	if id.Subject != "" {
		fmt.Fprintf(a.out, "subject: %s\n", id.Subject)
	}
	if id.Role != "" {
		fmt.Fprintf(a.out, "role:    %s\n", id.Role)
	}
	if id.ExpiresAt != nil {
		fmt.Fprintf(a.out, "expires: %s\n", id.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(a.out, "token:   %s\n", logging.Redact(a.store.Token()))
	return nil
}

// printForm shows the dialog with the password masked.
func (a *App) printForm() {
	v := a.header.Render()
	title := "Login"
	if v.Mode == ui.ModeRegister {
		title = "Create account"
	}
	fmt.Fprintf(a.out, "== %s ==\n", title)

	for _, name := range ui.FieldNames {
		if v.Mode == ui.ModeLogin && name != ui.FieldEmail && name != ui.FieldPassword {
			continue
		}
		value, _ := v.Fields.Get(name)
		if name == ui.FieldPassword {
			value = strings.Repeat("*", len([]rune(value)))
		}
		fmt.Fprintf(a.out, "  %-8s %s\n", name+":", value)
	}

	if v.Mode == ui.ModeLogin {
		fmt.Fprintln(a.out, "No account? mode register")
	} else {
		fmt.Fprintln(a.out, "Have an account? mode login")
	}
}

// getStatus renders the prompt status.
func (a *App) getStatus() string {
	if a.header == nil {
		return ""
	}
	v := a.header.Render()
	s := a.router.Current()
	if v.LoggedIn {
		s = a.store.Identity().DisplayName(common.MsgFallbackName) + " " + s
	}
	switch {
	case v.ModalOpen:
		s += " [" + string(v.Mode) + "]"
	case v.MenuOpen:
		s += " [menu]"
	}
	return fmt.Sprintf("(%s)", s)
}
