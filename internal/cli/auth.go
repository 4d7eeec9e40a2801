package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/validation"
)

// Login prompts for credentials, surfaces field-level validation errors
// inline, and hands valid input to the session controller.
func (a *App) Login(ctx context.Context) {
	if u := a.ctrl.CurrentUser(); u != nil {
		fmt.Fprintf(a.out, "Already logged in as %s. Use 'logout' first.\n", u.Email)
		return
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if msg := validation.EmailError(email); msg != "" {
		fmt.Fprintln(a.out, msg)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if msg := validation.PasswordError(password); msg != "" {
		fmt.Fprintln(a.out, msg)
		return
	}

	res := a.ctrl.Login(ctx, email, password)
	if !res.Success {
		fmt.Fprintln(a.out, res.Error)
		return
	}
	fmt.Fprintf(a.out, "Welcome back, %s!\n", res.User.Name)
}

// Signup prompts for the new account fields and creates the account through
// the session controller.
func (a *App) Signup(ctx context.Context) {
	if u := a.ctrl.CurrentUser(); u != nil {
		fmt.Fprintf(a.out, "Already logged in as %s. Use 'logout' first.\n", u.Email)
		return
	}

	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if msg := validation.NameError(name); msg != "" {
		fmt.Fprintln(a.out, msg)
		return
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if msg := validation.EmailError(email); msg != "" {
		fmt.Fprintln(a.out, msg)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if msg := validation.PasswordError(password); msg != "" {
		fmt.Fprintln(a.out, msg)
		return
	}

	res := a.ctrl.Signup(ctx, name, email, password)
	if !res.Success {
		fmt.Fprintln(a.out, res.Error)
		return
	}
	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", res.User.Name)
}

// Logout ends the current session.
func (a *App) Logout(ctx context.Context) {
	a.ctrl.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
}

// Whoami prints the current session user, if any.
func (a *App) Whoami() {
	u := a.ctrl.CurrentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}
	fmt.Fprintf(a.out, "%s <%s> (id %s)\n", u.Name, u.Email, u.ID)
}
