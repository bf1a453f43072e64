package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/attendance/internal/client/client"
	"github.com/dmitrijs2005/attendance/internal/client/session"
	"github.com/dmitrijs2005/attendance/internal/client/views"
)

// getSimpleText, getPassword and getConfirmation are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getConfirmation = GetConfirmation
)

// Login prompts for username and password and signs in. Validation and
// server errors are printed; the returned error is for callers that care.
func (a *App) Login(ctx context.Context) error {
	var form views.LoginForm
	defer form.Wipe()

	var err error
	if form.Username, err = getSimpleText(a.reader, "Username", a.out); err != nil {
		return err
	}
	if form.Password, err = getPassword(a.reader, "Password", a.out); err != nil {
		return err
	}

	if err := form.Validate(); err != nil {
		printlnFn("Error:", views.ValidationMessage(err))
		return err
	}

	if err := a.auth.Login(ctx, form.Username, form.Password); err != nil {
		a.log.Info(ctx, "login failed", "username", form.Username, "error", err)
		printlnFn("Login Failed:", client.MessageOf(err, views.MsgInvalidCredentials))
		return err
	}

	return a.Home(ctx)
}

// Signup creates an account and signs in with it.
func (a *App) Signup(ctx context.Context) error {
	var form views.SignupForm
	defer form.Wipe()

	var err error
	if form.Username, err = getSimpleText(a.reader, "Username", a.out); err != nil {
		return err
	}
	if form.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if form.Password, err = getPassword(a.reader, "Password", a.out); err != nil {
		return err
	}
	if form.Confirm, err = getPassword(a.reader, "Confirm password", a.out); err != nil {
		return err
	}
	if form.IsManager, err = getConfirmation(a.reader, "Register as manager?", a.out); err != nil {
		return err
	}

	if err := form.Validate(); err != nil {
		printlnFn("Error:", views.ValidationMessage(err))
		return err
	}

	err = a.auth.Register(ctx, form.Username, form.Email, form.Password, form.IsManager)
	if err != nil {
		a.log.Info(ctx, "registration failed", "username", form.Username, "error", err)
		printlnFn("Registration Failed:", client.MessageOf(err, views.MsgRegistrationFailed))
		return err
	}

	printlnFn("Account created.")
	return a.Home(ctx)
}

// Logout asks for confirmation, then signs out. Local session data is
// removed even when the server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	ok, err := getConfirmation(a.reader, "Are you sure you want to logout?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := a.auth.Logout(ctx); err != nil {
		printlnFn("Signed out, but the local session could not be fully removed.")
		return err
	}
	printlnFn("Signed out.")
	return nil
}

// WhoAmI prints the signed-in account and when the token expires.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.auth.User()
	if u == nil {
		return nil
	}

	role := "employee"
	if u.IsManager {
		role = "manager"
	}
	printlnFn(fmt.Sprintf("%s <%s> (id %d, %s)", u.Username, u.Email, u.ID, role))

	token, err := a.tokens.Token(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to read token", "error", err)
		return err
	}
	if exp, ok := session.TokenExpiry(token); ok {
		state := "expires"
		if exp.Before(time.Now()) {
			state = "expired"
		}
		printlnFn(fmt.Sprintf("Session %s %s", state, exp.Local().Format(time.DateTime)))
	} else {
		printlnFn("Session expiry unknown")
	}
	return nil
}
