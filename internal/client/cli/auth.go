package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/moviedb/internal/client/forms"
	"github.com/dmitrijs2005/moviedb/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for the registration form and creates a local account.
// On success the new user is signed in and the default search runs.
func (a *App) Register(ctx context.Context) error {
	a.println(services.NoPasswordRecoveryNotice)

	var form forms.Registration
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
	if form.ConfirmPassword, err = getPassword(a.reader, "Confirm password", a.out); err != nil {
		return err
	}

	if err := a.session.Register(ctx, form); err != nil {
		return err
	}

	a.printf("Welcome, %s!\n", form.Username)
	a.afterSignIn(ctx)
	return nil
}

// Login prompts for credentials and signs the user in.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, username, password); err != nil {
		return err
	}

	a.printf("Welcome back, %s!\n", username)
	a.afterSignIn(ctx)
	return nil
}

// afterSignIn shows the watchlist summary and runs the default search.
// A failed search does not undo the sign-in.
func (a *App) afterSignIn(ctx context.Context) {
	a.println(watchlistSummary(a.watchlist.Len()))
	if err := a.Search(ctx, DefaultQuery); err != nil {
		a.println(fmt.Sprintf("Search failed: %v", err))
	}
}

// Logout forgets the signed-in user and the last search.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.results = nil
	a.println("Logged out.")
	return nil
}
