package cli

import (
	"context"
)

// Register prompts for an email and password and creates an account. The
// new session is active right away.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	user, err := a.api.Register(ctx, email, password)
	if err != nil {
		return a.fail(err)
	}
	a.user = user
	a.printf("Registered as %s (%s)\n", user.Email, user.Role)
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	user, err := a.api.Login(ctx, email, password)
	if err != nil {
		return a.fail(err)
	}
	a.user = user
	a.printf("Logged in as %s (%s)\n", user.Email, user.Role)
	return nil
}

// Logout forgets the session token locally.
func (a *App) Logout(context.Context) error {
	a.api.Logout()
	a.user = nil
	a.printf("Logged out.\n")
	return nil
}

// Me shows the current account as the server sees it now.
func (a *App) Me(ctx context.Context) error {
	user, err := a.api.WhoAmI(ctx)
	if err != nil {
		return a.fail(err)
	}
	a.user = user
	a.printf("#%d %s %s since %s\n", user.ID, user.Email, user.Role, user.CreatedAt.Format("2006-01-02"))
	return nil
}
