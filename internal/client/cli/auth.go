package cli

import (
	"context"
)

// Login runs the sign-in page: prompt for credentials, authenticate, and
// report the outcome.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	u, err := a.auth.Login(ctx, username, password)
	if err != nil {
		a.printf("Login failed: %v\n", err)
		return err
	}

	a.printf("Welcome back, %s!\n", u.Username)
	return nil
}

// Register runs the sign-up page. The password length rule is checked
// locally before the account request is sent.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email address", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	if len(password) < 8 {
		a.printf("Password must be at least 8 characters.\n")
		return nil
	}

	u, err := a.auth.Register(ctx, email, username, password)
	if err != nil {
		a.printf("Registration failed: %v\n", err)
		return err
	}

	a.printf("Account created. Welcome, %s!\n", u.Username)
	return nil
}

// Logout drops the stored session. Safe to call while signed out.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.printf("error: %v\n", err)
		return err
	}
	a.printf("Signed out.\n")
	return nil
}
