package cli

import (
	"context"
	"fmt"

	"github.com/sentinelai/sentinel-cli/internal/client/api"
)

func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Choose a password", a.out)
	if err != nil {
		return err
	}

	req := api.SignupRequest{Username: username, Email: email, Password: password}
	if err := a.auth.Register(ctx, req); err != nil {
		fmt.Fprintln(a.out, "Registration failed:", err)
		return err
	}

	fmt.Fprintln(a.out, "Account created. You can sign in now.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, email, password); err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return err
	}

	if p, err := a.session.Profile(ctx); err == nil && p != nil {
		fmt.Fprintln(a.out, "Welcome,", p.DisplayName())
	} else {
		fmt.Fprintln(a.out, "Signed in.")
	}

	return a.replayPending(ctx)
}

// GoogleLogin exchanges a Google ID token for a session. The token is
// obtained out of band (the OAuth consent flow happens in a browser).
func (a *App) GoogleLogin(ctx context.Context) error {
	idToken, err := GetSimpleText(a.reader, "Paste the Google ID token", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.GoogleLogin(ctx, idToken); err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return err
	}

	fmt.Fprintln(a.out, "Signed in with Google.")
	return a.replayPending(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout", "error", err)
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter the account email", a.out)
	if err != nil {
		return err
	}
	if err := a.auth.ForgotPassword(ctx, email); err != nil {
		fmt.Fprintln(a.out, "Request failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "If the address is registered, a reset email is on its way.")
	fmt.Fprintln(a.out, "Use 'reset' once you have the token.")
	return nil
}

// ResetPassword completes the forgot flow with the emailed token. It never
// signs the user in; they log in with the new password afterwards.
func (a *App) ResetPassword(ctx context.Context) error {
	token, err := GetSimpleText(a.reader, "Paste the reset token", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("New password", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.ResetPassword(ctx, token, password); err != nil {
		fmt.Fprintln(a.out, "Reset failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Password reset. You can sign in with the new password.")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	summary, err := a.session.Describe(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, summary)
	return nil
}
