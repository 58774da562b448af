// Package services contains the application services of the Sentinel
// client: thin orchestration between the REST client and the local session
// store, one service per resource family.
package services

import (
	"context"
	"fmt"

	"github.com/sentinelai/sentinel-cli/internal/client/api"
	"github.com/sentinelai/sentinel-cli/internal/client/models"
	"github.com/sentinelai/sentinel-cli/internal/client/session"
	"github.com/sentinelai/sentinel-cli/internal/logging"
)

// AuthService covers account lifecycle and profile maintenance.
//
// Contract:
//   - Login/GoogleLogin: obtain a bearer token, persist it together with the
//     freshly fetched profile.
//   - Logout: best-effort server invalidation; the local session is evicted
//     even when the server call fails (tokens stay valid server-side until
//     expiry, discarding locally is the client's responsibility).
//   - CachedProfile/RefreshProfile: cache-then-refresh pair for the profile
//     view; the cached copy may be stale.
//
// All methods honor context cancellation.
type AuthService interface {
	Register(ctx context.Context, req api.SignupRequest) error
	Login(ctx context.Context, email, password string) error
	GoogleLogin(ctx context.Context, idToken string) error
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, current, updated string) error

	CachedProfile(ctx context.Context) (*models.Profile, error)
	RefreshProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, upd api.ProfileUpdate) (*models.Profile, error)
	UploadAvatar(ctx context.Context, filename string, data []byte) (*models.Profile, error)
	DeleteAvatar(ctx context.Context) error
}

type authService struct {
	client  api.Client
	session *session.Manager
	log     logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client
// and session manager.
func NewAuthService(client api.Client, sess *session.Manager, log logging.Logger) AuthService {
	return &authService{client: client, session: sess, log: log}
}

func (a *authService) Register(ctx context.Context, req api.SignupRequest) error {
	if _, err := a.client.Signup(ctx, req); err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	return nil
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return a.establish(ctx, token)
}

func (a *authService) GoogleLogin(ctx context.Context, idToken string) error {
	token, err := a.client.GoogleLogin(ctx, idToken)
	if err != nil {
		return fmt.Errorf("google login: %w", err)
	}
	return a.establish(ctx, token)
}

// establish persists the token, then fetches and caches the profile. The
// token must be stored first so the profile fetch is authenticated. A
// failed profile fetch is tolerated: the session is valid, the cache just
// stays empty until the next refresh.
func (a *authService) establish(ctx context.Context, token string) error {
	if err := a.session.SetToken(ctx, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	profile, err := a.client.Me(ctx)
	if err != nil {
		a.log.Warn(ctx, "profile fetch after login failed", "error", err)
		return nil
	}
	if err := a.session.SetProfile(ctx, profile); err != nil {
		a.log.Warn(ctx, "profile cache write failed", "error", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server-side logout failed", "error", err)
	}
	return a.session.Clear(ctx)
}

func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	return a.client.ForgotPassword(ctx, email)
}

// ResetPassword consumes the token emailed by the forgot-password flow.
// Resetting never signs the user in; they log in with the new password.
func (a *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return a.client.ResetPassword(ctx, token, newPassword)
}

func (a *authService) ChangePassword(ctx context.Context, current, updated string) error {
	return a.client.ChangePassword(ctx, current, updated)
}

func (a *authService) CachedProfile(ctx context.Context) (*models.Profile, error) {
	return a.session.Profile(ctx)
}

func (a *authService) RefreshProfile(ctx context.Context) (*models.Profile, error) {
	profile, err := a.client.Me(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.session.SetProfile(ctx, profile); err != nil {
		a.log.Warn(ctx, "profile cache write failed", "error", err)
	}
	return profile, nil
}

func (a *authService) UpdateProfile(ctx context.Context, upd api.ProfileUpdate) (*models.Profile, error) {
	profile, err := a.client.UpdateMe(ctx, upd)
	if err != nil {
		return nil, err
	}
	if err := a.session.SetProfile(ctx, profile); err != nil {
		a.log.Warn(ctx, "profile cache write failed", "error", err)
	}
	return profile, nil
}

func (a *authService) UploadAvatar(ctx context.Context, filename string, data []byte) (*models.Profile, error) {
	profile, err := a.client.UploadAvatar(ctx, filename, data)
	if err != nil {
		return nil, err
	}
	if err := a.session.SetProfile(ctx, profile); err != nil {
		a.log.Warn(ctx, "profile cache write failed", "error", err)
	}
	return profile, nil
}

func (a *authService) DeleteAvatar(ctx context.Context) error {
	return a.client.DeleteAvatar(ctx)
}
