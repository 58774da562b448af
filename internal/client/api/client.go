// Package api implements the typed REST client for the Sentinel backend.
// It owns header construction, status-code mapping to sentinel errors, and
// tolerant decoding of list responses. It performs no local token
// validation: an empty token still produces an "Authorization: Bearer "
// header and rejection is left to the server.
package api

import (
	"context"

	"github.com/sentinelai/sentinel-cli/internal/client/models"
)

// SignupRequest is the payload for POST /users/signup.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// ProfileUpdate carries the changed profile fields for PATCH /users/me.
// Only non-nil fields are sent.
type ProfileUpdate struct {
	FullName    *string `json:"full_name,omitempty"`
	Username    *string `json:"username,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Location    *string `json:"location,omitempty"`
}

// PipelineResult is the response of POST /ip/run-pipeline. The server runs
// detection synchronously, so this already reflects the completed run.
type PipelineResult struct {
	Success    bool   `json:"success"`
	ImageID    int64  `json:"image_id,omitempty"`
	MatchCount int    `json:"match_count,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Client is the REST surface the rest of the application depends on.
// Implementations map HTTP failures to the package's sentinel errors:
// 401 → ErrUnauthorized, 404 → ErrNotFound, transport → ErrUnavailable,
// anything else ≥400 → *Error.
type Client interface {
	// Unauthenticated.
	Signup(ctx context.Context, req SignupRequest) (*models.Profile, error)
	Login(ctx context.Context, email, password string) (string, error)
	GoogleLogin(ctx context.Context, idToken string) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error

	// Account.
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.Profile, error)
	UpdateMe(ctx context.Context, upd ProfileUpdate) (*models.Profile, error)
	UploadAvatar(ctx context.Context, filename string, data []byte) (*models.Profile, error)
	DeleteAvatar(ctx context.Context) error
	ChangePassword(ctx context.Context, current, updated string) error

	// IP protection.
	MyImages(ctx context.Context) ([]models.Image, error)
	RunPipeline(ctx context.Context, keyword, filename string, data []byte) (*PipelineResult, error)
	Matches(ctx context.Context, imageID int64) ([]models.Match, error)
	ConfirmMatch(ctx context.Context, matchID int64, confirmed bool) error
	MatchHistory(ctx context.Context) ([]models.Match, error)

	// DMCA reports.
	Reports(ctx context.Context) ([]models.Report, error)
	DownloadReport(ctx context.Context, id int64) ([]byte, error)
	SendReportEmail(ctx context.Context, id int64) error

	// Best-effort.
	Notifications(ctx context.Context) ([]models.Notification, error)
}
