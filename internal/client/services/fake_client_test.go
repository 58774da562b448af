package services

import (
	"context"

	"github.com/sentinelai/sentinel-cli/internal/client/api"
	"github.com/sentinelai/sentinel-cli/internal/client/models"
)

// fakeClient implements api.Client for unit tests. Set the *Ret/*Err fields
// to script behavior; Calls counts every method invocation by name.
type fakeClient struct {
	Calls map[string]int

	SignupRet *models.Profile
	SignupErr error

	LoginRet string
	LoginErr error

	GoogleLoginRet string
	GoogleLoginErr error

	LogoutErr error

	MeRet *models.Profile
	MeErr error

	UpdateMeRet *models.Profile
	UpdateMeErr error

	UploadAvatarRet *models.Profile
	UploadAvatarErr error

	DeleteAvatarErr error

	ForgotPasswordErr error
	ResetPasswordErr  error
	LastResetToken    string
	ChangePasswordErr error

	MyImagesRet []models.Image
	MyImagesErr error

	RunPipelineRet *api.PipelineResult
	RunPipelineErr error

	MatchesRet []models.Match
	MatchesErr error

	ConfirmMatchErr  error
	LastConfirmID    int64
	LastConfirmValue bool

	MatchHistoryRet []models.Match
	MatchHistoryErr error

	ReportsRet []models.Report
	ReportsErr error

	DownloadReportRet []byte
	DownloadReportErr error

	SendReportEmailErr error

	NotificationsRet []models.Notification
	NotificationsErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{Calls: map[string]int{}}
}

func (f *fakeClient) called(name string) { f.Calls[name]++ }

func (f *fakeClient) totalCalls() int {
	n := 0
	for _, c := range f.Calls {
		n += c
	}
	return n
}

func (f *fakeClient) Signup(ctx context.Context, req api.SignupRequest) (*models.Profile, error) {
	f.called("Signup")
	return f.SignupRet, f.SignupErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	f.called("Login")
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) GoogleLogin(ctx context.Context, idToken string) (string, error) {
	f.called("GoogleLogin")
	return f.GoogleLoginRet, f.GoogleLoginErr
}

func (f *fakeClient) ForgotPassword(ctx context.Context, email string) error {
	f.called("ForgotPassword")
	return f.ForgotPasswordErr
}

func (f *fakeClient) ResetPassword(ctx context.Context, token, newPassword string) error {
	f.called("ResetPassword")
	f.LastResetToken = token
	return f.ResetPasswordErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.called("Logout")
	return f.LogoutErr
}

func (f *fakeClient) Me(ctx context.Context) (*models.Profile, error) {
	f.called("Me")
	return f.MeRet, f.MeErr
}

func (f *fakeClient) UpdateMe(ctx context.Context, upd api.ProfileUpdate) (*models.Profile, error) {
	f.called("UpdateMe")
	return f.UpdateMeRet, f.UpdateMeErr
}

func (f *fakeClient) UploadAvatar(ctx context.Context, filename string, data []byte) (*models.Profile, error) {
	f.called("UploadAvatar")
	return f.UploadAvatarRet, f.UploadAvatarErr
}

func (f *fakeClient) DeleteAvatar(ctx context.Context) error {
	f.called("DeleteAvatar")
	return f.DeleteAvatarErr
}

func (f *fakeClient) ChangePassword(ctx context.Context, current, updated string) error {
	f.called("ChangePassword")
	return f.ChangePasswordErr
}

func (f *fakeClient) MyImages(ctx context.Context) ([]models.Image, error) {
	f.called("MyImages")
	return f.MyImagesRet, f.MyImagesErr
}

func (f *fakeClient) RunPipeline(ctx context.Context, keyword, filename string, data []byte) (*api.PipelineResult, error) {
	f.called("RunPipeline")
	return f.RunPipelineRet, f.RunPipelineErr
}

func (f *fakeClient) Matches(ctx context.Context, imageID int64) ([]models.Match, error) {
	f.called("Matches")
	return f.MatchesRet, f.MatchesErr
}

func (f *fakeClient) ConfirmMatch(ctx context.Context, matchID int64, confirmed bool) error {
	f.called("ConfirmMatch")
	f.LastConfirmID = matchID
	f.LastConfirmValue = confirmed
	return f.ConfirmMatchErr
}

func (f *fakeClient) MatchHistory(ctx context.Context) ([]models.Match, error) {
	f.called("MatchHistory")
	return f.MatchHistoryRet, f.MatchHistoryErr
}

func (f *fakeClient) Reports(ctx context.Context) ([]models.Report, error) {
	f.called("Reports")
	return f.ReportsRet, f.ReportsErr
}

func (f *fakeClient) DownloadReport(ctx context.Context, id int64) ([]byte, error) {
	f.called("DownloadReport")
	return f.DownloadReportRet, f.DownloadReportErr
}

func (f *fakeClient) SendReportEmail(ctx context.Context, id int64) error {
	f.called("SendReportEmail")
	return f.SendReportEmailErr
}

func (f *fakeClient) Notifications(ctx context.Context) ([]models.Notification, error) {
	f.called("Notifications")
	return f.NotificationsRet, f.NotificationsErr
}

var _ api.Client = (*fakeClient)(nil)
