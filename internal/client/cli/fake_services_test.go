package cli

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sentinelai/sentinel-cli/internal/client/api"
	"github.com/sentinelai/sentinel-cli/internal/client/models"
	"github.com/sentinelai/sentinel-cli/internal/client/session"
	"github.com/sentinelai/sentinel-cli/internal/logging"

	_ "modernc.org/sqlite"
)

var dbSeq int

func setupSession(t *testing.T) *session.Manager {
	t.Helper()
	dbSeq++
	db, err := sql.Open("sqlite", fmt.Sprintf("file:cliapp%d?mode=memory&cache=shared", dbSeq))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return session.NewManager(db)
}

// fakeAuth implements services.AuthService. A successful Login stores a
// token through the real session manager, like the production service does.
type fakeAuth struct {
	sess *session.Manager

	loginErr   error
	loginCalls int

	changePasswordErr   error
	changePasswordCalls int

	updates []api.ProfileUpdate
	profile *models.Profile

	uploadedAvatars   []string
	deleteAvatarCalls int

	resetTokens []string
	resetErr    error
}

func (f *fakeAuth) Register(ctx context.Context, req api.SignupRequest) error { return nil }

func (f *fakeAuth) Login(ctx context.Context, email, password string) error {
	f.loginCalls++
	if f.loginErr != nil {
		return f.loginErr
	}
	return f.sess.SaveLogin(ctx, "tok-test", f.profile)
}

func (f *fakeAuth) GoogleLogin(ctx context.Context, idToken string) error { return nil }

func (f *fakeAuth) ResetPassword(ctx context.Context, token, newPassword string) error {
	f.resetTokens = append(f.resetTokens, token)
	return f.resetErr
}
func (f *fakeAuth) Logout(ctx context.Context) error                      { return f.sess.Clear(ctx) }
func (f *fakeAuth) ForgotPassword(ctx context.Context, email string) error {
	return nil
}

func (f *fakeAuth) ChangePassword(ctx context.Context, current, updated string) error {
	f.changePasswordCalls++
	return f.changePasswordErr
}

func (f *fakeAuth) CachedProfile(ctx context.Context) (*models.Profile, error) {
	return f.profile, nil
}

func (f *fakeAuth) RefreshProfile(ctx context.Context) (*models.Profile, error) {
	return f.profile, nil
}

func (f *fakeAuth) UpdateProfile(ctx context.Context, upd api.ProfileUpdate) (*models.Profile, error) {
	f.updates = append(f.updates, upd)
	return f.profile, nil
}

func (f *fakeAuth) UploadAvatar(ctx context.Context, filename string, data []byte) (*models.Profile, error) {
	f.uploadedAvatars = append(f.uploadedAvatars, filename)
	return f.profile, nil
}

func (f *fakeAuth) DeleteAvatar(ctx context.Context) error {
	f.deleteAvatarCalls++
	return nil
}

type fakeImages struct {
	listCalls   int
	latestCalls int
	items       []models.Image
	uploadRet   *api.PipelineResult
}

func (f *fakeImages) List(ctx context.Context) ([]models.Image, error) {
	f.listCalls++
	return f.items, nil
}

func (f *fakeImages) Latest(ctx context.Context, n int) ([]models.Image, error) {
	f.latestCalls++
	if len(f.items) > n {
		return f.items[:n], nil
	}
	return f.items, nil
}

func (f *fakeImages) Upload(ctx context.Context, keyword, path string) (*api.PipelineResult, error) {
	return f.uploadRet, nil
}

type fakeMatches struct {
	source     *models.Image
	sourceErr  error
	pending    []models.Match
	pendingErr error
	history    []models.Match

	confirmed  []int64
	rejected   []int64
	confirmErr error
	rejectErr  error
}

func (f *fakeMatches) SourceImage(ctx context.Context, imageID int64) (*models.Image, error) {
	return f.source, f.sourceErr
}

func (f *fakeMatches) Pending(ctx context.Context, imageID int64) ([]models.Match, error) {
	return f.pending, f.pendingErr
}

func (f *fakeMatches) Confirm(ctx context.Context, matchID int64) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmed = append(f.confirmed, matchID)
	return nil
}

func (f *fakeMatches) Reject(ctx context.Context, matchID int64) error {
	if f.rejectErr != nil {
		return f.rejectErr
	}
	f.rejected = append(f.rejected, matchID)
	return nil
}

func (f *fakeMatches) History(ctx context.Context) ([]models.Match, error) {
	return f.history, nil
}

type fakeReports struct {
	listCalls int
	items     []models.Report
	listErr   error
	emailed   []int64
}

func (f *fakeReports) List(ctx context.Context) ([]models.Report, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeReports) Download(ctx context.Context, id int64) (string, error) {
	return fmt.Sprintf("downloads/report_%d.pdf", id), nil
}

func (f *fakeReports) SendEmail(ctx context.Context, id int64) error {
	f.emailed = append(f.emailed, id)
	return nil
}

type fakeNotifications struct {
	items []models.Notification
}

func (f *fakeNotifications) Recent(ctx context.Context) []models.Notification { return f.items }

type testApp struct {
	app *App
	out *bytes.Buffer

	auth          *fakeAuth
	images        *fakeImages
	matches       *fakeMatches
	reports       *fakeReports
	notifications *fakeNotifications
}

// newTestApp wires an App over fake services, a scripted stdin and a
// captured stdout. The navigation delay is zeroed and password prompts are
// answered by a stubbed terminal read.
func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	sess := setupSession(t)
	out := &bytes.Buffer{}

	auth := &fakeAuth{sess: sess, profile: &models.Profile{ID: 1, Username: "ana", Email: "a@b.c"}}
	images := &fakeImages{}
	matches := &fakeMatches{}
	reports := &fakeReports{}
	notifications := &fakeNotifications{}

	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("pw"), nil }
	t.Cleanup(func() { readPassword = orig })

	app := &App{
		log:           logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		session:       sess,
		auth:          auth,
		images:        images,
		matches:       matches,
		reports:       reports,
		notifications: notifications,
		reader:        bufio.NewReader(strings.NewReader(input)),
		out:           out,
	}

	return &testApp{
		app: app, out: out,
		auth: auth, images: images, matches: matches,
		reports: reports, notifications: notifications,
	}
}

// loginApp pre-seeds an active session.
func loginApp(t *testing.T, ta *testApp) {
	t.Helper()
	require.NoError(t, ta.app.session.SaveLogin(context.Background(), "tok-test", ta.auth.profile))
}
