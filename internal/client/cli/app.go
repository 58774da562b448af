// Package cli implements the interactive Sentinel client: a REPL whose
// commands correspond to the pages of the web front-end (dashboard,
// matches, review history, reports) on top of the service layer.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sentinelai/sentinel-cli/internal/client/api"
	"github.com/sentinelai/sentinel-cli/internal/client/config"
	"github.com/sentinelai/sentinel-cli/internal/client/services"
	"github.com/sentinelai/sentinel-cli/internal/client/session"
	"github.com/sentinelai/sentinel-cli/internal/client/storage"
	"github.com/sentinelai/sentinel-cli/internal/logging"
)

// defaultNavDelay is the pause between a successful confirm and the jump to
// the reports view, and between a password change and the return to the
// overview. Tests zero it.
const defaultNavDelay = 1500 * time.Millisecond

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	session *session.Manager

	auth          services.AuthService
	images        services.ImageService
	matches       services.MatchService
	reports       services.ReportService
	notifications services.NotificationService

	reader *bufio.Reader
	out    io.Writer

	navDelay time.Duration

	// pending remembers the command a guard intercepted, so a successful
	// login can land the user where they were headed.
	pending string
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	sess := session.NewManager(db)

	opts := []api.Option{api.WithPipelineTimeout(cfg.PipelineTimeout)}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}))
	}
	client := api.NewHTTPClient(cfg.APIBaseURL, sess.TokenSource(), opts...)

	return &App{
		config:        cfg,
		log:           log,
		db:            db,
		session:       sess,
		auth:          services.NewAuthService(client, sess, log),
		images:        services.NewImageService(client),
		matches:       services.NewMatchService(client),
		reports:       services.NewReportService(client),
		notifications: services.NewNotificationService(client, log),
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
		navDelay:      defaultNavDelay,
	}, nil
}

// Run starts the REPL and blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) Close() error {
	return a.db.Close()
}

// status builds the prompt suffix: the signed-in user, when known.
func (a *App) status() string {
	ctx := context.Background()
	if !a.session.Active(ctx) {
		return ""
	}
	p, err := a.session.Profile(ctx)
	if err != nil || p == nil {
		return "(signed in)"
	}
	return "(" + p.Username + ")"
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.session.Active(ctx)
}

// dispatch is the single command table, shared by the REPL and the guard's
// post-login replay. It reports whether the command is known.
func (a *App) dispatch(ctx context.Context, line string) (bool, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true, nil
	}
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "register":
		return true, a.Register(ctx)
	case "login":
		return true, a.Login(ctx)
	case "google":
		return true, a.GoogleLogin(ctx)
	case "logout":
		return true, a.Logout(ctx)
	case "forgot":
		return true, a.ForgotPassword(ctx)
	case "reset":
		return true, a.ResetPassword(ctx)
	case "status":
		return true, a.Status(ctx)
	case "dashboard":
		return true, a.Dashboard(ctx, args)
	case "images":
		return true, a.Images(ctx)
	case "upload":
		return true, a.Upload(ctx)
	case "matches":
		return true, a.Matches(ctx, args)
	case "history":
		return true, a.History(ctx, args)
	case "reports":
		return true, a.Reports(ctx)
	default:
		return false, nil
	}
}
