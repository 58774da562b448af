// Package session holds the client's single shared mutable resource: the
// persisted bearer token and cached profile. Every page reads it, login
// writes it, and any 401 evicts it. Presence of a non-empty token is what
// "authenticated" means locally; the token is never validated here, and
// validity is only ever discovered by a server 401.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sentinelai/sentinel-cli/internal/client/api"
	"github.com/sentinelai/sentinel-cli/internal/client/models"
	repo "github.com/sentinelai/sentinel-cli/internal/client/repositories/session"
	"github.com/sentinelai/sentinel-cli/internal/dbx"
)

// Storage keys, matching the original client's persisted state.
const (
	KeyToken   = "token"
	KeyProfile = "profile"
)

// Manager provides get/set/clear over the persisted session plus a
// subscription mechanism so interested components can react to changes
// instead of re-reading storage ad hoc.
type Manager struct {
	db *sql.DB

	mu   sync.Mutex
	subs []func()
}

func NewManager(db *sql.DB) *Manager {
	return &Manager{db: db}
}

func (m *Manager) store() repo.Repository {
	return repo.NewSQLiteRepository(m.db)
}

// Subscribe registers fn to run after every session change (set or clear).
func (m *Manager) Subscribe(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

func (m *Manager) notify() {
	m.mu.Lock()
	subs := make([]func(), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Token returns the stored bearer token, or "" when absent.
func (m *Manager) Token(ctx context.Context) (string, error) {
	v, err := m.store().Get(ctx, KeyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// SetToken stores just the credential. Login flows use it before the first
// authenticated call, then attach the fetched profile via SetProfile.
func (m *Manager) SetToken(ctx context.Context, token string) error {
	if err := m.store().Set(ctx, KeyToken, []byte(token)); err != nil {
		return err
	}
	m.notify()
	return nil
}

// Active reports whether a session credential is present. No network call
// and no validation: a stale-but-present token counts as active until the
// first 401 evicts it.
func (m *Manager) Active(ctx context.Context) bool {
	tok, err := m.Token(ctx)
	return err == nil && tok != ""
}

// TokenSource adapts the manager for api.HTTPClient.
func (m *Manager) TokenSource() api.TokenSource {
	return func(ctx context.Context) string {
		tok, _ := m.Token(ctx)
		return tok
	}
}

// Profile returns the cached profile copy, or nil when absent. The copy may
// be stale; callers that care refresh it via the API and SetProfile.
func (m *Manager) Profile(ctx context.Context) (*models.Profile, error) {
	v, err := m.store().Get(ctx, KeyProfile)
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, nil
	}
	var p models.Profile
	if err := json.Unmarshal(v, &p); err != nil {
		return nil, fmt.Errorf("decode cached profile: %w", err)
	}
	return &p, nil
}

func (m *Manager) SetProfile(ctx context.Context, p *models.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := m.store().Set(ctx, KeyProfile, b); err != nil {
		return err
	}
	m.notify()
	return nil
}

// SaveLogin stores the token and profile together in one transaction, so a
// crash between the two writes cannot leave a half-formed session.
func (m *Manager) SaveLogin(ctx context.Context, token string, p *models.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := repo.NewSQLiteRepository(tx)
		if err := r.Set(ctx, KeyToken, []byte(token)); err != nil {
			return err
		}
		return r.Set(ctx, KeyProfile, b)
	})
	if err != nil {
		return err
	}
	m.notify()
	return nil
}

// Clear removes the token and cached profile together. Used on logout and
// on 401 eviction.
func (m *Manager) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return repo.NewSQLiteRepository(tx).Clear(ctx)
	})
	if err != nil {
		return err
	}
	m.notify()
	return nil
}

// EvictOn implements the global 401 policy: when err is (or wraps) an
// unauthorized response, the whole session is evicted and true is returned
// so the caller can route the user back to login. Any other error leaves
// the session untouched.
func (m *Manager) EvictOn(ctx context.Context, err error) bool {
	if !errors.Is(err, api.ErrUnauthorized) {
		return false
	}
	_ = m.Clear(ctx)
	return true
}

// Describe renders a short human-readable summary of the stored credential
// for the status display. Claims are parsed without verification and are
// used for display only, never for authorization decisions.
func (m *Manager) Describe(ctx context.Context) (string, error) {
	tok, err := m.Token(ctx)
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "no active session", nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return "session active (opaque token)", nil
	}

	summary := "session active"
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		summary += ", subject " + sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		summary += ", expires " + exp.Format(time.RFC3339)
	}
	return summary, nil
}
