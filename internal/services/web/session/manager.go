package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/louisbranch/tasktrack/internal/platform/requestctx"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/sessioncookie"
)

// DefaultTTL is the session lifetime when none is configured.
const DefaultTTL = 24 * time.Hour

// Config controls session lifetime and cookie attributes.
type Config struct {
	Secret       string
	TTL          time.Duration
	SecureCookie bool
	Scheme       requestmeta.SchemePolicy
}

// Manager moves requests between Anonymous and Authenticated.
type Manager struct {
	store    Store
	signer   Signer
	ttl      time.Duration
	cookie   sessioncookie.Policy
	now      func() time.Time
	newToken func() (string, error)
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithTokenGenerator overrides session token generation.
func WithTokenGenerator(newToken func() (string, error)) Option {
	return func(m *Manager) {
		if newToken != nil {
			m.newToken = newToken
		}
	}
}

// NewManager builds a Manager over store.
func NewManager(store Store, cfg Config, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	m := &Manager{
		store:    store,
		ttl:      cfg.TTL,
		now:      time.Now,
		newToken: NewToken,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.ttl <= 0 {
		m.ttl = DefaultTTL
	}
	signer, err := NewSigner(cfg.Secret, m.now)
	if err != nil {
		return nil, err
	}
	m.signer = signer
	m.cookie = sessioncookie.Policy{Secure: cfg.SecureCookie, TTL: m.ttl, Scheme: cfg.Scheme}
	return m, nil
}

// Login destroys any session the request carries, stores a fresh one for
// identity, and writes its cookie.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, identity requestctx.Identity) error {
	if !identity.Authenticated() {
		return errors.New("login requires a user id")
	}
	ctx := r.Context()
	if token, ok := m.tokenFromRequest(r); ok {
		if err := m.store.Delete(ctx, token); err != nil {
			return fmt.Errorf("delete previous session: %w", err)
		}
	}
	token, err := m.newToken()
	if err != nil {
		return err
	}
	now := m.now().UTC()
	s := Session{
		Token:     token,
		UserID:    identity.UserID,
		Username:  identity.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Create(ctx, s); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	value, err := m.signer.Sign(token, s.ExpiresAt)
	if err != nil {
		return err
	}
	sessioncookie.Write(w, r, value, m.cookie)
	return nil
}

// Logout deletes the server-side session and clears the cookie.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	defer sessioncookie.Clear(w, r, m.cookie)
	token, ok := m.tokenFromRequest(r)
	if !ok {
		return nil
	}
	if err := m.store.Delete(r.Context(), token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Resolve returns the request identity. The bool reports whether the request
// carried a cookie that no longer maps to a live session.
func (m *Manager) Resolve(r *http.Request) (requestctx.Identity, bool) {
	if _, present := sessioncookie.Read(r); !present {
		return requestctx.Identity{}, false
	}
	token, ok := m.tokenFromRequest(r)
	if !ok {
		return requestctx.Identity{}, true
	}
	ctx := r.Context()
	s, err := m.store.Get(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return requestctx.Identity{}, true
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("resolve session")
		return requestctx.Identity{}, false
	}
	if s.Expired(m.now()) {
		if err := m.store.Delete(ctx, token); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("delete expired session")
		}
		return requestctx.Identity{}, true
	}
	return requestctx.Identity{UserID: s.UserID, Username: s.Username}, false
}

// Middleware attaches the resolved identity to the request context and
// clears cookies that no longer map to a session.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, stale := m.Resolve(r)
			if stale {
				sessioncookie.Clear(w, r, m.cookie)
			}
			next.ServeHTTP(w, r.WithContext(requestctx.WithIdentity(r.Context(), identity)))
		})
	}
}

// Sweep purges expired sessions.
func (m *Manager) Sweep(ctx context.Context) error {
	return m.store.DeleteExpired(ctx, m.now())
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.Sweep(ctx); err != nil && ctx.Err() == nil {
				zerolog.Ctx(ctx).Error().Err(err).Msg("sweep expired sessions")
			}
		}
	}
}

func (m *Manager) tokenFromRequest(r *http.Request) (string, bool) {
	value, ok := sessioncookie.Read(r)
	if !ok {
		return "", false
	}
	token, err := m.signer.Verify(value)
	if err != nil {
		return "", false
	}
	return token, true
}
