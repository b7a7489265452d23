package session

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/louisbranch/tasktrack/internal/platform/requestctx"
	"github.com/louisbranch/tasktrack/internal/services/tracker/storage"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/sessioncookie"
)

const testSecret = "test-secret"

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestManager(t *testing.T, store Store, c *clock) *Manager {
	t.Helper()
	n := 0
	m, err := NewManager(store, Config{Secret: testSecret, TTL: time.Hour},
		WithClock(c.Now),
		WithTokenGenerator(func() (string, error) {
			n++
			return "tok-" + string(rune('0'+n)), nil
		}),
	)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return m
}

func cookieFrom(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessioncookie.Name {
			return c
		}
	}
	t.Fatal("session cookie not written")
	return nil
}

func requestWith(cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	if cookie != nil {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	return req
}

func TestLoginResolveLogout(t *testing.T) {
	t.Parallel()

	c := &clock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	store := NewMemoryStore()
	m := newTestManager(t, store, c)

	rr := httptest.NewRecorder()
	if err := m.Login(rr, requestWith(nil), requestctx.Identity{UserID: "u1", Username: "alice"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	cookie := cookieFrom(t, rr)
	if !cookie.HttpOnly {
		t.Fatal("expected HttpOnly session cookie")
	}
	parts := strings.Split(cookie.Value, ".")
	if len(parts) != 3 {
		t.Fatalf("cookie value is not a JWT: %q", cookie.Value)
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if strings.Contains(string(payload), "u1") || strings.Contains(string(payload), "alice") {
		t.Fatalf("cookie payload exposes the user: %s", payload)
	}

	identity, stale := m.Resolve(requestWith(cookie))
	if stale || identity != (requestctx.Identity{UserID: "u1", Username: "alice"}) {
		t.Fatalf("Resolve() = %+v, %v", identity, stale)
	}

	out := httptest.NewRecorder()
	if err := m.Logout(out, requestWith(cookie)); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if cleared := cookieFrom(t, out); cleared.MaxAge >= 0 {
		t.Fatalf("logout cookie MaxAge = %d, want negative", cleared.MaxAge)
	}
	if store.Len() != 0 {
		t.Fatalf("sessions after logout = %d, want 0", store.Len())
	}

	replayed, stale := m.Resolve(requestWith(cookie))
	if replayed.Authenticated() {
		t.Fatal("logged-out cookie must not authenticate")
	}
	if !stale {
		t.Fatal("replayed cookie should be reported stale")
	}
}

func TestLoginReplacesPreviousSession(t *testing.T) {
	t.Parallel()

	c := &clock{now: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	m := newTestManager(t, store, c)

	first := httptest.NewRecorder()
	if err := m.Login(first, requestWith(nil), requestctx.Identity{UserID: "u1", Username: "alice"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	oldCookie := cookieFrom(t, first)

	second := httptest.NewRecorder()
	if err := m.Login(second, requestWith(oldCookie), requestctx.Identity{UserID: "u2", Username: "bob"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	newCookie := cookieFrom(t, second)
	if newCookie.Value == oldCookie.Value {
		t.Fatal("expected a fresh cookie")
	}
	if store.Len() != 1 {
		t.Fatalf("sessions = %d, want 1", store.Len())
	}
	if identity, _ := m.Resolve(requestWith(oldCookie)); identity.Authenticated() {
		t.Fatal("old cookie must not authenticate after re-login")
	}
	if identity, _ := m.Resolve(requestWith(newCookie)); identity.UserID != "u2" {
		t.Fatalf("new identity = %+v", identity)
	}
}

func TestResolveRejectsTamperedCookies(t *testing.T) {
	t.Parallel()

	c := &clock{now: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	m := newTestManager(t, store, c)

	rr := httptest.NewRecorder()
	if err := m.Login(rr, requestWith(nil), requestctx.Identity{UserID: "u1", Username: "alice"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	parts := strings.Split(cookieFrom(t, rr).Value, ".")
	if len(parts) != 3 {
		t.Fatalf("cookie is not a JWT: %v", parts)
	}
	swapped := base64.RawURLEncoding.EncodeToString([]byte(`{"iss":"tasktrack","sub":"tok-9","exp":9999999999}`))
	tampered := parts[0] + "." + swapped + "." + parts[2]

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    cookieIssuer,
		Subject:   "tok-1",
		ExpiresAt: jwt.NewNumericDate(c.now.Add(time.Hour)),
	}).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign forged cookie: %v", err)
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    cookieIssuer,
		Subject:   "tok-1",
		ExpiresAt: jwt.NewNumericDate(c.now.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none cookie: %v", err)
	}

	tests := []struct {
		name  string
		value string
	}{
		{name: "garbage", value: "not-a-jwt"},
		{name: "altered payload", value: tampered},
		{name: "wrong secret", value: forged},
		{name: "alg none", value: unsigned},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/projects", nil)
			req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: tc.value})
			identity, stale := m.Resolve(req)
			if identity.Authenticated() {
				t.Fatalf("tampered cookie authenticated as %+v", identity)
			}
			if !stale {
				t.Fatal("tampered cookie should be reported stale")
			}
		})
	}
}

func TestResolveExpiredSessionIsAnonymousAndDeleted(t *testing.T) {
	t.Parallel()

	c := &clock{now: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	m := newTestManager(t, store, c)
	ctx := context.Background()

	if err := store.Create(ctx, Session{Token: "tok-x", UserID: "u1", Username: "alice", ExpiresAt: c.now.Add(-time.Minute)}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	value, err := m.signer.Sign("tok-x", c.now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	identity, stale := m.Resolve(requestWith(&http.Cookie{Name: sessioncookie.Name, Value: value}))
	if identity.Authenticated() || !stale {
		t.Fatalf("Resolve() = %+v, %v, want anonymous and stale", identity, stale)
	}
	if _, err := store.Get(ctx, "tok-x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired session still stored: %v", err)
	}
}

func TestResolveExpiredCookieIsAnonymous(t *testing.T) {
	t.Parallel()

	c := &clock{now: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
	m := newTestManager(t, NewMemoryStore(), c)

	rr := httptest.NewRecorder()
	if err := m.Login(rr, requestWith(nil), requestctx.Identity{UserID: "u1", Username: "alice"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	cookie := cookieFrom(t, rr)

	c.now = c.now.Add(2 * time.Hour)
	if identity, _ := m.Resolve(requestWith(cookie)); identity.Authenticated() {
		t.Fatalf("expired cookie authenticated as %+v", identity)
	}
}

func TestMiddlewareAttachesIdentityAndClearsStaleCookie(t *testing.T) {
	t.Parallel()

	c := &clock{now: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
	m := newTestManager(t, NewMemoryStore(), c)

	rr := httptest.NewRecorder()
	if err := m.Login(rr, requestWith(nil), requestctx.Identity{UserID: "u1", Username: "alice"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	cookie := cookieFrom(t, rr)

	var seen requestctx.Identity
	h := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestctx.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	h.ServeHTTP(httptest.NewRecorder(), requestWith(cookie))
	if seen.Username != "alice" {
		t.Fatalf("identity = %+v, want alice", seen)
	}

	stale := httptest.NewRequest(http.MethodGet, "/projects", nil)
	stale.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "bogus"})
	out := httptest.NewRecorder()
	h.ServeHTTP(out, stale)
	if seen.Authenticated() {
		t.Fatalf("stale cookie identity = %+v", seen)
	}
	if cleared := cookieFrom(t, out); cleared.MaxAge >= 0 {
		t.Fatalf("stale cookie MaxAge = %d, want negative", cleared.MaxAge)
	}
}

func TestSweepPurgesExpiredSessions(t *testing.T) {
	t.Parallel()

	c := &clock{now: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	m := newTestManager(t, store, c)
	ctx := context.Background()

	_ = store.Create(ctx, Session{Token: "old", UserID: "u1", ExpiresAt: c.now.Add(-time.Minute)})
	_ = store.Create(ctx, Session{Token: "live", UserID: "u1", ExpiresAt: c.now.Add(time.Minute)})
	if err := m.Sweep(ctx); err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if _, err := store.Get(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(old) error = %v, want ErrNotFound", err)
	}
	if _, err := store.Get(ctx, "live"); err != nil {
		t.Fatalf("Get(live) error = %v", err)
	}
}

func TestNewManagerValidatesInputs(t *testing.T) {
	t.Parallel()

	if _, err := NewManager(nil, Config{Secret: testSecret}); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := NewManager(NewMemoryStore(), Config{Secret: "  "}); err == nil {
		t.Fatal("expected error for blank secret")
	}
	m, err := NewManager(NewMemoryStore(), Config{Secret: testSecret})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	if m.ttl != DefaultTTL {
		t.Fatalf("ttl = %v, want %v", m.ttl, DefaultTTL)
	}
	if err := m.Login(httptest.NewRecorder(), requestWith(nil), requestctx.Identity{}); err == nil {
		t.Fatal("expected error logging in without a user id")
	}
}

func TestNewTokenIsRandom(t *testing.T) {
	t.Parallel()

	a, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken() error = %v", err)
	}
	b, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken() error = %v", err)
	}
	if a == b || len(a) < 40 {
		t.Fatalf("tokens = %q, %q", a, b)
	}
}

type fakeRecords struct {
	records map[string]storage.SessionRecord
	sweptAt time.Time
}

func (f *fakeRecords) PutSession(_ context.Context, r storage.SessionRecord) error {
	f.records[r.Token] = r
	return nil
}

func (f *fakeRecords) GetSession(_ context.Context, token string) (storage.SessionRecord, error) {
	r, ok := f.records[token]
	if !ok {
		return storage.SessionRecord{}, storage.ErrNotFound
	}
	return r, nil
}

func (f *fakeRecords) DeleteSession(_ context.Context, token string) error {
	delete(f.records, token)
	return nil
}

func (f *fakeRecords) DeleteExpiredSessions(_ context.Context, now time.Time) error {
	f.sweptAt = now
	return nil
}

func TestDatabaseStoreTranslatesRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	records := &fakeRecords{records: map[string]storage.SessionRecord{}}
	store := NewDatabaseStore(records)
	expires := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)

	if err := store.Create(ctx, Session{Token: "t1", UserID: "u1", Username: "alice", ExpiresAt: expires}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	got, err := store.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Username != "alice" || !got.ExpiresAt.Equal(expires) {
		t.Fatalf("Get() = %+v", got)
	}
	if err := store.Delete(ctx, "t1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteExpired(ctx, expires); err != nil {
		t.Fatalf("DeleteExpired() error = %v", err)
	}
	if !records.sweptAt.Equal(expires) {
		t.Fatalf("sweptAt = %v, want %v", records.sweptAt, expires)
	}
}
