// Package sessioncookie centralizes the tracker session cookie.
package sessioncookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/tasktrack/internal/services/web/platform/requestmeta"
)

// Name is the canonical session cookie name.
const Name = "tasktrack_session"

// Policy controls cookie attributes that depend on deployment.
type Policy struct {
	// Secure forces the Secure attribute regardless of request scheme.
	Secure bool
	// TTL bounds the cookie lifetime. Zero writes a browser-session cookie.
	TTL    time.Duration
	Scheme requestmeta.SchemePolicy
}

func (p Policy) secure(r *http.Request) bool {
	return p.Secure || requestmeta.IsHTTPS(r, p.Scheme)
}

// Read returns the trimmed session cookie value when present.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Write sets the session cookie.
func Write(w http.ResponseWriter, r *http.Request, value string, policy Policy) {
	if w == nil {
		return
	}
	cookie := &http.Cookie{
		Name:     Name,
		Value:    strings.TrimSpace(value),
		Path:     "/",
		HttpOnly: true,
		Secure:   policy.secure(r),
		SameSite: http.SameSiteLaxMode,
	}
	if policy.TTL > 0 {
		cookie.MaxAge = int(policy.TTL.Seconds())
	}
	http.SetCookie(w, cookie)
}

// Clear expires the session cookie.
func Clear(w http.ResponseWriter, r *http.Request, policy Policy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   policy.secure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
