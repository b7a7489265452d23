package auth

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/tasktrack/internal/platform/errors"
	"github.com/louisbranch/tasktrack/internal/platform/requestctx"
	"github.com/louisbranch/tasktrack/internal/services/tracker/user"
)

// Directory verifies credentials and registers users.
type Directory interface {
	Create(ctx context.Context, reg user.Registration) (string, error)
	Authenticate(ctx context.Context, username, rawPassword string) (user.PublicUser, error)
}

// Sessions moves a request between Anonymous and Authenticated.
type Sessions interface {
	Login(w http.ResponseWriter, r *http.Request, identity requestctx.Identity) error
	Logout(w http.ResponseWriter, r *http.Request) error
}

// ErrPasswordsMismatch indicates the confirmation does not match the password.
var ErrPasswordsMismatch = apperrors.EK(apperrors.KindInvalidInput, "auth.passwords_mismatch", "passwords do not match")

// registration is the raw register form.
type registration struct {
	username  string
	email     string
	password  string
	password2 string
}

type service struct {
	directory Directory
	sessions  Sessions
}

func newService(directory Directory, sessions Sessions) service {
	return service{directory: directory, sessions: sessions}
}

// login verifies credentials and starts a session.
func (s service) login(w http.ResponseWriter, r *http.Request, username, password string) error {
	u, err := s.directory.Authenticate(r.Context(), username, password)
	if err != nil {
		return err
	}
	return s.sessions.Login(w, r, requestctx.Identity{UserID: u.ID, Username: u.Username})
}

// register creates the user and starts a session for it.
func (s service) register(w http.ResponseWriter, r *http.Request, form registration) error {
	form.username = strings.TrimSpace(form.username)
	form.email = strings.TrimSpace(form.email)
	if form.username == "" || form.email == "" || form.password == "" || form.password2 == "" {
		return user.ErrFieldsRequired
	}
	if form.password != form.password2 {
		return ErrPasswordsMismatch
	}
	userID, err := s.directory.Create(r.Context(), user.Registration{
		Username: form.username,
		Email:    form.email,
		Password: form.password,
	})
	if err != nil {
		return err
	}
	return s.sessions.Login(w, r, requestctx.Identity{UserID: userID, Username: form.username})
}

func (s service) logout(w http.ResponseWriter, r *http.Request) error {
	return s.sessions.Logout(w, r)
}
