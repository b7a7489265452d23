package auth

import (
	"context"
	"net/http"

	"github.com/louisbranch/tasktrack/internal/platform/requestctx"
	"github.com/louisbranch/tasktrack/internal/services/tracker/user"
)

// fakeDirectory implements Directory with canned users and call recording.
type fakeDirectory struct {
	users     map[string]string // username -> password
	createErr error
	authErr   error

	created []user.Registration
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{users: map[string]string{"alice": "secret1"}}
}

func (f *fakeDirectory) Create(_ context.Context, reg user.Registration) (string, error) {
	f.created = append(f.created, reg)
	if f.createErr != nil {
		return "", f.createErr
	}
	if _, ok := f.users[reg.Username]; ok {
		return "", user.ErrUsernameTaken
	}
	f.users[reg.Username] = reg.Password
	return "id-" + reg.Username, nil
}

func (f *fakeDirectory) Authenticate(_ context.Context, username, rawPassword string) (user.PublicUser, error) {
	if f.authErr != nil {
		return user.PublicUser{}, f.authErr
	}
	password, ok := f.users[username]
	if !ok || password != rawPassword {
		return user.PublicUser{}, user.ErrInvalidCredentials
	}
	return user.PublicUser{ID: "id-" + username, Username: username}, nil
}

// fakeSessions records gate transitions.
type fakeSessions struct {
	loginErr  error
	logoutErr error

	logins  []requestctx.Identity
	logouts int
}

func (f *fakeSessions) Login(_ http.ResponseWriter, _ *http.Request, identity requestctx.Identity) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.logins = append(f.logins, identity)
	return nil
}

func (f *fakeSessions) Logout(http.ResponseWriter, *http.Request) error {
	f.logouts++
	return f.logoutErr
}
