// Package auth serves the login, registration and logout pages.
package auth

import (
	"errors"
	"net/http"

	"github.com/louisbranch/tasktrack/internal/services/web/module"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/tasktrack/internal/services/web/routepath"
)

// Option configures an auth module.
type Option func(*Module)

// WithDirectory sets the user directory.
func WithDirectory(d Directory) Option {
	return func(m *Module) { m.directory = d }
}

// WithSessions sets the session gate.
func WithSessions(s Sessions) Option {
	return func(m *Module) { m.sessions = s }
}

// WithBase sets the handler base.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// Module provides the public auth routes.
type Module struct {
	directory Directory
	sessions  Sessions
	base      modulehandler.Base
}

// New returns an auth module configured by the given options.
func New(opts ...Option) Module {
	m := Module{base: modulehandler.NewBase(nil)}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "auth" }

// Healthy reports whether the module has its dependencies.
func (m Module) Healthy() bool {
	return m.directory != nil && m.sessions != nil
}

// Mount wires auth route handlers.
func (m Module) Mount() (module.Mount, error) {
	if !m.Healthy() {
		return module.Mount{}, errors.New("auth module requires a directory and sessions")
	}
	mux := http.NewServeMux()
	h := newHandlers(newService(m.directory, m.sessions), m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.AuthPrefix, Handler: mux}, nil
}
