// Package tasks serves the task pages.
package tasks

import (
	"errors"
	"net/http"

	"github.com/louisbranch/tasktrack/internal/services/web/module"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/tasktrack/internal/services/web/routepath"
)

// Option configures a tasks module.
type Option func(*Module)

// WithGateway sets the tracker gateway.
func WithGateway(g Gateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithBase sets the handler base.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// Module provides the authenticated task routes.
type Module struct {
	gateway Gateway
	base    modulehandler.Base
}

// New returns a tasks module configured by the given options.
func New(opts ...Option) Module {
	m := Module{base: modulehandler.NewBase(nil)}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "tasks" }

// Healthy reports whether the module has a complete gateway.
func (m Module) Healthy() bool {
	return m.gateway.complete()
}

// Mount wires task route handlers.
func (m Module) Mount() (module.Mount, error) {
	if !m.Healthy() {
		return module.Mount{}, errors.New("tasks module requires task, project and user gateways")
	}
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway), m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.TasksPrefix, Handler: mux}, nil
}
