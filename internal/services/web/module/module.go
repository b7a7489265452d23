// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"github.com/louisbranch/tasktrack/internal/platform/requestctx"
)

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// ResolveIdentity resolves the session identity attached to a request.
type ResolveIdentity func(*http.Request) requestctx.Identity

// IdentityFromRequest is the default ResolveIdentity reading the request context.
func IdentityFromRequest(r *http.Request) requestctx.Identity {
	if r == nil {
		return requestctx.Identity{}
	}
	return requestctx.IdentityFromContext(r.Context())
}

// HealthReporter is an optional interface for modules that can report their
// operational availability.
type HealthReporter interface {
	Healthy() bool
}
