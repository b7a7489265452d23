package app

import (
	"net/http"

	"github.com/louisbranch/tasktrack/internal/platform/requestctx"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/httpx"
)

// BuildRootHandler composes the module groups and wraps them in the request
// middleware chain: request id, logger, access log, panic recovery and
// session resolution, in that order.
func BuildRootHandler(cfg Config) (http.Handler, error) {
	composed, err := Compose(ComposeInput{
		AuthRequired:        authenticated,
		PublicModules:       cfg.PublicModules,
		ProtectedModules:    cfg.ProtectedModules,
		RequestSchemePolicy: cfg.Scheme,
		Static:              cfg.Static,
	})
	if err != nil {
		return nil, err
	}
	middleware := []httpx.Middleware{
		httpx.RequestID(),
		httpx.WithLogger(cfg.Logger),
		httpx.AccessLog(),
		httpx.RecoverPanic(),
	}
	if cfg.SessionMiddleware != nil {
		middleware = append(middleware, cfg.SessionMiddleware)
	}
	return httpx.Chain(composed, middleware...), nil
}

// authenticated reads the identity stored by the session middleware.
func authenticated(r *http.Request) bool {
	if r == nil {
		return false
	}
	return requestctx.IdentityFromContext(r.Context()).Authenticated()
}
