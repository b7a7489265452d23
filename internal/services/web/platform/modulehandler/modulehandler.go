// Package modulehandler provides a composable base for protected web module handlers.
//
// Modules mounted behind the session gate share identity resolution,
// localization, page rendering, redirects with notices, and error handling.
// Handlers embed Base rather than duplicating that scaffold.
package modulehandler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"

	apperrors "github.com/louisbranch/tasktrack/internal/platform/errors"
	"github.com/louisbranch/tasktrack/internal/platform/requestctx"
	"github.com/louisbranch/tasktrack/internal/services/web/i18n"
	module "github.com/louisbranch/tasktrack/internal/services/web/module"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/flash"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/httpx"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/pagerender"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/weberror"
	"github.com/louisbranch/tasktrack/internal/services/web/templates"
)

// Base carries the request-scoped resolvers used by module handlers.
type Base struct {
	resolveIdentity module.ResolveIdentity
}

// NewBase builds a handler base. A nil resolver reads the identity the
// session middleware stored in the request context.
func NewBase(resolveIdentity module.ResolveIdentity) Base {
	if resolveIdentity == nil {
		resolveIdentity = module.IdentityFromRequest
	}
	return Base{resolveIdentity: resolveIdentity}
}

// Identity returns the caller identity for the request.
func (b Base) Identity(r *http.Request) requestctx.Identity {
	if r == nil {
		return requestctx.Identity{}
	}
	if b.resolveIdentity == nil {
		return module.IdentityFromRequest(r)
	}
	return b.resolveIdentity(r)
}

// PageLocalizer resolves the catalog printer for the request language.
func (Base) PageLocalizer(r *http.Request) templates.Localizer {
	return i18n.PrinterFor(r)
}

// WritePage renders a full page (HTMX-aware) with the given title and fragment.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, title string, statusCode int, fragment templ.Component) {
	if err := pagerender.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      title,
		StatusCode: statusCode,
		Username:   b.Identity(r).Username,
		Fragment:   fragment,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteError renders a localized error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, b.Identity(r).Username)
}

// WriteNotFound renders the 404 page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteErrorPage(w, r, http.StatusNotFound, "", b.Identity(r).Username)
}

// Redirect sends the caller to path carrying the localized notice.
func (b Base) Redirect(w http.ResponseWriter, r *http.Request, path string, notice flash.Notice) {
	httpx.WriteRedirect(w, r, flash.Location(path, notice, i18n.PrinterFor(r)))
}

// RedirectError sends the caller to path with the catalog message for err, or
// fallbackKey when err carries no user-safe message. Unclassified errors are
// logged.
func (b Base) RedirectError(w http.ResponseWriter, r *http.Request, path string, err error, fallbackKey string) {
	key := publicKey(err)
	if key == "" {
		logFailure(r, err)
		key = fallbackKey
	}
	b.Redirect(w, r, path, flash.Error(key))
}

// publicKey returns the catalog key of a classified error.
func publicKey(err error) string {
	if err == nil || apperrors.IsKind(err, apperrors.KindUnknown) {
		return ""
	}
	return apperrors.LocalizationKey(err)
}

func logFailure(r *http.Request, err error) {
	if err == nil {
		return
	}
	event := zerolog.Ctx(httpx.RequestContext(r)).Error().Err(err)
	if r != nil && r.URL != nil {
		event = event.Str("method", r.Method).Str("path", r.URL.Path)
	}
	event.Msg("request failed")
}
