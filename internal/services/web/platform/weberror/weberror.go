// Package weberror renders shared error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	apperrors "github.com/louisbranch/tasktrack/internal/platform/errors"
	"github.com/louisbranch/tasktrack/internal/services/web/i18n"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/httpx"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/pagerender"
	"github.com/louisbranch/tasktrack/internal/services/web/templates"
)

const genericMessageKey = "error.generic"

// ShouldRenderErrorPage reports whether status uses the error page UX.
func ShouldRenderErrorPage(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message. Errors without
// a catalog key fall back to the generic message.
func PublicMessage(loc templates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if key := apperrors.LocalizationKey(err); key != "" {
		if localized := strings.TrimSpace(templates.T(loc, key)); localized != "" {
			return localized
		}
	}
	return templates.T(loc, genericMessageKey)
}

// WriteErrorPage writes a full error page. message overrides the default body
// when not empty.
func WriteErrorPage(w http.ResponseWriter, r *http.Request, statusCode int, message, username string) {
	if w == nil {
		return
	}
	if !ShouldRenderErrorPage(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	loc := i18n.PrinterFor(r)
	err := pagerender.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      templates.ErrorPageTitle(statusCode, loc),
		StatusCode: statusCode,
		Username:   username,
		Fragment:   templates.ErrorState(statusCode, message, loc),
	})
	if err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteModuleError maps err to a response. Not-found errors render a 404 page
// with their catalog message; unclassified errors are logged and render the
// 500 page without internal detail.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, username string) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	loc := i18n.PrinterFor(r)
	switch {
	case statusCode == http.StatusNotFound:
		WriteErrorPage(w, r, statusCode, PublicMessage(loc, err), username)
	case ShouldRenderErrorPage(statusCode):
		zerolog.Ctx(httpx.RequestContext(r)).Error().Err(err).Str("path", requestPath(r)).Msg("request failed")
		WriteErrorPage(w, r, statusCode, "", username)
	default:
		http.Error(w, PublicMessage(loc, err), statusCode)
	}
}

func requestPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Path
}
