package templates

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/tasktrack/internal/services/web/routepath"
)

const (
	errorTitleNotFoundKey  = "error.not_found.title"
	errorTitleServerKey    = "error.server.title"
	errorBodyServerKey     = "error.server.body"
	errorBodyNotFoundKey   = "error.not_found.body"
	errorBackToProjectsKey = "error.back"
)

// ErrorPageTitle returns the browser page title for error pages.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	if normalizeErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, errorTitleNotFoundKey)
	}
	return T(loc, errorTitleServerKey)
}

// ErrorState renders the error page body. message overrides the default body
// text when it is not empty; it must already be a catalog string.
func ErrorState(statusCode int, message string, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		status := normalizeErrorStatus(statusCode)
		if message == "" {
			message = T(loc, errorBodyServerKey)
			if status == http.StatusNotFound {
				message = T(loc, errorBodyNotFoundKey)
			}
		}
		h.raw(`<section class="card error-state" id="error-root">`)
		h.element("h1", "", ErrorPageTitle(status, loc))
		h.element("p", "", message)
		h.link(routepath.Projects, "button", T(loc, errorBackToProjectsKey))
		h.raw("</section>")
	})
}

func normalizeErrorStatus(statusCode int) int {
	if statusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
