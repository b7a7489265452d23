// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/tasktrack/internal/services/web/i18n"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/flash"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/httpx"
	"github.com/louisbranch/tasktrack/internal/services/web/templates"
)

// ModulePage describes a page response for both full-page and HTMX flows.
type ModulePage struct {
	Title      string
	StatusCode int
	Username   string
	Fragment   templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WriteModulePage renders page inside the app layout. HTMX requests receive
// the fragment alone. Nothing is written when rendering fails.
func WriteModulePage(w http.ResponseWriter, r *http.Request, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}
	ctx := httpx.RequestContext(r)

	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := fragment.Render(ctx, &buf); err != nil {
			return err
		}
	} else {
		layout := templates.Layout(templates.Page{
			Title:    page.Title,
			Lang:     i18n.ResolveTag(r).String(),
			Username: page.Username,
			Notices:  notices(r),
			Loc:      i18n.PrinterFor(r),
		})
		if err := layout.Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
			return err
		}
	}
	_ = httpx.WriteHTML(w, statusCode, buf.String())
	return nil
}

func notices(r *http.Request) []templates.Notice {
	messages := flash.FromRequest(r)
	if len(messages) == 0 {
		return nil
	}
	out := make([]templates.Notice, 0, len(messages))
	for _, m := range messages {
		out = append(out, templates.Notice{Kind: string(m.Kind), Text: m.Text})
	}
	return out
}
