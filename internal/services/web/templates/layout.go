package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/louisbranch/tasktrack/internal/services/web/routepath"
)

// Notice is a one-time message shown above page content.
type Notice struct {
	Kind string
	Text string
}

// Page carries the chrome shared by every full page.
type Page struct {
	Title    string
	Lang     string
	Username string
	Notices  []Notice
	Loc      Localizer
}

// Layout wraps the child component from ctx in the document shell.
func Layout(page Page) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		loc := page.Loc
		lang := page.Lang
		if lang == "" {
			lang = "en"
		}
		h.raw("<!doctype html><html")
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		if page.Title != "" {
			h.text(T(loc, "title.page", page.Title))
		} else {
			h.text(T(loc, "app.name"))
		}
		h.raw(`</title><link rel="stylesheet"`)
		h.attr("href", routepath.StaticCSS)
		h.raw(`></head><body><header class="topbar">`)
		h.link(routepath.Root, "brand", T(loc, "app.name"))
		h.raw("<nav>")
		if page.Username != "" {
			h.link(routepath.Projects, "", T(loc, "nav.projects"))
			h.link(routepath.Tasks, "", T(loc, "nav.tasks"))
			h.element("span", "whoami", T(loc, "nav.signed_in_as", page.Username))
			h.link(routepath.AuthLogout, "", T(loc, "nav.logout"))
		} else {
			h.link(routepath.AuthLogin, "", T(loc, "nav.login"))
			h.link(routepath.AuthRegister, "", T(loc, "nav.register"))
		}
		h.raw(`</nav></header><main class="container">`)
		for _, notice := range page.Notices {
			role := "status"
			if notice.Kind == "error" {
				role = "alert"
			}
			h.raw("<div")
			h.attr("class", "notice notice-"+notice.Kind)
			h.attr("role", role)
			h.raw(">")
			h.text(notice.Text)
			h.raw("</div>")
		}
		if h.err == nil {
			h.err = templ.GetChildren(ctx).Render(templ.ClearChildren(ctx), h.w)
		}
		h.raw("</main></body></html>")
	})
}
