package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/louisbranch/tasktrack/internal/services/web/routepath"
)

// LoginForm renders the username/password login form.
func LoginForm(loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section class="card auth" id="login-root">`)
		h.element("h1", "", T(loc, "auth.login.title"))
		h.raw(`<form method="post"`)
		h.attr("action", routepath.AuthLogin)
		h.raw(">")
		h.field(T(loc, "auth.field.username"), "text", "username", "", true)
		h.field(T(loc, "auth.field.password"), "password", "password", "", true)
		h.raw(`<button type="submit" class="primary">`)
		h.text(T(loc, "auth.login.submit"))
		h.raw("</button></form><p>")
		h.text(T(loc, "auth.login.no_account"))
		h.raw(" ")
		h.link(routepath.AuthRegister, "", T(loc, "nav.register"))
		h.raw("</p></section>")
	})
}

// RegisterForm renders the account registration form.
func RegisterForm(loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section class="card auth" id="register-root">`)
		h.element("h1", "", T(loc, "auth.register.title"))
		h.raw(`<form method="post"`)
		h.attr("action", routepath.AuthRegister)
		h.raw(">")
		h.field(T(loc, "auth.field.username"), "text", "username", "", true)
		h.field(T(loc, "auth.field.email"), "email", "email", "", true)
		h.field(T(loc, "auth.field.password"), "password", "password", "", true)
		h.field(T(loc, "auth.field.password2"), "password", "password2", "", true)
		h.raw(`<button type="submit" class="primary">`)
		h.text(T(loc, "auth.register.submit"))
		h.raw("</button></form><p>")
		h.text(T(loc, "auth.register.have_account"))
		h.raw(" ")
		h.link(routepath.AuthLogin, "", T(loc, "nav.login"))
		h.raw("</p></section>")
	})
}
