package auth

import (
	"net/http"

	"github.com/louisbranch/tasktrack/internal/services/web/platform/flash"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/httpx"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/tasktrack/internal/services/web/routepath"
	"github.com/louisbranch/tasktrack/internal/services/web/templates"
)

const genericErrorKey = "error.generic"

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleLoginGet(w http.ResponseWriter, r *http.Request) {
	if h.Identity(r).Authenticated() {
		httpx.WriteRedirect(w, r, routepath.Projects)
		return
	}
	loc := h.PageLocalizer(r)
	h.WritePage(w, r, templates.T(loc, "auth.login.title"), http.StatusOK, templates.LoginForm(loc))
}

func (h handlers) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Redirect(w, r, routepath.AuthLogin, flash.Error(genericErrorKey))
		return
	}
	if err := h.service.login(w, r, r.PostFormValue("username"), r.PostFormValue("password")); err != nil {
		h.RedirectError(w, r, routepath.AuthLogin, err, genericErrorKey)
		return
	}
	httpx.WriteRedirect(w, r, routepath.Projects)
}

func (h handlers) handleRegisterGet(w http.ResponseWriter, r *http.Request) {
	if h.Identity(r).Authenticated() {
		httpx.WriteRedirect(w, r, routepath.Projects)
		return
	}
	loc := h.PageLocalizer(r)
	h.WritePage(w, r, templates.T(loc, "auth.register.title"), http.StatusOK, templates.RegisterForm(loc))
}

func (h handlers) handleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Redirect(w, r, routepath.AuthRegister, flash.Error(genericErrorKey))
		return
	}
	form := registration{
		username:  r.PostFormValue("username"),
		email:     r.PostFormValue("email"),
		password:  r.PostFormValue("password"),
		password2: r.PostFormValue("password2"),
	}
	if err := h.service.register(w, r, form); err != nil {
		h.RedirectError(w, r, routepath.AuthRegister, err, genericErrorKey)
		return
	}
	httpx.WriteRedirect(w, r, routepath.Projects)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.logout(w, r); err != nil {
		h.RedirectError(w, r, routepath.AuthLogin, err, genericErrorKey)
		return
	}
	httpx.WriteRedirect(w, r, routepath.AuthLogin)
}
