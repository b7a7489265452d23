package auth

import (
	"net/http"

	"github.com/louisbranch/tasktrack/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AuthLogin, h.handleLoginGet)
	mux.HandleFunc(http.MethodPost+" "+routepath.AuthLogin, h.handleLoginPost)
	mux.HandleFunc(http.MethodGet+" "+routepath.AuthRegister, h.handleRegisterGet)
	mux.HandleFunc(http.MethodPost+" "+routepath.AuthRegister, h.handleRegisterPost)
	mux.HandleFunc(http.MethodGet+" "+routepath.AuthLogout, h.handleLogout)
	mux.HandleFunc(http.MethodGet+" "+routepath.AuthPrefix+"{rest...}", h.WriteNotFound)
}
