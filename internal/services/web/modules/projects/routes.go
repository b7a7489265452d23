package projects

import (
	"net/http"

	"github.com/louisbranch/tasktrack/internal/services/web/platform/httpx"
	"github.com/louisbranch/tasktrack/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Projects, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProjectsPrefix+"{$}", h.handleList)
	mux.HandleFunc(http.MethodPost+" "+routepath.Projects, h.handleCreate)
	mux.HandleFunc(http.MethodPost+" "+routepath.ProjectsPrefix+"{$}", h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProjectsSearch, h.handleSearch)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProjectsNew, h.handleNew)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProjectPattern, h.handleView)
	mux.HandleFunc(http.MethodPost+" "+routepath.ProjectPattern, h.handleUpdate)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProjectEditPattern, h.handleEdit)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProjectDeletePattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.ProjectDeletePattern, h.handleDelete)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProjectsPrefix+"{projectID}/{rest...}", h.WriteNotFound)
}
