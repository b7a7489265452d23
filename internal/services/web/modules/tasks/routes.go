package tasks

import (
	"net/http"

	"github.com/louisbranch/tasktrack/internal/services/web/platform/httpx"
	"github.com/louisbranch/tasktrack/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Tasks, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.TasksPrefix+"{$}", h.handleList)
	mux.HandleFunc(http.MethodPost+" "+routepath.Tasks, h.handleCreate)
	mux.HandleFunc(http.MethodPost+" "+routepath.TasksPrefix+"{$}", h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+routepath.TasksSearch, h.handleSearch)
	mux.HandleFunc(http.MethodGet+" "+routepath.TasksNew, h.handleNew)
	mux.HandleFunc(http.MethodGet+" "+routepath.TaskPattern, h.handleView)
	mux.HandleFunc(http.MethodPost+" "+routepath.TaskPattern, h.handleUpdate)
	mux.HandleFunc(http.MethodGet+" "+routepath.TaskEditPattern, h.handleEdit)
	mux.HandleFunc(http.MethodGet+" "+routepath.TaskDeletePattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.TaskDeletePattern, h.handleDelete)
	mux.HandleFunc(http.MethodGet+" "+routepath.TasksPrefix+"{taskID}/{rest...}", h.WriteNotFound)
}
