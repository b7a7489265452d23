package app

import (
	"io/fs"
	"net/http"

	"github.com/rs/zerolog"

	module "github.com/louisbranch/tasktrack/internal/services/web/module"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/requestmeta"
)

// Config captures the composition inputs for the web root handler.
type Config struct {
	PublicModules    []module.Module
	ProtectedModules []module.Module
	// SessionMiddleware attaches the caller identity to each request.
	SessionMiddleware func(http.Handler) http.Handler
	Scheme            requestmeta.SchemePolicy
	Static            fs.FS
	Logger            zerolog.Logger
}
