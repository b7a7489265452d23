package modules

import (
	"github.com/louisbranch/tasktrack/internal/services/web/modules/auth"
	"github.com/louisbranch/tasktrack/internal/services/web/modules/projects"
	"github.com/louisbranch/tasktrack/internal/services/web/modules/tasks"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/modulehandler"
)

// DefaultPublicModules returns the modules reachable without a session.
func DefaultPublicModules(deps Dependencies, res ModuleResolvers) []Module {
	base := modulehandler.NewBase(res.ResolveIdentity)
	return []Module{
		auth.New(auth.WithDirectory(deps.Directory), auth.WithSessions(deps.Sessions), auth.WithBase(base)),
	}
}

// DefaultProtectedModules returns the modules mounted behind the session gate.
func DefaultProtectedModules(deps Dependencies, res ModuleResolvers) []Module {
	base := modulehandler.NewBase(res.ResolveIdentity)
	return []Module{
		projects.New(projects.WithGateway(deps.Projects), projects.WithBase(base)),
		tasks.New(tasks.WithGateway(deps.Tasks), tasks.WithBase(base)),
	}
}
