// Package modules defines web module registry helpers.
package modules

import (
	module "github.com/louisbranch/tasktrack/internal/services/web/module"
	"github.com/louisbranch/tasktrack/internal/services/web/modules/auth"
	"github.com/louisbranch/tasktrack/internal/services/web/modules/projects"
	"github.com/louisbranch/tasktrack/internal/services/web/modules/tasks"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// ModuleResolvers carries request-scoped resolver functions. A nil
// ResolveIdentity reads the identity stored by the session middleware.
type ModuleResolvers struct {
	ResolveIdentity module.ResolveIdentity
}

// Dependencies carries the tracker services required to compose the web
// module registry. Each field is typed as the narrow interface defined by the
// consuming module, so modules cannot reach services they were not given.
type Dependencies struct {
	// Auth module services.
	Directory auth.Directory
	Sessions  auth.Sessions

	// Project and task module gateways.
	Projects projects.Gateway
	Tasks    tasks.Gateway
}
