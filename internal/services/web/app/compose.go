package app

import (
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/tasktrack/internal/platform/errors"
	module "github.com/louisbranch/tasktrack/internal/services/web/module"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/httpx"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/weberror"
	"github.com/louisbranch/tasktrack/internal/services/web/routepath"
)

const defaultLoginPath = routepath.AuthLogin

var errCrossOrigin = apperrors.E(apperrors.KindForbidden, "cross-origin mutation")

// protectedPrefixes are the only mount points accepted for protected modules.
var protectedPrefixes = []string{routepath.ProjectsPrefix, routepath.TasksPrefix}

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	AuthRequired        func(*http.Request) bool
	PublicModules       []module.Module
	ProtectedModules    []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
	// Static serves files under /static/ when set.
	Static fs.FS
}

// Compose builds a root HTTP handler from module groups.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	if input.AuthRequired == nil {
		input.AuthRequired = func(*http.Request) bool { return false }
	}
	seen := make(map[string]string)

	for _, feature := range input.PublicModules {
		if feature == nil {
			return nil, fmt.Errorf("public module is nil")
		}
		if err := mountPublicModule(root, feature, seen); err != nil {
			return nil, err
		}
	}

	for _, feature := range input.ProtectedModules {
		if feature == nil {
			return nil, fmt.Errorf("protected module is nil")
		}
		if err := mountProtectedModule(root, feature, seen, wrapProtectedModule(input.AuthRequired, input.RequestSchemePolicy)); err != nil {
			return nil, err
		}
	}

	if input.Static != nil {
		root.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServerFS(input.Static)))
	}
	root.Handle(http.MethodGet+" "+routepath.Root+"{$}", homeRedirect(input.AuthRequired))
	root.HandleFunc(routepath.Root, func(w http.ResponseWriter, r *http.Request) {
		weberror.WriteErrorPage(w, r, http.StatusNotFound, "", module.IdentityFromRequest(r).Username)
	})

	return root, nil
}

// homeRedirect sends signed-in callers to the project list and everyone else
// to the login form.
func homeRedirect(authenticated func(*http.Request) bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if authenticated(r) {
			httpx.WriteRedirect(w, r, routepath.Projects)
			return
		}
		httpx.WriteRedirect(w, r, defaultLoginPath)
	})
}

func mountModule(
	root *http.ServeMux,
	feature module.Module,
	mount module.Mount,
	prefix string,
	seen map[string]string,
	wrap func(http.Handler) http.Handler,
) error {
	if root == nil || feature == nil {
		return nil
	}
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()

	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	root.Handle(prefix, handler)
	return nil
}

func mountPublicModule(root *http.ServeMux, feature module.Module, seen map[string]string) error {
	mount, prefix, err := resolveMount(feature)
	if err != nil {
		return err
	}
	if isProtectedPrefix(prefix) {
		return fmt.Errorf("module %q has protected prefix %q in public group", feature.ID(), prefix)
	}
	return mountModule(root, feature, mount, prefix, seen, nil)
}

func mountProtectedModule(root *http.ServeMux, feature module.Module, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, prefix, err := resolveMount(feature)
	if err != nil {
		return err
	}
	if !isProtectedPrefix(prefix) {
		return fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), strings.Join(protectedPrefixes, " or "), prefix)
	}
	if err := mountModule(root, feature, mount, prefix, seen, wrap); err != nil {
		return err
	}
	if alias := protectedSlashlessPrefixAlias(prefix); alias != "" {
		if err := mountModule(root, feature, mount, alias, seen, wrap); err != nil {
			return err
		}
	}
	return nil
}

func isProtectedPrefix(prefix string) bool {
	for _, protected := range protectedPrefixes {
		if strings.HasPrefix(prefix, protected) {
			return true
		}
	}
	return false
}

func resolveMount(feature module.Module) (module.Mount, string, error) {
	if feature == nil {
		return module.Mount{}, "", fmt.Errorf("module is nil")
	}
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := mount.Prefix
	if err := validatePrefix(prefix); err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, prefix, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if !strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

// protectedSlashlessPrefixAlias lets /projects reach the module mounted at
// /projects/ without the mux redirect.
func protectedSlashlessPrefixAlias(prefix string) string {
	if !isProtectedPrefix(prefix) || !strings.HasSuffix(prefix, "/") {
		return ""
	}
	return strings.TrimSuffix(prefix, "/")
}

func requireAuth(authenticated func(*http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			return http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authenticated(r) {
				httpx.WriteRedirect(w, r, defaultLoginPath)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func wrapProtectedModule(authenticated func(*http.Request) bool, policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	authWrap := requireAuth(authenticated)
	csrfWrap := requireCookieSessionSameOrigin(policy)
	return func(next http.Handler) http.Handler {
		return authWrap(csrfWrap(next))
	}
}

// requireCookieSessionSameOrigin rejects cookie-authenticated mutations whose
// Origin or Referer names another site.
func requireCookieSessionSameOrigin(policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutationMethod(r) || !hasSessionCookie(r) {
				next.ServeHTTP(w, r)
				return
			}
			if !requestmeta.HasSameOriginProof(r, policy) {
				httpx.WriteError(w, errCrossOrigin)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutationMethod(r *http.Request) bool {
	if r == nil {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func hasSessionCookie(r *http.Request) bool {
	_, ok := sessioncookie.Read(r)
	return ok
}
