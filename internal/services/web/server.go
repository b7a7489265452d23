package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	platformgrpc "github.com/louisbranch/tasktrack/internal/platform/grpc"
	"github.com/louisbranch/tasktrack/internal/platform/logging"
	"github.com/louisbranch/tasktrack/internal/platform/timeouts"
	"github.com/louisbranch/tasktrack/internal/services/tracker/project"
	"github.com/louisbranch/tasktrack/internal/services/tracker/storage"
	"github.com/louisbranch/tasktrack/internal/services/tracker/storage/backend"
	"github.com/louisbranch/tasktrack/internal/services/tracker/task"
	"github.com/louisbranch/tasktrack/internal/services/tracker/user"
	"github.com/louisbranch/tasktrack/internal/services/web/app"
	"github.com/louisbranch/tasktrack/internal/services/web/modules"
	"github.com/louisbranch/tasktrack/internal/services/web/modules/projects"
	"github.com/louisbranch/tasktrack/internal/services/web/modules/tasks"
	"github.com/louisbranch/tasktrack/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/tasktrack/internal/services/web/session"
	"github.com/louisbranch/tasktrack/internal/services/web/static"
)

// DefaultSessionSecret is the development fallback for the cookie signing key.
const DefaultSessionSecret = "default_secret_key"

// Session stores.
const (
	SessionStoreMemory   = "memory"
	SessionStoreDatabase = "database"
)

// Config defines the inputs for the tracker web server.
type Config struct {
	HTTPAddr            string
	SessionSecret       string
	SessionTTL          time.Duration
	SessionCookieSecure bool
	SessionStore        string
	TrustForwardedProto bool
	DBDriver            string
	DBPath              string
	DatabaseURL         string
	BcryptCost          int
	// HealthAddr enables the gRPC health listener when set.
	HealthAddr string
}

// HTTPAddr joins host and port into a listen address. An empty host listens
// on every interface.
func HTTPAddr(host string, port int) string {
	return net.JoinHostPort(strings.TrimSpace(host), strconv.Itoa(port))
}

// Server hosts the tracker HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	handler    http.Handler
	store      backend.Store
	sessions   *session.Manager
	health     *platformgrpc.HealthServer
	healthAddr string
	logger     *zerolog.Logger
}

// NewServer opens storage, builds the tracker services and composes the
// HTTP handler. The logger attached to ctx is used for startup and request
// logs.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	logger := logging.FromContext(ctx)

	if strings.TrimSpace(config.SessionSecret) == "" {
		config.SessionSecret = DefaultSessionSecret
	}
	if config.SessionSecret == DefaultSessionSecret {
		logger.Warn().Msg("using the default session secret; set TASKTRACK_SESSION_SECRET in production")
	}

	store, err := backend.Open(ctx, backend.Config{
		Driver:      config.DBDriver,
		Path:        config.DBPath,
		DatabaseURL: config.DatabaseURL,
	})
	if err != nil {
		return nil, err
	}
	sessionStore, err := newSessionStore(config.SessionStore, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	scheme := requestmeta.SchemePolicy{TrustForwardedProto: config.TrustForwardedProto}
	manager, err := session.NewManager(sessionStore, session.Config{
		Secret:       config.SessionSecret,
		TTL:          config.SessionTTL,
		SecureCookie: config.SessionCookieSecure,
		Scheme:       scheme,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("build session manager: %w", err)
	}

	handler, err := newHandler(store, manager, config.BcryptCost, scheme, *logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("build handler: %w", err)
	}

	s := &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		handler:    handler,
		store:      store,
		sessions:   manager,
		healthAddr: strings.TrimSpace(config.HealthAddr),
		logger:     logger,
	}
	if s.healthAddr != "" {
		s.health = platformgrpc.NewHealthServer()
	}
	return s, nil
}

// newHandler wires the tracker services into the module registry.
func newHandler(store backend.Store, manager *session.Manager, bcryptCost int, scheme requestmeta.SchemePolicy, logger zerolog.Logger) (http.Handler, error) {
	directory := user.NewDirectory(store, user.WithHasher(user.BcryptHasher{Cost: bcryptCost}))
	projectRegistry := project.NewRegistry(store)
	taskRegistry := task.NewRegistry(store, store)

	deps := modules.Dependencies{
		Directory: directory,
		Sessions:  manager,
		Projects:  projects.Gateway{Projects: projectRegistry, Tasks: taskRegistry, Users: directory},
		Tasks:     tasks.Gateway{Tasks: taskRegistry, Projects: projectRegistry, Users: directory},
	}
	resolvers := modules.ModuleResolvers{}
	return app.BuildRootHandler(app.Config{
		PublicModules:     modules.DefaultPublicModules(deps, resolvers),
		ProtectedModules:  modules.DefaultProtectedModules(deps, resolvers),
		SessionMiddleware: manager.Middleware(),
		Scheme:            scheme,
		Static:            static.FS,
		Logger:            logger,
	})
}

func newSessionStore(kind string, records storage.SessionStore) (session.Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", SessionStoreMemory:
		return session.NewMemoryStore(), nil
	case SessionStoreDatabase:
		return session.NewDatabaseStore(records), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", kind)
	}
}

// Handler returns the composed root handler.
func (s *Server) Handler() http.Handler {
	if s == nil {
		return nil
	}
	return s.handler
}

// ListenAndServe runs the HTTP server, the session sweeper and the optional
// health listener until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	go s.sessions.RunSweeper(ctx, timeouts.SessionSweep)

	if s.health != nil {
		listener, err := net.Listen("tcp", s.healthAddr)
		if err != nil {
			return fmt.Errorf("listen health: %w", err)
		}
		s.health.SetServing(true)
		go func() {
			if err := s.health.Serve(ctx, listener); err != nil {
				s.logger.Error().Err(err).Msg("health listener stopped")
			}
		}()
		s.logger.Info().Str("addr", s.healthAddr).Msg("health listening")
	}

	serveErr := make(chan error, 1)
	s.logger.Info().Str("addr", s.httpAddr).Msg("web listening")
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.health.SetServing(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the storage handle.
func (s *Server) Close() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error().Err(err).Msg("close storage")
	}
}
