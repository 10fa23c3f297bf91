package shell

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/BerryBytes/consolectl/internal/config"
	"github.com/BerryBytes/consolectl/internal/console"
	"github.com/BerryBytes/consolectl/internal/menu"
	"github.com/BerryBytes/consolectl/internal/registry"
	"github.com/BerryBytes/consolectl/internal/request"
	"github.com/BerryBytes/consolectl/internal/router"
	"github.com/BerryBytes/consolectl/internal/tokenstore"
	"github.com/BerryBytes/consolectl/models"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	Config   config.Shell
	Console  console.Console
	Tokens   tokenstore.TokenStore
	Users    tokenstore.UserInfoStore
	Registry *registry.Registry
	// Registerer and Gatherer back /metrics; both default to a fresh registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Logger     logrus.FieldLogger
}

// Server is the shell: it rebuilds the route table whenever the session
// changes and serves it.
type Server struct {
	cfg      config.Shell
	console  console.Console
	tokens   tokenstore.TokenStore
	users    tokenstore.UserInfoStore
	registry *registry.Registry
	renderer *router.Renderer
	metrics  *httpMetrics
	limiter  *loginLimiter
	sessions *browserSessions
	promHTTP http.Handler
	logger   logrus.FieldLogger
	// static serves the routes that never depend on the menu.
	static *mux.Router

	mu         sync.Mutex
	built      bool
	sessionKey string
	handler    http.Handler
}

func New(opts Options) (*Server, error) {
	if opts.Console == nil {
		return nil, errors.New("shell requires a console")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	reg := opts.Registry
	if reg == nil {
		reg = registry.New(registry.NewProxyFactory(opts.Config.BundleBaseURL, nil, logger), logger)
	}

	registerer, gatherer := opts.Registerer, opts.Gatherer
	if registerer == nil || gatherer == nil {
		promRegistry := prometheus.NewRegistry()
		registerer, gatherer = promRegistry, promRegistry
	}

	renderer, err := router.NewRenderer(opts.Config.Title)
	if err != nil {
		return nil, err
	}

	loginRate, loginBurst := opts.Config.LoginRate, opts.Config.LoginBurst
	if loginRate <= 0 {
		loginRate = config.DefaultLoginRate
	}
	if loginBurst <= 0 {
		loginBurst = config.DefaultLoginBurst
	}

	s := &Server{
		cfg:      opts.Config,
		console:  opts.Console,
		tokens:   opts.Tokens,
		users:    opts.Users,
		registry: reg,
		renderer: renderer,
		metrics:  newHTTPMetrics(registerer),
		limiter:  newLoginLimiter(loginRate, loginBurst, logger),
		sessions: &browserSessions{},
		promHTTP: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		logger:   logger,
	}
	s.static = s.build(nil, nil)
	return s, nil
}

// ServeHTTP serves r with the route table of the current session. Calls made
// while serving collect their notifications and navigation in a request
// scope.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, scope := request.WithScope(r.Context())
	r = r.WithContext(ctx)

	var match mux.RouteMatch
	if s.static.Match(r, &match) && match.Route != nil && router.IsStaticRoute(match.Route.GetName()) {
		s.static.ServeHTTP(w, r)
		return
	}

	handler, err := s.current(ctx)
	if location, navigated := scope.Location(); navigated {
		http.Redirect(w, r, location, http.StatusFound)
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to build shell routes")
		http.Error(w, "failed to load the console menu", http.StatusBadGateway)
		return
	}
	handler.ServeHTTP(w, r)
}

// current returns the handler of the current session, rebuilding it when the
// session key changed since the last build. The menu is fetched without
// holding the lock.
func (s *Server) current(ctx context.Context) (http.Handler, error) {
	key, err := menu.SessionKey(ctx, s.tokens, s.users)
	if err != nil {
		return nil, err
	}
	if handler, ok := s.cached(key); ok {
		return handler, nil
	}

	var entries []models.MenuEntry
	if key != "" {
		entries, err = s.console.Entries(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch menu entries: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have built this session meanwhile.
	if s.built && s.sessionKey == key {
		return s.handler, nil
	}

	// A session boundary: the previous registration is torn down first.
	s.registry.Reset()
	s.built = false

	if err := s.registry.Init(menu.ToDescriptors(entries)); err != nil {
		return nil, err
	}

	s.handler = s.build(s.registry.Apps(), entries)
	s.sessionKey = key
	s.built = true
	s.logger.WithFields(logrus.Fields{
		"apps":          len(s.registry.Apps()),
		"authenticated": key != "",
	}).Info("shell routes built")
	return s.handler, nil
}

func (s *Server) cached(key string) (http.Handler, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.built && s.sessionKey == key {
		return s.handler, true
	}
	return nil, false
}

func (s *Server) build(apps []*registry.App, entries []models.MenuEntry) *mux.Router {
	r := router.New(router.Options{
		Apps:      apps,
		Menu:      entries,
		Tokens:    s.tokens,
		Renderer:  s.renderer,
		Login:     http.HandlerFunc(s.login),
		Logout:    http.HandlerFunc(s.logout),
		Metrics:   s.promHTTP,
		Authorize: s.sessions.valid,
		Logger:    s.logger,
	})

	logging, metrics := loggingMiddleware(s.logger), metricsMiddleware(s.metrics)
	r.Use(logging, metrics)
	r.NotFoundHandler = logging(metrics(r.NotFoundHandler))
	return r
}

// Run serves on addr, or the configured listen address when addr is empty,
// until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = s.cfg.ListenAddr
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("shell listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("shell server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down shell server: %w", err)
	}
	s.registry.Reset()
	s.logger.Info("shell stopped")
	return nil
}
