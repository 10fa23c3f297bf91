package router

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/BerryBytes/consolectl/internal/registry"
	"github.com/BerryBytes/consolectl/internal/request"
	"github.com/BerryBytes/consolectl/internal/tokenstore"
	"github.com/BerryBytes/consolectl/models"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	LoginPath    = "/auth/login"
	LogoutPath   = "/auth/logout"
	BundlePrefix = "/_apps/"

	RouteIndex    = "index"
	RouteNotFound = "not-found"
	RouteHealthz  = "healthz"
	RouteMetrics  = "metrics"
	RouteLogin    = "login"
	RouteLogout   = "logout"
	mountPrefix   = "mount:"
)

// IsStaticRoute reports whether routeName is served without the menu.
func IsStaticRoute(routeName string) bool {
	switch routeName {
	case RouteHealthz, RouteMetrics, RouteLogin, RouteLogout:
		return true
	}
	return false
}

// MountRouteName is the route name registered for one sub-application.
func MountRouteName(name string) string {
	return mountPrefix + name
}

func IsMountRoute(routeName string) bool {
	return strings.HasPrefix(routeName, mountPrefix)
}

type Options struct {
	Apps     []*registry.App
	Menu     []models.MenuEntry
	Tokens   tokenstore.TokenStore
	Renderer *Renderer
	// Login serves GET and POST on LoginPath.
	Login   http.Handler
	Logout  http.Handler
	Metrics http.Handler
	// Authorize, when set, must also accept a request before the layout is
	// served.
	Authorize func(r *http.Request) bool
	Logger    logrus.FieldLogger
}

type layout struct {
	apps      []*registry.App
	menu      []models.MenuEntry
	tokens    tokenstore.TokenStore
	renderer  *Renderer
	authorize func(r *http.Request) bool
	logger    logrus.FieldLogger
}

// New builds the route table for one descriptor snapshot.
func New(opts Options) *mux.Router {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	metricsHandler := opts.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	l := &layout{
		apps:      opts.Apps,
		menu:      opts.Menu,
		tokens:    opts.Tokens,
		renderer:  opts.Renderer,
		authorize: opts.Authorize,
		logger:    logger,
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet).Name(RouteHealthz)
	r.Handle("/metrics", metricsHandler).Methods(http.MethodGet).Name(RouteMetrics)
	if opts.Login != nil {
		r.Handle(LoginPath, opts.Login).Methods(http.MethodGet, http.MethodPost).Name(RouteLogin)
	}
	if opts.Logout != nil {
		r.Handle(LogoutPath, opts.Logout).Methods(http.MethodPost).Name(RouteLogout)
	}
	r.PathPrefix(BundlePrefix + "{name}/").HandlerFunc(l.serveBundle).Methods(http.MethodGet, http.MethodHead)

	r.Handle("/", l.gate(l.index())).Methods(http.MethodGet, http.MethodHead).Name(RouteIndex)
	for _, app := range opts.Apps {
		rule := app.Descriptor.ActiveRule
		r.NewRoute().
			Name(MountRouteName(app.Descriptor.Name)).
			Methods(http.MethodGet, http.MethodHead).
			MatcherFunc(func(req *http.Request, _ *mux.RouteMatch) bool {
				return registry.Owns(rule, req.URL.Path)
			}).
			Handler(l.gate(l.mount(app, http.StatusOK)))
	}

	r.NotFoundHandler = l.gate(l.notFound())
	return r
}

// Match returns the app owning urlPath. The root path aliases the first app.
func Match(apps []*registry.App, urlPath string) (*registry.App, bool) {
	if urlPath == "/" || urlPath == "" {
		if len(apps) == 0 {
			return nil, false
		}
		return apps[0], true
	}
	for _, app := range apps {
		if registry.Owns(app.Descriptor.ActiveRule, urlPath) {
			return app, true
		}
	}
	return nil, false
}

func (l *layout) index() http.Handler {
	if len(l.apps) == 0 {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l.render(w, r, http.StatusOK, LayoutData{})
		})
	}
	return l.mount(l.apps[0], http.StatusOK)
}

func (l *layout) mount(app *registry.App, status int) http.Handler {
	descriptor := app.Descriptor
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l.render(w, r, status, LayoutData{
			App:         &descriptor,
			ContainerID: app.ContainerID(),
			BundlePath:  BundlePrefix + descriptor.Name + "/",
		})
	})
}

func (l *layout) notFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l.render(w, r, http.StatusNotFound, LayoutData{NotFound: true})
	})
}

func (l *layout) render(w http.ResponseWriter, r *http.Request, status int, data LayoutData) {
	data.Menu = l.menu
	if scope, ok := request.ScopeFrom(r.Context()); ok {
		data.Notifications = scope.Notifications()
	}
	if err := l.renderer.Layout(w, status, data); err != nil {
		l.logger.WithError(err).Error("failed to render layout")
	}
}

// gate redirects to the login page when no token is stored or the request
// is not authorized.
func (l *layout) gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.authenticated(r.Context()) || (l.authorize != nil && !l.authorize(r)) {
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *layout) authenticated(ctx context.Context) bool {
	if l.tokens == nil {
		return false
	}
	info, err := l.tokens.Get(ctx)
	if err != nil {
		l.logger.WithError(err).Warn("failed to read token info")
		return false
	}
	return info != nil && strings.TrimSpace(info.AccessToken) != ""
}

func (l *layout) serveBundle(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	var app *registry.App
	for _, candidate := range l.apps {
		if candidate.Descriptor.Name == name {
			app = candidate
			break
		}
	}
	if app == nil {
		http.NotFound(w, r)
		return
	}

	handler, err := app.Handler(r.Context())
	if err != nil {
		l.logger.WithError(err).WithField("app", name).Warn("failed to load sub-application")
		http.Error(w, "sub-application unavailable", http.StatusBadGateway)
		return
	}
	http.StripPrefix(BundlePrefix+name, handler).ServeHTTP(w, r)
}
