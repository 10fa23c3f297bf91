package registry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/BerryBytes/consolectl/models"
	"github.com/sirupsen/logrus"
)

var (
	ErrAlreadyInitialized = errors.New("registry already initialized for this session")
	ErrDuplicateName      = errors.New("duplicate sub-application name")
	ErrInvalidRule        = errors.New("invalid active rule")
	ErrOverlappingRules   = errors.New("overlapping active rules")
)

// Loader fetches, boots and tears down one remote bundle.
type Loader interface {
	Fetch(ctx context.Context) error
	Mount() http.Handler
	Unmount()
}

type LoaderFactory func(descriptor models.SubApplicationDescriptor) (Loader, error)

// App is a registered sub-application. Its bundle is fetched on first use.
type App struct {
	Descriptor models.SubApplicationDescriptor

	loader  Loader
	mu      sync.Mutex
	fetched bool
}

func (a *App) ContainerID() string {
	return ContainerID(a.Descriptor.Container)
}

// Handler fetches the bundle if that has not succeeded yet and returns the
// mounted handler.
func (a *App) Handler(ctx context.Context) (http.Handler, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.fetched {
		if err := a.loader.Fetch(ctx); err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", a.Descriptor.Name, err)
		}
		a.fetched = true
	}
	return a.loader.Mount(), nil
}

func (a *App) unmount() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fetched {
		a.loader.Unmount()
		a.fetched = false
	}
}

type Registry struct {
	factory LoaderFactory
	logger  logrus.FieldLogger

	mu          sync.RWMutex
	initialized bool
	apps        []*App
	byName      map[string]*App
}

func New(factory LoaderFactory, logger logrus.FieldLogger) *Registry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Registry{factory: factory, logger: logger}
}

// Init registers the whole descriptor set in one step. Nothing is published
// when validation or any loader construction fails.
func (r *Registry) Init(descriptors []models.SubApplicationDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return ErrAlreadyInitialized
	}
	if err := Validate(descriptors); err != nil {
		return err
	}

	apps := make([]*App, 0, len(descriptors))
	byName := make(map[string]*App, len(descriptors))
	for _, descriptor := range descriptors {
		loader, err := r.factory(descriptor)
		if err != nil {
			return fmt.Errorf("failed to create loader for %s: %w", descriptor.Name, err)
		}
		app := &App{Descriptor: descriptor, loader: loader}
		apps = append(apps, app)
		byName[descriptor.Name] = app
	}

	r.apps = apps
	r.byName = byName
	r.initialized = true
	r.logger.WithField("apps", len(apps)).Info("sub-applications registered")
	return nil
}

// Reset unmounts every loader and allows a new Init.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, app := range r.apps {
		app.unmount()
	}
	r.apps = nil
	r.byName = nil
	r.initialized = false
}

func (r *Registry) Initialized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.initialized
}

// Apps returns the registered apps in descriptor order.
func (r *Registry) Apps() []*App {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*App(nil), r.apps...)
}

func (r *Registry) Lookup(name string) (*App, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.byName[name]
	return app, ok
}

// Validate checks that names are unique and active rules are absolute,
// canonical and do not overlap on path segment boundaries.
func Validate(descriptors []models.SubApplicationDescriptor) error {
	names := make(map[string]struct{}, len(descriptors))
	for i, d := range descriptors {
		if d.Name == "" {
			return fmt.Errorf("%w: descriptor %d has no name", ErrDuplicateName, i)
		}
		if _, exists := names[d.Name]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateName, d.Name)
		}
		names[d.Name] = struct{}{}

		if d.ActiveRule == "" || d.ActiveRule == "/" || !strings.HasPrefix(d.ActiveRule, "/") || path.Clean(d.ActiveRule) != d.ActiveRule {
			return fmt.Errorf("%w: %q for %s", ErrInvalidRule, d.ActiveRule, d.Name)
		}
		for _, other := range descriptors[:i] {
			if Overlaps(d.ActiveRule, other.ActiveRule) {
				return fmt.Errorf("%w: %s (%s) and %s (%s)", ErrOverlappingRules, other.Name, other.ActiveRule, d.Name, d.ActiveRule)
			}
		}
	}
	return nil
}

// Overlaps reports whether one rule equals the other or owns a path below it.
func Overlaps(a, b string) bool {
	return a == b || strings.HasPrefix(a, b+"/") || strings.HasPrefix(b, a+"/")
}

// Owns reports whether rule matches urlPath.
func Owns(rule, urlPath string) bool {
	return urlPath == rule || strings.HasPrefix(urlPath, rule+"/")
}

// ContainerID strips one leading '#' from a container selector.
func ContainerID(container string) string {
	return strings.TrimPrefix(container, "#")
}
