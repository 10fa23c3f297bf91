package app

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/BerryBytes/consolectl/internal/config"
	"github.com/BerryBytes/consolectl/internal/console"
	"github.com/BerryBytes/consolectl/internal/menu"
	"github.com/BerryBytes/consolectl/internal/registry"
	"github.com/BerryBytes/consolectl/internal/request"
	"github.com/BerryBytes/consolectl/internal/shell"
	"github.com/BerryBytes/consolectl/internal/tokenstore"
	promptutils "github.com/BerryBytes/consolectl/utils/prompt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// App holds the wired dependencies of one consolectl process.
type App struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Console  *console.Service
	Shell    *shell.Server
	Prompter promptutils.Prompter
}

func New(cfg *config.Config, stderr io.Writer) (*App, error) {
	raw := cfg.Raw

	logger := logrus.New()
	logger.SetOutput(stderr)
	level, err := logrus.ParseLevel(raw.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", raw.LogLevel, err)
	}
	logger.SetLevel(level)

	kv, err := tokenstore.Open(raw.Store)
	if err != nil {
		return nil, err
	}
	tokens := tokenstore.NewTokenStore(kv)
	users := tokenstore.NewUserInfoStore(kv)

	promRegistry := prometheus.NewRegistry()
	notifier := &request.ScopedNotifier{Fallback: &request.WriterNotifier{W: stderr}}
	navigator := &request.ScopedNavigator{Fallback: request.NavigatorFunc(func(context.Context, string, bool) {
		fmt.Fprintln(stderr, "Session expired. Run `consolectl auth login` to sign in again.")
	})}

	client, err := request.New(request.Options{
		BaseURL:      raw.API.BaseURL,
		Timeout:      raw.API.Timeout,
		Tokens:       tokens,
		Users:        users,
		Notifier:     notifier,
		Navigator:    navigator,
		RedirectPath: raw.API.RedirectPath,
		Extras:       request.RequestExtras{IsSuccessFunction: request.SuccessCodes(raw.API.SuccessCodes...)},
		Logger:       logger,
		Metrics:      request.NewMetrics(promRegistry),
	})
	if err != nil {
		return nil, err
	}

	query := menu.NewQuery(client, tokens, users, logger)
	service := console.NewService(client, tokens, users, query, notifier, logger)

	bundleClient := &http.Client{Timeout: raw.API.Timeout}
	reg := registry.New(registry.NewProxyFactory(raw.Shell.BundleBaseURL, bundleClient, logger), logger)

	server, err := shell.New(shell.Options{
		Config:     raw.Shell,
		Console:    service,
		Tokens:     tokens,
		Users:      users,
		Registry:   reg,
		Registerer: promRegistry,
		Gatherer:   promRegistry,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Console:  service,
		Shell:    server,
		Prompter: promptutils.NewPrompt(),
	}, nil
}
