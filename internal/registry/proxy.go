package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sync/atomic"

	"github.com/BerryBytes/consolectl/models"
	"github.com/sirupsen/logrus"
)

// ProxyLoader serves a remote bundle through a reverse proxy.
type ProxyLoader struct {
	target  *url.URL
	client  *http.Client
	proxy   *httputil.ReverseProxy
	mounted atomic.Bool
}

func NewProxyLoader(entry string, client *http.Client, logger logrus.FieldLogger) (*ProxyLoader, error) {
	target, err := url.Parse(entry)
	if err != nil {
		return nil, fmt.Errorf("invalid bundle URL %q: %w", entry, err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid bundle URL %q: scheme and host are required", entry)
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.WithError(err).WithField("bundle", entry).Warn("bundle proxy failed")
		http.Error(w, "bundle unavailable", http.StatusBadGateway)
	}

	return &ProxyLoader{target: target, client: client, proxy: proxy}, nil
}

// NewProxyFactory builds a ProxyLoader per descriptor. Relative bundle URLs
// are resolved against base.
func NewProxyFactory(base string, client *http.Client, logger logrus.FieldLogger) LoaderFactory {
	return func(descriptor models.SubApplicationDescriptor) (Loader, error) {
		entry, err := ResolveEntry(base, descriptor.Entry)
		if err != nil {
			return nil, err
		}
		return NewProxyLoader(entry, client, logger)
	}
}

func ResolveEntry(base, entry string) (string, error) {
	ref, err := url.Parse(entry)
	if err != nil {
		return "", fmt.Errorf("invalid bundle URL %q: %w", entry, err)
	}
	if ref.IsAbs() || base == "" {
		return entry, nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid bundle base URL %q: %w", base, err)
	}
	return baseURL.ResolveReference(ref).String(), nil
}

// Fetch probes the bundle with a HEAD request.
func (p *ProxyLoader) Fetch(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.target.String(), nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("bundle %s unreachable: %w", p.target, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("bundle %s unavailable: HTTP %d", p.target, resp.StatusCode)
	}
	return nil
}

func (p *ProxyLoader) Mount() http.Handler {
	p.mounted.Store(true)
	return p.proxy
}

// Unmount leaves the client alone; it is shared by every loader.
func (p *ProxyLoader) Unmount() {
	p.mounted.Store(false)
}

func (p *ProxyLoader) Mounted() bool {
	return p.mounted.Load()
}
