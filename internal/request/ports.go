package request

import (
	"context"
	"fmt"
	"io"
	"sync"
)

type Status string

const (
	StatusError   Status = "error"
	StatusWarning Status = "warning"
	StatusSuccess Status = "success"
	StatusInfo    Status = "info"
)

// Notification is a non-blocking, user-visible message (a toast).
type Notification struct {
	Title  string `json:"title"`
	Status Status `json:"status"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

type Navigator interface {
	Navigate(ctx context.Context, path string, replace bool)
}

type NavigatorFunc func(ctx context.Context, path string, replace bool)

func (f NavigatorFunc) Navigate(ctx context.Context, path string, replace bool) { f(ctx, path, replace) }

// WriterNotifier prints notifications as single lines.
type WriterNotifier struct {
	W io.Writer
}

func (n *WriterNotifier) Notify(_ context.Context, note Notification) {
	fmt.Fprintf(n.W, "[%s] %s\n", note.Status, note.Title)
}

// Scope collects the side effects of the calls made while serving one
// shell request, so the handler can render toasts and redirects.
type Scope struct {
	mu            sync.Mutex
	notifications []Notification
	location      string
	navigated     bool
}

type scopeKey struct{}

func WithScope(ctx context.Context) (context.Context, *Scope) {
	scope := &Scope{}
	return context.WithValue(ctx, scopeKey{}, scope), scope
}

func ScopeFrom(ctx context.Context) (*Scope, bool) {
	scope, ok := ctx.Value(scopeKey{}).(*Scope)
	return scope, ok
}

func (s *Scope) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.notifications...)
}

// Location reports the last navigation target, if any.
func (s *Scope) Location() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.location, s.navigated
}

// ScopedNotifier records into the request scope when one is present and
// falls back otherwise.
type ScopedNotifier struct {
	Fallback Notifier
}

func (n *ScopedNotifier) Notify(ctx context.Context, note Notification) {
	if scope, ok := ScopeFrom(ctx); ok {
		scope.mu.Lock()
		scope.notifications = append(scope.notifications, note)
		scope.mu.Unlock()
		return
	}
	if n.Fallback != nil {
		n.Fallback.Notify(ctx, note)
	}
}

type ScopedNavigator struct {
	Fallback Navigator
}

func (n *ScopedNavigator) Navigate(ctx context.Context, path string, replace bool) {
	if scope, ok := ScopeFrom(ctx); ok {
		scope.mu.Lock()
		scope.location = path
		scope.navigated = true
		scope.mu.Unlock()
		return
	}
	if n.Fallback != nil {
		n.Fallback.Navigate(ctx, path, replace)
	}
}
