package shell

import (
	"net/http"

	"github.com/BerryBytes/consolectl/internal/console"
	"github.com/BerryBytes/consolectl/internal/request"
	"github.com/BerryBytes/consolectl/internal/router"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.renderLogin(w, r, http.StatusOK, router.LoginData{})
		return
	}

	if !s.limiter.allow(r) {
		s.renderLogin(w, r, http.StatusTooManyRequests, router.LoginData{
			Notifications: []request.Notification{{Title: "too many login attempts, try again later", Status: request.StatusError}},
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	input := console.LoginInput{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
		Tenant:   r.PostForm.Get("tenant"),
	}

	if _, err := s.console.Login(r.Context(), input); err != nil {
		s.logger.WithError(err).WithField("username", input.Username).Warn("shell login failed")
		data := router.LoginData{Username: input.Username, Tenant: input.Tenant}
		if scope, ok := request.ScopeFrom(r.Context()); !ok || len(scope.Notifications()) == 0 {
			data.Notifications = []request.Notification{{Title: err.Error(), Status: request.StatusError}}
		}
		s.renderLogin(w, r, http.StatusUnauthorized, data)
		return
	}

	s.sessions.issue(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// logout only acts for the browser holding the session cookie.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.valid(r) {
		s.logger.WithField("remote_addr", r.RemoteAddr).Warn("logout without a shell session ignored")
		http.Redirect(w, r, router.LoginPath, http.StatusSeeOther)
		return
	}

	if err := s.console.Logout(r.Context()); err != nil {
		s.logger.WithError(err).Warn("shell logout did not complete cleanly")
	}
	s.sessions.revoke(w)
	http.Redirect(w, r, router.LoginPath, http.StatusSeeOther)
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, status int, data router.LoginData) {
	if scope, ok := request.ScopeFrom(r.Context()); ok {
		data.Notifications = append(scope.Notifications(), data.Notifications...)
	}
	if err := s.renderer.Login(w, status, data); err != nil {
		s.logger.WithError(err).Error("failed to render login page")
	}
}
