package shell

import (
	"crypto/subtle"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// SessionCookie carries the browser session issued by a shell login.
const SessionCookie = "consolectl_session"

// browserSessions binds the stored token to the one browser that logged in
// through the shell. A new login replaces the previous browser.
type browserSessions struct {
	mu sync.Mutex
	id string
}

func (b *browserSessions) issue(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()

	b.mu.Lock()
	b.id = id
	b.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
}

func (b *browserSessions) valid(r *http.Request) bool {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.id != "" && subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(b.id)) == 1
}

func (b *browserSessions) revoke(w http.ResponseWriter) {
	b.mu.Lock()
	b.id = ""
	b.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
