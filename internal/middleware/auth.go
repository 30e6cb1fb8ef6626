// Pakiet middleware gatuje trasy konsoli na podstawie stanu sesji.
// To wyłącznie kosmetyczne ukrywanie funkcji w interfejsie - prawdziwą
// granicą autoryzacji jest serwer API, który weryfikuje token przy każdym
// żądaniu.
package middleware

import (
	"net/http"

	"library-admin-console/internal/session"
)

// RequireLogin przekierowuje anonimowych operatorów na stronę logowania
func RequireLogin(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sessions.CurrentUser() == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin odrzuca żądania operatorów bez roli administratora
func RequireAdmin(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.IsAdmin() {
				http.Error(w, "Ta operacja wymaga uprawnień administratora", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
