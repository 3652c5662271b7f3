package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const sessionCookie = "session"

// withSession resolves the owner for the request. Single-user backings have
// no identity layer: every request runs with an empty owner. The multi-user
// backing requires a valid session cookie and redirects to the login page
// otherwise.
func (s *Server) withSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.auth == nil {
			next(w, r.WithContext(context.WithValue(r.Context(), ownerKey, "")))
			return
		}

		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			s.denySession(w, r)
			return
		}
		owner, err := s.auth.Tokens.Verify(cookie.Value)
		if err != nil {
			slog.WarnContext(r.Context(), "Invalid session token", "error", err)
			s.clearSessionCookie(w)
			s.denySession(w, r)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), ownerKey, owner)))
	}
}

// denySession sends partials a 401 and full pages to the login form.
func (s *Server) denySession(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func owner(r *http.Request) string {
	if v, ok := r.Context().Value(ownerKey).(string); ok {
		return v
	}
	return ""
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
