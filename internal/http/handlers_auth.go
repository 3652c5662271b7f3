package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"financas/internal/auth"
)

// handleRegister serves the sign-up form and creates accounts. Only available
// with the multi-user backing.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if s.auth == nil {
		http.NotFound(w, r)
		return
	}

	if r.Method == http.MethodGet {
		s.renderAuthPage(w, r, "register.html", "")
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.renderAuthPage(w, r, "register.html", "Formato de requisição inválido")
		return
	}

	ownerID, err := s.auth.Service.SignUp(r.Context(),
		r.Form.Get("email"), r.Form.Get("password"), sanitizeInput(r.Form.Get("name")))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			s.renderAuthPage(w, r, "register.html", "Este email já está cadastrado")
		case errors.Is(err, auth.ErrInvalidCredentials):
			s.renderAuthPage(w, r, "register.html", "Email ou senha inválidos")
		default:
			slog.ErrorContext(r.Context(), "Sign-up failed", "error", err)
			s.renderAuthPage(w, r, "register.html", "Erro ao criar conta")
		}
		return
	}

	s.startSession(w, r, ownerID)
}

// handleLogin serves the sign-in form and starts sessions.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.auth == nil {
		http.NotFound(w, r)
		return
	}

	if r.Method == http.MethodGet {
		s.renderAuthPage(w, r, "login.html", "")
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.renderAuthPage(w, r, "login.html", "Formato de requisição inválido")
		return
	}

	ownerID, err := s.auth.Service.SignIn(r.Context(), r.Form.Get("email"), r.Form.Get("password"))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.renderAuthPage(w, r, "login.html", "Email ou senha incorretos")
			return
		}
		slog.ErrorContext(r.Context(), "Sign-in failed", "error", err)
		s.renderAuthPage(w, r, "login.html", "Erro ao entrar")
		return
	}

	s.startSession(w, r, ownerID)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request, ownerID string) {
	token, err := s.auth.Tokens.Issue(ownerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Token issue failed", "error", err)
		http.Error(w, "erro ao iniciar sessão", http.StatusInternalServerError)
		return
	}
	s.setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderAuthPage(w http.ResponseWriter, r *http.Request, page, errMsg string) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	data := struct {
		Error string
	}{Error: template.HTMLEscapeString(errMsg)}
	if err := s.templates.ExecuteTemplate(w, page, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", page)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
