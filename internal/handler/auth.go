package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/msomdec/songbook/internal/domain"
	"github.com/msomdec/songbook/internal/service"
	"github.com/msomdec/songbook/internal/view"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// HandleLogin processes a JSON login request.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"token":"...","user":{...}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	token, identity, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		logLoginFailure(err)
		writeServiceError(w, "login user", err)
		return
	}

	h.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  identityDTO(identity),
	})
}

// HandleRegister processes a JSON registration request.
// POST /api/register
// Request:  {"name":"...","email":"...","password":"..."}
// Response: {"message":"...","user":{...}}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	user, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var policy *domain.PolicyError
		if errors.As(err, &policy) {
			status, msg := statusFor(err)
			writeJSON(w, status, map[string]any{
				"error":      msg,
				"violations": policy.Violations,
			})
			return
		}
		writeServiceError(w, "register user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User registered successfully.",
		"user":    toUserDTO(user),
	})
}

// HandleLogout clears the auth cookie.
// POST /api/auth/logout
// Response: 204 No Content
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleSession returns the current session's user and expiry.
// GET /api/auth/session
// Response: {"user":{...},"expiresAt":"..."} or 401
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	claim := ClaimFromContext(r.Context())
	if claim == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), claim.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		writeServiceError(w, "get session user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":      toUserDTO(user),
		"expiresAt": claim.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// HandleLoginPage renders the login form.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	view.LoginPage("", "").Render(r.Context(), w)
}

// HandleLoginSubmit processes the login form and redirects to the favorites
// page on success.
func (h *AuthHandler) HandleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	token, _, err := h.auth.Login(r.Context(), email, r.FormValue("password"))
	if err != nil {
		logLoginFailure(err)
		status, msg := statusFor(err)
		if status == http.StatusInternalServerError {
			slog.Error("login user", "error", err)
		}
		w.WriteHeader(status)
		view.LoginPage(msg, email).Render(r.Context(), w)
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, "/favorites", http.StatusSeeOther)
}

// HandleRegisterPage renders the registration form.
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	view.RegisterPage("", nil, "", "").Render(r.Context(), w)
}

// HandleRegisterSubmit processes the registration form and redirects to the
// login page on success.
func (h *AuthHandler) HandleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	name, email := r.FormValue("name"), r.FormValue("email")
	_, err := h.auth.Register(r.Context(), name, email, r.FormValue("password"))
	if err != nil {
		status, msg := statusFor(err)
		if status == http.StatusInternalServerError {
			slog.Error("register user", "error", err)
		}
		var violations []string
		var policy *domain.PolicyError
		if errors.As(err, &policy) {
			violations = policy.Violations
		}
		w.WriteHeader(status)
		view.RegisterPage(msg, violations, name, email).Render(r.Context(), w)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleLogoutSubmit clears the auth cookie and returns to the login page.
func (h *AuthHandler) HandleLogoutSubmit(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.auth.SessionTTL() / time.Second),
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// logLoginFailure records why a login was refused. Clients only ever see
// the generic credentials message.
func logLoginFailure(err error) {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		slog.Info("login rejected", "reason", err)
	}
}
