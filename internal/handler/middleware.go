package handler

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/msomdec/songbook/internal/domain"
)

type contextKey string

const claimContextKey contextKey = "claim"

const authCookieName = "auth_token"

var bearerPattern = regexp.MustCompile(`^Bearer ([^\s]+)$`)

// TokenValidator decodes a session token into a claim.
type TokenValidator interface {
	ValidateToken(token string) (*domain.Claim, error)
}

// ClaimFromContext extracts the session claim from the request context.
// Returns nil if the request carries no valid session.
func ClaimFromContext(ctx context.Context) *domain.Claim {
	claim, _ := ctx.Value(claimContextKey).(*domain.Claim)
	return claim
}

// RouteClass is how the gate treats a page path.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteAuthOnly
	RouteProtected
)

func (c RouteClass) String() string {
	switch c {
	case RouteAuthOnly:
		return "auth-only"
	case RouteProtected:
		return "protected"
	default:
		return "public"
	}
}

var (
	authOnlyPrefixes  = []string{"/login", "/register"}
	protectedPrefixes = []string{"/favorites"}
)

// ClassifyRoute matches path against the gated prefixes by whole segment,
// so /login/help is auth-only while /loginx is public.
func ClassifyRoute(path string) RouteClass {
	for _, p := range authOnlyPrefixes {
		if hasSegmentPrefix(path, p) {
			return RouteAuthOnly
		}
	}
	for _, p := range protectedPrefixes {
		if hasSegmentPrefix(path, p) {
			return RouteProtected
		}
	}
	return RoutePublic
}

func hasSegmentPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// GateRedirect returns where the gate sends a request, or "" to let it
// through.
func GateRedirect(class RouteClass, authenticated bool) string {
	switch {
	case class == RouteAuthOnly && authenticated:
		return "/favorites"
	case class == RouteProtected && !authenticated:
		return "/login"
	default:
		return ""
	}
}

// Gate validates the session token on every request, stores the claim in
// the context and redirects page requests according to their route class.
// It never reads the store; an invalid or expired token counts as no token.
func Gate(tokens TokenValidator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claim := sessionClaim(r, tokens)
		if claim != nil {
			r = r.WithContext(context.WithValue(r.Context(), claimContextKey, claim))
		}

		if target := GateRedirect(ClassifyRoute(r.URL.Path), claim != nil); target != "" {
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireSession protects API routes. Requests without a valid session get
// a 401 JSON response, never a redirect.
func RequireSession(tokens TokenValidator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claim := ClaimFromContext(r.Context())
		if claim == nil {
			claim = sessionClaim(r, tokens)
		}
		if claim == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), claimContextKey, claim)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionToken reads the token from the auth cookie, falling back to a
// bearer Authorization header.
func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(authCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if m := bearerPattern.FindStringSubmatch(r.Header.Get("Authorization")); m != nil {
		return m[1]
	}
	return ""
}

func sessionClaim(r *http.Request, tokens TokenValidator) *domain.Claim {
	token := sessionToken(r)
	if token == "" {
		return nil
	}
	claim, err := tokens.ValidateToken(token)
	if err != nil {
		slog.Debug("session token rejected", "path", r.URL.Path, "reason", err)
		return nil
	}
	return claim
}

// SecurityHeaders sets conservative response headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps SSE responses streaming through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// RequestLogger logs one line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
