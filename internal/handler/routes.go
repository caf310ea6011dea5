package handler

import (
	"net/http"

	"github.com/msomdec/songbook/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, favorites *service.FavoriteService, cookieSecure bool) {
	authHandler := NewAuthHandler(auth, cookieSecure)
	favHandler := NewFavoriteHandler(favorites, auth)
	homeHandler := NewHomeHandler(auth)

	api := func(h http.HandlerFunc) http.Handler {
		return RequireSession(auth, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /", homeHandler.HandleHome)

	// Pages
	mux.HandleFunc("GET /login", authHandler.HandleLoginPage)
	mux.HandleFunc("POST /login", authHandler.HandleLoginSubmit)
	mux.HandleFunc("GET /register", authHandler.HandleRegisterPage)
	mux.HandleFunc("POST /register", authHandler.HandleRegisterSubmit)
	mux.HandleFunc("POST /logout", authHandler.HandleLogoutSubmit)
	mux.HandleFunc("GET /logout", authHandler.HandleLogoutSubmit)
	mux.HandleFunc("GET /favorites", favHandler.HandleFavoritesPage)
	mux.HandleFunc("POST /favorites/add", favHandler.HandleAddFavorite)
	mux.HandleFunc("POST /favorites/{id}/delete", favHandler.HandleDeleteFavorite)

	// JSON API
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/session", api(authHandler.HandleSession))
	mux.HandleFunc("POST /api/register", authHandler.HandleRegister)
	mux.Handle("POST /api/favorites", api(favHandler.HandleCreate))
	mux.Handle("GET /api/favorites", api(favHandler.HandleList))
	mux.Handle("GET /api/favorites/{id}", api(favHandler.HandleGet))
	mux.Handle("DELETE /api/favorites", api(favHandler.HandleDelete))
}

// NewRouter builds the complete HTTP handler: routes behind the access gate,
// request logging and security headers.
func NewRouter(auth *service.AuthService, favorites *service.FavoriteService, cookieSecure bool) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, auth, favorites, cookieSecure)
	return SecurityHeaders(RequestLogger(Gate(auth, mux)))
}
