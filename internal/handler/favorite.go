package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/songbook/internal/domain"
	"github.com/msomdec/songbook/internal/service"
	"github.com/msomdec/songbook/internal/view"
	datastar "github.com/starfederation/datastar-go/datastar"
)

// FavoriteHandler serves the favorites API and the favorites page.
type FavoriteHandler struct {
	favorites *service.FavoriteService
	auth      *service.AuthService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(favorites *service.FavoriteService, auth *service.AuthService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, auth: auth}
}

// HandleCreate adds a favorite for the caller.
// POST /api/favorites
// Request:  {"song":"..."}
// Response: 201 {favorite}
func (h *FavoriteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Song string `json:"song"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	fav, err := h.favorites.Create(r.Context(), ClaimFromContext(r.Context()), req.Song)
	if err != nil {
		writeServiceError(w, "create favorite", err)
		return
	}

	writeJSON(w, http.StatusCreated, toFavoriteDTO(fav))
}

// HandleList returns the caller's favorites, newest first.
// GET /api/favorites
func (h *FavoriteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	favs, err := h.favorites.List(r.Context(), ClaimFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, "list favorites", err)
		return
	}

	writeJSON(w, http.StatusOK, toFavoriteDTOs(favs))
}

// HandleGet returns one of the caller's favorites.
// GET /api/favorites/{id}
func (h *FavoriteHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	fav, err := h.favorites.Get(r.Context(), ClaimFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "get favorite", err)
		return
	}

	writeJSON(w, http.StatusOK, toFavoriteDTO(fav))
}

// HandleDelete removes one of the caller's favorites.
// DELETE /api/favorites
// Request:  {"id":"..."}
// Response: {"success":true}
func (h *FavoriteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.favorites.Delete(r.Context(), ClaimFromContext(r.Context()), req.ID); err != nil {
		writeServiceError(w, "delete favorite", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleFavoritesPage renders the favorites page.
func (h *FavoriteHandler) HandleFavoritesPage(w http.ResponseWriter, r *http.Request) {
	claim := ClaimFromContext(r.Context())
	if claim == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), claim.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The account is gone but the token is still valid.
			http.Redirect(w, r, "/logout", http.StatusSeeOther)
			return
		}
		renderError(w, r, "get favorites page user", err)
		return
	}

	favs, err := h.favorites.List(r.Context(), claim)
	if err != nil {
		renderError(w, r, "list favorites", err)
		return
	}

	view.FavoritesPage(user.DisplayName, favs, "").Render(r.Context(), w)
}

// HandleAddFavorite adds a favorite from the page form. Datastar requests
// get the new item prepended over SSE; plain form posts are redirected back
// to the list.
func (h *FavoriteHandler) HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	song := r.FormValue("song")
	fav, err := h.favorites.Create(r.Context(), ClaimFromContext(r.Context()), song)

	if !isDatastarRequest(r) {
		if err != nil {
			renderError(w, r, "create favorite", err)
			return
		}
		http.Redirect(w, r, "/favorites", http.StatusSeeOther)
		return
	}

	if err != nil && !errors.Is(err, domain.ErrInvalidInput) {
		status, msg := statusFor(err)
		if status == http.StatusInternalServerError {
			slog.Error("create favorite", "error", err)
		}
		http.Error(w, msg, status)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err != nil {
		_, msg := statusFor(err)
		sse.PatchElementTempl(view.FavoriteForm(msg, song))
		return
	}

	sse.PatchElementTempl(
		view.FavoriteItem(*fav),
		datastar.WithSelectorID(view.FavoritesListID),
		datastar.WithModePrepend(),
	)
	sse.PatchElementTempl(view.FavoriteForm("", ""))
}

// HandleDeleteFavorite removes a favorite from the page.
func (h *FavoriteHandler) HandleDeleteFavorite(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := h.favorites.Delete(r.Context(), ClaimFromContext(r.Context()), id)

	if !isDatastarRequest(r) {
		if err != nil {
			renderError(w, r, "delete favorite", err)
			return
		}
		http.Redirect(w, r, "/favorites", http.StatusSeeOther)
		return
	}

	if err != nil {
		status, msg := statusFor(err)
		if status == http.StatusInternalServerError {
			slog.Error("delete favorite", "error", err)
		}
		http.Error(w, msg, status)
		return
	}

	sse := datastar.NewSSE(w, r)
	sse.RemoveElementByID(view.FavoriteElementID(id))
}

func isDatastarRequest(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true"
}

// renderError writes an HTML error page for err.
func renderError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(op, "error", err)
	}
	w.WriteHeader(status)
	view.ErrorPage(status, http.StatusText(status), msg).Render(r.Context(), w)
}
