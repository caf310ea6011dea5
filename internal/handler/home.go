package handler

import (
	"net/http"

	"github.com/msomdec/songbook/internal/service"
	"github.com/msomdec/songbook/internal/view"
)

// HomeHandler renders the landing page.
type HomeHandler struct {
	auth *service.AuthService
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(auth *service.AuthService) *HomeHandler {
	return &HomeHandler{auth: auth}
}

// HandleHome renders the home page, greeting the user when signed in.
// Unknown paths fall through to here and get a 404 page.
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		w.WriteHeader(http.StatusNotFound)
		view.ErrorPage(http.StatusNotFound, "Not Found", "The page you are looking for does not exist.").Render(r.Context(), w)
		return
	}

	displayName := ""
	if claim := ClaimFromContext(r.Context()); claim != nil {
		if user, err := h.auth.GetUserByID(r.Context(), claim.UserID); err == nil {
			displayName = user.DisplayName
			if displayName == "" {
				displayName = user.Email
			}
		}
	}
	view.HomePage(displayName).Render(r.Context(), w)
}
