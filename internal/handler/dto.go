package handler

import (
	"time"

	"github.com/msomdec/songbook/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash is never
// part of it.
type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{ID: u.ID, Email: u.Email, Name: u.DisplayName}
}

func identityDTO(id *domain.Identity) UserDTO {
	return UserDTO{ID: id.UserID, Email: id.Email, Name: id.DisplayName}
}

// FavoriteDTO is the JSON representation of a favorite song.
type FavoriteDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Song      string `json:"song"`
	CreatedAt string `json:"createdAt"`
}

func toFavoriteDTO(f *domain.Favorite) FavoriteDTO {
	return FavoriteDTO{
		ID:        f.ID,
		UserID:    f.UserID,
		Song:      f.Song,
		CreatedAt: f.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toFavoriteDTOs(favs []domain.Favorite) []FavoriteDTO {
	dtos := make([]FavoriteDTO, len(favs))
	for i := range favs {
		dtos[i] = toFavoriteDTO(&favs[i])
	}
	return dtos
}
