package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/msomdec/songbook/internal/domain"
)

// Element IDs targeted by SSE patches.
const (
	FavoritesListID = "favorites-list"
	FavoriteFormID  = "favorite-form"
)

// FavoriteElementID is the DOM id of a single favorite's list item.
func FavoriteElementID(id string) string {
	return "favorite-" + id
}

// FavoritesPage renders the caller's favorites, newest first.
func FavoritesPage(displayName string, favorites []domain.Favorite, errMsg string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Your favorite songs</h1>`); err != nil {
			return err
		}
		if err := FavoriteForm(errMsg, "").Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<ul id="%s">`, FavoritesListID); err != nil {
			return err
		}
		for _, f := range favorites {
			if err := FavoriteItem(f).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	})
	return Layout("Favorites", displayName, body)
}

// FavoriteForm renders the add-song form. It is re-sent over SSE to clear
// the input or to show a validation error.
func FavoriteForm(errMsg, song string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div id="%s">`, FavoriteFormID); err != nil {
			return err
		}
		if err := formError(w, errMsg, nil); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<form method="post" action="/favorites/add" data-on:submit__prevent="@post('/favorites/add', {contentType: 'form'})">`+
			`<input type="text" name="song" value="%s" placeholder="Song name" required>`+
			`<button type="submit">Add</button></form></div>`,
			templ.EscapeString(song))
		return err
	})
}

// FavoriteItem renders one favorite with its delete control.
func FavoriteItem(f domain.Favorite) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		action := "/favorites/" + f.ID + "/delete"
		_, err := fmt.Fprintf(w, `<li id="%s"><span>%s</span> `+
			`<form method="post" action="%s" style="display:inline" data-on:submit__prevent="@post('%s', {contentType: 'form'})">`+
			`<button type="submit">Delete</button></form></li>`,
			templ.EscapeString(FavoriteElementID(f.ID)), templ.EscapeString(f.Song),
			templ.EscapeString(action), templ.EscapeString(action))
		return err
	})
}
