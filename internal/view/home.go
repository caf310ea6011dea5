package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// HomePage renders the landing page.
func HomePage(displayName string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if displayName == "" {
			_, err := io.WriteString(w, `<h1>Songbook</h1><p>Keep a list of the songs you love.</p><p><a href="/login">Log in</a> or <a href="/register">create an account</a>.</p>`)
			return err
		}
		_, err := fmt.Fprintf(w, `<h1>Welcome back, %s</h1><p><a href="/favorites">View your favorite songs</a></p>`,
			templ.EscapeString(displayName))
		return err
	})
	return Layout("Home", displayName, body)
}
