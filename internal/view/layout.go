package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const datastarScript = `<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"></script>`

// Layout wraps body in the shared page chrome. displayName is empty for
// anonymous visitors.
func Layout(title, displayName string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s · Songbook</title>%s</head><body>`,
			templ.EscapeString(title), datastarScript); err != nil {
			return err
		}
		if err := navbar(displayName).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func navbar(displayName string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if displayName == "" {
			_, err := io.WriteString(w, `<nav><a href="/">Songbook</a> <a href="/login">Log in</a> <a href="/register">Register</a></nav>`)
			return err
		}
		_, err := fmt.Fprintf(w, `<nav><a href="/">Songbook</a> <a href="/favorites">Favorites</a> <span>%s</span> <form method="post" action="/logout" style="display:inline"><button type="submit">Log out</button></form></nav>`,
			templ.EscapeString(displayName))
		return err
	})
}

// ErrorPage renders a standalone error page.
func ErrorPage(status int, title, message string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="error"><h1>%d %s</h1><p>%s</p><a href="/">Back to home</a></section>`,
			status, templ.EscapeString(title), templ.EscapeString(message))
		return err
	})
	return Layout(title, "", body)
}
