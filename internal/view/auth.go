package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// LoginPage renders the login form. errMsg is shown above the form when set.
func LoginPage(errMsg, email string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Log in</h1>`); err != nil {
			return err
		}
		if err := formError(w, errMsg, nil); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<form method="post" action="/login">`+
			`<label>Email <input type="email" name="email" value="%s" required></label>`+
			`<label>Password <input type="password" name="password" required></label>`+
			`<button type="submit">Log in</button></form>`+
			`<p>No account yet? <a href="/register">Register</a></p>`,
			templ.EscapeString(email))
		return err
	})
	return Layout("Log in", "", body)
}

// RegisterPage renders the registration form with any validation feedback.
func RegisterPage(errMsg string, violations []string, name, email string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Create an account</h1>`); err != nil {
			return err
		}
		if err := formError(w, errMsg, violations); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<form method="post" action="/register">`+
			`<label>Name <input type="text" name="name" value="%s" required></label>`+
			`<label>Email <input type="email" name="email" value="%s" required></label>`+
			`<label>Password <input type="password" name="password" required></label>`+
			`<small>At least 8 characters with an uppercase letter, a lowercase letter, a number and a symbol.</small>`+
			`<button type="submit">Register</button></form>`+
			`<p>Already registered? <a href="/login">Log in</a></p>`,
			templ.EscapeString(name), templ.EscapeString(email))
		return err
	})
	return Layout("Register", "", body)
}

func formError(w io.Writer, msg string, details []string) error {
	if msg == "" {
		return nil
	}
	if _, err := fmt.Fprintf(w, `<div class="form-error" role="alert"><p>%s</p>`, templ.EscapeString(msg)); err != nil {
		return err
	}
	if len(details) > 0 {
		if _, err := io.WriteString(w, `<ul>`); err != nil {
			return err
		}
		for _, d := range details {
			if _, err := fmt.Fprintf(w, `<li>%s</li>`, templ.EscapeString(d)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</ul>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</div>`)
	return err
}
