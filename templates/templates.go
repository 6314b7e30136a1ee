// Package templates embeds the HTML email templates. Every message template
// shares the "header" and "footer" blocks.
package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
)

// Message template names.
const (
	EmailVerification = "email_verification"
	PasswordReset     = "password_reset"
)

// ErrUnknownTemplate is returned by Render for names not listed in Subjects.
var ErrUnknownTemplate = errors.New("unknown email template")

// Subjects maps every template name to its email subject.
var Subjects = map[string]string{
	EmailVerification: "Verify Your Account",
	PasswordReset:     "Password Reset",
}

//go:embed *.html
var files embed.FS

var parsed = template.Must(template.ParseFS(files, "*.html"))

// Data is the view model passed to a template. Subject is filled in by Render.
type Data struct {
	Subject         string
	Name            string
	Email           string
	VerificationURL string
}

// Render executes the named template and returns the subject and HTML body.
func Render(name string, data Data) (subject string, body string, err error) {
	subject, ok := Subjects[name]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	data.Subject = subject

	var buf bytes.Buffer
	if err = parsed.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", "", fmt.Errorf("error rendering template %q: %w", name, err)
	}

	return subject, buf.String(), nil
}
