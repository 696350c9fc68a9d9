package mailer

import (
	"bytes"
	"fmt"
	"text/template"
)

var templates = map[string]struct {
	subject string
	text    string
}{
	"welcome": {
		subject: "Welcome to HBnB",
		text: "Hi {{.FirstName}},\n\n" +
			"Your HBnB account is ready. You can now list places, browse\n" +
			"amenities and leave reviews.\n\n" +
			"The HBnB team",
	},
}

// Render renders a named template with the given data and returns the
// subject and text body.
func Render(name string, data map[string]any) (subject, text string, err error) {
	t, ok := templates[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	tpl, err := template.New(name).Parse(t.text)
	if err != nil {
		return "", "", err
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return t.subject, buf.String(), nil
}
