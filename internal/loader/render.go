package loader

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/loykin/apicall/internal/descriptor"
)

// parseTemplate parses a Go template once at load time. Plain strings pass
// through unchanged at render time.
func parseTemplate(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", name, err)
	}
	return tmpl, nil
}

// render executes a template against the invocation arguments, exposed to
// the template as {{.args.*}}.
func render(tmpl *template.Template, args descriptor.Args) (string, error) {
	var b strings.Builder
	data := map[string]any{"args": map[string]any(args)}
	if err := tmpl.Execute(&b, data); err != nil {
		return "", err
	}
	// missingkey=zero renders absent map keys as "<no value>"
	return strings.ReplaceAll(b.String(), "<no value>", ""), nil
}
