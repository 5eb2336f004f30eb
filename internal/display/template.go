package display

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

var templates = template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.tmpl"))

// Template names.
const (
	TemplateWelcome   = "welcome.tmpl"
	TemplateRaceMenu  = "race_menu.tmpl"
	TemplateClassMenu = "class_menu.tmpl"
	TemplateCreated   = "created.tmpl"
	TemplateHelp      = "help.tmpl"
	TemplateWho       = "who.tmpl"
	TemplateStats     = "stats.tmpl"
)

// Render executes one of the built-in templates. The trailing newline of the
// template file is dropped.
func Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, name, data)
	if err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
