package game

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName returns the directory key for a username.
func NormalizeName(name string) string {
	// Casers carry state, so each call gets its own.
	return cases.Lower(language.Und).String(strings.TrimSpace(name))
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
