package site

import (
	"html/template"
	"strconv"
	"strings"
)

// Funcs are shared by the generated page and the web views.
var Funcs = template.FuncMap{
	"rating": FormatRating,
}

// FormatRating prints a rating the way people write them: 8.0, 7.25, 9.1.
func FormatRating(r float64) string {
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
