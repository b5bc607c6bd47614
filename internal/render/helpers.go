package render

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// defaultDateTimeLayout is the human-readable fallback for formatDateTime.
const defaultDateTimeLayout = "Mon Jan 2 15:04:05 2006"

func helperFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDateTime": formatDateTime,
		"join":           joinStrings,
	}
}

// formatDateTime formats an RFC 3339 date string property with a Go
// reference layout. The layout is optional and defaults to
// defaultDateTimeLayout. An unparseable value is a render error.
//
//	{{if .date}}{{formatDateTime .date "Monday, January 2, 2006"}}{{end}}
func formatDateTime(v any, layout ...string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("formatDateTime: property cannot be converted to string")
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "", fmt.Errorf("formatDateTime: could not parse %q as datetime: %w", s, err)
	}
	l := defaultDateTimeLayout
	if len(layout) > 0 {
		l = layout[0]
	}
	return t.Format(l), nil
}

// joinStrings joins the string elements of an array property with a
// separator, defaulting to ", ". Non-string elements are skipped.
//
//	{{join .tags " + "}}
func joinStrings(v any, sep ...string) (string, error) {
	s := ", "
	if len(sep) > 0 {
		s = sep[0]
	}
	switch arr := v.(type) {
	case []string:
		return strings.Join(arr, s), nil
	case []any:
		parts := make([]string, 0, len(arr))
		for _, e := range arr {
			if str, ok := e.(string); ok {
				parts = append(parts, str)
			}
		}
		return strings.Join(parts, s), nil
	default:
		return "", fmt.Errorf("join: property cannot be converted to array")
	}
}
