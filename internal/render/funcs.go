// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"fmt"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/olegiv/azaya-go/internal/view"
)

// TemplateFuncs returns the helpers available to every template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"truncate": func(s string, length int) string {
			if utf8.RuneCountInString(s) <= length {
				return s
			}
			return string([]rune(s)[:length]) + "..."
		},
		"contains": func(collection []string, element string) bool {
			for _, s := range collection {
				if s == element {
					return true
				}
			}
			return false
		},
		"add": func(a, b int) int {
			return a + b
		},
		// sanitize renders post HTML through the preview policy.
		"sanitize": view.SanitizeContent,
		// imgURL passes data: URIs through html/template's URL filter. Only
		// image data URIs are accepted.
		"imgURL": func(s string) template.URL {
			if strings.HasPrefix(s, "data:image/") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://") {
				return template.URL(s)
			}
			return ""
		},
		"statusLabel": view.StatusLabel,
		"dict": func(values ...any) (map[string]any, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("dict: odd number of arguments")
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", values[i])
				}
				m[key] = values[i+1]
			}
			return m, nil
		},
	}
}
