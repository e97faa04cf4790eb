// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package view

import (
	"html"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	previewPolicy = newPreviewPolicy()
	stripPolicy   = bluemonday.StrictPolicy()
)

func newPreviewPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataURIImages()
	p.AllowStyles("max-width", "height", "text-align").OnElements("img", "p", "h1", "h2", "h3")
	return p
}

// SanitizeContent returns post HTML safe to embed in the admin preview.
func SanitizeContent(content string) template.HTML {
	return template.HTML(previewPolicy.Sanitize(content))
}

// Excerpt returns the first n characters of the post text without markup.
func Excerpt(content string, n int) string {
	text := html.UnescapeString(stripPolicy.Sanitize(content))
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	r := []rune(text)
	return strings.TrimSpace(string(r[:n])) + "…"
}
