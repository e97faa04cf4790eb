// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package panel

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/olegiv/azaya-go/internal/model"
)

// Editor constants.
const (
	ContentPlaceholder  = "<p>Start typing your blog content here...</p>"
	NewCategorySentinel = "__new__"

	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Validation errors returned by BuildSubmission.
var (
	ErrContentRequired  = errors.New("panel: content is required")
	ErrCategoryRequired = errors.New("panel: category is required")
)

// DefaultCategories are the category options offered by the editor.
var DefaultCategories = []string{
	"Marketing",
	"Branding",
	"Social Media",
	"SEO",
	"Content Strategy",
	"Web Design",
	"News",
}

// Statuses offered by the editor.
var Statuses = []string{model.StatusDraft, model.StatusPublished, model.StatusArchived}

// Form mirrors the add/edit form fields.
type Form struct {
	Title           string `json:"title"`
	Date            string `json:"date"`
	Status          string `json:"status"`
	Featured        bool   `json:"featured"`
	Category        string `json:"category"`
	NewCategory     string `json:"newCategory"`
	Content         string `json:"content"`
	Format          string `json:"format"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	Keywords        string `json:"keywords"`
	RobotsIndex     bool   `json:"robotsIndex"`
	RobotsFollow    bool   `json:"robotsFollow"`
}

// NewForm returns the empty add form.
func NewForm() Form {
	return Form{
		Status:       model.StatusDraft,
		Content:      ContentPlaceholder,
		Format:       FormatHTML,
		RobotsIndex:  true,
		RobotsFollow: true,
	}
}

// FormFromBlog fills every form field from blog.
func FormFromBlog(blog model.Blog, known []string) Form {
	f := NewForm()
	f.Title = blog.Title
	f.Date = blog.Day()
	f.Status = blog.Status
	f.Featured = blog.Featured
	if blog.Content != "" {
		f.Content = blog.Content
	}
	f.MetaTitle = blog.SEO.MetaTitle
	f.MetaDescription = blog.SEO.MetaDescription
	f.Keywords = strings.Join(blog.SEO.Keywords, ", ")
	f.RobotsIndex = blog.SEO.RobotsIndex
	f.RobotsFollow = blog.SEO.RobotsFollow

	if cat := blog.Category(); cat != "" {
		if slices.Contains(known, cat) {
			f.Category = cat
		} else {
			f.Category = NewCategorySentinel
			f.NewCategory = cat
		}
	}
	return f
}

// MetaTitleCount and MetaDescriptionCount feed the SEO character counters.
func (f Form) MetaTitleCount() int { return len([]rune(f.MetaTitle)) }

func (f Form) MetaDescriptionCount() int { return len([]rune(f.MetaDescription)) }

// ResolvedCategory returns the free-text category when the sentinel is
// selected, the selected option otherwise.
func (f Form) ResolvedCategory() string {
	if f.Category == NewCategorySentinel {
		return strings.TrimSpace(f.NewCategory)
	}
	return strings.TrimSpace(f.Category)
}

// BuildSubmission validates the form and assembles the full post to send.
// now supplies the default date.
func BuildSubmission(f Form, thumbnail string, now time.Time) (model.Blog, error) {
	content, err := renderContent(f)
	if err != nil {
		return model.Blog{}, err
	}
	if c := strings.TrimSpace(content); c == "" || c == ContentPlaceholder {
		return model.Blog{}, ErrContentRequired
	}

	category := f.ResolvedCategory()
	if category == "" {
		return model.Blog{}, ErrCategoryRequired
	}

	date := strings.TrimSpace(f.Date)
	if date == "" {
		date = now.Format("2006-01-02")
	}
	status := strings.TrimSpace(f.Status)
	if status == "" {
		status = model.StatusDraft
	}

	return model.Blog{
		Title:      strings.TrimSpace(f.Title),
		Content:    content,
		Date:       date,
		Status:     status,
		Featured:   f.Featured,
		Thumbnail:  thumbnail,
		Categories: []string{category},
		SEO: model.SEO{
			MetaTitle:       f.MetaTitle,
			MetaDescription: f.MetaDescription,
			Keywords:        SplitKeywords(f.Keywords),
			RobotsIndex:     f.RobotsIndex,
			RobotsFollow:    f.RobotsFollow,
		},
	}, nil
}

// SplitKeywords splits on commas, trims and drops empty entries.
func SplitKeywords(s string) []string {
	out := []string{}
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderContent returns the HTML body of the form, converting markdown.
func renderContent(f Form) (string, error) {
	if f.Format != FormatMarkdown {
		return f.Content, nil
	}
	if strings.TrimSpace(f.Content) == "" || strings.TrimSpace(f.Content) == ContentPlaceholder {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(f.Content), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
