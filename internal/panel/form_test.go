// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package panel

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/azaya-go/internal/model"
)

var fixedNow = time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)

func validForm() Form {
	f := NewForm()
	f.Title = "  Spring launch "
	f.Category = "Marketing"
	f.Content = "<p>Hello</p>"
	return f
}

func TestBuildSubmission_PlaceholderRejected(t *testing.T) {
	f := validForm()
	f.Content = ContentPlaceholder

	_, err := BuildSubmission(f, "", fixedNow)
	assert.ErrorIs(t, err, ErrContentRequired)

	f.Content = "   "
	_, err = BuildSubmission(f, "", fixedNow)
	assert.ErrorIs(t, err, ErrContentRequired)

	f.Content = "  " + ContentPlaceholder + "\n"
	_, err = BuildSubmission(f, "", fixedNow)
	assert.ErrorIs(t, err, ErrContentRequired)
}

func TestBuildSubmission_BlankNewCategoryRejected(t *testing.T) {
	f := validForm()
	f.Category = NewCategorySentinel
	f.NewCategory = "   "

	_, err := BuildSubmission(f, "", fixedNow)
	assert.ErrorIs(t, err, ErrCategoryRequired)

	f.Category = ""
	_, err = BuildSubmission(f, "", fixedNow)
	assert.ErrorIs(t, err, ErrCategoryRequired)
}

func TestBuildSubmission_Assembles(t *testing.T) {
	f := validForm()
	f.Category = NewCategorySentinel
	f.NewCategory = " Podcasts "
	f.Keywords = " growth, ,seo ,, brand "
	f.Featured = true
	f.Status = model.StatusPublished
	f.RobotsFollow = false

	blog, err := BuildSubmission(f, "data:image/png;base64,AA", fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "Spring launch", blog.Title)
	assert.Equal(t, []string{"Podcasts"}, blog.Categories)
	assert.Equal(t, []string{"growth", "seo", "brand"}, blog.SEO.Keywords)
	assert.Equal(t, "2026-02-14", blog.Date, "empty date defaults to today")
	assert.Equal(t, "data:image/png;base64,AA", blog.Thumbnail)
	assert.True(t, blog.Featured)
	assert.True(t, blog.SEO.RobotsIndex)
	assert.False(t, blog.SEO.RobotsFollow)
	assert.Equal(t, model.StatusPublished, blog.Status)
}

func TestBuildSubmission_KeepsExplicitDate(t *testing.T) {
	f := validForm()
	f.Date = "2024-12-31"
	f.Status = ""

	blog, err := BuildSubmission(f, "", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", blog.Date)
	assert.Equal(t, model.StatusDraft, blog.Status)
}

func TestBuildSubmission_Markdown(t *testing.T) {
	f := validForm()
	f.Format = FormatMarkdown
	f.Content = "# Title\n\nSome *text*"

	blog, err := BuildSubmission(f, "", fixedNow)
	require.NoError(t, err)
	assert.Contains(t, blog.Content, "<h1>Title</h1>")
	assert.Contains(t, blog.Content, "<em>text</em>")

	f.Content = ContentPlaceholder
	_, err = BuildSubmission(f, "", fixedNow)
	assert.ErrorIs(t, err, ErrContentRequired)
}

func TestSplitKeywords(t *testing.T) {
	assert.Equal(t, []string{}, SplitKeywords(""))
	assert.Equal(t, []string{}, SplitKeywords(" , ,"))
	assert.Equal(t, []string{"a", "b c"}, SplitKeywords("a, b c ,"))
}

func TestFormFromBlog_RoundTrip(t *testing.T) {
	blog := model.Blog{
		ID:         "b1",
		Title:      "T",
		Content:    "<p>Body</p>",
		Date:       "2025-01-01",
		Status:     model.StatusPublished,
		Categories: []string{"SEO"},
		SEO:        model.SEO{Keywords: []string{"k1", "k2"}, RobotsIndex: true, RobotsFollow: true},
	}

	got, err := BuildSubmission(FormFromBlog(blog, DefaultCategories), "", fixedNow)
	require.NoError(t, err)

	blog.ID = ""
	assert.Equal(t, blog, got)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Please enter blog content", Message(ErrContentRequired))
	assert.Equal(t, "Please enter a category name", Message(ErrCategoryRequired))
	assert.True(t, strings.Contains(Message(ErrImageTooLarge), "5MB"))
	assert.Equal(t, MsgBlogSaveFailed, Message(assert.AnError))
}
