package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Blog statuses understood by the dashboard.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// DefaultTitle is shown for posts saved without a title.
const DefaultTitle = "Untitled"

// SEO holds search metadata attached to a post.
type SEO struct {
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	Keywords        []string `json:"keywords"`
	RobotsIndex     bool     `json:"robotsIndex"`
	RobotsFollow    bool     `json:"robotsFollow"`
}

// Blog is a blog post. ID is never sent back to the API; it travels in the URL.
type Blog struct {
	ID         string   `json:"-"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Date       string   `json:"date"`
	Status     string   `json:"status"`
	Featured   bool     `json:"featured"`
	Thumbnail  string   `json:"thumbnail"`
	Categories []string `json:"categories"`
	SEO        SEO      `json:"seo"`
}

type rawSEO struct {
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	Keywords        []string `json:"keywords"`
	RobotsIndex     *bool    `json:"robotsIndex"`
	RobotsFollow    *bool    `json:"robotsFollow"`
}

type rawBlog struct {
	MongoID    string   `json:"_id"`
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Date       string   `json:"date"`
	Status     string   `json:"status"`
	Featured   bool     `json:"featured"`
	Thumbnail  string   `json:"thumbnail"`
	Categories []string `json:"categories"`
	SEO        *rawSEO  `json:"seo"`
}

// UnmarshalJSON decodes and normalizes a post.
func (b *Blog) UnmarshalJSON(data []byte) error {
	var raw rawBlog
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*b = Blog{
		ID:         firstNonEmpty(raw.MongoID, raw.ID),
		Title:      firstNonEmpty(strings.TrimSpace(raw.Title), DefaultTitle),
		Content:    raw.Content,
		Date:       raw.Date,
		Status:     firstNonEmpty(strings.TrimSpace(raw.Status), StatusDraft),
		Featured:   raw.Featured,
		Thumbnail:  raw.Thumbnail,
		Categories: cleanList(raw.Categories),
		SEO:        SEO{Keywords: []string{}, RobotsIndex: true, RobotsFollow: true},
	}
	if s := raw.SEO; s != nil {
		b.SEO.MetaTitle = s.MetaTitle
		b.SEO.MetaDescription = s.MetaDescription
		b.SEO.Keywords = cleanList(s.Keywords)
		b.SEO.RobotsIndex = s.RobotsIndex == nil || *s.RobotsIndex
		b.SEO.RobotsFollow = s.RobotsFollow == nil || *s.RobotsFollow
	}
	return nil
}

// Category returns the first category, the only one the dashboard edits.
func (b Blog) Category() string {
	if len(b.Categories) == 0 {
		return ""
	}
	return b.Categories[0]
}

// Day returns the date part (YYYY-MM-DD) of the post date.
func (b Blog) Day() string {
	d, _, _ := strings.Cut(b.Date, "T")
	return d
}

// PublishedAt parses the post date; zero when absent or unparseable.
func (b Blog) PublishedAt() time.Time {
	return parseTime(b.Date)
}
