package model

import (
	"encoding/json"
	"time"
)

// DefaultBlogTitle labels comments whose post title is unknown.
const DefaultBlogTitle = "Blog Post"

// Comment is a reader comment on a post. Comments carry no moderation status.
type Comment struct {
	ID          string
	UserID      string
	BlogID      string
	Name        string
	Email       string
	Comment     string
	BlogTitle   string
	IPAddress   string
	SubmittedAt time.Time
}

type rawComment struct {
	MongoID     string `json:"_id"`
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	BlogID      string `json:"blogId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Comment     string `json:"comment"`
	BlogTitle   string `json:"blogTitle"`
	IPAddress   string `json:"ipAddress"`
	SubmittedAt string `json:"submittedAt"`
}

// UnmarshalJSON decodes and normalizes a comment.
func (c *Comment) UnmarshalJSON(data []byte) error {
	var raw rawComment
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Comment{
		ID:          firstNonEmpty(raw.MongoID, raw.ID),
		UserID:      raw.UserID,
		BlogID:      raw.BlogID,
		Name:        raw.Name,
		Email:       raw.Email,
		Comment:     raw.Comment,
		BlogTitle:   firstNonEmpty(raw.BlogTitle, DefaultBlogTitle),
		IPAddress:   raw.IPAddress,
		SubmittedAt: parseTime(raw.SubmittedAt),
	}
	return nil
}

// CommentStats is the summary shown in the navigation badge.
type CommentStats struct {
	Total int `json:"total"`
}
