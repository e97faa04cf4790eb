package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Contact submission statuses.
const (
	SubmissionNew  = "new"
	SubmissionRead = "read"
)

// ContactSubmission is one contact form message sent by a user.
type ContactSubmission struct {
	ID          string
	Subject     string
	Message     string
	Status      string
	SubmittedAt time.Time
}

type rawSubmission struct {
	MongoID     string `json:"_id"`
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	Status      string `json:"status"`
	SubmittedAt string `json:"submittedAt"`
}

// UnmarshalJSON decodes and normalizes a submission.
func (s *ContactSubmission) UnmarshalJSON(data []byte) error {
	var raw rawSubmission
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ContactSubmission{
		ID:          firstNonEmpty(raw.MongoID, raw.ID),
		Subject:     raw.Subject,
		Message:     raw.Message,
		Status:      firstNonEmpty(raw.Status, SubmissionNew),
		SubmittedAt: parseTime(raw.SubmittedAt),
	}
	return nil
}

// User aggregates everything one visitor sent: contact messages and comments.
type User struct {
	ID                 string
	Name               string
	Lastname           string
	Email              string
	Phone              string
	Company            string
	TotalContacts      int
	TotalComments      int
	LastInteraction    time.Time
	ContactSubmissions []ContactSubmission
	Comments           []Comment
}

type rawUser struct {
	MongoID            string              `json:"_id"`
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Lastname           string              `json:"lastname"`
	Email              string              `json:"email"`
	Phone              string              `json:"phone"`
	Company            string              `json:"company"`
	TotalContacts      *int                `json:"totalContacts"`
	TotalComments      *int                `json:"totalComments"`
	LastInteraction    string              `json:"lastInteraction"`
	ContactSubmissions []ContactSubmission `json:"contactSubmissions"`
	Comments           []Comment           `json:"comments"`
}

// UnmarshalJSON decodes and normalizes a user. Missing totals are derived
// from the nested lists.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw rawUser
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*u = User{
		ID:                 firstNonEmpty(raw.MongoID, raw.ID),
		Name:               raw.Name,
		Lastname:           raw.Lastname,
		Email:              raw.Email,
		Phone:              raw.Phone,
		Company:            raw.Company,
		LastInteraction:    parseTime(raw.LastInteraction),
		ContactSubmissions: raw.ContactSubmissions,
		Comments:           raw.Comments,
	}
	if u.ContactSubmissions == nil {
		u.ContactSubmissions = []ContactSubmission{}
	}
	if u.Comments == nil {
		u.Comments = []Comment{}
	}

	u.TotalContacts = len(u.ContactSubmissions)
	if raw.TotalContacts != nil {
		u.TotalContacts = *raw.TotalContacts
	}
	u.TotalComments = len(u.Comments)
	if raw.TotalComments != nil {
		u.TotalComments = *raw.TotalComments
	}

	// Nested comments belong to this user even when the API omits userId.
	for i := range u.Comments {
		if u.Comments[i].UserID == "" {
			u.Comments[i].UserID = u.ID
		}
	}
	return nil
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.Name + " " + u.Lastname)
}
