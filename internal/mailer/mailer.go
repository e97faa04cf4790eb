// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mailer turns contact form submissions into notification emails
// and hands them to an SMTP transport.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMissingFields is returned when name, email or message is blank.
var ErrMissingFields = errors.New("mailer: missing fields")

// Submission is the contact form payload.
type Submission struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize trims the submission fields and checks that none is empty.
func (s *Submission) Normalize() error {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Message = strings.TrimSpace(s.Message)
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingFields, err)
	}
	return nil
}

// Message is a rendered email ready for a Sender.
type Message struct {
	FromName string
	From     string
	To       string
	ReplyTo  string
	Subject  string
	HTML     string
}

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Relay composes submissions into messages for a fixed sender and recipient.
type Relay struct {
	sender   Sender
	fromName string
	from     string
	to       string
	logger   *slog.Logger
}

// NewRelay creates a relay. to receives every message; from is both the SMTP
// account and the visible sender address.
func NewRelay(sender Sender, fromName, from, to string, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{sender: sender, fromName: fromName, from: from, to: to, logger: logger}
}

// Deliver validates, composes and sends one submission.
func (r *Relay) Deliver(ctx context.Context, sub Submission) error {
	if err := sub.Normalize(); err != nil {
		return err
	}

	msg, err := Compose(sub, r.fromName, r.from, r.to)
	if err != nil {
		return err
	}

	if err := r.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("sending contact email: %w", err)
	}
	r.logger.InfoContext(ctx, "contact email sent", "reply_to", msg.ReplyTo)
	return nil
}

var bodyTmpl = template.Must(template.New("contact").Parse(`
<div style="font-family: Arial, sans-serif; color: #333; padding: 20px; background-color: #f2f2f2;">
  <div style="max-width: 600px; margin: 0 auto; background: #fff; border-radius: 8px; overflow: hidden; box-shadow: 0 2px 6px rgba(0,0,0,0.1);">
    <div style="background-color: #007bff; color: #fff; text-align: center; padding: 15px;">
      <h2>New Contact Form Submission</h2>
    </div>
    <div style="padding: 15px;">
      <p><strong>Name:</strong> {{.Name}}</p>
      <p><strong>Email:</strong> {{.Email}}</p>
      <p><strong>Message:</strong></p>
      <div style="background: #f9f9f9; padding: 10px; border-left: 4px solid #007bff; border-radius: 5px;">
        {{.Message}}
      </div>
    </div>
    <div style="padding: 10px; font-size: 12px; color: #777; text-align: center; background: #f2f2f2;">
      This email was sent from {{.Brand}} contact form.
    </div>
  </div>
</div>
`))

// Compose renders the notification email for sub. User text is HTML-escaped
// and message line breaks become <br/>.
func Compose(sub Submission, fromName, from, to string) (Message, error) {
	lines := strings.Split(strings.ReplaceAll(sub.Message, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = template.HTMLEscapeString(l)
	}

	var buf bytes.Buffer
	err := bodyTmpl.Execute(&buf, struct {
		Name, Email, Brand string
		Message            template.HTML
	}{
		Name:    sub.Name,
		Email:   sub.Email,
		Brand:   fromName,
		Message: template.HTML(strings.Join(lines, "<br/>")),
	})
	if err != nil {
		return Message{}, fmt.Errorf("rendering contact email: %w", err)
	}

	return Message{
		FromName: fromName,
		From:     from,
		To:       to,
		ReplyTo:  sub.Email,
		Subject:  "New Contact Form Submission from " + sub.Name,
		HTML:     buf.String(),
	}, nil
}
