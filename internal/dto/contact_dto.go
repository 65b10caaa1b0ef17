package dto

import (
	"strings"
	"time"
)

// ContactRequest is the contact form payload, accepted as JSON or urlencoded form.
type ContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (r ContactRequest) Trimmed() ContactRequest {
	return ContactRequest{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Subject: strings.TrimSpace(r.Subject),
		Message: strings.TrimSpace(r.Message),
	}
}

// ContactOutcome names the path a submission took through the service.
type ContactOutcome string

const (
	ContactOutcomePersisted ContactOutcome = "persisted"
	ContactOutcomeDegraded  ContactOutcome = "degraded"
	ContactOutcomeDuplicate ContactOutcome = "duplicate"
)

// ContactResult is what the service reports back for an accepted submission.
type ContactResult struct {
	Outcome ContactOutcome
	Message string
}

// ContactRecord is a stored contact message as returned by GET /api/contacts.
type ContactRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
