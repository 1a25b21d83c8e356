package entity

import (
	"time"
)

// ContactStatus is the lifecycle of a contact request:
// pending -> in-progress -> resolved -> closed.
type ContactStatus string

const (
	ContactPending    ContactStatus = "pending"
	ContactInProgress ContactStatus = "in-progress"
	ContactResolved   ContactStatus = "resolved"
	ContactClosed     ContactStatus = "closed"
)

// CanTransition reports whether a contact may move to the given status.
func (s ContactStatus) CanTransition(to ContactStatus) bool {
	switch s {
	case ContactPending:
		return to == ContactInProgress || to == ContactResolved || to == ContactClosed
	case ContactInProgress:
		return to == ContactResolved || to == ContactClosed
	case ContactResolved:
		return to == ContactClosed
	default:
		return false
	}
}

// GeneralContact is an inbound contact/support request.
type GeneralContact struct {
	ID            uint          `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone,omitempty"`
	Subject       string        `json:"subject"`
	Message       string        `json:"message"`
	Status        ContactStatus `json:"status"`
	AssignedTo    string        `json:"assigned_to,omitempty"`
	ResponseNotes string        `json:"response_notes,omitempty"`
	ResolvedAt    *time.Time    `json:"resolved_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	DeletedAt     *time.Time    `json:"-"`
}

// IsDeleted returns true if the contact has been soft-deleted.
func (c *GeneralContact) IsDeleted() bool {
	return c.DeletedAt != nil
}

// ApplicationKind distinguishes job applications from internship applications.
type ApplicationKind string

const (
	ApplicationJob    ApplicationKind = "job"
	ApplicationIntern ApplicationKind = "intern"
)

// Application is a job or internship application submission.
type Application struct {
	ID          uint            `json:"id"`
	Kind        ApplicationKind `json:"kind"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone,omitempty"`
	Position    string          `json:"position"`
	ResumeURL   string          `json:"resume_url,omitempty"`
	CoverLetter string          `json:"cover_letter,omitempty"`
	Reviewed    bool            `json:"reviewed"`
	Shortlisted bool            `json:"shortlisted"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   *time.Time      `json:"-"`
}

// IsDeleted returns true if the application has been soft-deleted.
func (a *Application) IsDeleted() bool {
	return a.DeletedAt != nil
}
