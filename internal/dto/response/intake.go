package response

import "time"

// ContactResponse represents a contact request in responses.
type ContactResponse struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	Subject       string     `json:"subject"`
	Message       string     `json:"message"`
	Status        string     `json:"status"`
	AssignedTo    string     `json:"assigned_to,omitempty"`
	ResponseNotes string     `json:"response_notes,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ApplicationResponse represents a job or internship application in responses.
type ApplicationResponse struct {
	ID          uint      `json:"id"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Position    string    `json:"position"`
	ResumeURL   string    `json:"resume_url,omitempty"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	Reviewed    bool      `json:"reviewed"`
	Shortlisted bool      `json:"shortlisted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
