package request

// ContactRequest represents an incoming general contact submission.
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email,max=100"`
	Phone   string `json:"phone,omitempty" binding:"max=20"`
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}

// UpdateContactStatusRequest moves a contact request through its workflow.
type UpdateContactStatusRequest struct {
	Status        string `json:"status" binding:"required,oneof=pending in-progress resolved closed"`
	AssignedTo    string `json:"assigned_to,omitempty" binding:"max=100"`
	ResponseNotes string `json:"response_notes,omitempty" binding:"max=5000"`
}

// ApplicationRequest represents a job or internship application submission.
type ApplicationRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=job intern"`
	Name        string `json:"name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email,max=100"`
	Phone       string `json:"phone,omitempty" binding:"max=20"`
	Position    string `json:"position" binding:"required,max=100"`
	ResumeURL   string `json:"resume_url,omitempty" binding:"omitempty,url,max=500"`
	CoverLetter string `json:"cover_letter,omitempty" binding:"max=10000"`
}

// ReviewApplicationRequest marks an application reviewed or shortlisted.
type ReviewApplicationRequest struct {
	Reviewed    *bool `json:"reviewed,omitempty"`
	Shortlisted *bool `json:"shortlisted,omitempty"`
}
