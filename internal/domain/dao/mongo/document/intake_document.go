package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactDocument represents a contact request in MongoDB.
type ContactDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	NumericID     uint               `bson:"numeric_id"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	Phone         string             `bson:"phone,omitempty"`
	Subject       string             `bson:"subject"`
	Message       string             `bson:"message"`
	Status        string             `bson:"status"`
	AssignedTo    string             `bson:"assigned_to,omitempty"`
	ResponseNotes string             `bson:"response_notes,omitempty"`
	ResolvedAt    *time.Time         `bson:"resolved_at,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
	DeletedAt     *time.Time         `bson:"deleted_at,omitempty"`
}

// CollectionName returns the MongoDB collection name for contacts.
func (ContactDocument) CollectionName() string {
	return "contacts"
}

// ApplicationDocument represents a job or internship application in MongoDB.
type ApplicationDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	NumericID   uint               `bson:"numeric_id"`
	Kind        string             `bson:"kind"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	Phone       string             `bson:"phone,omitempty"`
	Position    string             `bson:"position"`
	ResumeURL   string             `bson:"resume_url,omitempty"`
	CoverLetter string             `bson:"cover_letter,omitempty"`
	Reviewed    bool               `bson:"reviewed"`
	Shortlisted bool               `bson:"shortlisted"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
	DeletedAt   *time.Time         `bson:"deleted_at,omitempty"`
}

// CollectionName returns the MongoDB collection name for applications.
func (ApplicationDocument) CollectionName() string {
	return "applications"
}
