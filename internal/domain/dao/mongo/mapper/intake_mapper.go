package mapper

import (
	"github.com/savora/savora-cloud-go/internal/domain/dao/mongo/document"
	"github.com/savora/savora-cloud-go/internal/domain/entity"
)

// ContactMapper converts between GeneralContact entity and ContactDocument.
type ContactMapper struct{}

// NewContactMapper creates a new ContactMapper instance.
func NewContactMapper() *ContactMapper {
	return &ContactMapper{}
}

// ToDocument converts a GeneralContact entity to a ContactDocument.
func (m *ContactMapper) ToDocument(c *entity.GeneralContact) *document.ContactDocument {
	if c == nil {
		return nil
	}
	return &document.ContactDocument{
		NumericID:     c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Subject:       c.Subject,
		Message:       c.Message,
		Status:        string(c.Status),
		AssignedTo:    c.AssignedTo,
		ResponseNotes: c.ResponseNotes,
		ResolvedAt:    c.ResolvedAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		DeletedAt:     c.DeletedAt,
	}
}

// ToEntity converts a ContactDocument to a GeneralContact entity.
func (m *ContactMapper) ToEntity(doc *document.ContactDocument) *entity.GeneralContact {
	if doc == nil {
		return nil
	}
	return &entity.GeneralContact{
		ID:            doc.NumericID,
		Name:          doc.Name,
		Email:         doc.Email,
		Phone:         doc.Phone,
		Subject:       doc.Subject,
		Message:       doc.Message,
		Status:        entity.ContactStatus(doc.Status),
		AssignedTo:    doc.AssignedTo,
		ResponseNotes: doc.ResponseNotes,
		ResolvedAt:    doc.ResolvedAt,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
		DeletedAt:     doc.DeletedAt,
	}
}

// ToEntities converts a slice of documents to entities.
func (m *ContactMapper) ToEntities(docs []*document.ContactDocument) []*entity.GeneralContact {
	contacts := make([]*entity.GeneralContact, len(docs))
	for i, doc := range docs {
		contacts[i] = m.ToEntity(doc)
	}
	return contacts
}

// ApplicationMapper converts between Application entity and ApplicationDocument.
type ApplicationMapper struct{}

// NewApplicationMapper creates a new ApplicationMapper instance.
func NewApplicationMapper() *ApplicationMapper {
	return &ApplicationMapper{}
}

// ToDocument converts an Application entity to an ApplicationDocument.
func (m *ApplicationMapper) ToDocument(a *entity.Application) *document.ApplicationDocument {
	if a == nil {
		return nil
	}
	return &document.ApplicationDocument{
		NumericID:   a.ID,
		Kind:        string(a.Kind),
		Name:        a.Name,
		Email:       a.Email,
		Phone:       a.Phone,
		Position:    a.Position,
		ResumeURL:   a.ResumeURL,
		CoverLetter: a.CoverLetter,
		Reviewed:    a.Reviewed,
		Shortlisted: a.Shortlisted,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		DeletedAt:   a.DeletedAt,
	}
}

// ToEntity converts an ApplicationDocument to an Application entity.
func (m *ApplicationMapper) ToEntity(doc *document.ApplicationDocument) *entity.Application {
	if doc == nil {
		return nil
	}
	return &entity.Application{
		ID:          doc.NumericID,
		Kind:        entity.ApplicationKind(doc.Kind),
		Name:        doc.Name,
		Email:       doc.Email,
		Phone:       doc.Phone,
		Position:    doc.Position,
		ResumeURL:   doc.ResumeURL,
		CoverLetter: doc.CoverLetter,
		Reviewed:    doc.Reviewed,
		Shortlisted: doc.Shortlisted,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
		DeletedAt:   doc.DeletedAt,
	}
}

// ToEntities converts a slice of documents to entities.
func (m *ApplicationMapper) ToEntities(docs []*document.ApplicationDocument) []*entity.Application {
	apps := make([]*entity.Application, len(docs))
	for i, doc := range docs {
		apps[i] = m.ToEntity(doc)
	}
	return apps
}
