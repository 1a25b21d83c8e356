package mapper

import (
	"github.com/savora/savora-cloud-go/internal/domain/dao/mongo/document"
	"github.com/savora/savora-cloud-go/internal/domain/entity"
)

// MenuMapper converts between MenuItem entity and MenuItemDocument.
type MenuMapper struct{}

// NewMenuMapper creates a new MenuMapper instance.
func NewMenuMapper() *MenuMapper {
	return &MenuMapper{}
}

// ToDocument converts a MenuItem entity to a MenuItemDocument.
func (m *MenuMapper) ToDocument(item *entity.MenuItem) *document.MenuItemDocument {
	if item == nil {
		return nil
	}
	return &document.MenuItemDocument{
		NumericID:   item.ID,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Price:       item.Price,
		ImageURL:    item.ImageURL,
		Available:   item.Available,
		Tags:        item.Tags,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
		DeletedAt:   item.DeletedAt,
	}
}

// ToEntity converts a MenuItemDocument to a MenuItem entity.
func (m *MenuMapper) ToEntity(doc *document.MenuItemDocument) *entity.MenuItem {
	if doc == nil {
		return nil
	}
	return &entity.MenuItem{
		ID:          doc.NumericID,
		Name:        doc.Name,
		Description: doc.Description,
		Category:    doc.Category,
		Price:       doc.Price,
		ImageURL:    doc.ImageURL,
		Available:   doc.Available,
		Tags:        doc.Tags,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
		DeletedAt:   doc.DeletedAt,
	}
}

// ToEntities converts a slice of documents to entities.
func (m *MenuMapper) ToEntities(docs []*document.MenuItemDocument) []*entity.MenuItem {
	items := make([]*entity.MenuItem, len(docs))
	for i, doc := range docs {
		items[i] = m.ToEntity(doc)
	}
	return items
}
