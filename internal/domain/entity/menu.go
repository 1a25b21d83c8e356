package entity

import (
	"time"
)

// MenuItem is a catalog entry on the menu.
type MenuItem struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	Price       float64    `json:"price"`
	ImageURL    string     `json:"image_url,omitempty"`
	Available   bool       `json:"available"`
	Tags        []string   `json:"tags,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// IsDeleted returns true if the item has been soft-deleted.
func (m *MenuItem) IsDeleted() bool {
	return m.DeletedAt != nil
}
