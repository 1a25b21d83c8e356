package repository

import (
	"context"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
)

// MenuRepository defines the interface for menu item operations
type MenuRepository interface {
	// Create creates a new menu item
	Create(ctx context.Context, item *entity.MenuItem) error

	// GetByID retrieves a menu item by ID
	GetByID(ctx context.Context, id uint) (*entity.MenuItem, error)

	// List retrieves menu items with pagination, optionally filtered by
	// category
	List(ctx context.Context, page, size int, category string) ([]*entity.MenuItem, int64, error)

	// Update updates an existing menu item
	Update(ctx context.Context, item *entity.MenuItem) error

	// SoftDelete marks a menu item deleted
	SoftDelete(ctx context.Context, id uint) (bool, error)

	// Restore clears the soft-delete marker
	Restore(ctx context.Context, id uint) (bool, error)

	// PermanentDelete physically removes an already soft-deleted menu item
	PermanentDelete(ctx context.Context, id uint) (bool, error)
}
