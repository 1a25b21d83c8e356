package impl

import (
	"context"

	"github.com/savora/savora-cloud-go/internal/domain/dao"
	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/repository"
)

// menuRepository implements repository.MenuRepository by delegating to MenuDAO.
type menuRepository struct {
	dao dao.MenuDAO
}

// NewMenuRepository creates a new MenuRepository instance.
func NewMenuRepository(menuDAO dao.MenuDAO) repository.MenuRepository {
	return &menuRepository{dao: menuDAO}
}

// Create inserts a new menu item.
func (r *menuRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	return r.dao.Create(ctx, item)
}

// GetByID retrieves a menu item by ID.
func (r *menuRepository) GetByID(ctx context.Context, id uint) (*entity.MenuItem, error) {
	return r.dao.FindByID(ctx, id)
}

// List retrieves menu items with pagination.
func (r *menuRepository) List(ctx context.Context, page, size int, category string) ([]*entity.MenuItem, int64, error) {
	return r.dao.FindAll(ctx, page, size, category)
}

// Update modifies an existing menu item.
func (r *menuRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	return r.dao.Update(ctx, item)
}

// SoftDelete marks a menu item deleted.
func (r *menuRepository) SoftDelete(ctx context.Context, id uint) (bool, error) {
	return r.dao.SoftDelete(ctx, id)
}

// Restore clears the soft-delete marker.
func (r *menuRepository) Restore(ctx context.Context, id uint) (bool, error) {
	return r.dao.Restore(ctx, id)
}

// PermanentDelete physically removes an already soft-deleted menu item.
func (r *menuRepository) PermanentDelete(ctx context.Context, id uint) (bool, error) {
	return r.dao.PermanentDelete(ctx, id)
}
