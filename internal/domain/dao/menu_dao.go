package dao

import (
	"context"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
)

// MenuDAO defines persistence operations for menu items.
type MenuDAO interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	FindByID(ctx context.Context, id uint) (*entity.MenuItem, error)
	FindAll(ctx context.Context, page, size int, category string) ([]*entity.MenuItem, int64, error)
	Update(ctx context.Context, item *entity.MenuItem) error

	SoftDelete(ctx context.Context, id uint) (bool, error)
	Restore(ctx context.Context, id uint) (bool, error)
	PermanentDelete(ctx context.Context, id uint) (bool, error)
}
