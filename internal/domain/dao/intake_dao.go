package dao

import (
	"context"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
)

// ContactDAO defines persistence operations for contact requests.
type ContactDAO interface {
	Create(ctx context.Context, contact *entity.GeneralContact) error
	FindByID(ctx context.Context, id uint) (*entity.GeneralContact, error)
	FindAll(ctx context.Context, page, size int, status entity.ContactStatus) ([]*entity.GeneralContact, int64, error)
	Update(ctx context.Context, contact *entity.GeneralContact) error

	SoftDelete(ctx context.Context, id uint) (bool, error)
	Restore(ctx context.Context, id uint) (bool, error)
	PermanentDelete(ctx context.Context, id uint) (bool, error)
	BulkSoftDelete(ctx context.Context, ids []uint) (int64, error)
	BulkRestore(ctx context.Context, ids []uint) (int64, error)
}

// ApplicationDAO defines persistence operations for job and internship
// applications.
type ApplicationDAO interface {
	Create(ctx context.Context, app *entity.Application) error
	FindByID(ctx context.Context, id uint) (*entity.Application, error)
	FindAll(ctx context.Context, page, size int, kind entity.ApplicationKind) ([]*entity.Application, int64, error)
	Update(ctx context.Context, app *entity.Application) error

	SoftDelete(ctx context.Context, id uint) (bool, error)
	Restore(ctx context.Context, id uint) (bool, error)
	PermanentDelete(ctx context.Context, id uint) (bool, error)
	BulkSoftDelete(ctx context.Context, ids []uint) (int64, error)
	BulkRestore(ctx context.Context, ids []uint) (int64, error)
}
