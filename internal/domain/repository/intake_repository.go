package repository

import (
	"context"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
)

// ContactRepository defines the interface for contact request operations
type ContactRepository interface {
	// Create creates a new contact request
	Create(ctx context.Context, contact *entity.GeneralContact) error

	// GetByID retrieves a contact request by ID
	GetByID(ctx context.Context, id uint) (*entity.GeneralContact, error)

	// List retrieves contact requests with pagination, optionally filtered
	// by status
	List(ctx context.Context, page, size int, status entity.ContactStatus) ([]*entity.GeneralContact, int64, error)

	// Update updates an existing contact request
	Update(ctx context.Context, contact *entity.GeneralContact) error

	// SoftDelete marks a contact request deleted
	SoftDelete(ctx context.Context, id uint) (bool, error)

	// Restore clears the soft-delete marker
	Restore(ctx context.Context, id uint) (bool, error)

	// PermanentDelete physically removes an already soft-deleted request
	PermanentDelete(ctx context.Context, id uint) (bool, error)

	// BulkSoftDelete soft-deletes the listed requests, returning the count
	// actually transitioned
	BulkSoftDelete(ctx context.Context, ids []uint) (int64, error)

	// BulkRestore restores the listed requests, returning the count actually
	// transitioned
	BulkRestore(ctx context.Context, ids []uint) (int64, error)
}

// ApplicationRepository defines the interface for job and internship
// application operations
type ApplicationRepository interface {
	// Create creates a new application
	Create(ctx context.Context, app *entity.Application) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id uint) (*entity.Application, error)

	// List retrieves applications with pagination, optionally filtered by kind
	List(ctx context.Context, page, size int, kind entity.ApplicationKind) ([]*entity.Application, int64, error)

	// Update updates an existing application
	Update(ctx context.Context, app *entity.Application) error

	// SoftDelete marks an application deleted
	SoftDelete(ctx context.Context, id uint) (bool, error)

	// Restore clears the soft-delete marker
	Restore(ctx context.Context, id uint) (bool, error)

	// PermanentDelete physically removes an already soft-deleted application
	PermanentDelete(ctx context.Context, id uint) (bool, error)

	// BulkSoftDelete soft-deletes the listed applications
	BulkSoftDelete(ctx context.Context, ids []uint) (int64, error)

	// BulkRestore restores the listed applications
	BulkRestore(ctx context.Context, ids []uint) (int64, error)
}
