package impl

import (
	"context"

	"github.com/savora/savora-cloud-go/internal/domain/dao"
	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/repository"
)

// contactRepository implements repository.ContactRepository by delegating to
// ContactDAO.
type contactRepository struct {
	dao dao.ContactDAO
}

// NewContactRepository creates a new ContactRepository instance.
func NewContactRepository(contactDAO dao.ContactDAO) repository.ContactRepository {
	return &contactRepository{dao: contactDAO}
}

// Create inserts a new contact request.
func (r *contactRepository) Create(ctx context.Context, contact *entity.GeneralContact) error {
	return r.dao.Create(ctx, contact)
}

// GetByID retrieves a contact request by ID.
func (r *contactRepository) GetByID(ctx context.Context, id uint) (*entity.GeneralContact, error) {
	return r.dao.FindByID(ctx, id)
}

// List retrieves contact requests with pagination.
func (r *contactRepository) List(ctx context.Context, page, size int, status entity.ContactStatus) ([]*entity.GeneralContact, int64, error) {
	return r.dao.FindAll(ctx, page, size, status)
}

// Update modifies an existing contact request.
func (r *contactRepository) Update(ctx context.Context, contact *entity.GeneralContact) error {
	return r.dao.Update(ctx, contact)
}

// SoftDelete marks a contact request deleted.
func (r *contactRepository) SoftDelete(ctx context.Context, id uint) (bool, error) {
	return r.dao.SoftDelete(ctx, id)
}

// Restore clears the soft-delete marker.
func (r *contactRepository) Restore(ctx context.Context, id uint) (bool, error) {
	return r.dao.Restore(ctx, id)
}

// PermanentDelete physically removes an already soft-deleted request.
func (r *contactRepository) PermanentDelete(ctx context.Context, id uint) (bool, error) {
	return r.dao.PermanentDelete(ctx, id)
}

// BulkSoftDelete soft-deletes the listed requests.
func (r *contactRepository) BulkSoftDelete(ctx context.Context, ids []uint) (int64, error) {
	return r.dao.BulkSoftDelete(ctx, ids)
}

// BulkRestore restores the listed requests.
func (r *contactRepository) BulkRestore(ctx context.Context, ids []uint) (int64, error) {
	return r.dao.BulkRestore(ctx, ids)
}

// applicationRepository implements repository.ApplicationRepository by
// delegating to ApplicationDAO.
type applicationRepository struct {
	dao dao.ApplicationDAO
}

// NewApplicationRepository creates a new ApplicationRepository instance.
func NewApplicationRepository(appDAO dao.ApplicationDAO) repository.ApplicationRepository {
	return &applicationRepository{dao: appDAO}
}

// Create inserts a new application.
func (r *applicationRepository) Create(ctx context.Context, app *entity.Application) error {
	return r.dao.Create(ctx, app)
}

// GetByID retrieves an application by ID.
func (r *applicationRepository) GetByID(ctx context.Context, id uint) (*entity.Application, error) {
	return r.dao.FindByID(ctx, id)
}

// List retrieves applications with pagination.
func (r *applicationRepository) List(ctx context.Context, page, size int, kind entity.ApplicationKind) ([]*entity.Application, int64, error) {
	return r.dao.FindAll(ctx, page, size, kind)
}

// Update modifies an existing application.
func (r *applicationRepository) Update(ctx context.Context, app *entity.Application) error {
	return r.dao.Update(ctx, app)
}

// SoftDelete marks an application deleted.
func (r *applicationRepository) SoftDelete(ctx context.Context, id uint) (bool, error) {
	return r.dao.SoftDelete(ctx, id)
}

// Restore clears the soft-delete marker.
func (r *applicationRepository) Restore(ctx context.Context, id uint) (bool, error) {
	return r.dao.Restore(ctx, id)
}

// PermanentDelete physically removes an already soft-deleted application.
func (r *applicationRepository) PermanentDelete(ctx context.Context, id uint) (bool, error) {
	return r.dao.PermanentDelete(ctx, id)
}

// BulkSoftDelete soft-deletes the listed applications.
func (r *applicationRepository) BulkSoftDelete(ctx context.Context, ids []uint) (int64, error) {
	return r.dao.BulkSoftDelete(ctx, ids)
}

// BulkRestore restores the listed applications.
func (r *applicationRepository) BulkRestore(ctx context.Context, ids []uint) (int64, error) {
	return r.dao.BulkRestore(ctx, ids)
}
