package service

import (
	"context"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/dto/response"
)

// ContactService defines the interface for general contact requests
type ContactService interface {
	// Submit records a new contact request
	Submit(ctx context.Context, req *request.ContactRequest) (*response.ContactResponse, error)

	// GetByID retrieves a contact request
	GetByID(ctx context.Context, id uint) (*response.ContactResponse, error)

	// List retrieves contact requests, optionally filtered by status
	List(ctx context.Context, page, size int, status string) (*response.PagedResponse[response.ContactResponse], error)

	// UpdateStatus moves a request through its workflow. resolvedAt is
	// stamped exactly when the request transitions to resolved.
	UpdateStatus(ctx context.Context, id uint, req *request.UpdateContactStatusRequest) (*response.ContactResponse, error)

	// Delete soft-deletes a contact request
	Delete(ctx context.Context, id uint) error

	// Restore brings a soft-deleted request back
	Restore(ctx context.Context, id uint) error

	// PermanentDelete physically removes an already soft-deleted request
	PermanentDelete(ctx context.Context, id uint) error

	// BulkDelete soft-deletes the listed requests, returning the count
	// actually transitioned
	BulkDelete(ctx context.Context, ids []uint) (*response.BulkOperationResponse, error)

	// BulkRestore restores the listed requests
	BulkRestore(ctx context.Context, ids []uint) (*response.BulkOperationResponse, error)
}

// ApplicationService defines the interface for job and internship
// applications
type ApplicationService interface {
	// Submit records a new application
	Submit(ctx context.Context, req *request.ApplicationRequest) (*response.ApplicationResponse, error)

	// GetByID retrieves an application
	GetByID(ctx context.Context, id uint) (*response.ApplicationResponse, error)

	// List retrieves applications, optionally filtered by kind
	List(ctx context.Context, page, size int, kind entity.ApplicationKind) (*response.PagedResponse[response.ApplicationResponse], error)

	// Review flips the reviewed/shortlisted flags
	Review(ctx context.Context, id uint, req *request.ReviewApplicationRequest) (*response.ApplicationResponse, error)

	// Delete soft-deletes an application
	Delete(ctx context.Context, id uint) error

	// Restore brings a soft-deleted application back
	Restore(ctx context.Context, id uint) error

	// PermanentDelete physically removes an already soft-deleted application
	PermanentDelete(ctx context.Context, id uint) error

	// BulkDelete soft-deletes the listed applications
	BulkDelete(ctx context.Context, ids []uint) (*response.BulkOperationResponse, error)

	// BulkRestore restores the listed applications
	BulkRestore(ctx context.Context, ids []uint) (*response.BulkOperationResponse, error)
}
