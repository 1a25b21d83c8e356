package service

import (
	"context"

	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/dto/response"
)

// UserService defines the interface for user profile and lifecycle operations
type UserService interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uint) (*response.UserResponse, error)

	// List retrieves users with pagination
	List(ctx context.Context, page, size int) (*response.PagedResponse[response.UserResponse], error)

	// Update updates a user's profile
	Update(ctx context.Context, id uint, req *request.UpdateProfileRequest) (*response.UserResponse, error)

	// ChangePassword changes a user's password after verifying the old one
	ChangePassword(ctx context.Context, id uint, req *request.ChangePasswordRequest) error

	// Delete soft-deletes a user
	Delete(ctx context.Context, id uint) error

	// Restore brings a soft-deleted user back
	Restore(ctx context.Context, id uint) error

	// PermanentDelete physically removes a user, but only when already
	// soft-deleted
	PermanentDelete(ctx context.Context, id uint) error

	// ListAddresses returns the active addresses, indexed as callers see them
	ListAddresses(ctx context.Context, id uint) ([]response.AddressResponse, error)

	// AddAddress appends a delivery address
	AddAddress(ctx context.Context, id uint, req *request.AddressRequest) ([]response.AddressResponse, error)

	// UpdateAddress updates the address at the given active index
	UpdateAddress(ctx context.Context, id uint, activeIdx int, req *request.AddressRequest) ([]response.AddressResponse, error)

	// DeleteAddress soft-deletes the address at the given active index
	DeleteAddress(ctx context.Context, id uint, activeIdx int) ([]response.AddressResponse, error)

	// RestoreAddress restores the address at the given index among the
	// soft-deleted addresses
	RestoreAddress(ctx context.Context, id uint, deletedIdx int) ([]response.AddressResponse, error)

	// PurgeAddress permanently removes the address at the given index among
	// the soft-deleted addresses
	PurgeAddress(ctx context.Context, id uint, deletedIdx int) error
}
