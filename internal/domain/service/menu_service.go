package service

import (
	"context"

	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/dto/response"
)

// MenuService defines the interface for the menu catalog
type MenuService interface {
	// Create adds a menu item
	Create(ctx context.Context, req *request.MenuItemRequest) (*response.MenuItemResponse, error)

	// GetByID retrieves a menu item
	GetByID(ctx context.Context, id uint) (*response.MenuItemResponse, error)

	// List retrieves menu items, optionally filtered by category
	List(ctx context.Context, page, size int, category string) (*response.PagedResponse[response.MenuItemResponse], error)

	// Update updates a menu item
	Update(ctx context.Context, id uint, req *request.MenuItemRequest) (*response.MenuItemResponse, error)

	// Delete soft-deletes a menu item
	Delete(ctx context.Context, id uint) error

	// Restore brings a soft-deleted menu item back
	Restore(ctx context.Context, id uint) error

	// PermanentDelete physically removes an already soft-deleted menu item
	PermanentDelete(ctx context.Context, id uint) error
}
