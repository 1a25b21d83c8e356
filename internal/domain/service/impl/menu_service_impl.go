package impl

import (
	"context"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/repository"
	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/dto/response"
)

// menuService implements service.MenuService
type menuService struct {
	menuRepo repository.MenuRepository
}

// NewMenuService creates a new MenuService instance
func NewMenuService(menuRepo repository.MenuRepository) service.MenuService {
	return &menuService{menuRepo: menuRepo}
}

func (s *menuService) Create(ctx context.Context, req *request.MenuItemRequest) (*response.MenuItemResponse, error) {
	item := &entity.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Available:   true,
		Tags:        req.Tags,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toMenuItemResponse(item), nil
}

func (s *menuService) GetByID(ctx context.Context, id uint) (*response.MenuItemResponse, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, service.ErrMenuItemNotFound
	}
	return toMenuItemResponse(item), nil
}

func (s *menuService) List(ctx context.Context, page, size int, category string) (*response.PagedResponse[response.MenuItemResponse], error) {
	page, size = normalizePage(page, size)

	menuItems, total, err := s.menuRepo.List(ctx, page, size, category)
	if err != nil {
		return nil, err
	}

	items := make([]response.MenuItemResponse, len(menuItems))
	for i, m := range menuItems {
		items[i] = *toMenuItemResponse(m)
	}

	result := response.NewPagedResponse(items, page, size, total)
	return &result, nil
}

func (s *menuService) Update(ctx context.Context, id uint, req *request.MenuItemRequest) (*response.MenuItemResponse, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, service.ErrMenuItemNotFound
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Category = req.Category
	item.Price = req.Price
	item.ImageURL = req.ImageURL
	item.Tags = req.Tags
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toMenuItemResponse(item), nil
}

func (s *menuService) Delete(ctx context.Context, id uint) error {
	ok, err := s.menuRepo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return service.ErrMenuItemNotFound
	}
	return nil
}

func (s *menuService) Restore(ctx context.Context, id uint) error {
	ok, err := s.menuRepo.Restore(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return service.ErrMenuItemNotFound
	}
	return nil
}

func (s *menuService) PermanentDelete(ctx context.Context, id uint) error {
	ok, err := s.menuRepo.PermanentDelete(ctx, id)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	live, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if live != nil {
		return service.ErrNotSoftDeleted
	}
	return service.ErrMenuItemNotFound
}
