package graphql

import (
	"context"
	"errors"
	"strconv"

	"github.com/graphql-go/graphql"

	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/response"
)

// ContextKey type for context keys
type ContextKey string

const (
	ContextKeyUserID ContextKey = "userID"
	ContextKeyToken  ContextKey = "token"
)

// Resolver handles GraphQL resolvers. The GraphQL surface is read
// only; every write goes through the REST API.
type Resolver struct {
	menuService service.MenuService
	userService service.UserService
}

// NewResolver creates a new resolver
func NewResolver(menuService service.MenuService, userService service.UserService) *Resolver {
	return &Resolver{
		menuService: menuService,
		userService: userService,
	}
}

// Menu returns a paginated slice of the menu catalog
func (r *Resolver) Menu(p graphql.ResolveParams) (interface{}, error) {
	page := 1
	size := 10

	if pageArg, ok := p.Args["page"].(int); ok && pageArg > 0 {
		page = pageArg
	}
	if sizeArg, ok := p.Args["size"].(int); ok && sizeArg > 0 && sizeArg <= 100 {
		size = sizeArg
	}
	category, _ := p.Args["category"].(string)

	result, err := r.menuService.List(p.Context, page, size, category)
	if err != nil {
		return nil, err
	}

	items := make([]map[string]interface{}, len(result.Items))
	for i := range result.Items {
		items[i] = toMenuItem(&result.Items[i])
	}

	return map[string]interface{}{
		"items":    items,
		"pageInfo": toPageInfo(&result.PageInfo),
	}, nil
}

// MenuItem returns one menu item by ID
func (r *Resolver) MenuItem(p graphql.ResolveParams) (interface{}, error) {
	raw, ok := p.Args["id"].(string)
	if !ok {
		return nil, errors.New("invalid menu item ID")
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, errors.New("invalid menu item ID format")
	}

	item, err := r.menuService.GetByID(p.Context, uint(id))
	if err != nil {
		return nil, err
	}

	return toMenuItem(item), nil
}

// Me returns the current authenticated user
func (r *Resolver) Me(p graphql.ResolveParams) (interface{}, error) {
	userID := getUserIDFromContext(p.Context)
	if userID == 0 {
		return nil, errors.New("not authenticated")
	}

	user, err := r.userService.GetByID(p.Context, userID)
	if err != nil {
		return nil, err
	}

	return toUser(user), nil
}

func getUserIDFromContext(ctx context.Context) uint {
	if userID, ok := ctx.Value(ContextKeyUserID).(uint); ok {
		return userID
	}
	return 0
}

func toMenuItem(item *response.MenuItemResponse) map[string]interface{} {
	if item == nil {
		return nil
	}
	return map[string]interface{}{
		"id":          item.ID,
		"name":        item.Name,
		"description": item.Description,
		"category":    item.Category,
		"price":       item.Price,
		"imageUrl":    item.ImageURL,
		"available":   item.Available,
		"tags":        item.Tags,
		"createdAt":   item.CreatedAt,
		"updatedAt":   item.UpdatedAt,
	}
}

func toPageInfo(info *response.PageInfo) map[string]interface{} {
	return map[string]interface{}{
		"page":       info.Page,
		"size":       info.Size,
		"totalItems": info.TotalItems,
		"totalPages": info.TotalPages,
		"hasNext":    info.HasNext,
		"hasPrev":    info.HasPrev,
	}
}

func toUser(user *response.UserResponse) map[string]interface{} {
	if user == nil {
		return nil
	}
	return map[string]interface{}{
		"id":            user.ID,
		"firstName":     user.FirstName,
		"lastName":      user.LastName,
		"email":         user.Email,
		"phone":         user.Phone,
		"role":          user.Role,
		"loyaltyPoints": user.LoyaltyPoints,
	}
}
