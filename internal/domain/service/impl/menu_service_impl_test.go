package impl

import (
	"context"
	"errors"
	"testing"

	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/testutil/mocks"
)

func setupMenuService(t *testing.T) (service.MenuService, *mocks.MockMenuRepository) {
	t.Helper()
	repo := mocks.NewMockMenuRepository()
	return NewMenuService(repo), repo
}

func TestMenuService_Create_DefaultsAvailable(t *testing.T) {
	menu, _ := setupMenuService(t)

	resp, err := menu.Create(context.Background(), &request.MenuItemRequest{
		Name:     "Margherita",
		Category: "pizza",
		Price:    12.50,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !resp.Available {
		t.Error("new item should default to available")
	}

	off := false
	resp, err = menu.Create(context.Background(), &request.MenuItemRequest{
		Name:      "Seasonal Special",
		Category:  "pizza",
		Price:     15,
		Available: &off,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if resp.Available {
		t.Error("explicit availability was ignored")
	}
}

func TestMenuService_Update(t *testing.T) {
	menu, _ := setupMenuService(t)
	ctx := context.Background()

	created, err := menu.Create(ctx, &request.MenuItemRequest{
		Name: "Margherita", Category: "pizza", Price: 12.50,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	resp, err := menu.Update(ctx, created.ID, &request.MenuItemRequest{
		Name: "Margherita DOP", Category: "pizza", Price: 14, Tags: []string{"vegetarian"},
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if resp.Name != "Margherita DOP" || resp.Price != 14 {
		t.Errorf("resp = %+v", resp)
	}
	if len(resp.Tags) != 1 {
		t.Errorf("Tags = %v, want [vegetarian]", resp.Tags)
	}

	_, err = menu.Update(ctx, 999, &request.MenuItemRequest{Name: "x", Category: "x", Price: 1})
	if !errors.Is(err, service.ErrMenuItemNotFound) {
		t.Errorf("Update() unknown id error = %v, want ErrMenuItemNotFound", err)
	}
}

func TestMenuService_List_FiltersByCategory(t *testing.T) {
	menu, _ := setupMenuService(t)
	ctx := context.Background()

	items := []struct {
		name, category string
	}{
		{"Margherita", "pizza"},
		{"Diavola", "pizza"},
		{"Tiramisu", "dessert"},
	}
	for _, it := range items {
		if _, err := menu.Create(ctx, &request.MenuItemRequest{
			Name: it.name, Category: it.category, Price: 10,
		}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	page, err := menu.List(ctx, 1, 10, "pizza")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Items) != 2 {
		t.Errorf("pizza = %d, want 2", len(page.Items))
	}
	if page.PageInfo.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", page.PageInfo.TotalItems)
	}
}

func TestMenuService_Lifecycle(t *testing.T) {
	menu, _ := setupMenuService(t)
	ctx := context.Background()

	created, err := menu.Create(ctx, &request.MenuItemRequest{
		Name: "Margherita", Category: "pizza", Price: 12.50,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	id := created.ID

	if err := menu.PermanentDelete(ctx, id); !errors.Is(err, service.ErrNotSoftDeleted) {
		t.Fatalf("PermanentDelete() on live error = %v, want ErrNotSoftDeleted", err)
	}
	if err := menu.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := menu.GetByID(ctx, id); !errors.Is(err, service.ErrMenuItemNotFound) {
		t.Error("soft-deleted item still visible")
	}
	if err := menu.Restore(ctx, id); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if _, err := menu.GetByID(ctx, id); err != nil {
		t.Errorf("restored item not visible: %v", err)
	}
	if err := menu.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := menu.PermanentDelete(ctx, id); err != nil {
		t.Fatalf("PermanentDelete() error = %v", err)
	}
}
