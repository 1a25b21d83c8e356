package impl

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/testutil/mocks"
)

func setupActivityService(t *testing.T) (service.ActivityService, *mocks.MockUserRepository) {
	t.Helper()
	userRepo := mocks.NewMockUserRepository()
	return NewActivityService(userRepo, zap.NewNop()), userRepo
}

func seedActivityUser(repo *mocks.MockUserRepository, activities ...entity.Activity) *entity.User {
	user := &entity.User{
		FirstName:  "Act",
		Email:      "act@example.com",
		Status:     entity.AccountStatus{IsActive: true},
		Activities: activities,
	}
	repo.AddUser(user)
	return user
}

func TestActivityService_Record_FillsDefaults(t *testing.T) {
	activities, repo := setupActivityService(t)
	user := seedActivityUser(repo)

	activities.Record(context.Background(), user.ID, entity.Activity{Type: entity.ActivityLogin})

	if len(user.Activities) != 1 {
		t.Fatalf("activities = %d, want 1", len(user.Activities))
	}
	got := user.Activities[0]
	if got.ID == "" {
		t.Error("Record() did not assign an id")
	}
	if got.Status != entity.ActivityStatusSuccess {
		t.Errorf("Status = %v, want success default", got.Status)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Record() did not stamp CreatedAt")
	}
}

func TestActivityService_Record_SwallowsErrors(t *testing.T) {
	activities, repo := setupActivityService(t)
	user := seedActivityUser(repo)
	repo.AddActivityErr = mocks.ErrNotFound

	// Must not panic or surface anything.
	activities.Record(context.Background(), user.ID, entity.Activity{Type: entity.ActivityLogin})

	if len(user.Activities) != 0 {
		t.Errorf("activities = %d, want 0", len(user.Activities))
	}
}

func TestActivityService_Record_EvictsOldest(t *testing.T) {
	activities, repo := setupActivityService(t)
	user := seedActivityUser(repo)

	for i := 0; i < entity.MaxActivities+5; i++ {
		activities.Record(context.Background(), user.ID, entity.Activity{
			Type: entity.ActivityLogin, Description: "n",
		})
	}
	if len(user.Activities) != entity.MaxActivities {
		t.Errorf("activities = %d, want capped at %d", len(user.Activities), entity.MaxActivities)
	}
}

func TestActivityService_Query_FiltersAndPaginates(t *testing.T) {
	activities, repo := setupActivityService(t)
	now := time.Now()
	user := seedActivityUser(repo,
		entity.Activity{ID: "a1", Type: entity.ActivityLogin, Status: entity.ActivityStatusSuccess, CreatedAt: now.Add(-1 * time.Minute)},
		entity.Activity{ID: "a2", Type: entity.ActivityLogin, Status: entity.ActivityStatusFailed, CreatedAt: now.Add(-2 * time.Minute)},
		entity.Activity{ID: "a3", Type: entity.ActivityPasswordChange, Status: entity.ActivityStatusSuccess, CreatedAt: now.Add(-3 * time.Minute)},
	)

	page, err := activities.Query(context.Background(), user.ID, entity.ActivityLogin, "", 1, 10)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("login entries = %d, want 2", len(page.Items))
	}
	if page.Items[0].ID != "a1" {
		t.Errorf("first entry = %v, want newest a1", page.Items[0].ID)
	}

	page, err = activities.Query(context.Background(), user.ID, "", string(entity.ActivityStatusFailed), 1, 10)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "a2" {
		t.Errorf("failed entries = %+v, want only a2", page.Items)
	}
}

// An empty unfiltered first page seeds a fresh login entry rather than
// returning nothing.
func TestActivityService_Query_BootstrapsEmptyLog(t *testing.T) {
	activities, repo := setupActivityService(t)
	user := seedActivityUser(repo)

	page, err := activities.Query(context.Background(), user.ID, "", "", 1, 10)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("items = %d, want 1 bootstrap entry", len(page.Items))
	}
	if page.Items[0].Type != entity.ActivityLogin || page.Items[0].Description != "Account accessed" {
		t.Errorf("bootstrap entry = %+v", page.Items[0])
	}
	if len(user.Activities) != 1 {
		t.Error("bootstrap entry was not persisted")
	}

	// A filtered query must not bootstrap.
	user.Activities = nil
	page, err = activities.Query(context.Background(), user.ID, entity.ActivityLogout, "", 1, 10)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(page.Items) != 0 || len(user.Activities) != 0 {
		t.Error("filtered query must not seed entries")
	}
}

func TestActivityService_Summary(t *testing.T) {
	activities, repo := setupActivityService(t)
	now := time.Now()
	user := seedActivityUser(repo,
		entity.Activity{Type: entity.ActivityLogin, Status: entity.ActivityStatusSuccess, CreatedAt: now.Add(-time.Hour)},
		entity.Activity{Type: entity.ActivityLogin, Status: entity.ActivityStatusSuccess, CreatedAt: now.Add(-2 * time.Hour)},
		entity.Activity{Type: entity.ActivityPasswordChange, Status: entity.ActivityStatusWarning, CreatedAt: now.Add(-3 * time.Hour)},
		// Outside the window.
		entity.Activity{Type: entity.ActivityLogin, Status: entity.ActivityStatusSuccess, CreatedAt: now.AddDate(0, 0, -40)},
	)

	summary, err := activities.Summary(context.Background(), user.ID, 30)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.Total != 3 {
		t.Errorf("Total = %d, want 3", summary.Total)
	}
	if summary.Logins != 2 {
		t.Errorf("Logins = %d, want 2", summary.Logins)
	}
	if summary.PasswordChanges != 1 {
		t.Errorf("PasswordChanges = %d, want 1", summary.PasswordChanges)
	}
	if summary.Warnings != 1 {
		t.Errorf("Warnings = %d, want 1", summary.Warnings)
	}
	if len(summary.TopTypes) == 0 || summary.TopTypes[0].Type != entity.ActivityLogin {
		t.Errorf("TopTypes = %+v, want login first", summary.TopTypes)
	}
	if summary.LastActivity == nil {
		t.Error("LastActivity is nil")
	}
}

func TestActivityService_Summary_DefaultsWindow(t *testing.T) {
	activities, repo := setupActivityService(t)
	user := seedActivityUser(repo)

	summary, err := activities.Summary(context.Background(), user.ID, 0)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.Days != 30 {
		t.Errorf("Days = %d, want 30 default", summary.Days)
	}
}

func TestActivityService_CleanupOld(t *testing.T) {
	activities, repo := setupActivityService(t)
	now := time.Now()
	user := seedActivityUser(repo,
		entity.Activity{ID: "new", Type: entity.ActivityLogin, CreatedAt: now},
		entity.Activity{ID: "old", Type: entity.ActivityLogin, CreatedAt: now.AddDate(-2, 0, 0)},
	)

	removed, err := activities.CleanupOld(context.Background(), 365)
	if err != nil {
		t.Fatalf("CleanupOld() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if len(user.Activities) != 1 || user.Activities[0].ID != "new" {
		t.Errorf("activities = %+v, want only new", user.Activities)
	}
}

func TestActivityService_EnforceCaps(t *testing.T) {
	activities, repo := setupActivityService(t)
	user := seedActivityUser(repo)
	for i := 0; i < entity.MaxActivities+10; i++ {
		user.Activities = append(user.Activities, entity.Activity{Type: entity.ActivityLogin})
	}

	repaired, err := activities.EnforceCaps(context.Background())
	if err != nil {
		t.Fatalf("EnforceCaps() error = %v", err)
	}
	if repaired != 1 {
		t.Errorf("repaired = %d users, want 1", repaired)
	}
	if len(user.Activities) != entity.MaxActivities {
		t.Errorf("activities = %d, want %d", len(user.Activities), entity.MaxActivities)
	}
}
