package impl

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/security"
	"github.com/savora/savora-cloud-go/internal/testutil/mocks"
)

type userFixture struct {
	users    service.UserService
	userRepo *mocks.MockUserRepository
	notifier *mocks.MockSecurityNotifier
	hasher   *security.PasswordHasher
}

func setupUserService(t *testing.T) *userFixture {
	t.Helper()

	userRepo := mocks.NewMockUserRepository()
	notifier := mocks.NewMockSecurityNotifier()
	hasher := security.NewPasswordHasher()
	activitySvc := NewActivityService(userRepo, zap.NewNop())

	return &userFixture{
		users:    NewUserService(userRepo, hasher, activitySvc, notifier),
		userRepo: userRepo,
		notifier: notifier,
		hasher:   hasher,
	}
}

func (f *userFixture) addUser(t *testing.T, email string) *entity.User {
	t.Helper()
	user := &entity.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "$2a$12$invalidhashplaceholder",
		Role:      entity.RoleUser,
		Status:    entity.AccountStatus{IsActive: true},
	}
	f.userRepo.AddUser(user)
	return user
}

func TestUserService_GetByID(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()
	user := f.addUser(t, "get@example.com")

	resp, err := f.users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if resp.Email != "get@example.com" {
		t.Errorf("GetByID() Email = %v, want get@example.com", resp.Email)
	}

	_, err = f.users.GetByID(ctx, 9999)
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Errorf("GetByID() error = %v, want ErrUserNotFound", err)
	}
}

func TestUserService_Update_Profile(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()
	user := f.addUser(t, "update@example.com")

	resp, err := f.users.Update(ctx, user.ID, &request.UpdateProfileRequest{
		FirstName: "Renamed",
		Phone:     "+15550100",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if resp.FirstName != "Renamed" {
		t.Errorf("Update() FirstName = %v, want Renamed", resp.FirstName)
	}
	if resp.LastName != "User" {
		t.Errorf("Update() LastName = %v, want unchanged", resp.LastName)
	}
	if len(user.Activities) == 0 || user.Activities[0].Type != entity.ActivityProfileUpdate {
		t.Error("Update() did not record a profile_update activity")
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()
	user := f.addUser(t, "pw@example.com")
	hash, _ := f.hasher.Hash("oldpassword1")
	user.Password = hash

	err := f.users.ChangePassword(ctx, user.ID, &request.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newpassword1",
	})
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("ChangePassword() error = %v, want ErrInvalidCredentials", err)
	}
	if len(user.Activities) == 0 || user.Activities[0].Status != entity.ActivityStatusWarning {
		t.Error("rejected change was not recorded as a warning")
	}

	err = f.users.ChangePassword(ctx, user.ID, &request.ChangePasswordRequest{
		OldPassword: "oldpassword1",
		NewPassword: "newpassword1",
	})
	if err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if !f.hasher.Verify("newpassword1", user.Password) {
		t.Error("password was not updated")
	}
	if len(f.notifier.Published()) != 1 {
		t.Errorf("ChangePassword() published %d events, want 1", len(f.notifier.Published()))
	}
}

func TestUserService_Lifecycle(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()
	user := f.addUser(t, "life@example.com")

	// Permanent delete requires a prior soft delete.
	err := f.users.PermanentDelete(ctx, user.ID)
	if !errors.Is(err, service.ErrNotSoftDeleted) {
		t.Fatalf("PermanentDelete() on live user error = %v, want ErrNotSoftDeleted", err)
	}

	if err := f.users.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := f.users.GetByID(ctx, user.ID); !errors.Is(err, service.ErrUserNotFound) {
		t.Error("soft-deleted user is still visible")
	}

	// Deleting twice is a no-op failure.
	if err := f.users.Delete(ctx, user.ID); !errors.Is(err, service.ErrUserNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrUserNotFound", err)
	}

	if err := f.users.Restore(ctx, user.ID); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if _, err := f.users.GetByID(ctx, user.ID); err != nil {
		t.Errorf("restored user not visible: %v", err)
	}

	if err := f.users.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := f.users.PermanentDelete(ctx, user.ID); err != nil {
		t.Fatalf("PermanentDelete() error = %v", err)
	}
	if err := f.users.Restore(ctx, user.ID); !errors.Is(err, service.ErrUserNotFound) {
		t.Errorf("Restore() after purge error = %v, want ErrUserNotFound", err)
	}
}

func TestUserService_AddAddress_FirstBecomesDefault(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()
	user := f.addUser(t, "addr@example.com")

	addrs, err := f.users.AddAddress(ctx, user.ID, &request.AddressRequest{
		Street: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US",
	})
	if err != nil {
		t.Fatalf("AddAddress() error = %v", err)
	}
	if len(addrs) != 1 || !addrs[0].IsDefault {
		t.Errorf("first address = %+v, want default", addrs)
	}

	addrs, err = f.users.AddAddress(ctx, user.ID, &request.AddressRequest{
		Street: "2 Oak Ave", City: "Springfield", PostalCode: "12345", Country: "US",
		IsDefault: true,
	})
	if err != nil {
		t.Fatalf("AddAddress() error = %v", err)
	}
	if addrs[0].IsDefault || !addrs[1].IsDefault {
		t.Errorf("default flag not moved: %+v", addrs)
	}
}

func TestUserService_AddressIndexing_SkipsDeleted(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()
	user := f.addUser(t, "idx@example.com")

	for _, street := range []string{"1 First", "2 Second", "3 Third"} {
		if _, err := f.users.AddAddress(ctx, user.ID, &request.AddressRequest{
			Street: street, City: "Town", PostalCode: "00000", Country: "US",
		}); err != nil {
			t.Fatalf("AddAddress() error = %v", err)
		}
	}

	// Delete the middle one. Active index 1 now points at "3 Third".
	if _, err := f.users.DeleteAddress(ctx, user.ID, 1); err != nil {
		t.Fatalf("DeleteAddress() error = %v", err)
	}

	addrs, err := f.users.UpdateAddress(ctx, user.ID, 1, &request.AddressRequest{
		Street: "3 Third Updated", City: "Town", PostalCode: "00000", Country: "US",
	})
	if err != nil {
		t.Fatalf("UpdateAddress() error = %v", err)
	}
	if addrs[1].Street != "3 Third Updated" {
		t.Errorf("active index 1 street = %v, want 3 Third Updated", addrs[1].Street)
	}
	// Storage still holds the deleted entry untouched.
	if user.Addresses[1].Street != "2 Second" || !user.Addresses[1].IsDeleted {
		t.Errorf("storage slot 1 = %+v, want deleted 2 Second", user.Addresses[1])
	}

	if _, err := f.users.UpdateAddress(ctx, user.ID, 2, &request.AddressRequest{
		Street: "x", City: "x", PostalCode: "x", Country: "x",
	}); !errors.Is(err, service.ErrAddressNotFound) {
		t.Errorf("UpdateAddress() out of range error = %v, want ErrAddressNotFound", err)
	}
}

func TestUserService_DeleteAddress_PromotesNextDefault(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()
	user := f.addUser(t, "promote@example.com")

	for _, street := range []string{"1 First", "2 Second"} {
		if _, err := f.users.AddAddress(ctx, user.ID, &request.AddressRequest{
			Street: street, City: "Town", PostalCode: "00000", Country: "US",
		}); err != nil {
			t.Fatalf("AddAddress() error = %v", err)
		}
	}

	addrs, err := f.users.DeleteAddress(ctx, user.ID, 0)
	if err != nil {
		t.Fatalf("DeleteAddress() error = %v", err)
	}
	if len(addrs) != 1 || !addrs[0].IsDefault {
		t.Errorf("remaining address = %+v, want promoted default", addrs)
	}
}

func TestUserService_RestoreAndPurgeAddress(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()
	user := f.addUser(t, "restore@example.com")

	if _, err := f.users.AddAddress(ctx, user.ID, &request.AddressRequest{
		Street: "1 Main St", City: "Town", PostalCode: "00000", Country: "US",
	}); err != nil {
		t.Fatalf("AddAddress() error = %v", err)
	}
	if _, err := f.users.DeleteAddress(ctx, user.ID, 0); err != nil {
		t.Fatalf("DeleteAddress() error = %v", err)
	}

	addrs, err := f.users.RestoreAddress(ctx, user.ID, 0)
	if err != nil {
		t.Fatalf("RestoreAddress() error = %v", err)
	}
	if len(addrs) != 1 {
		t.Fatalf("active addresses = %d after restore, want 1", len(addrs))
	}

	// Purge only applies to soft-deleted entries.
	if err := f.users.PurgeAddress(ctx, user.ID, 0); !errors.Is(err, service.ErrAddressNotFound) {
		t.Fatalf("PurgeAddress() on active address error = %v, want ErrAddressNotFound", err)
	}

	if _, err := f.users.DeleteAddress(ctx, user.ID, 0); err != nil {
		t.Fatalf("DeleteAddress() error = %v", err)
	}
	if err := f.users.PurgeAddress(ctx, user.ID, 0); err != nil {
		t.Fatalf("PurgeAddress() error = %v", err)
	}
	if len(user.Addresses) != 0 {
		t.Errorf("storage = %d entries after purge, want 0", len(user.Addresses))
	}
}

func TestUserService_List_Pagination(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		f.addUser(t, "user"+string(rune('a'+i))+"@example.com")
	}

	page, err := f.users.List(ctx, 2, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.PageInfo.TotalItems != 15 {
		t.Errorf("TotalItems = %d, want 15", page.PageInfo.TotalItems)
	}
	if len(page.Items) != 5 {
		t.Errorf("page 2 size = %d, want 5", len(page.Items))
	}
}
