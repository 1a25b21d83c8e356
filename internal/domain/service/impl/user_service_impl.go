package impl

import (
	"context"
	"time"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/repository"
	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/dto/response"
	"github.com/savora/savora-cloud-go/internal/security"
)

// userService implements service.UserService
type userService struct {
	userRepo        repository.UserRepository
	passwordHasher  *security.PasswordHasher
	activityService service.ActivityService
	notifier        service.SecurityNotifier
}

// NewUserService creates a new UserService instance
func NewUserService(
	userRepo repository.UserRepository,
	passwordHasher *security.PasswordHasher,
	activityService service.ActivityService,
	notifier service.SecurityNotifier,
) service.UserService {
	return &userService{
		userRepo:        userRepo,
		passwordHasher:  passwordHasher,
		activityService: activityService,
		notifier:        notifier,
	}
}

func (s *userService) GetByID(ctx context.Context, id uint) (*response.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, page, size int) (*response.PagedResponse[response.UserResponse], error) {
	page, size = normalizePage(page, size)

	users, total, err := s.userRepo.List(ctx, page, size)
	if err != nil {
		return nil, err
	}

	items := make([]response.UserResponse, len(users))
	for i, user := range users {
		items[i] = *toUserResponse(user)
	}

	result := response.NewPagedResponse(items, page, size, total)
	return &result, nil
}

func (s *userService) Update(ctx context.Context, id uint, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.activityService.Record(ctx, id, entity.Activity{
		Type:        entity.ActivityProfileUpdate,
		Description: "Profile updated",
		Status:      entity.ActivityStatusSuccess,
	})

	return toUserResponse(user), nil
}

func (s *userService) ChangePassword(ctx context.Context, id uint, req *request.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return service.ErrUserNotFound
	}

	if !s.passwordHasher.Verify(req.OldPassword, user.Password) {
		s.activityService.Record(ctx, id, entity.Activity{
			Type:        entity.ActivityPasswordChange,
			Description: "Password change rejected: wrong current password",
			Status:      entity.ActivityStatusWarning,
		})
		return service.ErrInvalidCredentials
	}

	hashedPassword, err := s.passwordHasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashedPassword

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.activityService.Record(ctx, id, entity.Activity{
		Type:        entity.ActivityPasswordChange,
		Description: "Password changed",
		Status:      entity.ActivityStatusSuccess,
	})
	s.notifier.Publish(id, entity.ActivityPasswordChange, "Your password was changed")
	return nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	ok, err := s.userRepo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return service.ErrUserNotFound
	}
	return nil
}

func (s *userService) Restore(ctx context.Context, id uint) error {
	ok, err := s.userRepo.Restore(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return service.ErrUserNotFound
	}
	return nil
}

func (s *userService) PermanentDelete(ctx context.Context, id uint) error {
	ok, err := s.userRepo.PermanentDelete(ctx, id)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	// The delete matched nothing: either the user is still live, which is a
	// conflict, or they do not exist at all.
	live, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if live != nil {
		return service.ErrNotSoftDeleted
	}
	return service.ErrUserNotFound
}

func (s *userService) ListAddresses(ctx context.Context, id uint) ([]response.AddressResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}
	return toAddressResponses(user.ActiveAddresses()), nil
}

func (s *userService) AddAddress(ctx context.Context, id uint, req *request.AddressRequest) ([]response.AddressResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}

	addr := entity.Address{
		Label:      req.Label,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
		CreatedAt:  time.Now(),
	}

	// The first active address is always the default.
	if len(user.ActiveAddresses()) == 0 {
		addr.IsDefault = true
	}
	if addr.IsDefault {
		clearDefaults(user.Addresses)
	}

	user.Addresses = append(user.Addresses, addr)
	if err := s.saveAddresses(ctx, user); err != nil {
		return nil, err
	}
	return toAddressResponses(user.ActiveAddresses()), nil
}

func (s *userService) UpdateAddress(ctx context.Context, id uint, activeIdx int, req *request.AddressRequest) ([]response.AddressResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}

	pos := user.StorageIndexOfActive(activeIdx)
	if pos < 0 {
		return nil, service.ErrAddressNotFound
	}

	addr := &user.Addresses[pos]
	addr.Label = req.Label
	addr.Street = req.Street
	addr.City = req.City
	addr.State = req.State
	addr.PostalCode = req.PostalCode
	addr.Country = req.Country
	if req.IsDefault && !addr.IsDefault {
		clearDefaults(user.Addresses)
		addr.IsDefault = true
	}

	if err := s.saveAddresses(ctx, user); err != nil {
		return nil, err
	}
	return toAddressResponses(user.ActiveAddresses()), nil
}

func (s *userService) DeleteAddress(ctx context.Context, id uint, activeIdx int) ([]response.AddressResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}

	pos := user.StorageIndexOfActive(activeIdx)
	if pos < 0 {
		return nil, service.ErrAddressNotFound
	}

	now := time.Now()
	addr := &user.Addresses[pos]
	wasDefault := addr.IsDefault
	addr.IsDeleted = true
	addr.DeletedAt = &now
	addr.IsDefault = false

	// Deleting the default promotes the next active address.
	if wasDefault {
		for i := range user.Addresses {
			if !user.Addresses[i].IsDeleted {
				user.Addresses[i].IsDefault = true
				break
			}
		}
	}

	if err := s.saveAddresses(ctx, user); err != nil {
		return nil, err
	}
	return toAddressResponses(user.ActiveAddresses()), nil
}

func (s *userService) RestoreAddress(ctx context.Context, id uint, deletedIdx int) ([]response.AddressResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}

	pos := storageIndexOfDeleted(user.Addresses, deletedIdx)
	if pos < 0 {
		return nil, service.ErrAddressNotFound
	}

	user.Addresses[pos].IsDeleted = false
	user.Addresses[pos].DeletedAt = nil

	if err := s.saveAddresses(ctx, user); err != nil {
		return nil, err
	}
	return toAddressResponses(user.ActiveAddresses()), nil
}

func (s *userService) PurgeAddress(ctx context.Context, id uint, deletedIdx int) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return service.ErrUserNotFound
	}

	// Only soft-deleted addresses are addressable here, which preserves the
	// delete-before-purge rule for nested records.
	pos := storageIndexOfDeleted(user.Addresses, deletedIdx)
	if pos < 0 {
		return service.ErrAddressNotFound
	}

	user.Addresses = append(user.Addresses[:pos], user.Addresses[pos+1:]...)
	return s.saveAddresses(ctx, user)
}

func (s *userService) saveAddresses(ctx context.Context, user *entity.User) error {
	if err := s.userRepo.SetAddresses(ctx, user.ID, user.Addresses); err != nil {
		return err
	}
	s.activityService.Record(ctx, user.ID, entity.Activity{
		Type:        entity.ActivityAddressChange,
		Description: "Address book updated",
		Status:      entity.ActivityStatusSuccess,
	})
	return nil
}

func clearDefaults(addresses []entity.Address) {
	for i := range addresses {
		addresses[i].IsDefault = false
	}
}

// storageIndexOfDeleted maps an index among the soft-deleted addresses to
// the storage position, mirroring User.StorageIndexOfActive.
func storageIndexOfDeleted(addresses []entity.Address, deletedIdx int) int {
	if deletedIdx < 0 {
		return -1
	}
	seen := 0
	for i, a := range addresses {
		if !a.IsDeleted {
			continue
		}
		if seen == deletedIdx {
			return i
		}
		seen++
	}
	return -1
}
