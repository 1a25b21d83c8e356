package mocks

import (
	"context"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/dto/response"
)

// MockAuthService is a mock implementation of service.AuthService.
// Every method succeeds with a zero-value response unless its Func
// field is set.
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	LoginFunc          func(ctx context.Context, req *request.LoginRequest, ip, userAgent string) (*response.AuthResponse, error)
	RefreshTokenFunc   func(ctx context.Context, req *request.RefreshTokenRequest) (*response.TokenResponse, error)
	LogoutFunc         func(ctx context.Context, userID uint, sessionID string) error
	ForgotPasswordFunc func(ctx context.Context, req *request.ForgotPasswordRequest) error
	ResetPasswordFunc  func(ctx context.Context, req *request.ResetPasswordRequest) error
}

var _ service.AuthService = (*MockAuthService)(nil)

// NewMockAuthService creates a new MockAuthService
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return &response.AuthResponse{}, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *request.LoginRequest, ip, userAgent string) (*response.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req, ip, userAgent)
	}
	return &response.AuthResponse{}, nil
}

func (m *MockAuthService) RefreshToken(ctx context.Context, req *request.RefreshTokenRequest) (*response.TokenResponse, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, req)
	}
	return &response.TokenResponse{}, nil
}

func (m *MockAuthService) Logout(ctx context.Context, userID uint, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, userID, sessionID)
	}
	return nil
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, req)
	}
	return nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, req)
	}
	return nil
}

// MockUserService is a mock implementation of service.UserService
type MockUserService struct {
	GetByIDFunc        func(ctx context.Context, id uint) (*response.UserResponse, error)
	ListFunc           func(ctx context.Context, page, size int) (*response.PagedResponse[response.UserResponse], error)
	UpdateFunc         func(ctx context.Context, id uint, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	ChangePasswordFunc func(ctx context.Context, id uint, req *request.ChangePasswordRequest) error
	DeleteFunc         func(ctx context.Context, id uint) error
	RestoreFunc        func(ctx context.Context, id uint) error
	PermanentDelFunc   func(ctx context.Context, id uint) error
	ListAddressesFunc  func(ctx context.Context, id uint) ([]response.AddressResponse, error)
	AddAddressFunc     func(ctx context.Context, id uint, req *request.AddressRequest) ([]response.AddressResponse, error)
	UpdateAddressFunc  func(ctx context.Context, id uint, activeIdx int, req *request.AddressRequest) ([]response.AddressResponse, error)
	DeleteAddressFunc  func(ctx context.Context, id uint, activeIdx int) ([]response.AddressResponse, error)
	RestoreAddressFunc func(ctx context.Context, id uint, deletedIdx int) ([]response.AddressResponse, error)
	PurgeAddressFunc   func(ctx context.Context, id uint, deletedIdx int) error
}

var _ service.UserService = (*MockUserService)(nil)

// NewMockUserService creates a new MockUserService
func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

func (m *MockUserService) GetByID(ctx context.Context, id uint) (*response.UserResponse, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &response.UserResponse{ID: id}, nil
}

func (m *MockUserService) List(ctx context.Context, page, size int) (*response.PagedResponse[response.UserResponse], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, size)
	}
	paged := response.NewPagedResponse([]response.UserResponse{}, page, size, 0)
	return &paged, nil
}

func (m *MockUserService) Update(ctx context.Context, id uint, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req)
	}
	return &response.UserResponse{ID: id}, nil
}

func (m *MockUserService) ChangePassword(ctx context.Context, id uint, req *request.ChangePasswordRequest) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, id, req)
	}
	return nil
}

func (m *MockUserService) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserService) Restore(ctx context.Context, id uint) error {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, id)
	}
	return nil
}

func (m *MockUserService) PermanentDelete(ctx context.Context, id uint) error {
	if m.PermanentDelFunc != nil {
		return m.PermanentDelFunc(ctx, id)
	}
	return nil
}

func (m *MockUserService) ListAddresses(ctx context.Context, id uint) ([]response.AddressResponse, error) {
	if m.ListAddressesFunc != nil {
		return m.ListAddressesFunc(ctx, id)
	}
	return []response.AddressResponse{}, nil
}

func (m *MockUserService) AddAddress(ctx context.Context, id uint, req *request.AddressRequest) ([]response.AddressResponse, error) {
	if m.AddAddressFunc != nil {
		return m.AddAddressFunc(ctx, id, req)
	}
	return []response.AddressResponse{}, nil
}

func (m *MockUserService) UpdateAddress(ctx context.Context, id uint, activeIdx int, req *request.AddressRequest) ([]response.AddressResponse, error) {
	if m.UpdateAddressFunc != nil {
		return m.UpdateAddressFunc(ctx, id, activeIdx, req)
	}
	return []response.AddressResponse{}, nil
}

func (m *MockUserService) DeleteAddress(ctx context.Context, id uint, activeIdx int) ([]response.AddressResponse, error) {
	if m.DeleteAddressFunc != nil {
		return m.DeleteAddressFunc(ctx, id, activeIdx)
	}
	return []response.AddressResponse{}, nil
}

func (m *MockUserService) RestoreAddress(ctx context.Context, id uint, deletedIdx int) ([]response.AddressResponse, error) {
	if m.RestoreAddressFunc != nil {
		return m.RestoreAddressFunc(ctx, id, deletedIdx)
	}
	return []response.AddressResponse{}, nil
}

func (m *MockUserService) PurgeAddress(ctx context.Context, id uint, deletedIdx int) error {
	if m.PurgeAddressFunc != nil {
		return m.PurgeAddressFunc(ctx, id, deletedIdx)
	}
	return nil
}

// MockSessionService is a mock implementation of service.SessionService
type MockSessionService struct {
	ListFunc            func(ctx context.Context, userID uint) ([]response.SessionResponse, error)
	TerminateFunc       func(ctx context.Context, userID uint, sessionID string) error
	TerminateOthersFunc func(ctx context.Context, userID uint, currentToken string) (*response.SessionTerminationResponse, error)
	SweepExpiredFunc    func(ctx context.Context) (int64, error)
}

var _ service.SessionService = (*MockSessionService)(nil)

// NewMockSessionService creates a new MockSessionService
func NewMockSessionService() *MockSessionService {
	return &MockSessionService{}
}

func (m *MockSessionService) List(ctx context.Context, userID uint) ([]response.SessionResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return []response.SessionResponse{}, nil
}

func (m *MockSessionService) Terminate(ctx context.Context, userID uint, sessionID string) error {
	if m.TerminateFunc != nil {
		return m.TerminateFunc(ctx, userID, sessionID)
	}
	return nil
}

func (m *MockSessionService) TerminateOthers(ctx context.Context, userID uint, currentToken string) (*response.SessionTerminationResponse, error) {
	if m.TerminateOthersFunc != nil {
		return m.TerminateOthersFunc(ctx, userID, currentToken)
	}
	return &response.SessionTerminationResponse{}, nil
}

func (m *MockSessionService) SweepExpired(ctx context.Context) (int64, error) {
	if m.SweepExpiredFunc != nil {
		return m.SweepExpiredFunc(ctx)
	}
	return 0, nil
}

// MockActivityService is a mock implementation of service.ActivityService
type MockActivityService struct {
	RecordFunc      func(ctx context.Context, userID uint, activity entity.Activity)
	QueryFunc       func(ctx context.Context, userID uint, typeFilter, statusFilter string, page, size int) (*response.PagedResponse[response.ActivityResponse], error)
	SummaryFunc     func(ctx context.Context, userID uint, days int) (*response.ActivitySummaryResponse, error)
	CleanupOldFunc  func(ctx context.Context, retentionDays int) (int64, error)
	EnforceCapsFunc func(ctx context.Context) (int, error)
}

var _ service.ActivityService = (*MockActivityService)(nil)

// NewMockActivityService creates a new MockActivityService
func NewMockActivityService() *MockActivityService {
	return &MockActivityService{}
}

func (m *MockActivityService) Record(ctx context.Context, userID uint, activity entity.Activity) {
	if m.RecordFunc != nil {
		m.RecordFunc(ctx, userID, activity)
	}
}

func (m *MockActivityService) Query(ctx context.Context, userID uint, typeFilter, statusFilter string, page, size int) (*response.PagedResponse[response.ActivityResponse], error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, userID, typeFilter, statusFilter, page, size)
	}
	paged := response.NewPagedResponse([]response.ActivityResponse{}, page, size, 0)
	return &paged, nil
}

func (m *MockActivityService) Summary(ctx context.Context, userID uint, days int) (*response.ActivitySummaryResponse, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, userID, days)
	}
	return &response.ActivitySummaryResponse{}, nil
}

func (m *MockActivityService) CleanupOld(ctx context.Context, retentionDays int) (int64, error) {
	if m.CleanupOldFunc != nil {
		return m.CleanupOldFunc(ctx, retentionDays)
	}
	return 0, nil
}

func (m *MockActivityService) EnforceCaps(ctx context.Context) (int, error) {
	if m.EnforceCapsFunc != nil {
		return m.EnforceCapsFunc(ctx)
	}
	return 0, nil
}

// MockReferralService is a mock implementation of service.ReferralService
type MockReferralService struct {
	OverviewFunc            func(ctx context.Context, userID uint) (*response.ReferralOverviewResponse, error)
	ValidateCodeFunc        func(ctx context.Context, code string) (*response.ValidateCodeResponse, error)
	InitLedgerFunc          func(ctx context.Context, user *entity.User) error
	AssignEncryptedIDFunc   func(ctx context.Context, user *entity.User) error
	ProcessSignupFunc       func(ctx context.Context, newUser *entity.User, code string) error
	CompleteFirstOrderFunc  func(ctx context.Context, userID uint) error
	ClaimRewardFunc         func(ctx context.Context, userID uint, req *request.ClaimRewardRequest) (*response.ClaimRewardResponse, error)
	UpdateSettingsFunc      func(ctx context.Context, userID uint, req *request.ReferralSettingsRequest) (*response.ReferralSettingsResponse, error)
	ExpireRewardNoticesFunc func(ctx context.Context) error
}

var _ service.ReferralService = (*MockReferralService)(nil)

// NewMockReferralService creates a new MockReferralService
func NewMockReferralService() *MockReferralService {
	return &MockReferralService{}
}

func (m *MockReferralService) Overview(ctx context.Context, userID uint) (*response.ReferralOverviewResponse, error) {
	if m.OverviewFunc != nil {
		return m.OverviewFunc(ctx, userID)
	}
	return &response.ReferralOverviewResponse{}, nil
}

func (m *MockReferralService) ValidateCode(ctx context.Context, code string) (*response.ValidateCodeResponse, error) {
	if m.ValidateCodeFunc != nil {
		return m.ValidateCodeFunc(ctx, code)
	}
	return &response.ValidateCodeResponse{Valid: true}, nil
}

func (m *MockReferralService) InitLedger(ctx context.Context, user *entity.User) error {
	if m.InitLedgerFunc != nil {
		return m.InitLedgerFunc(ctx, user)
	}
	return nil
}

func (m *MockReferralService) AssignEncryptedID(ctx context.Context, user *entity.User) error {
	if m.AssignEncryptedIDFunc != nil {
		return m.AssignEncryptedIDFunc(ctx, user)
	}
	return nil
}

func (m *MockReferralService) ProcessSignup(ctx context.Context, newUser *entity.User, code string) error {
	if m.ProcessSignupFunc != nil {
		return m.ProcessSignupFunc(ctx, newUser, code)
	}
	return nil
}

func (m *MockReferralService) CompleteFirstOrder(ctx context.Context, userID uint) error {
	if m.CompleteFirstOrderFunc != nil {
		return m.CompleteFirstOrderFunc(ctx, userID)
	}
	return nil
}

func (m *MockReferralService) ClaimReward(ctx context.Context, userID uint, req *request.ClaimRewardRequest) (*response.ClaimRewardResponse, error) {
	if m.ClaimRewardFunc != nil {
		return m.ClaimRewardFunc(ctx, userID, req)
	}
	return &response.ClaimRewardResponse{}, nil
}

func (m *MockReferralService) UpdateSettings(ctx context.Context, userID uint, req *request.ReferralSettingsRequest) (*response.ReferralSettingsResponse, error) {
	if m.UpdateSettingsFunc != nil {
		return m.UpdateSettingsFunc(ctx, userID, req)
	}
	return &response.ReferralSettingsResponse{}, nil
}

func (m *MockReferralService) ExpireRewardNotices(ctx context.Context) error {
	if m.ExpireRewardNoticesFunc != nil {
		return m.ExpireRewardNoticesFunc(ctx)
	}
	return nil
}

// MockContactService is a mock implementation of service.ContactService
type MockContactService struct {
	SubmitFunc       func(ctx context.Context, req *request.ContactRequest) (*response.ContactResponse, error)
	GetByIDFunc      func(ctx context.Context, id uint) (*response.ContactResponse, error)
	ListFunc         func(ctx context.Context, page, size int, status string) (*response.PagedResponse[response.ContactResponse], error)
	UpdateStatusFunc func(ctx context.Context, id uint, req *request.UpdateContactStatusRequest) (*response.ContactResponse, error)
	DeleteFunc       func(ctx context.Context, id uint) error
	RestoreFunc      func(ctx context.Context, id uint) error
	PermanentDelFunc func(ctx context.Context, id uint) error
	BulkDeleteFunc   func(ctx context.Context, ids []uint) (*response.BulkOperationResponse, error)
	BulkRestoreFunc  func(ctx context.Context, ids []uint) (*response.BulkOperationResponse, error)
}

var _ service.ContactService = (*MockContactService)(nil)

// NewMockContactService creates a new MockContactService
func NewMockContactService() *MockContactService {
	return &MockContactService{}
}

func (m *MockContactService) Submit(ctx context.Context, req *request.ContactRequest) (*response.ContactResponse, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return &response.ContactResponse{}, nil
}

func (m *MockContactService) GetByID(ctx context.Context, id uint) (*response.ContactResponse, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &response.ContactResponse{ID: id}, nil
}

func (m *MockContactService) List(ctx context.Context, page, size int, status string) (*response.PagedResponse[response.ContactResponse], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, size, status)
	}
	paged := response.NewPagedResponse([]response.ContactResponse{}, page, size, 0)
	return &paged, nil
}

func (m *MockContactService) UpdateStatus(ctx context.Context, id uint, req *request.UpdateContactStatusRequest) (*response.ContactResponse, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, req)
	}
	return &response.ContactResponse{ID: id}, nil
}

func (m *MockContactService) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockContactService) Restore(ctx context.Context, id uint) error {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, id)
	}
	return nil
}

func (m *MockContactService) PermanentDelete(ctx context.Context, id uint) error {
	if m.PermanentDelFunc != nil {
		return m.PermanentDelFunc(ctx, id)
	}
	return nil
}

func (m *MockContactService) BulkDelete(ctx context.Context, ids []uint) (*response.BulkOperationResponse, error) {
	if m.BulkDeleteFunc != nil {
		return m.BulkDeleteFunc(ctx, ids)
	}
	return &response.BulkOperationResponse{Requested: len(ids), Affected: int64(len(ids))}, nil
}

func (m *MockContactService) BulkRestore(ctx context.Context, ids []uint) (*response.BulkOperationResponse, error) {
	if m.BulkRestoreFunc != nil {
		return m.BulkRestoreFunc(ctx, ids)
	}
	return &response.BulkOperationResponse{Requested: len(ids), Affected: int64(len(ids))}, nil
}

// MockApplicationService is a mock implementation of service.ApplicationService
type MockApplicationService struct {
	SubmitFunc       func(ctx context.Context, req *request.ApplicationRequest) (*response.ApplicationResponse, error)
	GetByIDFunc      func(ctx context.Context, id uint) (*response.ApplicationResponse, error)
	ListFunc         func(ctx context.Context, page, size int, kind entity.ApplicationKind) (*response.PagedResponse[response.ApplicationResponse], error)
	ReviewFunc       func(ctx context.Context, id uint, req *request.ReviewApplicationRequest) (*response.ApplicationResponse, error)
	DeleteFunc       func(ctx context.Context, id uint) error
	RestoreFunc      func(ctx context.Context, id uint) error
	PermanentDelFunc func(ctx context.Context, id uint) error
	BulkDeleteFunc   func(ctx context.Context, ids []uint) (*response.BulkOperationResponse, error)
	BulkRestoreFunc  func(ctx context.Context, ids []uint) (*response.BulkOperationResponse, error)
}

var _ service.ApplicationService = (*MockApplicationService)(nil)

// NewMockApplicationService creates a new MockApplicationService
func NewMockApplicationService() *MockApplicationService {
	return &MockApplicationService{}
}

func (m *MockApplicationService) Submit(ctx context.Context, req *request.ApplicationRequest) (*response.ApplicationResponse, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return &response.ApplicationResponse{}, nil
}

func (m *MockApplicationService) GetByID(ctx context.Context, id uint) (*response.ApplicationResponse, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &response.ApplicationResponse{ID: id}, nil
}

func (m *MockApplicationService) List(ctx context.Context, page, size int, kind entity.ApplicationKind) (*response.PagedResponse[response.ApplicationResponse], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, size, kind)
	}
	paged := response.NewPagedResponse([]response.ApplicationResponse{}, page, size, 0)
	return &paged, nil
}

func (m *MockApplicationService) Review(ctx context.Context, id uint, req *request.ReviewApplicationRequest) (*response.ApplicationResponse, error) {
	if m.ReviewFunc != nil {
		return m.ReviewFunc(ctx, id, req)
	}
	return &response.ApplicationResponse{ID: id}, nil
}

func (m *MockApplicationService) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockApplicationService) Restore(ctx context.Context, id uint) error {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, id)
	}
	return nil
}

func (m *MockApplicationService) PermanentDelete(ctx context.Context, id uint) error {
	if m.PermanentDelFunc != nil {
		return m.PermanentDelFunc(ctx, id)
	}
	return nil
}

func (m *MockApplicationService) BulkDelete(ctx context.Context, ids []uint) (*response.BulkOperationResponse, error) {
	if m.BulkDeleteFunc != nil {
		return m.BulkDeleteFunc(ctx, ids)
	}
	return &response.BulkOperationResponse{Requested: len(ids), Affected: int64(len(ids))}, nil
}

func (m *MockApplicationService) BulkRestore(ctx context.Context, ids []uint) (*response.BulkOperationResponse, error) {
	if m.BulkRestoreFunc != nil {
		return m.BulkRestoreFunc(ctx, ids)
	}
	return &response.BulkOperationResponse{Requested: len(ids), Affected: int64(len(ids))}, nil
}

// MockMenuService is a mock implementation of service.MenuService
type MockMenuService struct {
	CreateFunc       func(ctx context.Context, req *request.MenuItemRequest) (*response.MenuItemResponse, error)
	GetByIDFunc      func(ctx context.Context, id uint) (*response.MenuItemResponse, error)
	ListFunc         func(ctx context.Context, page, size int, category string) (*response.PagedResponse[response.MenuItemResponse], error)
	UpdateFunc       func(ctx context.Context, id uint, req *request.MenuItemRequest) (*response.MenuItemResponse, error)
	DeleteFunc       func(ctx context.Context, id uint) error
	RestoreFunc      func(ctx context.Context, id uint) error
	PermanentDelFunc func(ctx context.Context, id uint) error
}

var _ service.MenuService = (*MockMenuService)(nil)

// NewMockMenuService creates a new MockMenuService
func NewMockMenuService() *MockMenuService {
	return &MockMenuService{}
}

func (m *MockMenuService) Create(ctx context.Context, req *request.MenuItemRequest) (*response.MenuItemResponse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &response.MenuItemResponse{}, nil
}

func (m *MockMenuService) GetByID(ctx context.Context, id uint) (*response.MenuItemResponse, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &response.MenuItemResponse{ID: id}, nil
}

func (m *MockMenuService) List(ctx context.Context, page, size int, category string) (*response.PagedResponse[response.MenuItemResponse], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, size, category)
	}
	paged := response.NewPagedResponse([]response.MenuItemResponse{}, page, size, 0)
	return &paged, nil
}

func (m *MockMenuService) Update(ctx context.Context, id uint, req *request.MenuItemRequest) (*response.MenuItemResponse, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req)
	}
	return &response.MenuItemResponse{ID: id}, nil
}

func (m *MockMenuService) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockMenuService) Restore(ctx context.Context, id uint) error {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, id)
	}
	return nil
}

func (m *MockMenuService) PermanentDelete(ctx context.Context, id uint) error {
	if m.PermanentDelFunc != nil {
		return m.PermanentDelFunc(ctx, id)
	}
	return nil
}
