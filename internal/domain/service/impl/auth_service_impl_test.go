package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/config"
	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/security"
	"github.com/savora/savora-cloud-go/internal/testutil/mocks"
)

type authFixture struct {
	auth       service.AuthService
	userRepo   *mocks.MockUserRepository
	otpStore   *mocks.MockOTPStore
	dispatcher *mocks.MockEmailDispatcher
	notifier   *mocks.MockSecurityNotifier
	hasher     *security.PasswordHasher
}

func setupAuthService(t *testing.T) *authFixture {
	t.Helper()

	userRepo := mocks.NewMockUserRepository()
	otpStore := mocks.NewMockOTPStore()
	dispatcher := mocks.NewMockEmailDispatcher()
	notifier := mocks.NewMockSecurityNotifier()
	log := zap.NewNop()

	jwtProvider := security.NewJWTProvider(&config.JWTConfig{
		Secret:               "test-secret-key-for-testing-purposes-only",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
		Issuer:               "test",
	})
	hasher := security.NewPasswordHasher()

	cipher, err := security.NewFieldCipher("test-field-secret")
	if err != nil {
		t.Fatalf("NewFieldCipher() error = %v", err)
	}
	activitySvc := NewActivityService(userRepo, log)
	referralSvc := NewReferralService(userRepo, cipher, activitySvc, dispatcher, notifier,
		config.ReferralConfig{ShareBaseURL: "https://savora.test/r"}, log)

	auth := NewAuthService(userRepo, jwtProvider, hasher, otpStore, referralSvc,
		activitySvc, dispatcher, notifier, log)

	return &authFixture{
		auth:       auth,
		userRepo:   userRepo,
		otpStore:   otpStore,
		dispatcher: dispatcher,
		notifier:   notifier,
		hasher:     hasher,
	}
}

func (f *authFixture) addUser(t *testing.T, email, password string) *entity.User {
	t.Helper()
	hash, err := f.hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	user := &entity.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  hash,
		Role:      entity.RoleUser,
		Status:    entity.AccountStatus{IsActive: true},
		Referral: entity.ReferralLedger{
			Settings: entity.ReferralSettings{NotifyOnReferral: true, AllowSharing: true},
		},
	}
	f.userRepo.AddUser(user)
	return user
}

func TestAuthService_Register_Success(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()

	resp, err := f.auth.Register(ctx, &request.RegisterRequest{
		FirstName: "Ada",
		Email:     "ada@example.com",
		Password:  "password123",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("Register() returned empty tokens")
	}
	if resp.User.Email != "ada@example.com" {
		t.Errorf("Register() Email = %v, want ada@example.com", resp.User.Email)
	}

	user, _ := f.userRepo.GetByID(ctx, resp.User.ID)
	if user == nil {
		t.Fatal("registered user not persisted")
	}
	if user.Referral.Code == "" {
		t.Error("Register() did not seed a referral code")
	}
	if user.Referral.EncryptedID == "" {
		t.Error("Register() did not assign the encrypted referral id")
	}
	if len(user.Sessions) != 1 {
		t.Errorf("Register() sessions = %d, want 1", len(user.Sessions))
	}
	if len(f.dispatcher.Sent()) != 1 {
		t.Errorf("Register() enqueued %d emails, want 1 welcome email", len(f.dispatcher.Sent()))
	}
}

func TestAuthService_Register_EmailExists(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()
	f.addUser(t, "taken@example.com", "password123")

	_, err := f.auth.Register(ctx, &request.RegisterRequest{
		FirstName: "Dup",
		Email:     "taken@example.com",
		Password:  "password123",
	})
	if !errors.Is(err, service.ErrUserAlreadyExists) {
		t.Errorf("Register() error = %v, want ErrUserAlreadyExists", err)
	}
}

func TestAuthService_Register_WithReferralCode(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()

	referrer := f.addUser(t, "referrer@example.com", "password123")
	referrer.Referral.Code = "FRIEND23"

	resp, err := f.auth.Register(ctx, &request.RegisterRequest{
		FirstName:    "New",
		Email:        "new@example.com",
		Password:     "password123",
		ReferralCode: "FRIEND23",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if len(referrer.Referral.Referrals) != 1 {
		t.Fatalf("referrer entries = %d, want 1", len(referrer.Referral.Referrals))
	}
	entry := referrer.Referral.Referrals[0]
	if entry.Status != entity.ReferralVerified {
		t.Errorf("entry status = %v, want verified", entry.Status)
	}
	if len(referrer.Referral.Rewards) != 1 || referrer.Referral.Rewards[0].Amount != entity.ReferralBonusAmount {
		t.Errorf("referrer rewards = %+v, want one %d-point referral bonus",
			referrer.Referral.Rewards, entity.ReferralBonusAmount)
	}

	newUser, _ := f.userRepo.GetByID(ctx, resp.User.ID)
	if newUser.Referral.ReferredBy == nil || newUser.Referral.ReferredBy.UserID != referrer.ID {
		t.Error("new user is missing the referrer backlink")
	}
	if len(newUser.Referral.Rewards) != 1 || newUser.Referral.Rewards[0].Amount != entity.SignupBonusAmount {
		t.Errorf("new user rewards = %+v, want one %d-point signup bonus",
			newUser.Referral.Rewards, entity.SignupBonusAmount)
	}
}

func TestAuthService_Register_InvalidReferralCode(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, &request.RegisterRequest{
		FirstName:    "New",
		Email:        "new@example.com",
		Password:     "password123",
		ReferralCode: "NOSUCH99",
	})
	if !errors.Is(err, service.ErrReferralCodeInvalid) {
		t.Errorf("Register() error = %v, want ErrReferralCodeInvalid", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()
	user := f.addUser(t, "login@example.com", "password123")

	resp, err := f.auth.Login(ctx, &request.LoginRequest{
		Email:    "login@example.com",
		Password: "password123",
		Device:   "iPhone 15",
	}, "203.0.113.9", "test-agent")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("Login() AccessToken is empty")
	}
	if len(user.Sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(user.Sessions))
	}
	if user.Sessions[0].Device != "iPhone 15" {
		t.Errorf("session device = %v, want iPhone 15", user.Sessions[0].Device)
	}
	if len(user.Activities) == 0 || user.Activities[0].Type != entity.ActivityLogin {
		t.Error("Login() did not record a login activity")
	}
	if len(f.notifier.Published()) != 1 {
		t.Errorf("Login() published %d events, want 1", len(f.notifier.Published()))
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()
	user := f.addUser(t, "login@example.com", "password123")

	_, err := f.auth.Login(ctx, &request.LoginRequest{
		Email:    "login@example.com",
		Password: "not-the-password",
	}, "", "")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
	}
	if len(user.Activities) == 0 || user.Activities[0].Status != entity.ActivityStatusFailed {
		t.Error("failed login was not recorded in the activity log")
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	f := setupAuthService(t)

	_, err := f.auth.Login(context.Background(), &request.LoginRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	}, "", "")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_Login_BannedAndInactive(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()

	banned := f.addUser(t, "banned@example.com", "password123")
	banned.Status.IsBanned = true
	_, err := f.auth.Login(ctx, &request.LoginRequest{Email: "banned@example.com", Password: "password123"}, "", "")
	if !errors.Is(err, service.ErrUserBanned) {
		t.Errorf("Login() banned error = %v, want ErrUserBanned", err)
	}

	inactive := f.addUser(t, "inactive@example.com", "password123")
	inactive.Status.IsActive = false
	_, err = f.auth.Login(ctx, &request.LoginRequest{Email: "inactive@example.com", Password: "password123"}, "", "")
	if !errors.Is(err, service.ErrUserInactive) {
		t.Errorf("Login() inactive error = %v, want ErrUserInactive", err)
	}
}

func TestAuthService_Login_SessionCapEviction(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()
	user := f.addUser(t, "busy@example.com", "password123")

	now := time.Now()
	for i := 0; i < entity.MaxSessions; i++ {
		user.Sessions = append(user.Sessions, entity.Session{
			ID:        "old",
			Token:     "old-token",
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
			ExpiresAt: now.Add(entity.SessionLifetime),
		})
	}

	_, err := f.auth.Login(ctx, &request.LoginRequest{Email: "busy@example.com", Password: "password123"}, "", "")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if len(user.Sessions) != entity.MaxSessions {
		t.Errorf("sessions = %d, want capped at %d", len(user.Sessions), entity.MaxSessions)
	}
	if user.Sessions[0].ID == "old" {
		t.Error("new session was not inserted at the front")
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()
	f.addUser(t, "refresh@example.com", "password123")

	login, err := f.auth.Login(ctx, &request.LoginRequest{Email: "refresh@example.com", Password: "password123"}, "", "")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	resp, err := f.auth.RefreshToken(ctx, &request.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("RefreshToken() AccessToken is empty")
	}
	if resp.RefreshToken == "" {
		t.Error("RefreshToken() did not rotate the refresh token")
	}

	_, err = f.auth.RefreshToken(ctx, &request.RefreshTokenRequest{RefreshToken: "garbage"})
	if !errors.Is(err, service.ErrInvalidToken) {
		t.Errorf("RefreshToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestAuthService_Logout_RemovesSession(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()
	user := f.addUser(t, "logout@example.com", "password123")

	_, err := f.auth.Login(ctx, &request.LoginRequest{Email: "logout@example.com", Password: "password123"}, "", "")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	sessionID := user.Sessions[0].ID

	if err := f.auth.Logout(ctx, user.ID, sessionID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if len(user.Sessions) != 0 {
		t.Errorf("sessions = %d after logout, want 0", len(user.Sessions))
	}
	if user.Activities[0].Type != entity.ActivityLogout {
		t.Errorf("latest activity = %v, want logout", user.Activities[0].Type)
	}
}

func TestAuthService_ForgotPassword_UnknownEmailSilent(t *testing.T) {
	f := setupAuthService(t)

	if err := f.auth.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Email: "ghost@example.com"}); err != nil {
		t.Fatalf("ForgotPassword() error = %v, want silent success", err)
	}
	if len(f.dispatcher.Sent()) != 0 {
		t.Error("ForgotPassword() sent email for unknown address")
	}
}

func TestAuthService_ResetPassword_Flow(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()
	user := f.addUser(t, "reset@example.com", "password123")

	// Seed open sessions that the reset must invalidate.
	user.Sessions = []entity.Session{
		{ID: "s1", Token: "t1", ExpiresAt: time.Now().Add(time.Hour)},
		{ID: "s2", Token: "t2", ExpiresAt: time.Now().Add(time.Hour)},
	}

	if err := f.auth.ForgotPassword(ctx, &request.ForgotPasswordRequest{Email: "reset@example.com"}); err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}
	if len(f.dispatcher.Sent()) != 1 {
		t.Fatalf("ForgotPassword() enqueued %d emails, want 1", len(f.dispatcher.Sent()))
	}

	err := f.auth.ResetPassword(ctx, &request.ResetPasswordRequest{
		Email:       "reset@example.com",
		OTP:         "000000",
		NewPassword: "newpassword456",
	})
	if !errors.Is(err, service.ErrOTPInvalid) {
		t.Fatalf("ResetPassword() with wrong code error = %v, want ErrOTPInvalid", err)
	}

	// Re-issue and use the real code this time.
	if err := f.otpStore.Store(ctx, "password_reset", "reset@example.com", "123456", 10*time.Minute); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	err = f.auth.ResetPassword(ctx, &request.ResetPasswordRequest{
		Email:       "reset@example.com",
		OTP:         "123456",
		NewPassword: "newpassword456",
	})
	if err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	if !f.hasher.Verify("newpassword456", user.Password) {
		t.Error("password was not updated")
	}
	if len(user.Sessions) != 0 {
		t.Errorf("sessions = %d after reset, want 0", len(user.Sessions))
	}

	// The code is consumed on success.
	err = f.auth.ResetPassword(ctx, &request.ResetPasswordRequest{
		Email:       "reset@example.com",
		OTP:         "123456",
		NewPassword: "again789",
	})
	if !errors.Is(err, service.ErrOTPInvalid) {
		t.Errorf("ResetPassword() replay error = %v, want ErrOTPInvalid", err)
	}
}
