// Package impl provides the business-logic implementations behind the
// service interfaces.
package impl

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/repository"
	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/dto/response"
	"github.com/savora/savora-cloud-go/internal/security"
)

const (
	otpPurposeReset = "password_reset"
	otpTTL          = 10 * time.Minute
)

// authService implements service.AuthService
type authService struct {
	userRepo        repository.UserRepository
	jwtProvider     *security.JWTProvider
	passwordHasher  *security.PasswordHasher
	otpStore        service.OTPStore
	referralService service.ReferralService
	activityService service.ActivityService
	dispatcher      service.EmailDispatcher
	notifier        service.SecurityNotifier
	log             *zap.Logger
}

// NewAuthService creates a new AuthService instance
func NewAuthService(
	userRepo repository.UserRepository,
	jwtProvider *security.JWTProvider,
	passwordHasher *security.PasswordHasher,
	otpStore service.OTPStore,
	referralService service.ReferralService,
	activityService service.ActivityService,
	dispatcher service.EmailDispatcher,
	notifier service.SecurityNotifier,
	log *zap.Logger,
) service.AuthService {
	return &authService{
		userRepo:        userRepo,
		jwtProvider:     jwtProvider,
		passwordHasher:  passwordHasher,
		otpStore:        otpStore,
		referralService: referralService,
		activityService: activityService,
		dispatcher:      dispatcher,
		notifier:        notifier,
		log:             log,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, service.ErrUserAlreadyExists
	}

	// Validate the referral code before touching the database so a bad code
	// fails the registration instead of orphaning an unlinked signup.
	if req.ReferralCode != "" {
		validation, err := s.referralService.ValidateCode(ctx, req.ReferralCode)
		if err != nil {
			return nil, err
		}
		if !validation.Valid {
			return nil, service.ErrReferralCodeInvalid
		}
	}

	hashedPassword, err := s.passwordHasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  hashedPassword,
		Role:      entity.RoleUser,
		Status: entity.AccountStatus{
			IsActive: true,
		},
		Referral: entity.ReferralLedger{
			Settings: entity.ReferralSettings{
				NotifyOnReferral: true,
				AllowSharing:     true,
			},
		},
	}

	if err := s.referralService.InitLedger(ctx, user); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// The encrypted referral id needs the numeric id the insert just
	// assigned. A failure is logged, not surfaced: the dashboard backfills
	// the field on first read.
	if err := s.referralService.AssignEncryptedID(ctx, user); err != nil {
		s.log.Error("encrypted referral id assignment failed",
			zap.Uint("user_id", uint(user.ID)), zap.Error(err))
	}

	// Link the referral after the insert so the transaction sees both
	// documents. A failure here is logged, not surfaced: the account exists.
	if req.ReferralCode != "" {
		if err := s.referralService.ProcessSignup(ctx, user, req.ReferralCode); err != nil {
			s.log.Error("referral signup linkage failed",
				zap.Uint("user_id", uint(user.ID)),
				zap.String("code", req.ReferralCode),
				zap.Error(err),
			)
		}
	}

	if err := s.dispatcher.EnqueueEmail(ctx, user.Email, "Welcome to Savora",
		fmt.Sprintf("Hi %s, your account is ready.", user.FirstName)); err != nil {
		s.log.Warn("welcome email enqueue failed", zap.Error(err))
	}

	return s.openSession(ctx, user, "", "", "")
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, ip, userAgent string) (*response.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrInvalidCredentials
	}
	if user.Status.IsBanned {
		return nil, service.ErrUserBanned
	}
	if !user.Status.IsActive {
		return nil, service.ErrUserInactive
	}

	if !s.passwordHasher.Verify(req.Password, user.Password) {
		s.activityService.Record(ctx, user.ID, entity.Activity{
			Type:        entity.ActivityLogin,
			Description: "Failed login attempt",
			Status:      entity.ActivityStatusFailed,
			IP:          ip,
			UserAgent:   userAgent,
			Device:      req.Device,
		})
		return nil, service.ErrInvalidCredentials
	}

	resp, err := s.openSession(ctx, user, req.Device, req.Location, ip)
	if err != nil {
		return nil, err
	}

	s.activityService.Record(ctx, user.ID, entity.Activity{
		Type:        entity.ActivityLogin,
		Description: "Account accessed",
		Status:      entity.ActivityStatusSuccess,
		IP:          ip,
		UserAgent:   userAgent,
		Device:      req.Device,
	})
	s.notifier.Publish(user.ID, entity.ActivityLogin, "New login to your account")

	return resp, nil
}

func (s *authService) RefreshToken(ctx context.Context, req *request.RefreshTokenRequest) (*response.TokenResponse, error) {
	claims, err := s.jwtProvider.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, service.ErrInvalidToken
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}
	if !user.Status.IsActive || user.Status.IsBanned {
		return nil, service.ErrUserInactive
	}

	accessToken, err := s.jwtProvider.GenerateAccessToken(user, "")
	if err != nil {
		return nil, err
	}

	refreshToken, _, err := s.jwtProvider.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &response.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.jwtProvider.GetAccessTokenDuration(),
	}, nil
}

func (s *authService) Logout(ctx context.Context, userID uint, sessionID string) error {
	if sessionID != "" {
		if _, err := s.userRepo.RemoveSession(ctx, userID, sessionID); err != nil {
			return err
		}
	}

	s.activityService.Record(ctx, userID, entity.Activity{
		Type:        entity.ActivityLogout,
		Description: "Signed out",
		Status:      entity.ActivityStatusSuccess,
	})
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	// Unknown emails succeed silently so the endpoint cannot be used to
	// probe which addresses have accounts.
	if user == nil {
		return nil
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.otpStore.Store(ctx, otpPurposeReset, user.Email, code, otpTTL); err != nil {
		return err
	}

	if err := s.dispatcher.EnqueueEmail(ctx, user.Email, "Your password reset code",
		fmt.Sprintf("Your one-time code is %s. It expires in 10 minutes.", code)); err != nil {
		s.log.Warn("reset email enqueue failed", zap.Error(err))
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	if err := s.otpStore.Verify(ctx, otpPurposeReset, req.Email, req.OTP); err != nil {
		return service.ErrOTPInvalid
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return service.ErrUserNotFound
	}

	hashedPassword, err := s.passwordHasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// A reset invalidates every open session. Passing an empty token matches
	// nothing, which removes them all.
	if _, err := s.userRepo.RemoveSessionsExceptToken(ctx, user.ID, ""); err != nil {
		s.log.Warn("session invalidation after reset failed",
			zap.Uint("user_id", uint(user.ID)), zap.Error(err))
	}

	s.activityService.Record(ctx, user.ID, entity.Activity{
		Type:        entity.ActivityPasswordChange,
		Description: "Password reset via one-time code",
		Status:      entity.ActivityStatusSuccess,
	})
	s.notifier.Publish(user.ID, entity.ActivityPasswordChange, "Your password was reset")
	return nil
}

// openSession registers a new session at the front of the registry and
// issues the token pair bound to it.
func (s *authService) openSession(ctx context.Context, user *entity.User, device, location, ip string) (*response.AuthResponse, error) {
	sessionID := uuid.New().String()

	accessToken, err := s.jwtProvider.GenerateAccessToken(user, sessionID)
	if err != nil {
		return nil, err
	}
	refreshToken, _, err := s.jwtProvider.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := entity.Session{
		ID:        sessionID,
		Token:     accessToken,
		Device:    device,
		Location:  location,
		IP:        ip,
		CreatedAt: now,
		ExpiresAt: now.Add(entity.SessionLifetime),
	}
	if err := s.userRepo.AddSession(ctx, user.ID, sess, entity.MaxSessions); err != nil {
		return nil, err
	}

	return &response.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.jwtProvider.GetAccessTokenDuration(),
		User:         *toUserResponse(user),
	}, nil
}

// generateOTP returns a uniformly random six-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
