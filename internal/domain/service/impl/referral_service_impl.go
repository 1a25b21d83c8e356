package impl

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/config"
	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/repository"
	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/dto/response"
	"github.com/savora/savora-cloud-go/internal/security"
)

// Referral codes avoid 0/O/1/I/L so they survive being read aloud.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	codeLength       = 8
	codeGenAttempts  = 5
	expiryNoticeSpan = 7 * 24 * time.Hour
)

// referralService implements service.ReferralService
type referralService struct {
	userRepo        repository.UserRepository
	cipher          *security.FieldCipher
	activityService service.ActivityService
	dispatcher      service.EmailDispatcher
	notifier        service.SecurityNotifier
	cfg             config.ReferralConfig
	log             *zap.Logger
}

// NewReferralService creates a new ReferralService instance
func NewReferralService(
	userRepo repository.UserRepository,
	cipher *security.FieldCipher,
	activityService service.ActivityService,
	dispatcher service.EmailDispatcher,
	notifier service.SecurityNotifier,
	cfg config.ReferralConfig,
	log *zap.Logger,
) service.ReferralService {
	return &referralService{
		userRepo:        userRepo,
		cipher:          cipher,
		activityService: activityService,
		dispatcher:      dispatcher,
		notifier:        notifier,
		cfg:             cfg,
		log:             log,
	}
}

func (s *referralService) Overview(ctx context.Context, userID uint) (*response.ReferralOverviewResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}

	// Accounts created before the encrypted id existed get one on first
	// read.
	if user.Referral.EncryptedID == "" {
		if err := s.AssignEncryptedID(ctx, user); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	overview := &response.ReferralOverviewResponse{
		Code:     user.Referral.Code,
		ShareURL: fmt.Sprintf("%s/%s", s.cfg.ShareBaseURL, user.Referral.Code),
		Stats: response.ReferralStatsResponse{
			TotalReferrals:      user.Referral.Stats.TotalReferrals,
			CompletedReferrals:  user.Referral.Stats.CompletedReferrals,
			TotalRewardsEarned:  user.Referral.Stats.TotalRewardsEarned,
			TotalRewardsClaimed: user.Referral.Stats.TotalRewardsClaimed,
		},
		Settings: response.ReferralSettingsResponse{
			NotifyOnReferral: user.Referral.Settings.NotifyOnReferral,
			AllowSharing:     user.Referral.Settings.AllowSharing,
		},
	}

	overview.Referrals = make([]response.ReferralEntryResponse, len(user.Referral.Referrals))
	for i, e := range user.Referral.Referrals {
		overview.Referrals[i] = response.ReferralEntryResponse{
			UserID:       e.UserID,
			Name:         e.Name,
			Status:       string(e.Status),
			RewardEarned: e.RewardEarned,
			CreatedAt:    e.CreatedAt,
			CompletedAt:  e.CompletedAt,
		}
	}

	overview.Rewards = make([]response.RewardResponse, len(user.Referral.Rewards))
	for i, r := range user.Referral.Rewards {
		overview.Rewards[i] = response.RewardResponse{
			ID:        r.ID,
			Type:      string(r.Type),
			Amount:    r.Amount,
			Claimed:   r.Claimed,
			Expired:   r.IsExpired(now),
			ClaimedAt: r.ClaimedAt,
			ExpiresAt: r.ExpiresAt,
			CreatedAt: r.CreatedAt,
		}
	}

	return overview, nil
}

func (s *referralService) ValidateCode(ctx context.Context, code string) (*response.ValidateCodeResponse, error) {
	if code == "" {
		return &response.ValidateCodeResponse{Valid: false}, nil
	}

	owner, err := s.userRepo.GetByReferralCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if owner == nil || !owner.CanRefer() {
		return &response.ValidateCodeResponse{Valid: false}, nil
	}

	return &response.ValidateCodeResponse{
		Valid:        true,
		ReferrerName: owner.FirstName,
		BonusAmount:  entity.SignupBonusAmount,
	}, nil
}

func (s *referralService) InitLedger(ctx context.Context, user *entity.User) error {
	code, err := s.generateUniqueCode(ctx)
	if err != nil {
		return err
	}
	user.Referral.Code = code
	return nil
}

func (s *referralService) AssignEncryptedID(ctx context.Context, user *entity.User) error {
	encrypted, err := s.cipher.Encrypt(fmt.Sprintf("%d", user.ID))
	if err != nil {
		return err
	}
	user.Referral.EncryptedID = encrypted
	return s.userRepo.Update(ctx, user)
}

func (s *referralService) ProcessSignup(ctx context.Context, newUser *entity.User, code string) error {
	referrer, err := s.userRepo.GetByReferralCode(ctx, code)
	if err != nil {
		return err
	}
	if referrer == nil || !referrer.CanRefer() {
		return service.ErrReferralCodeInvalid
	}
	if referrer.ID == newUser.ID {
		return service.ErrSelfReferral
	}

	now := time.Now()
	referralExpiry := now.Add(entity.ReferralBonusExpiry)
	signupExpiry := now.Add(entity.SignupBonusExpiry)

	entry := entity.ReferralEntry{
		UserID:    newUser.ID,
		Name:      newUser.FullName(),
		Status:    entity.ReferralVerified,
		CreatedAt: now,
	}
	referrerReward := entity.Reward{
		ID:        uuid.New().String(),
		Type:      entity.RewardReferralBonus,
		Amount:    entity.ReferralBonusAmount,
		ExpiresAt: &referralExpiry,
		CreatedAt: now,
	}
	referredBy := entity.ReferredBy{
		UserID:     referrer.ID,
		Code:       code,
		ReferredAt: now,
	}
	signupReward := entity.Reward{
		ID:        uuid.New().String(),
		Type:      entity.RewardSignupBonus,
		Amount:    entity.SignupBonusAmount,
		ExpiresAt: &signupExpiry,
		CreatedAt: now,
	}

	if err := s.userRepo.ApplyReferralSignup(ctx, referrer.ID, entry, referrerReward, newUser.ID, referredBy, signupReward); err != nil {
		return err
	}

	if referrer.Referral.Settings.NotifyOnReferral {
		if err := s.dispatcher.EnqueueEmail(ctx, referrer.Email, "You referred a new member",
			fmt.Sprintf("%s just joined with your code. A %d-point reward is waiting in your ledger.",
				newUser.FirstName, entity.ReferralBonusAmount)); err != nil {
			s.log.Warn("referral notice enqueue failed", zap.Error(err))
		}
		s.notifier.Publish(referrer.ID, "referral", "Someone joined with your referral code")
	}
	return nil
}

func (s *referralService) CompleteFirstOrder(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return service.ErrUserNotFound
	}

	rb := user.Referral.ReferredBy
	if rb == nil || rb.BonusClaimed {
		return nil
	}

	now := time.Now()
	if err := s.userRepo.AddReward(ctx, userID, entity.Reward{
		ID:        uuid.New().String(),
		Type:      entity.RewardFirstOrderBonus,
		Amount:    entity.FirstOrderBonusAmount,
		CreatedAt: now,
	}); err != nil {
		return err
	}

	user.Referral.ReferredBy.BonusClaimed = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// The referrer side is best effort: their entry may have been pruned or
	// their account closed, and the order must not fail because of it.
	ok, err := s.userRepo.CompleteReferralEntry(ctx, rb.UserID, userID, entity.FirstOrderBonusAmount, now)
	if err != nil || !ok {
		s.log.Warn("referrer completion skipped",
			zap.Uint("referrer_id", uint(rb.UserID)),
			zap.Uint("user_id", uint(userID)),
			zap.Bool("matched", ok),
			zap.Error(err),
		)
		return nil
	}
	if err := s.userRepo.AddReward(ctx, rb.UserID, entity.Reward{
		ID:        uuid.New().String(),
		Type:      entity.RewardFirstOrderBonus,
		Amount:    entity.FirstOrderBonusAmount,
		CreatedAt: now,
	}); err != nil {
		s.log.Warn("referrer first-order reward failed",
			zap.Uint("referrer_id", uint(rb.UserID)), zap.Error(err))
	}
	return nil
}

func (s *referralService) ClaimReward(ctx context.Context, userID uint, req *request.ClaimRewardRequest) (*response.ClaimRewardResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}

	var reward *entity.Reward
	for i := range user.Referral.Rewards {
		if user.Referral.Rewards[i].ID == req.RewardID {
			reward = &user.Referral.Rewards[i]
			break
		}
	}
	if reward == nil {
		return nil, service.ErrRewardNotFound
	}
	if reward.Claimed {
		return nil, service.ErrRewardAlreadyClaimed
	}
	if reward.IsExpired(time.Now()) {
		return nil, service.ErrRewardExpired
	}

	balanceBefore := user.LoyaltyPoints

	// The conditional write only matches an unclaimed reward, so two
	// concurrent claims credit the balance once.
	ok, err := s.userRepo.ClaimReward(ctx, userID, reward.ID, reward.Amount, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, service.ErrRewardAlreadyClaimed
	}

	s.activityService.Record(ctx, userID, entity.Activity{
		Type:        entity.ActivityRewardClaimed,
		Description: fmt.Sprintf("Claimed %d points (%s)", reward.Amount, reward.Type),
		Status:      entity.ActivityStatusSuccess,
	})

	return &response.ClaimRewardResponse{
		RewardID:      reward.ID,
		Amount:        reward.Amount,
		LoyaltyPoints: balanceBefore + reward.Amount,
	}, nil
}

func (s *referralService) UpdateSettings(ctx context.Context, userID uint, req *request.ReferralSettingsRequest) (*response.ReferralSettingsResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}

	settings := user.Referral.Settings
	if req.NotifyOnReferral != nil {
		settings.NotifyOnReferral = *req.NotifyOnReferral
	}
	if req.AllowSharing != nil {
		settings.AllowSharing = *req.AllowSharing
	}

	if err := s.userRepo.UpdateReferralSettings(ctx, userID, settings); err != nil {
		return nil, err
	}

	return &response.ReferralSettingsResponse{
		NotifyOnReferral: settings.NotifyOnReferral,
		AllowSharing:     settings.AllowSharing,
	}, nil
}

func (s *referralService) ExpireRewardNotices(ctx context.Context) error {
	now := time.Now()
	horizon := now.Add(expiryNoticeSpan)

	for page := 1; ; page++ {
		users, _, err := s.userRepo.List(ctx, page, 100)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			return nil
		}

		for _, user := range users {
			if !user.Referral.Settings.NotifyOnReferral {
				continue
			}
			expiring := 0
			for _, r := range user.Referral.Rewards {
				if r.Claimed || r.ExpiresAt == nil {
					continue
				}
				if r.ExpiresAt.After(now) && r.ExpiresAt.Before(horizon) {
					expiring++
				}
			}
			if expiring == 0 {
				continue
			}
			if err := s.dispatcher.EnqueueEmail(ctx, user.Email, "Rewards expiring soon",
				fmt.Sprintf("You have %d unclaimed rewards expiring within a week.", expiring)); err != nil {
				s.log.Warn("expiry notice enqueue failed",
					zap.Uint("user_id", uint(user.ID)), zap.Error(err))
			}
		}
	}
}

// generateUniqueCode draws random codes until one is unused.
func (s *referralService) generateUniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codeGenAttempts; attempt++ {
		code, err := randomCode(codeLength)
		if err != nil {
			return "", err
		}
		taken, err := s.userRepo.ExistsByReferralCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique referral code in %d attempts", codeGenAttempts)
}

func randomCode(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = codeAlphabet[n.Int64()]
	}
	return string(out), nil
}
