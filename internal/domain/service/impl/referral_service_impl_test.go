package impl

import (
	"context"
	"errors"
	"strings"
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

type referralFixture struct {
	referrals  service.ReferralService
	userRepo   *mocks.MockUserRepository
	dispatcher *mocks.MockEmailDispatcher
	notifier   *mocks.MockSecurityNotifier
}

func setupReferralService(t *testing.T) *referralFixture {
	t.Helper()

	userRepo := mocks.NewMockUserRepository()
	dispatcher := mocks.NewMockEmailDispatcher()
	notifier := mocks.NewMockSecurityNotifier()
	log := zap.NewNop()

	cipher, err := security.NewFieldCipher("test-field-secret")
	if err != nil {
		t.Fatalf("NewFieldCipher() error = %v", err)
	}
	activitySvc := NewActivityService(userRepo, log)
	referrals := NewReferralService(userRepo, cipher, activitySvc, dispatcher, notifier,
		config.ReferralConfig{ShareBaseURL: "https://savora.test/r"}, log)

	return &referralFixture{
		referrals:  referrals,
		userRepo:   userRepo,
		dispatcher: dispatcher,
		notifier:   notifier,
	}
}

func (f *referralFixture) addUser(code string) *entity.User {
	user := &entity.User{
		FirstName: "Ref",
		LastName:  "Errer",
		Email:     code + "@example.com",
		Status:    entity.AccountStatus{IsActive: true},
		Referral: entity.ReferralLedger{
			Code:     code,
			Settings: entity.ReferralSettings{NotifyOnReferral: true, AllowSharing: true},
		},
	}
	f.userRepo.AddUser(user)
	return user
}

func TestReferralService_InitLedger_GeneratesUniqueCode(t *testing.T) {
	f := setupReferralService(t)
	ctx := context.Background()

	first := &entity.User{}
	if err := f.referrals.InitLedger(ctx, first); err != nil {
		t.Fatalf("InitLedger() error = %v", err)
	}
	if len(first.Referral.Code) != 8 {
		t.Errorf("code = %q, want 8 characters", first.Referral.Code)
	}
	if first.Referral.Code != strings.ToUpper(first.Referral.Code) {
		t.Errorf("code = %q, want uppercase", first.Referral.Code)
	}

	second := &entity.User{}
	if err := f.referrals.InitLedger(ctx, second); err != nil {
		t.Fatalf("InitLedger() error = %v", err)
	}
	if first.Referral.Code == second.Referral.Code {
		t.Error("two ledgers got the same code")
	}
}

func TestReferralService_Overview(t *testing.T) {
	f := setupReferralService(t)
	ctx := context.Background()
	user := f.addUser("SHARE123")

	expired := time.Now().Add(-time.Hour)
	user.Referral.Rewards = []entity.Reward{
		{ID: "r1", Type: entity.RewardSignupBonus, Amount: 25, ExpiresAt: &expired},
	}

	overview, err := f.referrals.Overview(ctx, user.ID)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if overview.Code != "SHARE123" {
		t.Errorf("Code = %v, want SHARE123", overview.Code)
	}
	if overview.ShareURL != "https://savora.test/r/SHARE123" {
		t.Errorf("ShareURL = %v", overview.ShareURL)
	}
	if len(overview.Rewards) != 1 || !overview.Rewards[0].Expired {
		t.Errorf("Rewards = %+v, want one expired", overview.Rewards)
	}
	// The encrypted id is backfilled on first read.
	if user.Referral.EncryptedID == "" {
		t.Error("Overview() did not backfill the encrypted id")
	}
}

func TestReferralService_ValidateCode(t *testing.T) {
	f := setupReferralService(t)
	ctx := context.Background()
	owner := f.addUser("GOOD2345")

	resp, err := f.referrals.ValidateCode(ctx, "GOOD2345")
	if err != nil {
		t.Fatalf("ValidateCode() error = %v", err)
	}
	if !resp.Valid {
		t.Fatal("ValidateCode() = invalid, want valid")
	}
	if resp.ReferrerName != "Ref" {
		t.Errorf("ReferrerName = %v, want Ref", resp.ReferrerName)
	}
	if resp.BonusAmount != entity.SignupBonusAmount {
		t.Errorf("BonusAmount = %d, want %d", resp.BonusAmount, entity.SignupBonusAmount)
	}

	resp, err = f.referrals.ValidateCode(ctx, "NOSUCH11")
	if err != nil || resp.Valid {
		t.Errorf("unknown code: resp = %+v, err = %v, want invalid", resp, err)
	}

	owner.Status.IsBanned = true
	resp, err = f.referrals.ValidateCode(ctx, "GOOD2345")
	if err != nil || resp.Valid {
		t.Errorf("banned owner: resp = %+v, err = %v, want invalid", resp, err)
	}
}

func TestReferralService_ProcessSignup(t *testing.T) {
	f := setupReferralService(t)
	ctx := context.Background()
	referrer := f.addUser("LINK4567")
	newUser := f.addUser("")

	if err := f.referrals.ProcessSignup(ctx, newUser, "LINK4567"); err != nil {
		t.Fatalf("ProcessSignup() error = %v", err)
	}

	if len(referrer.Referral.Referrals) != 1 {
		t.Fatalf("referrer entries = %d, want 1", len(referrer.Referral.Referrals))
	}
	entry := referrer.Referral.Referrals[0]
	if entry.UserID != newUser.ID || entry.Status != entity.ReferralVerified {
		t.Errorf("entry = %+v", entry)
	}
	if referrer.Referral.Stats.TotalReferrals != 1 {
		t.Errorf("TotalReferrals = %d, want 1", referrer.Referral.Stats.TotalReferrals)
	}
	if len(referrer.Referral.Rewards) != 1 || referrer.Referral.Rewards[0].Type != entity.RewardReferralBonus {
		t.Errorf("referrer rewards = %+v", referrer.Referral.Rewards)
	}

	if newUser.Referral.ReferredBy == nil || newUser.Referral.ReferredBy.UserID != referrer.ID {
		t.Error("backlink missing on new user")
	}
	if len(newUser.Referral.Rewards) != 1 || newUser.Referral.Rewards[0].Type != entity.RewardSignupBonus {
		t.Errorf("new user rewards = %+v", newUser.Referral.Rewards)
	}

	if len(f.dispatcher.Sent()) != 1 {
		t.Errorf("referral notice emails = %d, want 1", len(f.dispatcher.Sent()))
	}
}

func TestReferralService_ProcessSignup_SelfReferral(t *testing.T) {
	f := setupReferralService(t)
	user := f.addUser("MYOWN123")

	err := f.referrals.ProcessSignup(context.Background(), user, "MYOWN123")
	if !errors.Is(err, service.ErrSelfReferral) {
		t.Errorf("ProcessSignup() error = %v, want ErrSelfReferral", err)
	}
}

func TestReferralService_ProcessSignup_InvalidCode(t *testing.T) {
	f := setupReferralService(t)
	newUser := f.addUser("")

	err := f.referrals.ProcessSignup(context.Background(), newUser, "NOSUCH11")
	if !errors.Is(err, service.ErrReferralCodeInvalid) {
		t.Errorf("ProcessSignup() error = %v, want ErrReferralCodeInvalid", err)
	}
}

func TestReferralService_CompleteFirstOrder(t *testing.T) {
	f := setupReferralService(t)
	ctx := context.Background()
	referrer := f.addUser("DONE1234")
	newUser := f.addUser("")

	if err := f.referrals.ProcessSignup(ctx, newUser, "DONE1234"); err != nil {
		t.Fatalf("ProcessSignup() error = %v", err)
	}
	if err := f.referrals.CompleteFirstOrder(ctx, newUser.ID); err != nil {
		t.Fatalf("CompleteFirstOrder() error = %v", err)
	}

	entry := referrer.Referral.Referrals[0]
	if entry.Status != entity.ReferralCompleted || entry.CompletedAt == nil {
		t.Errorf("entry = %+v, want completed", entry)
	}
	if entry.RewardEarned != entity.FirstOrderBonusAmount {
		t.Errorf("RewardEarned = %d, want %d", entry.RewardEarned, entity.FirstOrderBonusAmount)
	}
	if referrer.Referral.Stats.CompletedReferrals != 1 {
		t.Errorf("CompletedReferrals = %d, want 1", referrer.Referral.Stats.CompletedReferrals)
	}

	// Both sides gain a first-order bonus.
	if len(referrer.Referral.Rewards) != 2 {
		t.Errorf("referrer rewards = %d, want 2", len(referrer.Referral.Rewards))
	}
	if len(newUser.Referral.Rewards) != 2 {
		t.Errorf("new user rewards = %d, want 2", len(newUser.Referral.Rewards))
	}
	if !newUser.Referral.ReferredBy.BonusClaimed {
		t.Error("BonusClaimed not set")
	}

	// Running it again is a no-op.
	if err := f.referrals.CompleteFirstOrder(ctx, newUser.ID); err != nil {
		t.Fatalf("CompleteFirstOrder() repeat error = %v", err)
	}
	if len(newUser.Referral.Rewards) != 2 {
		t.Error("repeat call granted another reward")
	}
}

func TestReferralService_CompleteFirstOrder_NoReferrer(t *testing.T) {
	f := setupReferralService(t)
	user := f.addUser("")

	if err := f.referrals.CompleteFirstOrder(context.Background(), user.ID); err != nil {
		t.Errorf("CompleteFirstOrder() without backlink error = %v, want nil", err)
	}
}

func TestReferralService_ClaimReward(t *testing.T) {
	f := setupReferralService(t)
	ctx := context.Background()
	user := f.addUser("CLAIM123")
	user.LoyaltyPoints = 10

	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)
	claimedAt := time.Now()
	user.Referral.Rewards = []entity.Reward{
		{ID: "open", Type: entity.RewardSignupBonus, Amount: 25, ExpiresAt: &future},
		{ID: "done", Type: entity.RewardSignupBonus, Amount: 25, Claimed: true, ClaimedAt: &claimedAt},
		{ID: "late", Type: entity.RewardSignupBonus, Amount: 25, ExpiresAt: &past},
	}

	resp, err := f.referrals.ClaimReward(ctx, user.ID, &request.ClaimRewardRequest{RewardID: "open"})
	if err != nil {
		t.Fatalf("ClaimReward() error = %v", err)
	}
	if resp.Amount != 25 || resp.LoyaltyPoints != 35 {
		t.Errorf("resp = %+v, want amount 25 balance 35", resp)
	}
	if user.LoyaltyPoints != 35 {
		t.Errorf("LoyaltyPoints = %d, want 35", user.LoyaltyPoints)
	}

	if _, err := f.referrals.ClaimReward(ctx, user.ID, &request.ClaimRewardRequest{RewardID: "open"}); !errors.Is(err, service.ErrRewardAlreadyClaimed) {
		t.Errorf("double claim error = %v, want ErrRewardAlreadyClaimed", err)
	}
	if _, err := f.referrals.ClaimReward(ctx, user.ID, &request.ClaimRewardRequest{RewardID: "done"}); !errors.Is(err, service.ErrRewardAlreadyClaimed) {
		t.Errorf("claimed reward error = %v, want ErrRewardAlreadyClaimed", err)
	}
	if _, err := f.referrals.ClaimReward(ctx, user.ID, &request.ClaimRewardRequest{RewardID: "late"}); !errors.Is(err, service.ErrRewardExpired) {
		t.Errorf("expired reward error = %v, want ErrRewardExpired", err)
	}
	if _, err := f.referrals.ClaimReward(ctx, user.ID, &request.ClaimRewardRequest{RewardID: "nope"}); !errors.Is(err, service.ErrRewardNotFound) {
		t.Errorf("unknown reward error = %v, want ErrRewardNotFound", err)
	}
}

func TestReferralService_UpdateSettings(t *testing.T) {
	f := setupReferralService(t)
	user := f.addUser("SET12345")

	off := false
	resp, err := f.referrals.UpdateSettings(context.Background(), user.ID, &request.ReferralSettingsRequest{
		NotifyOnReferral: &off,
	})
	if err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}
	if resp.NotifyOnReferral {
		t.Error("NotifyOnReferral still true")
	}
	if !resp.AllowSharing {
		t.Error("AllowSharing flipped without being requested")
	}
	if user.Referral.Settings.NotifyOnReferral {
		t.Error("settings not persisted")
	}
}

func TestReferralService_ExpireRewardNotices(t *testing.T) {
	f := setupReferralService(t)
	ctx := context.Background()

	soon := time.Now().Add(48 * time.Hour)
	far := time.Now().Add(60 * 24 * time.Hour)

	expiring := f.addUser("EXP11111")
	expiring.Referral.Rewards = []entity.Reward{
		{ID: "r1", Type: entity.RewardSignupBonus, Amount: 25, ExpiresAt: &soon},
	}

	quiet := f.addUser("EXP22222")
	quiet.Referral.Rewards = []entity.Reward{
		{ID: "r2", Type: entity.RewardSignupBonus, Amount: 25, ExpiresAt: &far},
	}

	muted := f.addUser("EXP33333")
	muted.Referral.Settings.NotifyOnReferral = false
	muted.Referral.Rewards = []entity.Reward{
		{ID: "r3", Type: entity.RewardSignupBonus, Amount: 25, ExpiresAt: &soon},
	}

	if err := f.referrals.ExpireRewardNotices(ctx); err != nil {
		t.Fatalf("ExpireRewardNotices() error = %v", err)
	}

	sent := f.dispatcher.Sent()
	if len(sent) != 1 {
		t.Fatalf("emails = %d, want 1", len(sent))
	}
	if sent[0].To != expiring.Email {
		t.Errorf("email to %v, want %v", sent[0].To, expiring.Email)
	}
}
