package service

import (
	"context"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/dto/response"
)

// ReferralService defines the interface for the referral ledger
type ReferralService interface {
	// Overview returns the full referral dashboard for a user
	Overview(ctx context.Context, userID uint) (*response.ReferralOverviewResponse, error)

	// ValidateCode checks whether a referral code can be used. The owner
	// must be active, not banned and not deleted.
	ValidateCode(ctx context.Context, code string) (*response.ValidateCodeResponse, error)

	// InitLedger seeds a new user's ledger with a unique referral code.
	// Called during registration before the user document is inserted.
	InitLedger(ctx context.Context, user *entity.User) error

	// AssignEncryptedID derives the encrypted referral id from the numeric
	// id and persists it. Called right after the insert assigns the id;
	// Overview also uses it to backfill documents that predate the field.
	AssignEncryptedID(ctx context.Context, user *entity.User) error

	// ProcessSignup links a freshly created user to the owner of the given
	// code inside one transaction: the referrer gains a verified referral
	// entry plus a referral bonus, the new user gains the backlink plus a
	// signup bonus. Neither document changes if the transaction aborts.
	ProcessSignup(ctx context.Context, newUser *entity.User, code string) error

	// CompleteFirstOrder moves the caller's referral entry to completed and
	// grants first-order bonuses to both sides. Best effort: a failure on
	// the referrer side is logged and does not fail the order.
	CompleteFirstOrder(ctx context.Context, userID uint) error

	// ClaimReward claims one reward exactly once and credits loyalty points
	ClaimReward(ctx context.Context, userID uint, req *request.ClaimRewardRequest) (*response.ClaimRewardResponse, error)

	// UpdateSettings stores the sharing preferences
	UpdateSettings(ctx context.Context, userID uint, req *request.ReferralSettingsRequest) (*response.ReferralSettingsResponse, error)

	// ExpireRewardNotices emails owners of rewards expiring within the
	// notice window. Run from the scheduler.
	ExpireRewardNotices(ctx context.Context) error
}
