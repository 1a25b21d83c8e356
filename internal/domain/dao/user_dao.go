// Package dao defines data-access interfaces. Implementations live in the
// mongo subpackage; services never touch the driver directly.
package dao

import (
	"context"
	"time"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
)

// UserDAO defines persistence operations for the user aggregate, including
// the atomic sub-document operations used by the session registry, activity
// log and referral ledger.
type UserDAO interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByReferralCode(ctx context.Context, code string) (*entity.User, error)
	FindAll(ctx context.Context, page, size int) ([]*entity.User, int64, error)
	Update(ctx context.Context, user *entity.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByReferralCode(ctx context.Context, code string) (bool, error)

	// Soft-delete lifecycle. PermanentDelete only removes documents that are
	// already soft-deleted and reports whether a document was removed.
	SoftDelete(ctx context.Context, id uint) (bool, error)
	Restore(ctx context.Context, id uint) (bool, error)
	PermanentDelete(ctx context.Context, id uint) (bool, error)

	// Session registry. PushSession inserts at the front and trims the array
	// to max in the same write. PullSessionsExceptToken returns the number of
	// sessions removed.
	PushSession(ctx context.Context, id uint, session entity.Session, max int) error
	PullSessionByID(ctx context.Context, id uint, sessionID string) (bool, error)
	PullSessionsExceptToken(ctx context.Context, id uint, token string) (int, error)
	RemoveExpiredSessions(ctx context.Context, now time.Time) (int64, error)

	// Activity log.
	PushActivity(ctx context.Context, id uint, activity entity.Activity, max int) error
	SetActivities(ctx context.Context, id uint, activities []entity.Activity) error
	CleanupActivitiesBefore(ctx context.Context, cutoff time.Time) (int64, error)
	EnforceCollectionCaps(ctx context.Context, maxSessions, maxActivities int) (int, error)

	// Address book. Addresses are replaced wholesale; active-index mapping is
	// a service concern.
	SetAddresses(ctx context.Context, id uint, addresses []entity.Address) error

	// Referral ledger.
	PushReward(ctx context.Context, id uint, reward entity.Reward) error
	ClaimReward(ctx context.Context, id uint, rewardID string, amount int, now time.Time) (bool, error)
	CompleteReferralEntry(ctx context.Context, referrerID, referredUserID uint, rewardEarned int, completedAt time.Time) (bool, error)
	UpdateReferralSettings(ctx context.Context, id uint, settings entity.ReferralSettings) error

	// ApplyReferralSignup links a new signup to its referrer inside a single
	// multi-document transaction: the referrer gains a referral entry and a
	// referral bonus reward, the new user gains the backlink and a signup
	// bonus reward. Neither document is mutated if the transaction aborts.
	ApplyReferralSignup(ctx context.Context, referrerID uint, entry entity.ReferralEntry, referrerReward entity.Reward, newUserID uint, referredBy entity.ReferredBy, signupReward entity.Reward) error
}
