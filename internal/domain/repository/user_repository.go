package repository

import (
	"context"
	"time"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uint) (*entity.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// GetByReferralCode retrieves the owner of a referral code, including
	// deleted and banned owners
	GetByReferralCode(ctx context.Context, code string) (*entity.User, error)

	// Update updates an existing user
	Update(ctx context.Context, user *entity.User) error

	// List retrieves users with pagination
	List(ctx context.Context, page, size int) ([]*entity.User, int64, error)

	// ExistsByEmail checks if an email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByReferralCode checks if a referral code is already taken
	ExistsByReferralCode(ctx context.Context, code string) (bool, error)

	// SoftDelete marks a user deleted and reports whether the transition
	// happened
	SoftDelete(ctx context.Context, id uint) (bool, error)

	// Restore clears the soft-delete marker
	Restore(ctx context.Context, id uint) (bool, error)

	// PermanentDelete physically removes an already soft-deleted user
	PermanentDelete(ctx context.Context, id uint) (bool, error)

	// AddSession inserts a session at the front of the registry, trimming to
	// max in the same write
	AddSession(ctx context.Context, id uint, session entity.Session, max int) error

	// RemoveSession removes one session by its identifier
	RemoveSession(ctx context.Context, id uint, sessionID string) (bool, error)

	// RemoveSessionsExceptToken removes every session whose token differs
	// from the given one and returns the number removed
	RemoveSessionsExceptToken(ctx context.Context, id uint, token string) (int, error)

	// RemoveExpiredSessions sweeps naturally expired sessions across all users
	RemoveExpiredSessions(ctx context.Context, now time.Time) (int64, error)

	// AddActivity prepends an activity entry, capped at max
	AddActivity(ctx context.Context, id uint, activity entity.Activity, max int) error

	// SetActivities replaces the stored activity log
	SetActivities(ctx context.Context, id uint, activities []entity.Activity) error

	// CleanupActivitiesBefore removes entries older than cutoff across all
	// users and returns the number removed
	CleanupActivitiesBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// EnforceCollectionCaps trims oversized embedded collections and returns
	// the number of users repaired
	EnforceCollectionCaps(ctx context.Context, maxSessions, maxActivities int) (int, error)

	// SetAddresses replaces the stored address book
	SetAddresses(ctx context.Context, id uint, addresses []entity.Address) error

	// AddReward appends a reward ledger entry
	AddReward(ctx context.Context, id uint, reward entity.Reward) error

	// ClaimReward flips an unclaimed reward to claimed and credits the
	// loyalty balance
	ClaimReward(ctx context.Context, id uint, rewardID string, amount int, now time.Time) (bool, error)

	// CompleteReferralEntry moves a verified referral entry to completed
	CompleteReferralEntry(ctx context.Context, referrerID, referredUserID uint, rewardEarned int, completedAt time.Time) (bool, error)

	// UpdateReferralSettings stores the sharing preferences
	UpdateReferralSettings(ctx context.Context, id uint, settings entity.ReferralSettings) error

	// ApplyReferralSignup atomically links a new signup to its referrer
	ApplyReferralSignup(ctx context.Context, referrerID uint, entry entity.ReferralEntry, referrerReward entity.Reward, newUserID uint, referredBy entity.ReferredBy, signupReward entity.Reward) error
}
