// Package impl provides repository implementations that delegate to the DAO layer.
// This separation allows repositories to focus on business logic while DAOs handle
// database-specific operations.
package impl

import (
	"context"
	"time"

	"github.com/savora/savora-cloud-go/internal/domain/dao"
	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/repository"
)

// userRepository implements repository.UserRepository by delegating to UserDAO.
type userRepository struct {
	dao dao.UserDAO
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(userDAO dao.UserDAO) repository.UserRepository {
	return &userRepository{dao: userDAO}
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.dao.Create(ctx, user)
}

// GetByID retrieves a user by their ID.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.dao.FindByID(ctx, id)
}

// GetByEmail retrieves a user by their email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.dao.FindByEmail(ctx, email)
}

// GetByReferralCode retrieves the owner of a referral code.
func (r *userRepository) GetByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	return r.dao.FindByReferralCode(ctx, code)
}

// Update modifies an existing user.
func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.dao.Update(ctx, user)
}

// List retrieves users with pagination.
func (r *userRepository) List(ctx context.Context, page, size int) ([]*entity.User, int64, error) {
	return r.dao.FindAll(ctx, page, size)
}

// ExistsByEmail checks if a user with the given email exists.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.dao.ExistsByEmail(ctx, email)
}

// ExistsByReferralCode checks if a referral code is already taken.
func (r *userRepository) ExistsByReferralCode(ctx context.Context, code string) (bool, error) {
	return r.dao.ExistsByReferralCode(ctx, code)
}

// SoftDelete marks a user deleted.
func (r *userRepository) SoftDelete(ctx context.Context, id uint) (bool, error) {
	return r.dao.SoftDelete(ctx, id)
}

// Restore clears the soft-delete marker on a user.
func (r *userRepository) Restore(ctx context.Context, id uint) (bool, error) {
	return r.dao.Restore(ctx, id)
}

// PermanentDelete physically removes an already soft-deleted user.
func (r *userRepository) PermanentDelete(ctx context.Context, id uint) (bool, error) {
	return r.dao.PermanentDelete(ctx, id)
}

// AddSession inserts a session at the front of the registry.
func (r *userRepository) AddSession(ctx context.Context, id uint, session entity.Session, max int) error {
	return r.dao.PushSession(ctx, id, session, max)
}

// RemoveSession removes one session by its identifier.
func (r *userRepository) RemoveSession(ctx context.Context, id uint, sessionID string) (bool, error) {
	return r.dao.PullSessionByID(ctx, id, sessionID)
}

// RemoveSessionsExceptToken removes every session not carrying the token.
func (r *userRepository) RemoveSessionsExceptToken(ctx context.Context, id uint, token string) (int, error) {
	return r.dao.PullSessionsExceptToken(ctx, id, token)
}

// RemoveExpiredSessions sweeps naturally expired sessions across all users.
func (r *userRepository) RemoveExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return r.dao.RemoveExpiredSessions(ctx, now)
}

// AddActivity prepends an activity entry.
func (r *userRepository) AddActivity(ctx context.Context, id uint, activity entity.Activity, max int) error {
	return r.dao.PushActivity(ctx, id, activity, max)
}

// SetActivities replaces the stored activity log.
func (r *userRepository) SetActivities(ctx context.Context, id uint, activities []entity.Activity) error {
	return r.dao.SetActivities(ctx, id, activities)
}

// CleanupActivitiesBefore removes entries older than cutoff across all users.
func (r *userRepository) CleanupActivitiesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.dao.CleanupActivitiesBefore(ctx, cutoff)
}

// EnforceCollectionCaps trims oversized embedded collections.
func (r *userRepository) EnforceCollectionCaps(ctx context.Context, maxSessions, maxActivities int) (int, error) {
	return r.dao.EnforceCollectionCaps(ctx, maxSessions, maxActivities)
}

// SetAddresses replaces the stored address book.
func (r *userRepository) SetAddresses(ctx context.Context, id uint, addresses []entity.Address) error {
	return r.dao.SetAddresses(ctx, id, addresses)
}

// AddReward appends a reward ledger entry.
func (r *userRepository) AddReward(ctx context.Context, id uint, reward entity.Reward) error {
	return r.dao.PushReward(ctx, id, reward)
}

// ClaimReward flips an unclaimed reward to claimed.
func (r *userRepository) ClaimReward(ctx context.Context, id uint, rewardID string, amount int, now time.Time) (bool, error) {
	return r.dao.ClaimReward(ctx, id, rewardID, amount, now)
}

// CompleteReferralEntry moves a verified referral entry to completed.
func (r *userRepository) CompleteReferralEntry(ctx context.Context, referrerID, referredUserID uint, rewardEarned int, completedAt time.Time) (bool, error) {
	return r.dao.CompleteReferralEntry(ctx, referrerID, referredUserID, rewardEarned, completedAt)
}

// UpdateReferralSettings stores the sharing preferences.
func (r *userRepository) UpdateReferralSettings(ctx context.Context, id uint, settings entity.ReferralSettings) error {
	return r.dao.UpdateReferralSettings(ctx, id, settings)
}

// ApplyReferralSignup atomically links a new signup to its referrer.
func (r *userRepository) ApplyReferralSignup(ctx context.Context, referrerID uint, entry entity.ReferralEntry, referrerReward entity.Reward, newUserID uint, referredBy entity.ReferredBy, signupReward entity.Reward) error {
	return r.dao.ApplyReferralSignup(ctx, referrerID, entry, referrerReward, newUserID, referredBy, signupReward)
}
