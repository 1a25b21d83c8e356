package entity

import (
	"time"
)

// Fixed reward amounts and expiries for the referral program.
const (
	SignupBonusAmount     = 25
	ReferralBonusAmount   = 50
	FirstOrderBonusAmount = 50

	SignupBonusExpiry   = 30 * 24 * time.Hour
	ReferralBonusExpiry = 90 * 24 * time.Hour
)

// ReferralStatus is the per-referral state machine:
// pending -> verified -> completed.
type ReferralStatus string

const (
	ReferralPending   ReferralStatus = "pending"
	ReferralVerified  ReferralStatus = "verified"
	ReferralCompleted ReferralStatus = "completed"
)

// RewardType identifies the event that produced a reward.
type RewardType string

const (
	RewardSignupBonus     RewardType = "signup_bonus"
	RewardReferralBonus   RewardType = "referral_bonus"
	RewardFirstOrderBonus RewardType = "first_order_bonus"
)

// ReferralLedger aggregates a user's referral relationships, rewards and
// denormalized statistics.
type ReferralLedger struct {
	Code        string           `json:"code"`
	EncryptedID string           `json:"-"`
	ReferredBy  *ReferredBy      `json:"referred_by,omitempty"`
	Referrals   []ReferralEntry  `json:"referrals,omitempty"`
	Rewards     []Reward         `json:"rewards,omitempty"`
	Stats       ReferralStats    `json:"stats"`
	Settings    ReferralSettings `json:"settings"`
}

// ReferredBy is the backlink from a referred user to their referrer.
type ReferredBy struct {
	UserID       uint      `json:"user_id"`
	Code         string    `json:"code"`
	BonusClaimed bool      `json:"bonus_claimed"`
	ReferredAt   time.Time `json:"referred_at"`
}

// ReferralEntry records one person this user referred.
type ReferralEntry struct {
	UserID       uint           `json:"user_id"`
	Name         string         `json:"name"`
	Status       ReferralStatus `json:"status"`
	RewardEarned int            `json:"reward_earned"`
	CreatedAt    time.Time      `json:"created_at"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
}

// CanTransition reports whether the entry may move to the given status.
func (e *ReferralEntry) CanTransition(to ReferralStatus) bool {
	switch e.Status {
	case ReferralPending:
		return to == ReferralVerified
	case ReferralVerified:
		return to == ReferralCompleted
	default:
		return false
	}
}

// Reward is a claimable credit entry. Rewards are independent ledger entries
// and are not one-to-one with referrals.
type Reward struct {
	ID        string     `json:"id"`
	Type      RewardType `json:"type"`
	Amount    int        `json:"amount"`
	Claimed   bool       `json:"claimed"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsExpired reports whether the reward can no longer be claimed because its
// expiry has passed. Rewards without an expiry never expire.
func (r *Reward) IsExpired(now time.Time) bool {
	return r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}

// ReferralStats holds denormalized counters kept in sync by the ledger
// operations.
type ReferralStats struct {
	TotalReferrals      int `json:"total_referrals"`
	CompletedReferrals  int `json:"completed_referrals"`
	TotalRewardsEarned  int `json:"total_rewards_earned"`
	TotalRewardsClaimed int `json:"total_rewards_claimed"`
}

// ReferralSettings holds per-user sharing and notification preferences.
type ReferralSettings struct {
	NotifyOnReferral bool `json:"notify_on_referral"`
	AllowSharing     bool `json:"allow_sharing"`
}
