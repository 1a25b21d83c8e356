package response

import "time"

// ReferralOverviewResponse is the full referral dashboard for a user.
type ReferralOverviewResponse struct {
	Code      string                   `json:"code"`
	ShareURL  string                   `json:"share_url"`
	Referrals []ReferralEntryResponse  `json:"referrals"`
	Rewards   []RewardResponse         `json:"rewards"`
	Stats     ReferralStatsResponse    `json:"stats"`
	Settings  ReferralSettingsResponse `json:"settings"`
}

// ReferralEntryResponse represents one referred user.
type ReferralEntryResponse struct {
	UserID       uint       `json:"user_id"`
	Name         string     `json:"name,omitempty"`
	Status       string     `json:"status"`
	RewardEarned int        `json:"reward_earned"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// RewardResponse represents one claimable reward ledger entry.
type RewardResponse struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Amount    int        `json:"amount"`
	Claimed   bool       `json:"claimed"`
	Expired   bool       `json:"expired"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ReferralStatsResponse carries the denormalized referral counters.
type ReferralStatsResponse struct {
	TotalReferrals      int `json:"total_referrals"`
	CompletedReferrals  int `json:"completed_referrals"`
	TotalRewardsEarned  int `json:"total_rewards_earned"`
	TotalRewardsClaimed int `json:"total_rewards_claimed"`
}

// ReferralSettingsResponse carries the sharing preferences.
type ReferralSettingsResponse struct {
	NotifyOnReferral bool `json:"notify_on_referral"`
	AllowSharing     bool `json:"allow_sharing"`
}

// ValidateCodeResponse reports whether a referral code can be used and, when
// valid, the first name of its owner and the signup bonus on offer.
type ValidateCodeResponse struct {
	Valid        bool   `json:"valid"`
	ReferrerName string `json:"referrer_name,omitempty"`
	BonusAmount  int    `json:"bonus_amount,omitempty"`
}

// ClaimRewardResponse reports the credited amount and new loyalty balance.
type ClaimRewardResponse struct {
	RewardID      string `json:"reward_id"`
	Amount        int    `json:"amount"`
	LoyaltyPoints int    `json:"loyalty_points"`
}
