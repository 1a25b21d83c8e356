package request

// ValidateReferralCodeRequest checks whether a code can still be used.
type ValidateReferralCodeRequest struct {
	Code string `json:"code" binding:"required,max=20"`
}

// ClaimRewardRequest claims one reward ledger entry.
type ClaimRewardRequest struct {
	RewardID string `json:"reward_id" binding:"required"`
}

// ReferralSettingsRequest updates the sharing preferences.
type ReferralSettingsRequest struct {
	NotifyOnReferral *bool `json:"notify_on_referral,omitempty"`
	AllowSharing     *bool `json:"allow_sharing,omitempty"`
}
