// Package document defines MongoDB document structs for persistence.
// These structs are separate from domain entities so that storage layout
// (field names, embedded array shapes) can evolve without touching the
// domain layer.
package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserDocument represents a user aggregate in MongoDB. Sessions, activities,
// addresses and the referral ledger are embedded arrays/sub-documents.
type UserDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	NumericID     uint               `bson:"numeric_id"`
	FirstName     string             `bson:"first_name"`
	LastName      string             `bson:"last_name,omitempty"`
	Email         string             `bson:"email"`
	Phone         string             `bson:"phone,omitempty"`
	Password      string             `bson:"password"`
	Role          string             `bson:"role"`
	LoyaltyPoints int                `bson:"loyalty_points"`
	LastLogin     *time.Time         `bson:"last_login,omitempty"`
	Sessions      []SessionDocument  `bson:"sessions,omitempty"`
	Activities    []ActivityDocument `bson:"activities,omitempty"`
	Addresses     []AddressDocument  `bson:"addresses,omitempty"`
	Referral      ReferralDocument   `bson:"referral"`
	Status        StatusDocument     `bson:"status"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
	DeletedAt     *time.Time         `bson:"deleted_at,omitempty"`
}

// CollectionName returns the MongoDB collection name for users.
func (UserDocument) CollectionName() string {
	return "users"
}

// IsDeleted returns true if the document has been soft-deleted.
func (d *UserDocument) IsDeleted() bool {
	return d.DeletedAt != nil
}

// SessionDocument is one entry of the embedded session registry.
type SessionDocument struct {
	SessionID string    `bson:"session_id"`
	Token     string    `bson:"token"`
	Device    string    `bson:"device,omitempty"`
	Location  string    `bson:"location,omitempty"`
	IP        string    `bson:"ip,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// ActivityDocument is one entry of the embedded activity log.
type ActivityDocument struct {
	ActivityID  string    `bson:"activity_id"`
	Type        string    `bson:"type"`
	Description string    `bson:"description,omitempty"`
	Status      string    `bson:"status"`
	IP          string    `bson:"ip,omitempty"`
	UserAgent   string    `bson:"user_agent,omitempty"`
	Device      string    `bson:"device,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
}

// AddressDocument is one entry of the embedded address book with its own
// soft-delete flag.
type AddressDocument struct {
	Label      string     `bson:"label,omitempty"`
	Street     string     `bson:"street"`
	City       string     `bson:"city"`
	State      string     `bson:"state,omitempty"`
	PostalCode string     `bson:"postal_code"`
	Country    string     `bson:"country"`
	IsDefault  bool       `bson:"is_default"`
	IsDeleted  bool       `bson:"is_deleted"`
	DeletedAt  *time.Time `bson:"deleted_at,omitempty"`
	CreatedAt  time.Time  `bson:"created_at"`
}

// ReferralDocument is the embedded referral ledger.
type ReferralDocument struct {
	Code        string                   `bson:"code"`
	EncryptedID string                   `bson:"encrypted_id"`
	ReferredBy  *ReferredByDocument      `bson:"referred_by,omitempty"`
	Referrals   []ReferralEntryDocument  `bson:"referrals,omitempty"`
	Rewards     []RewardDocument         `bson:"rewards,omitempty"`
	Stats       ReferralStatsDocument    `bson:"stats"`
	Settings    ReferralSettingsDocument `bson:"settings"`
}

// ReferredByDocument is the backlink to the referrer.
type ReferredByDocument struct {
	UserID       uint      `bson:"user_id"`
	Code         string    `bson:"code"`
	BonusClaimed bool      `bson:"bonus_claimed"`
	ReferredAt   time.Time `bson:"referred_at"`
}

// ReferralEntryDocument records one referred user.
type ReferralEntryDocument struct {
	UserID       uint       `bson:"user_id"`
	Name         string     `bson:"name,omitempty"`
	Status       string     `bson:"status"`
	RewardEarned int        `bson:"reward_earned"`
	CreatedAt    time.Time  `bson:"created_at"`
	CompletedAt  *time.Time `bson:"completed_at,omitempty"`
}

// RewardDocument is one claimable reward ledger entry.
type RewardDocument struct {
	RewardID  string     `bson:"reward_id"`
	Type      string     `bson:"type"`
	Amount    int        `bson:"amount"`
	Claimed   bool       `bson:"claimed"`
	ClaimedAt *time.Time `bson:"claimed_at,omitempty"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
	CreatedAt time.Time  `bson:"created_at"`
}

// ReferralStatsDocument holds the denormalized referral counters.
type ReferralStatsDocument struct {
	TotalReferrals      int `bson:"total_referrals"`
	CompletedReferrals  int `bson:"completed_referrals"`
	TotalRewardsEarned  int `bson:"total_rewards_earned"`
	TotalRewardsClaimed int `bson:"total_rewards_claimed"`
}

// ReferralSettingsDocument holds sharing preferences.
type ReferralSettingsDocument struct {
	NotifyOnReferral bool `bson:"notify_on_referral"`
	AllowSharing     bool `bson:"allow_sharing"`
}

// StatusDocument holds the account status flags.
type StatusDocument struct {
	IsVerified bool       `bson:"is_verified"`
	IsActive   bool       `bson:"is_active"`
	IsBanned   bool       `bson:"is_banned"`
	VerifiedAt *time.Time `bson:"verified_at,omitempty"`
	BannedAt   *time.Time `bson:"banned_at,omitempty"`
}
