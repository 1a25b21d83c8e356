package entity

import (
	"time"
)

// UserRole represents user roles in the system
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAgent UserRole = "AGENT"
	RoleAdmin UserRole = "ADMIN"
)

// Collection caps enforced on every mutation of the user aggregate.
const (
	MaxSessions   = 10
	MaxActivities = 20
)

// SessionLifetime is how long a session stays valid without explicit termination.
const SessionLifetime = 30 * 24 * time.Hour

// User represents a user aggregate: account identity plus the embedded
// session registry, activity log, address book and referral ledger.
type User struct {
	ID            uint             `json:"id"`
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone,omitempty"`
	Password      string           `json:"-"`
	Role          UserRole         `json:"role"`
	LoyaltyPoints int              `json:"loyalty_points"`
	LastLogin     *time.Time       `json:"last_login,omitempty"`
	Sessions      []Session        `json:"-"`
	Activities    []Activity       `json:"-"`
	Addresses     []Address        `json:"addresses,omitempty"`
	Referral      ReferralLedger   `json:"referral"`
	Status        AccountStatus    `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     *time.Time       `json:"-"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsDeleted returns true if the user has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// CanRefer reports whether this account may be the target of a referral code
// lookup: it must be active, not banned and not deleted.
func (u *User) CanRefer() bool {
	return u.Status.IsActive && !u.Status.IsBanned && !u.IsDeleted()
}

// AccountStatus holds the verification/activation flags for an account.
type AccountStatus struct {
	IsVerified bool       `json:"is_verified"`
	IsActive   bool       `json:"is_active"`
	IsBanned   bool       `json:"is_banned"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	BannedAt   *time.Time `json:"banned_at,omitempty"`
}

// Session is a live refresh-token credential bound to a user and device.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"-"`
	Device    string    `json:"device"`
	Location  string    `json:"location,omitempty"`
	IP        string    `json:"ip,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session has passed its natural expiry.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// ActivityStatus classifies the outcome of a logged event.
type ActivityStatus string

const (
	ActivityStatusSuccess ActivityStatus = "success"
	ActivityStatusWarning ActivityStatus = "warning"
	ActivityStatusFailed  ActivityStatus = "failed"
)

// Well-known activity types. The log accepts arbitrary types; these are the
// ones the summary operation counts explicitly.
const (
	ActivityLogin          = "login"
	ActivityLogout         = "logout"
	ActivityPasswordChange = "password_change"
	ActivityProfileUpdate  = "profile_update"
	ActivityAddressChange  = "address_change"
	ActivitySessionRevoked = "session_revoked"
	ActivityRewardClaimed  = "reward_claimed"
)

// Activity is one audit-log entry describing a security-relevant event.
type Activity struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Status      ActivityStatus `json:"status"`
	IP          string         `json:"ip,omitempty"`
	UserAgent   string         `json:"user_agent,omitempty"`
	Device      string         `json:"device,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Address is a delivery address sub-document with its own soft-delete flag.
type Address struct {
	Label      string     `json:"label,omitempty"`
	Street     string     `json:"street"`
	City       string     `json:"city"`
	State      string     `json:"state,omitempty"`
	PostalCode string     `json:"postal_code"`
	Country    string     `json:"country"`
	IsDefault  bool       `json:"is_default"`
	IsDeleted  bool       `json:"-"`
	DeletedAt  *time.Time `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ActiveAddresses returns the non-deleted addresses in insertion order.
// Callers address entries by index into this slice, not into storage.
func (u *User) ActiveAddresses() []Address {
	active := make([]Address, 0, len(u.Addresses))
	for _, a := range u.Addresses {
		if !a.IsDeleted {
			active = append(active, a)
		}
	}
	return active
}

// StorageIndexOfActive maps a caller-visible active-address index to the
// position of that address in the underlying Addresses slice. Returns -1
// when the active index is out of range.
func (u *User) StorageIndexOfActive(activeIdx int) int {
	if activeIdx < 0 {
		return -1
	}
	seen := 0
	for i, a := range u.Addresses {
		if a.IsDeleted {
			continue
		}
		if seen == activeIdx {
			return i
		}
		seen++
	}
	return -1
}
