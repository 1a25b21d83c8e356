package response

import (
	"time"
)

// UserResponse represents a user in responses. The password hash and raw
// session tokens never appear here.
type UserResponse struct {
	ID            uint       `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name,omitempty"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	Role          string     `json:"role"`
	LoyaltyPoints int        `json:"loyalty_points"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	IsVerified    bool       `json:"is_verified"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// SessionResponse represents one active session. Token carries only a
// masked suffix so the listing cannot be replayed.
type SessionResponse struct {
	ID         string    `json:"id"`
	Token      string    `json:"token"`
	Device     string    `json:"device,omitempty"`
	Location   string    `json:"location,omitempty"`
	IP         string    `json:"ip,omitempty"`
	Current    bool      `json:"current"`
	LastActive string    `json:"last_active"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// SessionTerminationResponse reports how many sessions a bulk termination
// removed.
type SessionTerminationResponse struct {
	Removed int `json:"removed"`
}

// ActivityResponse represents one activity log entry.
type ActivityResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	IP          string    `json:"ip,omitempty"`
	Device      string    `json:"device,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActivityTypeCount is one entry of the most-frequent-types ranking.
type ActivityTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// ActivitySummaryResponse aggregates the activity log over a trailing
// window of days.
type ActivitySummaryResponse struct {
	Days            int                 `json:"days"`
	Total           int                 `json:"total"`
	Logins          int                 `json:"logins"`
	PasswordChanges int                 `json:"password_changes"`
	Warnings        int                 `json:"warnings"`
	TopTypes        []ActivityTypeCount `json:"top_types"`
	LastActivity    *time.Time          `json:"last_activity,omitempty"`
}

// AddressResponse represents one delivery address. Index is the position
// among active addresses, which is what update and delete operations accept.
type AddressResponse struct {
	Index      int       `json:"index"`
	Label      string    `json:"label,omitempty"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state,omitempty"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}

// BulkOperationResponse reports the number of documents a bulk lifecycle
// operation actually transitioned.
type BulkOperationResponse struct {
	Requested int   `json:"requested"`
	Affected  int64 `json:"affected"`
}
