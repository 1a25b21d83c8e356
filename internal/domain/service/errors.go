// Package service defines the business-logic interfaces and their sentinel
// errors. Implementations live in the impl subpackage.
package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrUserBanned         = errors.New("user account is banned")

	ErrSessionNotFound = errors.New("session not found")
	ErrAddressNotFound = errors.New("address not found")

	ErrReferralCodeInvalid   = errors.New("referral code is invalid")
	ErrSelfReferral          = errors.New("users cannot refer themselves")
	ErrRewardNotFound        = errors.New("reward not found")
	ErrRewardAlreadyClaimed  = errors.New("reward already claimed")
	ErrRewardExpired         = errors.New("reward has expired")
	ErrReferralEntryNotFound = errors.New("referral entry not found")

	ErrContactNotFound         = errors.New("contact request not found")
	ErrApplicationNotFound     = errors.New("application not found")
	ErrMenuItemNotFound        = errors.New("menu item not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrNotSoftDeleted is returned when a permanent delete targets a record
	// that has not been soft-deleted first.
	ErrNotSoftDeleted = errors.New("record is not soft-deleted")

	ErrOTPInvalid = errors.New("invalid or expired code")
)
