// Package cache provides Redis-backed short-lived state: OTP codes for the
// password reset flow.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrOTPNotFound is returned when no code is stored or it has expired.
	ErrOTPNotFound = errors.New("otp not found")
	// ErrTooManyAttempts is returned once the verification attempt budget
	// is spent. The code is deleted at that point.
	ErrTooManyAttempts = errors.New("too many otp attempts")
)

const (
	otpKeyPrefix = "otp"

	fieldCode     = "code"
	fieldAttempts = "attempts"

	// MaxOTPAttempts bounds brute-force guessing of a six-digit code.
	MaxOTPAttempts = 5
)

// OTPStore keeps one-time codes in Redis hashes with a TTL. Expiry is
// enforced by Redis itself, so restarts cannot resurrect stale codes.
type OTPStore struct {
	client *redis.Client
}

// NewOTPStore creates a new OTPStore instance.
func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

func (s *OTPStore) key(purpose, identifier string) string {
	return fmt.Sprintf("%s:%s:%s", otpKeyPrefix, purpose, identifier)
}

// Store persists a code under purpose/identifier for the given TTL,
// replacing any previous code.
func (s *OTPStore) Store(ctx context.Context, purpose, identifier, code string, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("ttl must be positive")
	}
	key := s.key(purpose, identifier)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]any{
		fieldCode:     code,
		fieldAttempts: "0",
	})
	pipe.Expire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis store otp: %w", err)
	}
	return nil
}

// Verify checks the submitted code. A match consumes the stored code so it
// cannot be replayed; a mismatch burns one attempt.
func (s *OTPStore) Verify(ctx context.Context, purpose, identifier, code string) error {
	key := s.key(purpose, identifier)

	values, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("redis fetch otp: %w", err)
	}
	if len(values) == 0 || values[fieldCode] == "" {
		return ErrOTPNotFound
	}

	attempts, _ := strconv.Atoi(values[fieldAttempts])
	if attempts >= MaxOTPAttempts {
		_ = s.client.Del(ctx, key).Err()
		return ErrTooManyAttempts
	}

	if values[fieldCode] != code {
		count, err := s.client.HIncrBy(ctx, key, fieldAttempts, 1).Result()
		if err != nil {
			return fmt.Errorf("redis bump otp attempts: %w", err)
		}
		if count >= MaxOTPAttempts {
			_ = s.client.Del(ctx, key).Err()
			return ErrTooManyAttempts
		}
		return ErrOTPNotFound
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis consume otp: %w", err)
	}
	return nil
}

// Delete removes a stored code without verifying it.
func (s *OTPStore) Delete(ctx context.Context, purpose, identifier string) error {
	return s.client.Del(ctx, s.key(purpose, identifier)).Err()
}
