package service

import (
	"context"

	"github.com/savora/savora-cloud-go/internal/dto/response"
)

// SessionService defines the interface for session registry operations
type SessionService interface {
	// List returns the user's sessions newest first. Tokens are masked; the
	// entry at index 0 is reported as current, which matches the front-insert
	// ordering of the registry.
	List(ctx context.Context, userID uint) ([]response.SessionResponse, error)

	// Terminate removes one session by its identifier
	Terminate(ctx context.Context, userID uint, sessionID string) error

	// TerminateOthers removes every session except the one carrying
	// currentToken and returns how many were removed. When no session
	// carries the token, every session is removed.
	TerminateOthers(ctx context.Context, userID uint, currentToken string) (*response.SessionTerminationResponse, error)

	// SweepExpired removes naturally expired sessions across all users and
	// returns the number of users affected. Run from the scheduler.
	SweepExpired(ctx context.Context) (int64, error)
}
