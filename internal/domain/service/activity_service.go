package service

import (
	"context"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/dto/response"
)

// ActivityService defines the interface for the per-user activity log
type ActivityService interface {
	// Record appends an activity entry. It is fire-and-forget: persistence
	// failures are logged, never surfaced, so audit logging cannot break the
	// operation being audited.
	Record(ctx context.Context, userID uint, activity entity.Activity)

	// Query returns activity entries newest first, optionally filtered by
	// type and status. A filterless first-page query on an empty log
	// synthesizes and persists a bootstrap entry so the log is never empty
	// for an account that has logged in.
	Query(ctx context.Context, userID uint, typeFilter, statusFilter string, page, size int) (*response.PagedResponse[response.ActivityResponse], error)

	// Summary aggregates the log over the trailing number of days
	Summary(ctx context.Context, userID uint, days int) (*response.ActivitySummaryResponse, error)

	// CleanupOld removes entries older than the retention window across all
	// users and returns the number removed. Run from the scheduler.
	CleanupOld(ctx context.Context, retentionDays int) (int64, error)

	// EnforceCaps repairs users whose embedded collections exceed the caps
	// and returns the number repaired. Run from the scheduler.
	EnforceCaps(ctx context.Context) (int, error)
}
