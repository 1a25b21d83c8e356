package impl

import (
	"context"
	"fmt"
	"time"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/repository"
	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/response"
	"github.com/savora/savora-cloud-go/internal/security"
)

// sessionService implements service.SessionService
type sessionService struct {
	userRepo        repository.UserRepository
	activityService service.ActivityService
	notifier        service.SecurityNotifier
}

// NewSessionService creates a new SessionService instance
func NewSessionService(
	userRepo repository.UserRepository,
	activityService service.ActivityService,
	notifier service.SecurityNotifier,
) service.SessionService {
	return &sessionService{
		userRepo:        userRepo,
		activityService: activityService,
		notifier:        notifier,
	}
}

func (s *sessionService) List(ctx context.Context, userID uint) ([]response.SessionResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}

	// Documents written before the cap repair job runs can hold more than
	// the registry allows; the listing never shows the overflow.
	sessions := user.Sessions
	if len(sessions) > entity.MaxSessions {
		sessions = sessions[:entity.MaxSessions]
	}

	now := time.Now()
	items := make([]response.SessionResponse, len(sessions))
	for i, sess := range sessions {
		items[i] = response.SessionResponse{
			ID:         sess.ID,
			Token:      security.MaskToken(sess.Token),
			Device:     sess.Device,
			Location:   sess.Location,
			IP:         sess.IP,
			Current:    i == 0,
			LastActive: relativeTime(sess.CreatedAt, now),
			CreatedAt:  sess.CreatedAt,
			ExpiresAt:  sess.ExpiresAt,
		}
	}
	return items, nil
}

func (s *sessionService) Terminate(ctx context.Context, userID uint, sessionID string) error {
	ok, err := s.userRepo.RemoveSession(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return service.ErrSessionNotFound
	}

	s.activityService.Record(ctx, userID, entity.Activity{
		Type:        entity.ActivitySessionRevoked,
		Description: "Session terminated",
		Status:      entity.ActivityStatusSuccess,
	})
	s.notifier.Publish(userID, entity.ActivitySessionRevoked, "A session was terminated")
	return nil
}

func (s *sessionService) TerminateOthers(ctx context.Context, userID uint, currentToken string) (*response.SessionTerminationResponse, error) {
	removed, err := s.userRepo.RemoveSessionsExceptToken(ctx, userID, currentToken)
	if err != nil {
		return nil, err
	}

	if removed > 0 {
		s.activityService.Record(ctx, userID, entity.Activity{
			Type:        entity.ActivitySessionRevoked,
			Description: fmt.Sprintf("Terminated %d other sessions", removed),
			Status:      entity.ActivityStatusSuccess,
		})
		s.notifier.Publish(userID, entity.ActivitySessionRevoked, "Other sessions were terminated")
	}

	return &response.SessionTerminationResponse{Removed: removed}, nil
}

func (s *sessionService) SweepExpired(ctx context.Context) (int64, error) {
	return s.userRepo.RemoveExpiredSessions(ctx, time.Now())
}

// relativeTime renders a timestamp as a coarse recency string for session
// listings.
func relativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}
