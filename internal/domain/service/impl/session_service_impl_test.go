package impl

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/testutil/mocks"
)

func setupSessionService(t *testing.T) (service.SessionService, *mocks.MockUserRepository, *mocks.MockSecurityNotifier) {
	t.Helper()
	userRepo := mocks.NewMockUserRepository()
	notifier := mocks.NewMockSecurityNotifier()
	activitySvc := NewActivityService(userRepo, zap.NewNop())
	return NewSessionService(userRepo, activitySvc, notifier), userRepo, notifier
}

func seedSessionUser(repo *mocks.MockUserRepository, sessions ...entity.Session) *entity.User {
	user := &entity.User{
		FirstName: "Sess",
		Email:     "sess@example.com",
		Status:    entity.AccountStatus{IsActive: true},
		Sessions:  sessions,
	}
	repo.AddUser(user)
	return user
}

func TestSessionService_List_MasksTokens(t *testing.T) {
	sessions, repo, _ := setupSessionService(t)
	now := time.Now()
	user := seedSessionUser(repo,
		entity.Session{ID: "s1", Token: "secret-token-abcd", Device: "Mac", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
		entity.Session{ID: "s2", Token: "secret-token-wxyz", Device: "Phone", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(time.Hour)},
	)

	items, err := sessions.List(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("List() = %d sessions, want 2", len(items))
	}
	if items[0].Token != "...abcd" {
		t.Errorf("masked token = %q, want ...abcd", items[0].Token)
	}
	if !items[0].Current || items[1].Current {
		t.Error("only the front session should be current")
	}
	if items[0].LastActive != "just now" {
		t.Errorf("LastActive = %q, want just now", items[0].LastActive)
	}
	if items[1].LastActive != "2 hours ago" {
		t.Errorf("LastActive = %q, want 2 hours ago", items[1].LastActive)
	}
}

// Documents that predate the cap repair job can hold more sessions than
// the registry allows; the listing must not expose the overflow.
func TestSessionService_List_CapsOversizedRegistry(t *testing.T) {
	sessions, repo, _ := setupSessionService(t)
	now := time.Now()

	oversized := make([]entity.Session, entity.MaxSessions+2)
	for i := range oversized {
		oversized[i] = entity.Session{
			ID:        fmt.Sprintf("s%d", i),
			Token:     fmt.Sprintf("token-%d", i),
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
			ExpiresAt: now.Add(time.Hour),
		}
	}
	user := seedSessionUser(repo, oversized...)

	items, err := sessions.List(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != entity.MaxSessions {
		t.Errorf("List() = %d sessions, want capped at %d", len(items), entity.MaxSessions)
	}
	if items[0].ID != "s0" {
		t.Errorf("first session = %q, want the newest (s0)", items[0].ID)
	}
}

func TestSessionService_Terminate(t *testing.T) {
	sessions, repo, notifier := setupSessionService(t)
	now := time.Now()
	user := seedSessionUser(repo,
		entity.Session{ID: "s1", Token: "t1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
	)

	if err := sessions.Terminate(context.Background(), user.ID, "nope"); !errors.Is(err, service.ErrSessionNotFound) {
		t.Fatalf("Terminate() unknown id error = %v, want ErrSessionNotFound", err)
	}

	if err := sessions.Terminate(context.Background(), user.ID, "s1"); err != nil {
		t.Fatalf("Terminate() error = %v", err)
	}
	if len(user.Sessions) != 0 {
		t.Errorf("sessions = %d, want 0", len(user.Sessions))
	}
	if len(notifier.Published()) != 1 {
		t.Errorf("published = %d events, want 1", len(notifier.Published()))
	}
}

func TestSessionService_TerminateOthers(t *testing.T) {
	sessions, repo, notifier := setupSessionService(t)
	now := time.Now()
	user := seedSessionUser(repo,
		entity.Session{ID: "s1", Token: "keep", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
		entity.Session{ID: "s2", Token: "kill-1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
		entity.Session{ID: "s3", Token: "kill-2", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
	)

	resp, err := sessions.TerminateOthers(context.Background(), user.ID, "keep")
	if err != nil {
		t.Fatalf("TerminateOthers() error = %v", err)
	}
	if resp.Removed != 2 {
		t.Errorf("Removed = %d, want 2", resp.Removed)
	}
	if len(user.Sessions) != 1 || user.Sessions[0].Token != "keep" {
		t.Errorf("remaining sessions = %+v, want only keep", user.Sessions)
	}
	if len(notifier.Published()) != 1 {
		t.Errorf("published = %d events, want 1", len(notifier.Published()))
	}
}

// A token the registry does not hold matches nothing, so everything goes.
func TestSessionService_TerminateOthers_UnknownTokenRemovesAll(t *testing.T) {
	sessions, repo, _ := setupSessionService(t)
	now := time.Now()
	user := seedSessionUser(repo,
		entity.Session{ID: "s1", Token: "t1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
		entity.Session{ID: "s2", Token: "t2", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
	)

	resp, err := sessions.TerminateOthers(context.Background(), user.ID, "unknown")
	if err != nil {
		t.Fatalf("TerminateOthers() error = %v", err)
	}
	if resp.Removed != 2 {
		t.Errorf("Removed = %d, want 2", resp.Removed)
	}
	if len(user.Sessions) != 0 {
		t.Errorf("sessions = %d, want 0", len(user.Sessions))
	}
}

func TestSessionService_SweepExpired(t *testing.T) {
	sessions, repo, _ := setupSessionService(t)
	now := time.Now()
	user := seedSessionUser(repo,
		entity.Session{ID: "live", Token: "t1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
		entity.Session{ID: "dead", Token: "t2", CreatedAt: now.Add(-48 * time.Hour), ExpiresAt: now.Add(-time.Hour)},
	)

	touched, err := sessions.SweepExpired(context.Background())
	if err != nil {
		t.Fatalf("SweepExpired() error = %v", err)
	}
	if touched != 1 {
		t.Errorf("touched = %d users, want 1", touched)
	}
	if len(user.Sessions) != 1 || user.Sessions[0].ID != "live" {
		t.Errorf("sessions = %+v, want only live", user.Sessions)
	}
}
