package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/testutil/mocks"
)

func setupContactService(t *testing.T) (service.ContactService, *mocks.MockContactRepository) {
	t.Helper()
	repo := mocks.NewMockContactRepository()
	return NewContactService(repo), repo
}

func submitContact(t *testing.T, contacts service.ContactService) uint {
	t.Helper()
	resp, err := contacts.Submit(context.Background(), &request.ContactRequest{
		Name:    "Casey",
		Email:   "casey@example.com",
		Subject: "Cold food",
		Message: "My order arrived cold.",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	return resp.ID
}

func TestContactService_Submit_StartsPending(t *testing.T) {
	contacts, _ := setupContactService(t)
	resp, err := contacts.Submit(context.Background(), &request.ContactRequest{
		Name:    "Casey",
		Email:   "casey@example.com",
		Subject: "Hello",
		Message: "Hi",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if resp.Status != string(entity.ContactPending) {
		t.Errorf("Status = %v, want pending", resp.Status)
	}
	if resp.ID == 0 {
		t.Error("Submit() did not assign an id")
	}
}

func TestContactService_UpdateStatus_Workflow(t *testing.T) {
	contacts, _ := setupContactService(t)
	ctx := context.Background()
	id := submitContact(t, contacts)

	resp, err := contacts.UpdateStatus(ctx, id, &request.UpdateContactStatusRequest{
		Status:     "in-progress",
		AssignedTo: "support-team",
	})
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if resp.Status != "in-progress" || resp.AssignedTo != "support-team" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.ResolvedAt != nil {
		t.Error("ResolvedAt stamped before resolution")
	}

	resp, err = contacts.UpdateStatus(ctx, id, &request.UpdateContactStatusRequest{
		Status:        "resolved",
		ResponseNotes: "Refund issued",
	})
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if resp.ResolvedAt == nil {
		t.Error("ResolvedAt not stamped on resolution")
	}

	// Going backwards is not allowed.
	_, err = contacts.UpdateStatus(ctx, id, &request.UpdateContactStatusRequest{Status: "pending"})
	if !errors.Is(err, service.ErrInvalidStatusTransition) {
		t.Errorf("UpdateStatus() backwards error = %v, want ErrInvalidStatusTransition", err)
	}

	resp, err = contacts.UpdateStatus(ctx, id, &request.UpdateContactStatusRequest{Status: "closed"})
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if resp.Status != "closed" {
		t.Errorf("Status = %v, want closed", resp.Status)
	}

	// Closed is terminal.
	_, err = contacts.UpdateStatus(ctx, id, &request.UpdateContactStatusRequest{Status: "resolved"})
	if !errors.Is(err, service.ErrInvalidStatusTransition) {
		t.Errorf("UpdateStatus() from closed error = %v, want ErrInvalidStatusTransition", err)
	}
}

func TestContactService_UpdateStatus_ResolvedAtNotRestamped(t *testing.T) {
	contacts, repo := setupContactService(t)
	ctx := context.Background()
	id := submitContact(t, contacts)

	if _, err := contacts.UpdateStatus(ctx, id, &request.UpdateContactStatusRequest{Status: "resolved"}); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	contact, _ := repo.GetByID(ctx, id)
	first := *contact.ResolvedAt

	time.Sleep(5 * time.Millisecond)
	if _, err := contacts.UpdateStatus(ctx, id, &request.UpdateContactStatusRequest{
		Status:        "resolved",
		ResponseNotes: "extra notes",
	}); err != nil {
		t.Fatalf("UpdateStatus() same status error = %v", err)
	}
	if !contact.ResolvedAt.Equal(first) {
		t.Error("ResolvedAt was restamped by a later touch")
	}
}

func TestContactService_List_FiltersByStatus(t *testing.T) {
	contacts, _ := setupContactService(t)
	ctx := context.Background()
	id := submitContact(t, contacts)
	submitContact(t, contacts)

	if _, err := contacts.UpdateStatus(ctx, id, &request.UpdateContactStatusRequest{Status: "resolved"}); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	page, err := contacts.List(ctx, 1, 10, "pending")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Items) != 1 {
		t.Errorf("pending = %d, want 1", len(page.Items))
	}

	page, err = contacts.List(ctx, 1, 10, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Items) != 2 {
		t.Errorf("all = %d, want 2", len(page.Items))
	}
}

func TestContactService_Lifecycle(t *testing.T) {
	contacts, _ := setupContactService(t)
	ctx := context.Background()
	id := submitContact(t, contacts)

	if err := contacts.PermanentDelete(ctx, id); !errors.Is(err, service.ErrNotSoftDeleted) {
		t.Fatalf("PermanentDelete() on live error = %v, want ErrNotSoftDeleted", err)
	}

	if err := contacts.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := contacts.GetByID(ctx, id); !errors.Is(err, service.ErrContactNotFound) {
		t.Error("soft-deleted contact still visible")
	}
	if err := contacts.Restore(ctx, id); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if err := contacts.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := contacts.PermanentDelete(ctx, id); err != nil {
		t.Fatalf("PermanentDelete() error = %v", err)
	}
	if err := contacts.Restore(ctx, id); !errors.Is(err, service.ErrContactNotFound) {
		t.Errorf("Restore() after purge error = %v, want ErrContactNotFound", err)
	}
}

func TestContactService_BulkOperations(t *testing.T) {
	contacts, _ := setupContactService(t)
	ctx := context.Background()
	a := submitContact(t, contacts)
	b := submitContact(t, contacts)

	// One id does not exist; the response reports actual transitions.
	resp, err := contacts.BulkDelete(ctx, []uint{a, b, 999})
	if err != nil {
		t.Fatalf("BulkDelete() error = %v", err)
	}
	if resp.Requested != 3 || resp.Affected != 2 {
		t.Errorf("BulkDelete() = %+v, want requested 3 affected 2", resp)
	}

	resp, err = contacts.BulkRestore(ctx, []uint{a, b, 999})
	if err != nil {
		t.Fatalf("BulkRestore() error = %v", err)
	}
	if resp.Affected != 2 {
		t.Errorf("BulkRestore() affected = %d, want 2", resp.Affected)
	}

	// Restoring already-live documents transitions nothing.
	resp, err = contacts.BulkRestore(ctx, []uint{a, b})
	if err != nil {
		t.Fatalf("BulkRestore() error = %v", err)
	}
	if resp.Affected != 0 {
		t.Errorf("BulkRestore() repeat affected = %d, want 0", resp.Affected)
	}
}

func setupApplicationService(t *testing.T) (service.ApplicationService, *mocks.MockApplicationRepository) {
	t.Helper()
	repo := mocks.NewMockApplicationRepository()
	return NewApplicationService(repo), repo
}

func TestApplicationService_SubmitAndReview(t *testing.T) {
	apps, _ := setupApplicationService(t)
	ctx := context.Background()

	resp, err := apps.Submit(ctx, &request.ApplicationRequest{
		Kind:     "job",
		Name:     "Jordan",
		Email:    "jordan@example.com",
		Position: "Line Cook",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if resp.Reviewed || resp.Shortlisted {
		t.Error("new application must start unreviewed")
	}

	yes := true
	resp, err = apps.Review(ctx, resp.ID, &request.ReviewApplicationRequest{Shortlisted: &yes})
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}
	if !resp.Shortlisted {
		t.Error("Shortlisted not set")
	}
	if !resp.Reviewed {
		t.Error("shortlisting should imply reviewed")
	}

	_, err = apps.Review(ctx, 999, &request.ReviewApplicationRequest{Shortlisted: &yes})
	if !errors.Is(err, service.ErrApplicationNotFound) {
		t.Errorf("Review() unknown id error = %v, want ErrApplicationNotFound", err)
	}
}

func TestApplicationService_List_FiltersByKind(t *testing.T) {
	apps, _ := setupApplicationService(t)
	ctx := context.Background()

	for _, kind := range []string{"job", "job", "intern"} {
		if _, err := apps.Submit(ctx, &request.ApplicationRequest{
			Kind: kind, Name: "A", Email: "a@example.com", Position: "P",
		}); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}

	page, err := apps.List(ctx, 1, 10, entity.ApplicationJob)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Items) != 2 {
		t.Errorf("jobs = %d, want 2", len(page.Items))
	}

	page, err = apps.List(ctx, 1, 10, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Items) != 3 {
		t.Errorf("all = %d, want 3", len(page.Items))
	}
}

func TestApplicationService_Lifecycle(t *testing.T) {
	apps, _ := setupApplicationService(t)
	ctx := context.Background()

	resp, err := apps.Submit(ctx, &request.ApplicationRequest{
		Kind: "intern", Name: "A", Email: "a@example.com", Position: "P",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	id := resp.ID

	if err := apps.PermanentDelete(ctx, id); !errors.Is(err, service.ErrNotSoftDeleted) {
		t.Fatalf("PermanentDelete() on live error = %v, want ErrNotSoftDeleted", err)
	}
	if err := apps.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := apps.PermanentDelete(ctx, id); err != nil {
		t.Fatalf("PermanentDelete() error = %v", err)
	}
	if _, err := apps.GetByID(ctx, id); !errors.Is(err, service.ErrApplicationNotFound) {
		t.Error("purged application still visible")
	}
}
