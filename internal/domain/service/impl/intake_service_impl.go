package impl

import (
	"context"
	"time"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/repository"
	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/dto/response"
)

// contactService implements service.ContactService
type contactService struct {
	contactRepo repository.ContactRepository
}

// NewContactService creates a new ContactService instance
func NewContactService(contactRepo repository.ContactRepository) service.ContactService {
	return &contactService{contactRepo: contactRepo}
}

func (s *contactService) Submit(ctx context.Context, req *request.ContactRequest) (*response.ContactResponse, error) {
	contact := &entity.GeneralContact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Status:  entity.ContactPending,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return toContactResponse(contact), nil
}

func (s *contactService) GetByID(ctx context.Context, id uint) (*response.ContactResponse, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, service.ErrContactNotFound
	}
	return toContactResponse(contact), nil
}

func (s *contactService) List(ctx context.Context, page, size int, status string) (*response.PagedResponse[response.ContactResponse], error) {
	page, size = normalizePage(page, size)

	contacts, total, err := s.contactRepo.List(ctx, page, size, entity.ContactStatus(status))
	if err != nil {
		return nil, err
	}

	items := make([]response.ContactResponse, len(contacts))
	for i, c := range contacts {
		items[i] = *toContactResponse(c)
	}

	result := response.NewPagedResponse(items, page, size, total)
	return &result, nil
}

func (s *contactService) UpdateStatus(ctx context.Context, id uint, req *request.UpdateContactStatusRequest) (*response.ContactResponse, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, service.ErrContactNotFound
	}

	target := entity.ContactStatus(req.Status)
	if target != contact.Status {
		if !contact.Status.CanTransition(target) {
			return nil, service.ErrInvalidStatusTransition
		}
		// ResolvedAt marks the moment the request entered resolved, not
		// later touches.
		if target == entity.ContactResolved && contact.ResolvedAt == nil {
			now := time.Now()
			contact.ResolvedAt = &now
		}
		contact.Status = target
	}

	if req.AssignedTo != "" {
		contact.AssignedTo = req.AssignedTo
	}
	if req.ResponseNotes != "" {
		contact.ResponseNotes = req.ResponseNotes
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return toContactResponse(contact), nil
}

func (s *contactService) Delete(ctx context.Context, id uint) error {
	ok, err := s.contactRepo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return service.ErrContactNotFound
	}
	return nil
}

func (s *contactService) Restore(ctx context.Context, id uint) error {
	ok, err := s.contactRepo.Restore(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return service.ErrContactNotFound
	}
	return nil
}

func (s *contactService) PermanentDelete(ctx context.Context, id uint) error {
	ok, err := s.contactRepo.PermanentDelete(ctx, id)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	live, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if live != nil {
		return service.ErrNotSoftDeleted
	}
	return service.ErrContactNotFound
}

func (s *contactService) BulkDelete(ctx context.Context, ids []uint) (*response.BulkOperationResponse, error) {
	affected, err := s.contactRepo.BulkSoftDelete(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &response.BulkOperationResponse{Requested: len(ids), Affected: affected}, nil
}

func (s *contactService) BulkRestore(ctx context.Context, ids []uint) (*response.BulkOperationResponse, error) {
	affected, err := s.contactRepo.BulkRestore(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &response.BulkOperationResponse{Requested: len(ids), Affected: affected}, nil
}

// applicationService implements service.ApplicationService
type applicationService struct {
	appRepo repository.ApplicationRepository
}

// NewApplicationService creates a new ApplicationService instance
func NewApplicationService(appRepo repository.ApplicationRepository) service.ApplicationService {
	return &applicationService{appRepo: appRepo}
}

func (s *applicationService) Submit(ctx context.Context, req *request.ApplicationRequest) (*response.ApplicationResponse, error) {
	app := &entity.Application{
		Kind:        entity.ApplicationKind(req.Kind),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Position:    req.Position,
		ResumeURL:   req.ResumeURL,
		CoverLetter: req.CoverLetter,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	return toApplicationResponse(app), nil
}

func (s *applicationService) GetByID(ctx context.Context, id uint) (*response.ApplicationResponse, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, service.ErrApplicationNotFound
	}
	return toApplicationResponse(app), nil
}

func (s *applicationService) List(ctx context.Context, page, size int, kind entity.ApplicationKind) (*response.PagedResponse[response.ApplicationResponse], error) {
	page, size = normalizePage(page, size)

	apps, total, err := s.appRepo.List(ctx, page, size, kind)
	if err != nil {
		return nil, err
	}

	items := make([]response.ApplicationResponse, len(apps))
	for i, a := range apps {
		items[i] = *toApplicationResponse(a)
	}

	result := response.NewPagedResponse(items, page, size, total)
	return &result, nil
}

func (s *applicationService) Review(ctx context.Context, id uint, req *request.ReviewApplicationRequest) (*response.ApplicationResponse, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, service.ErrApplicationNotFound
	}

	if req.Reviewed != nil {
		app.Reviewed = *req.Reviewed
	}
	if req.Shortlisted != nil {
		app.Shortlisted = *req.Shortlisted
		// Shortlisting implies the application was looked at.
		if app.Shortlisted {
			app.Reviewed = true
		}
	}

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}
	return toApplicationResponse(app), nil
}

func (s *applicationService) Delete(ctx context.Context, id uint) error {
	ok, err := s.appRepo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return service.ErrApplicationNotFound
	}
	return nil
}

func (s *applicationService) Restore(ctx context.Context, id uint) error {
	ok, err := s.appRepo.Restore(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return service.ErrApplicationNotFound
	}
	return nil
}

func (s *applicationService) PermanentDelete(ctx context.Context, id uint) error {
	ok, err := s.appRepo.PermanentDelete(ctx, id)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	live, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if live != nil {
		return service.ErrNotSoftDeleted
	}
	return service.ErrApplicationNotFound
}

func (s *applicationService) BulkDelete(ctx context.Context, ids []uint) (*response.BulkOperationResponse, error) {
	affected, err := s.appRepo.BulkSoftDelete(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &response.BulkOperationResponse{Requested: len(ids), Affected: affected}, nil
}

func (s *applicationService) BulkRestore(ctx context.Context, ids []uint) (*response.BulkOperationResponse, error) {
	affected, err := s.appRepo.BulkRestore(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &response.BulkOperationResponse{Requested: len(ids), Affected: affected}, nil
}
