package impl

import (
	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/dto/response"
)

func toUserResponse(user *entity.User) *response.UserResponse {
	return &response.UserResponse{
		ID:            user.ID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		Phone:         user.Phone,
		Role:          string(user.Role),
		LoyaltyPoints: user.LoyaltyPoints,
		LastLogin:     user.LastLogin,
		IsVerified:    user.Status.IsVerified,
		IsActive:      user.Status.IsActive,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

func toAddressResponses(addresses []entity.Address) []response.AddressResponse {
	out := make([]response.AddressResponse, len(addresses))
	for i, a := range addresses {
		out[i] = response.AddressResponse{
			Index:      i,
			Label:      a.Label,
			Street:     a.Street,
			City:       a.City,
			State:      a.State,
			PostalCode: a.PostalCode,
			Country:    a.Country,
			IsDefault:  a.IsDefault,
			CreatedAt:  a.CreatedAt,
		}
	}
	return out
}

func toContactResponse(c *entity.GeneralContact) *response.ContactResponse {
	return &response.ContactResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Subject:       c.Subject,
		Message:       c.Message,
		Status:        string(c.Status),
		AssignedTo:    c.AssignedTo,
		ResponseNotes: c.ResponseNotes,
		ResolvedAt:    c.ResolvedAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toApplicationResponse(a *entity.Application) *response.ApplicationResponse {
	return &response.ApplicationResponse{
		ID:          a.ID,
		Kind:        string(a.Kind),
		Name:        a.Name,
		Email:       a.Email,
		Phone:       a.Phone,
		Position:    a.Position,
		ResumeURL:   a.ResumeURL,
		CoverLetter: a.CoverLetter,
		Reviewed:    a.Reviewed,
		Shortlisted: a.Shortlisted,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toMenuItemResponse(m *entity.MenuItem) *response.MenuItemResponse {
	return &response.MenuItemResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		Price:       m.Price,
		ImageURL:    m.ImageURL,
		Available:   m.Available,
		Tags:        m.Tags,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}
	return page, size
}
