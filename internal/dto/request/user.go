package request

// UpdateProfileRequest represents a profile update request.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name,omitempty" binding:"max=50"`
	LastName  string `json:"last_name,omitempty" binding:"max=50"`
	Phone     string `json:"phone,omitempty" binding:"max=20"`
}

// AddressRequest represents a create or update of one delivery address.
type AddressRequest struct {
	Label      string `json:"label,omitempty" binding:"max=50"`
	Street     string `json:"street" binding:"required,max=200"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state,omitempty" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"required,max=20"`
	Country    string `json:"country" binding:"required,max=100"`
	IsDefault  bool   `json:"is_default"`
}

// BulkIDsRequest carries a list of numeric IDs for bulk soft-delete and
// bulk restore operations.
type BulkIDsRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1,dive,gt=0"`
}
