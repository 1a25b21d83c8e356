package request

// MenuItemRequest represents a create or update of one menu item.
type MenuItemRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Description string   `json:"description,omitempty" binding:"max=2000"`
	Category    string   `json:"category" binding:"required,max=50"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	ImageURL    string   `json:"image_url,omitempty" binding:"omitempty,url,max=500"`
	Available   *bool    `json:"available,omitempty"`
	Tags        []string `json:"tags,omitempty" binding:"max=20,dive,max=30"`
}
