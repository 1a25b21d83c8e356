package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuItemDocument represents a menu catalog entry in MongoDB.
type MenuItemDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	NumericID   uint               `bson:"numeric_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Category    string             `bson:"category"`
	Price       float64            `bson:"price"`
	ImageURL    string             `bson:"image_url,omitempty"`
	Available   bool               `bson:"available"`
	Tags        []string           `bson:"tags,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
	DeletedAt   *time.Time         `bson:"deleted_at,omitempty"`
}

// CollectionName returns the MongoDB collection name for menu items.
func (MenuItemDocument) CollectionName() string {
	return "menu_items"
}
