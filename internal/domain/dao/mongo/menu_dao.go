package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/savora/savora-cloud-go/internal/domain/dao"
	"github.com/savora/savora-cloud-go/internal/domain/dao/mongo/document"
	"github.com/savora/savora-cloud-go/internal/domain/dao/mongo/mapper"
	"github.com/savora/savora-cloud-go/internal/domain/entity"
)

// menuDAO implements dao.MenuDAO using MongoDB.
type menuDAO struct {
	*baseMongoDAO[document.MenuItemDocument]
	mapper *mapper.MenuMapper
}

// NewMenuDAO creates a new MongoDB-based MenuDAO.
func NewMenuDAO(db *mongo.Database, idCounter *IDCounter) dao.MenuDAO {
	return &menuDAO{
		baseMongoDAO: newBaseMongoDAO[document.MenuItemDocument](
			db,
			document.MenuItemDocument{}.CollectionName(),
			idCounter,
		),
		mapper: mapper.NewMenuMapper(),
	}
}

// Create inserts a new menu item.
func (d *menuDAO) Create(ctx context.Context, item *entity.MenuItem) error {
	id, err := d.nextID(ctx)
	if err != nil {
		return err
	}
	item.ID = id
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	return d.insertOne(ctx, d.mapper.ToDocument(item))
}

// FindByID retrieves a non-deleted menu item by ID.
func (d *menuDAO) FindByID(ctx context.Context, id uint) (*entity.MenuItem, error) {
	filter := withNotDeleted(bson.M{"numeric_id": id})

	var doc document.MenuItemDocument
	err := d.findOneByFilter(ctx, filter, &doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntity(&doc), nil
}

// FindAll retrieves menu items with pagination, optionally filtered by
// category.
func (d *menuDAO) FindAll(ctx context.Context, page, size int, category string) ([]*entity.MenuItem, int64, error) {
	filter := notDeletedFilter()
	if category != "" {
		filter["category"] = category
	}

	total, err := d.count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((page - 1) * size)
	opts := options.Find().
		SetSkip(skip).
		SetLimit(int64(size)).
		SetSort(bson.D{{Key: "numeric_id", Value: -1}})

	var docs []*document.MenuItemDocument
	if err := d.findManyByFilter(ctx, filter, opts, &docs); err != nil {
		return nil, 0, err
	}
	return d.mapper.ToEntities(docs), total, nil
}

// Update replaces the stored document for the menu item.
func (d *menuDAO) Update(ctx context.Context, item *entity.MenuItem) error {
	item.UpdatedAt = time.Now()
	doc := d.mapper.ToDocument(item)

	filter := bson.M{"numeric_id": item.ID}
	_, err := d.updateOne(ctx, filter, bson.M{"$set": doc})
	return err
}

// SoftDelete marks a menu item deleted.
func (d *menuDAO) SoftDelete(ctx context.Context, id uint) (bool, error) {
	return d.softDelete(ctx, id, time.Now())
}

// Restore clears the soft-delete marker on a menu item.
func (d *menuDAO) Restore(ctx context.Context, id uint) (bool, error) {
	return d.restore(ctx, id, time.Now())
}

// PermanentDelete physically removes an already soft-deleted menu item.
func (d *menuDAO) PermanentDelete(ctx context.Context, id uint) (bool, error) {
	return d.permanentDelete(ctx, id)
}
