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

// contactDAO implements dao.ContactDAO using MongoDB.
type contactDAO struct {
	*baseMongoDAO[document.ContactDocument]
	mapper *mapper.ContactMapper
}

// NewContactDAO creates a new MongoDB-based ContactDAO.
func NewContactDAO(db *mongo.Database, idCounter *IDCounter) dao.ContactDAO {
	return &contactDAO{
		baseMongoDAO: newBaseMongoDAO[document.ContactDocument](
			db,
			document.ContactDocument{}.CollectionName(),
			idCounter,
		),
		mapper: mapper.NewContactMapper(),
	}
}

// Create inserts a new contact request.
func (d *contactDAO) Create(ctx context.Context, contact *entity.GeneralContact) error {
	id, err := d.nextID(ctx)
	if err != nil {
		return err
	}
	contact.ID = id
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = time.Now()

	return d.insertOne(ctx, d.mapper.ToDocument(contact))
}

// FindByID retrieves a non-deleted contact request by ID.
func (d *contactDAO) FindByID(ctx context.Context, id uint) (*entity.GeneralContact, error) {
	filter := withNotDeleted(bson.M{"numeric_id": id})

	var doc document.ContactDocument
	err := d.findOneByFilter(ctx, filter, &doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntity(&doc), nil
}

// FindAll retrieves contact requests with pagination, optionally filtered
// by status.
func (d *contactDAO) FindAll(ctx context.Context, page, size int, status entity.ContactStatus) ([]*entity.GeneralContact, int64, error) {
	filter := notDeletedFilter()
	if status != "" {
		filter["status"] = string(status)
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

	var docs []*document.ContactDocument
	if err := d.findManyByFilter(ctx, filter, opts, &docs); err != nil {
		return nil, 0, err
	}
	return d.mapper.ToEntities(docs), total, nil
}

// Update replaces the stored document for the contact request.
func (d *contactDAO) Update(ctx context.Context, contact *entity.GeneralContact) error {
	contact.UpdatedAt = time.Now()
	doc := d.mapper.ToDocument(contact)

	filter := bson.M{"numeric_id": contact.ID}
	_, err := d.updateOne(ctx, filter, bson.M{"$set": doc})
	return err
}

// SoftDelete marks a contact request deleted.
func (d *contactDAO) SoftDelete(ctx context.Context, id uint) (bool, error) {
	return d.softDelete(ctx, id, time.Now())
}

// Restore clears the soft-delete marker on a contact request.
func (d *contactDAO) Restore(ctx context.Context, id uint) (bool, error) {
	return d.restore(ctx, id, time.Now())
}

// PermanentDelete physically removes an already soft-deleted contact request.
func (d *contactDAO) PermanentDelete(ctx context.Context, id uint) (bool, error) {
	return d.permanentDelete(ctx, id)
}

// BulkSoftDelete soft-deletes the listed contact requests and returns the
// count actually transitioned.
func (d *contactDAO) BulkSoftDelete(ctx context.Context, ids []uint) (int64, error) {
	return d.bulkSoftDelete(ctx, ids, time.Now())
}

// BulkRestore restores the listed contact requests and returns the count
// actually transitioned.
func (d *contactDAO) BulkRestore(ctx context.Context, ids []uint) (int64, error) {
	return d.bulkRestore(ctx, ids, time.Now())
}

// applicationDAO implements dao.ApplicationDAO using MongoDB.
type applicationDAO struct {
	*baseMongoDAO[document.ApplicationDocument]
	mapper *mapper.ApplicationMapper
}

// NewApplicationDAO creates a new MongoDB-based ApplicationDAO.
func NewApplicationDAO(db *mongo.Database, idCounter *IDCounter) dao.ApplicationDAO {
	return &applicationDAO{
		baseMongoDAO: newBaseMongoDAO[document.ApplicationDocument](
			db,
			document.ApplicationDocument{}.CollectionName(),
			idCounter,
		),
		mapper: mapper.NewApplicationMapper(),
	}
}

// Create inserts a new application.
func (d *applicationDAO) Create(ctx context.Context, app *entity.Application) error {
	id, err := d.nextID(ctx)
	if err != nil {
		return err
	}
	app.ID = id
	app.CreatedAt = time.Now()
	app.UpdatedAt = time.Now()

	return d.insertOne(ctx, d.mapper.ToDocument(app))
}

// FindByID retrieves a non-deleted application by ID.
func (d *applicationDAO) FindByID(ctx context.Context, id uint) (*entity.Application, error) {
	filter := withNotDeleted(bson.M{"numeric_id": id})

	var doc document.ApplicationDocument
	err := d.findOneByFilter(ctx, filter, &doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntity(&doc), nil
}

// FindAll retrieves applications with pagination, optionally filtered by
// kind.
func (d *applicationDAO) FindAll(ctx context.Context, page, size int, kind entity.ApplicationKind) ([]*entity.Application, int64, error) {
	filter := notDeletedFilter()
	if kind != "" {
		filter["kind"] = string(kind)
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

	var docs []*document.ApplicationDocument
	if err := d.findManyByFilter(ctx, filter, opts, &docs); err != nil {
		return nil, 0, err
	}
	return d.mapper.ToEntities(docs), total, nil
}

// Update replaces the stored document for the application.
func (d *applicationDAO) Update(ctx context.Context, app *entity.Application) error {
	app.UpdatedAt = time.Now()
	doc := d.mapper.ToDocument(app)

	filter := bson.M{"numeric_id": app.ID}
	_, err := d.updateOne(ctx, filter, bson.M{"$set": doc})
	return err
}

// SoftDelete marks an application deleted.
func (d *applicationDAO) SoftDelete(ctx context.Context, id uint) (bool, error) {
	return d.softDelete(ctx, id, time.Now())
}

// Restore clears the soft-delete marker on an application.
func (d *applicationDAO) Restore(ctx context.Context, id uint) (bool, error) {
	return d.restore(ctx, id, time.Now())
}

// PermanentDelete physically removes an already soft-deleted application.
func (d *applicationDAO) PermanentDelete(ctx context.Context, id uint) (bool, error) {
	return d.permanentDelete(ctx, id)
}

// BulkSoftDelete soft-deletes the listed applications and returns the count
// actually transitioned.
func (d *applicationDAO) BulkSoftDelete(ctx context.Context, ids []uint) (int64, error) {
	return d.bulkSoftDelete(ctx, ids, time.Now())
}

// BulkRestore restores the listed applications and returns the count
// actually transitioned.
func (d *applicationDAO) BulkRestore(ctx context.Context, ids []uint) (int64, error) {
	return d.bulkRestore(ctx, ids, time.Now())
}
