// Package mongo provides MongoDB-based DAO implementations.
package mongo

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IDCounter manages auto-incrementing numeric IDs for MongoDB documents.
type IDCounter struct {
	collection *mongo.Collection
	mu         sync.Mutex
}

// counterDocument represents the structure stored in the counters collection.
type counterDocument struct {
	ID    string `bson:"_id"`
	Value uint   `bson:"value"`
}

// NewIDCounter creates a new IDCounter for a MongoDB database.
func NewIDCounter(db *mongo.Database) *IDCounter {
	return &IDCounter{
		collection: db.Collection("counters"),
	}
}

// NextID returns the next available ID for a given collection.
func (c *IDCounter) NextID(ctx context.Context, collectionName string) (uint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	filter := bson.M{"_id": collectionName}
	update := bson.M{"$inc": bson.M{"value": 1}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter counterDocument
	err := c.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter)
	if err != nil {
		return 0, err
	}

	return counter.Value, nil
}

// baseMongoDAO provides common MongoDB operations for all entity DAOs,
// including the shared soft-delete lifecycle.
type baseMongoDAO[D any] struct {
	collection *mongo.Collection
	idCounter  *IDCounter
}

// newBaseMongoDAO creates a new base MongoDB DAO instance.
func newBaseMongoDAO[D any](db *mongo.Database, collectionName string, idCounter *IDCounter) *baseMongoDAO[D] {
	return &baseMongoDAO[D]{
		collection: db.Collection(collectionName),
		idCounter:  idCounter,
	}
}

// nextID generates the next available ID for this collection.
func (d *baseMongoDAO[D]) nextID(ctx context.Context) (uint, error) {
	return d.idCounter.NextID(ctx, d.collection.Name())
}

// notDeletedFilter returns a filter that excludes soft-deleted documents.
func notDeletedFilter() bson.M {
	return bson.M{"deleted_at": nil}
}

// withNotDeleted adds the not-deleted condition to an existing filter.
func withNotDeleted(filter bson.M) bson.M {
	filter["deleted_at"] = nil
	return filter
}

// count returns the count of documents matching the filter.
func (d *baseMongoDAO[D]) count(ctx context.Context, filter bson.M) (int64, error) {
	return d.collection.CountDocuments(ctx, filter)
}

// existsBy checks if a non-deleted document exists by a field value.
func (d *baseMongoDAO[D]) existsBy(ctx context.Context, field string, value any) (bool, error) {
	filter := withNotDeleted(bson.M{field: value})
	count, err := d.collection.CountDocuments(ctx, filter)
	return count > 0, err
}

// findOneByFilter finds a single document matching the filter.
func (d *baseMongoDAO[D]) findOneByFilter(ctx context.Context, filter bson.M, result any) error {
	return d.collection.FindOne(ctx, filter).Decode(result)
}

// findManyByFilter finds all documents matching the filter.
func (d *baseMongoDAO[D]) findManyByFilter(ctx context.Context, filter bson.M, opts *options.FindOptions, results any) error {
	cursor, err := d.collection.Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, results)
}

// insertOne inserts a single document.
func (d *baseMongoDAO[D]) insertOne(ctx context.Context, doc any) error {
	_, err := d.collection.InsertOne(ctx, doc)
	return err
}

// updateOne updates a single document matching the filter and reports
// whether a document was modified.
func (d *baseMongoDAO[D]) updateOne(ctx context.Context, filter bson.M, update bson.M) (bool, error) {
	res, err := d.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// updateMany updates all documents matching the filter and returns the
// modified count.
func (d *baseMongoDAO[D]) updateMany(ctx context.Context, filter bson.M, update bson.M) (int64, error) {
	res, err := d.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// softDelete marks a document deleted. Already-deleted documents are not
// matched, so the returned bool reports whether the transition happened.
func (d *baseMongoDAO[D]) softDelete(ctx context.Context, id uint, now time.Time) (bool, error) {
	filter := withNotDeleted(bson.M{"numeric_id": id})
	update := bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}}
	return d.updateOne(ctx, filter, update)
}

// restore clears the soft-delete marker. Only deleted documents match.
func (d *baseMongoDAO[D]) restore(ctx context.Context, id uint, now time.Time) (bool, error) {
	filter := bson.M{"numeric_id": id, "deleted_at": bson.M{"$ne": nil}}
	update := bson.M{"$set": bson.M{"deleted_at": nil, "updated_at": now}}
	return d.updateOne(ctx, filter, update)
}

// permanentDelete physically removes a document, but only when it is already
// soft-deleted. Live documents are never matched.
func (d *baseMongoDAO[D]) permanentDelete(ctx context.Context, id uint) (bool, error) {
	filter := bson.M{"numeric_id": id, "deleted_at": bson.M{"$ne": nil}}
	res, err := d.collection.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// bulkSoftDelete soft-deletes every listed document that is still live and
// returns the count actually transitioned.
func (d *baseMongoDAO[D]) bulkSoftDelete(ctx context.Context, ids []uint, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	filter := withNotDeleted(bson.M{"numeric_id": bson.M{"$in": ids}})
	update := bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}}
	return d.updateMany(ctx, filter, update)
}

// bulkRestore restores every listed document that is currently deleted and
// returns the count actually transitioned.
func (d *baseMongoDAO[D]) bulkRestore(ctx context.Context, ids []uint, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	filter := bson.M{"numeric_id": bson.M{"$in": ids}, "deleted_at": bson.M{"$ne": nil}}
	update := bson.M{"$set": bson.M{"deleted_at": nil, "updated_at": now}}
	return d.updateMany(ctx, filter, update)
}
