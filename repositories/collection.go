package repositories

import (
	"context"
	"errors"

	"swiftaid/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection is the typed accessor every repository is built on. It owns
// the translation of driver errors into ServiceErrors.
type collection[T any] struct {
	db       *mongo.Database
	coll     *mongo.Collection
	name     string
	resource string
}

func newCollection[T any](db *mongo.Database, name, resource string) collection[T] {
	return collection[T]{
		db:       db,
		coll:     db.Collection(name),
		name:     name,
		resource: resource,
	}
}

func (c collection[T]) objectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, utils.NewInvalidIdentifierError(c.resource, id)
	}
	return objectID, nil
}

func (c collection[T]) findByID(ctx context.Context, id string) (*T, error) {
	objectID, err := c.objectID(id)
	if err != nil {
		return nil, err
	}
	return c.findOne(ctx, bson.M{"_id": objectID})
}

// findOne fails with ErrNotFound when nothing matches.
func (c collection[T]) findOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, filter, opts...).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError(c.resource)
		}
		return nil, utils.NewDatabaseError("find "+c.name, err)
	}
	return &doc, nil
}

// findOptional is findOne returning nil instead of ErrNotFound.
func (c collection[T]) findOptional(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*T, error) {
	doc, err := c.findOne(ctx, filter, opts...)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, nil
	}
	return doc, err
}

func (c collection[T]) find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := c.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, utils.NewDatabaseError("find "+c.name, err)
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, utils.NewDatabaseError("decode "+c.name, err)
	}
	return docs, nil
}

func (c collection[T]) count(ctx context.Context, filter interface{}) (int64, error) {
	n, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, utils.NewDatabaseError("count "+c.name, err)
	}
	return n, nil
}

func (c collection[T]) insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	result, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, utils.NewDatabaseError("insert "+c.name, err)
	}
	objectID, _ := result.InsertedID.(primitive.ObjectID)
	return objectID, nil
}

// updateByID applies a partial $set and returns the modified count. It fails
// with ErrNotFound when the id matches nothing.
func (c collection[T]) updateByID(ctx context.Context, id string, set bson.M) (int64, error) {
	objectID, err := c.objectID(id)
	if err != nil {
		return 0, err
	}

	result, err := c.coll.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return 0, utils.NewDatabaseError("update "+c.name, err)
	}
	if result.MatchedCount == 0 {
		return 0, utils.NewNotFoundError(c.resource)
	}
	return result.ModifiedCount, nil
}

func (c collection[T]) deleteByID(ctx context.Context, id string) error {
	objectID, err := c.objectID(id)
	if err != nil {
		return err
	}

	result, err := c.coll.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return utils.NewDatabaseError("delete "+c.name, err)
	}
	if result.DeletedCount == 0 {
		return utils.NewNotFoundError(c.resource)
	}
	return nil
}

func (c collection[T]) deleteMany(ctx context.Context, filter interface{}) (int64, error) {
	result, err := c.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, utils.NewDatabaseError("delete "+c.name, err)
	}
	return result.DeletedCount, nil
}

func (c collection[T]) exists(ctx context.Context) (bool, error) {
	names, err := c.db.ListCollectionNames(ctx, bson.M{"name": c.name})
	if err != nil {
		return false, utils.NewDatabaseError("list collections", err)
	}
	return len(names) > 0, nil
}
