package repositories

import (
	"context"

	"swiftaid/database"
	"swiftaid/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	collection collection[models.User]
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: newCollection[models.User](db, database.UsersCollection, "User"),
	}
}

func (ur *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return ur.collection.find(ctx, bson.M{})
}

func (ur *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return ur.collection.findByID(ctx, id)
}

func (ur *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return ur.collection.findOptional(ctx, bson.M{"email": email})
}

func (ur *UserRepository) Count(ctx context.Context) (int64, error) {
	return ur.collection.count(ctx, bson.M{})
}

func (ur *UserRepository) Delete(ctx context.Context, id string) error {
	return ur.collection.deleteByID(ctx, id)
}

type ProfileRepository struct {
	collection collection[models.Profile]
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		collection: newCollection[models.Profile](db, database.ProfilesCollection, "Profile"),
	}
}

func (pr *ProfileRepository) FindByUser(ctx context.Context, email string) (*models.Profile, error) {
	return pr.collection.findOptional(ctx, bson.M{"user_email": email})
}

func (pr *ProfileRepository) DeleteByUser(ctx context.Context, email string) (int64, error) {
	return pr.collection.deleteMany(ctx, bson.M{"user_email": email})
}

type ContactRepository struct {
	collection collection[models.Contact]
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{
		collection: newCollection[models.Contact](db, database.ContactsCollection, "Contact"),
	}
}

func (cr *ContactRepository) List(ctx context.Context) ([]models.Contact, error) {
	return cr.collection.find(ctx, bson.M{})
}

func (cr *ContactRepository) ListByUser(ctx context.Context, email string) ([]models.Contact, error) {
	return cr.collection.find(ctx, bson.M{"user_email": email})
}

func (cr *ContactRepository) DeleteByUser(ctx context.Context, email string) (int64, error) {
	return cr.collection.deleteMany(ctx, bson.M{"user_email": email})
}
