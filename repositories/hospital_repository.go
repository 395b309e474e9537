package repositories

import (
	"context"

	"swiftaid/database"
	"swiftaid/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HospitalRepository struct {
	collection collection[models.Hospital]
}

func NewHospitalRepository(db *mongo.Database) *HospitalRepository {
	return &HospitalRepository{
		collection: newCollection[models.Hospital](db, database.HospitalsCollection, "Hospital"),
	}
}

func (hr *HospitalRepository) List(ctx context.Context, limit int64) ([]models.Hospital, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return hr.collection.find(ctx, bson.M{}, opts)
}

func (hr *HospitalRepository) FindByID(ctx context.Context, id string) (*models.Hospital, error) {
	return hr.collection.findByID(ctx, id)
}

func (hr *HospitalRepository) FindByName(ctx context.Context, name string) (*models.Hospital, error) {
	return hr.collection.findOptional(ctx, bson.M{"hospital_name": name})
}

func (hr *HospitalRepository) Count(ctx context.Context) (int64, error) {
	return hr.collection.count(ctx, bson.M{})
}

func (hr *HospitalRepository) Delete(ctx context.Context, id string) error {
	return hr.collection.deleteByID(ctx, id)
}

type PoliceRepository struct {
	collection collection[models.PoliceOfficer]
}

func NewPoliceRepository(db *mongo.Database) *PoliceRepository {
	return &PoliceRepository{
		collection: newCollection[models.PoliceOfficer](db, database.PoliceCollection, "Police officer"),
	}
}

func (pr *PoliceRepository) List(ctx context.Context) ([]models.PoliceOfficer, error) {
	return pr.collection.find(ctx, bson.M{})
}

func (pr *PoliceRepository) FindByID(ctx context.Context, id string) (*models.PoliceOfficer, error) {
	return pr.collection.findByID(ctx, id)
}

func (pr *PoliceRepository) Count(ctx context.Context) (int64, error) {
	return pr.collection.count(ctx, bson.M{})
}

func (pr *PoliceRepository) Delete(ctx context.Context, id string) error {
	return pr.collection.deleteByID(ctx, id)
}
