package repositories

import (
	"context"
	"time"

	"swiftaid/database"
	"swiftaid/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AmbulanceRepository struct {
	collection collection[models.Ambulance]
}

func NewAmbulanceRepository(db *mongo.Database) *AmbulanceRepository {
	return &AmbulanceRepository{
		collection: newCollection[models.Ambulance](db, database.AmbulancesCollection, "Ambulance"),
	}
}

func (ar *AmbulanceRepository) FindByID(ctx context.Context, id string) (*models.Ambulance, error) {
	return ar.collection.findByID(ctx, id)
}

func (ar *AmbulanceRepository) ListAssigned(ctx context.Context) ([]models.Ambulance, error) {
	return ar.collection.find(ctx, bson.M{"current_incident_id": bson.M{"$nin": bson.A{nil, ""}}})
}

func (ar *AmbulanceRepository) ListByIncident(ctx context.Context, incidentID string) ([]models.Ambulance, error) {
	return ar.collection.find(ctx, bson.M{"current_incident_id": incidentID})
}

func (ar *AmbulanceRepository) FindOnDutyByHospital(ctx context.Context, hospitalName string) (*models.Ambulance, error) {
	return ar.collection.findOptional(ctx, bson.M{
		"hospital_name": hospitalName,
		"status":        models.AmbulanceStatusOnDuty,
	})
}

func (ar *AmbulanceRepository) FindAvailableByHospital(ctx context.Context, hospitalName string) (*models.Ambulance, error) {
	return ar.collection.findOptional(ctx, bson.M{
		"hospital_name":       hospitalName,
		"status":              models.AmbulanceStatusOnDuty,
		"current_incident_id": bson.M{"$in": bson.A{nil, ""}},
	})
}

func (ar *AmbulanceRepository) Assign(ctx context.Context, id, incidentID string, at time.Time) error {
	_, err := ar.collection.updateByID(ctx, id, bson.M{
		"current_incident_id": incidentID,
		"assignment_time":     models.NewTimestamp(at),
	})
	return err
}

func (ar *AmbulanceRepository) Unassign(ctx context.Context, id string) (bool, error) {
	modified, err := ar.collection.updateByID(ctx, id, bson.M{
		"current_incident_id": nil,
		"assignment_time":     nil,
	})
	if err != nil {
		return false, err
	}
	return modified > 0, nil
}

func (ar *AmbulanceRepository) Delete(ctx context.Context, id string) error {
	return ar.collection.deleteByID(ctx, id)
}
