package repositories

import (
	"context"

	"swiftaid/database"
	"swiftaid/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AssignmentRepository struct {
	collection collection[models.IncidentAssignment]
}

func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{
		collection: newCollection[models.IncidentAssignment](db, database.IncidentAssignmentsCollection, "Assignment"),
	}
}

func (ar *AssignmentRepository) Exists(ctx context.Context) (bool, error) {
	return ar.collection.exists(ctx)
}

func (ar *AssignmentRepository) ListByIncident(ctx context.Context, incidentID string) ([]models.IncidentAssignment, error) {
	return ar.collection.find(ctx, bson.M{"incident_id": incidentID})
}

func (ar *AssignmentRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return ar.collection.count(ctx, bson.M{"status": status})
}

func (ar *AssignmentRepository) Insert(ctx context.Context, assignment *models.IncidentAssignment) error {
	id, err := ar.collection.insert(ctx, assignment)
	if err != nil {
		return err
	}
	assignment.ID = id
	return nil
}
