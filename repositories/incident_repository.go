package repositories

import (
	"context"
	"errors"

	"swiftaid/database"
	"swiftaid/interfaces"
	"swiftaid/models"
	"swiftaid/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var newestFirst = bson.D{{Key: "timestamp", Value: -1}}

type IncidentRepository struct {
	collection collection[models.Incident]
}

func NewIncidentRepository(db *mongo.Database) *IncidentRepository {
	return &IncidentRepository{
		collection: newCollection[models.Incident](db, database.IncidentsCollection, "Incident"),
	}
}

func (ir *IncidentRepository) FindByID(ctx context.Context, id string) (*models.Incident, error) {
	return ir.collection.findByID(ctx, id)
}

func (ir *IncidentRepository) FindByReference(ctx context.Context, ref string) (*models.Incident, error) {
	if primitive.IsValidObjectID(ref) {
		incident, err := ir.collection.findByID(ctx, ref)
		if err == nil || !errors.Is(err, utils.ErrNotFound) {
			return incident, err
		}
	}
	return ir.collection.findOne(ctx, bson.M{"incident_id": ref})
}

func (ir *IncidentRepository) List(ctx context.Context, skip, limit int64) ([]models.Incident, error) {
	opts := options.Find().SetSort(newestFirst).SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return ir.collection.find(ctx, bson.M{}, opts)
}

func (ir *IncidentRepository) ListByUser(ctx context.Context, email string, limit int64) ([]models.Incident, error) {
	opts := options.Find().SetSort(newestFirst)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return ir.collection.find(ctx, bson.M{"user_email": email}, opts)
}

func (ir *IncidentRepository) Count(ctx context.Context, filter interfaces.IncidentFilter) (int64, error) {
	return ir.collection.count(ctx, incidentQuery(filter))
}

func (ir *IncidentRepository) Delete(ctx context.Context, id string) error {
	return ir.collection.deleteByID(ctx, id)
}

func (ir *IncidentRepository) DeleteByUser(ctx context.Context, email string) (int64, error) {
	return ir.collection.deleteMany(ctx, bson.M{"user_email": email})
}

// HourlyDistribution buckets incidents by UTC hour of their datetime
// timestamp. Legacy string timestamps are not counted.
func (ir *IncidentRepository) HourlyDistribution(ctx context.Context) ([24]int64, error) {
	var hours [24]int64

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"timestamp": bson.M{"$type": "date"}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$hour": "$timestamp"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := ir.collection.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return hours, utils.NewDatabaseError("aggregate incidents by hour", err)
	}
	defer cursor.Close(ctx)

	var buckets []struct {
		Hour  int   `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &buckets); err != nil {
		return hours, utils.NewDatabaseError("decode hourly buckets", err)
	}

	for _, b := range buckets {
		if b.Hour >= 0 && b.Hour < len(hours) {
			hours[b.Hour] = b.Count
		}
	}
	return hours, nil
}

// SumEmailsSent totals the per-incident emails_sent counters.
func (ir *IncidentRepository) SumEmailsSent(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$emails_sent"},
		}}},
	}

	cursor, err := ir.collection.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, utils.NewDatabaseError("aggregate emails sent", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, utils.NewDatabaseError("decode emails sent", err)
	}
	if len(result) == 0 {
		return 0, nil
	}
	return int64(result[0].Total), nil
}

func incidentQuery(f interfaces.IncidentFilter) bson.M {
	query := bson.M{}
	if f.UserEmail != "" {
		query["user_email"] = f.UserEmail
	}
	if f.Since != nil || f.Until != nil {
		window := bson.M{}
		if f.Since != nil {
			window["$gte"] = *f.Since
		}
		if f.Until != nil {
			window["$lt"] = *f.Until
		}
		query["timestamp"] = window
	}
	if f.Manual != nil {
		query["metadata.manual"] = *f.Manual
	}
	if f.SOSType != "" {
		query["metadata.sos_type"] = f.SOSType
	}
	return query
}
