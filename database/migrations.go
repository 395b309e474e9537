package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names shared by the repositories.
const (
	IncidentsCollection           = "incidents"
	UsersCollection               = "users"
	ProfilesCollection            = "profiles"
	ContactsCollection            = "contacts"
	AmbulancesCollection          = "ambulances"
	HospitalsCollection           = "hospital_user"
	PoliceCollection              = "POLICE_users"
	IncidentAssignmentsCollection = "incident_assignments"
	migrationsCollection          = "migrations"
)

// Migration represents a database migration
type Migration struct {
	Version     int
	Description string
	Up          func(context.Context, *mongo.Database) error
}

// migrationRecord tracks applied migrations
type migrationRecord struct {
	Version     int       `bson:"version"`
	Description string    `bson:"description"`
	AppliedAt   time.Time `bson:"appliedAt"`
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Create incident indexes",
		Up:          createIncidentIndexes,
	},
	{
		Version:     2,
		Description: "Create user, profile and contact indexes",
		Up:          createUserIndexes,
	},
	{
		Version:     3,
		Description: "Create ambulance indexes",
		Up:          createAmbulanceIndexes,
	},
	{
		Version:     4,
		Description: "Create incident assignment indexes",
		Up:          createAssignmentIndexes,
	},
	{
		Version:     5,
		Description: "Collapse assigned_incident_id into current_incident_id",
		Up:          collapseAmbulanceIncidentReference,
	},
}

// RunMigrations executes all pending migrations
func RunMigrations(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	migrationsCol := db.Collection(migrationsCollection)

	currentVersion := getCurrentMigrationVersion(ctx, migrationsCol)
	logrus.Infof("Current migration version: %d", currentVersion)

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		logrus.Infof("Running migration %d: %s", migration.Version, migration.Description)

		if err := migration.Up(ctx, db); err != nil {
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err := migrationsCol.InsertOne(ctx, migrationRecord{
			Version:     migration.Version,
			Description: migration.Description,
			AppliedAt:   time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		logrus.Infof("Migration %d completed", migration.Version)
	}

	return nil
}

func getCurrentMigrationVersion(ctx context.Context, col *mongo.Collection) int {
	opts := options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})
	var record migrationRecord
	err := col.FindOne(ctx, bson.D{}, opts).Decode(&record)
	if err != nil {
		return 0 // No migrations applied yet
	}
	return record.Version
}

func createIncidentIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "timestamp", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "user_email", Value: 1}, {Key: "timestamp", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "incident_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "metadata.manual", Value: 1}, {Key: "metadata.sos_type", Value: 1}},
		},
	}

	_, err := db.Collection(IncidentsCollection).Indexes().CreateMany(ctx, indexes)
	return err
}

func createUserIndexes(ctx context.Context, db *mongo.Database) error {
	// email is the join key but legacy data is not guaranteed unique
	if _, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	}); err != nil {
		return err
	}

	for _, name := range []string{ProfilesCollection, ContactsCollection} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "user_email", Value: 1}},
		}); err != nil {
			return err
		}
	}
	return nil
}

func createAmbulanceIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "current_incident_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "hospital_name", Value: 1}, {Key: "status", Value: 1}},
		},
	}

	_, err := db.Collection(AmbulancesCollection).Indexes().CreateMany(ctx, indexes)
	return err
}

func createAssignmentIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "incident_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	_, err := db.Collection(IncidentAssignmentsCollection).Indexes().CreateMany(ctx, indexes)
	return err
}

// collapseAmbulanceIncidentReference moves the legacy assigned_incident_id
// into current_incident_id. An existing current_incident_id wins.
func collapseAmbulanceIncidentReference(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(AmbulancesCollection)

	renamed, err := col.UpdateMany(ctx,
		bson.M{
			"assigned_incident_id": bson.M{"$exists": true},
			"$or": bson.A{
				bson.M{"current_incident_id": bson.M{"$exists": false}},
				bson.M{"current_incident_id": nil},
			},
		},
		bson.M{"$rename": bson.M{"assigned_incident_id": "current_incident_id"}},
	)
	if err != nil {
		return err
	}

	dropped, err := col.UpdateMany(ctx,
		bson.M{"assigned_incident_id": bson.M{"$exists": true}},
		bson.M{"$unset": bson.M{"assigned_incident_id": ""}},
	)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"renamed": renamed.ModifiedCount,
		"dropped": dropped.ModifiedCount,
	}).Info("Collapsed ambulance incident references")
	return nil
}
