package memory

import (
	"context"
	"testing"
	"time"

	"swiftaid/interfaces"
	"swiftaid/models"
	"swiftaid/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func at(day, hour int) models.Timestamp {
	return models.NewTimestamp(time.Date(2024, 3, day, hour, 0, 0, 0, time.UTC))
}

func TestIncidents_NewestFirstWithMixedTimestamps(t *testing.T) {
	store := New()
	store.AddIncident(models.Incident{IncidentID: "legacy", Timestamp: models.TextTimestamp("2024-03-11 08:00")})
	store.AddIncident(models.Incident{IncidentID: "old", Timestamp: at(9, 8)})
	store.AddIncident(models.Incident{IncidentID: "none"})
	store.AddIncident(models.Incident{IncidentID: "new", Timestamp: at(10, 8)})

	incidents := store.Stores().Incidents
	all, err := incidents.List(context.Background(), 0, 0)
	require.NoError(t, err)

	var order []string
	for _, doc := range all {
		order = append(order, doc.IncidentID)
	}
	assert.Equal(t, []string{"new", "old", "legacy", "none"}, order)

	paged, err := incidents.List(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, paged, 2)
	assert.Equal(t, "old", paged[0].IncidentID)

	empty, err := incidents.List(context.Background(), 10, 2)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestIncidents_FindByReference(t *testing.T) {
	store := New()
	stored := store.AddIncident(models.Incident{IncidentID: "INC-7"})
	incidents := store.Stores().Incidents
	ctx := context.Background()

	byHex, err := incidents.FindByReference(ctx, stored.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "INC-7", byHex.IncidentID)

	byHuman, err := incidents.FindByReference(ctx, "INC-7")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, byHuman.ID)

	_, err = incidents.FindByReference(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = incidents.FindByID(ctx, "INC-7")
	assert.ErrorIs(t, err, utils.ErrInvalidIdentifier)
}

func TestIncidents_CountFilters(t *testing.T) {
	store := New()
	store.AddIncident(models.Incident{UserEmail: "a@x.test", Timestamp: at(10, 1), Metadata: models.IncidentMetadata{Manual: true, SOSType: models.SOSTypeSelf}})
	store.AddIncident(models.Incident{UserEmail: "a@x.test", Timestamp: at(10, 23), Metadata: models.IncidentMetadata{Manual: true, SOSType: models.SOSTypeOther}})
	store.AddIncident(models.Incident{UserEmail: "b@x.test", Timestamp: at(11, 0)})
	store.AddIncident(models.Incident{UserEmail: "b@x.test", Timestamp: models.TextTimestamp("2024-03-10")})
	incidents := store.Stores().Incidents

	since := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	until := since.Add(24 * time.Hour)
	manual := true

	cases := []struct {
		name   string
		filter interfaces.IncidentFilter
		want   int64
	}{
		{"all", interfaces.IncidentFilter{}, 4},
		{"user", interfaces.IncidentFilter{UserEmail: "b@x.test"}, 2},
		{"day window skips text timestamps", interfaces.IncidentFilter{Since: &since, Until: &until}, 2},
		{"until is exclusive", interfaces.IncidentFilter{Since: &until}, 1},
		{"manual self", interfaces.IncidentFilter{Manual: &manual, SOSType: models.SOSTypeSelf}, 1},
	}
	for _, tc := range cases {
		n, err := incidents.Count(context.Background(), tc.filter)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, n, tc.name)
	}

	hours, err := incidents.HourlyDistribution(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), hours[0])
	assert.Equal(t, int64(1), hours[1])
	assert.Equal(t, int64(1), hours[23])
}

func TestIncidents_DeleteByUser(t *testing.T) {
	store := New()
	store.AddIncident(models.Incident{UserEmail: "a@x.test"})
	kept := store.AddIncident(models.Incident{UserEmail: "b@x.test"})
	store.AddIncident(models.Incident{UserEmail: "a@x.test"})
	incidents := store.Stores().Incidents

	deleted, err := incidents.DeleteByUser(context.Background(), "a@x.test")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	remaining, err := incidents.List(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)

	require.NoError(t, incidents.Delete(context.Background(), kept.ID.Hex()))
	assert.ErrorIs(t, incidents.Delete(context.Background(), kept.ID.Hex()), utils.ErrNotFound)
}

func TestAmbulances_AssignAndUnassign(t *testing.T) {
	store := New()
	ambulance := store.AddAmbulance(models.Ambulance{VehicleNumber: "GH-01", HospitalName: "General", Status: models.AmbulanceStatusOnDuty})
	ambulances := store.Stores().Ambulances
	ctx := context.Background()

	onDuty, err := ambulances.FindOnDutyByHospital(ctx, "General")
	require.NoError(t, err)
	require.NotNil(t, onDuty)
	assert.Equal(t, ambulance.ID, onDuty.ID)

	require.NoError(t, ambulances.Assign(ctx, ambulance.ID.Hex(), "INC-1", time.Now()))
	assigned, err := ambulances.ListAssigned(ctx)
	require.NoError(t, err)
	assert.Len(t, assigned, 1)

	modified, err := ambulances.Unassign(ctx, ambulance.ID.Hex())
	require.NoError(t, err)
	assert.True(t, modified)

	modified, err = ambulances.Unassign(ctx, ambulance.ID.Hex())
	require.NoError(t, err)
	assert.False(t, modified)

	_, err = ambulances.Unassign(ctx, "not-an-id")
	assert.ErrorIs(t, err, utils.ErrInvalidIdentifier)
}

func TestAmbulances_FindAvailableSkipsDispatched(t *testing.T) {
	store := New()
	busy := store.AddAmbulance(models.Ambulance{VehicleNumber: "GH-01", HospitalName: "General", Status: models.AmbulanceStatusOnDuty})
	store.AddAmbulance(models.Ambulance{VehicleNumber: "GH-02", HospitalName: "General", Status: "maintenance"})
	ambulances := store.Stores().Ambulances
	ctx := context.Background()

	free, err := ambulances.FindAvailableByHospital(ctx, "General")
	require.NoError(t, err)
	require.NotNil(t, free)
	assert.Equal(t, busy.ID, free.ID)

	require.NoError(t, ambulances.Assign(ctx, busy.ID.Hex(), "INC-1", time.Now()))

	free, err = ambulances.FindAvailableByHospital(ctx, "General")
	require.NoError(t, err)
	assert.Nil(t, free)

	onDuty, err := ambulances.FindOnDutyByHospital(ctx, "General")
	require.NoError(t, err)
	require.NotNil(t, onDuty)
	assert.Equal(t, busy.ID, onDuty.ID)
}

func TestAssignments_ExistsAfterFirstInsert(t *testing.T) {
	assignments := New().Stores().Assignments
	ctx := context.Background()

	exists, err := assignments.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, assignments.Insert(ctx, &models.IncidentAssignment{IncidentID: "INC-1", Status: models.AssignmentStatusAccepted}))

	exists, err = assignments.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	n, err := assignments.CountByStatus(ctx, models.AssignmentStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
