package services

import (
	"context"
	"testing"
	"time"

	"swiftaid/models"
	"swiftaid/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAmbulanceService(f dispatchFixture) *AmbulanceService {
	svc := NewAmbulanceService(f.store.Stores())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestAssignAmbulance_RequiresIncident(t *testing.T) {
	f := newDispatchFixture()
	svc := newAmbulanceService(f)
	ctx := context.Background()

	err := svc.AssignAmbulance(ctx, f.generalAm.ID.Hex(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, utils.ErrNotFound)

	err = svc.AssignAmbulance(ctx, primitive.NewObjectID().Hex(), f.incident.ID.Hex())
	assert.ErrorIs(t, err, utils.ErrNotFound)

	require.NoError(t, svc.AssignAmbulance(ctx, f.generalAm.ID.Hex(), f.incident.ID.Hex()))

	ambulance, err := svc.GetAmbulance(ctx, f.generalAm.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, f.incident.ID.Hex(), *ambulance.CurrentIncidentID)
	assert.Equal(t, "2024-03-10T14:30:00Z", ambulance.AssignmentTime.String())
	require.NotNil(t, ambulance.IncidentDetails)
	assert.Equal(t, "asha@example.com", ambulance.IncidentDetails.UserEmail)
}

func TestUnassignAmbulance_OnlyOnce(t *testing.T) {
	f := newDispatchFixture()
	svc := newAmbulanceService(f)
	ctx := context.Background()

	require.NoError(t, svc.AssignAmbulance(ctx, f.cityAm.ID.Hex(), f.incident.ID.Hex()))

	require.NoError(t, svc.UnassignAmbulance(ctx, f.cityAm.ID.Hex()))

	err := svc.UnassignAmbulance(ctx, f.cityAm.ID.Hex())
	require.ErrorIs(t, err, utils.ErrNotFound)
	assert.Equal(t, "Ambulance not found or already unassigned", utils.PublicMessage(err))

	ambulance, err := svc.GetAmbulance(ctx, f.cityAm.ID.Hex())
	require.NoError(t, err)
	assert.Nil(t, ambulance.CurrentIncidentID)
	assert.True(t, ambulance.AssignmentTime.IsZero())
	assert.Nil(t, ambulance.IncidentDetails)
}

func TestUnassignAmbulance_UnknownOrMalformed(t *testing.T) {
	f := newDispatchFixture()
	svc := newAmbulanceService(f)

	assert.ErrorIs(t, svc.UnassignAmbulance(context.Background(), primitive.NewObjectID().Hex()), utils.ErrNotFound)
	assert.ErrorIs(t, svc.UnassignAmbulance(context.Background(), "xyz"), utils.ErrNotFound)
}

func TestListAssignments_ResolvesIncidentReferences(t *testing.T) {
	f := newDispatchFixture()
	svc := newAmbulanceService(f)
	ctx := context.Background()

	byHumanID := "INC-1"
	dangling := primitive.NewObjectID().Hex()
	f.store.AddAmbulance(models.Ambulance{VehicleNumber: "X-1", CurrentIncidentID: &byHumanID})
	f.store.AddAmbulance(models.Ambulance{VehicleNumber: "X-2", CurrentIncidentID: &dangling})
	require.NoError(t, svc.AssignAmbulance(ctx, f.generalAm.ID.Hex(), f.incident.ID.Hex()))

	response, err := svc.ListAssignments(ctx)
	require.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, 3, response.TotalAssigned)

	details := map[string]*models.IncidentDetails{}
	for _, assignment := range response.Assignments {
		details[assignment.VehicleNumber] = assignment.IncidentDetails
	}
	require.NotNil(t, details["GH-01"])
	assert.Equal(t, f.incident.ID.Hex(), details["GH-01"].IncidentID)
	require.NotNil(t, details["X-1"])
	assert.Equal(t, f.incident.ID.Hex(), details["X-1"].IncidentID)
	assert.Nil(t, details["X-2"])
}

func TestDeleteAmbulance(t *testing.T) {
	f := newDispatchFixture()
	svc := newAmbulanceService(f)
	ctx := context.Background()

	require.NoError(t, svc.DeleteAmbulance(ctx, f.cityAm.ID.Hex()))
	assert.ErrorIs(t, svc.DeleteAmbulance(ctx, f.cityAm.ID.Hex()), utils.ErrNotFound)

	_, err := svc.GetAmbulance(ctx, f.cityAm.ID.Hex())
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
