package services

import (
	"context"
	"errors"
	"time"

	"swiftaid/interfaces"
	"swiftaid/models"
	"swiftaid/utils"

	"github.com/sirupsen/logrus"
)

type AmbulanceService struct {
	ambulances interfaces.AmbulanceStore
	incidents  interfaces.IncidentStore
	now        func() time.Time
}

func NewAmbulanceService(stores interfaces.Stores) *AmbulanceService {
	return &AmbulanceService{
		ambulances: stores.Ambulances,
		incidents:  stores.Incidents,
		now:        time.Now,
	}
}

// ListAssignments returns every dispatched ambulance with the incident it
// is dispatched to.
func (as *AmbulanceService) ListAssignments(ctx context.Context) (*models.AmbulanceAssignmentsResponse, error) {
	ambulances, err := as.ambulances.ListAssigned(ctx)
	if err != nil {
		return nil, err
	}

	assignments := make([]models.AmbulanceAssignment, 0, len(ambulances))
	for _, ambulance := range ambulances {
		details, err := as.incidentDetails(ctx, ambulance)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, projectAmbulanceAssignment(ambulance, details))
	}

	return &models.AmbulanceAssignmentsResponse{
		Success:       true,
		Assignments:   assignments,
		TotalAssigned: len(assignments),
	}, nil
}

func (as *AmbulanceService) GetAmbulance(ctx context.Context, id string) (*models.AmbulanceResponse, error) {
	ambulance, err := as.ambulances.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := as.incidentDetails(ctx, *ambulance)
	if err != nil {
		return nil, err
	}

	projected := projectAmbulance(*ambulance, details)
	return &projected, nil
}

// incidentDetails resolves the ambulance's incident reference. A dangling
// reference yields nil rather than an error.
func (as *AmbulanceService) incidentDetails(ctx context.Context, ambulance models.Ambulance) (*models.IncidentDetails, error) {
	if !ambulance.IsAssigned() {
		return nil, nil
	}

	incident, err := as.incidents.FindByReference(ctx, *ambulance.CurrentIncidentID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) || errors.Is(err, utils.ErrInvalidIdentifier) {
			logrus.WithFields(logrus.Fields{
				"ambulance_id": ambulance.ID.Hex(),
				"incident_id":  *ambulance.CurrentIncidentID,
			}).Warn("Ambulance references a missing incident")
			return nil, nil
		}
		return nil, err
	}
	return projectIncidentDetails(*incident), nil
}

// AssignAmbulance dispatches the ambulance to an existing incident.
func (as *AmbulanceService) AssignAmbulance(ctx context.Context, id, incidentID string) error {
	incident, err := as.incidents.FindByID(ctx, incidentID)
	if err != nil {
		return err
	}
	return as.ambulances.Assign(ctx, id, incident.ID.Hex(), as.now())
}

// UnassignAmbulance frees the ambulance. Unknown and already free
// ambulances fail alike with ErrNotFound.
func (as *AmbulanceService) UnassignAmbulance(ctx context.Context, id string) error {
	notFound := utils.ServiceError{
		Kind:    utils.ErrNotFound,
		Message: "Ambulance not found or already unassigned",
	}

	modified, err := as.ambulances.Unassign(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) || errors.Is(err, utils.ErrInvalidIdentifier) {
			return notFound
		}
		return err
	}
	if !modified {
		return notFound
	}
	return nil
}

func (as *AmbulanceService) DeleteAmbulance(ctx context.Context, id string) error {
	return as.ambulances.Delete(ctx, id)
}
