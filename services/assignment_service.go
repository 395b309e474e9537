package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"swiftaid/interfaces"
	"swiftaid/models"
	"swiftaid/utils"

	"github.com/sirupsen/logrus"
)

const (
	testAssignmentIncidents = 5
	testAssignmentHospitals = 2
)

// AssignmentService joins incidents, hospital assignments and ambulances into
// the response state shown on the dispatch board. Nothing is cached; every
// call re-reads the stores.
type AssignmentService struct {
	incidents   interfaces.IncidentStore
	hospitals   interfaces.HospitalStore
	ambulances  interfaces.AmbulanceStore
	assignments interfaces.AssignmentStore
	validator   *utils.ValidationService
	now         func() time.Time
}

func NewAssignmentService(stores interfaces.Stores) *AssignmentService {
	return &AssignmentService{
		incidents:   stores.Incidents,
		hospitals:   stores.Hospitals,
		ambulances:  stores.Ambulances,
		assignments: stores.Assignments,
		validator:   utils.NewValidationService(),
		now:         time.Now,
	}
}

// GetIncidentResponseState reports every hospital near the incident, the
// hospitals that responded to it and an on-duty ambulance per responding
// hospital.
func (as *AssignmentService) GetIncidentResponseState(ctx context.Context, incidentID string) (*models.IncidentResponseState, error) {
	incident, err := as.incidents.FindByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}

	hospitals, err := as.hospitals.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	assignments, err := as.assignmentsFor(ctx, incident.ID.Hex())
	if err != nil {
		return nil, err
	}

	state := &models.IncidentResponseState{
		Incident:             projectIncidentBrief(*incident),
		NearbyHospitals:      make([]models.NearbyHospital, 0, len(hospitals)),
		AcceptedHospitals:    make([]models.RespondingHospital, 0, len(assignments)),
		AmbulanceAssignments: make(map[string]models.AmbulanceResponse),
	}

	for _, hospital := range hospitals {
		state.NearbyHospitals = append(state.NearbyHospitals, models.NearbyHospital{
			HospitalResponse: projectHospital(hospital),
			Distance:         models.PlaceholderDistance,
		})
	}

	for _, assignment := range assignments {
		hospital, err := as.resolveHospital(ctx, assignment)
		if err != nil {
			return nil, err
		}
		if hospital != nil {
			status := assignment.Status
			if status == "" {
				status = models.AssignmentStatusPending
			}
			state.AcceptedHospitals = append(state.AcceptedHospitals, models.RespondingHospital{
				HospitalResponse: projectHospital(*hospital),
				Status:           status,
				AcceptedAt:       assignment.AcceptedAt,
			})
		}

		if _, seen := state.AmbulanceAssignments[assignment.HospitalName]; seen {
			continue
		}
		ambulance, err := as.ambulances.FindOnDutyByHospital(ctx, assignment.HospitalName)
		if err != nil {
			return nil, err
		}
		if ambulance != nil {
			state.AmbulanceAssignments[assignment.HospitalName] = projectAmbulance(*ambulance, nil)
		}
	}

	return state, nil
}

// GetAllIncidentResponseStates summarises the response to every incident,
// newest first.
func (as *AssignmentService) GetAllIncidentResponseStates(ctx context.Context) ([]models.IncidentResponseSummary, error) {
	incidents, err := as.incidents.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	exists, err := as.assignments.Exists(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.IncidentResponseSummary, 0, len(incidents))
	for _, incident := range incidents {
		incidentID := incident.ID.Hex()

		assignments := []models.IncidentAssignment{}
		if exists {
			assignments, err = as.assignments.ListByIncident(ctx, incidentID)
			if err != nil {
				return nil, err
			}
		}

		ambulances, err := as.ambulances.ListByIncident(ctx, incidentID)
		if err != nil {
			return nil, err
		}

		accepted := 0
		for _, assignment := range assignments {
			if assignment.Status == models.AssignmentStatusAccepted {
				accepted++
			}
		}

		dispatched := make([]models.AmbulanceResponse, 0, len(ambulances))
		for _, ambulance := range ambulances {
			dispatched = append(dispatched, projectAmbulance(ambulance, nil))
		}

		summaries = append(summaries, models.IncidentResponseSummary{
			ID:                     incidentID,
			IncidentID:             models.Nullable(incident.IncidentID),
			UserName:               models.Nullable(incident.UserName),
			UserEmail:              incident.UserEmail,
			Timestamp:              incident.Timestamp,
			HospitalAssignments:    assignments,
			AmbulanceAssignments:   dispatched,
			TotalHospitalsNotified: len(assignments),
			HospitalsAccepted:      accepted,
			AmbulancesAssigned:     len(ambulances),
		})
	}

	return summaries, nil
}

func (as *AssignmentService) assignmentsFor(ctx context.Context, incidentID string) ([]models.IncidentAssignment, error) {
	exists, err := as.assignments.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []models.IncidentAssignment{}, nil
	}
	return as.assignments.ListByIncident(ctx, incidentID)
}

// resolveHospital follows the typed hospital_id when present and falls back
// to the first hospital carrying the assignment's hospital_name.
func (as *AssignmentService) resolveHospital(ctx context.Context, assignment models.IncidentAssignment) (*models.Hospital, error) {
	if assignment.HospitalID != "" {
		hospital, err := as.hospitals.FindByID(ctx, assignment.HospitalID)
		if err == nil {
			return hospital, nil
		}
		if !errors.Is(err, utils.ErrNotFound) && !errors.Is(err, utils.ErrInvalidIdentifier) {
			return nil, err
		}
	}
	if assignment.HospitalName == "" {
		return nil, nil
	}
	return as.hospitals.FindByName(ctx, assignment.HospitalName)
}

// CreateAssignment records a hospital's response to an incident. The
// incident and the referenced hospital must exist.
func (as *AssignmentService) CreateAssignment(ctx context.Context, assignment *models.IncidentAssignment) error {
	if _, err := as.incidents.FindByID(ctx, assignment.IncidentID); err != nil {
		return err
	}

	if assignment.HospitalID != "" {
		hospital, err := as.hospitals.FindByID(ctx, assignment.HospitalID)
		if err != nil {
			return err
		}
		if assignment.HospitalName == "" {
			assignment.HospitalName = hospital.HospitalName
		}
	}

	if assignment.AssignedAt.IsZero() {
		assignment.AssignedAt = models.NewTimestamp(as.now())
	}

	if err := as.validator.Validate(assignment); err != nil {
		return err
	}

	return as.assignments.Insert(ctx, assignment)
}

// CreateTestAssignments seeds demo data: each of the newest incidents is
// assigned to the first two hospitals, the first accepting and the second
// notified, and a free on-duty ambulance of the accepting hospital is
// dispatched. Ambulances already linked to an incident are left alone.
// Writes are not rolled back on failure.
func (as *AssignmentService) CreateTestAssignments(ctx context.Context) (*models.TestAssignmentsResult, error) {
	incidents, err := as.incidents.List(ctx, 0, testAssignmentIncidents)
	if err != nil {
		return nil, err
	}

	hospitals, err := as.hospitals.List(ctx, testAssignmentHospitals)
	if err != nil {
		return nil, err
	}

	created := 0
	fail := func(step string, err error) (*models.TestAssignmentsResult, error) {
		logrus.WithFields(logrus.Fields{
			"failed_step":         step,
			"assignments_created": created,
		}).Errorf("Test assignment seeding incomplete: %v", err)
		return nil, utils.NewInternalError("Failed to create test assignments", err)
	}

	for _, incident := range incidents {
		incidentID := incident.ID.Hex()

		for i, hospital := range hospitals {
			now := as.now()
			assignment := models.IncidentAssignment{
				IncidentID:   incidentID,
				HospitalID:   hospital.ID.Hex(),
				HospitalName: hospital.HospitalName,
				Status:       models.AssignmentStatusNotified,
				AssignedAt:   models.NewTimestamp(now),
			}
			if i == 0 {
				assignment.Status = models.AssignmentStatusAccepted
				assignment.AcceptedAt = models.NewTimestamp(now)
			}

			if err := as.CreateAssignment(ctx, &assignment); err != nil {
				return fail("insert assignment", err)
			}
			created++

			if i != 0 {
				continue
			}
			ambulance, err := as.ambulances.FindAvailableByHospital(ctx, hospital.HospitalName)
			if err != nil {
				return fail("find ambulance", err)
			}
			if ambulance == nil {
				continue
			}
			if err := as.ambulances.Assign(ctx, ambulance.ID.Hex(), incidentID, now); err != nil {
				return fail("assign ambulance", err)
			}
		}
	}

	return &models.TestAssignmentsResult{
		Success:            true,
		Message:            fmt.Sprintf("Created %d test assignments", created),
		AssignmentsCreated: created,
	}, nil
}
