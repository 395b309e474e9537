package interfaces

import (
	"context"
	"time"

	"swiftaid/models"
)

// IncidentFilter selects incidents for counting. Zero fields match
// everything. Since/Until bound native datetime timestamps only.
type IncidentFilter struct {
	UserEmail string
	Since     *time.Time // inclusive
	Until     *time.Time // exclusive
	Manual    *bool
	SOSType   string
}

// Store interfaces implemented by the MongoDB repositories and the in-memory
// store. Lookups by id fail with utils.ErrInvalidIdentifier for malformed ids
// and utils.ErrNotFound for unknown ones.

type IncidentStore interface {
	FindByID(ctx context.Context, id string) (*models.Incident, error)
	// FindByReference resolves a hex _id first and the human incident_id second.
	FindByReference(ctx context.Context, ref string) (*models.Incident, error)
	// List returns incidents newest first. A limit of 0 means no limit.
	List(ctx context.Context, skip, limit int64) ([]models.Incident, error)
	ListByUser(ctx context.Context, email string, limit int64) ([]models.Incident, error)
	Count(ctx context.Context, filter IncidentFilter) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, email string) (int64, error)
	HourlyDistribution(ctx context.Context) ([24]int64, error)
	SumEmailsSent(ctx context.Context) (int64, error)
}

type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	// FindByEmail returns nil without error when no user has the email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

type ProfileStore interface {
	// FindByUser returns nil without error when the user has no profile.
	FindByUser(ctx context.Context, email string) (*models.Profile, error)
	DeleteByUser(ctx context.Context, email string) (int64, error)
}

type ContactStore interface {
	List(ctx context.Context) ([]models.Contact, error)
	ListByUser(ctx context.Context, email string) ([]models.Contact, error)
	DeleteByUser(ctx context.Context, email string) (int64, error)
}

type HospitalStore interface {
	// List returns hospitals in natural order. A limit of 0 means no limit.
	List(ctx context.Context, limit int64) ([]models.Hospital, error)
	FindByID(ctx context.Context, id string) (*models.Hospital, error)
	// FindByName returns the first hospital with the name, or nil.
	FindByName(ctx context.Context, name string) (*models.Hospital, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

type PoliceStore interface {
	List(ctx context.Context) ([]models.PoliceOfficer, error)
	FindByID(ctx context.Context, id string) (*models.PoliceOfficer, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

type AmbulanceStore interface {
	FindByID(ctx context.Context, id string) (*models.Ambulance, error)
	// ListAssigned returns ambulances whose current_incident_id is set.
	ListAssigned(ctx context.Context) ([]models.Ambulance, error)
	ListByIncident(ctx context.Context, incidentID string) ([]models.Ambulance, error)
	// FindOnDutyByHospital returns the first on-duty ambulance of the
	// hospital, or nil.
	FindOnDutyByHospital(ctx context.Context, hospitalName string) (*models.Ambulance, error)
	// FindAvailableByHospital is FindOnDutyByHospital restricted to
	// ambulances not linked to any incident.
	FindAvailableByHospital(ctx context.Context, hospitalName string) (*models.Ambulance, error)
	Assign(ctx context.Context, id, incidentID string, at time.Time) error
	// Unassign clears the incident reference and reports whether a document
	// was modified.
	Unassign(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type AssignmentStore interface {
	// Exists reports whether the incident_assignments collection exists.
	Exists(ctx context.Context) (bool, error)
	ListByIncident(ctx context.Context, incidentID string) ([]models.IncidentAssignment, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	Insert(ctx context.Context, assignment *models.IncidentAssignment) error
}

// Stores bundles every store a service may need.
type Stores struct {
	Incidents   IncidentStore
	Users       UserStore
	Profiles    ProfileStore
	Contacts    ContactStore
	Hospitals   HospitalStore
	Police      PoliceStore
	Ambulances  AmbulanceStore
	Assignments AssignmentStore
}
