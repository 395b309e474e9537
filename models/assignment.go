package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	AssignmentStatusNotified = "notified"
	AssignmentStatusAccepted = "accepted"
	AssignmentStatusDeclined = "declined"
	AssignmentStatusPending  = "pending"
)

// IncidentAssignment links an incident to a hospital's response. HospitalID
// is checked against hospital_user on write; HospitalName is kept for
// records created before the id existed.
type IncidentAssignment struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	IncidentID   string             `json:"incident_id" bson:"incident_id" validate:"required,object_id"`
	HospitalID   string             `json:"hospital_id,omitempty" bson:"hospital_id,omitempty" validate:"omitempty,object_id"`
	HospitalName string             `json:"hospital_name" bson:"hospital_name" validate:"required"`
	Status       string             `json:"status" bson:"status" validate:"required,assignment_status"`
	AssignedAt   Timestamp          `json:"assigned_at" bson:"assigned_at,omitempty"`
	AcceptedAt   Timestamp          `json:"accepted_at" bson:"accepted_at"`
}

// IncidentResponseState answers "which hospitals and ambulances are
// responding to this incident".
type IncidentResponseState struct {
	Incident             IncidentBrief                `json:"incident"`
	NearbyHospitals      []NearbyHospital             `json:"nearby_hospitals"`
	AcceptedHospitals    []RespondingHospital         `json:"accepted_hospitals"`
	AmbulanceAssignments map[string]AmbulanceResponse `json:"ambulance_assignments"`
}

// IncidentResponseSummary is the per-incident row of the assignment board.
type IncidentResponseSummary struct {
	ID                     string               `json:"_id"`
	IncidentID             *string              `json:"incident_id"`
	UserName               *string              `json:"user_name"`
	UserEmail              string               `json:"user_email"`
	Timestamp              Timestamp            `json:"timestamp"`
	HospitalAssignments    []IncidentAssignment `json:"hospital_assignments"`
	AmbulanceAssignments   []AmbulanceResponse  `json:"ambulance_assignments"`
	TotalHospitalsNotified int                  `json:"total_hospitals_notified"`
	HospitalsAccepted      int                  `json:"hospitals_accepted"`
	AmbulancesAssigned     int                  `json:"ambulances_assigned"`
}

type TestAssignmentsResult struct {
	Success            bool   `json:"success"`
	Message            string `json:"message"`
	AssignmentsCreated int    `json:"assignments_created"`
}
