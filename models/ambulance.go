package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const AmbulanceStatusOnDuty = "on-duty"

// Ambulance is a vehicle belonging to a hospital. CurrentIncidentID is the
// hex id of the incident it is dispatched to, or nil when free.
type Ambulance struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	VehicleNumber     string             `json:"vehicle_number" bson:"vehicle_number"`
	DriverName        string             `json:"driver_name,omitempty" bson:"driver_name,omitempty"`
	Phone             string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Status            string             `json:"status,omitempty" bson:"status,omitempty"`
	HospitalName      string             `json:"hospital_name,omitempty" bson:"hospital_name,omitempty"`
	HospitalID        string             `json:"hospital_id,omitempty" bson:"hospital_id,omitempty"`
	CurrentIncidentID *string            `json:"current_incident_id" bson:"current_incident_id"`
	AssignmentTime    Timestamp          `json:"assignment_time" bson:"assignment_time"`
}

// IsAssigned reports whether the ambulance references an incident.
func (a Ambulance) IsAssigned() bool {
	return a.CurrentIncidentID != nil && *a.CurrentIncidentID != ""
}

type AmbulanceResponse struct {
	ID                string           `json:"_id"`
	VehicleNumber     string           `json:"vehicle_number"`
	DriverName        *string          `json:"driver_name"`
	Phone             *string          `json:"phone"`
	Status            *string          `json:"status"`
	HospitalName      *string          `json:"hospital_name"`
	CurrentIncidentID *string          `json:"current_incident_id"`
	AssignmentTime    Timestamp        `json:"assignment_time"`
	IncidentDetails   *IncidentDetails `json:"incident_details"`
}

// AmbulanceAssignment is one row of the dispatched-ambulance board.
type AmbulanceAssignment struct {
	AmbulanceID       string           `json:"ambulance_id"`
	VehicleNumber     string           `json:"vehicle_number"`
	DriverName        *string          `json:"driver_name"`
	Phone             *string          `json:"phone"`
	Status            *string          `json:"status"`
	HospitalName      *string          `json:"hospital_name"`
	CurrentIncidentID *string          `json:"current_incident_id"`
	IncidentDetails   *IncidentDetails `json:"incident_details"`
}

// IncidentDetails is the incident summary attached to a dispatched ambulance.
type IncidentDetails struct {
	IncidentID string    `json:"incident_id"`
	UserName   *string   `json:"user_name"`
	UserEmail  string    `json:"user_email"`
	Lat        *float64  `json:"lat"`
	Lng        *float64  `json:"lng"`
	Timestamp  Timestamp `json:"timestamp"`
}

type AmbulanceAssignmentsResponse struct {
	Success       bool                  `json:"success"`
	Assignments   []AmbulanceAssignment `json:"assignments"`
	TotalAssigned int                   `json:"total_assigned"`
}

type AssignAmbulanceRequest struct {
	IncidentID string `json:"incident_id" binding:"required"`
}
