package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// PlaceholderDistance is reported for every hospital until real proximity
// is computed.
const PlaceholderDistance = "5 km"

// Hospital is a hospital account from the hospital_user collection.
type Hospital struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	HospitalName string             `json:"hospital_name" bson:"hospital_name"`
	Email        string             `json:"email,omitempty" bson:"email,omitempty"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Location     interface{}        `json:"location,omitempty" bson:"location,omitempty"`
}

type HospitalResponse struct {
	ID           string      `json:"_id"`
	HospitalName string      `json:"hospital_name"`
	Email        *string     `json:"email"`
	Phone        *string     `json:"phone"`
	Location     interface{} `json:"location"`
}

// NearbyHospital is a hospital annotated with its distance to an incident.
type NearbyHospital struct {
	HospitalResponse
	Distance string `json:"distance"`
}

// RespondingHospital is a hospital annotated with its assignment state for
// one incident.
type RespondingHospital struct {
	HospitalResponse
	Status     string    `json:"status"`
	AcceptedAt Timestamp `json:"accepted_at"`
}

// PoliceOfficer is an account from the POLICE_users collection.
type PoliceOfficer struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Username      string             `json:"username" bson:"username"`
	Email         string             `json:"email,omitempty" bson:"email,omitempty"`
	FullName      string             `json:"full_name,omitempty" bson:"full_name,omitempty"`
	PoliceStation string             `json:"police_station,omitempty" bson:"police_station,omitempty"`
	Designation   string             `json:"designation,omitempty" bson:"designation,omitempty"`
	Role          string             `json:"role,omitempty" bson:"role,omitempty"`
	Status        string             `json:"status,omitempty" bson:"status,omitempty"`
	CreatedAt     Timestamp          `json:"created_at" bson:"created_at,omitempty"`
	LastLogin     Timestamp          `json:"last_login" bson:"last_login,omitempty"`
}

const PoliceStatusActive = "active"

type PoliceOfficerResponse struct {
	ID            string    `json:"_id"`
	Username      string    `json:"username"`
	Email         *string   `json:"email"`
	FullName      *string   `json:"full_name"`
	PoliceStation *string   `json:"police_station"`
	Designation   *string   `json:"designation"`
	Role          *string   `json:"role"`
	Status        string    `json:"status"`
	CreatedAt     Timestamp `json:"created_at"`
	LastLogin     Timestamp `json:"last_login"`
}
