package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a mobile app account. Email is the join key for profiles,
// contacts and incidents.
type User struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Username  string             `json:"username,omitempty" bson:"username,omitempty"`
	Name      string             `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt Timestamp          `json:"created_at" bson:"created_at,omitempty"`
}

// Profile is the optional per-user medical/personal profile. Its fields are
// owned by the mobile app and are passed through as stored.
type Profile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserEmail string             `bson:"user_email"`
	Fields    bson.M             `bson:",inline"`
}

func (p Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(flatten(p.ID, p.UserEmail, p.Fields))
}

// Contact is an emergency contact registered by a user.
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserEmail string             `bson:"user_email"`
	Name      string             `bson:"name,omitempty"`
	Email     string             `bson:"email,omitempty"`
	Phone     string             `bson:"phone,omitempty"`
	Fields    bson.M             `bson:",inline"`
}

func (c Contact) MarshalJSON() ([]byte, error) {
	out := flatten(c.ID, c.UserEmail, c.Fields)
	if c.Name != "" {
		out["name"] = c.Name
	}
	if c.Email != "" {
		out["email"] = c.Email
	}
	if c.Phone != "" {
		out["phone"] = c.Phone
	}
	return json.Marshal(out)
}

func flatten(id primitive.ObjectID, userEmail string, fields bson.M) map[string]interface{} {
	out := make(map[string]interface{}, len(fields)+2)
	for k, v := range fields {
		out[k] = v
	}
	out["_id"] = id.Hex()
	out["user_email"] = userEmail
	return out
}

// UserResponse is the admin view of a user with joined profile, contacts
// and incident counters.
type UserResponse struct {
	ID                string    `json:"_id"`
	Name              *string   `json:"name"`
	Email             string    `json:"email"`
	Username          *string   `json:"username"`
	CreatedAt         Timestamp `json:"created_at"`
	Profile           *Profile  `json:"profile"`
	EmergencyContacts []Contact `json:"emergency_contacts"`
	TotalIncidents    int64     `json:"total_incidents"`
	LastIncident      Timestamp `json:"last_incident"`
}

// UserDetailResponse adds the most recent incidents to UserResponse.
type UserDetailResponse struct {
	UserResponse
	RecentIncidents []IncidentResponse `json:"recent_incidents"`
}
