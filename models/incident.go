package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SOSTypeSelf  = "self"
	SOSTypeOther = "other"

	IncidentTypeManualSelf  = "Manual SOS (Self)"
	IncidentTypeManualOther = "Manual SOS (Others)"
	IncidentTypeAuto        = "Auto-detected"

	UnknownUserName = "Unknown User"
)

// Incident is a reported emergency as written by the ingestion service.
type Incident struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	IncidentID string             `json:"incident_id,omitempty" bson:"incident_id,omitempty"`
	UserEmail  string             `json:"user_email" bson:"user_email"`
	UserName   string             `json:"user_name,omitempty" bson:"user_name,omitempty"`
	Lat        *float64           `json:"lat" bson:"lat,omitempty"`
	Lng        *float64           `json:"lng" bson:"lng,omitempty"`
	AccelMag   *float64           `json:"accel_mag" bson:"accel_mag,omitempty"`
	Speed      *float64           `json:"speed" bson:"speed,omitempty"`
	Metadata   IncidentMetadata   `json:"metadata" bson:"metadata"`
	Timestamp  Timestamp          `json:"timestamp" bson:"timestamp,omitempty"`
	EmailsSent int64              `json:"emails_sent" bson:"emails_sent,omitempty"`
}

// IncidentMetadata carries the SOS flags. Keys other than manual and
// sos_type are kept in Extra and rendered back unchanged.
type IncidentMetadata struct {
	Manual  bool   `json:"manual" bson:"manual"`
	SOSType string `json:"sos_type,omitempty" bson:"sos_type,omitempty"`
	Extra   bson.M `json:"-" bson:",inline"`
}

// Type returns the human-readable incident category.
func (m IncidentMetadata) Type() string {
	switch {
	case m.Manual && m.SOSType == SOSTypeSelf:
		return IncidentTypeManualSelf
	case m.Manual && m.SOSType == SOSTypeOther:
		return IncidentTypeManualOther
	default:
		return IncidentTypeAuto
	}
}

func (m IncidentMetadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(m.Extra)+2)
	for k, v := range m.Extra {
		out[k] = v
	}
	out["manual"] = m.Manual
	if m.SOSType != "" {
		out["sos_type"] = m.SOSType
	}
	return json.Marshal(out)
}

// IncidentResponse is the dashboard view of an incident.
type IncidentResponse struct {
	ID         string           `json:"_id"`
	IncidentID *string          `json:"incident_id"`
	UserEmail  string           `json:"user_email"`
	UserName   string           `json:"user_name"`
	Lat        *float64         `json:"lat"`
	Lng        *float64         `json:"lng"`
	AccelMag   *float64         `json:"accel_mag"`
	Speed      float64          `json:"speed"`
	Metadata   IncidentMetadata `json:"metadata"`
	Timestamp  Timestamp        `json:"timestamp"`
	CreatedAt  Timestamp        `json:"created_at"`
	EmailsSent int64            `json:"emails_sent"`
}

// IncidentBrief is the short incident header of a response state.
type IncidentBrief struct {
	ID         string    `json:"_id"`
	IncidentID *string   `json:"incident_id"`
	UserEmail  string    `json:"user_email"`
	UserName   *string   `json:"user_name"`
	Timestamp  Timestamp `json:"timestamp"`
}

// IncidentTypeCounts is the manual/auto breakdown shown on the dashboard.
type IncidentTypeCounts struct {
	ManualSelf   int64 `json:"manual_self"`
	ManualOther  int64 `json:"manual_other"`
	AutoDetected int64 `json:"auto_detected"`
}

// Nullable maps the empty string to a JSON null.
func Nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
