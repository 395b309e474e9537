package services

import (
	"context"

	"swiftaid/interfaces"
	"swiftaid/models"
)

// nameResolver resolves incident reporter names against the users
// collection. It remembers lookups for the lifetime of one request.
type nameResolver struct {
	users interfaces.UserStore
	names map[string]string
}

func newNameResolver(users interfaces.UserStore) *nameResolver {
	return &nameResolver{users: users, names: make(map[string]string)}
}

// Name returns the stored name, else the reporter's user name, else
// models.UnknownUserName.
func (r *nameResolver) Name(ctx context.Context, incident models.Incident) (string, error) {
	if incident.UserName != "" {
		return incident.UserName, nil
	}
	if name, ok := r.names[incident.UserEmail]; ok {
		return name, nil
	}

	name := models.UnknownUserName
	user, err := r.users.FindByEmail(ctx, incident.UserEmail)
	if err != nil {
		return "", err
	}
	if user != nil && user.Name != "" {
		name = user.Name
	}
	r.names[incident.UserEmail] = name
	return name, nil
}

func (r *nameResolver) Project(ctx context.Context, incident models.Incident) (models.IncidentResponse, error) {
	name, err := r.Name(ctx, incident)
	if err != nil {
		return models.IncidentResponse{}, err
	}
	return projectIncident(incident, name), nil
}

func (r *nameResolver) ProjectAll(ctx context.Context, incidents []models.Incident) ([]models.IncidentResponse, error) {
	out := make([]models.IncidentResponse, 0, len(incidents))
	for _, incident := range incidents {
		projected, err := r.Project(ctx, incident)
		if err != nil {
			return nil, err
		}
		out = append(out, projected)
	}
	return out, nil
}

func projectIncident(incident models.Incident, userName string) models.IncidentResponse {
	var speed float64
	if incident.Speed != nil {
		speed = *incident.Speed
	}
	return models.IncidentResponse{
		ID:         incident.ID.Hex(),
		IncidentID: models.Nullable(incident.IncidentID),
		UserEmail:  incident.UserEmail,
		UserName:   userName,
		Lat:        incident.Lat,
		Lng:        incident.Lng,
		AccelMag:   incident.AccelMag,
		Speed:      speed,
		Metadata:   incident.Metadata,
		Timestamp:  incident.Timestamp,
		CreatedAt:  incident.Timestamp,
		EmailsSent: incident.EmailsSent,
	}
}

func projectIncidentBrief(incident models.Incident) models.IncidentBrief {
	return models.IncidentBrief{
		ID:         incident.ID.Hex(),
		IncidentID: models.Nullable(incident.IncidentID),
		UserEmail:  incident.UserEmail,
		UserName:   models.Nullable(incident.UserName),
		Timestamp:  incident.Timestamp,
	}
}

func projectIncidentDetails(incident models.Incident) *models.IncidentDetails {
	return &models.IncidentDetails{
		IncidentID: incident.ID.Hex(),
		UserName:   models.Nullable(incident.UserName),
		UserEmail:  incident.UserEmail,
		Lat:        incident.Lat,
		Lng:        incident.Lng,
		Timestamp:  incident.Timestamp,
	}
}

func projectHospital(hospital models.Hospital) models.HospitalResponse {
	return models.HospitalResponse{
		ID:           hospital.ID.Hex(),
		HospitalName: hospital.HospitalName,
		Email:        models.Nullable(hospital.Email),
		Phone:        models.Nullable(hospital.Phone),
		Location:     hospital.Location,
	}
}

func projectPoliceOfficer(officer models.PoliceOfficer) models.PoliceOfficerResponse {
	status := officer.Status
	if status == "" {
		status = models.PoliceStatusActive
	}
	return models.PoliceOfficerResponse{
		ID:            officer.ID.Hex(),
		Username:      officer.Username,
		Email:         models.Nullable(officer.Email),
		FullName:      models.Nullable(officer.FullName),
		PoliceStation: models.Nullable(officer.PoliceStation),
		Designation:   models.Nullable(officer.Designation),
		Role:          models.Nullable(officer.Role),
		Status:        status,
		CreatedAt:     officer.CreatedAt,
		LastLogin:     officer.LastLogin,
	}
}

func projectAmbulance(ambulance models.Ambulance, details *models.IncidentDetails) models.AmbulanceResponse {
	return models.AmbulanceResponse{
		ID:                ambulance.ID.Hex(),
		VehicleNumber:     ambulance.VehicleNumber,
		DriverName:        models.Nullable(ambulance.DriverName),
		Phone:             models.Nullable(ambulance.Phone),
		Status:            models.Nullable(ambulance.Status),
		HospitalName:      models.Nullable(ambulance.HospitalName),
		CurrentIncidentID: ambulance.CurrentIncidentID,
		AssignmentTime:    ambulance.AssignmentTime,
		IncidentDetails:   details,
	}
}

func projectAmbulanceAssignment(ambulance models.Ambulance, details *models.IncidentDetails) models.AmbulanceAssignment {
	return models.AmbulanceAssignment{
		AmbulanceID:       ambulance.ID.Hex(),
		VehicleNumber:     ambulance.VehicleNumber,
		DriverName:        models.Nullable(ambulance.DriverName),
		Phone:             models.Nullable(ambulance.Phone),
		Status:            models.Nullable(ambulance.Status),
		HospitalName:      models.Nullable(ambulance.HospitalName),
		CurrentIncidentID: ambulance.CurrentIncidentID,
		IncidentDetails:   details,
	}
}
