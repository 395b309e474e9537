package services

import (
	"context"

	"swiftaid/interfaces"
	"swiftaid/models"
)

type IncidentService struct {
	incidents interfaces.IncidentStore
	users     interfaces.UserStore
}

func NewIncidentService(stores interfaces.Stores) *IncidentService {
	return &IncidentService{
		incidents: stores.Incidents,
		users:     stores.Users,
	}
}

// ListIncidents returns one page of incidents, newest first.
func (is *IncidentService) ListIncidents(ctx context.Context, page models.PaginationRequest) ([]models.IncidentResponse, error) {
	incidents, err := is.incidents.List(ctx, page.Skip(), int64(page.Limit))
	if err != nil {
		return nil, err
	}
	return newNameResolver(is.users).ProjectAll(ctx, incidents)
}

func (is *IncidentService) GetIncident(ctx context.Context, id string) (*models.IncidentResponse, error) {
	incident, err := is.incidents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	projected, err := newNameResolver(is.users).Project(ctx, *incident)
	if err != nil {
		return nil, err
	}
	return &projected, nil
}

func (is *IncidentService) DeleteIncident(ctx context.Context, id string) error {
	return is.incidents.Delete(ctx, id)
}
