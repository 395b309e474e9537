package services

import (
	"context"

	"swiftaid/interfaces"
	"swiftaid/models"
)

type PoliceService struct {
	police interfaces.PoliceStore
}

func NewPoliceService(stores interfaces.Stores) *PoliceService {
	return &PoliceService{police: stores.Police}
}

func (ps *PoliceService) ListOfficers(ctx context.Context) ([]models.PoliceOfficerResponse, error) {
	officers, err := ps.police.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.PoliceOfficerResponse, 0, len(officers))
	for _, officer := range officers {
		out = append(out, projectPoliceOfficer(officer))
	}
	return out, nil
}

func (ps *PoliceService) GetOfficer(ctx context.Context, id string) (*models.PoliceOfficerResponse, error) {
	officer, err := ps.police.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	projected := projectPoliceOfficer(*officer)
	return &projected, nil
}

func (ps *PoliceService) DeleteOfficer(ctx context.Context, id string) error {
	return ps.police.Delete(ctx, id)
}
