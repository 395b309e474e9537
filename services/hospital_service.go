package services

import (
	"context"

	"swiftaid/interfaces"
	"swiftaid/models"
)

type HospitalService struct {
	hospitals interfaces.HospitalStore
}

func NewHospitalService(stores interfaces.Stores) *HospitalService {
	return &HospitalService{hospitals: stores.Hospitals}
}

func (hs *HospitalService) ListHospitals(ctx context.Context) ([]models.HospitalResponse, error) {
	hospitals, err := hs.hospitals.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	out := make([]models.HospitalResponse, 0, len(hospitals))
	for _, hospital := range hospitals {
		out = append(out, projectHospital(hospital))
	}
	return out, nil
}

func (hs *HospitalService) GetHospital(ctx context.Context, id string) (*models.HospitalResponse, error) {
	hospital, err := hs.hospitals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	projected := projectHospital(*hospital)
	return &projected, nil
}

func (hs *HospitalService) DeleteHospital(ctx context.Context, id string) error {
	return hs.hospitals.Delete(ctx, id)
}
