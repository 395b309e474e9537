package services

import (
	"time"

	"swiftaid/models"
	"swiftaid/repositories/memory"
)

var fixedNow = time.Date(2024, time.March, 10, 14, 30, 0, 0, time.UTC)

func float(v float64) *float64 { return &v }

func strPtr(s string) *string { return &s }

func at(day, hour int) models.Timestamp {
	return models.NewTimestamp(time.Date(2024, time.March, day, hour, 0, 0, 0, time.UTC))
}

// dispatchFixture seeds two hospitals, each with an on-duty ambulance, and
// one incident.
type dispatchFixture struct {
	store     *memory.Store
	incident  models.Incident
	general   models.Hospital
	city      models.Hospital
	generalAm models.Ambulance
	cityAm    models.Ambulance
}

func newDispatchFixture() dispatchFixture {
	store := memory.New()
	f := dispatchFixture{store: store}

	f.general = store.AddHospital(models.Hospital{HospitalName: "General Hospital", Email: "er@general.test"})
	f.city = store.AddHospital(models.Hospital{HospitalName: "City Clinic"})

	store.AddAmbulance(models.Ambulance{VehicleNumber: "GH-00", HospitalName: "General Hospital", Status: "maintenance"})
	f.generalAm = store.AddAmbulance(models.Ambulance{VehicleNumber: "GH-01", HospitalName: "General Hospital", Status: models.AmbulanceStatusOnDuty})
	f.cityAm = store.AddAmbulance(models.Ambulance{VehicleNumber: "CC-01", HospitalName: "City Clinic", Status: models.AmbulanceStatusOnDuty})

	f.incident = store.AddIncident(models.Incident{
		IncidentID: "INC-1",
		UserEmail:  "asha@example.com",
		UserName:   "Asha",
		Lat:        float(12.97),
		Lng:        float(77.59),
		Metadata:   models.IncidentMetadata{Manual: true, SOSType: models.SOSTypeSelf},
		Timestamp:  at(10, 9),
	})
	return f
}
