package repositories

import (
	"swiftaid/interfaces"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	_ interfaces.IncidentStore   = (*IncidentRepository)(nil)
	_ interfaces.UserStore       = (*UserRepository)(nil)
	_ interfaces.ProfileStore    = (*ProfileRepository)(nil)
	_ interfaces.ContactStore    = (*ContactRepository)(nil)
	_ interfaces.HospitalStore   = (*HospitalRepository)(nil)
	_ interfaces.PoliceStore     = (*PoliceRepository)(nil)
	_ interfaces.AmbulanceStore  = (*AmbulanceRepository)(nil)
	_ interfaces.AssignmentStore = (*AssignmentRepository)(nil)
)

// NewStores wires every MongoDB repository against db.
func NewStores(db *mongo.Database) interfaces.Stores {
	return interfaces.Stores{
		Incidents:   NewIncidentRepository(db),
		Users:       NewUserRepository(db),
		Profiles:    NewProfileRepository(db),
		Contacts:    NewContactRepository(db),
		Hospitals:   NewHospitalRepository(db),
		Police:      NewPoliceRepository(db),
		Ambulances:  NewAmbulanceRepository(db),
		Assignments: NewAssignmentRepository(db),
	}
}
