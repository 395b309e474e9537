// Package memory is an in-process implementation of the store interfaces.
// It backs the tests and STORE_BACKEND=memory.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"swiftaid/interfaces"
	"swiftaid/models"
	"swiftaid/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ interfaces.IncidentStore   = incidentStore{}
	_ interfaces.UserStore       = userStore{}
	_ interfaces.ProfileStore    = profileStore{}
	_ interfaces.ContactStore    = contactStore{}
	_ interfaces.HospitalStore   = hospitalStore{}
	_ interfaces.PoliceStore     = policeStore{}
	_ interfaces.AmbulanceStore  = ambulanceStore{}
	_ interfaces.AssignmentStore = assignmentStore{}
)

type Store struct {
	mu sync.RWMutex

	incidents   []models.Incident
	users       []models.User
	profiles    []models.Profile
	contacts    []models.Contact
	hospitals   []models.Hospital
	police      []models.PoliceOfficer
	ambulances  []models.Ambulance
	assignments []models.IncidentAssignment

	// incident_assignments is created lazily by its first insert
	assignmentsCreated bool
}

func New() *Store {
	return &Store{}
}

// Stores exposes s through the store interfaces.
func (s *Store) Stores() interfaces.Stores {
	return interfaces.Stores{
		Incidents:   incidentStore{s},
		Users:       userStore{s},
		Profiles:    profileStore{s},
		Contacts:    contactStore{s},
		Hospitals:   hospitalStore{s},
		Police:      policeStore{s},
		Ambulances:  ambulanceStore{s},
		Assignments: assignmentStore{s},
	}
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Seeding helpers. Each assigns an id when the document has none and
// returns the stored copy.

func (s *Store) AddIncident(doc models.Incident) models.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	s.incidents = append(s.incidents, doc)
	return doc
}

func (s *Store) AddUser(doc models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	s.users = append(s.users, doc)
	return doc
}

func (s *Store) AddProfile(doc models.Profile) models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	s.profiles = append(s.profiles, doc)
	return doc
}

func (s *Store) AddContact(doc models.Contact) models.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	s.contacts = append(s.contacts, doc)
	return doc
}

func (s *Store) AddHospital(doc models.Hospital) models.Hospital {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	s.hospitals = append(s.hospitals, doc)
	return doc
}

func (s *Store) AddPoliceOfficer(doc models.PoliceOfficer) models.PoliceOfficer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	s.police = append(s.police, doc)
	return doc
}

func (s *Store) AddAmbulance(doc models.Ambulance) models.Ambulance {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	s.ambulances = append(s.ambulances, doc)
	return doc
}

func parseID(resource, id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, utils.NewInvalidIdentifierError(resource, id)
	}
	return objectID, nil
}

// timestampRank orders stored timestamps the way MongoDB sorts mixed BSON
// types: missing, then strings, then dates.
func timestampRank(ts models.Timestamp) int {
	if ts.IsZero() {
		return 0
	}
	if _, ok := ts.Time(); ok {
		return 2
	}
	return 1
}

func newer(a, b models.Timestamp) bool {
	ra, rb := timestampRank(a), timestampRank(b)
	if ra != rb {
		return ra > rb
	}
	if ta, ok := a.Time(); ok {
		tb, _ := b.Time()
		return ta.After(tb)
	}
	return a.String() > b.String()
}

func page[T any](docs []T, skip, limit int64) []T {
	if skip >= int64(len(docs)) {
		return []T{}
	}
	docs = docs[skip:]
	if limit > 0 && limit < int64(len(docs)) {
		docs = docs[:limit]
	}
	return docs
}

type incidentStore struct{ s *Store }

func (is incidentStore) FindByID(ctx context.Context, id string) (*models.Incident, error) {
	objectID, err := parseID("Incident", id)
	if err != nil {
		return nil, err
	}
	is.s.mu.RLock()
	defer is.s.mu.RUnlock()
	for _, doc := range is.s.incidents {
		if doc.ID == objectID {
			return &doc, nil
		}
	}
	return nil, utils.NewNotFoundError("Incident")
}

func (is incidentStore) FindByReference(ctx context.Context, ref string) (*models.Incident, error) {
	if primitive.IsValidObjectID(ref) {
		if doc, err := is.FindByID(ctx, ref); err == nil {
			return doc, nil
		}
	}
	is.s.mu.RLock()
	defer is.s.mu.RUnlock()
	for _, doc := range is.s.incidents {
		if doc.IncidentID == ref {
			return &doc, nil
		}
	}
	return nil, utils.NewNotFoundError("Incident")
}

func (is incidentStore) sorted(match func(models.Incident) bool) []models.Incident {
	is.s.mu.RLock()
	out := []models.Incident{}
	for _, doc := range is.s.incidents {
		if match(doc) {
			out = append(out, doc)
		}
	}
	is.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return newer(out[i].Timestamp, out[j].Timestamp)
	})
	return out
}

func (is incidentStore) List(ctx context.Context, skip, limit int64) ([]models.Incident, error) {
	all := is.sorted(func(models.Incident) bool { return true })
	return page(all, skip, limit), nil
}

func (is incidentStore) ListByUser(ctx context.Context, email string, limit int64) ([]models.Incident, error) {
	matching := is.sorted(func(doc models.Incident) bool { return doc.UserEmail == email })
	return page(matching, 0, limit), nil
}

func (is incidentStore) Count(ctx context.Context, filter interfaces.IncidentFilter) (int64, error) {
	is.s.mu.RLock()
	defer is.s.mu.RUnlock()
	var n int64
	for _, doc := range is.s.incidents {
		if matchIncident(doc, filter) {
			n++
		}
	}
	return n, nil
}

func matchIncident(doc models.Incident, f interfaces.IncidentFilter) bool {
	if f.UserEmail != "" && doc.UserEmail != f.UserEmail {
		return false
	}
	if f.Since != nil || f.Until != nil {
		t, ok := doc.Timestamp.Time()
		if !ok {
			return false
		}
		if f.Since != nil && t.Before(*f.Since) {
			return false
		}
		if f.Until != nil && !t.Before(*f.Until) {
			return false
		}
	}
	if f.Manual != nil && doc.Metadata.Manual != *f.Manual {
		return false
	}
	if f.SOSType != "" && doc.Metadata.SOSType != f.SOSType {
		return false
	}
	return true
}

func (is incidentStore) Delete(ctx context.Context, id string) error {
	objectID, err := parseID("Incident", id)
	if err != nil {
		return err
	}
	is.s.mu.Lock()
	defer is.s.mu.Unlock()
	for i, doc := range is.s.incidents {
		if doc.ID == objectID {
			is.s.incidents = append(is.s.incidents[:i], is.s.incidents[i+1:]...)
			return nil
		}
	}
	return utils.NewNotFoundError("Incident")
}

func (is incidentStore) DeleteByUser(ctx context.Context, email string) (int64, error) {
	is.s.mu.Lock()
	defer is.s.mu.Unlock()
	kept := is.s.incidents[:0]
	var deleted int64
	for _, doc := range is.s.incidents {
		if doc.UserEmail == email {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	is.s.incidents = kept
	return deleted, nil
}

func (is incidentStore) HourlyDistribution(ctx context.Context) ([24]int64, error) {
	var hours [24]int64
	is.s.mu.RLock()
	defer is.s.mu.RUnlock()
	for _, doc := range is.s.incidents {
		if t, ok := doc.Timestamp.Time(); ok {
			hours[t.UTC().Hour()]++
		}
	}
	return hours, nil
}

func (is incidentStore) SumEmailsSent(ctx context.Context) (int64, error) {
	is.s.mu.RLock()
	defer is.s.mu.RUnlock()
	var total int64
	for _, doc := range is.s.incidents {
		total += doc.EmailsSent
	}
	return total, nil
}

type userStore struct{ s *Store }

func (us userStore) List(ctx context.Context) ([]models.User, error) {
	us.s.mu.RLock()
	defer us.s.mu.RUnlock()
	return append([]models.User{}, us.s.users...), nil
}

func (us userStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := parseID("User", id)
	if err != nil {
		return nil, err
	}
	us.s.mu.RLock()
	defer us.s.mu.RUnlock()
	for _, doc := range us.s.users {
		if doc.ID == objectID {
			return &doc, nil
		}
	}
	return nil, utils.NewNotFoundError("User")
}

func (us userStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	us.s.mu.RLock()
	defer us.s.mu.RUnlock()
	for _, doc := range us.s.users {
		if doc.Email == email {
			return &doc, nil
		}
	}
	return nil, nil
}

func (us userStore) Count(ctx context.Context) (int64, error) {
	us.s.mu.RLock()
	defer us.s.mu.RUnlock()
	return int64(len(us.s.users)), nil
}

func (us userStore) Delete(ctx context.Context, id string) error {
	objectID, err := parseID("User", id)
	if err != nil {
		return err
	}
	us.s.mu.Lock()
	defer us.s.mu.Unlock()
	for i, doc := range us.s.users {
		if doc.ID == objectID {
			us.s.users = append(us.s.users[:i], us.s.users[i+1:]...)
			return nil
		}
	}
	return utils.NewNotFoundError("User")
}

type profileStore struct{ s *Store }

func (ps profileStore) FindByUser(ctx context.Context, email string) (*models.Profile, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()
	for _, doc := range ps.s.profiles {
		if doc.UserEmail == email {
			return &doc, nil
		}
	}
	return nil, nil
}

func (ps profileStore) DeleteByUser(ctx context.Context, email string) (int64, error) {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()
	kept := ps.s.profiles[:0]
	var deleted int64
	for _, doc := range ps.s.profiles {
		if doc.UserEmail == email {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	ps.s.profiles = kept
	return deleted, nil
}

type contactStore struct{ s *Store }

func (cs contactStore) List(ctx context.Context) ([]models.Contact, error) {
	cs.s.mu.RLock()
	defer cs.s.mu.RUnlock()
	return append([]models.Contact{}, cs.s.contacts...), nil
}

func (cs contactStore) ListByUser(ctx context.Context, email string) ([]models.Contact, error) {
	cs.s.mu.RLock()
	defer cs.s.mu.RUnlock()
	out := []models.Contact{}
	for _, doc := range cs.s.contacts {
		if doc.UserEmail == email {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (cs contactStore) DeleteByUser(ctx context.Context, email string) (int64, error) {
	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()
	kept := cs.s.contacts[:0]
	var deleted int64
	for _, doc := range cs.s.contacts {
		if doc.UserEmail == email {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	cs.s.contacts = kept
	return deleted, nil
}

type hospitalStore struct{ s *Store }

func (hs hospitalStore) List(ctx context.Context, limit int64) ([]models.Hospital, error) {
	hs.s.mu.RLock()
	defer hs.s.mu.RUnlock()
	return page(append([]models.Hospital{}, hs.s.hospitals...), 0, limit), nil
}

func (hs hospitalStore) FindByID(ctx context.Context, id string) (*models.Hospital, error) {
	objectID, err := parseID("Hospital", id)
	if err != nil {
		return nil, err
	}
	hs.s.mu.RLock()
	defer hs.s.mu.RUnlock()
	for _, doc := range hs.s.hospitals {
		if doc.ID == objectID {
			return &doc, nil
		}
	}
	return nil, utils.NewNotFoundError("Hospital")
}

func (hs hospitalStore) FindByName(ctx context.Context, name string) (*models.Hospital, error) {
	hs.s.mu.RLock()
	defer hs.s.mu.RUnlock()
	for _, doc := range hs.s.hospitals {
		if doc.HospitalName == name {
			return &doc, nil
		}
	}
	return nil, nil
}

func (hs hospitalStore) Count(ctx context.Context) (int64, error) {
	hs.s.mu.RLock()
	defer hs.s.mu.RUnlock()
	return int64(len(hs.s.hospitals)), nil
}

func (hs hospitalStore) Delete(ctx context.Context, id string) error {
	objectID, err := parseID("Hospital", id)
	if err != nil {
		return err
	}
	hs.s.mu.Lock()
	defer hs.s.mu.Unlock()
	for i, doc := range hs.s.hospitals {
		if doc.ID == objectID {
			hs.s.hospitals = append(hs.s.hospitals[:i], hs.s.hospitals[i+1:]...)
			return nil
		}
	}
	return utils.NewNotFoundError("Hospital")
}

type policeStore struct{ s *Store }

func (ps policeStore) List(ctx context.Context) ([]models.PoliceOfficer, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()
	return append([]models.PoliceOfficer{}, ps.s.police...), nil
}

func (ps policeStore) FindByID(ctx context.Context, id string) (*models.PoliceOfficer, error) {
	objectID, err := parseID("Police officer", id)
	if err != nil {
		return nil, err
	}
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()
	for _, doc := range ps.s.police {
		if doc.ID == objectID {
			return &doc, nil
		}
	}
	return nil, utils.NewNotFoundError("Police officer")
}

func (ps policeStore) Count(ctx context.Context) (int64, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()
	return int64(len(ps.s.police)), nil
}

func (ps policeStore) Delete(ctx context.Context, id string) error {
	objectID, err := parseID("Police officer", id)
	if err != nil {
		return err
	}
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()
	for i, doc := range ps.s.police {
		if doc.ID == objectID {
			ps.s.police = append(ps.s.police[:i], ps.s.police[i+1:]...)
			return nil
		}
	}
	return utils.NewNotFoundError("Police officer")
}

type ambulanceStore struct{ s *Store }

func (as ambulanceStore) index(id string) (int, error) {
	objectID, err := parseID("Ambulance", id)
	if err != nil {
		return -1, err
	}
	for i, doc := range as.s.ambulances {
		if doc.ID == objectID {
			return i, nil
		}
	}
	return -1, utils.NewNotFoundError("Ambulance")
}

func (as ambulanceStore) FindByID(ctx context.Context, id string) (*models.Ambulance, error) {
	as.s.mu.RLock()
	defer as.s.mu.RUnlock()
	i, err := as.index(id)
	if err != nil {
		return nil, err
	}
	doc := as.s.ambulances[i]
	return &doc, nil
}

func (as ambulanceStore) ListAssigned(ctx context.Context) ([]models.Ambulance, error) {
	as.s.mu.RLock()
	defer as.s.mu.RUnlock()
	out := []models.Ambulance{}
	for _, doc := range as.s.ambulances {
		if doc.IsAssigned() {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (as ambulanceStore) ListByIncident(ctx context.Context, incidentID string) ([]models.Ambulance, error) {
	as.s.mu.RLock()
	defer as.s.mu.RUnlock()
	out := []models.Ambulance{}
	for _, doc := range as.s.ambulances {
		if doc.CurrentIncidentID != nil && *doc.CurrentIncidentID == incidentID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (as ambulanceStore) FindOnDutyByHospital(ctx context.Context, hospitalName string) (*models.Ambulance, error) {
	as.s.mu.RLock()
	defer as.s.mu.RUnlock()
	for _, doc := range as.s.ambulances {
		if doc.HospitalName == hospitalName && doc.Status == models.AmbulanceStatusOnDuty {
			return &doc, nil
		}
	}
	return nil, nil
}

func (as ambulanceStore) FindAvailableByHospital(ctx context.Context, hospitalName string) (*models.Ambulance, error) {
	as.s.mu.RLock()
	defer as.s.mu.RUnlock()
	for _, doc := range as.s.ambulances {
		if doc.HospitalName == hospitalName && doc.Status == models.AmbulanceStatusOnDuty && !doc.IsAssigned() {
			return &doc, nil
		}
	}
	return nil, nil
}

func (as ambulanceStore) Assign(ctx context.Context, id, incidentID string, at time.Time) error {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()
	i, err := as.index(id)
	if err != nil {
		return err
	}
	as.s.ambulances[i].CurrentIncidentID = &incidentID
	as.s.ambulances[i].AssignmentTime = models.NewTimestamp(at)
	return nil
}

func (as ambulanceStore) Unassign(ctx context.Context, id string) (bool, error) {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()
	i, err := as.index(id)
	if err != nil {
		return false, err
	}
	doc := &as.s.ambulances[i]
	if doc.CurrentIncidentID == nil && doc.AssignmentTime.IsZero() {
		return false, nil
	}
	doc.CurrentIncidentID = nil
	doc.AssignmentTime = models.Timestamp{}
	return true, nil
}

func (as ambulanceStore) Delete(ctx context.Context, id string) error {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()
	i, err := as.index(id)
	if err != nil {
		return err
	}
	as.s.ambulances = append(as.s.ambulances[:i], as.s.ambulances[i+1:]...)
	return nil
}

type assignmentStore struct{ s *Store }

func (as assignmentStore) Exists(ctx context.Context) (bool, error) {
	as.s.mu.RLock()
	defer as.s.mu.RUnlock()
	return as.s.assignmentsCreated, nil
}

func (as assignmentStore) ListByIncident(ctx context.Context, incidentID string) ([]models.IncidentAssignment, error) {
	as.s.mu.RLock()
	defer as.s.mu.RUnlock()
	out := []models.IncidentAssignment{}
	for _, doc := range as.s.assignments {
		if doc.IncidentID == incidentID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (as assignmentStore) CountByStatus(ctx context.Context, status string) (int64, error) {
	as.s.mu.RLock()
	defer as.s.mu.RUnlock()
	var n int64
	for _, doc := range as.s.assignments {
		if doc.Status == status {
			n++
		}
	}
	return n, nil
}

func (as assignmentStore) Insert(ctx context.Context, assignment *models.IncidentAssignment) error {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()
	if assignment.ID.IsZero() {
		assignment.ID = primitive.NewObjectID()
	}
	as.s.assignments = append(as.s.assignments, *assignment)
	as.s.assignmentsCreated = true
	return nil
}
