package routes

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"swiftaid/config"
	"swiftaid/models"
	"swiftaid/repositories/memory"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
	logrus.SetLevel(logrus.PanicLevel)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	store  *memory.Store
	token  string
}

func newTestServer(t *testing.T, health func(context.Context) error) *testServer {
	t.Helper()

	store := memory.New()
	if health == nil {
		health = store.Ping
	}

	cfg := &config.Config{
		Environment:        "test",
		SecretKey:          "test-secret",
		AdminUsername:      "admin",
		AdminPassword:      "admin123",
		TokenTTL:           24 * time.Hour,
		StaticDir:          t.TempDir(),
		DashboardFile:      "admin_dashboard.html",
		CORSAllowedOrigins: []string{"*"},
	}

	router, err := SetupRoutes(Dependencies{
		Config: cfg,
		Stores: store.Stores(),
		Health: health,
	})
	require.NoError(t, err)

	return &testServer{t: t, router: router, store: store}
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login() {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/admin/login", models.LoginRequest{Username: "admin", Password: "admin123"})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var response models.LoginResponse
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotEmpty(s.t, response.Token)
	s.token = response.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodPost, "/admin/login", models.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid credentials"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/admin/login", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/admin/login", models.LoginRequest{Username: "admin", Password: "admin123"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]interface{}](t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, map[string]interface{}{"username": "admin", "name": "Admin User", "role": "Administrator"}, body["user"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{"/dashboard/incidents", "/dashboard/stats", "/admin/users", "/admin/incident-assignments"} {
		rec := s.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.JSONEq(t, `{"success":false,"error":"Token is missing"}`, rec.Body.String(), path)
	}

	s.token = "not-a-jwt"
	rec := s.do(http.MethodGet, "/dashboard/incidents", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Token is invalid"}`, rec.Body.String())
}

func TestIncidentAssignmentFlow(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()

	hospital := s.store.AddHospital(models.Hospital{HospitalName: "General Hospital"})
	s.store.AddHospital(models.Hospital{HospitalName: "City Clinic"})
	ambulance := s.store.AddAmbulance(models.Ambulance{VehicleNumber: "GH-01", HospitalName: "General Hospital", Status: models.AmbulanceStatusOnDuty})
	incident := s.store.AddIncident(models.Incident{
		UserEmail: "asha@example.com",
		Timestamp: models.NewTimestamp(time.Now().UTC()),
		Metadata:  models.IncidentMetadata{Manual: true, SOSType: models.SOSTypeSelf},
	})

	rec := s.do(http.MethodGet, "/admin/incident-assignments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summaries := decode[[]models.IncidentResponseSummary](t, rec)
	require.Len(t, summaries, 1)
	assert.Equal(t, 0, summaries[0].HospitalsAccepted)

	rec = s.do(http.MethodGet, "/admin/incident-hospitals/"+incident.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[map[string]interface{}](t, rec)
	assert.Equal(t, []interface{}{}, state["accepted_hospitals"])
	assert.Equal(t, map[string]interface{}{}, state["ambulance_assignments"])
	assert.Len(t, state["nearby_hospitals"], 2)

	rec = s.do(http.MethodPost, "/admin/create-test-assignments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Created 2 test assignments","assignments_created":2}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/admin/incident-assignments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summaries = decode[[]models.IncidentResponseSummary](t, rec)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].HospitalsAccepted)
	assert.Equal(t, 2, summaries[0].TotalHospitalsNotified)
	require.Equal(t, 1, summaries[0].AmbulancesAssigned)
	assert.Equal(t, ambulance.ID.Hex(), summaries[0].AmbulanceAssignments[0].ID)

	rec = s.do(http.MethodGet, "/admin/incident-hospitals/"+incident.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	responseState := decode[models.IncidentResponseState](t, rec)
	require.Len(t, responseState.AcceptedHospitals, 2)
	assert.Equal(t, hospital.ID.Hex(), responseState.AcceptedHospitals[0].ID)
	assert.Equal(t, models.AssignmentStatusAccepted, responseState.AcceptedHospitals[0].Status)
	assert.Equal(t, "GH-01", responseState.AmbulanceAssignments["General Hospital"].VehicleNumber)

	rec = s.do(http.MethodGet, "/admin/ambulance-assignments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	board := decode[models.AmbulanceAssignmentsResponse](t, rec)
	assert.True(t, board.Success)
	assert.Equal(t, 1, board.TotalAssigned)
	require.NotNil(t, board.Assignments[0].IncidentDetails)
	assert.Equal(t, incident.ID.Hex(), board.Assignments[0].IncidentDetails.IncidentID)

	rec = s.do(http.MethodGet, "/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[models.DashboardStats](t, rec)
	assert.Equal(t, int64(1), stats.ActiveAssignments)
	assert.Equal(t, int64(1), stats.TodayIncidents)
	assert.Equal(t, int64(1), stats.IncidentTypes.ManualSelf)

	unassign := "/admin/ambulances/" + ambulance.ID.Hex() + "/unassign"
	rec = s.do(http.MethodPost, unassign, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Ambulance unassigned successfully"}`, rec.Body.String())

	rec = s.do(http.MethodPost, unassign, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Ambulance not found or already unassigned"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/admin/ambulances/"+ambulance.ID.Hex()+"/assign", map[string]string{"incident_id": primitive.NewObjectID().Hex()})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPost, "/admin/ambulances/"+ambulance.ID.Hex()+"/assign", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/admin/ambulances/"+ambulance.ID.Hex()+"/assign", map[string]string{"incident_id": incident.ID.Hex()})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/admin/ambulances/"+ambulance.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[models.AmbulanceResponse](t, rec)
	require.NotNil(t, detail.IncidentDetails)
	assert.Equal(t, "asha@example.com", detail.IncidentDetails.UserEmail)
}

func TestIncidentEndpoints(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()

	incident := s.store.AddIncident(models.Incident{
		IncidentID: "INC-7",
		UserEmail:  "ghost@example.com",
		Timestamp:  models.NewTimestamp(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)),
	})

	rec := s.do(http.MethodGet, "/dashboard/incidents?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]map[string]interface{}](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Unknown User", list[0]["user_name"])
	assert.Equal(t, "2024-03-10T09:00:00Z", list[0]["timestamp"])
	assert.Equal(t, "2024-03-10T09:00:00Z", list[0]["created_at"])
	assert.Equal(t, float64(0), list[0]["speed"])
	assert.Equal(t, float64(0), list[0]["emails_sent"])

	rec = s.do(http.MethodGet, "/dashboard/incidents?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/dashboard/incidents/"+incident.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "INC-7", decode[map[string]interface{}](t, rec)["incident_id"])

	rec = s.do(http.MethodGet, "/dashboard/incidents/not-an-id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/dashboard/incidents/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=incidents_export_")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "N/A", records[1][6])

	rec = s.do(http.MethodGet, "/dashboard/analytics/trends?days=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.DailyCount](t, rec), 8)

	rec = s.do(http.MethodGet, "/dashboard/analytics/trends?days=-2", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/dashboard/analytics/hourly", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	hours := decode[[]int64](t, rec)
	require.Len(t, hours, 24)
	assert.Equal(t, int64(1), hours[9])

	rec = s.do(http.MethodDelete, "/dashboard/incidents/"+incident.ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Incident deleted successfully"}`, rec.Body.String())

	rec = s.do(http.MethodDelete, "/dashboard/incidents/"+incident.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Incident not found"}`, rec.Body.String())
}

func TestDirectoryEndpoints(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()

	user := s.store.AddUser(models.User{Email: "asha@example.com", Name: "Asha"})
	s.store.AddContact(models.Contact{UserEmail: user.Email, Name: "Mum"})
	s.store.AddIncident(models.Incident{UserEmail: user.Email})
	hospital := s.store.AddHospital(models.Hospital{HospitalName: "General Hospital"})
	officer := s.store.AddPoliceOfficer(models.PoliceOfficer{Username: "officer1"})

	rec := s.do(http.MethodGet, "/admin/police-stations/"+officer.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "active", decode[map[string]interface{}](t, rec)["status"])

	rec = s.do(http.MethodGet, "/admin/hospitals", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.HospitalResponse](t, rec), 1)

	rec = s.do(http.MethodGet, "/admin/contacts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	contacts := decode[[]map[string]interface{}](t, rec)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Mum", contacts[0]["name"])

	rec = s.do(http.MethodGet, "/admin/users/"+user.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[map[string]interface{}](t, rec)
	assert.Equal(t, float64(1), detail["total_incidents"])
	assert.Len(t, detail["recent_incidents"], 1)
	assert.Len(t, detail["emergency_contacts"], 1)

	rec = s.do(http.MethodDelete, "/admin/users/"+user.ID.Hex(), nil)
	assert.JSONEq(t, `{"success":true,"message":"User and all related data deleted successfully"}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/admin/contacts", nil)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(http.MethodDelete, "/admin/hospitals/"+hospital.ID.Hex(), nil)
	assert.JSONEq(t, `{"success":true,"message":"Hospital deleted successfully"}`, rec.Body.String())

	rec = s.do(http.MethodDelete, "/admin/police-stations/"+officer.ID.Hex(), nil)
	assert.JSONEq(t, `{"success":true,"message":"Police officer deleted successfully"}`, rec.Body.String())

	rec = s.do(http.MethodDelete, "/admin/police-stations/"+officer.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublicEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "connected", health["database"])
	assert.Equal(t, "SwiftAid Backend API", health["service"])

	rec = s.do(http.MethodGet, "/test", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Backend is working!", decode[map[string]interface{}](t, rec)["message"])

	rec = s.do(http.MethodGet, "/no/such/endpoint", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Endpoint not found"}`, rec.Body.String())

	// no dashboard file in the static dir
	rec = s.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthUnhealthy(t *testing.T) {
	s := newTestServer(t, func(context.Context) error { return errors.New("server selection timeout") })

	rec := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	health := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "unhealthy", health["status"])
	assert.Equal(t, "disconnected", health["database"])
	assert.Equal(t, "database connection failed", health["error"])
	assert.NotContains(t, rec.Body.String(), "server selection timeout")
}
