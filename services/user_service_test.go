package services

import (
	"context"
	"testing"

	"swiftaid/interfaces"
	"swiftaid/models"
	"swiftaid/repositories/memory"
	"swiftaid/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedUsers(store *memory.Store) (models.User, models.User) {
	asha := store.AddUser(models.User{Email: "asha@example.com", Name: "Asha", Username: "asha"})
	ravi := store.AddUser(models.User{Email: "ravi@example.com"})

	store.AddProfile(models.Profile{UserEmail: asha.Email, Fields: bson.M{"blood_group": "O+"}})
	store.AddContact(models.Contact{UserEmail: asha.Email, Name: "Mum", Phone: "555-0101"})
	store.AddContact(models.Contact{UserEmail: asha.Email, Name: "Dad", Phone: "555-0102"})
	store.AddContact(models.Contact{UserEmail: ravi.Email, Name: "Sis"})

	for day := 1; day <= 12; day++ {
		store.AddIncident(models.Incident{UserEmail: asha.Email, Timestamp: at(day, 8)})
	}
	store.AddIncident(models.Incident{UserEmail: ravi.Email, Timestamp: at(5, 8)})
	return asha, ravi
}

func TestListUsers_JoinsProfileContactsAndCounters(t *testing.T) {
	store := memory.New()
	seedUsers(store)

	users, err := NewUserService(store.Stores()).ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	asha := users[0]
	assert.Equal(t, "Asha", *asha.Name)
	require.NotNil(t, asha.Profile)
	assert.Equal(t, "O+", asha.Profile.Fields["blood_group"])
	assert.Len(t, asha.EmergencyContacts, 2)
	assert.Equal(t, int64(12), asha.TotalIncidents)
	assert.Equal(t, "2024-03-12T08:00:00Z", asha.LastIncident.String())

	ravi := users[1]
	assert.Nil(t, ravi.Name)
	assert.Nil(t, ravi.Profile)
	assert.Len(t, ravi.EmergencyContacts, 1)
	assert.Equal(t, int64(1), ravi.TotalIncidents)
}

func TestGetUser_RecentIncidents(t *testing.T) {
	store := memory.New()
	asha, ravi := seedUsers(store)
	svc := NewUserService(store.Stores())

	detail, err := svc.GetUser(context.Background(), asha.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(12), detail.TotalIncidents)
	require.Len(t, detail.RecentIncidents, 10)
	assert.Equal(t, "2024-03-12T08:00:00Z", detail.RecentIncidents[0].Timestamp.String())
	for _, incident := range detail.RecentIncidents {
		assert.Equal(t, "Asha", incident.UserName)
	}

	detail, err = svc.GetUser(context.Background(), ravi.ID.Hex())
	require.NoError(t, err)
	require.Len(t, detail.RecentIncidents, 1)
	assert.Equal(t, models.UnknownUserName, detail.RecentIncidents[0].UserName)
}

func TestGetUser_Missing(t *testing.T) {
	svc := NewUserService(memory.New().Stores())

	_, err := svc.GetUser(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = svc.GetUser(context.Background(), "bogus")
	assert.ErrorIs(t, err, utils.ErrInvalidIdentifier)
}

func TestDeleteUser_Cascades(t *testing.T) {
	store := memory.New()
	asha, ravi := seedUsers(store)
	stores := store.Stores()
	ctx := context.Background()

	require.NoError(t, NewUserService(stores).DeleteUser(ctx, asha.ID.Hex()))

	_, err := stores.Users.FindByID(ctx, asha.ID.Hex())
	assert.ErrorIs(t, err, utils.ErrNotFound)

	profile, err := stores.Profiles.FindByUser(ctx, asha.Email)
	require.NoError(t, err)
	assert.Nil(t, profile)

	contacts, err := stores.Contacts.ListByUser(ctx, asha.Email)
	require.NoError(t, err)
	assert.Empty(t, contacts)

	count, err := stores.Incidents.Count(ctx, interfaces.IncidentFilter{UserEmail: asha.Email})
	require.NoError(t, err)
	assert.Zero(t, count)

	// other users are untouched
	count, err = stores.Incidents.Count(ctx, interfaces.IncidentFilter{UserEmail: ravi.Email})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	contacts, err = stores.Contacts.ListByUser(ctx, ravi.Email)
	require.NoError(t, err)
	assert.Len(t, contacts, 1)
}

func TestDeleteUser_Missing(t *testing.T) {
	err := NewUserService(memory.New().Stores()).DeleteUser(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.Equal(t, "User not found", utils.PublicMessage(err))
}

func TestIncidentProjection_UnknownUser(t *testing.T) {
	store := memory.New()
	store.AddUser(models.User{Email: "named@example.com", Name: "Named"})
	orphan := store.AddIncident(models.Incident{UserEmail: "ghost@example.com", Timestamp: at(1, 1)})
	named := store.AddIncident(models.Incident{UserEmail: "named@example.com", Timestamp: at(2, 1)})
	stored := store.AddIncident(models.Incident{UserEmail: "ghost@example.com", UserName: "Stored", Timestamp: at(3, 1)})
	svc := NewIncidentService(store.Stores())
	ctx := context.Background()

	got, err := svc.GetIncident(ctx, orphan.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Unknown User", got.UserName)
	assert.Equal(t, got.Timestamp, got.CreatedAt)
	assert.Zero(t, got.Speed)
	assert.Nil(t, got.IncidentID)

	got, err = svc.GetIncident(ctx, named.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Named", got.UserName)

	got, err = svc.GetIncident(ctx, stored.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Stored", got.UserName)
}

func TestListIncidents_Paginates(t *testing.T) {
	store := memory.New()
	for day := 1; day <= 5; day++ {
		store.AddIncident(models.Incident{UserEmail: "a@example.com", Timestamp: at(day, 0)})
	}
	svc := NewIncidentService(store.Stores())

	page, err := svc.ListIncidents(context.Background(), models.PaginationRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "2024-03-03T00:00:00Z", page[0].Timestamp.String())
	assert.Equal(t, "2024-03-02T00:00:00Z", page[1].Timestamp.String())

	page, err = svc.ListIncidents(context.Background(), models.PaginationRequest{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.NotNil(t, page)
}
