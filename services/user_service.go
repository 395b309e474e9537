package services

import (
	"context"

	"swiftaid/interfaces"
	"swiftaid/models"
	"swiftaid/utils"

	"github.com/sirupsen/logrus"
)

const recentIncidentsLimit = 10

type UserService struct {
	users     interfaces.UserStore
	profiles  interfaces.ProfileStore
	contacts  interfaces.ContactStore
	incidents interfaces.IncidentStore
}

func NewUserService(stores interfaces.Stores) *UserService {
	return &UserService{
		users:     stores.Users,
		profiles:  stores.Profiles,
		contacts:  stores.Contacts,
		incidents: stores.Incidents,
	}
}

func (us *UserService) ListUsers(ctx context.Context) ([]models.UserResponse, error) {
	users, err := us.users.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.UserResponse, 0, len(users))
	for _, user := range users {
		projected, _, err := us.project(ctx, user, 1)
		if err != nil {
			return nil, err
		}
		out = append(out, projected)
	}
	return out, nil
}

// GetUser returns the user with its ten most recent incidents.
func (us *UserService) GetUser(ctx context.Context, id string) (*models.UserDetailResponse, error) {
	user, err := us.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	projected, recent, err := us.project(ctx, *user, recentIncidentsLimit)
	if err != nil {
		return nil, err
	}

	// every recent incident belongs to this user
	resolver := newNameResolver(us.users)
	resolver.names[user.Email] = models.UnknownUserName
	if user.Name != "" {
		resolver.names[user.Email] = user.Name
	}
	recentIncidents, err := resolver.ProjectAll(ctx, recent)
	if err != nil {
		return nil, err
	}

	return &models.UserDetailResponse{
		UserResponse:    projected,
		RecentIncidents: recentIncidents,
	}, nil
}

// project joins profile, contacts and incident counters. It also returns up
// to recentLimit of the user's newest incidents.
func (us *UserService) project(ctx context.Context, user models.User, recentLimit int64) (models.UserResponse, []models.Incident, error) {
	profile, err := us.profiles.FindByUser(ctx, user.Email)
	if err != nil {
		return models.UserResponse{}, nil, err
	}

	contacts, err := us.contacts.ListByUser(ctx, user.Email)
	if err != nil {
		return models.UserResponse{}, nil, err
	}

	total, err := us.incidents.Count(ctx, interfaces.IncidentFilter{UserEmail: user.Email})
	if err != nil {
		return models.UserResponse{}, nil, err
	}

	recent, err := us.incidents.ListByUser(ctx, user.Email, recentLimit)
	if err != nil {
		return models.UserResponse{}, nil, err
	}

	var lastIncident models.Timestamp
	if len(recent) > 0 {
		lastIncident = recent[0].Timestamp
	}

	return models.UserResponse{
		ID:                user.ID.Hex(),
		Name:              models.Nullable(user.Name),
		Email:             user.Email,
		Username:          models.Nullable(user.Username),
		CreatedAt:         user.CreatedAt,
		Profile:           profile,
		EmergencyContacts: contacts,
		TotalIncidents:    total,
		LastIncident:      lastIncident,
	}, recent, nil
}

// DeleteUser removes the user then its profile, contacts and incidents. The
// steps are independent writes; a failure part way is logged with what was
// already removed and reported as an internal error.
func (us *UserService) DeleteUser(ctx context.Context, id string) error {
	user, err := us.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := us.users.Delete(ctx, id); err != nil {
		return err
	}

	log := logrus.WithFields(logrus.Fields{
		"user_id":    id,
		"user_email": user.Email,
	})
	completed := []string{"user"}

	steps := []struct {
		name string
		run  func(context.Context, string) (int64, error)
	}{
		{"profile", us.profiles.DeleteByUser},
		{"contacts", us.contacts.DeleteByUser},
		{"incidents", us.incidents.DeleteByUser},
	}

	for _, step := range steps {
		deleted, err := step.run(ctx, user.Email)
		if err != nil {
			log.WithFields(logrus.Fields{
				"failed_step": step.name,
				"completed":   completed,
			}).Errorf("User cascade delete incomplete: %v", err)
			return utils.NewInternalError("Failed to delete user data", err)
		}
		log.Debugf("Deleted %d %s", deleted, step.name)
		completed = append(completed, step.name)
	}

	log.Info("User and related data deleted")
	return nil
}
