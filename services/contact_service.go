package services

import (
	"context"

	"swiftaid/interfaces"
	"swiftaid/models"
)

type ContactService struct {
	contacts interfaces.ContactStore
}

func NewContactService(stores interfaces.Stores) *ContactService {
	return &ContactService{contacts: stores.Contacts}
}

// ListContacts returns every emergency contact as stored.
func (cs *ContactService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	return cs.contacts.List(ctx)
}
