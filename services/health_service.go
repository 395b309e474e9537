package services

import (
	"context"
	"time"

	"swiftaid/models"

	"github.com/sirupsen/logrus"
)

const (
	serviceName         = "SwiftAid Backend API"
	databaseUnreachable = "database connection failed"
)

type HealthService struct {
	ping func(context.Context) error
	now  func() time.Time
}

// NewHealthService probes the store with ping.
func NewHealthService(ping func(context.Context) error) *HealthService {
	return &HealthService{ping: ping, now: time.Now}
}

// Check reports store connectivity. The bool is false when the store is
// unreachable.
func (hs *HealthService) Check(ctx context.Context) (models.HealthResponse, bool) {
	timestamp := models.FormatISO(hs.now())

	if err := hs.ping(ctx); err != nil {
		logrus.WithError(err).Error("Health check failed")
		return models.HealthResponse{
			Status:    "unhealthy",
			Database:  "disconnected",
			Error:     databaseUnreachable,
			Timestamp: timestamp,
		}, false
	}

	return models.HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		Service:   serviceName,
		Timestamp: timestamp,
	}, true
}
