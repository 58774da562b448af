package services

import (
	"context"

	"github.com/sentinelai/sentinel-cli/internal/client/api"
	"github.com/sentinelai/sentinel-cli/internal/client/models"
	"github.com/sentinelai/sentinel-cli/internal/logging"
)

// NotificationService fetches in-app notifications. The fetch is strictly
// best-effort: failures are logged and swallowed so they can never block a
// page.
type NotificationService interface {
	Recent(ctx context.Context) []models.Notification
}

type notificationService struct {
	client api.Client
	log    logging.Logger
}

func NewNotificationService(client api.Client, log logging.Logger) NotificationService {
	return &notificationService{client: client, log: log}
}

func (s *notificationService) Recent(ctx context.Context) []models.Notification {
	notifications, err := s.client.Notifications(ctx)
	if err != nil {
		s.log.Warn(ctx, "notifications fetch failed", "error", err)
		return nil
	}
	return notifications
}
