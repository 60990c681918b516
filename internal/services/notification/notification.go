// Package notification contains the business logic for the in-app
// notification log.
package notification

import (
	"context"
	"log/slog"

	"github.com/garilangu/gari-langu/internal/models"
)

// NotificationRepository describes the persistence the service depends on.
type NotificationRepository interface {
	AppendNotification(ctx context.Context, n models.Notification) (int, error)
	ListNotifications(ctx context.Context, userUID, role string) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, id int, userUID, role string) (int, error)
	MarkAllNotificationsRead(ctx context.Context, userUID, role string) (int, error)
	CountUnreadNotifications(ctx context.Context, userUID, role string) (int, error)
	RemoveNotification(ctx context.Context, id int, userUID, role string) (int, error)
}

// NotificationService owns the append-only notification log.
type NotificationService struct {
	repo NotificationRepository
	log  *slog.Logger
}

// New creates a new NotificationService.
func New(repo NotificationRepository, log *slog.Logger) *NotificationService {
	return &NotificationService{
		repo: repo,
		log:  log,
	}
}

// List returns the notifications visible to the caller, newest first.
func (s *NotificationService) List(ctx context.Context, userUID, role string) ([]*models.Notification, error) {
	return s.repo.ListNotifications(ctx, userUID, role)
}

// MarkRead flips the read marker on a single notification. Returns the
// number of updated rows.
func (s *NotificationService) MarkRead(ctx context.Context, id int, userUID, role string) (int, error) {
	return s.repo.MarkNotificationRead(ctx, id, userUID, role)
}

// MarkAllRead flips the read marker on all of the caller's unread
// notifications. Returns the number of updated rows.
func (s *NotificationService) MarkAllRead(ctx context.Context, userUID, role string) (int, error) {
	count, err := s.repo.MarkAllNotificationsRead(ctx, userUID, role)
	if err != nil {
		return 0, err
	}
	s.log.Info("marked notifications read", slog.Int("count", count))
	return count, nil
}

// CountUnread returns the caller's unread count.
func (s *NotificationService) CountUnread(ctx context.Context, userUID, role string) (int, error) {
	return s.repo.CountUnreadNotifications(ctx, userUID, role)
}

// Remove deletes a notification and returns the number of deleted rows.
func (s *NotificationService) Remove(ctx context.Context, id int, userUID, role string) (int, error) {
	return s.repo.RemoveNotification(ctx, id, userUID, role)
}
