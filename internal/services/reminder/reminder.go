// Package reminder contains the business logic for maintenance reminders.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/garilangu/gari-langu/internal/lib/month"
	"github.com/garilangu/gari-langu/internal/models"
)

// Reminders due within this many days are "upcoming", later ones "future".
const upcomingWindowDays = 30

// ReminderRepository describes the persistence the service depends on.
type ReminderRepository interface {
	CreateReminder(ctx context.Context, rem models.Reminder) (int, error)
	ListReminders(ctx context.Context, userUID string) ([]*models.Reminder, error)
	CompleteReminder(ctx context.Context, id int, userUID string, completedAt time.Time) (*models.Reminder, error)
	RemoveReminder(ctx context.Context, id int, userUID string) (int, error)
	GetCar(ctx context.Context, id int, userUID string) (*models.Car, error)
	CreateServiceRecord(ctx context.Context, rec models.ServiceRecord) (int, error)
}

// ReminderService owns reminder scheduling and completion.
type ReminderService struct {
	repo ReminderRepository
	log  *slog.Logger
}

// New creates a new ReminderService.
func New(repo ReminderRepository, log *slog.Logger) *ReminderService {
	return &ReminderService{
		repo: repo,
		log:  log,
	}
}

// DeriveStatus classifies a due date relative to now. The status is fixed
// at creation, not re-derived by a background timer.
func DeriveStatus(now, dueDate time.Time) string {
	if month.DaysUntil(now, dueDate) <= upcomingWindowDays {
		return models.ReminderStatusUpcoming
	}
	return models.ReminderStatusFuture
}

// Create schedules a reminder on one of the user's cars and returns its
// ID. The car is resolved first so a reminder can never be attached to
// another user's car.
func (s *ReminderService) Create(ctx context.Context, userUID string, req models.DummyReminder) (int, error) {
	dueDate, err := time.Parse("02-01-2006", req.DueDate)
	if err != nil {
		return 0, fmt.Errorf("invalid due date: %w", err)
	}
	if _, err := s.repo.GetCar(ctx, req.CarID, userUID); err != nil {
		return 0, err
	}

	rem := models.Reminder{
		CarID:       req.CarID,
		ServiceType: req.ServiceType,
		DueDate:     dueDate,
		Priority:    req.Priority,
		Status:      DeriveStatus(time.Now().UTC(), dueDate),
		NotifyEmail: req.NotifyEmail,
		NotifySMS:   req.NotifySMS,
		Notes:       req.Notes,
	}
	id, err := s.repo.CreateReminder(ctx, rem)
	if err != nil {
		return 0, err
	}
	s.log.Info("scheduled reminder", slog.Int("id", id), slog.Int("car_id", req.CarID),
		slog.String("status", rem.Status))
	return id, nil
}

// List returns all of the user's reminders, soonest due first.
func (s *ReminderService) List(ctx context.Context, userUID string) ([]*models.Reminder, error) {
	return s.repo.ListReminders(ctx, userUID)
}

// Complete marks a reminder done and logs a service record from it, so the
// maintenance history reflects the completed obligation. The record keeps a
// provenance link back to the reminder.
func (s *ReminderService) Complete(ctx context.Context, id int, userUID string) (*models.Reminder, error) {
	completedAt := time.Now().UTC()
	rem, err := s.repo.CompleteReminder(ctx, id, userUID, completedAt)
	if err != nil {
		return nil, err
	}

	reminderID := rem.ID
	rec := models.ServiceRecord{
		CarID:        rem.CarID,
		ServiceType:  rem.ServiceType,
		Description:  rem.Notes,
		ServiceDate:  completedAt,
		FromReminder: true,
		ReminderID:   &reminderID,
	}
	recordID, err := s.repo.CreateServiceRecord(ctx, rec)
	if err != nil {
		// The reminder is already completed; surface the record failure.
		return nil, fmt.Errorf("reminder completed but service record failed: %w", err)
	}
	s.log.Info("completed reminder", slog.Int("id", id), slog.Int("service_record_id", recordID))
	return rem, nil
}

// Remove deletes a reminder and returns the number of deleted rows.
func (s *ReminderService) Remove(ctx context.Context, id int, userUID string) (int, error) {
	return s.repo.RemoveReminder(ctx, id, userUID)
}
