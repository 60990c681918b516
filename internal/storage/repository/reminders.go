package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/garilangu/gari-langu/internal/models"
)

// CreateReminder inserts a new reminder and returns its ID.
func (s *Storage) CreateReminder(ctx context.Context, rem models.Reminder) (int, error) {
	const op = "storage.CreateReminder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO reminders (car_id, service_type, due_date, priority, status,
			      notify_email, notify_sms, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		rem.CarID, rem.ServiceType, rem.DueDate, rem.Priority, rem.Status,
		rem.NotifyEmail, rem.NotifySMS, rem.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListReminders returns all reminders on a user's cars, soonest due first.
func (s *Storage) ListReminders(ctx context.Context, userUID string) ([]*models.Reminder, error) {
	const op = "storage.ListReminders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, r.car_id, r.service_type, r.due_date, r.priority, r.status,
			      r.notification_sent, r.notify_email, r.notify_sms, r.notes, r.completed_at
			  FROM reminders r
			  JOIN cars c ON r.car_id = c.id
			  WHERE c.user_uid = $1
			  ORDER BY r.due_date`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Reminder
	for rows.Next() {
		var rem models.Reminder
		var completedAt sql.NullTime
		if err := rows.Scan(&rem.ID, &rem.CarID, &rem.ServiceType, &rem.DueDate,
			&rem.Priority, &rem.Status, &rem.NotificationSent, &rem.NotifyEmail,
			&rem.NotifySMS, &rem.Notes, &completedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if completedAt.Valid {
			rem.CompletedAt = &completedAt.Time
		}
		result = append(result, &rem)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

const reminderInfoColumns = `r.id, r.service_type, r.due_date, r.notify_sms,
			      c.make, c.model, c.registration,
			      u.uid, u.username, u.email, u.phone`

// FindDueReminders returns reminders eligible for notification: not
// completed, not yet notified, due within the lookahead window. Each row
// is joined with its car and owning user for dispatch.
func (s *Storage) FindDueReminders(ctx context.Context, lookaheadDays int) ([]*models.ReminderInfo, error) {
	const op = "storage.FindDueReminders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + reminderInfoColumns + `
			  FROM reminders r
			  JOIN cars c ON r.car_id = c.id
			  JOIN users u ON c.user_uid = u.uid
			  WHERE r.status != 'completed'
			    AND r.notification_sent = false
			    AND r.due_date >= CURRENT_DATE
			    AND r.due_date <= CURRENT_DATE + ($1 || ' days')::INTERVAL
			  ORDER BY r.due_date`
	rows, err := s.DB.QueryContext(ctx, query, lookaheadDays)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ReminderInfo
	for rows.Next() {
		var info models.ReminderInfo
		if err = rows.Scan(&info.ReminderID, &info.ServiceType, &info.DueDate,
			&info.NotifySMS, &info.CarMake, &info.CarModel, &info.CarPlate,
			&info.UserUID, &info.Username, &info.Email, &info.Phone); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetReminderInfo returns a single reminder joined with its car and user,
// for the manual send-now path. The due-window filter does not apply here.
func (s *Storage) GetReminderInfo(ctx context.Context, id int) (*models.ReminderInfo, error) {
	const op = "storage.GetReminderInfo"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + reminderInfoColumns + `
			  FROM reminders r
			  JOIN cars c ON r.car_id = c.id
			  JOIN users u ON c.user_uid = u.uid
			  WHERE r.id = $1`
	var info models.ReminderInfo
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&info.ReminderID, &info.ServiceType, &info.DueDate,
		&info.NotifySMS, &info.CarMake, &info.CarModel, &info.CarPlate,
		&info.UserUID, &info.Username, &info.Email, &info.Phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &info, nil
}

// MarkNotified flips notification_sent to true, guarded so the flag
// transitions false -> true at most once. Returns the number of rows
// updated (0 when the reminder was already notified or does not exist).
func (s *Storage) MarkNotified(ctx context.Context, id int) (int, error) {
	const op = "storage.MarkNotified"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE reminders
			  SET notification_sent = true
			  WHERE id = $1 AND notification_sent = false`
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CompleteReminder marks a reminder completed, guarded on the current
// status, and returns its car and service type so a service record can be
// logged from it.
func (s *Storage) CompleteReminder(ctx context.Context, id int, userUID string, completedAt time.Time) (*models.Reminder, error) {
	const op = "storage.CompleteReminder"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE reminders r
			  SET status = 'completed', completed_at = $1
			  FROM cars c
			  WHERE r.id = $2 AND r.car_id = c.id AND c.user_uid = $3
			    AND r.status != 'completed'
			  RETURNING r.id, r.car_id, r.service_type, r.due_date, r.priority, r.status,
			      r.notification_sent, r.notify_email, r.notify_sms, r.notes, r.completed_at`
	var rem models.Reminder
	var completed sql.NullTime
	row := s.DB.QueryRowContext(ctx, query, completedAt, id, userUID)
	if err := row.Scan(&rem.ID, &rem.CarID, &rem.ServiceType, &rem.DueDate,
		&rem.Priority, &rem.Status, &rem.NotificationSent, &rem.NotifyEmail,
		&rem.NotifySMS, &rem.Notes, &completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if completed.Valid {
		rem.CompletedAt = &completed.Time
	}
	return &rem, nil
}

// RemoveReminder deletes a reminder, scoped to the car's owner, and
// returns the number of deleted rows.
func (s *Storage) RemoveReminder(ctx context.Context, id int, userUID string) (int, error) {
	const op = "storage.RemoveReminder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM reminders r
			  USING cars c
			  WHERE r.id = $1 AND r.car_id = c.id AND c.user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
