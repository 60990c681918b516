package repository

import (
	"context"
	"fmt"

	"github.com/garilangu/gari-langu/internal/models"
)

// AppendNotification saves a notification record and returns its ID. The
// log is append-only: records are never updated except for the read marker.
func (s *Storage) AppendNotification(ctx context.Context, n models.Notification) (int, error) {
	const op = "storage.AppendNotification"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO notifications (recipient_type, user_uid, type, title,
			      message, priority)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		n.RecipientType, n.UserUID, n.Type, n.Title, n.Message, n.Priority).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListNotifications returns the notifications visible to a caller: the
// admin role sees the admin feed, a user sees only records addressed to
// them. Newest first.
func (s *Storage) ListNotifications(ctx context.Context, userUID, role string) ([]*models.Notification, error) {
	const op = "storage.ListNotifications"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, recipient_type, user_uid, type, title, message, priority,
			      is_read, created_at
			  FROM notifications
			  WHERE recipient_type = 'user' AND user_uid = $1
			  ORDER BY created_at DESC`
	if role == models.RoleAdmin {
		query = `SELECT id, recipient_type, user_uid, type, title, message, priority,
			      is_read, created_at
			  FROM notifications
			  WHERE recipient_type = 'admin' OR user_uid = $1
			  ORDER BY created_at DESC`
	}
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.RecipientType, &n.UserUID, &n.Type, &n.Title,
			&n.Message, &n.Priority, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkNotificationRead flips the read marker on a single notification,
// scoped to the caller's visibility. Returns the number of updated rows.
func (s *Storage) MarkNotificationRead(ctx context.Context, id int, userUID, role string) (int, error) {
	const op = "storage.MarkNotificationRead"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE notifications
			  SET is_read = true
			  WHERE id = $1 AND recipient_type = 'user' AND user_uid = $2`
	if role == models.RoleAdmin {
		query = `UPDATE notifications
			  SET is_read = true
			  WHERE id = $1 AND (recipient_type = 'admin' OR user_uid = $2)`
	}
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

// MarkAllNotificationsRead flips the read marker on every notification
// visible to the caller. Returns the number of updated rows.
func (s *Storage) MarkAllNotificationsRead(ctx context.Context, userUID, role string) (int, error) {
	const op = "storage.MarkAllNotificationsRead"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE notifications
			  SET is_read = true
			  WHERE is_read = false AND recipient_type = 'user' AND user_uid = $1`
	if role == models.RoleAdmin {
		query = `UPDATE notifications
			  SET is_read = true
			  WHERE is_read = false AND (recipient_type = 'admin' OR user_uid = $1)`
	}
	result, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CountUnreadNotifications returns the caller's unread count.
func (s *Storage) CountUnreadNotifications(ctx context.Context, userUID, role string) (int, error) {
	const op = "storage.CountUnreadNotifications"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*)
			  FROM notifications
			  WHERE is_read = false AND recipient_type = 'user' AND user_uid = $1`
	if role == models.RoleAdmin {
		query = `SELECT COUNT(*)
			  FROM notifications
			  WHERE is_read = false AND (recipient_type = 'admin' OR user_uid = $1)`
	}
	var count int
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// RemoveNotification deletes a notification, scoped to the caller's
// visibility, and returns the number of deleted rows.
func (s *Storage) RemoveNotification(ctx context.Context, id int, userUID, role string) (int, error) {
	const op = "storage.RemoveNotification"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM notifications
			  WHERE id = $1 AND recipient_type = 'user' AND user_uid = $2`
	if role == models.RoleAdmin {
		query = `DELETE FROM notifications
			  WHERE id = $1 AND (recipient_type = 'admin' OR user_uid = $2)`
	}
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
