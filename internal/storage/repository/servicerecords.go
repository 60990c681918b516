package repository

import (
	"context"
	"fmt"

	"github.com/garilangu/gari-langu/internal/models"
)

// CreateServiceRecord inserts a maintenance log entry and returns its ID.
func (s *Storage) CreateServiceRecord(ctx context.Context, rec models.ServiceRecord) (int, error) {
	const op = "storage.CreateServiceRecord"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO service_records (car_id, service_type, description, cost,
			      mileage, service_date, from_reminder, reminder_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		rec.CarID, rec.ServiceType, rec.Description, rec.Cost, rec.Mileage,
		rec.ServiceDate, rec.FromReminder, rec.ReminderID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListServiceRecords returns the service history for a car, scoped to the
// car's owner, newest first.
func (s *Storage) ListServiceRecords(ctx context.Context, carID int, userUID string) ([]*models.ServiceRecord, error) {
	const op = "storage.ListServiceRecords"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT sr.id, sr.car_id, sr.service_type, sr.description, sr.cost,
			      sr.mileage, sr.service_date, sr.from_reminder, sr.reminder_id
			  FROM service_records sr
			  JOIN cars c ON sr.car_id = c.id
			  WHERE sr.car_id = $1 AND c.user_uid = $2
			  ORDER BY sr.service_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, carID, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ServiceRecord
	for rows.Next() {
		var rec models.ServiceRecord
		if err := rows.Scan(&rec.ID, &rec.CarID, &rec.ServiceType, &rec.Description,
			&rec.Cost, &rec.Mileage, &rec.ServiceDate, &rec.FromReminder,
			&rec.ReminderID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveServiceRecord deletes a service record, scoped to the car's owner,
// and returns the number of deleted rows.
func (s *Storage) RemoveServiceRecord(ctx context.Context, id int, userUID string) (int, error) {
	const op = "storage.RemoveServiceRecord"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM service_records sr
			  USING cars c
			  WHERE sr.id = $1 AND sr.car_id = c.id AND c.user_uid = $2`
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
