package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garilangu/gari-langu/internal/models"
)

// CreateCar inserts a new car and returns its ID.
func (s *Storage) CreateCar(ctx context.Context, car models.Car) (int, error) {
	const op = "storage.CreateCar"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO cars (user_uid, make, model, year, registration)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		car.UserUID, car.Make, car.Model, car.Year, car.Registration).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetCar returns a car by ID, scoped to its owner.
func (s *Storage) GetCar(ctx context.Context, id int, userUID string) (*models.Car, error) {
	const op = "storage.GetCar"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, make, model, year, registration, created_at
			  FROM cars
			  WHERE id = $1 AND user_uid = $2`
	var car models.Car
	row := s.DB.QueryRowContext(ctx, query, id, userUID)
	if err := row.Scan(&car.ID, &car.UserUID, &car.Make, &car.Model, &car.Year,
		&car.Registration, &car.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &car, nil
}

// ListCars returns all cars owned by a user.
func (s *Storage) ListCars(ctx context.Context, userUID string) ([]*models.Car, error) {
	const op = "storage.ListCars"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, make, model, year, registration, created_at
			  FROM cars
			  WHERE user_uid = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Car
	for rows.Next() {
		var car models.Car
		if err := rows.Scan(&car.ID, &car.UserUID, &car.Make, &car.Model, &car.Year,
			&car.Registration, &car.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &car)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateCar updates a car's fields, scoped to its owner, and returns the
// number of updated rows.
func (s *Storage) UpdateCar(ctx context.Context, car models.Car, id int, userUID string) (int, error) {
	const op = "storage.UpdateCar"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE cars
			  SET make = $1, model = $2, year = $3, registration = $4
			  WHERE id = $5 AND user_uid = $6`
	result, err := s.DB.ExecContext(ctx, query,
		car.Make, car.Model, car.Year, car.Registration, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveCar deletes a car, scoped to its owner, and returns the number of
// deleted rows.
func (s *Storage) RemoveCar(ctx context.Context, id int, userUID string) (int, error) {
	const op = "storage.RemoveCar"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM cars WHERE id = $1 AND user_uid = $2`
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
