// Package servicelog contains the business logic for the maintenance
// history of a car.
package servicelog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/garilangu/gari-langu/internal/models"
)

// ServiceRecordRepository describes the persistence the service depends on.
type ServiceRecordRepository interface {
	CreateServiceRecord(ctx context.Context, rec models.ServiceRecord) (int, error)
	ListServiceRecords(ctx context.Context, carID int, userUID string) ([]*models.ServiceRecord, error)
	RemoveServiceRecord(ctx context.Context, id int, userUID string) (int, error)
	GetCar(ctx context.Context, id int, userUID string) (*models.Car, error)
}

// ServiceLogService owns the per-car maintenance history.
type ServiceLogService struct {
	repo ServiceRecordRepository
	log  *slog.Logger
}

// New creates a new ServiceLogService.
func New(repo ServiceRecordRepository, log *slog.Logger) *ServiceLogService {
	return &ServiceLogService{
		repo: repo,
		log:  log,
	}
}

// Create logs a maintenance event for one of the user's cars. The car is
// resolved first so a record can never be attached to another user's car.
func (s *ServiceLogService) Create(ctx context.Context, userUID string, req models.DummyServiceRecord) (int, error) {
	serviceDate, err := time.Parse("02-01-2006", req.ServiceDate)
	if err != nil {
		return 0, fmt.Errorf("invalid service date: %w", err)
	}
	if _, err := s.repo.GetCar(ctx, req.CarID, userUID); err != nil {
		return 0, err
	}

	rec := models.ServiceRecord{
		CarID:       req.CarID,
		ServiceType: req.ServiceType,
		Description: req.Description,
		Cost:        req.Cost,
		Mileage:     req.Mileage,
		ServiceDate: serviceDate,
	}
	id, err := s.repo.CreateServiceRecord(ctx, rec)
	if err != nil {
		return 0, err
	}
	s.log.Info("logged service record", slog.Int("id", id), slog.Int("car_id", req.CarID))
	return id, nil
}

// List returns the service history for one of the user's cars.
func (s *ServiceLogService) List(ctx context.Context, carID int, userUID string) ([]*models.ServiceRecord, error) {
	return s.repo.ListServiceRecords(ctx, carID, userUID)
}

// Remove deletes a service record and returns the number of deleted rows.
func (s *ServiceLogService) Remove(ctx context.Context, id int, userUID string) (int, error) {
	return s.repo.RemoveServiceRecord(ctx, id, userUID)
}
