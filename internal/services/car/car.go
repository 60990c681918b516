// Package car contains the business logic for the vehicle registry.
package car

import (
	"context"
	"log/slog"

	"github.com/garilangu/gari-langu/internal/models"
)

// CarRepository describes the car persistence the service depends on.
type CarRepository interface {
	CreateCar(ctx context.Context, car models.Car) (int, error)
	GetCar(ctx context.Context, id int, userUID string) (*models.Car, error)
	ListCars(ctx context.Context, userUID string) ([]*models.Car, error)
	UpdateCar(ctx context.Context, car models.Car, id int, userUID string) (int, error)
	RemoveCar(ctx context.Context, id int, userUID string) (int, error)
}

// CarService owns the vehicle registry. Every operation is scoped to the
// calling user.
type CarService struct {
	repo CarRepository
	log  *slog.Logger
}

// New creates a new CarService.
func New(repo CarRepository, log *slog.Logger) *CarService {
	return &CarService{
		repo: repo,
		log:  log,
	}
}

// Create registers a new car for the user and returns its ID.
func (s *CarService) Create(ctx context.Context, userUID string, req models.DummyCar) (int, error) {
	car := models.Car{
		UserUID:      userUID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Registration: req.Registration,
	}
	id, err := s.repo.CreateCar(ctx, car)
	if err != nil {
		return 0, err
	}
	s.log.Info("registered new car", slog.Int("id", id), slog.String("registration", req.Registration))
	return id, nil
}

// Get returns one of the user's cars.
func (s *CarService) Get(ctx context.Context, id int, userUID string) (*models.Car, error) {
	return s.repo.GetCar(ctx, id, userUID)
}

// List returns all of the user's cars.
func (s *CarService) List(ctx context.Context, userUID string) ([]*models.Car, error) {
	return s.repo.ListCars(ctx, userUID)
}

// Update replaces a car's fields and returns the number of updated rows.
func (s *CarService) Update(ctx context.Context, id int, userUID string, req models.DummyCar) (int, error) {
	car := models.Car{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Registration: req.Registration,
	}
	count, err := s.repo.UpdateCar(ctx, car, id, userUID)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Remove deletes a car and, via the schema's cascade, its service records
// and reminders. Returns the number of deleted rows.
func (s *CarService) Remove(ctx context.Context, id int, userUID string) (int, error) {
	count, err := s.repo.RemoveCar(ctx, id, userUID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.log.Info("removed car", slog.Int("id", id))
	}
	return count, nil
}
