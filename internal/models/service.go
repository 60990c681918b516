package models

import "time"

// ServiceRecord is a logged maintenance event for a car, either entered
// manually or produced by completing a reminder.
type ServiceRecord struct {
	ID           int       // Primary key
	CarID        int       // Owning car
	ServiceType  string    // e.g. "Oil Change"
	Description  string    // Free-text details
	Cost         int       // Cost in TZS
	Mileage      int       // Odometer reading, 0 if unknown
	ServiceDate  time.Time // When the service was performed
	FromReminder bool      // Provenance: created by completing a reminder
	ReminderID   *int      // The reminder that produced it, if any
}

// DummyServiceRecord carries service-record input from a JSON request.
type DummyServiceRecord struct {
	CarID       int    `json:"car_id" validate:"required"`
	ServiceType string `json:"service_type" validate:"required"`
	Description string `json:"description,omitempty"`
	Cost        int    `json:"cost" validate:"gte=0"`
	Mileage     int    `json:"mileage,omitempty" validate:"omitempty,gte=0"`
	ServiceDate string `json:"service_date" validate:"required"` // 02-01-2006
}
