package models

import "time"

// Reminder statuses. Status is derived from due-date distance when the
// reminder is created or updated, not re-derived by a background timer.
const (
	ReminderStatusUpcoming  = "upcoming"
	ReminderStatusFuture    = "future"
	ReminderStatusCompleted = "completed"
)

// Reminder is a scheduled maintenance obligation tied to a car.
// NotificationSent transitions false -> true exactly once per due cycle.
type Reminder struct {
	ID               int        // Primary key
	CarID            int        // Owning car
	ServiceType      string     // e.g. "Brake Inspection"
	DueDate          time.Time  // When the service is due
	Priority         string     // high, medium or low
	Status           string     // upcoming, future or completed
	NotificationSent bool       // Aggregate flag over both channels
	NotifyEmail      bool       // Email channel enabled
	NotifySMS        bool       // SMS channel enabled
	Notes            string     // Free-text notes
	CompletedAt      *time.Time // Set when the reminder is completed
}

// DummyReminder carries reminder input from a JSON request.
type DummyReminder struct {
	CarID       int    `json:"car_id" validate:"required"`
	ServiceType string `json:"service_type" validate:"required"`
	DueDate     string `json:"due_date" validate:"required"` // 02-01-2006
	Priority    string `json:"priority" validate:"required,oneof=high medium low"`
	NotifyEmail bool   `json:"notify_email"`
	NotifySMS   bool   `json:"notify_sms"`
	Notes       string `json:"notes,omitempty"`
}

// ReminderInfo is a reminder joined with its car and owning user, the unit
// of work for notification dispatch. Published to RabbitMQ as JSON.
type ReminderInfo struct {
	ReminderID  int       `json:"reminder_id"`
	ServiceType string    `json:"service_type"`
	DueDate     time.Time `json:"due_date"`
	NotifySMS   bool      `json:"notify_sms"`
	CarMake     string    `json:"car_make"`
	CarModel    string    `json:"car_model"`
	CarPlate    string    `json:"car_plate"`
	UserUID     string    `json:"user_uid"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
}
