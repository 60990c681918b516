package models

import "time"

// Notification recipients and types.
const (
	RecipientAdmin = "admin"
	RecipientUser  = "user"

	NotificationTypeEmail  = "email"
	NotificationTypeSMS    = "sms"
	NotificationTypeSystem = "system"
)

// Notification is an append-only record of a message addressed to the
// admin audience or to a specific user. Its creation has no side effects.
type Notification struct {
	ID            int       // Primary key
	RecipientType string    // "admin" or "user"
	UserUID       *string   // Addressed user, nil for admin notifications
	Type          string    // email, sms or system
	Title         string    // Short title
	Message       string    // Body text
	Priority      string    // high, medium or low
	IsRead        bool      // Read marker
	CreatedAt     time.Time // Append timestamp
}
