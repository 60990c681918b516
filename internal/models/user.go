// Package models contains the domain structures of Gari Langu: users,
// cars, service records, maintenance reminders, payments and notifications.
package models

import "time"

// Roles assigned to a user account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account together with its entitlement state.
// SubscriptionExpire is meaningful only while IsSubscribed is true; an
// expired subscription keeps the flag but fails the entitlement check.
type User struct {
	UID                string     // Unique identifier (UUID)
	Email              string     // E-mail address (unique)
	Username           string     // Display name (unique)
	PasswordHash       string     // bcrypt hash
	Phone              string     // Optional phone number for SMS, empty if none
	Role               string     // "user" or "admin"
	Language           string     // Preferred language, "sw" or "en"
	RegisteredAt       time.Time  // Registration timestamp
	TrialEndDate       *time.Time // End of the free trial window
	IsSubscribed       bool       // A paid subscription was granted at some point
	SubscriptionExpire *time.Time // End of the paid subscription
	PendingPayment     bool       // A payment claim awaits admin verification
	IsActive           bool       // Admin-controlled access switch
}

// DummyRegisterUser carries registration input from a JSON request.
type DummyRegisterUser struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,min=9,max=15"`
	Language string `json:"language,omitempty" validate:"omitempty,oneof=sw en"`
}
