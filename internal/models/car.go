package models

import "time"

// Car represents a vehicle registered by a user.
type Car struct {
	ID           int       // Primary key
	UserUID      string    // Owning user
	Make         string    // Manufacturer, e.g. Toyota
	Model        string    // Model, e.g. Hilux
	Year         int       // Year of manufacture
	Registration string    // Plate number
	CreatedAt    time.Time // Creation timestamp
}

// DummyCar carries car input from a JSON request.
type DummyCar struct {
	Make         string `json:"make" validate:"required"`
	Model        string `json:"model" validate:"required"`
	Year         int    `json:"year" validate:"required,gte=1950,lte=2100"`
	Registration string `json:"registration" validate:"required"`
}
