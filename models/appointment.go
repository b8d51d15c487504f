package models

import "time"

// Appointment represents a bookable service type with a fixed duration.
type Appointment struct {
	ID          string    `bson:"id" json:"id"`                     // Unique appointment type identifier (UUID)
	TenantID    string    `bson:"tenant_id" json:"tenant_id"`       // Owning tenant
	Name        string    `bson:"name" json:"name"`                 // Display name (e.g., "Haircut")
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Duration    int       `bson:"duration" json:"duration"`         // Duration in minutes, always positive
	Price       float64   `bson:"price,omitempty" json:"price,omitempty"`
	IsActive    bool      `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
