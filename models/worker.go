package models

import "time"

// Worker represents a service professional whose agenda can be booked.
// A worker belongs to exactly one tenant.
type Worker struct {
	ID        string    `bson:"id" json:"id"`
	TenantID  string    `bson:"tenant_id" json:"tenant_id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	IsActive  bool      `bson:"is_active" json:"is_active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
