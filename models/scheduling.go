package models

import "time"

// Scheduling represents a committed booking of one or more appointment types
// with a worker. Start and End are minutes from midnight on Date; Duration is
// the sum of the booked appointment durations and End-Start always equals it.
type Scheduling struct {
	ID             string    `bson:"id" json:"id"`
	TenantID       string    `bson:"tenant_id" json:"tenant_id"`
	WorkerID       string    `bson:"worker_id" json:"worker_id"`
	ClientID       string    `bson:"client_id" json:"client_id"`
	AppointmentIDs []string  `bson:"appointment_ids" json:"appointment_ids"`
	Date           string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Start          int       `bson:"start" json:"start"`
	End            int       `bson:"end" json:"end"`
	Duration       int       `bson:"duration" json:"duration"`
	Notes          string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Cancelled      bool      `bson:"cancelled,omitempty" json:"cancelled,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// SchedulingConfig holds per-tenant scheduling policy. OverlapTolerance is the
// number of minutes a booking may run past the nominal closing edge of an
// availability window.
type SchedulingConfig struct {
	TenantID         string    `bson:"tenant_id" json:"tenant_id"`
	OverlapTolerance int       `bson:"overlap_tolerance" json:"overlap_tolerance"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}
