package models

import "time"

// TimeRange is a half-open availability window [Start, End) stored as
// wall-clock "HH:MM" strings in the tenant's local zone.
type TimeRange struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// WeeklyAvailability holds a worker's recurring weekly pattern: for each
// weekday an ordered list of at most two ranges. Days is a fixed table
// indexed Monday=0 .. Sunday=6.
type WeeklyAvailability struct {
	ID        string         `bson:"id" json:"id"`
	TenantID  string         `bson:"tenant_id" json:"tenant_id"`
	WorkerID  string         `bson:"worker_id" json:"worker_id"`
	Days      [7][]TimeRange `bson:"days" json:"days"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updated_at"`
}

// WeekdayIndex maps a time.Weekday onto the Days table (Monday=0 .. Sunday=6).
func WeekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
