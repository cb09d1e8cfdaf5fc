package models

import "time"

// AvailabilityRule is the weekly recurring open window for a barber.
// One row per (barber, weekday); updates replace, never append.
type AvailabilityRule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex:idx_availability_barber_day" json:"barber_id"`

	DayOfWeek int `gorm:"uniqueIndex:idx_availability_barber_day" json:"day_of_week"`

	StartTime   string `gorm:"size:8" json:"start_time"`
	EndTime     string `gorm:"size:8" json:"end_time"`
	IsAvailable bool   `json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
