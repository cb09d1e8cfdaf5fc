package models

import "time"

type WaitlistEntry struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer"`

	BarberID uint `gorm:"index" json:"barber_id"`

	PreferredDate      string `gorm:"size:10;index" json:"preferred_date"`
	PreferredTimeRange string `gorm:"size:50" json:"preferred_time_range"`

	// Flipped once, false -> true, only by the waitlist matcher.
	Notified bool `gorm:"default:false" json:"notified"`

	CreatedAt time.Time `json:"created_at"`
}
