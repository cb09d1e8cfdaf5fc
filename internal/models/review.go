package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint `gorm:"uniqueIndex" json:"booking_id"`

	CustomerID uint `json:"customer_id"`
	BarberID   uint `gorm:"index" json:"barber_id"`

	Rating  int    `json:"rating"`
	Comment string `gorm:"size:1000" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}
