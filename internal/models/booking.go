package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	BarberID uint          `json:"barber_id"`
	Barber   BarberProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Calendar date (YYYY-MM-DD) and normalized time of day (HH:MM:SS).
	AppointmentDate string `gorm:"size:10;index" json:"appointment_date"`
	AppointmentTime string `gorm:"size:8" json:"appointment_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	// Snapshot of the service price at booking time, minor units.
	TotalPrice  int64 `json:"total_price"`
	DepositPaid bool  `gorm:"default:false" json:"deposit_paid"`

	PaymentIntentRef *string `gorm:"size:255;index" json:"payment_intent_ref"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
