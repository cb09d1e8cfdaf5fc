package dto

// Explicit row shapes for booking listings; assembled by the handlers from
// preloaded records, never cast from ad hoc query results.

type CustomerBookingDTO struct {
	ID              uint   `json:"id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Status          string `json:"status"`
	ServiceName     string `json:"service_name"`
	BarberName      string `json:"barber_name"`
	TotalPrice      int64  `json:"total_price"`
	DepositPaid     bool   `json:"deposit_paid"`
}

type BarberBookingDTO struct {
	ID              uint   `json:"id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Status          string `json:"status"`
	CustomerName    string `json:"customer_name"`
	ServiceName     string `json:"service_name"`
	TotalPrice      int64  `json:"total_price"`
	DepositPaid     bool   `json:"deposit_paid"`
}
