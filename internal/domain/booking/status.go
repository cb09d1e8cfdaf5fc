package booking

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ActiveStatuses are the non-terminal statuses that occupy a slot.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Transition table
// ===============================

var transitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusConfirmed: true, // payment success
		StatusCancelled: true, // payment failure / customer cancel
		StatusCompleted: true, // barber action
	},
	StatusConfirmed: {
		StatusCancelled: true, // customer cancel
		StatusCompleted: true, // barber action
	},
}

// CanTransition reports whether from -> to is a legal lifecycle move.
func CanTransition(from, to Status) error {
	if transitions[from][to] {
		return nil
	}
	return ErrInvalidTransition
}

func Cancellable(s Status) bool {
	return s == StatusPending || s == StatusConfirmed
}

func InitialStatus() Status {
	return StatusPending
}
