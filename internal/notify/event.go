package notify

import "time"

// Notification type values as stored in appointment_notifications.type.
const (
	TypeApproved    = "approved"
	TypeCancelled   = "cancelled"
	TypeRescheduled = "rescheduled"
	TypeCompleted   = "completed"
	TypeReminder    = "reminder"
)

// Event is a closed set of appointment events that produce a notification.
// Modelling these as variants (instead of a type string plus optional fields)
// makes the previous-time requirement for reschedules part of the signature.
type Event interface {
	Kind() string
}

// Approved means the clinic accepted a pending appointment.
type Approved struct{}

// Cancelled means the appointment was called off.
type Cancelled struct{}

// Rescheduled means the appointment moved; Previous is the slot it moved
// away from and must be set.
type Rescheduled struct {
	Previous time.Time
}

// Completed means the visit took place.
type Completed struct{}

// Reminder is issued ahead of the appointment by an external trigger.
type Reminder struct{}

func (Approved) Kind() string    { return TypeApproved }
func (Cancelled) Kind() string   { return TypeCancelled }
func (Rescheduled) Kind() string { return TypeRescheduled }
func (Completed) Kind() string   { return TypeCompleted }
func (Reminder) Kind() string    { return TypeReminder }
