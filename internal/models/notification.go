package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one in-app notification row for a user. AppointmentTime is
// joined from the appointments table for display and is nil when the source
// appointment no longer exists; the notification itself is kept regardless.
type Notification struct {
	ID              int64      `json:"id" db:"id"`
	UserID          uuid.UUID  `json:"user_id" db:"user_id"`
	Type            string     `json:"type" db:"type"`
	AppointmentID   uuid.UUID  `json:"appointment_id" db:"appointment_id"`
	AppointmentTime *time.Time `json:"appointment_time,omitempty"`
	IsRead          bool       `json:"is_read" db:"is_read"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}
