package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AppointmentPending   = "pending"
	AppointmentApproved  = "approved"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

type Appointment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Reason      string    `json:"reason" db:"reason"`
	ScheduledAt time.Time `json:"scheduled_at" db:"scheduled_at"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type AppointmentWithStudent struct {
	Appointment
	StudentName  string `json:"student_name" db:"student_name"`
	StudentEmail string `json:"student_email" db:"student_email"`
}

type BookAppointmentRequest struct {
	Reason      string    `json:"reason"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

type RescheduleAppointmentRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

func (a *Appointment) IsUpcoming() bool {
	return a.ScheduledAt.After(time.Now())
}

func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentPending
}
