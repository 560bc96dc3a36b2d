package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"clinic-backend/internal/email"

	"github.com/google/uuid"
)

// RecipientAppointment is the appointment joined with its recipient's
// contact details, as resolved for one emit call.
type RecipientAppointment struct {
	AppointmentID uuid.UUID
	UserID        uuid.UUID
	Name          string
	Email         string
	ScheduledAt   time.Time
}

// AppointmentSource resolves an appointment id to its recipient and schedule.
type AppointmentSource interface {
	Resolve(ctx context.Context, appointmentID uuid.UUID) (*RecipientAppointment, error)
}

// Signaler delivers a best-effort "something changed" hint to the recipient's
// live connection, if any. It must never block.
type Signaler interface {
	Signal(recipientID uuid.UUID)
}

// Service turns an appointment event into an email, a durable notification
// row and a push signal, in that order. A mail failure aborts the whole emit
// so a push never advertises an event whose email was never sent, and the
// push only ever runs after the row is durably written.
type Service struct {
	source AppointmentSource
	mailer email.Mailer
	store  Store
	push   Signaler
}

func NewService(source AppointmentSource, mailer email.Mailer, store Store, push Signaler) *Service {
	return &Service{
		source: source,
		mailer: mailer,
		store:  store,
		push:   push,
	}
}

// Emit notifies the appointment's recipient about event. All side effects run
// synchronously; the caller owns retries.
func (s *Service) Emit(ctx context.Context, appointmentID uuid.UUID, event Event) error {
	// Validate before any side effect.
	if r, ok := event.(Rescheduled); ok && r.Previous.IsZero() {
		return fmt.Errorf("%w: rescheduled event requires the previous appointment time", ErrInvalidArgument)
	}

	appt, err := s.source.Resolve(ctx, appointmentID)
	if err != nil {
		return err
	}

	now := time.Now()

	var subject, body string
	switch ev := event.(type) {
	case Approved:
		subject, body = email.AppointmentApproved(appt.ScheduledAt)
	case Cancelled:
		// The cancellation email carries the time it was cancelled, not the
		// original slot.
		subject, body = email.AppointmentCancelled(now)
	case Rescheduled:
		subject, body = email.AppointmentRescheduled(ev.Previous, appt.ScheduledAt)
	case Completed:
		subject, body = email.AppointmentCompleted(appt.ScheduledAt)
	case Reminder:
		subject, body = email.AppointmentReminder(appt.ScheduledAt)
	default:
		return fmt.Errorf("%w: unknown event %T", ErrInvalidArgument, event)
	}

	if err := s.mailer.Send(appt.Email, subject, body); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	if _, err := s.store.Append(ctx, appt.UserID, event.Kind(), appointmentID, now); err != nil {
		// The email already went out; the in-app copy is lost. There is no
		// compensating action, so make the gap visible.
		log.Printf("notification record for appointment %s (%s) failed after email was sent: %v",
			appointmentID, event.Kind(), err)
		return err
	}

	s.push.Signal(appt.UserID)
	return nil
}
