package email

import (
	"fmt"
	"time"
)

const displayTimeFormat = "January 2, 2006, 3:04 PM"

func appointmentBody(heading, detail string) string {
	return fmt.Sprintf(`
		<html>
			<body>
				<h2>%s</h2>
				<p>%s</p>
				<p>If you don't recognize this appointment, please ignore this email.</p>
				<p>Best,<br/>- Campus Care</p>
			</body>
		</html>
	`, heading, detail)
}

func AppointmentApproved(scheduledAt time.Time) (subject, body string) {
	subject = "Appointment Approved"
	body = appointmentBody(
		"Your appointment is approved!",
		fmt.Sprintf("It is scheduled for %s.", scheduledAt.Format(displayTimeFormat)),
	)
	return subject, body
}

func AppointmentCancelled(cancelledAt time.Time) (subject, body string) {
	subject = "Appointment Cancelled"
	body = appointmentBody(
		"Your appointment has been cancelled",
		fmt.Sprintf("It was cancelled on %s. Please book a new appointment if you still need one.", cancelledAt.Format(displayTimeFormat)),
	)
	return subject, body
}

func AppointmentRescheduled(previous, next time.Time) (subject, body string) {
	subject = "Appointment Rescheduled"
	body = appointmentBody(
		"Your appointment has been rescheduled",
		fmt.Sprintf("It was moved from %s to %s.", previous.Format(displayTimeFormat), next.Format(displayTimeFormat)),
	)
	return subject, body
}

func AppointmentCompleted(scheduledAt time.Time) (subject, body string) {
	subject = "Appointment Completed"
	body = appointmentBody(
		"Your appointment is complete",
		fmt.Sprintf("Your visit on %s has been marked as completed.", scheduledAt.Format(displayTimeFormat)),
	)
	return subject, body
}

func AppointmentReminder(scheduledAt time.Time) (subject, body string) {
	subject = "Appointment Reminder"
	body = appointmentBody(
		"Appointment reminder",
		fmt.Sprintf("You have an upcoming appointment on %s.", scheduledAt.Format(displayTimeFormat)),
	)
	return subject, body
}
