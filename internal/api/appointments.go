package api

import (
	"errors"
	"net/http"
	"time"

	"clinic-backend/internal/models"
	"clinic-backend/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BookAppointment creates a pending appointment for the calling student.
func (s *Server) BookAppointment(c *gin.Context) {
	var req models.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx := c.Request.Context()
	query := `
		INSERT INTO appointments (user_id, reason, scheduled_at, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING id, user_id, reason, scheduled_at, status, created_at, updated_at
	`

	var appt models.Appointment
	err = s.db.QueryRow(ctx, query, userID, req.Reason, req.ScheduledAt).Scan(
		&appt.ID, &appt.UserID, &appt.Reason, &appt.ScheduledAt, &appt.Status, &appt.CreatedAt, &appt.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book appointment"})
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// GetAppointments lists the caller's own appointments; clinic staff and
// admins see all appointments joined with the student's details.
func (s *Server) GetAppointments(c *gin.Context) {
	ctx := c.Request.Context()
	role := c.GetString("role")

	if role == "clinic" || role == "admin" {
		query := `
			SELECT a.id, a.user_id, a.reason, a.scheduled_at, a.status, a.created_at, a.updated_at,
				u.name AS student_name, u.email AS student_email
			FROM appointments a
			JOIN users u ON a.user_id = u.id
			ORDER BY a.scheduled_at DESC
		`
		rows, err := s.db.Query(ctx, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
			return
		}
		defer rows.Close()

		appointments := []models.AppointmentWithStudent{}
		for rows.Next() {
			var a models.AppointmentWithStudent
			if err := rows.Scan(&a.ID, &a.UserID, &a.Reason, &a.ScheduledAt, &a.Status, &a.CreatedAt, &a.UpdatedAt,
				&a.StudentName, &a.StudentEmail); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan appointments"})
				return
			}
			appointments = append(appointments, a)
		}
		c.JSON(http.StatusOK, gin.H{"appointments": appointments})
		return
	}

	userID := c.GetString("user_id")
	query := `
		SELECT id, user_id, reason, scheduled_at, status, created_at, updated_at
		FROM appointments
		WHERE user_id = $1
		ORDER BY scheduled_at DESC
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}
	defer rows.Close()

	appointments := []models.Appointment{}
	for rows.Next() {
		var a models.Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Reason, &a.ScheduledAt, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan appointments"})
			return
		}
		appointments = append(appointments, a)
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

// ApproveAppointment moves a pending appointment to approved and notifies
// the student.
func (s *Server) ApproveAppointment(c *gin.Context) {
	s.setStatusAndNotify(c, models.AppointmentApproved, notify.Approved{})
}

// CancelAppointment cancels the appointment and notifies the student.
func (s *Server) CancelAppointment(c *gin.Context) {
	s.setStatusAndNotify(c, models.AppointmentCancelled, notify.Cancelled{})
}

// CompleteAppointment marks the visit done and notifies the student.
func (s *Server) CompleteAppointment(c *gin.Context) {
	s.setStatusAndNotify(c, models.AppointmentCompleted, notify.Completed{})
}

func (s *Server) setStatusAndNotify(c *gin.Context, status string, event notify.Event) {
	apptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}

	ctx := c.Request.Context()
	query := `
		UPDATE appointments
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, user_id, reason, scheduled_at, status, created_at, updated_at
	`

	var appt models.Appointment
	err = s.db.QueryRow(ctx, query, status, apptID).Scan(
		&appt.ID, &appt.UserID, &appt.Reason, &appt.ScheduledAt, &appt.Status, &appt.CreatedAt, &appt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment"})
		return
	}

	if err := s.notifier.Emit(ctx, apptID, event); err != nil {
		c.JSON(notifyErrorStatus(err), gin.H{
			"error":       "Appointment updated but notification failed",
			"appointment": appt,
		})
		return
	}

	c.JSON(http.StatusOK, appt)
}

// RescheduleAppointment moves the appointment to a new slot and notifies the
// student with both the old and the new time.
func (s *Server) RescheduleAppointment(c *gin.Context) {
	apptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}

	var req models.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	var previous time.Time
	err = s.db.QueryRow(ctx, "SELECT scheduled_at FROM appointments WHERE id = $1", apptID).Scan(&previous)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointment"})
		return
	}

	query := `
		UPDATE appointments
		SET scheduled_at = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, user_id, reason, scheduled_at, status, created_at, updated_at
	`

	var appt models.Appointment
	err = s.db.QueryRow(ctx, query, req.ScheduledAt, apptID).Scan(
		&appt.ID, &appt.UserID, &appt.Reason, &appt.ScheduledAt, &appt.Status, &appt.CreatedAt, &appt.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reschedule appointment"})
		return
	}

	if err := s.notifier.Emit(ctx, apptID, notify.Rescheduled{Previous: previous}); err != nil {
		c.JSON(notifyErrorStatus(err), gin.H{
			"error":       "Appointment rescheduled but notification failed",
			"appointment": appt,
		})
		return
	}

	c.JSON(http.StatusOK, appt)
}

// RemindAppointment sends a reminder for an upcoming appointment. It changes
// no appointment state; an external scheduler is expected to call it.
func (s *Server) RemindAppointment(c *gin.Context) {
	apptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}

	if err := s.notifier.Emit(c.Request.Context(), apptID, notify.Reminder{}); err != nil {
		c.JSON(notifyErrorStatus(err), gin.H{"error": "Failed to send reminder"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder sent"})
}

func notifyErrorStatus(err error) int {
	switch {
	case errors.Is(err, notify.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, notify.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, notify.ErrMailDelivery), errors.Is(err, notify.ErrStoreUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
