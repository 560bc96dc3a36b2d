package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-backend/internal/database"
	"clinic-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PostgresStore keeps notifications in the appointment_notifications table.
type PostgresStore struct {
	db *database.Database
}

func NewPostgresStore(db *database.Database) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, recipientID uuid.UUID, eventType string, appointmentID uuid.UUID, createdAt time.Time) (int64, error) {
	query := `
		INSERT INTO appointment_notifications (user_id, type, appointment_id, is_read, created_at)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRow(ctx, query, recipientID, eventType, appointmentID, createdAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return id, nil
}

func (s *PostgresStore) HasUnread(ctx context.Context, recipientID uuid.UUID) (bool, error) {
	var hasUnread bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM appointment_notifications WHERE user_id = $1 AND is_read = FALSE)",
		recipientID,
	).Scan(&hasUnread)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return hasUnread, nil
}

func (s *PostgresStore) ListAndMarkRead(ctx context.Context, recipientID uuid.UUID, limit int) ([]models.Notification, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer tx.Rollback(ctx)

	// Newest first; id breaks created_at ties in insertion order. The LEFT
	// JOIN keeps notifications whose appointment has since been deleted.
	query := `
		SELECT n.id, n.user_id, n.type, n.appointment_id, a.scheduled_at, n.is_read, n.created_at
		FROM appointment_notifications n
		LEFT JOIN appointments a ON n.appointment_id = a.id
		WHERE n.user_id = $1
		ORDER BY n.created_at DESC, n.id DESC
		LIMIT $2
	`

	rows, err := tx.Query(ctx, query, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	notifications, err := scanNotifications(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// Mark everything unread as read, not just the returned page.
	_, err = tx.Exec(ctx,
		"UPDATE appointment_notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE",
		recipientID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return notifications, nil
}

func scanNotifications(rows pgx.Rows) ([]models.Notification, error) {
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.AppointmentID, &n.AppointmentTime, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// PostgresAppointmentSource resolves an appointment id to the recipient and
// schedule details the emitter needs.
type PostgresAppointmentSource struct {
	db *database.Database
}

func NewPostgresAppointmentSource(db *database.Database) *PostgresAppointmentSource {
	return &PostgresAppointmentSource{db: db}
}

func (s *PostgresAppointmentSource) Resolve(ctx context.Context, appointmentID uuid.UUID) (*RecipientAppointment, error) {
	query := `
		SELECT a.id, a.user_id, u.name, u.email, a.scheduled_at
		FROM appointments a
		JOIN users u ON a.user_id = u.id
		WHERE a.id = $1
	`

	var appt RecipientAppointment
	err := s.db.QueryRow(ctx, query, appointmentID).Scan(
		&appt.AppointmentID, &appt.UserID, &appt.Name, &appt.Email, &appt.ScheduledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, appointmentID)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &appt, nil
}
