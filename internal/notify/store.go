package notify

import (
	"context"
	"time"

	"clinic-backend/internal/models"

	"github.com/google/uuid"
)

// Store is the durable notification log, append-mostly and keyed by
// recipient. Rows are never deleted and the only mutation is the one-way
// false-to-true flip of is_read.
type Store interface {
	// Append records a new unread notification and returns its id.
	Append(ctx context.Context, recipientID uuid.UUID, eventType string, appointmentID uuid.UUID, createdAt time.Time) (int64, error)

	// HasUnread reports whether the recipient has at least one unread
	// notification. It never changes read state (badge check).
	HasUnread(ctx context.Context, recipientID uuid.UUID) (bool, error)

	// ListAndMarkRead returns up to limit most recent notifications for the
	// recipient (newest first, insertion order breaking created_at ties) and,
	// in the same logical operation, marks every unread notification for that
	// recipient read - including ones beyond the returned page. Viewing the
	// list acknowledges everything.
	ListAndMarkRead(ctx context.Context, recipientID uuid.UUID, limit int) ([]models.Notification, error)
}
