package notify

import (
	"context"
	"sort"
	"sync"
	"time"

	"clinic-backend/internal/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store with the same contract as PostgresStore.
// It backs the test suites that exercise store semantics without a database.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[uuid.UUID][]models.Notification
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[uuid.UUID][]models.Notification)}
}

func (s *MemoryStore) Append(ctx context.Context, recipientID uuid.UUID, eventType string, appointmentID uuid.UUID, createdAt time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.rows[recipientID] = append(s.rows[recipientID], models.Notification{
		ID:            s.nextID,
		UserID:        recipientID,
		Type:          eventType,
		AppointmentID: appointmentID,
		IsRead:        false,
		CreatedAt:     createdAt,
	})
	return s.nextID, nil
}

func (s *MemoryStore) HasUnread(ctx context.Context, recipientID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.rows[recipientID] {
		if !n.IsRead {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) ListAndMarkRead(ctx context.Context, recipientID uuid.UUID, limit int) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.rows[recipientID]

	snapshot := make([]models.Notification, len(rows))
	copy(snapshot, rows)
	sort.SliceStable(snapshot, func(i, j int) bool {
		if snapshot[i].CreatedAt.Equal(snapshot[j].CreatedAt) {
			return snapshot[i].ID > snapshot[j].ID
		}
		return snapshot[i].CreatedAt.After(snapshot[j].CreatedAt)
	})
	if limit >= 0 && len(snapshot) > limit {
		snapshot = snapshot[:limit]
	}

	// Acknowledge all unread rows, not just the returned page.
	for i := range rows {
		rows[i].IsRead = true
	}

	return snapshot, nil
}

// Count returns how many notifications exist for the recipient.
func (s *MemoryStore) Count(recipientID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows[recipientID])
}
