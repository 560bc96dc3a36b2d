package notify

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreUnreadBadgeTracksAppends(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	recipient := uuid.New()

	hasUnread, err := store.HasUnread(ctx, recipient)
	require.NoError(t, err)
	assert.False(t, hasUnread)

	_, err = store.Append(ctx, recipient, TypeApproved, uuid.New(), time.Now())
	require.NoError(t, err)

	hasUnread, err = store.HasUnread(ctx, recipient)
	require.NoError(t, err)
	assert.True(t, hasUnread)

	// Another recipient's badge is unaffected
	other := uuid.New()
	hasUnread, err = store.HasUnread(ctx, other)
	require.NoError(t, err)
	assert.False(t, hasUnread)
}

func TestStoreListMarksEverythingRead(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	recipient := uuid.New()
	now := time.Now()

	for i := 0; i < 3; i++ {
		_, err := store.Append(ctx, recipient, TypeApproved, uuid.New(), now.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	// A page of 1 still acknowledges all 3
	page, err := store.ListAndMarkRead(ctx, recipient, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, now.Add(2*time.Minute).Unix(), page[0].CreatedAt.Unix())
	assert.False(t, page[0].IsRead)

	hasUnread, err := store.HasUnread(ctx, recipient)
	require.NoError(t, err)
	assert.False(t, hasUnread)
}

func TestStoreAcknowledgmentIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	recipient := uuid.New()

	_, err := store.Append(ctx, recipient, TypeCancelled, uuid.New(), time.Now())
	require.NoError(t, err)

	first, err := store.ListAndMarkRead(ctx, recipient, 50)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.False(t, first[0].IsRead)

	// Second call has nothing left to flip; items come back already read
	second, err := store.ListAndMarkRead(ctx, recipient, 50)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.True(t, second[0].IsRead)
}

func TestStoreOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	recipient := uuid.New()
	base := time.Now()

	t1 := base.Add(1 * time.Minute)
	t2 := base.Add(2 * time.Minute)
	t3 := base.Add(3 * time.Minute)
	for _, ts := range []time.Time{t1, t2, t3} {
		_, err := store.Append(ctx, recipient, TypeReminder, uuid.New(), ts)
		require.NoError(t, err)
	}

	list, err := store.ListAndMarkRead(ctx, recipient, 50)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, t3.Unix(), list[0].CreatedAt.Unix())
	assert.Equal(t, t2.Unix(), list[1].CreatedAt.Unix())
	assert.Equal(t, t1.Unix(), list[2].CreatedAt.Unix())
}

func TestStoreBreaksTimestampTiesByInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	recipient := uuid.New()
	now := time.Now()

	firstID, err := store.Append(ctx, recipient, TypeApproved, uuid.New(), now)
	require.NoError(t, err)
	secondID, err := store.Append(ctx, recipient, TypeRescheduled, uuid.New(), now)
	require.NoError(t, err)

	list, err := store.ListAndMarkRead(ctx, recipient, 50)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, secondID, list[0].ID)
	assert.Equal(t, firstID, list[1].ID)
}
