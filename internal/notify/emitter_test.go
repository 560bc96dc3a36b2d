package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockAppointmentSource struct{ mock.Mock }

func (m *mockAppointmentSource) Resolve(ctx context.Context, appointmentID uuid.UUID) (*RecipientAppointment, error) {
	args := m.Called(ctx, appointmentID)
	if a, _ := args.Get(0).(*RecipientAppointment); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(to, subject, htmlBody string) error {
	return m.Called(to, subject, htmlBody).Error(0)
}

type recordingSignaler struct {
	signals []uuid.UUID
}

func (r *recordingSignaler) Signal(recipientID uuid.UUID) {
	r.signals = append(r.signals, recipientID)
}

// --- helpers ---

func testAppointment() *RecipientAppointment {
	return &RecipientAppointment{
		AppointmentID: uuid.New(),
		UserID:        uuid.New(),
		Name:          "Riley Cruz",
		Email:         "r@example.com",
		ScheduledAt:   time.Date(2026, time.September, 14, 10, 30, 0, 0, time.UTC),
	}
}

// --- tests ---

func TestEmitApprovedSendsMailRecordsAndSignals(t *testing.T) {
	appt := testAppointment()
	source := new(mockAppointmentSource)
	source.On("Resolve", mock.Anything, appt.AppointmentID).Return(appt, nil)

	mailer := new(mockMailer)
	mailer.On("Send", "r@example.com", "Appointment Approved", mock.Anything).Return(nil)

	store := NewMemoryStore()
	push := &recordingSignaler{}
	svc := NewService(source, mailer, store, push)

	err := svc.Emit(context.Background(), appt.AppointmentID, Approved{})
	require.NoError(t, err)

	mailer.AssertExpectations(t)

	list, err := store.ListAndMarkRead(context.Background(), appt.UserID, 50)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, TypeApproved, list[0].Type)
	assert.Equal(t, appt.AppointmentID, list[0].AppointmentID)
	assert.False(t, list[0].IsRead)

	require.Len(t, push.signals, 1)
	assert.Equal(t, appt.UserID, push.signals[0])
}

func TestEmitRescheduledRequiresPreviousTime(t *testing.T) {
	source := new(mockAppointmentSource)
	mailer := new(mockMailer)
	store := NewMemoryStore()
	push := &recordingSignaler{}
	svc := NewService(source, mailer, store, push)

	apptID := uuid.New()
	err := svc.Emit(context.Background(), apptID, Rescheduled{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// No side effect of any kind was attempted
	source.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, push.signals)
}

func TestEmitRescheduledMailsBothTimes(t *testing.T) {
	appt := testAppointment()
	source := new(mockAppointmentSource)
	source.On("Resolve", mock.Anything, appt.AppointmentID).Return(appt, nil)

	previous := appt.ScheduledAt.Add(-48 * time.Hour)
	mailer := new(mockMailer)
	mailer.On("Send", "r@example.com", "Appointment Rescheduled", mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "September 12, 2026") && strings.Contains(body, "September 14, 2026")
	})).Return(nil)

	store := NewMemoryStore()
	svc := NewService(source, mailer, store, &recordingSignaler{})

	err := svc.Emit(context.Background(), appt.AppointmentID, Rescheduled{Previous: previous})
	require.NoError(t, err)
	mailer.AssertExpectations(t)

	list, err := store.ListAndMarkRead(context.Background(), appt.UserID, 50)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, TypeRescheduled, list[0].Type)
}

func TestEmitMailFailureWritesNothing(t *testing.T) {
	appt := testAppointment()
	source := new(mockAppointmentSource)
	source.On("Resolve", mock.Anything, appt.AppointmentID).Return(appt, nil)

	mailer := new(mockMailer)
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	store := NewMemoryStore()
	push := &recordingSignaler{}
	svc := NewService(source, mailer, store, push)

	err := svc.Emit(context.Background(), appt.AppointmentID, Cancelled{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMailDelivery)

	// No orphan notification row and no push signal
	assert.Equal(t, 0, store.Count(appt.UserID))
	assert.Empty(t, push.signals)
}

func TestEmitUnknownAppointment(t *testing.T) {
	apptID := uuid.New()
	source := new(mockAppointmentSource)
	source.On("Resolve", mock.Anything, apptID).Return(nil, ErrNotFound)

	mailer := new(mockMailer)
	store := NewMemoryStore()
	push := &recordingSignaler{}
	svc := NewService(source, mailer, store, push)

	err := svc.Emit(context.Background(), apptID, Completed{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 0, store.Count(uuid.Nil))
	assert.Empty(t, push.signals)
}

func TestEmitEveryEventTypeAppendsToStore(t *testing.T) {
	appt := testAppointment()
	source := new(mockAppointmentSource)
	source.On("Resolve", mock.Anything, appt.AppointmentID).Return(appt, nil)

	mailer := new(mockMailer)
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	store := NewMemoryStore()
	push := &recordingSignaler{}
	svc := NewService(source, mailer, store, push)

	events := []Event{
		Approved{},
		Cancelled{},
		Rescheduled{Previous: appt.ScheduledAt.Add(-time.Hour)},
		Completed{},
		Reminder{},
	}
	for _, ev := range events {
		require.NoError(t, svc.Emit(context.Background(), appt.AppointmentID, ev))
	}

	assert.Equal(t, len(events), store.Count(appt.UserID))
	assert.Len(t, push.signals, len(events))
}
