package realtime

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(c *Client) int {
	n := 0
	for {
		select {
		case <-c.Signals():
			n++
		default:
			return n
		}
	}
}

func TestSignalReachesOnlyTheRegisteredRecipient(t *testing.T) {
	hub := NewHub()
	alice := uuid.New()
	bob := uuid.New()

	aliceClient := NewClient()
	bobClient := NewClient()
	hub.Register(alice, aliceClient)
	hub.Register(bob, bobClient)

	hub.Signal(alice)

	assert.Equal(t, 1, drain(aliceClient))
	assert.Equal(t, 0, drain(bobClient))
}

func TestSignalOfflineRecipientIsNoOp(t *testing.T) {
	hub := NewHub()
	// Must not panic or block
	hub.Signal(uuid.New())
}

func TestLastRegistrationWins(t *testing.T) {
	hub := NewHub()
	recipient := uuid.New()

	connA := NewClient()
	connB := NewClient()
	hub.Register(recipient, connA)
	hub.Register(recipient, connB)

	hub.Signal(recipient)
	assert.Equal(t, 0, drain(connA))
	assert.Equal(t, 1, drain(connB))
}

func TestStaleDisconnectDoesNotEvictNewerRegistration(t *testing.T) {
	hub := NewHub()
	recipient := uuid.New()

	connA := NewClient()
	connB := NewClient()
	hub.Register(recipient, connA)
	hub.Register(recipient, connB)

	// A's transport closes after B took over the registration
	hub.Unregister(recipient, connA)

	require.True(t, hub.Connected(recipient))
	hub.Signal(recipient)
	assert.Equal(t, 1, drain(connB))

	// B's own disconnect does clear the entry
	hub.Unregister(recipient, connB)
	assert.False(t, hub.Connected(recipient))
}

func TestSignalNeverBlocksOnSlowClient(t *testing.T) {
	hub := NewHub()
	recipient := uuid.New()
	client := NewClient()
	hub.Register(recipient, client)

	// Far more signals than the client buffer holds; extra ones collapse
	for i := 0; i < 100; i++ {
		hub.Signal(recipient)
	}

	assert.Greater(t, drain(client), 0)
}

func TestConcurrentConnectDisconnect(t *testing.T) {
	hub := NewHub()
	recipients := make([]uuid.UUID, 16)
	for i := range recipients {
		recipients[i] = uuid.New()
	}

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			recipient := recipients[i%len(recipients)]
			client := NewClient()
			hub.Register(recipient, client)
			hub.Signal(recipient)
			hub.Unregister(recipient, client)
		}(i)
	}
	wg.Wait()

	// Every registration was either replaced or cleanly removed
	for _, recipient := range recipients {
		hub.Signal(recipient)
	}
}
