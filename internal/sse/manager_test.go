package sse

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func startManager(t *testing.T) (*Manager, context.CancelFunc) {
	t.Helper()

	m := NewManager(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)
	return m, cancel
}

func receiveEvent(t *testing.T, client *Client) Event {
	t.Helper()

	select {
	case event := <-client.EventChan:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestManager_RoutesSnapshotToOwningCoach(t *testing.T) {
	m, cancel := startManager(t)
	defer cancel()

	clientA, err := m.Connect("coach-a")
	require.NoError(t, err)
	defer m.Disconnect(clientA.ID)

	clientB, err := m.Connect("coach-b")
	require.NoError(t, err)
	defer m.Disconnect(clientB.ID)

	m.PublishSnapshot("coach-a", "players", []string{"p1"})

	event := receiveEvent(t, clientA)
	assert.Equal(t, EventSnapshot, event.Type)
	assert.Equal(t, "players", event.Collection)

	select {
	case event := <-clientB.EventChan:
		t.Fatalf("coach-b received coach-a's event: %+v", event)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestManager_UnscopedEventReachesEveryone(t *testing.T) {
	m, cancel := startManager(t)
	defer cancel()

	clientA, err := m.Connect("coach-a")
	require.NoError(t, err)
	defer m.Disconnect(clientA.ID)

	clientB, err := m.Connect("coach-b")
	require.NoError(t, err)
	defer m.Disconnect(clientB.ID)

	m.Emit(Event{Type: EventConnected, Timestamp: time.Now()})

	assert.Equal(t, EventConnected, receiveEvent(t, clientA).Type)
	assert.Equal(t, EventConnected, receiveEvent(t, clientB).Type)
}

func TestManager_DisconnectRemovesClient(t *testing.T) {
	m, cancel := startManager(t)
	defer cancel()

	client, err := m.Connect("coach-a")
	require.NoError(t, err)
	assert.Equal(t, 1, m.ClientCount())

	m.Disconnect(client.ID)
	assert.Equal(t, 0, m.ClientCount())

	select {
	case <-client.Done:
	case <-time.After(time.Second):
		t.Fatal("Done channel not closed on disconnect")
	}

	// A second disconnect is a no-op.
	m.Disconnect(client.ID)
}

func TestManager_ShutdownDrainsAndClosesClients(t *testing.T) {
	m, cancel := startManager(t)
	defer cancel()

	client, err := m.Connect("coach-a")
	require.NoError(t, err)

	m.PublishSnapshot("coach-a", "players", []string{"p1"})

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	require.NoError(t, m.Shutdown(ctx))

	// Emits after shutdown are dropped, never panic.
	m.PublishSnapshot("coach-a", "players", []string{"p2"})

	select {
	case <-client.Done:
	case <-time.After(time.Second):
		t.Fatal("client not closed on shutdown")
	}
	assert.Equal(t, 0, m.ClientCount())
}

func TestManager_SlowClientDoesNotBlockBroadcast(t *testing.T) {
	m, cancel := startManager(t)
	defer cancel()

	slow, err := m.Connect("coach-a")
	require.NoError(t, err)
	defer m.Disconnect(slow.ID)

	// Fill the slow client's buffer; further events must be dropped for it
	// without stalling delivery to others. Wait for the flood to be fully
	// broadcast before connecting anyone else.
	flood := cap(slow.EventChan) + 10
	for i := 0; i < flood; i++ {
		m.PublishSnapshot("coach-a", "players", i)
	}
	require.Eventually(t, func() bool {
		return len(slow.EventChan) == cap(slow.EventChan)
	}, 2*time.Second, 10*time.Millisecond, "slow client buffer never filled")

	fast, err := m.Connect("coach-a")
	require.NoError(t, err)
	defer m.Disconnect(fast.ID)

	m.PublishSnapshot("coach-a", "exercises", []string{"e1"})

	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-fast.EventChan:
			if event.Collection == "exercises" {
				return
			}
		case <-deadline:
			t.Fatal("fast client starved by slow client")
		}
	}
}
