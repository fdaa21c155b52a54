package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastReachesRoomSubscribers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := &Client{Room: "match-1", Send: make(chan []byte, 4)}
	b := &Client{Room: "match-1", Send: make(chan []byte, 4)}
	other := &Client{Room: "match-2", Send: make(chan []byte, 4)}
	hub.Register(a)
	hub.Register(b)
	hub.Register(other)

	hub.BroadcastToRoom("match-1", []byte("hello"))

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			assert.Equal(t, "hello", string(msg))
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for broadcast")
		}
	}

	select {
	case msg := <-other.Send:
		t.Fatalf("client in another room received %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubSurvivesSlowConsumer(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := &Client{Room: "match-1", Send: make(chan []byte)} // full from the start
	healthy := &Client{Room: "match-1", Send: make(chan []byte, 4)}
	hub.Register(slow)
	hub.Register(healthy)

	hub.BroadcastToRoom("match-1", []byte("first"))

	// the slow client gets dropped, its channel closed
	select {
	case _, open := <-slow.Send:
		assert.False(t, open, "slow client's send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for slow client to be dropped")
	}

	// the hub loop must still be serving: a new registration completes
	// promptly and subsequent broadcasts reach the healthy client
	registered := make(chan struct{})
	go func() {
		hub.Register(&Client{Room: "match-2", Send: make(chan []byte, 4)})
		close(registered)
	}()
	select {
	case <-registered:
	case <-time.After(time.Second):
		t.Fatal("hub stopped accepting registrations after dropping a slow consumer")
	}

	select {
	case msg := <-healthy.Send:
		assert.Equal(t, "first", string(msg))
	case <-time.After(time.Second):
		t.Fatal("healthy client missed the broadcast")
	}

	hub.BroadcastToRoom("match-1", []byte("second"))
	select {
	case msg := <-healthy.Send:
		assert.Equal(t, "second", string(msg))
	case <-time.After(time.Second):
		t.Fatal("healthy client missed the follow-up broadcast")
	}
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := &Client{Room: "match-1", Send: make(chan []byte, 4)}
	hub.Register(c)
	hub.Unregister(c)

	select {
	case _, open := <-c.Send:
		require.False(t, open, "send channel should be closed after unregister")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}

	// broadcasting afterwards must not panic or deliver
	hub.BroadcastToRoom("match-1", []byte("late"))
	time.Sleep(20 * time.Millisecond)
}
