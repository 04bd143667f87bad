package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alhariq/mahkah/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveEvent(t *testing.T, mc *MockClient) StoryEvent {
	t.Helper()
	select {
	case data := <-mc.SendChan:
		var event StoryEvent
		require.NoError(t, json.Unmarshal(data, &event))
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return StoryEvent{}
	}
}

func TestEventsHubBroadcast(t *testing.T) {
	hub := NewEventsHub()
	go hub.Run()
	defer hub.Stop()

	a := &MockClient{SendChan: make(chan []byte, 8)}
	b := &MockClient{SendChan: make(chan []byte, 8)}
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast(StoryEvent{
		Type:        "story_rejected",
		VisitorType: types.VisitorChild,
		Lang:        types.LangEnglish,
		Code:        types.CodeNotAPlant,
	})

	for _, mc := range []*MockClient{a, b} {
		event := receiveEvent(t, mc)
		assert.Equal(t, "story_rejected", event.Type)
		assert.Equal(t, types.VisitorChild, event.VisitorType)
		assert.Equal(t, types.CodeNotAPlant, event.Code)
	}
}

func TestEventsHubUnregister(t *testing.T) {
	hub := NewEventsHub()
	go hub.Run()
	defer hub.Stop()

	mc := &MockClient{SendChan: make(chan []byte, 8)}
	hub.Register(mc)
	hub.Unregister(mc)

	// The send channel is closed on unregister.
	select {
	case _, open := <-mc.SendChan:
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("expected send channel to be closed")
	}
}

func TestEventsHubDropsSlowConsumer(t *testing.T) {
	hub := NewEventsHub()
	go hub.Run()
	defer hub.Stop()

	slow := &MockClient{SendChan: make(chan []byte)} // unbuffered, never read
	healthy := &MockClient{SendChan: make(chan []byte, 8)}
	hub.Register(slow)
	hub.Register(healthy)

	hub.Broadcast(StoryEvent{Type: "story_generated"})

	receiveEvent(t, healthy)

	// A second round trip guarantees the first broadcast loop, which
	// drops the slow client, has fully finished.
	hub.Broadcast(StoryEvent{Type: "story_generated"})
	receiveEvent(t, healthy)

	_, open := <-slow.SendChan
	assert.False(t, open, "slow consumer channel should be closed")
}
