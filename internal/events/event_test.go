package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBaseEvent_ImplementsEvent(t *testing.T) {
	now := time.Now()
	e := BaseEvent{
		Type:      "test.event",
		Entity:    EntityRequest,
		ID:        42,
		Timestamp: now,
	}

	assert.Equal(t, "test.event", e.EventType())
	assert.Equal(t, EntityRequest, e.EntityType())
	assert.Equal(t, int64(42), e.EntityID())
	assert.Equal(t, now, e.OccurredAt())
}

func TestNewBaseEvent(t *testing.T) {
	e := NewBaseEvent(EventRequestCreated, EntityRequest, 123).By("alice")

	assert.Equal(t, EventRequestCreated, e.EventType())
	assert.Equal(t, EntityRequest, e.EntityType())
	assert.Equal(t, int64(123), e.EntityID())
	assert.Equal(t, "alice", e.Actor)
	assert.False(t, e.OccurredAt().IsZero())
}
