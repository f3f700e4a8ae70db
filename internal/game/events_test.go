package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBus_PublishInOrder(t *testing.T) {
	bus := NewEventBus()
	first := &EventRecorder{}
	second := &EventRecorder{}
	bus.Subscribe(first)
	bus.Subscribe(second)

	bus.Publish(PlayerStandEvent{Score: 18})
	bus.Publish(DealerStandEvent{Score: 17})

	assert.Equal(t, []EventType{EventTypePlayerStand, EventTypeDealerStand}, first.Types())
	assert.Equal(t, first.Types(), second.Types())

	bus.Unsubscribe(first)
	bus.Publish(RoundEndEvent{})
	assert.Len(t, first.Events, 2)
	assert.Len(t, second.Events, 3)
}

func TestEventBus_UnsubscribeUnknownIsNoop(t *testing.T) {
	bus := NewEventBus()
	r := &EventRecorder{}
	bus.Unsubscribe(r)
	bus.Publish(RoundEndEvent{})
	assert.Empty(t, r.Events)
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "dealer_reveal", EventTypeDealerReveal.String())
	assert.Equal(t, EventTypeBust, BustEvent{}.EventType())
}
