package game

import (
	"time"

	"github.com/lox/blackjack-cli/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for events published while a round is played
const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypeReshuffle    EventType = "reshuffle"
	EventTypeDeal         EventType = "deal"
	EventTypeCardDrawn    EventType = "card_drawn"
	EventTypePlayerStand  EventType = "player_stand"
	EventTypeBust         EventType = "bust"
	EventTypeDealerReveal EventType = "dealer_reveal"
	EventTypeDealerStand  EventType = "dealer_stand"
	EventTypeRoundEnd     EventType = "round_end"
	EventTypeSessionEnd   EventType = "session_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything that happens at the table that a terminal may display
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published once the bet has been taken
type RoundStartEvent struct {
	RoundID   string
	Bet       int
	Chips     int
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// ReshuffleEvent is published when the shoe is refilled before a deal
type ReshuffleEvent struct {
	// Remaining is the card count that triggered the reshuffle
	Remaining int
	Decks     int
	Cards     int
	timestamp time.Time
}

func (e ReshuffleEvent) EventType() EventType { return EventTypeReshuffle }
func (e ReshuffleEvent) Timestamp() time.Time { return e.timestamp }

// DealEvent is published after the opening four cards are dealt
type DealEvent struct {
	// ShoeBefore is the card count announced before dealing
	ShoeBefore  int
	Reshuffled  bool
	PlayerCards []deck.Card
	PlayerScore int
	// DealerCards holds the face up dealer cards; DealerHidden counts the rest
	DealerCards  []deck.Card
	DealerHidden int
	timestamp    time.Time
}

func (e DealEvent) EventType() EventType { return EventTypeDeal }
func (e DealEvent) Timestamp() time.Time { return e.timestamp }

// CardDrawnEvent is published when either side hits
type CardDrawnEvent struct {
	Participant string
	Dealer      bool
	Card        deck.Card
	Cards       []deck.Card
	Score       int
	timestamp   time.Time
}

func (e CardDrawnEvent) EventType() EventType { return EventTypeCardDrawn }
func (e CardDrawnEvent) Timestamp() time.Time { return e.timestamp }

// PlayerStandEvent is published when the player stands
type PlayerStandEvent struct {
	Score     int
	timestamp time.Time
}

func (e PlayerStandEvent) EventType() EventType { return EventTypePlayerStand }
func (e PlayerStandEvent) Timestamp() time.Time { return e.timestamp }

// BustEvent is published when a hand goes over 21
type BustEvent struct {
	Participant string
	Dealer      bool
	Score       int
	timestamp   time.Time
}

func (e BustEvent) EventType() EventType { return EventTypeBust }
func (e BustEvent) Timestamp() time.Time { return e.timestamp }

// DealerRevealEvent is published when the hole card is turned over
type DealerRevealEvent struct {
	Cards     []deck.Card
	Score     int
	timestamp time.Time
}

func (e DealerRevealEvent) EventType() EventType { return EventTypeDealerReveal }
func (e DealerRevealEvent) Timestamp() time.Time { return e.timestamp }

// DealerStandEvent is published when the dealer stops drawing without busting
type DealerStandEvent struct {
	Score     int
	timestamp time.Time
}

func (e DealerStandEvent) EventType() EventType { return EventTypeDealerStand }
func (e DealerStandEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndEvent carries the resolved round
type RoundEndEvent struct {
	Result    RoundResult
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// SessionEndEvent carries the summary when the player leaves the table
type SessionEndEvent struct {
	Summary   SessionSummary
	timestamp time.Time
}

func (e SessionEndEvent) EventType() EventType { return EventTypeSessionEnd }
func (e SessionEndEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a synchronous in-memory event bus
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish delivers an event to every subscriber in subscription order
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
