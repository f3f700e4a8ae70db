package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

const (
	// CardsPerDeck is the size of one standard deck
	CardsPerDeck = 52

	// DefaultDecks is the number of decks loaded into a fresh shoe
	DefaultDecks = 6
)

var (
	// ErrEmptyShoe is returned when drawing from a shoe with no cards left.
	// Under the reshuffle policy this never happens during play.
	ErrEmptyShoe = errors.New("shoe is empty")

	// ErrShoeNotEmpty is returned when filling a shoe that still holds cards
	ErrShoeNotEmpty = errors.New("shoe must be cleared before filling")
)

// DefaultThreshold returns the reshuffle threshold for a shoe of the given
// size: one third of the shoe, which is two decks for a six deck shoe.
func DefaultThreshold(decks int) int {
	return decks * CardsPerDeck / 3
}

// CheckSize reports whether a shoe of the given decks can honour threshold
func CheckSize(decks, threshold int) error {
	if decks < 1 {
		return fmt.Errorf("decks must be at least 1, got %d", decks)
	}
	if threshold < 0 {
		return fmt.Errorf("reshuffle threshold cannot be negative")
	}
	if threshold >= decks*CardsPerDeck {
		return fmt.Errorf("reshuffle threshold %d must be below the shoe size %d", threshold, decks*CardsPerDeck)
	}
	return nil
}

// ShoeOption configures a Shoe during creation
type ShoeOption func(*Shoe)

// WithDecks sets the number of decks loaded on every refill
func WithDecks(decks int) ShoeOption {
	return func(s *Shoe) {
		s.decks = decks
		if !s.customThreshold {
			s.threshold = DefaultThreshold(decks)
		}
	}
}

// WithReshuffleThreshold overrides the remaining card count below which the
// shoe is refilled at the start of a deal
func WithReshuffleThreshold(threshold int) ShoeOption {
	return func(s *Shoe) {
		s.threshold = threshold
		s.customThreshold = true
	}
}

// WithCards stacks the shoe so cards are drawn in exactly the given order.
// A stacked shoe does not reshuffle itself until it has been refilled.
func WithCards(cards ...Card) ShoeOption {
	return func(s *Shoe) {
		s.cards = make([]Card, len(cards))
		for i, c := range cards {
			s.cards[len(cards)-1-i] = c
		}
		s.stacked = true
	}
}

// Shoe is a continuous multi-deck card shoe. Cards are drawn from the tail.
type Shoe struct {
	cards           []Card
	decks           int
	threshold       int
	customThreshold bool
	stacked         bool
	rng             *rand.Rand
}

// NewShoe creates a shoe. Unless stacked with WithCards it is filled and
// shuffled before being returned.
func NewShoe(rng *rand.Rand, opts ...ShoeOption) *Shoe {
	s := &Shoe{
		decks:     DefaultDecks,
		threshold: DefaultThreshold(DefaultDecks),
		rng:       rng,
	}

	for _, opt := range opts {
		opt(s)
	}

	if !s.stacked {
		s.refill()
	}

	return s
}

// Fill appends decks × 52 cards, one of each suit and rank per deck. The shoe
// must be empty.
func (s *Shoe) Fill(decks int) error {
	if len(s.cards) > 0 {
		return ErrShoeNotEmpty
	}

	if cap(s.cards) < decks*CardsPerDeck {
		s.cards = make([]Card, 0, decks*CardsPerDeck)
	}
	for range decks {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	s.stacked = false

	return nil
}

// Shuffle randomizes the order of cards in the shoe using Fisher-Yates
func (s *Shoe) Shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		var j int
		if s.rng != nil {
			j = s.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns one card
func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrEmptyShoe
	}

	card := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return card, nil
}

// Clear removes every card but keeps capacity
func (s *Shoe) Clear() {
	s.cards = s.cards[:0]
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Validate checks a dealt shoe has at least one deck and a threshold inside it.
// Stacked shoes are exempt.
func (s *Shoe) Validate() error {
	if s.stacked {
		return nil
	}
	return CheckSize(s.decks, s.threshold)
}

// Decks returns the number of decks loaded on every refill
func (s *Shoe) Decks() int {
	return s.decks
}

// Threshold returns the reshuffle threshold
func (s *Shoe) Threshold() int {
	return s.threshold
}

// NeedsReshuffle reports whether fewer than Threshold cards remain
func (s *Shoe) NeedsReshuffle() bool {
	if s.stacked {
		return false
	}
	return len(s.cards) < s.threshold
}

// ReshuffleIfNeeded clears, refills and shuffles the shoe when it has run
// below the threshold. It reports whether a reshuffle happened.
func (s *Shoe) ReshuffleIfNeeded() bool {
	if !s.NeedsReshuffle() {
		return false
	}
	s.refill()
	return true
}

func (s *Shoe) refill() {
	s.Clear()
	// Fill cannot fail on a cleared shoe
	_ = s.Fill(s.decks)
	s.Shuffle()
}
