package game

import (
	"strings"

	"github.com/lox/blackjack-cli/internal/deck"
)

const (
	// Blackjack is the best possible score
	Blackjack = 21

	// DealerStandsOn is the soft score at which the dealer stops drawing
	DealerStandsOn = 17

	softPromotion = 10
	promoteBelow  = 12
)

// Hand is the ordered set of cards held by one participant. Every score is
// derived from the cards on demand.
type Hand struct {
	cards []deck.Card
}

// NewHand returns a hand holding the given cards
func NewHand(cards ...deck.Card) *Hand {
	h := &Hand{}
	for _, c := range cards {
		h.Add(c)
	}
	return h
}

// Add appends a card to the hand
func (h *Hand) Add(card deck.Card) {
	h.cards = append(h.cards, card)
}

// Clear empties the hand, keeping its storage
func (h *Hand) Clear() {
	h.cards = h.cards[:0]
}

// Cards returns a copy of the cards in deal order
func (h *Hand) Cards() []deck.Card {
	cards := make([]deck.Card, len(h.cards))
	copy(cards, h.cards)
	return cards
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return len(h.cards)
}

// RawScore is the sum of base card values with every Ace counted as 1
func (h *Hand) RawScore() int {
	score := 0
	for _, c := range h.cards {
		score += c.Value()
	}
	return score
}

// AceCount returns the number of Aces in the hand
func (h *Hand) AceCount() int {
	n := 0
	for _, c := range h.cards {
		if c.IsAce() {
			n++
		}
	}
	return n
}

// SoftScore promotes Aces from 1 to 11 one at a time while the running score
// is still below 12.
func (h *Hand) SoftScore() int {
	score := h.RawScore()
	for range h.AceCount() {
		if score < promoteBelow {
			score += softPromotion
		}
	}
	return score
}

// IsSoft reports whether an Ace is currently counted as 11
func (h *Hand) IsSoft() bool {
	return h.SoftScore() != h.RawScore()
}

// IsBust reports whether the hand is over 21
func (h *Hand) IsBust() bool {
	return h.SoftScore() > Blackjack
}

// String renders the hand as space separated cards
func (h *Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
