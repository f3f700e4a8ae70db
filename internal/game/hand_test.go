package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/randutil"
)

func TestHandScoring(t *testing.T) {
	tests := []struct {
		name   string
		cards  string
		raw    int
		soft   int
		aces   int
		bust   bool
		isSoft bool
	}{
		{name: "empty", cards: "", raw: 0, soft: 0},
		{name: "pair of aces", cards: "AsAh", raw: 2, soft: 12, aces: 2, isSoft: true},
		{name: "ace king", cards: "AsKh", raw: 11, soft: 21, aces: 1, isSoft: true},
		{name: "ten nine five", cards: "Ts9h5d", raw: 24, soft: 24, bust: true},
		{name: "soft seventeen", cards: "As6h", raw: 7, soft: 17, aces: 1, isSoft: true},
		{name: "hard seventeen with ace", cards: "As6hTd", raw: 17, soft: 17, aces: 1},
		{name: "two aces and nine", cards: "AsAd9c", raw: 11, soft: 21, aces: 2, isSoft: true},
		{name: "four aces", cards: "AsAhAdAc", raw: 4, soft: 14, aces: 4, isSoft: true},
		{name: "face cards", cards: "JsQh", raw: 20, soft: 20},
		{name: "twenty one exactly", cards: "7s7h7d", raw: 21, soft: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHand(deck.MustParseCards(tt.cards)...)
			assert.Equal(t, tt.raw, h.RawScore(), "raw")
			assert.Equal(t, tt.soft, h.SoftScore(), "soft")
			assert.Equal(t, tt.aces, h.AceCount(), "aces")
			assert.Equal(t, tt.bust, h.IsBust(), "bust")
			assert.Equal(t, tt.isSoft, h.IsSoft(), "is soft")
		})
	}
}

func TestHandScoreIsRecomputedAfterEachCard(t *testing.T) {
	h := NewHand()
	h.Add(deck.NewCard(deck.Spades, deck.Ace))
	assert.Equal(t, 11, h.SoftScore())

	h.Add(deck.NewCard(deck.Hearts, deck.Five))
	assert.Equal(t, 16, h.SoftScore())

	h.Add(deck.NewCard(deck.Clubs, deck.Nine))
	assert.Equal(t, 15, h.SoftScore(), "ace falls back to 1")
	assert.False(t, h.IsBust())

	h.Clear()
	assert.Zero(t, h.Len())
	assert.Zero(t, h.SoftScore())
	assert.False(t, h.IsBust())
}

func TestHandScoringProperties(t *testing.T) {
	shoe := deck.NewShoe(randutil.New(2024), deck.WithDecks(8))

	for i := range 2000 {
		size := 1 + i%7
		h := NewHand()
		for range size {
			if shoe.NeedsReshuffle() {
				shoe.ReshuffleIfNeeded()
			}
			c, err := shoe.Draw()
			require.NoError(t, err)
			h.Add(c)
		}

		raw, soft, aces := h.RawScore(), h.SoftScore(), h.AceCount()
		if aces == 0 {
			require.Equal(t, raw, soft, "hand %s", h)
		}
		require.GreaterOrEqual(t, soft, raw, "hand %s", h)
		require.Zero(t, (soft-raw)%10, "hand %s", h)
		require.LessOrEqual(t, soft-raw, 10*aces, "hand %s", h)
		require.Equal(t, soft > 21, h.IsBust(), "hand %s", h)
	}
}

func TestHandCardsIsACopy(t *testing.T) {
	h := NewHand(deck.MustParseCards("As9h")...)
	cards := h.Cards()
	cards[0] = deck.NewCard(deck.Clubs, deck.Two)

	assert.Equal(t, 20, h.SoftScore())
	assert.Equal(t, "A♠ 9♥", h.String())
}
