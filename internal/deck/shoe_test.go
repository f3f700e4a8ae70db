package deck

import (
	"testing"

	"github.com/lox/blackjack-cli/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShoeIsFullAndShuffled(t *testing.T) {
	s := NewShoe(randutil.New(42))

	assert.Equal(t, 6*CardsPerDeck, s.Remaining())
	assert.Equal(t, DefaultDecks, s.Decks())
	assert.Equal(t, 104, s.Threshold())

	fresh := &Shoe{decks: 6}
	require.NoError(t, fresh.Fill(6))
	assert.NotEqual(t, fresh.cards, s.cards, "shoe should not be in fill order")
}

func TestShoeFillCounts(t *testing.T) {
	for _, decks := range []int{1, 2, 6, 8} {
		s := NewShoe(randutil.New(1), WithCards())
		require.NoError(t, s.Fill(decks))
		require.Equal(t, decks*CardsPerDeck, s.Remaining())

		counts := make(map[Card]int)
		for _, c := range s.cards {
			counts[c]++
		}
		assert.Len(t, counts, CardsPerDeck)
		for c, n := range counts {
			assert.Equal(t, decks, n, "card %s", c)
		}
	}
}

func TestShoeFillRequiresEmpty(t *testing.T) {
	s := NewShoe(randutil.New(1), WithDecks(1))
	assert.ErrorIs(t, s.Fill(1), ErrShoeNotEmpty)

	s.Clear()
	assert.NoError(t, s.Fill(1))
}

func TestShoeDrawUntilEmpty(t *testing.T) {
	const decks = 2
	s := NewShoe(randutil.New(9), WithDecks(decks))

	for i := 0; i < decks*CardsPerDeck; i++ {
		_, err := s.Draw()
		require.NoError(t, err, "draw %d", i)
	}
	assert.Zero(t, s.Remaining())

	_, err := s.Draw()
	assert.ErrorIs(t, err, ErrEmptyShoe)
}

func TestShoeStackedDrawOrder(t *testing.T) {
	cards := MustParseCards("AsKh2c")
	s := NewShoe(nil, WithCards(cards...))

	for _, want := range cards {
		got, err := s.Draw()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.False(t, s.NeedsReshuffle(), "stacked shoe never reshuffles itself")
}

func TestShoeShuffleIsDeterministicPerSeed(t *testing.T) {
	a := NewShoe(randutil.New(5))
	b := NewShoe(randutil.New(5))
	c := NewShoe(randutil.New(6))

	assert.Equal(t, a.cards, b.cards)
	assert.NotEqual(t, a.cards, c.cards)
}

func TestShoeReshuffleThreshold(t *testing.T) {
	s := NewShoe(randutil.New(3))
	total := s.Remaining()

	for s.Remaining() > 104 {
		_, err := s.Draw()
		require.NoError(t, err)
	}
	assert.False(t, s.NeedsReshuffle(), "exactly at threshold does not reshuffle")
	assert.False(t, s.ReshuffleIfNeeded())
	assert.Equal(t, 104, s.Remaining())

	_, err := s.Draw()
	require.NoError(t, err)
	assert.Equal(t, 103, s.Remaining())
	assert.True(t, s.NeedsReshuffle())

	assert.True(t, s.ReshuffleIfNeeded())
	assert.Equal(t, total, s.Remaining())
}

func TestShoeThresholdScalesWithDecks(t *testing.T) {
	assert.Equal(t, 104, DefaultThreshold(6))
	assert.Equal(t, 52, DefaultThreshold(3))
	assert.Equal(t, 138, DefaultThreshold(8))

	s := NewShoe(nil, WithDecks(8))
	assert.Equal(t, 138, s.Threshold())

	s = NewShoe(nil, WithReshuffleThreshold(10), WithDecks(8))
	assert.Equal(t, 10, s.Threshold())
}

func TestShoeValidate(t *testing.T) {
	tests := []struct {
		name   string
		opts   []ShoeOption
		errMsg string
	}{
		{"default", nil, ""},
		{"single deck", []ShoeOption{WithDecks(1)}, ""},
		{"no decks", []ShoeOption{WithDecks(0)}, "decks must be at least 1"},
		{"negative threshold", []ShoeOption{WithReshuffleThreshold(-1)}, "negative"},
		{"threshold at shoe size", []ShoeOption{WithDecks(1), WithReshuffleThreshold(52)}, "below the shoe size"},
		{"stacked", []ShoeOption{WithDecks(0), WithCards(MustParseCards("As")...)}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewShoe(randutil.New(1), tt.opts...).Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}
