package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBet(t *testing.T) {
	tests := []struct {
		input   string
		chips   int
		want    int
		wantErr bool
	}{
		{input: "100", chips: 1000, want: 100},
		{input: "  25 ", chips: 25, want: 25},
		{input: "1", chips: 1, want: 1},
		{input: "abc", chips: 1000, wantErr: true},
		{input: "", chips: 1000, wantErr: true},
		{input: "0", chips: 1000, wantErr: true},
		{input: "1001", chips: 1000, wantErr: true},
		{input: "12.5", chips: 1000, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBet(tt.input, tt.chips)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBet)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDecision(t *testing.T) {
	for _, in := range []string{"h", "H", "hit", " Hit "} {
		d, err := ParseDecision(in)
		require.NoError(t, err, in)
		assert.Equal(t, Hit, d)
	}
	for _, in := range []string{"s", "stand", "STICK"} {
		d, err := ParseDecision(in)
		require.NoError(t, err, in)
		assert.Equal(t, Stand, d)
	}
	for _, in := range []string{"", "double", "x"} {
		_, err := ParseDecision(in)
		assert.ErrorIs(t, err, ErrInvalidTurnCommand, in)
	}
}

func TestParseContinue(t *testing.T) {
	yes, err := ParseContinue("Y")
	require.NoError(t, err)
	assert.True(t, yes)

	no, err := ParseContinue("no")
	require.NoError(t, err)
	assert.False(t, no)

	_, err = ParseContinue("maybe")
	assert.ErrorIs(t, err, ErrInvalidAnswer)
}

func TestIsQuitCommand(t *testing.T) {
	assert.True(t, IsQuitCommand("quit"))
	assert.True(t, IsQuitCommand(" Q "))
	assert.False(t, IsQuitCommand("h"))
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "hit", Hit.String())
	assert.Equal(t, "stand", Stand.String())
}
