package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScriptedTerminal(bets []int, answers []bool, decisions ...Decision) *ScriptedTerminal {
	return &ScriptedTerminal{
		ScriptedDecider: NewScriptedDecider(decisions...),
		Bets:            bets,
		Answers:         answers,
	}
}

func TestSession_PlaysUntilBetsRunOut(t *testing.T) {
	engine, _ := NewTestEngine(WithStackedCards("Ts6hKd2cTc" + "TsKh7dQc"))
	term := newScriptedTerminal([]int{100, 100}, nil)

	summary, err := NewSession(engine, term, log.New(io.Discard)).Run()
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Rounds)
	assert.Equal(t, 1, summary.Wins)
	assert.Equal(t, 1, summary.Losses)
	assert.Zero(t, summary.Pushes)
	assert.Equal(t, 1000, summary.StartingChips)
	assert.Equal(t, 1000, summary.FinalChips)
	assert.Zero(t, summary.Net())
	assert.True(t, summary.Quit)
	assert.False(t, summary.Bankrupt)
	assert.NotEmpty(t, summary.ID)

	types := term.Types()
	require.NotEmpty(t, types)
	assert.Equal(t, EventTypeSessionEnd, types[len(types)-1])
}

func TestSession_EndsWhenBankrupt(t *testing.T) {
	engine, _ := NewTestEngine(WithChips(100), WithStackedCards("TsKh7dQc"))
	term := newScriptedTerminal([]int{100, 100}, []bool{false})

	summary, err := NewSession(engine, term, log.New(io.Discard)).Run()
	require.NoError(t, err)

	assert.True(t, summary.Bankrupt)
	assert.False(t, summary.Quit)
	assert.Equal(t, 1, summary.Rounds)
	assert.Zero(t, summary.FinalChips)
	assert.Len(t, term.Answers, 1, "no play-again prompt once broke")
	assert.Len(t, term.Bets, 1, "no bet requested once broke")
}

func TestSession_DeclineAnotherRound(t *testing.T) {
	engine, _ := NewTestEngine(WithStackedCards("TsTh8d8c"))
	term := newScriptedTerminal([]int{50, 50}, []bool{false})

	summary, err := NewSession(engine, term, log.New(io.Discard)).Run()
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Rounds)
	assert.Equal(t, 1, summary.Pushes)
	assert.True(t, summary.Quit)
	assert.Equal(t, 1000, summary.FinalChips)
}

func TestSession_MaxRounds(t *testing.T) {
	engine, _ := NewTestEngine(WithSeed(3))
	term := newScriptedTerminal([]int{10, 10, 10}, []bool{true})

	summary, err := NewSession(engine, term, log.New(io.Discard), WithMaxRounds(2)).Run()
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Rounds)
	assert.Len(t, term.Bets, 1)
	assert.Empty(t, term.Answers, "asked to continue after the first round only")
	assert.False(t, summary.Quit)
}

type quitOnTurn struct {
	*ScriptedTerminal
}

func (q quitOnTurn) Decide(TurnView) (Decision, error) {
	return 0, ErrQuit
}

func TestSession_QuitMidRoundForfeitsStake(t *testing.T) {
	engine, _ := NewTestEngine(WithStackedCards("TsKh7dQc"))
	term := quitOnTurn{newScriptedTerminal([]int{100}, nil)}

	summary, err := NewSession(engine, term, log.New(io.Discard)).Run()
	require.NoError(t, err)

	assert.True(t, summary.Quit)
	assert.Equal(t, 1, summary.Losses)
	assert.Equal(t, 900, summary.FinalChips)
}

func TestSession_EngineFailureIsReturned(t *testing.T) {
	engine, _ := NewTestEngine(WithStackedCards("Ts"))
	term := newScriptedTerminal([]int{10}, nil)

	summary, err := NewSession(engine, term, log.New(io.Discard)).Run()
	require.Error(t, err)
	assert.Nil(t, summary)
}
