package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/randutil"
)

// TestEngineOption configures test engine creation
type TestEngineOption func(*testEngineBuilder)

type testEngineBuilder struct {
	seed  int64
	chips int
	cards []deck.Card
	shoe  []deck.ShoeOption
	clock quartz.Clock
}

// WithSeed seeds the shoe shuffle
func WithSeed(seed int64) TestEngineOption {
	return func(b *testEngineBuilder) { b.seed = seed }
}

// WithChips sets the player's starting balance
func WithChips(chips int) TestEngineOption {
	return func(b *testEngineBuilder) { b.chips = chips }
}

// WithStackedCards deals the given cards in order, e.g. "TsKd9h7c"
func WithStackedCards(cards string) TestEngineOption {
	return func(b *testEngineBuilder) { b.cards = deck.MustParseCards(cards) }
}

// WithShoeOptions passes options through to the shoe
func WithShoeOptions(opts ...deck.ShoeOption) TestEngineOption {
	return func(b *testEngineBuilder) { b.shoe = append(b.shoe, opts...) }
}

// WithTestClock sets the engine clock
func WithTestClock(clock quartz.Clock) TestEngineOption {
	return func(b *testEngineBuilder) { b.clock = clock }
}

// NewTestEngine creates an engine with a quiet logger and an event recorder
// already subscribed. Defaults: seed 42, 1000 chips, shuffled six deck shoe.
func NewTestEngine(opts ...TestEngineOption) (*Engine, *EventRecorder) {
	builder := &testEngineBuilder{
		seed:  42,
		chips: 1000,
		clock: quartz.NewReal(),
	}

	for _, opt := range opts {
		opt(builder)
	}

	shoeOpts := builder.shoe
	if builder.cards != nil {
		shoeOpts = append(shoeOpts, deck.WithCards(builder.cards...))
	}
	shoe := deck.NewShoe(randutil.New(builder.seed), shoeOpts...)

	engine := NewEngine(shoe, NewPlayer("You", builder.chips), log.New(io.Discard), WithClock(builder.clock))
	recorder := &EventRecorder{}
	engine.EventBus().Subscribe(recorder)
	return engine, recorder
}

// ScriptedDecider returns decisions from a script and stands once it runs out
type ScriptedDecider struct {
	decisions []Decision
	index     int
	Views     []TurnView
}

// NewScriptedDecider creates a decider that plays the given decisions in order
func NewScriptedDecider(decisions ...Decision) *ScriptedDecider {
	return &ScriptedDecider{decisions: decisions}
}

// Decide returns the next scripted decision
func (s *ScriptedDecider) Decide(view TurnView) (Decision, error) {
	s.Views = append(s.Views, view)
	if s.index >= len(s.decisions) {
		return Stand, nil
	}
	d := s.decisions[s.index]
	s.index++
	return d, nil
}

// EventRecorder captures every event it is sent
type EventRecorder struct {
	Events []Event
}

// OnEvent records the event
func (r *EventRecorder) OnEvent(event Event) {
	r.Events = append(r.Events, event)
}

// Types returns the recorded event types in order
func (r *EventRecorder) Types() []EventType {
	types := make([]EventType, len(r.Events))
	for i, e := range r.Events {
		types[i] = e.EventType()
	}
	return types
}

// Reset forgets all recorded events
func (r *EventRecorder) Reset() {
	r.Events = nil
}

// ScriptedTerminal answers every request from fixed scripts. Once the bet
// script runs out it returns ErrQuit.
type ScriptedTerminal struct {
	*ScriptedDecider
	EventRecorder
	Bets    []int
	Answers []bool
}

// RequestBet returns the next scripted bet
func (t *ScriptedTerminal) RequestBet(chips int) (int, error) {
	if len(t.Bets) == 0 {
		return 0, ErrQuit
	}
	bet := t.Bets[0]
	t.Bets = t.Bets[1:]
	return bet, nil
}

// RequestContinue returns the next scripted answer, defaulting to yes
func (t *ScriptedTerminal) RequestContinue(chips int) (bool, error) {
	if len(t.Answers) == 0 {
		return true, nil
	}
	a := t.Answers[0]
	t.Answers = t.Answers[1:]
	return a, nil
}
