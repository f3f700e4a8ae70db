package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/gameid"
)

// State is a step of the round state machine
type State int

const (
	AwaitingBet State = iota
	Dealing
	PlayerTurn
	DealerTurn
	Resolved
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case AwaitingBet:
		return "awaiting-bet"
	case Dealing:
		return "dealing"
	case PlayerTurn:
		return "player-turn"
	case DealerTurn:
		return "dealer-turn"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Outcome is how a round was settled
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomePlayerWin
	OutcomeDealerBust
	OutcomePush
	OutcomeDealerWin
	OutcomePlayerBust
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case OutcomePlayerWin:
		return "player-win"
	case OutcomeDealerBust:
		return "dealer-bust"
	case OutcomePush:
		return "push"
	case OutcomeDealerWin:
		return "dealer-win"
	case OutcomePlayerBust:
		return "player-bust"
	default:
		return "none"
	}
}

// PlayerWins reports whether the player is paid twice the stake
func (o Outcome) PlayerWins() bool {
	return o == OutcomePlayerWin || o == OutcomeDealerBust
}

// PlayerLoses reports whether the stake is forfeited
func (o Outcome) PlayerLoses() bool {
	return o == OutcomeDealerWin || o == OutcomePlayerBust
}

// RoundResult contains the results of a completed round
type RoundResult struct {
	ID          string
	Bet         int
	Outcome     Outcome
	Payout      int // Chips credited back to the player
	Net         int // Chip change over the round
	PlayerScore int
	DealerScore int
	PlayerCards []deck.Card
	DealerCards []deck.Card
	ChipsAfter  int
	StartedAt   time.Time
	FinishedAt  time.Time
}

// EngineOption configures an Engine during creation
type EngineOption func(*Engine)

// WithClock sets the clock used to timestamp rounds and events
func WithClock(clock quartz.Clock) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

// WithEventBus sets the bus events are published on
func WithEventBus(bus EventBus) EngineOption {
	return func(e *Engine) { e.bus = bus }
}

// Engine runs betting rounds between one player and the dealer. It owns the
// shoe and both participants for the lifetime of a session.
type Engine struct {
	shoe   *deck.Shoe
	player *Player
	dealer *Dealer
	state  State
	bus    EventBus
	clock  quartz.Clock
	logger *log.Logger
}

// NewEngine creates an engine around a shoe and a player
func NewEngine(shoe *deck.Shoe, player *Player, logger *log.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		shoe:   shoe,
		player: player,
		dealer: NewDealer(),
		state:  AwaitingBet,
		bus:    NewEventBus(),
		clock:  quartz.NewReal(),
		logger: logger.WithPrefix("engine"),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// State returns the current state of the round state machine
func (e *Engine) State() State { return e.state }

// Player returns the player seated at the table
func (e *Engine) Player() *Player { return e.player }

// Dealer returns the dealer
func (e *Engine) Dealer() *Dealer { return e.dealer }

// Shoe returns the shoe cards are drawn from
func (e *Engine) Shoe() *deck.Shoe { return e.shoe }

// EventBus returns the bus for subscribing to table events
func (e *Engine) EventBus() EventBus { return e.bus }

// PlayRound plays one betting round from bet to payout. The bet must already
// be validated against the player's chips. A draw from an empty shoe aborts
// the round with an error wrapping deck.ErrEmptyShoe.
func (e *Engine) PlayRound(bet int, decider Decider) (*RoundResult, error) {
	if e.state != AwaitingBet {
		return nil, fmt.Errorf("cannot start a round while %s", e.state)
	}
	if err := e.player.PlaceBet(bet); err != nil {
		return nil, err
	}

	result := &RoundResult{
		ID:        gameid.New(gameid.Round),
		Bet:       bet,
		StartedAt: e.clock.Now(),
	}
	e.logger.Debug("Starting round", "round", result.ID, "bet", bet, "chips", e.player.Chips)
	e.bus.Publish(RoundStartEvent{RoundID: result.ID, Bet: bet, Chips: e.player.Chips, timestamp: result.StartedAt})

	defer e.reset()

	e.state = Dealing
	outcome := OutcomeNone
	for e.state != Resolved {
		var err error
		switch e.state {
		case Dealing:
			err = e.deal()
			e.state = PlayerTurn
		case PlayerTurn:
			outcome, err = e.playerTurn(decider)
			if outcome == OutcomeNone {
				e.state = DealerTurn
			} else {
				e.state = Resolved
			}
		case DealerTurn:
			outcome, err = e.dealerTurn()
			e.state = Resolved
		}
		if err != nil {
			return nil, err
		}
	}

	if outcome == OutcomeNone {
		outcome = e.compare()
	}
	e.settle(result, outcome)
	e.bus.Publish(RoundEndEvent{Result: *result, timestamp: result.FinishedAt})

	return result, nil
}

func (e *Engine) deal() error {
	before := e.shoe.Remaining()
	reshuffled := e.shoe.ReshuffleIfNeeded()
	if reshuffled {
		e.logger.Info("Reshuffled shoe", "remaining", before, "decks", e.shoe.Decks())
		e.bus.Publish(ReshuffleEvent{Remaining: before, Decks: e.shoe.Decks(), Cards: e.shoe.Remaining(), timestamp: e.clock.Now()})
	}

	// Strict alternation: player, dealer, player, dealer
	seats := []Participant{e.player, e.dealer}
	for range 2 {
		for _, p := range seats {
			if err := e.drawTo(p); err != nil {
				return err
			}
		}
	}

	visible := e.dealer.Visible()
	e.logger.Debug("Dealt opening hands", "player", e.player.Hand().String(), "dealer", visible, "remaining", e.shoe.Remaining())
	e.bus.Publish(DealEvent{
		ShoeBefore:   before,
		Reshuffled:   reshuffled,
		PlayerCards:  e.player.Hand().Cards(),
		PlayerScore:  e.player.Hand().SoftScore(),
		DealerCards:  visible,
		DealerHidden: e.dealer.Hand().Len() - len(visible),
		timestamp:    e.clock.Now(),
	})
	return nil
}

func (e *Engine) playerTurn(decider Decider) (Outcome, error) {
	hand := e.player.Hand()
	for {
		up, _ := e.dealer.UpCard()
		decision, err := decider.Decide(TurnView{
			PlayerCards:  hand.Cards(),
			PlayerScore:  hand.SoftScore(),
			PlayerSoft:   hand.IsSoft(),
			DealerUpCard: up,
			Chips:        e.player.Chips,
			Bet:          e.player.Bet,
		})
		if err != nil {
			return OutcomeNone, err
		}

		switch decision {
		case Stand:
			e.logger.Debug("Player stands", "score", hand.SoftScore())
			e.bus.Publish(PlayerStandEvent{Score: hand.SoftScore(), timestamp: e.clock.Now()})
			return OutcomeNone, nil
		case Hit:
			card, err := e.hit(e.player, false)
			if err != nil {
				return OutcomeNone, err
			}
			e.logger.Debug("Player hits", "card", card, "score", hand.SoftScore())
			if hand.IsBust() {
				e.bus.Publish(BustEvent{Participant: e.player.Name(), Score: hand.SoftScore(), timestamp: e.clock.Now()})
				return OutcomePlayerBust, nil
			}
		default:
			return OutcomeNone, fmt.Errorf("%w: %d", ErrInvalidTurnCommand, decision)
		}
	}
}

func (e *Engine) dealerTurn() (Outcome, error) {
	hand := e.dealer.Hand()
	e.dealer.Reveal()
	e.bus.Publish(DealerRevealEvent{Cards: e.dealer.Visible(), Score: hand.SoftScore(), timestamp: e.clock.Now()})

	for hand.SoftScore() < DealerStandsOn {
		card, err := e.hit(e.dealer, true)
		if err != nil {
			return OutcomeNone, err
		}
		e.logger.Debug("Dealer hits", "card", card, "score", hand.SoftScore())
		if hand.IsBust() {
			e.bus.Publish(BustEvent{Participant: e.dealer.Name(), Dealer: true, Score: hand.SoftScore(), timestamp: e.clock.Now()})
			return OutcomeDealerBust, nil
		}
	}

	e.bus.Publish(DealerStandEvent{Score: hand.SoftScore(), timestamp: e.clock.Now()})
	return OutcomeNone, nil
}

func (e *Engine) compare() Outcome {
	player := e.player.Hand().SoftScore()
	dealer := e.dealer.Hand().SoftScore()
	switch {
	case player > dealer:
		return OutcomePlayerWin
	case player == dealer:
		return OutcomePush
	default:
		return OutcomeDealerWin
	}
}

func (e *Engine) settle(result *RoundResult, outcome Outcome) {
	bet := e.player.Bet
	switch {
	case outcome.PlayerWins():
		result.Payout = 2 * bet
	case outcome == OutcomePush:
		result.Payout = bet
	}
	e.player.Payout(result.Payout)

	result.Outcome = outcome
	result.Net = result.Payout - bet
	result.PlayerScore = e.player.Hand().SoftScore()
	result.DealerScore = e.dealer.Hand().SoftScore()
	result.PlayerCards = e.player.Hand().Cards()
	result.DealerCards = e.dealer.Hand().Cards()
	result.ChipsAfter = e.player.Chips
	result.FinishedAt = e.clock.Now()

	e.logger.Info("Round resolved",
		"round", result.ID,
		"outcome", outcome,
		"player", result.PlayerScore,
		"dealer", result.DealerScore,
		"net", result.Net,
		"chips", result.ChipsAfter)
}

func (e *Engine) hit(p Participant, dealer bool) (deck.Card, error) {
	if err := e.drawTo(p); err != nil {
		return deck.Card{}, err
	}
	hand := p.Hand()
	cards := hand.Cards()
	card := cards[len(cards)-1]
	e.bus.Publish(CardDrawnEvent{
		Participant: p.Name(),
		Dealer:      dealer,
		Card:        card,
		Cards:       cards,
		Score:       hand.SoftScore(),
		timestamp:   e.clock.Now(),
	})
	return card, nil
}

func (e *Engine) drawTo(p Participant) error {
	card, err := e.shoe.Draw()
	if err != nil {
		if errors.Is(err, deck.ErrEmptyShoe) {
			e.logger.Error("Shoe ran dry mid-round", "threshold", e.shoe.Threshold(), "decks", e.shoe.Decks())
		}
		return fmt.Errorf("drawing for %s: %w", p.Name(), err)
	}
	p.Hand().Add(card)
	return nil
}

func (e *Engine) reset() {
	e.player.Reset()
	e.dealer.Reset()
	e.state = AwaitingBet
}
