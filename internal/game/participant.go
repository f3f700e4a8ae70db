package game

import (
	"fmt"

	"github.com/lox/blackjack-cli/internal/deck"
)

// Participant is anyone holding a hand at the table
type Participant interface {
	Name() string
	Hand() *Hand
	// Visible returns the cards the rest of the table can see
	Visible() []deck.Card
	// Reset clears per-round state ahead of the next deal
	Reset()
}

// Player is the human side of the table. It owns the chip balance and the
// stake for the current round.
type Player struct {
	name  string
	hand  Hand
	Chips int
	Bet   int
}

// NewPlayer creates a player with a starting chip balance
func NewPlayer(name string, chips int) *Player {
	return &Player{name: name, Chips: chips}
}

func (p *Player) Name() string         { return p.name }
func (p *Player) Hand() *Hand          { return &p.hand }
func (p *Player) Visible() []deck.Card { return p.hand.Cards() }

// PlaceBet moves bet chips from the balance into the stake
func (p *Player) PlaceBet(bet int) error {
	if err := ValidateBet(bet, p.Chips); err != nil {
		return err
	}
	p.Chips -= bet
	p.Bet = bet
	return nil
}

// Payout credits chips won or returned at the end of a round
func (p *Player) Payout(amount int) {
	p.Chips += amount
}

// CanPlay reports whether the player has chips left to bet
func (p *Player) CanPlay() bool {
	return p.Chips > 0
}

// Reset clears the hand and the stake
func (p *Player) Reset() {
	p.hand.Clear()
	p.Bet = 0
}

// Dealer plays the house hand. Its hole card stays face down until Reveal.
type Dealer struct {
	hand     Hand
	revealed bool
}

// NewDealer creates a dealer with an empty hand
func NewDealer() *Dealer {
	return &Dealer{}
}

func (d *Dealer) Name() string { return "Dealer" }
func (d *Dealer) Hand() *Hand  { return &d.hand }

// Visible returns the up card only until the hole card has been revealed
func (d *Dealer) Visible() []deck.Card {
	cards := d.hand.Cards()
	if d.revealed || len(cards) < 2 {
		return cards
	}
	return cards[:1]
}

// UpCard returns the face up card, if dealt
func (d *Dealer) UpCard() (deck.Card, bool) {
	if d.hand.Len() == 0 {
		return deck.Card{}, false
	}
	return d.hand.cards[0], true
}

// Reveal turns the hole card face up
func (d *Dealer) Reveal() {
	d.revealed = true
}

// Revealed reports whether the hole card is face up
func (d *Dealer) Revealed() bool {
	return d.revealed
}

// Reset clears the hand and turns the hole card back face down
func (d *Dealer) Reset() {
	d.hand.Clear()
	d.revealed = false
}

// ValidateBet checks a bet against the chip balance
func ValidateBet(bet, chips int) error {
	if bet < 1 {
		return fmt.Errorf("%w: bet must be at least 1", ErrInvalidBet)
	}
	if bet > chips {
		return fmt.Errorf("%w: bet of %d exceeds balance of %d", ErrInvalidBet, bet, chips)
	}
	return nil
}
