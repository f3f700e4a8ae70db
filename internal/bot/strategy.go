package bot

import (
	"fmt"
	"sort"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

// Strategy picks hit or stand from what the player can see
type Strategy interface {
	Name() string
	Decide(view game.TurnView) game.Decision
}

// BasicStrategy plays the hit/stand part of the standard basic strategy
// chart. Doubling and splitting are not offered at this table.
type BasicStrategy struct{}

// Name returns the strategy name
func (BasicStrategy) Name() string { return "basic" }

// Decide looks up the hard or soft total against the dealer's up card
func (BasicStrategy) Decide(view game.TurnView) game.Decision {
	up := upCardValue(view.DealerUpCard)
	total := view.PlayerScore

	if view.PlayerSoft {
		switch {
		case total >= 19:
			return game.Stand
		case total == 18:
			if up >= 9 {
				return game.Hit
			}
			return game.Stand
		default:
			return game.Hit
		}
	}

	switch {
	case total >= 17:
		return game.Stand
	case total >= 13:
		if up <= 6 {
			return game.Stand
		}
		return game.Hit
	case total == 12:
		if up >= 4 && up <= 6 {
			return game.Stand
		}
		return game.Hit
	default:
		return game.Hit
	}
}

// DealerMimic plays the dealer's rule: hit below 17
type DealerMimic struct{}

// Name returns the strategy name
func (DealerMimic) Name() string { return "mimic" }

// Decide hits below 17
func (DealerMimic) Decide(view game.TurnView) game.Decision {
	if view.PlayerScore < game.DealerStandsOn {
		return game.Hit
	}
	return game.Stand
}

// NeverBust only hits when no single card can bust the hand
type NeverBust struct{}

// Name returns the strategy name
func (NeverBust) Name() string { return "never-bust" }

// Decide hits on hard 11 or less and on soft hands below 18
func (NeverBust) Decide(view game.TurnView) game.Decision {
	if view.PlayerSoft {
		return DealerMimic{}.Decide(view)
	}
	if view.PlayerScore <= 11 {
		return game.Hit
	}
	return game.Stand
}

var strategies = map[string]Strategy{
	BasicStrategy{}.Name(): BasicStrategy{},
	DealerMimic{}.Name():   DealerMimic{},
	NeverBust{}.Name():     NeverBust{},
}

// StrategyByName looks up a strategy by name
func StrategyByName(name string) (Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (choose from %v)", name, StrategyNames())
	}
	return s, nil
}

// StrategyNames lists the known strategies in order
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// upCardValue counts an Ace as 11 for chart lookups
func upCardValue(c deck.Card) int {
	if c.IsAce() {
		return 11
	}
	return c.Value()
}
