// Package game implements the blackjack round engine.
//
// The main type is Engine, which owns a continuous shoe, the player and the
// dealer, and plays one betting round at a time:
//
//	shoe := deck.NewShoe(randutil.New(seed))
//	engine := game.NewEngine(shoe, game.NewPlayer("You", 1000), logger)
//	result, err := engine.PlayRound(100, decider)
//
// A round moves through AwaitingBet, Dealing, PlayerTurn, DealerTurn and
// Resolved. Inputs come from a Decider (hit or stand) and everything that
// happens is published on the engine's EventBus.
//
// Session wraps an Engine and a Terminal and repeats rounds until the player
// leaves or runs out of chips.
//
// # Deterministic Testing
//
// Stack the shoe to control every card:
//
//	shoe := deck.NewShoe(nil, deck.WithCards(deck.MustParseCards("TsKd9h7c")...))
//
// Cards are dealt player, dealer, player, dealer, then drawn in order for hits.
package game
