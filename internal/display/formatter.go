// Package display turns table events into lines of text for the terminals.
package display

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

const hiddenCard = "??"

// Formatter renders events as styled lines
type Formatter struct {
	styles *Styles
}

// NewFormatter creates a formatter using the given styles
func NewFormatter(styles *Styles) *Formatter {
	return &Formatter{styles: styles}
}

// Styles returns the styles the formatter renders with
func (f *Formatter) Styles() *Styles {
	return f.styles
}

// Format renders an event. Unknown events render as nothing.
func (f *Formatter) Format(event game.Event) []string {
	switch e := event.(type) {
	case game.RoundStartEvent:
		return []string{f.styles.Info.Render(fmt.Sprintf("Round %s • bet %d • %d chips behind", shortID(e.RoundID), e.Bet, e.Chips))}
	case game.ReshuffleEvent:
		return []string{
			f.styles.Info.Render(fmt.Sprintf("%d cards in shoe", e.Remaining)),
			f.styles.Warning.Render(fmt.Sprintf("Reshuffling %d decks...", e.Decks)),
		}
	case game.DealEvent:
		lines := []string{}
		if !e.Reshuffled {
			lines = append(lines, f.styles.Info.Render(fmt.Sprintf("%d cards in shoe", e.ShoeBefore)))
		}
		return append(lines,
			"Dealer's hand: "+f.FormatCards(e.DealerCards, e.DealerHidden),
			fmt.Sprintf("Your hand: %s (%d)", f.FormatCards(e.PlayerCards, 0), e.PlayerScore),
		)
	case game.CardDrawnEvent:
		if e.Dealer {
			return []string{fmt.Sprintf("Dealer hits: %s (%d)", f.FormatCards(e.Cards, 0), e.Score)}
		}
		return []string{fmt.Sprintf("You draw %s: %s (%d)", f.FormatCard(e.Card), f.FormatCards(e.Cards, 0), e.Score)}
	case game.PlayerStandEvent:
		return []string{fmt.Sprintf("You stand with %d", e.Score)}
	case game.BustEvent:
		if e.Dealer {
			return []string{f.styles.Success.Render(fmt.Sprintf("Dealer busts with %d!", e.Score))}
		}
		return []string{f.styles.Error.Render(fmt.Sprintf("You bust with %d!", e.Score))}
	case game.DealerRevealEvent:
		return []string{fmt.Sprintf("Dealer's hand: %s (%d)", f.FormatCards(e.Cards, 0), e.Score)}
	case game.DealerStandEvent:
		return []string{fmt.Sprintf("Dealer stands with %d", e.Score)}
	case game.RoundEndEvent:
		return f.formatResult(e.Result)
	case game.SessionEndEvent:
		return f.formatSummary(e.Summary)
	default:
		return nil
	}
}

func (f *Formatter) formatResult(r game.RoundResult) []string {
	var line string
	switch {
	case r.Outcome.PlayerWins():
		line = f.styles.Success.Render(fmt.Sprintf("You win! %d chips added to your total.", r.Payout))
	case r.Outcome == game.OutcomePush:
		line = f.styles.Warning.Render(fmt.Sprintf("It's a push, you get your bet of %d back.", r.Payout))
	default:
		line = f.styles.Error.Render(fmt.Sprintf("You lose %d.", r.Bet))
	}
	return []string{line, f.styles.HandInfo.Render(fmt.Sprintf("Chips: %d", r.ChipsAfter))}
}

func (f *Formatter) formatSummary(s game.SessionSummary) []string {
	lines := []string{}
	if s.Bankrupt {
		lines = append(lines, f.styles.Error.Render("You're out of chips. It's time to leave the table."))
	} else {
		lines = append(lines, f.styles.HandInfo.Render(fmt.Sprintf("Thanks for playing. You walk away with %d chips.", s.FinalChips)))
	}
	lines = append(lines, f.styles.Info.Render(fmt.Sprintf("%d rounds • %d won • %d pushed • %d lost • net %+d",
		s.Rounds, s.Wins, s.Pushes, s.Losses, s.Net())))
	return lines
}

// FormatTurn renders the player's hand and options for a decision prompt
func (f *Formatter) FormatTurn(view game.TurnView) string {
	return f.styles.HandInfo.Render(fmt.Sprintf("Your hand: %s (%d)  Dealer shows: %s  Bet: %d",
		f.FormatCards(view.PlayerCards, 0), view.PlayerScore, f.FormatCard(view.DealerUpCard), view.Bet))
}

// FormatCards renders cards in brackets followed by hidden placeholders
func (f *Formatter) FormatCards(cards []deck.Card, hidden int) string {
	parts := make([]string, 0, len(cards)+hidden)
	for _, c := range cards {
		parts = append(parts, f.FormatCard(c))
	}
	for range hidden {
		parts = append(parts, f.styles.Hidden.Render(hiddenCard))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// FormatCard renders one card in its suit colour
func (f *Formatter) FormatCard(c deck.Card) string {
	if c.IsRed() {
		return f.styles.RedCard.Render(c.String())
	}
	return f.styles.BlackCard.Render(c.String())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}
