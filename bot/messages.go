/* messages.go
 * Contains the functions that turn API results and errors into Discord messages
 * Authors: Ahasuerus
 */

package bot

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"ravens-nest/api/api"
	"ravens-nest/api/match"
	"ravens-nest/api/shared"

	"github.com/rs/zerolog/log"
)

// displayRank shows SS players with their rating, e.g. SS_1800
func displayRank(rank string, rating int) string {
	if rank == "SS" {
		return fmt.Sprintf("SS_%d", rating)
	}
	return rank
}

func displayRatio(ratio float64) string {
	if math.IsInf(ratio, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.2f", ratio)
}

// matchMessage announces a match with its sides, map and lobby keyword
func matchMessage(m match.Record) string {
	var res strings.Builder
	res.WriteString(fmt.Sprintf("Match #%d (%s)\n", m.ID, m.Format))
	res.WriteString(fmt.Sprintf("Alpha: %s\n", strings.Join(m.Alpha, ", ")))
	res.WriteString(fmt.Sprintf("Beta: %s\n", strings.Join(m.Beta, ", ")))
	if m.Map != "" {
		res.WriteString(fmt.Sprintf("Map: %s\n", m.Map))
	}
	if m.Keyword != "" {
		res.WriteString(fmt.Sprintf("Lobby keyword: `%s`\n", m.Keyword))
	}
	res.WriteString(fmt.Sprintf("Status: %s\n", m.Status))
	if len(m.Winners) > 0 {
		res.WriteString(fmt.Sprintf("Winners: %s\n", strings.Join(m.Winners, ", ")))
	}
	return res.String()
}

func playerMessage(p api.PlayerStats) string {
	var res strings.Builder
	res.WriteString(fmt.Sprintf("**%s**", p.Name))
	if p.Team != "" {
		res.WriteString(fmt.Sprintf(" [%s]", p.Team))
	}
	res.WriteString("\n")
	res.WriteString(fmt.Sprintf("1v1: %d (%s) %dW/%dL ratio %s\n", p.SinglesRating,
		displayRank(p.SinglesRank, p.SinglesRating), p.SinglesWins, p.SinglesLosses, displayRatio(p.SinglesRatio)))
	res.WriteString(fmt.Sprintf("3v3: %d (%s) %dW/%dL ratio %s\n", p.TeamsRating,
		displayRank(p.TeamsRank, p.TeamsRating), p.TeamsWins, p.TeamsLosses, displayRatio(p.TeamsRatio)))
	return res.String()
}

func teamMessage(t api.TeamStats) string {
	return fmt.Sprintf("**%s**: %s\nRating: %d (%s) %dW/%dL ratio %s\n", t.Name, strings.Join(t.Members, ", "),
		t.Rating, displayRank(t.Rank, t.Rating), t.Wins, t.Losses, displayRatio(t.Ratio))
}

// errorMessage turns an API error into a reply. Lookups of unknown names suggest close registered names.
func (b *Bot) errorMessage(err error, name string) string {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		res := fmt.Sprintf("Not found: %s", unwrapDetail(err))
		if name != "" {
			if suggestions := b.APIPtr.Suggest(name, 3); len(suggestions) > 0 {
				res += fmt.Sprintf(". Did you mean: %s?", strings.Join(suggestions, ", "))
			}
		}
		return res
	case errors.Is(err, shared.ErrDuplicateKey):
		return fmt.Sprintf("Already registered: %s", unwrapDetail(err))
	case errors.Is(err, shared.ErrAlreadyQueued):
		return fmt.Sprintf("Already queued: %s", unwrapDetail(err))
	case errors.Is(err, shared.ErrPartyEnqueueNotAllowed):
		return "Parties can only queue for 3v3 flex"
	case errors.Is(err, shared.ErrInvalidQueueOperation):
		return "Players queue for 1v1 and 3v3 flex, registered teams queue for 3v3 reg"
	case errors.Is(err, shared.ErrAlreadyCompleted):
		return "That match has already been reported"
	case errors.Is(err, shared.ErrInvalidFormat):
		return fmt.Sprintf("Invalid format: %s. Use 1v1, flex or reg", unwrapDetail(err))
	case errors.Is(err, shared.ErrInvalidSideComposition):
		return fmt.Sprintf("Invalid sides: %s", unwrapDetail(err))
	case errors.Is(err, shared.ErrParticipantInMatch):
		return fmt.Sprintf("Still playing: %s", unwrapDetail(err))
	}
	log.Error().Err(err).Msg("unexpected error")
	return "An unexpected error occured"
}

// unwrapDetail returns the context an error was wrapped with, e.g. "match 4" from "not found: match 4"
func unwrapDetail(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
