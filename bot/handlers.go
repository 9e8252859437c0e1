/* handlers.go
 * Contains testable handler methods that accept DiscordSession interface
 * Authors: Ahasuerus
 */

package bot

import (
	"fmt"
	"strconv"
	"strings"

	"ravens-nest/api/match"
	"ravens-nest/api/shared"

	"github.com/bwmarrin/discordgo"
	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
)

const defaultLeaderboardSize = 10

// helpMessageHandler handles the $help command with a DiscordSession interface
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Ravens Nest Matchmaking\n")
	res.WriteString("`$onboard [name] [team]`: Registers you for matchmaking, using your username if no name is given\n")
	res.WriteString("`$onboardteam team p1 p2 p3`: Registers a 3v3 team of onboarded players\n")
	res.WriteString("`$queue 1v1|flex [restricted]`: Queues you. Restricted only matches you against your rank or lower\n")
	res.WriteString("`$queue reg team [restricted]`: Queues a registered team\n")
	res.WriteString("`$party p1 p2 p3 [restricted]`: Queues three players together for 3v3 flex\n")
	res.WriteString("`$dequeue 1v1|flex` or `$dequeue reg team`: Leaves the queue. Leaving a party removes the whole party\n")
	res.WriteString("`$pair 1v1|flex|reg`: Runs matchmaking on a queue\n")
	res.WriteString("`$teammatch team1 team2`: Sets up a 3v3 reg match directly\n")
	res.WriteString("`$report matchID winner`: Reports the winner of a match by player or team name\n")
	res.WriteString("`$cancel matchID`: Cancels a match\n")
	res.WriteString("`$stats [name]`, `$teamstats team`, `$match matchID`: Shows ratings, records and matches\n")
	res.WriteString("`$leaderboard 1v1|flex|reg [n]`: Shows the top n (default 10)\n")
	res.WriteString("`$queues`: Shows who is waiting in every queue\n")
	res.WriteString("Names that contain two or more words need to be encased in \" (e.g. \"Xylem Raiders\")\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// authorName returns the registered name of the message author
func (b *Bot) authorName(message *discordgo.MessageCreate) (string, error) {
	p, err := b.APIPtr.GetPlayerByID(message.Author.ID)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

// args splits the message and checks it has between minArgs and maxArgs arguments. On failure it replies with usage.
func (b *Bot) args(session DiscordSession, message *discordgo.MessageCreate, minArgs int, maxArgs int, usage string) ([]string, bool) {
	args, err := splitArgs(message.Content)
	if err != nil || len(args) < minArgs || len(args) > maxArgs {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Usage: `%s`", usage))
		return nil, false
	}
	return args, true
}

// onboardHandler handles the $onboard command
func (b *Bot) onboardHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, ok := b.args(session, message, 0, 2, "$onboard [name] [team]")
	if !ok {
		return
	}
	name := message.Author.Username
	team := ""
	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 1 {
		team = args[1]
	}

	p, err := b.APIPtr.OnboardPlayer(message.Author.ID, name, team)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.errorMessage(err, ""))
		return
	}
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Welcome %s! You start at %d (%s)", p.Name,
		p.SinglesRating, displayRank(p.SinglesRank, p.SinglesRating)))
}

// onboardTeamHandler handles the $onboardteam command
func (b *Bot) onboardTeamHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, ok := b.args(session, message, 4, 4, "$onboardteam team p1 p2 p3")
	if !ok {
		return
	}

	t, err := b.APIPtr.OnboardTeam(args[0], args[1:])
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.errorMessage(err, failedName(err, args[1:])))
		return
	}
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Team %s registered: %s", t.Name,
		strings.Join(t.Members, ", ")))
}

// queueHandler handles the $queue command
func (b *Bot) queueHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, ok := b.args(session, message, 1, 3, "$queue 1v1|flex [restricted] or $queue reg team [restricted]")
	if !ok {
		return
	}
	format, err := shared.ParseFormat(args[0])
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.errorMessage(err, ""))
		return
	}

	var (
		name       string
		restricted bool
		found      opt.Option[match.Record]
	)
	if format == shared.FormatRegistered {
		if len(args) < 2 {
			session.ChannelMessageSend(message.ChannelID, "Usage: `$queue reg team [restricted]`")
			return
		}
		name = args[1]
		if restricted, err = optionalBool(args, 2); err != nil {
			session.ChannelMessageSend(message.ChannelID, err.Error())
			return
		}
		found, err = b.APIPtr.QueueTeam(name, restricted)
	} else {
		if len(args) > 2 {
			session.ChannelMessageSend(message.ChannelID, "Usage: `$queue 1v1|flex [restricted]`")
			return
		}
		if restricted, err = optionalBool(args, 1); err != nil {
			session.ChannelMessageSend(message.ChannelID, err.Error())
			return
		}
		if name, err = b.authorName(message); err != nil {
			session.ChannelMessageSend(message.ChannelID, "You need to `$onboard` before queueing")
			return
		}
		found, err = b.APIPtr.QueuePlayer(string(format), name, restricted)
	}
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.errorMessage(err, name))
		return
	}

	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s joined the %s queue", name, format))
	b.announce(session, message, found)
}

// partyHandler handles the $party command
func (b *Bot) partyHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, ok := b.args(session, message, 3, 4, "$party p1 p2 p3 [restricted]")
	if !ok {
		return
	}
	restricted, err := optionalBool(args, 3)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, err.Error())
		return
	}

	_, found, err := b.APIPtr.QueueParty(args[:3], restricted)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.errorMessage(err, failedName(err, args[:3])))
		return
	}
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Party %s joined the 3v3 flex queue",
		strings.Join(args[:3], ", ")))
	b.announce(session, message, found)
}

// dequeueHandler handles the $dequeue command
func (b *Bot) dequeueHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, ok := b.args(session, message, 1, 2, "$dequeue 1v1|flex or $dequeue reg team")
	if !ok {
		return
	}
	format, err := shared.ParseFormat(args[0])
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.errorMessage(err, ""))
		return
	}

	var name string
	if format == shared.FormatRegistered {
		if len(args) < 2 {
			session.ChannelMessageSend(message.ChannelID, "Usage: `$dequeue reg team`")
			return
		}
		name = args[1]
	} else if name, err = b.authorName(message); err != nil {
		session.ChannelMessageSend(message.ChannelID, "You need to `$onboard` first")
		return
	}

	removed, err := b.APIPtr.Dequeue(string(format), name)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.errorMessage(err, ""))
		return
	}
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Left the %s queue: %s", format,
		strings.Join(removed, ", ")))
}

// pairHandler handles the $pair command
func (b *Bot) pairHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, ok := b.args(session, message, 1, 1, "$pair 1v1|flex|reg")
	if !ok {
		return
	}
	found, err := b.APIPtr.RequestPairing(args[0])
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.errorMessage(err, ""))
		return
	}
	if opt.IsNone(found) {
		session.ChannelMessageSend(message.ChannelID, "No match found")
		return
	}
	b.announce(session, message, found)
}

// teamMatchHandler handles the $teammatch command
func (b *Bot) teamMatchHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, ok := b.args(session, message, 2, 2, "$teammatch team1 team2")
	if !ok {
		return
	}
	m, err := b.APIPtr.CreateTeamMatch(args[0], args[1])
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.errorMessage(err, failedName(err, args)))
		return
	}
	session.ChannelMessageSend(message.ChannelID, matchMessage(m))
}

// reportHandler handles the $report command
func (b *Bot) reportHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, ok := b.args(session, message, 2, 2, "$report matchID winner")
	if !ok {
		return
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("'%s' is not a match id", args[0]))
		return
	}

	m, err := b.APIPtr.ReportResult(id, args[1])
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.errorMessage(err, ""))
		return
	}
	log.Info().Uint64("match", id).Str("by", message.Author.Username).Msg("result reported")
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Match #%d won by %s", m.ID, strings.Join(m.Winners, ", ")))
}

// cancelHandler handles the $cancel command
func (b *Bot) cancelHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, ok := b.args(session, message, 1, 1, "$cancel matchID")
	if !ok {
		return
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("'%s' is not a match id", args[0]))
		return
	}

	if _, err := b.APIPtr.CancelMatch(id); err != nil {
		session.ChannelMessageSend(message.ChannelID, b.errorMessage(err, ""))
		return
	}
	log.Info().Uint64("match", id).Str("by", message.Author.Username).Msg("match cancelled")
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Match #%d cancelled", id))
}

// statsHandler handles the $stats command
func (b *Bot) statsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, ok := b.args(session, message, 0, 1, "$stats [name]")
	if !ok {
		return
	}

	if len(args) == 0 {
		p, err := b.APIPtr.GetPlayerByID(message.Author.ID)
		if err != nil {
			session.ChannelMessageSend(message.ChannelID, "You need to `$onboard` first")
			return
		}
		session.ChannelMessageSend(message.ChannelID, playerMessage(p))
		return
	}

	p, err := b.APIPtr.GetPlayer(args[0])
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.errorMessage(err, args[0]))
		return
	}
	session.ChannelMessageSend(message.ChannelID, playerMessage(p))
}

// teamStatsHandler handles the $teamstats command
func (b *Bot) teamStatsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, ok := b.args(session, message, 1, 1, "$teamstats team")
	if !ok {
		return
	}
	t, err := b.APIPtr.GetTeam(args[0])
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.errorMessage(err, args[0]))
		return
	}
	session.ChannelMessageSend(message.ChannelID, teamMessage(t))
}

// matchHandler handles the $match command
func (b *Bot) matchHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, ok := b.args(session, message, 1, 1, "$match matchID")
	if !ok {
		return
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("'%s' is not a match id", args[0]))
		return
	}
	m, err := b.APIPtr.GetMatch(id)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.errorMessage(err, ""))
		return
	}
	session.ChannelMessageSend(message.ChannelID, matchMessage(m))
}

// leaderboardHandler handles the $leaderboard command with a DiscordSession interface
func (b *Bot) leaderboardHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, ok := b.args(session, message, 1, 2, "$leaderboard 1v1|flex|reg [n]")
	if !ok {
		return
	}
	n := defaultLeaderboardSize
	if len(args) > 1 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil || parsed <= 0 {
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("'%s' is not a positive number", args[1]))
			return
		}
		n = parsed
	}

	entries, err := b.APIPtr.Leaderboard(args[0], n)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.errorMessage(err, ""))
		return
	}
	if len(entries) == 0 {
		session.ChannelMessageSend(message.ChannelID, "Nobody is on the leaderboard yet")
		return
	}

	var res strings.Builder
	res.WriteString("Leaderboard:\n")
	for _, e := range entries {
		res.WriteString(fmt.Sprintf("%d. %s - %d (%s) %dW/%dL\n", e.Position, e.Name, e.Rating,
			displayRank(e.Rank, e.Rating), e.Wins, e.Losses))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// queuesHandler handles the $queues command
func (b *Bot) queuesHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	for _, format := range shared.Formats {
		entries, err := b.APIPtr.QueueEntries(string(format))
		if err != nil {
			session.ChannelMessageSend(message.ChannelID, b.errorMessage(err, ""))
			return
		}
		res.WriteString(fmt.Sprintf("%s (%d waiting)\n", format, len(entries)))
		for _, e := range entries {
			res.WriteString(fmt.Sprintf("- %s %d (%s)", e.Name, e.Rating, displayRank(e.Rank, e.Rating)))
			if e.RankRestricted {
				res.WriteString(" restricted")
			}
			if e.PartyID != "" {
				res.WriteString(" party")
			}
			res.WriteString("\n")
		}
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// announce posts a newly formed match, if there is one
func (b *Bot) announce(session DiscordSession, message *discordgo.MessageCreate, found opt.Option[match.Record]) {
	if opt.IsNone(found) {
		return
	}
	session.ChannelMessageSend(message.ChannelID, "Match found!\n"+matchMessage(found.Value))
}

// failedName picks the name a not found error is about so a suggestion can be offered
func failedName(err error, names []string) string {
	for _, name := range names {
		if strings.HasSuffix(err.Error(), fmt.Sprintf("'%s'", name)) {
			return name
		}
	}
	return ""
}
