/* bot.go
 * Contains the Bot struct, command routing and argument parsing. Requires a discord bot token and APIPtr, both of
 * which are passed in from main.go
 * Authors: Ahasuerus
 */

package bot

import (
	"fmt"
	"strings"

	"ravens-nest/api/api"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
)

type Bot struct {
	BotToken string
	APIPtr   *api.API
	limiter  *userLimiter
}

func NewBot(botToken string, apiPtr *api.API) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
		limiter:  newUserLimiter(defaultCommandRate, defaultCommandBurst),
	}, nil
}

// newMessageHandler routes messages to appropriate handlers with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author == nil || message.Author.ID == botUserID {
		return
	}

	handler, ok := b.route(commandName(message.Content))
	if !ok {
		return
	}
	if b.limiter != nil && !b.limiter.Allow(message.Author.ID) {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s, slow down a little", message.Author.Username))
		return
	}
	handler(session, message)
}

func (b *Bot) route(command string) (func(DiscordSession, *discordgo.MessageCreate), bool) {
	switch command {
	case "$help":
		return b.helpMessageHandler, true
	case "$onboard":
		return b.onboardHandler, true
	case "$onboardteam":
		return b.onboardTeamHandler, true
	case "$queue":
		return b.queueHandler, true
	case "$party":
		return b.partyHandler, true
	case "$dequeue":
		return b.dequeueHandler, true
	case "$pair":
		return b.pairHandler, true
	case "$teammatch":
		return b.teamMatchHandler, true
	case "$report":
		return b.reportHandler, true
	case "$cancel":
		return b.cancelHandler, true
	case "$stats":
		return b.statsHandler, true
	case "$teamstats":
		return b.teamStatsHandler, true
	case "$match":
		return b.matchHandler, true
	case "$leaderboard":
		return b.leaderboardHandler, true
	case "$queues":
		return b.queuesHandler, true
	}
	return nil, false
}

// commandName returns the lower cased first word of a message
func commandName(content string) string {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// splitArgs returns the arguments after the command. Names that contain spaces need to be encased in quotes
// (e.g. "Xylem Raiders")
// Preconditions: Receives the full message content
// Postconditions: Returns the arguments with their quotes removed, or an error if a quote is left open
func splitArgs(content string) ([]string, error) {
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, err
	}
	parts, err := spaceSplitter.Split(strings.TrimSpace(content))
	if err != nil {
		return nil, err
	}

	var args []string
	for _, part := range parts {
		part = strings.Trim(strings.TrimSpace(part), "\"“”")
		if part != "" {
			args = append(args, part)
		}
	}
	if len(args) == 0 {
		return nil, nil
	}
	return args[1:], nil
}

// parseBool converts a string of true or false into a boolean
// Preconditions: Receives string containing either true or false (case insensitive)
// Postconditions: Returns boolean value or an error if the string is not true or false
func parseBool(str string) (bool, error) {
	str = strings.TrimSpace(str)
	str = strings.ToLower(str)

	if str == "true" {
		return true, nil
	} else if str == "false" {
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean string '%s', expected true or false", str)
}

// optionalBool parses args[i] if present and returns false otherwise
func optionalBool(args []string, i int) (bool, error) {
	if len(args) <= i {
		return false, nil
	}
	return parseBool(args[i])
}
