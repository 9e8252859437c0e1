/* handlers_test.go
 * Contains unit tests for bot command handlers using mock Discord session
 * Authors: Ahasuerus
 */

package bot

import (
	"errors"
	"fmt"
	"testing"

	"ravens-nest/api/api"
	"ravens-nest/api/match"
	"ravens-nest/api/shared"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSettings = api.Settings{
	BaseEloDiff: 10,
	MaxEloDiff:  250,
	KFactor:     30,
	Pools: match.MapPools{
		shared.FormatSingles:    {"Grid 086 A"},
		shared.FormatFlex:       {"Bona Dea Dunes A"},
		shared.FormatRegistered: {"Old Bertram Spaceport"},
	},
}

// createTestAPI creates an API over an in-memory store
func createTestAPI(t *testing.T) *api.API {
	t.Helper()
	a, err := api.NewAPI(api.NewMockStore(), testSettings)
	require.NoError(t, err)
	return a
}

// createTestBot creates a Bot over a fresh API for testing
func createTestBot(t *testing.T) *Bot {
	t.Helper()
	b, err := NewBot("test_token", createTestAPI(t))
	require.NoError(t, err)
	return b
}

// createMockMessage creates a mock Discord message for testing
func createMockMessage(content, userID, username, channelID string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content:   content,
			ChannelID: channelID,
			Author: &discordgo.User{
				ID:       userID,
				Username: username,
			},
		},
	}
}

// onboardUsers onboards one Discord user per name, using the name as the username and "id-<name>" as the user id
func onboardUsers(t *testing.T, b *Bot, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := b.APIPtr.OnboardPlayer("id-"+name, name, "")
		require.NoError(t, err)
	}
}

// region helpMessage tests

func TestHelpMessage_Success(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()
	message := createMockMessage("$help", "user123", "TestUser", "channel123")

	b.helpMessageHandler(mockSession, message)

	require.Len(t, mockSession.SentMessages, 1)
	last := mockSession.GetLastMessage()
	assert.Equal(t, "channel123", last.ChannelID)
	assert.Contains(t, last.Content, "Ravens Nest Matchmaking")
	assert.Contains(t, last.Content, "$queue 1v1|flex [restricted]")
	assert.Contains(t, last.Content, "$report matchID winner")
}

// endregion

// region onboard tests

// TestOnboard_DefaultsToUsername tests that onboarding without a name uses the Discord username
func TestOnboard_DefaultsToUsername(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.onboardHandler(mockSession, createMockMessage("$onboard", "user123", "Hooli", "channel123"))

	assert.Equal(t, "Welcome Hooli! You start at 825 (C)", mockSession.GetLastMessage().Content)
	p, err := b.APIPtr.GetPlayerByID("user123")
	require.NoError(t, err)
	assert.Equal(t, "Hooli", p.Name)
}

// TestOnboard_QuotedNameAndTeam tests that a quoted name and an affiliation are registered
func TestOnboard_QuotedNameAndTeam(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.onboardHandler(mockSession, createMockMessage(`$onboard "Ramen Rook" Koolish`, "user123", "rr", "channel123"))

	assert.Contains(t, mockSession.GetLastMessage().Content, "Welcome Ramen Rook!")
	p, err := b.APIPtr.GetPlayer("Ramen Rook")
	require.NoError(t, err)
	assert.Equal(t, "Koolish", p.Team)
}

// TestOnboard_AlreadyOnboarded tests that a Discord user can only onboard once
func TestOnboard_AlreadyOnboarded(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.onboardHandler(mockSession, createMockMessage("$onboard", "user123", "Hooli", "channel123"))
	b.onboardHandler(mockSession, createMockMessage("$onboard Hooli2", "user123", "Hooli", "channel123"))

	assert.Equal(t, "Already registered: id user123 is already onboarded as Hooli", mockSession.GetLastMessage().Content)
}

func TestOnboard_TooManyArguments(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.onboardHandler(mockSession, createMockMessage("$onboard a b c", "user123", "Hooli", "channel123"))

	assert.Equal(t, "Usage: `$onboard [name] [team]`", mockSession.GetLastMessage().Content)
}

// endregion

// region onboardTeam tests

func TestOnboardTeam_Success(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "Hooli", "Kraydle", "Risa")
	mockSession := NewMockDiscordSession()

	b.onboardTeamHandler(mockSession, createMockMessage("$onboardteam Koolish Hooli Kraydle Risa", "user123", "Hooli", "channel123"))

	assert.Equal(t, "Team Koolish registered: Hooli, Kraydle, Risa", mockSession.GetLastMessage().Content)
}

// TestOnboardTeam_UnknownMemberSuggests tests that a misspelt member gets a suggestion
func TestOnboardTeam_UnknownMemberSuggests(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "Hooli", "Kraydle", "Risa")
	mockSession := NewMockDiscordSession()

	b.onboardTeamHandler(mockSession, createMockMessage("$onboardteam Koolish Hool Kraydle Risa", "user123", "Hooli", "channel123"))

	content := mockSession.GetLastMessage().Content
	assert.Contains(t, content, "Not found: player 'Hool'")
	assert.Contains(t, content, "Did you mean: Hooli")
}

// TestOnboardTeam_MemberOnAnotherTeam tests that a player already on a registered team cannot join a second one
func TestOnboardTeam_MemberOnAnotherTeam(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "Hooli", "Kraydle", "Risa", "Fish", "Ghost")
	_, err := b.APIPtr.OnboardTeam("Koolish", []string{"Hooli", "Kraydle", "Risa"})
	require.NoError(t, err)
	mockSession := NewMockDiscordSession()

	b.onboardTeamHandler(mockSession, createMockMessage("$onboardteam Ravens Hooli Fish Ghost", "user123", "Fish", "channel123"))

	assert.Equal(t, "Invalid sides: Hooli is already on team Koolish", mockSession.GetLastMessage().Content)
}

// endregion

// region queue tests

// TestQueue_FormsMatch tests that the second of two equally rated players forms a 1v1 match
func TestQueue_FormsMatch(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "Hooli", "Kraydle")
	mockSession := NewMockDiscordSession()

	b.queueHandler(mockSession, createMockMessage("$queue 1v1", "id-Hooli", "Hooli", "channel123"))
	assert.Equal(t, "Hooli joined the 1v1 queue", mockSession.GetLastMessage().Content)

	b.queueHandler(mockSession, createMockMessage("$queue 1v1", "id-Kraydle", "Kraydle", "channel123"))

	require.Len(t, mockSession.SentMessages, 3)
	assert.Equal(t, "Kraydle joined the 1v1 queue", mockSession.SentMessages[1].Content)
	announcement := mockSession.GetLastMessage().Content
	assert.Contains(t, announcement, "Match found!")
	assert.Contains(t, announcement, "Match #1 (1v1)")
	assert.Contains(t, announcement, "Hooli")
	assert.Contains(t, announcement, "Kraydle")
	assert.Contains(t, announcement, "Map: Grid 086 A")
	assert.Regexp(t, "Lobby keyword: `[A-Za-z0-9]{6}`", announcement)
}

// TestQueue_NotOnboarded tests that unknown Discord users are told to onboard
func TestQueue_NotOnboarded(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.queueHandler(mockSession, createMockMessage("$queue flex", "user123", "Hooli", "channel123"))

	assert.Equal(t, "You need to `$onboard` before queueing", mockSession.GetLastMessage().Content)
}

func TestQueue_InvalidFormat(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.queueHandler(mockSession, createMockMessage("$queue 2v2", "user123", "Hooli", "channel123"))

	assert.Equal(t, "Invalid format: '2v2'. Use 1v1, flex or reg", mockSession.GetLastMessage().Content)
}

func TestQueue_InvalidRestriction(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "Hooli")
	mockSession := NewMockDiscordSession()

	b.queueHandler(mockSession, createMockMessage("$queue 1v1 maybe", "id-Hooli", "Hooli", "channel123"))

	assert.Equal(t, "invalid boolean string 'maybe', expected true or false", mockSession.GetLastMessage().Content)
}

func TestQueue_AlreadyQueued(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "Hooli")
	mockSession := NewMockDiscordSession()

	b.queueHandler(mockSession, createMockMessage("$queue 1v1", "id-Hooli", "Hooli", "channel123"))
	b.queueHandler(mockSession, createMockMessage("$queue 1v1", "id-Hooli", "Hooli", "channel123"))

	assert.Equal(t, "Already queued: Hooli in 1v1", mockSession.GetLastMessage().Content)
}

// TestQueue_RegisteredTeams tests that two registered teams queueing for reg are paired
func TestQueue_RegisteredTeams(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "a", "b", "c", "d", "e", "f")
	_, err := b.APIPtr.OnboardTeam("Koolish", []string{"a", "b", "c"})
	require.NoError(t, err)
	_, err = b.APIPtr.OnboardTeam("Ravens", []string{"d", "e", "f"})
	require.NoError(t, err)
	mockSession := NewMockDiscordSession()

	b.queueHandler(mockSession, createMockMessage("$queue reg Koolish", "id-a", "a", "channel123"))
	b.queueHandler(mockSession, createMockMessage("$queue reg Ravens true", "id-d", "d", "channel123"))

	assert.Contains(t, mockSession.Transcript(), "Ravens joined the 3v3 reg queue")
	assert.Contains(t, mockSession.GetLastMessage().Content, "Match #1 (3v3 reg)")
	assert.Contains(t, mockSession.GetLastMessage().Content, "Map: Old Bertram Spaceport")
}

func TestQueue_RegisteredNeedsTeam(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.queueHandler(mockSession, createMockMessage("$queue reg", "user123", "Hooli", "channel123"))

	assert.Equal(t, "Usage: `$queue reg team [restricted]`", mockSession.GetLastMessage().Content)
}

// endregion

// region party tests

// TestParty_TwoPartiesFormFlexMatch tests that two queued parties make a 3v3 flex match
func TestParty_TwoPartiesFormFlexMatch(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "a", "b", "c", "d", "e", "f")
	mockSession := NewMockDiscordSession()

	b.partyHandler(mockSession, createMockMessage("$party a b c", "id-a", "a", "channel123"))
	assert.Equal(t, "Party a, b, c joined the 3v3 flex queue", mockSession.GetLastMessage().Content)

	b.partyHandler(mockSession, createMockMessage("$party d e f false", "id-d", "d", "channel123"))

	announcement := mockSession.GetLastMessage().Content
	assert.Contains(t, announcement, "Match #1 (3v3 flex)")
	assert.Contains(t, announcement, "Map: Bona Dea Dunes A")
}

func TestParty_DuplicateMember(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "a", "b")
	mockSession := NewMockDiscordSession()

	b.partyHandler(mockSession, createMockMessage("$party a b a", "id-a", "a", "channel123"))

	assert.Equal(t, "Invalid sides: 'a' appears more than once", mockSession.GetLastMessage().Content)
}

func TestParty_TooFewMembers(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.partyHandler(mockSession, createMockMessage("$party a b", "id-a", "a", "channel123"))

	assert.Equal(t, "Usage: `$party p1 p2 p3 [restricted]`", mockSession.GetLastMessage().Content)
}

// endregion

// region dequeue tests

func TestDequeue_Success(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "Hooli")
	mockSession := NewMockDiscordSession()

	b.queueHandler(mockSession, createMockMessage("$queue flex", "id-Hooli", "Hooli", "channel123"))
	b.dequeueHandler(mockSession, createMockMessage("$dequeue flex", "id-Hooli", "Hooli", "channel123"))

	assert.Equal(t, "Left the 3v3 flex queue: Hooli", mockSession.GetLastMessage().Content)
	entries, err := b.APIPtr.QueueEntries("flex")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestDequeue_WholeParty tests that one member leaving takes the whole party out
func TestDequeue_WholeParty(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "a", "b", "c")
	mockSession := NewMockDiscordSession()

	b.partyHandler(mockSession, createMockMessage("$party a b c", "id-a", "a", "channel123"))
	b.dequeueHandler(mockSession, createMockMessage("$dequeue flex", "id-b", "b", "channel123"))

	assert.Equal(t, "Left the 3v3 flex queue: a, b, c", mockSession.GetLastMessage().Content)
}

func TestDequeue_NotQueued(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "Hooli")
	mockSession := NewMockDiscordSession()

	b.dequeueHandler(mockSession, createMockMessage("$dequeue 1v1", "id-Hooli", "Hooli", "channel123"))

	assert.Equal(t, "Not found: Hooli is not queued for 1v1", mockSession.GetLastMessage().Content)
}

// endregion

// region pair tests

func TestPair_NoMatch(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.pairHandler(mockSession, createMockMessage("$pair 1v1", "user123", "Hooli", "channel123"))

	assert.Equal(t, "No match found", mockSession.GetLastMessage().Content)
}

func TestPair_InvalidFormat(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.pairHandler(mockSession, createMockMessage("$pair 5v5", "user123", "Hooli", "channel123"))

	assert.Contains(t, mockSession.GetLastMessage().Content, "Invalid format")
}

// endregion

// region teamMatch tests

func TestTeamMatch_Success(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "a", "b", "c", "d", "e", "f")
	_, err := b.APIPtr.OnboardTeam("Xylem Raiders", []string{"a", "b", "c"})
	require.NoError(t, err)
	_, err = b.APIPtr.OnboardTeam("Ravens", []string{"d", "e", "f"})
	require.NoError(t, err)
	mockSession := NewMockDiscordSession()

	b.teamMatchHandler(mockSession, createMockMessage(`$teammatch "Xylem Raiders" Ravens`, "id-a", "a", "channel123"))

	content := mockSession.GetLastMessage().Content
	assert.Contains(t, content, "Match #1 (3v3 reg)")
	assert.Contains(t, content, "Alpha: Xylem Raiders")
	assert.Contains(t, content, "Beta: Ravens")
}

func TestTeamMatch_UnknownTeam(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.teamMatchHandler(mockSession, createMockMessage("$teammatch Koolish Ravens", "user123", "Hooli", "channel123"))

	assert.Contains(t, mockSession.GetLastMessage().Content, "Not found: team 'Koolish'")
}

// endregion

// region report tests

// TestReport_UpdatesStats tests reporting a 1v1 and reading the new ratings back
func TestReport_UpdatesStats(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "Hooli", "Kraydle")
	mockSession := NewMockDiscordSession()
	b.queueHandler(mockSession, createMockMessage("$queue 1v1", "id-Hooli", "Hooli", "channel123"))
	b.queueHandler(mockSession, createMockMessage("$queue 1v1", "id-Kraydle", "Kraydle", "channel123"))

	b.reportHandler(mockSession, createMockMessage("$report 1 Hooli", "id-Hooli", "Hooli", "channel123"))
	assert.Equal(t, "Match #1 won by Hooli", mockSession.GetLastMessage().Content)

	b.statsHandler(mockSession, createMockMessage("$stats", "id-Hooli", "Hooli", "channel123"))
	assert.Contains(t, mockSession.GetLastMessage().Content, "1v1: 840 (C) 1W/0L ratio ∞")

	b.statsHandler(mockSession, createMockMessage("$stats Kraydle", "id-Hooli", "Hooli", "channel123"))
	assert.Contains(t, mockSession.GetLastMessage().Content, "1v1: 810 (C) 0W/1L ratio 0.00")
}

func TestReport_AlreadyCompleted(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "Hooli", "Kraydle")
	mockSession := NewMockDiscordSession()
	b.queueHandler(mockSession, createMockMessage("$queue 1v1", "id-Hooli", "Hooli", "channel123"))
	b.queueHandler(mockSession, createMockMessage("$queue 1v1", "id-Kraydle", "Kraydle", "channel123"))
	b.reportHandler(mockSession, createMockMessage("$report 1 Hooli", "id-Hooli", "Hooli", "channel123"))

	b.reportHandler(mockSession, createMockMessage("$report 1 Kraydle", "id-Hooli", "Hooli", "channel123"))

	assert.Equal(t, "That match has already been reported", mockSession.GetLastMessage().Content)
}

func TestReport_BadID(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.reportHandler(mockSession, createMockMessage("$report one Hooli", "user123", "Hooli", "channel123"))

	assert.Equal(t, "'one' is not a match id", mockSession.GetLastMessage().Content)
}

func TestReport_UnknownMatch(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.reportHandler(mockSession, createMockMessage("$report 7 Hooli", "user123", "Hooli", "channel123"))

	assert.Equal(t, "Not found: match 7", mockSession.GetLastMessage().Content)
}

// endregion

// region cancel and match tests

func TestCancel_Success(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "Hooli", "Kraydle")
	mockSession := NewMockDiscordSession()
	b.queueHandler(mockSession, createMockMessage("$queue 1v1", "id-Hooli", "Hooli", "channel123"))
	b.queueHandler(mockSession, createMockMessage("$queue 1v1", "id-Kraydle", "Kraydle", "channel123"))

	b.cancelHandler(mockSession, createMockMessage("$cancel 1", "id-Hooli", "Hooli", "channel123"))
	assert.Equal(t, "Match #1 cancelled", mockSession.GetLastMessage().Content)

	b.matchHandler(mockSession, createMockMessage("$match 1", "id-Hooli", "Hooli", "channel123"))
	assert.Equal(t, "Not found: match 1", mockSession.GetLastMessage().Content)
}

func TestMatch_Shows(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "Hooli", "Kraydle")
	mockSession := NewMockDiscordSession()
	b.queueHandler(mockSession, createMockMessage("$queue 1v1", "id-Hooli", "Hooli", "channel123"))
	b.queueHandler(mockSession, createMockMessage("$queue 1v1", "id-Kraydle", "Kraydle", "channel123"))

	b.matchHandler(mockSession, createMockMessage("$match 1", "id-Hooli", "Hooli", "channel123"))

	content := mockSession.GetLastMessage().Content
	assert.Contains(t, content, "Match #1 (1v1)")
	assert.Contains(t, content, "Status: pending")
}

// endregion

// region stats tests

func TestStats_NotOnboarded(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.statsHandler(mockSession, createMockMessage("$stats", "user123", "Hooli", "channel123"))

	assert.Equal(t, "You need to `$onboard` first", mockSession.GetLastMessage().Content)
}

func TestStats_UnknownSuggests(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "RamenRook")
	mockSession := NewMockDiscordSession()

	b.statsHandler(mockSession, createMockMessage("$stats ramen", "user123", "Hooli", "channel123"))

	assert.Contains(t, mockSession.GetLastMessage().Content, "Did you mean: RamenRook?")
}

func TestTeamStats_Success(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "a", "b", "c")
	_, err := b.APIPtr.OnboardTeam("Koolish", []string{"a", "b", "c"})
	require.NoError(t, err)
	mockSession := NewMockDiscordSession()

	b.teamStatsHandler(mockSession, createMockMessage("$teamstats Koolish", "user123", "Hooli", "channel123"))

	assert.Equal(t, "**Koolish**: a, b, c\nRating: 825 (C) 0W/0L ratio 0.00\n", mockSession.GetLastMessage().Content)
}

// endregion

// region leaderboard tests

func TestLeaderboard_Empty(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.leaderboardHandler(mockSession, createMockMessage("$leaderboard 1v1", "user123", "Hooli", "channel123"))

	assert.Equal(t, "Nobody is on the leaderboard yet", mockSession.GetLastMessage().Content)
}

func TestLeaderboard_Success(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "Hooli", "Kraydle", "Risa")
	mockSession := NewMockDiscordSession()

	b.leaderboardHandler(mockSession, createMockMessage("$leaderboard 1v1 2", "user123", "Hooli", "channel123"))

	content := mockSession.GetLastMessage().Content
	assert.Contains(t, content, "Leaderboard:")
	assert.Contains(t, content, "1. ")
	assert.Contains(t, content, "2. ")
	assert.NotContains(t, content, "3. ")
}

func TestLeaderboard_InvalidCount(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.leaderboardHandler(mockSession, createMockMessage("$leaderboard 1v1 -3", "user123", "Hooli", "channel123"))

	assert.Equal(t, "'-3' is not a positive number", mockSession.GetLastMessage().Content)
}

// endregion

// region queues tests

func TestQueues_ListsEveryFormat(t *testing.T) {
	b := createTestBot(t)
	onboardUsers(t, b, "Hooli")
	mockSession := NewMockDiscordSession()
	b.queueHandler(mockSession, createMockMessage("$queue flex true", "id-Hooli", "Hooli", "channel123"))

	b.queuesHandler(mockSession, createMockMessage("$queues", "user123", "Hooli", "channel123"))

	content := mockSession.GetLastMessage().Content
	assert.Contains(t, content, "1v1 (0 waiting)")
	assert.Contains(t, content, "3v3 flex (1 waiting)\n- Hooli 825 (C) restricted")
	assert.Contains(t, content, "3v3 reg (0 waiting)")
}

// endregion

// region message formatting tests

func TestDisplayRank_SS(t *testing.T) {
	assert.Equal(t, "SS_1800", displayRank("SS", 1800))
	assert.Equal(t, "A", displayRank("A", 1300))
}

// TestErrorMessage_Unexpected tests that unknown errors are not echoed to the channel
func TestErrorMessage_Unexpected(t *testing.T) {
	b := createTestBot(t)

	assert.Equal(t, "An unexpected error occured", b.errorMessage(errors.New("connection reset"), ""))
}

// TestErrorMessage_ParticipantInMatch tests that a refused removal names the match in the way
func TestErrorMessage_ParticipantInMatch(t *testing.T) {
	b := createTestBot(t)
	err := fmt.Errorf("%w: Hooli is in match 3, cancel it first", shared.ErrParticipantInMatch)

	assert.Equal(t, "Still playing: Hooli is in match 3, cancel it first", b.errorMessage(err, "Hooli"))
}

// endregion

// region newMessage tests

// TestNewMessage_IgnoresBotMessages tests that the bot does not respond to itself
func TestNewMessage_IgnoresBotMessages(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()
	message := createMockMessage("$help", "bot123", "PickemsBot", "channel123")

	b.newMessageHandler(mockSession, message, "bot123")

	assert.Empty(t, mockSession.SentMessages)
}

func TestNewMessage_RoutesHelpCommand(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.newMessageHandler(mockSession, createMockMessage("$HELP", "user123", "Hooli", "channel123"), "bot123")

	assert.Contains(t, mockSession.GetLastMessage().Content, "Ravens Nest Matchmaking")
}

func TestNewMessage_RoutesQueuesCommand(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.newMessageHandler(mockSession, createMockMessage("$queues", "user123", "Hooli", "channel123"), "bot123")

	assert.Contains(t, mockSession.GetLastMessage().Content, "1v1 (0 waiting)")
}

func TestNewMessage_IgnoresUnknownCommands(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	b.newMessageHandler(mockSession, createMockMessage("$unknown", "user123", "Hooli", "channel123"), "bot123")
	b.newMessageHandler(mockSession, createMockMessage("hello there", "user123", "Hooli", "channel123"), "bot123")

	assert.Empty(t, mockSession.SentMessages)
}

// TestNewMessage_RateLimited tests that a user spamming commands is told to slow down
func TestNewMessage_RateLimited(t *testing.T) {
	b := createTestBot(t)
	mockSession := NewMockDiscordSession()

	for i := 0; i < defaultCommandBurst+1; i++ {
		b.newMessageHandler(mockSession, createMockMessage("$help", "user123", "Hooli", "channel123"), "bot123")
	}

	require.Len(t, mockSession.SentMessages, defaultCommandBurst+1)
	assert.Equal(t, "Hooli, slow down a little", mockSession.GetLastMessage().Content)
}

// endregion
