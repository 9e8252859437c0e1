/* session_interface.go
 * Contains interface for Discord session to enable mocking in tests
 * Authors: Ahasuerus
 */

package bot

import "github.com/bwmarrin/discordgo"

// DiscordSession is the part of a Discord session the command handlers reply through
type DiscordSession interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Ensure *discordgo.Session implements DiscordSession
var _ DiscordSession = (*discordgo.Session)(nil)
