/* mock_session.go
 * Contains mock implementation of DiscordSession for testing
 * Authors: Ahasuerus
 */

package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sasha-s/go-deadlock"
)

// MockDiscordSession records every reply instead of sending it
type MockDiscordSession struct {
	mutex deadlock.Mutex
	// SentMessages stores all messages sent during tests
	SentMessages []MockMessage
	// ErrorToReturn allows tests to simulate errors
	ErrorToReturn error
}

// MockMessage represents a message sent to a channel
type MockMessage struct {
	ChannelID string
	Content   string
}

// ChannelMessageSend implements DiscordSession.ChannelMessageSend
func (m *MockDiscordSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.SentMessages = append(m.SentMessages, MockMessage{
		ChannelID: channelID,
		Content:   content,
	})

	return &discordgo.Message{
		ID:        "mock_message_id",
		ChannelID: channelID,
		Content:   content,
	}, nil
}

// GetLastMessage returns the last message sent, or empty MockMessage if none
func (m *MockDiscordSession) GetLastMessage() MockMessage {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if len(m.SentMessages) == 0 {
		return MockMessage{}
	}
	return m.SentMessages[len(m.SentMessages)-1]
}

// Transcript joins every reply, in order, for assertions that span several messages
func (m *MockDiscordSession) Transcript() string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	contents := make([]string, len(m.SentMessages))
	for i, msg := range m.SentMessages {
		contents[i] = msg.Content
	}
	return strings.Join(contents, "\n")
}

// ClearMessages clears all stored messages
func (m *MockDiscordSession) ClearMessages() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.SentMessages = nil
}

// NewMockDiscordSession creates a new MockDiscordSession for testing
func NewMockDiscordSession() *MockDiscordSession {
	return &MockDiscordSession{
		SentMessages: make([]MockMessage, 0),
	}
}
