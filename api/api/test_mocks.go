/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package
 * Authors: Ahasuerus
 */

package api

import (
	"context"

	"ravens-nest/api/match"
	"ravens-nest/api/registry"
	"ravens-nest/api/store"

	"github.com/sasha-s/go-deadlock"
)

// MockStore implements the Store interface in memory for testing
type MockStore struct {
	mutex deadlock.Mutex

	// Storage for mock data
	Players []registry.PlayerRecord
	Teams   []registry.TeamRecord
	Matches []match.Record

	// Number of completed SavePlayers calls
	Saves int

	// Error injection for testing error paths
	SavePlayersError error
	LoadPlayersError error
	SaveTeamsError   error
	LoadTeamsError   error
	SaveMatchesError error
	LoadMatchesError error
	Closed           bool
}

var _ store.Interface = (*MockStore)(nil)

// NewMockStore creates a new empty MockStore
func NewMockStore() *MockStore {
	return &MockStore{}
}

// SavePlayers mock implementation
func (m *MockStore) SavePlayers(_ context.Context, players []registry.PlayerRecord) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.SavePlayersError != nil {
		return m.SavePlayersError
	}
	m.Players = append([]registry.PlayerRecord(nil), players...)
	m.Saves++
	return nil
}

// LoadPlayers mock implementation
func (m *MockStore) LoadPlayers(_ context.Context) ([]registry.PlayerRecord, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.LoadPlayersError != nil {
		return nil, m.LoadPlayersError
	}
	return append([]registry.PlayerRecord(nil), m.Players...), nil
}

// SaveTeams mock implementation
func (m *MockStore) SaveTeams(_ context.Context, teams []registry.TeamRecord) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.SaveTeamsError != nil {
		return m.SaveTeamsError
	}
	m.Teams = append([]registry.TeamRecord(nil), teams...)
	return nil
}

// LoadTeams mock implementation
func (m *MockStore) LoadTeams(_ context.Context) ([]registry.TeamRecord, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.LoadTeamsError != nil {
		return nil, m.LoadTeamsError
	}
	return append([]registry.TeamRecord(nil), m.Teams...), nil
}

// SaveMatches mock implementation
func (m *MockStore) SaveMatches(_ context.Context, matches []match.Record) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.SaveMatchesError != nil {
		return m.SaveMatchesError
	}
	m.Matches = append([]match.Record(nil), matches...)
	return nil
}

// LoadMatches mock implementation
func (m *MockStore) LoadMatches(_ context.Context) ([]match.Record, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.LoadMatchesError != nil {
		return nil, m.LoadMatchesError
	}
	return append([]match.Record(nil), m.Matches...), nil
}

// Close mock implementation
func (m *MockStore) Close(_ context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Closed = true
	return nil
}

// SaveCount returns the number of successful saves so far
func (m *MockStore) SaveCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.Saves
}
