/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 * Authors: Ahasuerus
 */

package store

import (
	"context"

	"ravens-nest/api/match"
	"ravens-nest/api/registry"
)

// Interface defines the persistence operations the API needs. Every Save replaces the stored set in full.
// This allows for mocking in tests.
type Interface interface {
	SavePlayers(ctx context.Context, players []registry.PlayerRecord) error
	LoadPlayers(ctx context.Context) ([]registry.PlayerRecord, error)
	SaveTeams(ctx context.Context, teams []registry.TeamRecord) error
	LoadTeams(ctx context.Context) ([]registry.TeamRecord, error)
	SaveMatches(ctx context.Context, matches []match.Record) error
	LoadMatches(ctx context.Context) ([]match.Record, error)
	Close(ctx context.Context) error
}

// Ensure both backends implement Interface
var (
	_ Interface = (*Store)(nil)
	_ Interface = (*SQLStore)(nil)
)
