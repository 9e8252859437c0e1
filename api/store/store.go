/* store.go
 * Contains the MongoDB backed Store and NewStore function. Players, teams and matches each live in their own
 * collection
 * Authors: Ahasuerus
 */

package store

import (
	"context"
	"fmt"
	"strings"

	"ravens-nest/api/match"
	"ravens-nest/api/registry"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Collections struct {
	Players *mongo.Collection
	Teams   *mongo.Collection
	Matches *mongo.Collection
}

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections Collections
}

// NewStore connects to MongoDB and sets the collection handles
// Preconditions: Receives the database name and a mongodb:// connection string
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(ctx context.Context, dbName string, mongoURI string) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("database name cannot be empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	return newStore(client, client.Database(dbName)), nil
}

func newStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Client:   client,
		Database: db,
		Collections: Collections{
			Players: db.Collection("players"),
			Teams:   db.Collection("teams"),
			Matches: db.Collection("matches"),
		},
	}
}

// Open picks a backend from the connection string: mongodb:// and mongodb+srv:// use MongoDB, anything else is
// handed to the SQL store
func Open(ctx context.Context, uri string, dbName string) (Interface, error) {
	if strings.HasPrefix(uri, "mongodb://") || strings.HasPrefix(uri, "mongodb+srv://") {
		return NewStore(ctx, dbName, uri)
	}
	return NewSQLStore(uri)
}

// Close disconnects the client
func (s *Store) Close(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}

// replace swaps the whole content of a collection for docs
func replace[T any](ctx context.Context, coll *mongo.Collection, docs []T) error {
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clearing %s failed: %w", coll.Name(), err)
	}
	if len(docs) == 0 {
		return nil
	}

	items := make([]interface{}, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc)
	}
	if _, err := coll.InsertMany(ctx, items); err != nil {
		return fmt.Errorf("%s insert failed: %w", coll.Name(), err)
	}
	log.Debug().Str("collection", coll.Name()).Int("count", len(docs)).Msg("collection saved")
	return nil
}

// fetch reads every document of a collection
func fetch[T any](ctx context.Context, coll *mongo.Collection) ([]T, error) {
	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", coll.Name(), err)
	}

	// Unpack the cursor into a slice
	results := []T{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of %s: %w", coll.Name(), err)
	}
	return results, nil
}

// SavePlayers replaces the stored players
func (s *Store) SavePlayers(ctx context.Context, players []registry.PlayerRecord) error {
	return replace(ctx, s.Collections.Players, players)
}

// LoadPlayers returns every stored player
func (s *Store) LoadPlayers(ctx context.Context) ([]registry.PlayerRecord, error) {
	return fetch[registry.PlayerRecord](ctx, s.Collections.Players)
}

// SaveTeams replaces the stored teams
func (s *Store) SaveTeams(ctx context.Context, teams []registry.TeamRecord) error {
	return replace(ctx, s.Collections.Teams, teams)
}

// LoadTeams returns every stored team
func (s *Store) LoadTeams(ctx context.Context) ([]registry.TeamRecord, error) {
	return fetch[registry.TeamRecord](ctx, s.Collections.Teams)
}

// SaveMatches replaces the stored match log
func (s *Store) SaveMatches(ctx context.Context, matches []match.Record) error {
	return replace(ctx, s.Collections.Matches, matches)
}

// LoadMatches returns every stored match ordered by id
func (s *Store) LoadMatches(ctx context.Context) ([]match.Record, error) {
	cursor, err := s.Collections.Matches.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error fetching matches: %w", err)
	}
	results := []match.Record{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of matches: %w", err)
	}
	return results, nil
}
