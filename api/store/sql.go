/* sql.go
 * Contains the SQL backed store used when no MongoDB instance is configured. SQLite is the default, a postgres:// URI
 * selects PostgreSQL
 * Authors: Ahasuerus
 */

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ravens-nest/api/match"
	"ravens-nest/api/registry"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type playerRow struct {
	Name          string `gorm:"primaryKey;size:64"`
	ExternalID    string `gorm:"size:32"`
	Team          string `gorm:"size:64"`
	SinglesRating int
	TeamsRating   int
	SinglesRank   string `gorm:"size:4"`
	TeamsRank     string `gorm:"size:4"`
	SinglesWins   int
	SinglesLosses int
	TeamsWins     int
	TeamsLosses   int
	Position      int
}

func (playerRow) TableName() string { return "players" }

type teamRow struct {
	Name     string   `gorm:"primaryKey;size:64"`
	Members  []string `gorm:"serializer:json"`
	Rating   int
	Rank     string `gorm:"size:4"`
	Wins     int
	Losses   int
	Position int
}

func (teamRow) TableName() string { return "teams" }

type matchRow struct {
	ID        uint64   `gorm:"primaryKey;autoIncrement:false"`
	Format    string   `gorm:"size:16"`
	Map       string   `gorm:"size:64"`
	Keyword   string   `gorm:"size:16"`
	Status    string   `gorm:"size:16"`
	Alpha     []string `gorm:"serializer:json"`
	Beta      []string `gorm:"serializer:json"`
	Winners   []string `gorm:"serializer:json"`
	Losers    []string `gorm:"serializer:json"`
	CreatedAt time.Time
}

func (matchRow) TableName() string { return "matches" }

type SQLStore struct {
	DB *gorm.DB
}

// NewSQLStore opens the database named by uri and migrates the tables
// Preconditions: Receives a postgres:// or postgresql:// URI, or a SQLite path optionally prefixed with sqlite://
// Postconditions: Returns the store, or an error if the database cannot be opened or migrated
func NewSQLStore(uri string) (*SQLStore, error) {
	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		dialector = postgres.Open(uri)
	default:
		path := strings.TrimPrefix(uri, "sqlite://")
		if path == "" {
			return nil, fmt.Errorf("sqlite path cannot be empty")
		}
		dialector = sqlite.Open(path)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&playerRow{}, &teamRow{}, &matchRow{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return &SQLStore{DB: db}, nil
}

// Close closes the underlying connection pool
func (s *SQLStore) Close(_ context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// replaceRows swaps the whole content of a table for rows in one transaction
func replaceRows[T any](ctx context.Context, db *gorm.DB, rows []T) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var zero T
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&zero).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// SavePlayers replaces the stored players
func (s *SQLStore) SavePlayers(ctx context.Context, players []registry.PlayerRecord) error {
	rows := make([]playerRow, 0, len(players))
	for i, p := range players {
		rows = append(rows, playerRow{
			Name:          p.Name,
			ExternalID:    p.ID,
			Team:          p.Team,
			SinglesRating: p.SinglesRating,
			TeamsRating:   p.TeamsRating,
			SinglesRank:   p.SinglesRank,
			TeamsRank:     p.TeamsRank,
			SinglesWins:   p.SinglesWins,
			SinglesLosses: p.SinglesLosses,
			TeamsWins:     p.TeamsWins,
			TeamsLosses:   p.TeamsLosses,
			Position:      i,
		})
	}
	if err := replaceRows(ctx, s.DB, rows); err != nil {
		return fmt.Errorf("saving players failed: %w", err)
	}
	return nil
}

// LoadPlayers returns every stored player in registry order
func (s *SQLStore) LoadPlayers(ctx context.Context) ([]registry.PlayerRecord, error) {
	var rows []playerRow
	if err := s.DB.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error fetching players: %w", err)
	}
	players := make([]registry.PlayerRecord, 0, len(rows))
	for _, r := range rows {
		players = append(players, registry.PlayerRecord{
			ID:            r.ExternalID,
			Name:          r.Name,
			Team:          r.Team,
			SinglesRating: r.SinglesRating,
			TeamsRating:   r.TeamsRating,
			SinglesRank:   r.SinglesRank,
			TeamsRank:     r.TeamsRank,
			SinglesWins:   r.SinglesWins,
			SinglesLosses: r.SinglesLosses,
			TeamsWins:     r.TeamsWins,
			TeamsLosses:   r.TeamsLosses,
		})
	}
	return players, nil
}

// SaveTeams replaces the stored teams
func (s *SQLStore) SaveTeams(ctx context.Context, teams []registry.TeamRecord) error {
	rows := make([]teamRow, 0, len(teams))
	for i, t := range teams {
		rows = append(rows, teamRow{
			Name:     t.Name,
			Members:  t.Members[:],
			Rating:   t.Rating,
			Rank:     t.Rank,
			Wins:     t.Wins,
			Losses:   t.Losses,
			Position: i,
		})
	}
	if err := replaceRows(ctx, s.DB, rows); err != nil {
		return fmt.Errorf("saving teams failed: %w", err)
	}
	return nil
}

// LoadTeams returns every stored team in registry order
func (s *SQLStore) LoadTeams(ctx context.Context) ([]registry.TeamRecord, error) {
	var rows []teamRow
	if err := s.DB.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error fetching teams: %w", err)
	}
	teams := make([]registry.TeamRecord, 0, len(rows))
	for _, r := range rows {
		record := registry.TeamRecord{
			Name:   r.Name,
			Rating: r.Rating,
			Rank:   r.Rank,
			Wins:   r.Wins,
			Losses: r.Losses,
		}
		if len(r.Members) != len(record.Members) {
			return nil, fmt.Errorf("team %s has %d members stored", r.Name, len(r.Members))
		}
		copy(record.Members[:], r.Members)
		teams = append(teams, record)
	}
	return teams, nil
}

// SaveMatches replaces the stored match log
func (s *SQLStore) SaveMatches(ctx context.Context, matches []match.Record) error {
	rows := make([]matchRow, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, matchRow{
			ID:        m.ID,
			Format:    m.Format,
			Map:       m.Map,
			Keyword:   m.Keyword,
			Status:    m.Status,
			Alpha:     m.Alpha,
			Beta:      m.Beta,
			Winners:   m.Winners,
			Losers:    m.Losers,
			CreatedAt: m.CreatedAt,
		})
	}
	if err := replaceRows(ctx, s.DB, rows); err != nil {
		return fmt.Errorf("saving matches failed: %w", err)
	}
	return nil
}

// LoadMatches returns every stored match ordered by id
func (s *SQLStore) LoadMatches(ctx context.Context) ([]match.Record, error) {
	var rows []matchRow
	if err := s.DB.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error fetching matches: %w", err)
	}
	matches := make([]match.Record, 0, len(rows))
	for _, r := range rows {
		matches = append(matches, match.Record{
			ID:        r.ID,
			Format:    r.Format,
			Map:       r.Map,
			Keyword:   r.Keyword,
			Status:    r.Status,
			Alpha:     r.Alpha,
			Beta:      r.Beta,
			Winners:   r.Winners,
			Losers:    r.Losers,
			CreatedAt: r.CreatedAt,
		})
	}
	return matches, nil
}
