/* models.go
 * This file contain the structs returned to api consumers. They are plain data snapshots so front ends never hold
 * references into the registries
 * Authors: Ahasuerus
 */

package api

import (
	"time"

	"ravens-nest/api/match"
)

// Settings holds the matchmaking parameters and map pools the API runs with
type Settings struct {
	BaseEloDiff int
	MaxEloDiff  int
	KFactor     int
	Pools       match.MapPools
}

// PlayerStats is a player snapshot with the derived win/loss ratios
type PlayerStats struct {
	ID            string
	Name          string
	Team          string
	SinglesRating int
	SinglesRank   string
	SinglesWins   int
	SinglesLosses int
	SinglesRatio  float64
	TeamsRating   int
	TeamsRank     string
	TeamsWins     int
	TeamsLosses   int
	TeamsRatio    float64
}

// TeamStats is a registered team snapshot
type TeamStats struct {
	Name    string
	Members []string
	Rating  int
	Rank    string
	Wins    int
	Losses  int
	Ratio   float64
}

// QueueEntry is a waiting queue entry
type QueueEntry struct {
	Name           string    `json:"name"`
	Rating         int       `json:"rating"`
	Rank           string    `json:"rank"`
	RankRestricted bool      `json:"rankRestricted"`
	PartyID        string    `json:"partyId,omitempty"`
	QueuedAt       time.Time `json:"queuedAt"`
}

// LeaderboardEntry is one row of a format's leaderboard
type LeaderboardEntry struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Rating   int    `json:"rating"`
	Rank     string `json:"rank"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}
