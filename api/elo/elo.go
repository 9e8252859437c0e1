/* elo.go
 * Contains the rating model: expected score, the rating transfer applied when a match result is reported, and the
 * mapping from rating to rank tier. Everything in this file is a pure function of its inputs
 * Authors: Ahasuerus
 */

package elo

import "math"

const (
	// MinRating and MaxRating bound every rating in the system
	MinRating = 100
	MaxRating = 2200
	// DefaultK is the K-Factor used when the configuration does not set one
	DefaultK = 30
	// Scale is the logistic deviation
	Scale = 400
	// InitialRating is the midpoint of the C band, the starting rating for every new player and team
	InitialRating = 825
)

// Clamp restricts a rating to [MinRating, MaxRating]
func Clamp(rating int) int {
	if rating < MinRating {
		return MinRating
	}
	if rating > MaxRating {
		return MaxRating
	}
	return rating
}

// ExpectedScore gives the expected chance that a player rated ratingA beats a player rated ratingB.
// ExpectedScore(a, b) + ExpectedScore(b, a) is always 1.
func ExpectedScore(ratingA, ratingB int) float64 {
	return 1 / (1 + math.Pow(10, float64(Clamp(ratingB)-Clamp(ratingA))/Scale))
}

// ApplyResult computes the new ratings of both players after winner beat loser
// Preconditions: Receives the current ratings of the winner and loser, and the K-Factor. Out of range ratings are
// clamped before use, a non positive k falls back to DefaultK
// Postconditions: Returns the new winner and loser ratings, rounded and clamped to [MinRating, MaxRating]
func ApplyResult(winner, loser, k int) (int, int) {
	if k <= 0 {
		k = DefaultK
	}
	winner = Clamp(winner)
	loser = Clamp(loser)

	newWinner := math.Round(float64(winner) + float64(k)*(1-ExpectedScore(winner, loser)))
	newLoser := math.Round(float64(loser) + float64(k)*(0-ExpectedScore(loser, winner)))

	return Clamp(int(newWinner)), Clamp(int(newLoser))
}
