/* errors.go
 * Contains the error taxonomy shared by the registry, match and queue packages. Callers should wrap these with
 * fmt.Errorf("%w: ...") and check them with errors.Is
 * Authors: Ahasuerus
 */

package shared

import "errors"

var (
	// ErrDuplicateKey is returned when adding an entity whose name or id already exists
	ErrDuplicateKey = errors.New("already exists")
	// ErrNotFound is returned on lookup or removal of an absent entity
	ErrNotFound = errors.New("not found")
	// ErrAlreadyQueued is returned when a participant already has a waiting entry in a queue
	ErrAlreadyQueued = errors.New("already queued")
	// ErrPartyEnqueueNotAllowed is returned when a party is queued for a format without parties
	ErrPartyEnqueueNotAllowed = errors.New("party queueing is not allowed for this format")
	// ErrInvalidQueueOperation is returned when an individual is queued for teams or a team for individuals
	ErrInvalidQueueOperation = errors.New("invalid queue operation for format")
	// ErrAlreadyCompleted is returned when a result is reported for a completed match
	ErrAlreadyCompleted = errors.New("match already completed")
	// ErrInvalidFormat is returned for unsupported format strings
	ErrInvalidFormat = errors.New("invalid format")
	// ErrInvalidSideComposition is returned when match sides do not have the shape the format requires
	ErrInvalidSideComposition = errors.New("invalid side composition")
	// ErrParticipantInMatch is returned when removing a player or team that a logged match still refers to
	ErrParticipantInMatch = errors.New("participant is in a logged match")
)
