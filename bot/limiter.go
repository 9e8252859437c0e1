/* limiter.go
 * Contains the per-user command rate limiter
 * Authors: Ahasuerus
 */

package bot

import (
	"time"

	"github.com/sasha-s/go-deadlock"
	"golang.org/x/time/rate"
)

const (
	defaultCommandRate  = rate.Limit(1)
	defaultCommandBurst = 3
	// limiters unused for this long are dropped
	limiterIdleTimeout = 10 * time.Minute
)

type userEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// userLimiter hands each Discord user their own token bucket
type userLimiter struct {
	mutex deadlock.Mutex
	users map[string]*userEntry
	limit rate.Limit
	burst int
	now   func() time.Time
}

func newUserLimiter(limit rate.Limit, burst int) *userLimiter {
	return &userLimiter{
		users: make(map[string]*userEntry),
		limit: limit,
		burst: burst,
		now:   time.Now,
	}
}

// Allow reports whether userID may run a command now and spends a token if so
func (l *userLimiter) Allow(userID string) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := l.now()
	for id, entry := range l.users {
		if now.Sub(entry.lastSeen) > limiterIdleTimeout {
			delete(l.users, id)
		}
	}

	entry, ok := l.users[userID]
	if !ok {
		entry = &userEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.users[userID] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}
