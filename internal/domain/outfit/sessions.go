package outfit

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	history  *History
	lastSeen time.Time
}

// sessionRegistry owns the recently-shown history of every live session. Sessions idle for
// longer than ttl are dropped, and the least recently used one is evicted past max.
type sessionRegistry struct {
	mu          sync.Mutex
	sessions    map[string]*session
	historySize int
	max         int
	ttl         time.Duration
	now         func() time.Time
}

func newSessionRegistry(historySize, max int, ttl time.Duration) *sessionRegistry {
	if max <= 0 {
		max = 1024
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &sessionRegistry{
		sessions:    make(map[string]*session),
		historySize: historySize,
		max:         max,
		ttl:         ttl,
		now:         time.Now,
	}
}

// acquire returns the history for id, creating the session when needed. Ids that are not
// valid UUIDs are replaced by a fresh one.
func (r *sessionRegistry) acquire(id string) (string, *History) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.cleanupLocked(now)

	if s, ok := r.sessions[id]; ok {
		s.lastSeen = now
		return id, s.history
	}
	if len(r.sessions) >= r.max {
		r.evictOldestLocked()
	}
	s := &session{history: NewHistory(r.historySize), lastSeen: now}
	r.sessions[id] = s
	return id, s.history
}

func (r *sessionRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *sessionRegistry) cleanupLocked(now time.Time) {
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.ttl {
			delete(r.sessions, id)
		}
	}
}

func (r *sessionRegistry) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, s := range r.sessions {
		if oldestID == "" || s.lastSeen.Before(oldest) {
			oldestID = id
			oldest = s.lastSeen
		}
	}
	delete(r.sessions, oldestID)
}
