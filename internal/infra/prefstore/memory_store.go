package prefstore

import (
	"context"
	"sync"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
)

// MemoryStore keeps preferences in process.
type MemoryStore struct {
	mu    sync.RWMutex
	prefs *wardrobe.Preferences
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (wardrobe.Preferences, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.prefs == nil {
		return wardrobe.Preferences{}, false, nil
	}
	return clonePreferences(*s.prefs), true, nil
}

func (s *MemoryStore) Save(_ context.Context, prefs wardrobe.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := clonePreferences(prefs)
	s.prefs = &stored
	return nil
}

func clonePreferences(p wardrobe.Preferences) wardrobe.Preferences {
	p.Seasons = append([]string(nil), p.Seasons...)
	return p
}

var _ wardrobe.PreferenceStore = (*MemoryStore)(nil)
