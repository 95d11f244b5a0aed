package imagestore

import (
	"context"
	"strings"
	"sync"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
)

// MemoryStorage keeps images in memory. Useful for tests and local dev.
type MemoryStorage struct {
	mu      sync.RWMutex
	baseURL string
	blobs   map[string]storedImage
}

type storedImage struct {
	data     []byte
	mimeType string
}

// NewMemoryStorage constructs storage whose URLs are rooted at baseURL.
func NewMemoryStorage(baseURL string) *MemoryStorage {
	if baseURL == "" {
		baseURL = "memory://images"
	}
	return &MemoryStorage{baseURL: strings.TrimRight(baseURL, "/"), blobs: make(map[string]storedImage)}
}

// Put stores a copy of the image and returns its URL.
func (s *MemoryStorage) Put(_ context.Context, key string, data []byte, mimeType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = storedImage{data: append([]byte(nil), data...), mimeType: mimeType}
	return s.baseURL + "/" + key, nil
}

// Get returns the stored bytes and content type.
func (s *MemoryStorage) Get(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	return blob.data, blob.mimeType, ok
}

var _ wardrobe.ImageStorage = (*MemoryStorage)(nil)
