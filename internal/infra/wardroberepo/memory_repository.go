package wardroberepo

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
)

// MemoryRepository keeps the inventory and saved outfits in process. Useful for tests and
// local dev.
type MemoryRepository struct {
	mu        sync.RWMutex
	items     map[int64]wardrobe.Item
	outfits   []wardrobe.SavedOutfit
	seq       int64
	outfitSeq int64
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[int64]wardrobe.Item)}
}

// ListActive returns non-archived items ordered by id.
func (r *MemoryRepository) ListActive(_ context.Context) ([]wardrobe.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]wardrobe.Item, 0, len(r.items))
	for _, item := range r.items {
		if !item.Archived {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns the item by id, archived or not.
func (r *MemoryRepository) Get(_ context.Context, id int64) (wardrobe.Item, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	return item, ok, nil
}

// Add assigns the next id and stores the item.
func (r *MemoryRepository) Add(_ context.Context, item wardrobe.Item) (wardrobe.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	item.ID = r.seq
	r.items[item.ID] = item
	return item, nil
}

// Update replaces an existing item.
func (r *MemoryRepository) Update(_ context.Context, item wardrobe.Item) (wardrobe.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return wardrobe.Item{}, wardrobe.ErrItemNotFound
	}
	r.items[item.ID] = item
	return item, nil
}

// Archive flags the item as archived. Archiving twice reports not found.
func (r *MemoryRepository) Archive(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.Archived {
		return wardrobe.ErrItemNotFound
	}
	item.Archived = true
	r.items[id] = item
	return nil
}

// SaveOutfit stores a saved outfit.
func (r *MemoryRepository) SaveOutfit(_ context.Context, outfit wardrobe.SavedOutfit) (wardrobe.SavedOutfit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outfitSeq++
	outfit.ID = r.outfitSeq
	outfit.ItemIDs = append([]int64(nil), outfit.ItemIDs...)
	r.outfits = append(r.outfits, outfit)
	return outfit, nil
}

// ListOutfits returns saved outfits, newest first.
func (r *MemoryRepository) ListOutfits(_ context.Context) ([]wardrobe.SavedOutfit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]wardrobe.SavedOutfit, 0, len(r.outfits))
	for i := len(r.outfits) - 1; i >= 0; i-- {
		out = append(out, r.outfits[i])
	}
	return out, nil
}

var (
	_ wardrobe.Repository       = (*MemoryRepository)(nil)
	_ wardrobe.OutfitRepository = (*MemoryRepository)(nil)
)
