package wardrobe

import (
	"context"
	"errors"
)

// ErrItemNotFound is returned when an item id does not exist.
var ErrItemNotFound = errors.New("item not found")

// Repository persists the clothing inventory.
type Repository interface {
	// ListActive returns every item that has not been archived, ordered by id.
	ListActive(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id int64) (Item, bool, error)
	Add(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, item Item) (Item, error)
	Archive(ctx context.Context, id int64) error
}

// OutfitRepository persists outfits the user saved.
type OutfitRepository interface {
	SaveOutfit(ctx context.Context, outfit SavedOutfit) (SavedOutfit, error)
	ListOutfits(ctx context.Context) ([]SavedOutfit, error)
}

// PreferenceStore reads and writes the user's preferences.
type PreferenceStore interface {
	Load(ctx context.Context) (Preferences, bool, error)
	Save(ctx context.Context, prefs Preferences) error
}

// ImageStorage keeps item photos and returns a URL clients can fetch.
type ImageStorage interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (string, error)
}
