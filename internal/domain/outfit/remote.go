package outfit

import (
	"context"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
)

// Suggester is the optional remote text generator. Implementations must honour ctx.
type Suggester interface {
	// Suggest returns free-form text expected to contain OUTFIT/SCORE/EXPLANATION blocks.
	Suggest(ctx context.Context, items []wardrobe.Item, prefs wardrobe.Preferences) (string, error)
	// ExplainItem returns one or two sentences about how the item fits the preferences.
	ExplainItem(ctx context.Context, item wardrobe.Item, prefs wardrobe.Preferences) (string, error)
}

// Wardrobe is the slice of the wardrobe domain the recommendation service reads.
type Wardrobe interface {
	ActiveItems(ctx context.Context) ([]wardrobe.Item, error)
	GetItem(ctx context.Context, id int64) (wardrobe.Item, error)
	Preferences(ctx context.Context) (wardrobe.Preferences, error)
}
