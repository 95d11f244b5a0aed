package prefstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	prefs := wardrobe.Preferences{BodyType: "Athletic", Style: "Sporty", Comfort: 5, Seasons: []string{"Summer"}}
	require.NoError(t, store.Save(ctx, prefs))
	prefs.Seasons[0] = "Winter"

	loaded, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"Summer"}, loaded.Seasons)
	require.Equal(t, "Sporty", loaded.Style)
}
