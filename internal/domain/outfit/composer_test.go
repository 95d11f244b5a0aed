package outfit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
)

func signaturesOf(combos [][]wardrobe.Item) []Signature {
	out := make([]Signature, 0, len(combos))
	for _, combo := range combos {
		out = append(out, SignatureOf(combo))
	}
	return out
}

func TestComposeGenerationOrder(t *testing.T) {
	items := []wardrobe.Item{
		newItem(1, "Top", "Black", "All", 3),
		newItem(2, "Bottom", "Blue", "All", 3),
		newItem(3, "Outerwear", "Navy", "All", 3),
		newItem(4, "Shoes", "White", "All", 3),
		newItem(5, "Accessory", "Red", "All", 3),
	}

	got := signaturesOf(Compose(items))
	require.Equal(t, []Signature{"1,2", "1,2,3", "1,2,4", "1,2,3,4", "1,2,5"}, got)
}

func TestComposeCrossProduct(t *testing.T) {
	items := []wardrobe.Item{
		newItem(1, "TOP", "Black", "All", 3),
		newItem(2, "top", "White", "All", 3),
		newItem(3, "Bottom", "Blue", "All", 3),
		newItem(4, "bottom", "Khaki", "All", 3),
		newItem(5, "Shoes", "Brown", "All", 3),
	}

	combos := Compose(items)
	require.Len(t, combos, 8)
	for _, combo := range combos {
		require.True(t, combo[0].IsCategory(wardrobe.CategoryTop))
		require.True(t, combo[1].IsCategory(wardrobe.CategoryBottom))
	}
}

func TestComposeCollapsesDuplicateItems(t *testing.T) {
	top := newItem(1, "Top", "Black", "All", 3)
	items := []wardrobe.Item{top, top, newItem(2, "Bottom", "Blue", "All", 3)}

	require.Equal(t, []Signature{"1,2"}, signaturesOf(Compose(items)))
}

func TestComposeNeedsTopAndBottom(t *testing.T) {
	require.Empty(t, Compose([]wardrobe.Item{newItem(1, "Top", "Black", "All", 3)}))
	require.Empty(t, Compose([]wardrobe.Item{newItem(1, "Bottom", "Black", "All", 3), newItem(2, "Shoes", "Black", "All", 3)}))
	require.Empty(t, Compose(nil))
}
