package outfit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
)

func TestExplainItem(t *testing.T) {
	prefs := casualWinter()
	tests := []struct {
		name string
		item wardrobe.Item
		want string
	}{
		{
			name: "preferred season exact comfort",
			item: newItem(1, "Top", "Black", "Winter", 3),
			want: "Perfect for your preferred winter season. matches your comfort level exactly. black adds timeless sophistication to your look.",
		},
		{
			name: "all season and comfy casual",
			item: newItem(2, "Bottom", "Blue", "All", 4),
			want: "Versatile all-season piece. exceeds your comfort preference. great casual pick for everyday wear. blue adds calm versatility to your look.",
		},
		{
			name: "off season slightly less comfortable",
			item: newItem(3, "Top", "Teal", "Summer", 2),
			want: "Suited for summer weather. slightly below your usual comfort preference. teal adds unique character to your look.",
		},
		{
			name: "style over comfort",
			item: newItem(4, "Shoes", "Red", "Fall", 1),
			want: "Suited for fall weather. prioritizes style over comfort. red adds bold energy to your look.",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ExplainItem(tc.item, prefs))
		})
	}
}

func TestExplainItemStyleNotes(t *testing.T) {
	outer := newItem(1, "Outerwear", "Navy", "Winter", 3)
	require.Contains(t, ExplainItem(outer, wardrobe.Preferences{Style: "Formal", Comfort: 3}), "adds a formal finishing touch")
	require.Contains(t, ExplainItem(outer, wardrobe.Preferences{Style: "Streetwear", Comfort: 3}), "streetwear rotation")
	require.NotContains(t, ExplainItem(outer, wardrobe.Preferences{Style: "Sporty", Comfort: 3}), "active lifestyle")
}

func TestExplainOutfit(t *testing.T) {
	items := []wardrobe.Item{
		newItem(1, "Top", "Black", "Winter", 3),
		newItem(2, "Bottom", "Blue", "All", 4),
	}

	got := ExplainOutfit(items, 2.6, casualWinter())
	require.Equal(t, "Outfit: Black Top + Blue Bottom. "+
		"Great match for your preferred Winter season. "+
		"Excellent comfort level for your preference. "+
		"A single blue accent on a neutral base looks classic and polished. "+
		"Fits a relaxed, casual vibe. "+
		"Highly recommended.", got)
}

func TestExplainOutfitSeasonAndComfortPhrases(t *testing.T) {
	allSeason := []wardrobe.Item{
		newItem(1, "Top", "White", "All", 1),
		newItem(2, "Bottom", "Black", "All", 2),
	}
	got := ExplainOutfit(allSeason, 1.6, casualWinter())
	require.Contains(t, got, "All pieces are season-versatile")
	require.Contains(t, got, "Comfort is a trade-off for this outfit's style")
	require.Contains(t, got, "Good match")

	offSeason := []wardrobe.Item{
		newItem(1, "Top", "White", "Summer", 3),
		newItem(2, "Bottom", "Black", "Spring", 3),
	}
	got = ExplainOutfit(offSeason, 0.9, wardrobe.Preferences{Style: "Boho", Comfort: 3, Seasons: []string{"Winter"}})
	require.Contains(t, got, "Consider for summer/spring weather")
	require.Contains(t, got, "Comfort meets your preference well")
	require.Contains(t, got, "Worth trying")
	require.True(t, strings.HasSuffix(got, "."))
}

func TestExplainOutfitSingleItemOmitsHarmony(t *testing.T) {
	got := ExplainOutfit([]wardrobe.Item{newItem(1, "Shoes", "Black", "All", 3)}, 1.0, casualWinter())
	require.NotContains(t, got, "palette")
	require.NotContains(t, got, "..")
}
