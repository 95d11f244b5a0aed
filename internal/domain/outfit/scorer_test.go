package outfit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
)

func TestWeightsSumToOne(t *testing.T) {
	require.InDelta(t, 1.0, WeightSeason+WeightComfort+WeightStyle+WeightHarmony+WeightCoverage, 1e-9)
}

func TestSeasonMatch(t *testing.T) {
	prefs := casualWinter()
	require.Equal(t, 1.0, SeasonMatch(newItem(1, "Top", "Black", "winter", 3), prefs))
	require.Equal(t, 0.8, SeasonMatch(newItem(1, "Top", "Black", "All", 3), prefs))
	require.Equal(t, 0.2, SeasonMatch(newItem(1, "Top", "Black", "Summer", 3), prefs))
	require.Equal(t, 0.2, SeasonMatch(newItem(1, "Top", "Black", "Monsoon", 3), prefs))
}

func TestComfortMatch(t *testing.T) {
	prefs := casualWinter()
	tests := []struct {
		comfort int
		want    float64
	}{
		{3, 1.0},
		{4, 0.7},
		{2, 0.7},
		{5, 0.4},
		{1, 0.4},
		{0, 0.1},
		{9, 0.1},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, ComfortMatch(newItem(1, "Top", "Black", "All", tc.comfort), prefs), "comfort %d", tc.comfort)
	}
}

func TestStyleMatch(t *testing.T) {
	top := newItem(1, "top", "Black", "All", 3)
	outer := newItem(2, "Outerwear", "Black", "All", 3)

	require.Equal(t, 0.8, StyleMatch(top, wardrobe.Preferences{Style: "Casual"}))
	require.Equal(t, 0.5, StyleMatch(outer, wardrobe.Preferences{Style: "Casual"}))
	require.Equal(t, 0.8, StyleMatch(outer, wardrobe.Preferences{Style: "formal"}))
	require.Equal(t, 0.5, StyleMatch(top, wardrobe.Preferences{Style: "Boho"}))
}

func TestCategoryDiversityBonusOrdering(t *testing.T) {
	full := CategoryDiversityBonus([]wardrobe.Item{
		newItem(1, "Top", "Black", "All", 3),
		newItem(2, "Bottom", "Black", "All", 3),
		newItem(3, "Shoes", "Black", "All", 3),
	})
	pair := CategoryDiversityBonus([]wardrobe.Item{
		newItem(1, "Top", "Black", "All", 3),
		newItem(2, "Bottom", "Black", "All", 3),
	})
	topOnly := CategoryDiversityBonus([]wardrobe.Item{newItem(1, "Top", "Black", "All", 3)})
	extras := CategoryDiversityBonus([]wardrobe.Item{
		newItem(1, "Shoes", "Black", "All", 3),
		newItem(2, "Accessory", "Black", "All", 3),
	})

	require.Greater(t, full, pair)
	require.Greater(t, pair, topOnly)
	require.Greater(t, topOnly, extras)
	require.Equal(t, 1.0, full)
	require.Equal(t, 0.2, extras)
}

func TestScoreOutfitBounds(t *testing.T) {
	require.Zero(t, ScoreOutfit(nil, casualWinter()))

	worst := wardrobe.Preferences{Style: "Unknown", Comfort: 100}
	for _, outfit := range Compose(sampleWardrobe()) {
		for _, prefs := range []wardrobe.Preferences{casualWinter(), worst} {
			score := ScoreOutfit(outfit, prefs)
			require.GreaterOrEqual(t, score, 0.0)
			require.LessOrEqual(t, score, MaxScore)
		}
	}
}

func TestClampScore(t *testing.T) {
	require.Equal(t, 0.0, clampScore(-1))
	require.Equal(t, MaxScore, clampScore(7))
	require.Equal(t, 1.25, clampScore(1.25))
}
