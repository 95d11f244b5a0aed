package outfit

import (
	"strings"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
)

// Scoring weights. They sum to 1.0 and season carries the most weight.
const (
	WeightSeason   = 0.35
	WeightComfort  = 0.25
	WeightStyle    = 0.20
	WeightHarmony  = 0.10
	WeightCoverage = 0.10
)

var styleCategories = map[string][]string{
	"casual":     {wardrobe.CategoryTop, wardrobe.CategoryBottom, wardrobe.CategoryShoes, wardrobe.CategoryAccessory},
	"formal":     {wardrobe.CategoryTop, wardrobe.CategoryBottom, wardrobe.CategoryOuterwear, wardrobe.CategoryShoes},
	"sporty":     {wardrobe.CategoryTop, wardrobe.CategoryBottom, wardrobe.CategoryShoes},
	"streetwear": {wardrobe.CategoryTop, wardrobe.CategoryBottom, wardrobe.CategoryOuterwear, wardrobe.CategoryShoes, wardrobe.CategoryAccessory},
}

// ScoreItem rates a single item against the preferences, in [0,1].
func ScoreItem(item wardrobe.Item, prefs wardrobe.Preferences) float64 {
	return SeasonMatch(item, prefs)*WeightSeason +
		ComfortMatch(item, prefs)*WeightComfort +
		StyleMatch(item, prefs)*WeightStyle
}

// SeasonMatch is 1.0 for a preferred season, 0.8 for all-season items and 0.2 otherwise.
func SeasonMatch(item wardrobe.Item, prefs wardrobe.Preferences) float64 {
	switch {
	case prefs.PrefersSeason(item.Season):
		return 1.0
	case strings.EqualFold(strings.TrimSpace(item.Season), wardrobe.SeasonAll):
		return 0.8
	default:
		return 0.2
	}
}

// ComfortMatch decays with the distance between item comfort and preferred comfort.
func ComfortMatch(item wardrobe.Item, prefs wardrobe.Preferences) float64 {
	diff := item.ComfortLevel - prefs.Comfort
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return 1.0
	case 1:
		return 0.7
	case 2:
		return 0.4
	default:
		return 0.1
	}
}

// StyleMatch is 0.8 when the item's category suits the preferred style and 0.5 otherwise.
func StyleMatch(item wardrobe.Item, prefs wardrobe.Preferences) float64 {
	categories, ok := styleCategories[strings.ToLower(strings.TrimSpace(prefs.Style))]
	if !ok {
		return 0.5
	}
	for _, category := range categories {
		if item.IsCategory(category) {
			return 0.8
		}
	}
	return 0.5
}

// CategoryDiversityBonus rewards outfits that cover top, bottom and more.
func CategoryDiversityBonus(items []wardrobe.Item) float64 {
	categories := make(map[string]struct{}, len(items))
	for _, item := range items {
		categories[strings.ToLower(strings.TrimSpace(item.Category))] = struct{}{}
	}
	_, hasTop := categories["top"]
	_, hasBottom := categories["bottom"]

	switch {
	case hasTop && hasBottom && len(categories) >= 3:
		return 1.0
	case hasTop && hasBottom:
		return 0.8
	case hasTop || hasBottom:
		return 0.4
	default:
		return 0.2
	}
}

// ScoreOutfit averages the item scores and adds the harmony and coverage bonuses.
// The result lies in [0, MaxScore]; an empty outfit scores 0.
func ScoreOutfit(items []wardrobe.Item, prefs wardrobe.Preferences) float64 {
	if len(items) == 0 {
		return 0
	}
	var total float64
	for _, item := range items {
		total += ScoreItem(item, prefs)
	}
	avg := total / float64(len(items))
	score := avg + ColorHarmonyBonus(items)*WeightHarmony + CategoryDiversityBonus(items)*WeightCoverage
	return clampScore(score)
}

func clampScore(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > MaxScore:
		return MaxScore
	default:
		return score
	}
}
