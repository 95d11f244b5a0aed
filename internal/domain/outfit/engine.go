package outfit

import (
	"sort"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
)

// Recommend ranks outfits built from items against prefs. It is pure and deterministic:
// identical inputs always yield the same ordered output.
//
// Outfits whose signature appears in recentlyShown are skipped unless that would leave no
// candidate at all, in which case the history is ignored for this call. When no top/bottom
// combination can be formed every item is ranked on its own.
func Recommend(items []wardrobe.Item, prefs wardrobe.Preferences, recentlyShown []Signature) []Recommendation {
	if len(items) == 0 {
		return nil
	}

	candidates := Compose(items)
	if len(candidates) == 0 {
		candidates = singleItemOutfits(items)
	}
	candidates = excludeRecent(candidates, recentlyShown)

	recs := make([]Recommendation, 0, len(candidates))
	for _, outfit := range candidates {
		recs = append(recs, Recommendation{
			Items: outfit,
			Score: ScoreOutfit(outfit, prefs),
		})
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}

	for i := range recs {
		recs[i].Explanation = ExplainOutfit(recs[i].Items, recs[i].Score, prefs)
		recs[i].ItemExplanations = explainItems(recs[i].Items, prefs)
	}
	return recs
}

func singleItemOutfits(items []wardrobe.Item) [][]wardrobe.Item {
	out := make([][]wardrobe.Item, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, []wardrobe.Item{item})
	}
	return out
}

func excludeRecent(candidates [][]wardrobe.Item, recentlyShown []Signature) [][]wardrobe.Item {
	if len(recentlyShown) == 0 {
		return candidates
	}
	shown := make(map[Signature]struct{}, len(recentlyShown))
	for _, sig := range recentlyShown {
		shown[sig] = struct{}{}
	}
	fresh := make([][]wardrobe.Item, 0, len(candidates))
	for _, outfit := range candidates {
		if _, ok := shown[SignatureOf(outfit)]; ok {
			continue
		}
		fresh = append(fresh, outfit)
	}
	if len(fresh) == 0 {
		return candidates
	}
	return fresh
}

func explainItems(items []wardrobe.Item, prefs wardrobe.Preferences) map[int64]string {
	out := make(map[int64]string, len(items))
	for _, item := range items {
		out[item.ID] = ExplainItem(item, prefs)
	}
	return out
}
