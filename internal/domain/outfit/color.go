package outfit

import (
	"sort"
	"strings"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
)

var neutralColors = setOf("black", "white", "gray", "grey", "beige", "navy", "tan", "cream", "khaki", "ivory")

// analogousColors lists neighbours on the color wheel. The table is curated by hand and
// not every entry is mirrored; lookups consult both directions.
var analogousColors = map[string][]string{
	"red":       {"pink", "orange", "burgundy", "maroon"},
	"pink":      {"red", "purple", "magenta"},
	"orange":    {"red", "yellow", "coral"},
	"yellow":    {"orange", "green", "gold", "mustard"},
	"green":     {"yellow", "teal", "olive", "lime"},
	"teal":      {"green", "blue", "turquoise"},
	"blue":      {"teal", "purple", "turquoise"},
	"purple":    {"blue", "pink", "lavender", "violet"},
	"brown":     {"orange", "rust"},
	"burgundy":  {"purple"},
	"turquoise": {"green"},
}

// complementaryColors lists opposite hues. Curated, partially asymmetric like the
// analogous table.
var complementaryColors = map[string]string{
	"blue":      "orange",
	"orange":    "blue",
	"red":       "green",
	"green":     "red",
	"yellow":    "purple",
	"purple":    "yellow",
	"pink":      "green",
	"teal":      "coral",
	"turquoise": "coral",
	"lavender":  "yellow",
	"maroon":    "teal",
	"olive":     "burgundy",
}

var (
	warmColors = setOf("red", "orange", "yellow", "pink", "coral", "burgundy", "maroon", "gold", "mustard", "rust", "brown", "magenta")
	coolColors = setOf("blue", "green", "purple", "teal", "turquoise", "lavender", "violet", "olive", "lime", "mint")
)

// Harmony tiers. The ordering of the bonuses is what matters: a neutral base never ranks
// below a multi-accent mix.
const (
	bonusAccentOnNeutral = 1.0
	bonusMonochromatic   = 0.9
	bonusAnalogous       = 0.85
	bonusComplementary   = 0.8
	bonusAllNeutral      = 0.7
	bonusSameTemperature = 0.6
	bonusUnrelated       = 0.4
	bonusAnchoredMix     = 0.4
	bonusBoldMix         = 0.2
)

type harmony struct {
	bonus float64
	label string
}

// ColorHarmonyBonus scores how well the outfit's colors work together, in [0,1].
// Outfits with fewer than two items score 0.
func ColorHarmonyBonus(items []wardrobe.Item) float64 {
	return classifyHarmony(items).bonus
}

// ColorHarmonyLabel explains the tier chosen by ColorHarmonyBonus. It is empty for
// outfits with fewer than two items.
func ColorHarmonyLabel(items []wardrobe.Item) string {
	return classifyHarmony(items).label
}

func classifyHarmony(items []wardrobe.Item) harmony {
	if len(items) < 2 {
		return harmony{}
	}

	var (
		neutrals int
		accents  []string
		seen     = make(map[string]struct{})
	)
	for _, item := range items {
		color := normalizeColor(item.Color)
		if IsNeutral(color) {
			neutrals++
			continue
		}
		if _, ok := seen[color]; ok {
			continue
		}
		seen[color] = struct{}{}
		accents = append(accents, color)
	}
	sort.Strings(accents)

	switch len(accents) {
	case 0:
		return harmony{bonusAllNeutral, "Solid neutral palette"}
	case 1:
		if neutrals > 0 {
			return harmony{bonusAccentOnNeutral, "A single " + accents[0] + " accent on a neutral base looks classic and polished"}
		}
		return harmony{bonusMonochromatic, "Monochromatic " + accents[0] + " look feels cohesive"}
	case 2:
		a, b := accents[0], accents[1]
		switch {
		case areAnalogous(a, b):
			return harmony{bonusAnalogous, "Analogous " + a + " and " + b + " blend harmoniously"}
		case areComplementary(a, b):
			return harmony{bonusComplementary, "Complementary " + a + " and " + b + " create striking contrast"}
		case sameTemperature(a, b):
			return harmony{bonusSameTemperature, "Colors share the same " + temperatureOf(a) + " temperature"}
		default:
			return harmony{bonusUnrelated, "Bold color combination"}
		}
	default:
		if neutrals > 0 {
			return harmony{bonusAnchoredMix, "Bold color mix anchored by a neutral piece"}
		}
		return harmony{bonusBoldMix, "Bold color mix with no neutral anchor"}
	}
}

// IsNeutral reports whether the color pairs with everything.
func IsNeutral(color string) bool {
	_, ok := neutralColors[normalizeColor(color)]
	return ok
}

func areAnalogous(a, b string) bool {
	return contains(analogousColors[a], b) || contains(analogousColors[b], a)
}

func areComplementary(a, b string) bool {
	return complementaryColors[a] == b || complementaryColors[b] == a
}

func sameTemperature(a, b string) bool {
	t := temperatureOf(a)
	return t != "" && t == temperatureOf(b)
}

func temperatureOf(color string) string {
	if _, ok := warmColors[color]; ok {
		return "warm"
	}
	if _, ok := coolColors[color]; ok {
		return "cool"
	}
	return ""
}

func normalizeColor(color string) string {
	return strings.ToLower(strings.TrimSpace(color))
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func setOf(values ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}
