package outfit

import (
	"fmt"
	"strings"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
)

var colorTraits = map[string]string{
	"black":  "timeless sophistication",
	"white":  "clean freshness",
	"blue":   "calm versatility",
	"navy":   "calm versatility",
	"red":    "bold energy",
	"green":  "natural balance",
	"gray":   "understated elegance",
	"grey":   "understated elegance",
	"beige":  "warm neutrality",
	"tan":    "warm neutrality",
	"cream":  "warm neutrality",
	"khaki":  "warm neutrality",
	"ivory":  "soft brightness",
	"yellow": "cheerful brightness",
	"orange": "vibrant warmth",
	"purple": "creative flair",
	"pink":   "playful softness",
	"brown":  "earthy grounding",
}

var styleClosings = map[string]string{
	"casual":     "Fits a relaxed, casual vibe",
	"formal":     "Suitable for a polished, formal look",
	"sporty":     "Great for an active, sporty style",
	"streetwear": "On-trend for a streetwear aesthetic",
}

// ExplainItem describes why a single item suits the preferences.
func ExplainItem(item wardrobe.Item, prefs wardrobe.Preferences) string {
	season := strings.ToLower(strings.TrimSpace(item.Season))
	parts := make([]string, 0, 4)

	switch {
	case prefs.PrefersSeason(item.Season):
		parts = append(parts, fmt.Sprintf("Perfect for your preferred %s season", season))
	case strings.EqualFold(season, wardrobe.SeasonAll):
		parts = append(parts, "Versatile all-season piece")
	default:
		parts = append(parts, fmt.Sprintf("Suited for %s weather", season))
	}

	switch diff := item.ComfortLevel - prefs.Comfort; {
	case diff >= 1:
		parts = append(parts, "exceeds your comfort preference")
	case diff == 0:
		parts = append(parts, "matches your comfort level exactly")
	case diff == -1:
		parts = append(parts, "slightly below your usual comfort preference")
	default:
		parts = append(parts, "prioritizes style over comfort")
	}

	if note := styleNote(item, prefs); note != "" {
		parts = append(parts, note)
	}

	color := normalizeColor(item.Color)
	parts = append(parts, fmt.Sprintf("%s adds %s to your look", color, colorTrait(color)))

	return joinSentences(parts)
}

// ExplainOutfit summarizes why the outfit was ranked where it was.
func ExplainOutfit(items []wardrobe.Item, score float64, prefs wardrobe.Preferences) string {
	if len(items) == 0 {
		return joinSentences([]string{"Empty outfit", scoreTier(score)})
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, strings.TrimSpace(item.Color)+" "+strings.TrimSpace(item.Category))
	}
	parts := []string{"Outfit: " + strings.Join(names, " + ")}
	parts = append(parts, seasonFit(items, prefs))
	parts = append(parts, comfortFit(items, prefs))
	if label := ColorHarmonyLabel(items); label != "" {
		parts = append(parts, label)
	}
	if closing, ok := styleClosings[strings.ToLower(strings.TrimSpace(prefs.Style))]; ok {
		parts = append(parts, closing)
	}
	parts = append(parts, scoreTier(score))
	return joinSentences(parts)
}

func seasonFit(items []wardrobe.Item, prefs wardrobe.Preferences) string {
	var (
		seasons   []string
		preferred []string
		seen      = make(map[string]struct{})
		allRound  = true
	)
	for _, item := range items {
		season := strings.TrimSpace(item.Season)
		key := strings.ToLower(season)
		if !strings.EqualFold(season, wardrobe.SeasonAll) {
			allRound = false
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		seasons = append(seasons, key)
		if prefs.PrefersSeason(season) {
			preferred = append(preferred, season)
		}
	}
	switch {
	case allRound:
		return "All pieces are season-versatile"
	case len(preferred) > 0:
		return fmt.Sprintf("Great match for your preferred %s season", strings.Join(preferred, "/"))
	default:
		return fmt.Sprintf("Consider for %s weather", strings.Join(seasons, "/"))
	}
}

func comfortFit(items []wardrobe.Item, prefs wardrobe.Preferences) string {
	var total int
	for _, item := range items {
		total += item.ComfortLevel
	}
	avg := float64(total) / float64(len(items))
	pref := float64(prefs.Comfort)
	switch {
	case avg >= pref+0.5:
		return "Excellent comfort level for your preference"
	case avg >= pref-0.5:
		return "Comfort meets your preference well"
	default:
		return "Comfort is a trade-off for this outfit's style"
	}
}

func styleNote(item wardrobe.Item, prefs wardrobe.Preferences) string {
	switch strings.ToLower(strings.TrimSpace(prefs.Style)) {
	case "casual":
		if item.ComfortLevel >= 4 {
			return "great casual pick for everyday wear"
		}
	case "formal":
		if item.IsCategory(wardrobe.CategoryOuterwear) {
			return "adds a formal finishing touch"
		}
	case "sporty":
		if item.ComfortLevel >= 4 {
			return "comfort-first choice for an active lifestyle"
		}
	case "streetwear":
		return "works well in a streetwear rotation"
	}
	return ""
}

func scoreTier(score float64) string {
	switch {
	case score >= 2.5:
		return "Highly recommended"
	case score >= 1.5:
		return "Good match"
	default:
		return "Worth trying"
	}
}

func colorTrait(color string) string {
	if trait, ok := colorTraits[color]; ok {
		return trait
	}
	return "unique character"
}

func joinSentences(parts []string) string {
	return strings.Join(parts, ". ") + "."
}
