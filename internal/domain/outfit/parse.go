package outfit

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
)

const (
	defaultRemoteScore       = 1.5
	defaultRemoteExplanation = "AI-recommended outfit combination."
)

// ParseSuggestions extracts outfits from remote suggester text shaped as blocks of
//
//	OUTFIT: <comma-separated item ids>
//	SCORE: <0.0-3.0>
//	EXPLANATION: <text>
//
// separated by blank lines. Parsing is tolerant: blocks without an OUTFIT line or without a
// single known id are skipped, unknown ids are dropped, a missing score defaults to 1.5 and
// a missing explanation to a generic phrase. Scores are clamped to [0, MaxScore], duplicate
// outfits collapse to the first occurrence and the list is ranked and truncated like the
// engine's output.
func ParseSuggestions(text string, items []wardrobe.Item) []Recommendation {
	byID := make(map[int64]wardrobe.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	var (
		recs []Recommendation
		seen = make(map[Signature]struct{})
	)
	for _, block := range splitBlocks(text) {
		rec, ok := parseBlock(block, byID)
		if !ok {
			continue
		}
		sig := rec.Signature()
		if _, dup := seen[sig]; dup {
			continue
		}
		seen[sig] = struct{}{}
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}

func splitBlocks(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var (
		blocks  [][]string
		current []string
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

func parseBlock(lines []string, byID map[int64]wardrobe.Item) (Recommendation, bool) {
	outfitLine, ok := findField(lines, "OUTFIT:")
	if !ok {
		return Recommendation{}, false
	}

	var (
		outfit []wardrobe.Item
		seen   = make(map[int64]struct{})
	)
	for _, token := range strings.Split(outfitLine, ",") {
		token = strings.TrimPrefix(strings.TrimSpace(token), "#")
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			continue
		}
		item, known := byID[id]
		if !known {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		outfit = append(outfit, item)
	}
	if len(outfit) == 0 {
		return Recommendation{}, false
	}

	score := defaultRemoteScore
	if raw, ok := findField(lines, "SCORE:"); ok {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(parsed) {
			score = clampScore(parsed)
		}
	}

	explanation := defaultRemoteExplanation
	if raw, ok := findField(lines, "EXPLANATION:"); ok && raw != "" {
		explanation = raw
	}

	return Recommendation{Items: outfit, Score: score, Explanation: explanation}, true
}

// findField returns the trimmed value after the first line starting with label, ignoring
// case and leading markdown emphasis.
func findField(lines []string, label string) (string, bool) {
	for _, line := range lines {
		clean := strings.TrimLeft(line, "*_- ")
		if len(clean) < len(label) || !strings.EqualFold(clean[:len(label)], label) {
			continue
		}
		value := strings.TrimSpace(clean[len(label):])
		return strings.TrimSpace(strings.Trim(value, "*_")), true
	}
	return "", false
}
