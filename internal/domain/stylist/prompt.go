package stylist

import (
	"fmt"
	"strings"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
)

func systemPrompt(wardrobeInfo string) string {
	return "You are a friendly and knowledgeable fashion stylist AI assistant called Style Assistant. " +
		"You help users with outfit advice, style tips, and wardrobe management.\n\n" +
		wardrobeInfo + "\n\n" +
		"Guidelines:\n" +
		"- Give practical, personalized advice based on the user's actual wardrobe items and preferences\n" +
		"- Be conversational and encouraging\n" +
		"- When suggesting outfits, reference specific items the user owns\n" +
		"- If asked about items the user doesn't have, suggest what they could add to their wardrobe\n" +
		"- Keep responses concise but helpful"
}

// wardrobeContext describes the inventory and preferences in plain text.
func wardrobeContext(items []wardrobe.Item, prefs wardrobe.Preferences) string {
	var b strings.Builder
	if len(items) == 0 {
		b.WriteString("The user hasn't added any wardrobe items yet.\n")
	} else {
		b.WriteString("The user's wardrobe contains the following items:\n")
		for _, item := range items {
			fmt.Fprintf(&b, "- %s: %s, %s season, comfort %d/5\n", item.Category, item.Color, item.Season, item.ComfortLevel)
		}
	}
	b.WriteString("\nUser preferences:\n")
	fmt.Fprintf(&b, "- Body type: %s\n", prefs.BodyType)
	fmt.Fprintf(&b, "- Style preference: %s\n", prefs.Style)
	fmt.Fprintf(&b, "- Comfort preference: %d/5\n", prefs.Comfort)
	fmt.Fprintf(&b, "- Preferred seasons: %s", strings.Join(prefs.Seasons, ", "))
	return b.String()
}
