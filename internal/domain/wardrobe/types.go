package wardrobe

import (
	"strings"
	"time"
)

// Canonical category names. Item categories are free text and compared case-insensitively.
const (
	CategoryTop       = "Top"
	CategoryBottom    = "Bottom"
	CategoryOuterwear = "Outerwear"
	CategoryShoes     = "Shoes"
	CategoryAccessory = "Accessory"
)

// SeasonAll marks an item that can be worn year round.
const SeasonAll = "All"

// Known option lists surfaced to clients building onboarding forms.
var (
	BodyTypes = []string{"Slim", "Average", "Athletic", "Plus-size"}
	Styles    = []string{"Casual", "Formal", "Sporty", "Streetwear"}
	Seasons   = []string{"Spring", "Summer", "Fall", "Winter"}
)

// Item is a single piece of clothing in the user's inventory.
type Item struct {
	ID           int64      `json:"id"`
	Category     string     `json:"category"`
	Color        string     `json:"color"`
	Season       string     `json:"season"`
	ComfortLevel int        `json:"comfortLevel"`
	Brand        string     `json:"brand,omitempty"`
	ImageURL     string     `json:"imageUrl,omitempty"`
	Available    bool       `json:"available"`
	Archived     bool       `json:"archived"`
	LastWornAt   *time.Time `json:"lastWornAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// IsCategory reports whether the item belongs to the given category, ignoring case.
func (i Item) IsCategory(category string) bool {
	return strings.EqualFold(strings.TrimSpace(i.Category), category)
}

// Preferences describes how the user wants to be dressed.
type Preferences struct {
	// BodyType is descriptive only and does not influence scoring.
	BodyType          string   `json:"bodyType"`
	Style             string   `json:"style"`
	Comfort           int      `json:"comfort"`
	Seasons           []string `json:"seasons"`
	AccessibilityMode bool     `json:"accessibilityMode,omitempty"`
}

// DefaultPreferences returns the preferences used before onboarding completes.
func DefaultPreferences() Preferences {
	return Preferences{
		BodyType: "Average",
		Style:    "Casual",
		Comfort:  3,
		Seasons:  append([]string(nil), Seasons...),
	}
}

// PrefersSeason reports whether season is one of the preferred seasons.
func (p Preferences) PrefersSeason(season string) bool {
	season = strings.TrimSpace(season)
	for _, s := range p.Seasons {
		if strings.EqualFold(strings.TrimSpace(s), season) {
			return true
		}
	}
	return false
}

// SavedOutfit is an outfit the user decided to keep.
type SavedOutfit struct {
	ID        int64     `json:"id"`
	ItemIDs   []int64   `json:"itemIds"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ItemFilter narrows the inventory listing.
type ItemFilter struct {
	Season     string `form:"season"`
	MinComfort int    `form:"minComfort"`
}

// Matches reports whether the item passes the filter.
func (f ItemFilter) Matches(item Item) bool {
	if s := strings.TrimSpace(f.Season); s != "" && !strings.EqualFold(item.Season, s) {
		return false
	}
	return item.ComfortLevel >= f.MinComfort
}
