package wardrobe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	apperrors "github.com/yanqian/fitgpt/pkg/errors"
	"github.com/yanqian/fitgpt/pkg/util"
)

const maxImageBytes = 8 << 20

// ItemInput is the payload accepted when creating or editing an item.
type ItemInput struct {
	Category     string `json:"category"`
	Color        string `json:"color"`
	Season       string `json:"season"`
	ComfortLevel int    `json:"comfortLevel"`
	Brand        string `json:"brand,omitempty"`
	Available    *bool  `json:"available,omitempty"`
}

// SaveOutfitInput is the payload accepted when saving an outfit.
type SaveOutfitInput struct {
	ItemIDs []int64 `json:"itemIds"`
	Note    string  `json:"note,omitempty"`
}

// Service exposes inventory and preference management.
type Service interface {
	ListItems(ctx context.Context, filter ItemFilter) ([]Item, error)
	ActiveItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id int64) (Item, error)
	AddItem(ctx context.Context, in ItemInput) (Item, error)
	UpdateItem(ctx context.Context, id int64, in ItemInput) (Item, error)
	ArchiveItem(ctx context.Context, id int64) error
	MarkWorn(ctx context.Context, id int64) (Item, error)
	UploadImage(ctx context.Context, id int64, data []byte, mimeType string) (Item, error)
	Preferences(ctx context.Context) (Preferences, error)
	UpdatePreferences(ctx context.Context, prefs Preferences) (Preferences, error)
	SaveOutfit(ctx context.Context, in SaveOutfitInput) (SavedOutfit, error)
	SavedOutfits(ctx context.Context) ([]SavedOutfit, error)
}

type service struct {
	repo    Repository
	outfits OutfitRepository
	prefs   PreferenceStore
	images  ImageStorage
	logger  *slog.Logger
	now     func() time.Time
}

// NewService wires up the wardrobe domain.
func NewService(repo Repository, outfits OutfitRepository, prefs PreferenceStore, images ImageStorage, logger *slog.Logger) Service {
	return &service{
		repo:    repo,
		outfits: outfits,
		prefs:   prefs,
		images:  images,
		logger:  logger.With("component", "wardrobe.service"),
		now:     util.NowUTC,
	}
}

func (s *service) ListItems(ctx context.Context, filter ItemFilter) ([]Item, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeWardrobe, "failed to list items", err)
	}
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if filter.Matches(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// ActiveItems returns the items eligible for recommendations: not archived and not
// flagged unavailable (e.g. in the laundry).
func (s *service) ActiveItems(ctx context.Context) ([]Item, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeWardrobe, "failed to list items", err)
	}
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Available {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *service) GetItem(ctx context.Context, id int64) (Item, error) {
	item, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeWardrobe, "failed to load item", err)
	}
	if !ok || item.Archived {
		return Item{}, apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("item %d not found", id), nil)
	}
	return item, nil
}

func (s *service) AddItem(ctx context.Context, in ItemInput) (Item, error) {
	if err := validateItemInput(in); err != nil {
		return Item{}, err
	}
	item := Item{
		Category:     strings.TrimSpace(in.Category),
		Color:        strings.TrimSpace(in.Color),
		Season:       strings.TrimSpace(in.Season),
		ComfortLevel: in.ComfortLevel,
		Brand:        strings.TrimSpace(in.Brand),
		Available:    in.Available == nil || *in.Available,
		CreatedAt:    s.now(),
	}
	created, err := s.repo.Add(ctx, item)
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeWardrobe, "failed to add item", err)
	}
	s.logger.Info("wardrobe item added", "item_id", created.ID, "category", created.Category)
	return created, nil
}

func (s *service) UpdateItem(ctx context.Context, id int64, in ItemInput) (Item, error) {
	if err := validateItemInput(in); err != nil {
		return Item{}, err
	}
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return Item{}, err
	}
	item.Category = strings.TrimSpace(in.Category)
	item.Color = strings.TrimSpace(in.Color)
	item.Season = strings.TrimSpace(in.Season)
	item.ComfortLevel = in.ComfortLevel
	item.Brand = strings.TrimSpace(in.Brand)
	if in.Available != nil {
		item.Available = *in.Available
	}
	return s.store(ctx, item)
}

func (s *service) ArchiveItem(ctx context.Context, id int64) error {
	if err := s.repo.Archive(ctx, id); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("item %d not found", id), err)
		}
		return apperrors.Wrap(apperrors.CodeWardrobe, "failed to archive item", err)
	}
	s.logger.Info("wardrobe item archived", "item_id", id)
	return nil
}

func (s *service) MarkWorn(ctx context.Context, id int64) (Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return Item{}, err
	}
	now := s.now()
	item.LastWornAt = &now
	return s.store(ctx, item)
}

func (s *service) UploadImage(ctx context.Context, id int64, data []byte, mimeType string) (Item, error) {
	if len(data) == 0 {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "image cannot be empty", nil)
	}
	if len(data) > maxImageBytes {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "image exceeds 8 MiB", nil)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "content type must be an image", nil)
	}
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return Item{}, err
	}
	key := path.Join("items", fmt.Sprintf("%d", id), fmt.Sprintf("%d%s", s.now().UnixNano(), imageExtension(mimeType)))
	url, err := s.images.Put(ctx, key, data, mimeType)
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorage, "failed to store image", err)
	}
	item.ImageURL = url
	return s.store(ctx, item)
}

func (s *service) Preferences(ctx context.Context) (Preferences, error) {
	prefs, ok, err := s.prefs.Load(ctx)
	if err != nil {
		return Preferences{}, apperrors.Wrap(apperrors.CodeWardrobe, "failed to load preferences", err)
	}
	if !ok {
		return DefaultPreferences(), nil
	}
	return prefs, nil
}

func (s *service) UpdatePreferences(ctx context.Context, prefs Preferences) (Preferences, error) {
	prefs.BodyType = strings.TrimSpace(prefs.BodyType)
	prefs.Style = strings.TrimSpace(prefs.Style)
	prefs.Seasons = normalizeSeasons(prefs.Seasons)
	if prefs.Comfort < 1 || prefs.Comfort > 5 {
		return Preferences{}, apperrors.Wrap(apperrors.CodeInvalidInput, "comfort must be between 1 and 5", nil)
	}
	if len(prefs.Seasons) == 0 {
		return Preferences{}, apperrors.Wrap(apperrors.CodeInvalidInput, "at least one preferred season is required", nil)
	}
	if err := s.prefs.Save(ctx, prefs); err != nil {
		return Preferences{}, apperrors.Wrap(apperrors.CodeWardrobe, "failed to save preferences", err)
	}
	s.logger.Info("preferences updated", "style", prefs.Style, "comfort", prefs.Comfort, "seasons", prefs.Seasons)
	return prefs, nil
}

func (s *service) SaveOutfit(ctx context.Context, in SaveOutfitInput) (SavedOutfit, error) {
	ids := uniqueIDs(in.ItemIDs)
	if len(ids) == 0 {
		return SavedOutfit{}, apperrors.Wrap(apperrors.CodeInvalidInput, "outfit needs at least one item", nil)
	}
	for _, id := range ids {
		if _, err := s.GetItem(ctx, id); err != nil {
			return SavedOutfit{}, err
		}
	}
	saved, err := s.outfits.SaveOutfit(ctx, SavedOutfit{
		ItemIDs:   ids,
		Note:      strings.TrimSpace(in.Note),
		CreatedAt: s.now(),
	})
	if err != nil {
		return SavedOutfit{}, apperrors.Wrap(apperrors.CodeWardrobe, "failed to save outfit", err)
	}
	return saved, nil
}

func (s *service) SavedOutfits(ctx context.Context) ([]SavedOutfit, error) {
	outfits, err := s.outfits.ListOutfits(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeWardrobe, "failed to list outfits", err)
	}
	return outfits, nil
}

func (s *service) store(ctx context.Context, item Item) (Item, error) {
	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return Item{}, apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("item %d not found", item.ID), err)
		}
		return Item{}, apperrors.Wrap(apperrors.CodeWardrobe, "failed to update item", err)
	}
	return updated, nil
}

func validateItemInput(in ItemInput) error {
	switch {
	case strings.TrimSpace(in.Category) == "":
		return apperrors.Wrap(apperrors.CodeInvalidInput, "category cannot be empty", nil)
	case strings.TrimSpace(in.Color) == "":
		return apperrors.Wrap(apperrors.CodeInvalidInput, "color cannot be empty", nil)
	case strings.TrimSpace(in.Season) == "":
		return apperrors.Wrap(apperrors.CodeInvalidInput, "season cannot be empty", nil)
	case in.ComfortLevel < 1 || in.ComfortLevel > 5:
		return apperrors.Wrap(apperrors.CodeInvalidInput, "comfortLevel must be between 1 and 5", nil)
	}
	return nil
}

func normalizeSeasons(seasons []string) []string {
	out := make([]string, 0, len(seasons))
	seen := make(map[string]struct{}, len(seasons))
	for _, season := range seasons {
		clean := strings.TrimSpace(season)
		if clean == "" {
			continue
		}
		key := strings.ToLower(clean)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, clean)
	}
	return out
}

func uniqueIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func imageExtension(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
