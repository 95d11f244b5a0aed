package wardrobe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/fitgpt/pkg/errors"
)

type stubRepo struct {
	items   map[int64]Item
	outfits []SavedOutfit
	seq     int64
	err     error
}

func newStubRepo() *stubRepo {
	return &stubRepo{items: make(map[int64]Item)}
}

func (r *stubRepo) ListActive(context.Context) ([]Item, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []Item
	for _, item := range r.items {
		if !item.Archived {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRepo) Get(_ context.Context, id int64) (Item, bool, error) {
	item, ok := r.items[id]
	return item, ok, r.err
}

func (r *stubRepo) Add(_ context.Context, item Item) (Item, error) {
	r.seq++
	item.ID = r.seq
	r.items[item.ID] = item
	return item, nil
}

func (r *stubRepo) Update(_ context.Context, item Item) (Item, error) {
	if _, ok := r.items[item.ID]; !ok {
		return Item{}, ErrItemNotFound
	}
	r.items[item.ID] = item
	return item, nil
}

func (r *stubRepo) Archive(_ context.Context, id int64) error {
	item, ok := r.items[id]
	if !ok || item.Archived {
		return ErrItemNotFound
	}
	item.Archived = true
	r.items[id] = item
	return nil
}

func (r *stubRepo) SaveOutfit(_ context.Context, outfit SavedOutfit) (SavedOutfit, error) {
	outfit.ID = int64(len(r.outfits) + 1)
	r.outfits = append(r.outfits, outfit)
	return outfit, nil
}

func (r *stubRepo) ListOutfits(context.Context) ([]SavedOutfit, error) {
	return r.outfits, nil
}

type stubPrefs struct {
	prefs *Preferences
}

func (s *stubPrefs) Load(context.Context) (Preferences, bool, error) {
	if s.prefs == nil {
		return Preferences{}, false, nil
	}
	return *s.prefs, true, nil
}

func (s *stubPrefs) Save(_ context.Context, prefs Preferences) error {
	s.prefs = &prefs
	return nil
}

type stubImages struct {
	keys []string
	err  error
}

func (s *stubImages) Put(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.keys = append(s.keys, key)
	return "https://cdn.example.com/" + key, nil
}

var fixedNow = time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC)

func newTestService() (*service, *stubRepo, *stubPrefs, *stubImages) {
	repo := newStubRepo()
	prefs := &stubPrefs{}
	images := &stubImages{}
	svc := &service{
		repo:    repo,
		outfits: repo,
		prefs:   prefs,
		images:  images,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     func() time.Time { return fixedNow },
	}
	return svc, repo, prefs, images
}

func boolPtr(v bool) *bool { return &v }

func TestAddItemValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	tests := []ItemInput{
		{Color: "Black", Season: "Winter", ComfortLevel: 3},
		{Category: "Top", Season: "Winter", ComfortLevel: 3},
		{Category: "Top", Color: "Black", ComfortLevel: 3},
		{Category: "Top", Color: "Black", Season: "Winter", ComfortLevel: 0},
		{Category: "Top", Color: "Black", Season: "Winter", ComfortLevel: 6},
	}
	for _, in := range tests {
		_, err := svc.AddItem(ctx, in)
		require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput), "input %+v", in)
	}

	item, err := svc.AddItem(ctx, ItemInput{Category: " Top ", Color: "Black", Season: "Winter", ComfortLevel: 3})
	require.NoError(t, err)
	require.Equal(t, "Top", item.Category)
	require.True(t, item.Available)
	require.Equal(t, fixedNow, item.CreatedAt)
}

func TestActiveItemsSkipsUnavailable(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, ItemInput{Category: "Top", Color: "Black", Season: "Winter", ComfortLevel: 3})
	require.NoError(t, err)
	laundry, err := svc.AddItem(ctx, ItemInput{Category: "Bottom", Color: "Blue", Season: "All", ComfortLevel: 4, Available: boolPtr(false)})
	require.NoError(t, err)
	archived, err := svc.AddItem(ctx, ItemInput{Category: "Shoes", Color: "White", Season: "All", ComfortLevel: 4})
	require.NoError(t, err)
	require.NoError(t, svc.ArchiveItem(ctx, archived.ID))

	active, err := svc.ActiveItems(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	listed, err := svc.ListItems(ctx, ItemFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, laundry.ID, listed[1].ID)
}

func TestListItemsFilters(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	for _, in := range []ItemInput{
		{Category: "Top", Color: "Black", Season: "Winter", ComfortLevel: 2},
		{Category: "Top", Color: "White", Season: "winter", ComfortLevel: 5},
		{Category: "Bottom", Color: "Blue", Season: "Summer", ComfortLevel: 5},
	} {
		_, err := svc.AddItem(ctx, in)
		require.NoError(t, err)
	}

	got, err := svc.ListItems(ctx, ItemFilter{Season: "Winter", MinComfort: 4})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "White", got[0].Color)
}

func TestUpdateAndArchive(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	item, err := svc.AddItem(ctx, ItemInput{Category: "Top", Color: "Black", Season: "Winter", ComfortLevel: 3})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, item.ID, ItemInput{Category: "Top", Color: "Grey", Season: "Fall", ComfortLevel: 4, Available: boolPtr(false)})
	require.NoError(t, err)
	require.Equal(t, "Grey", updated.Color)
	require.False(t, updated.Available)

	require.NoError(t, svc.ArchiveItem(ctx, item.ID))
	_, err = svc.GetItem(ctx, item.ID)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	require.True(t, apperrors.IsCode(svc.ArchiveItem(ctx, item.ID), apperrors.CodeNotFound))

	_, err = svc.UpdateItem(ctx, 404, ItemInput{Category: "Top", Color: "Grey", Season: "Fall", ComfortLevel: 4})
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestMarkWorn(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	item, err := svc.AddItem(ctx, ItemInput{Category: "Top", Color: "Black", Season: "Winter", ComfortLevel: 3})
	require.NoError(t, err)
	worn, err := svc.MarkWorn(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, worn.LastWornAt)
	require.Equal(t, fixedNow, *worn.LastWornAt)
}

func TestUploadImage(t *testing.T) {
	svc, _, _, images := newTestService()
	ctx := context.Background()

	item, err := svc.AddItem(ctx, ItemInput{Category: "Top", Color: "Black", Season: "Winter", ComfortLevel: 3})
	require.NoError(t, err)

	_, err = svc.UploadImage(ctx, item.ID, nil, "image/png")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	_, err = svc.UploadImage(ctx, item.ID, []byte("%PDF"), "application/pdf")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	_, err = svc.UploadImage(ctx, item.ID, make([]byte, maxImageBytes+1), "image/png")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	updated, err := svc.UploadImage(ctx, item.ID, []byte{1, 2, 3}, "image/png")
	require.NoError(t, err)
	require.Len(t, images.keys, 1)
	require.True(t, strings.HasPrefix(images.keys[0], "items/1/"))
	require.True(t, strings.HasSuffix(images.keys[0], ".png"))
	require.Equal(t, "https://cdn.example.com/"+images.keys[0], updated.ImageURL)

	images.err = errors.New("bucket gone")
	_, err = svc.UploadImage(ctx, item.ID, []byte{1}, "image/jpeg")
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
}

func TestPreferences(t *testing.T) {
	svc, _, store, _ := newTestService()
	ctx := context.Background()

	prefs, err := svc.Preferences(ctx)
	require.NoError(t, err)
	require.Equal(t, DefaultPreferences(), prefs)

	_, err = svc.UpdatePreferences(ctx, Preferences{Style: "Formal", Comfort: 9, Seasons: []string{"Winter"}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	_, err = svc.UpdatePreferences(ctx, Preferences{Style: "Formal", Comfort: 2, Seasons: []string{" ", ""}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	saved, err := svc.UpdatePreferences(ctx, Preferences{Style: " Formal ", Comfort: 2, Seasons: []string{"Winter", "winter", " Fall"}})
	require.NoError(t, err)
	require.Equal(t, "Formal", saved.Style)
	require.Equal(t, []string{"Winter", "Fall"}, saved.Seasons)
	require.NotNil(t, store.prefs)

	loaded, err := svc.Preferences(ctx)
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestSaveOutfit(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	top, err := svc.AddItem(ctx, ItemInput{Category: "Top", Color: "Black", Season: "Winter", ComfortLevel: 3})
	require.NoError(t, err)
	bottom, err := svc.AddItem(ctx, ItemInput{Category: "Bottom", Color: "Blue", Season: "All", ComfortLevel: 4})
	require.NoError(t, err)

	_, err = svc.SaveOutfit(ctx, SaveOutfitInput{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	_, err = svc.SaveOutfit(ctx, SaveOutfitInput{ItemIDs: []int64{top.ID, 77}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	saved, err := svc.SaveOutfit(ctx, SaveOutfitInput{ItemIDs: []int64{top.ID, bottom.ID, top.ID}, Note: " date night "})
	require.NoError(t, err)
	require.Equal(t, []int64{top.ID, bottom.ID}, saved.ItemIDs)
	require.Equal(t, "date night", saved.Note)

	outfits, err := svc.SavedOutfits(ctx)
	require.NoError(t, err)
	require.Len(t, outfits, 1)
}

func TestRepositoryFailureIsWrapped(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.err = errors.New("connection reset")

	_, err := svc.ActiveItems(context.Background())
	require.True(t, apperrors.IsCode(err, apperrors.CodeWardrobe))
	_, err = svc.GetItem(context.Background(), 1)
	require.True(t, apperrors.IsCode(err, apperrors.CodeWardrobe))
}

func TestPreferencesPrefersSeason(t *testing.T) {
	prefs := Preferences{Seasons: []string{" Winter"}}
	require.True(t, prefs.PrefersSeason("winter "))
	require.False(t, prefs.PrefersSeason("All"))
}
