package outfit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
	apperrors "github.com/yanqian/fitgpt/pkg/errors"
)

type stubWardrobe struct {
	items []wardrobe.Item
	prefs wardrobe.Preferences
	err   error
}

func (s *stubWardrobe) ActiveItems(context.Context) ([]wardrobe.Item, error) {
	return s.items, s.err
}

func (s *stubWardrobe) GetItem(_ context.Context, id int64) (wardrobe.Item, error) {
	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return wardrobe.Item{}, apperrors.Wrap(apperrors.CodeNotFound, "item not found", wardrobe.ErrItemNotFound)
}

func (s *stubWardrobe) Preferences(context.Context) (wardrobe.Preferences, error) {
	return s.prefs, nil
}

type stubSuggester struct {
	mu          sync.Mutex
	text        string
	explanation string
	err         error
	block       chan struct{}
	calls       int
}

func (s *stubSuggester) Suggest(context.Context, []wardrobe.Item, wardrobe.Preferences) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.block != nil {
		<-s.block
	}
	return s.text, s.err
}

func (s *stubSuggester) ExplainItem(context.Context, wardrobe.Item, wardrobe.Preferences) (string, error) {
	return s.explanation, s.err
}

func (s *stubSuggester) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestService(items []wardrobe.Item, suggester Suggester) Service {
	cfg := Config{HistorySize: DefaultHistorySize, MaxSessions: 8, SessionTTL: time.Hour, RemoteTimeout: 50 * time.Millisecond}
	wr := &stubWardrobe{items: items, prefs: casualWinter()}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(cfg, wr, suggester, logger)
}

func TestServiceRecommendEngineOnly(t *testing.T) {
	svc := newTestService(sampleWardrobe(), nil)

	resp, err := svc.Recommend(context.Background(), Request{})
	require.NoError(t, err)
	require.Equal(t, StateSuccess, resp.State)
	require.Equal(t, SourceEngine, resp.Source)
	require.Len(t, resp.Recommendations, MaxRecommendations)
	require.Empty(t, resp.Error)
	_, err = uuid.Parse(resp.SessionID)
	require.NoError(t, err)
}

func TestServiceRecommendRotatesWithinSession(t *testing.T) {
	svc := newTestService(sampleWardrobe(), nil)
	ctx := context.Background()

	first, err := svc.Recommend(ctx, Request{})
	require.NoError(t, err)
	second, err := svc.Recommend(ctx, Request{SessionID: first.SessionID})
	require.NoError(t, err)
	require.Equal(t, first.SessionID, second.SessionID)

	shown := make(map[Signature]struct{})
	for _, rec := range first.Recommendations {
		shown[rec.Signature()] = struct{}{}
	}
	for _, rec := range second.Recommendations {
		require.NotContains(t, shown, rec.Signature())
	}

	other, err := svc.Recommend(ctx, Request{})
	require.NoError(t, err)
	require.NotEqual(t, first.SessionID, other.SessionID)
	require.Equal(t, first.Recommendations, other.Recommendations)
}

func TestServiceRecommendRemoteSupersedes(t *testing.T) {
	suggester := &stubSuggester{text: "OUTFIT: 1, 4\nSCORE: 2.8\nEXPLANATION: Sharp and warm."}
	svc := newTestService(sampleWardrobe(), suggester)

	resp, err := svc.Recommend(context.Background(), Request{})
	require.NoError(t, err)
	require.Equal(t, StateSuccess, resp.State)
	require.Equal(t, SourceRemote, resp.Source)
	require.Len(t, resp.Recommendations, 1)
	require.Equal(t, "Sharp and warm.", resp.Recommendations[0].Explanation)
	require.Len(t, resp.Recommendations[0].ItemExplanations, 2)
	require.Equal(t, 1, suggester.callCount())
}

func TestServiceRecommendRemoteFailureFallsBack(t *testing.T) {
	suggester := &stubSuggester{err: errors.New("rate limited")}
	svc := newTestService(sampleWardrobe(), suggester)

	resp, err := svc.Recommend(context.Background(), Request{})
	require.NoError(t, err)
	require.Equal(t, StateFallback, resp.State)
	require.Equal(t, SourceEngine, resp.Source)
	require.Contains(t, resp.Error, "rate limited")
	require.Len(t, resp.Recommendations, MaxRecommendations)
}

func TestServiceRecommendRemoteTimeoutDoesNotBlock(t *testing.T) {
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	suggester := &stubSuggester{text: "OUTFIT: 1,4", block: block}
	svc := newTestService(sampleWardrobe(), suggester)

	start := time.Now()
	resp, err := svc.Recommend(context.Background(), Request{})
	require.NoError(t, err)
	require.Less(t, time.Since(start), 2*time.Second)
	require.Equal(t, StateFallback, resp.State)
	require.NotEmpty(t, resp.Recommendations)
}

func TestServiceRecommendEmptyRemoteKeepsEngine(t *testing.T) {
	suggester := &stubSuggester{text: "Sorry, nothing to suggest."}
	svc := newTestService(sampleWardrobe(), suggester)

	resp, err := svc.Recommend(context.Background(), Request{})
	require.NoError(t, err)
	require.Equal(t, StateSuccess, resp.State)
	require.Equal(t, SourceEngine, resp.Source)
	require.Len(t, resp.Recommendations, MaxRecommendations)
}

func TestServiceRecommendSkipRemote(t *testing.T) {
	suggester := &stubSuggester{text: "OUTFIT: 1,4"}
	svc := newTestService(sampleWardrobe(), suggester)

	resp, err := svc.Recommend(context.Background(), Request{SkipRemote: true})
	require.NoError(t, err)
	require.Equal(t, SourceEngine, resp.Source)
	require.Zero(t, suggester.callCount())
}

func TestServiceRecommendEmptyWardrobe(t *testing.T) {
	suggester := &stubSuggester{text: "OUTFIT: 1,4"}
	svc := newTestService(nil, suggester)

	resp, err := svc.Recommend(context.Background(), Request{})
	require.NoError(t, err)
	require.Equal(t, StateSuccess, resp.State)
	require.NotNil(t, resp.Recommendations)
	require.Empty(t, resp.Recommendations)
	require.Zero(t, suggester.callCount())
}

func TestServiceRecommendWardrobeError(t *testing.T) {
	wr := &stubWardrobe{err: apperrors.Wrap(apperrors.CodeWardrobe, "load failed", errors.New("db down"))}
	svc := NewService(Config{}, wr, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.Recommend(context.Background(), Request{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeWardrobe))
}

func TestServiceExplainItem(t *testing.T) {
	suggester := &stubSuggester{explanation: "  Cozy layer for cold mornings. "}
	svc := newTestService(sampleWardrobe(), suggester)

	got, err := svc.ExplainItem(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), got.ItemID)
	require.Contains(t, got.Explanation, "Perfect for your preferred winter season")
	require.Equal(t, "Cozy layer for cold mornings.", got.Remote)

	_, err = svc.ExplainItem(context.Background(), 404)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestServiceExplainItemRemoteFailure(t *testing.T) {
	svc := newTestService(sampleWardrobe(), &stubSuggester{err: errors.New("boom")})

	got, err := svc.ExplainItem(context.Background(), 1)
	require.NoError(t, err)
	require.NotEmpty(t, got.Explanation)
	require.Empty(t, got.Remote)
}

func TestServiceRecommendConcurrentCyclesInOneSession(t *testing.T) {
	var items []wardrobe.Item
	id := int64(1)
	for _, category := range []string{"Top", "Bottom", "Outerwear", "Shoes", "Accessory"} {
		for i := 0; i < 6; i++ {
			items = append(items, newItem(id, category, "Black", "Winter", 3))
			id++
		}
	}
	svc := newTestService(items, nil)
	ctx := context.Background()

	for round := 0; round < 20; round++ {
		sessionID := uuid.NewString()
		var (
			wg      sync.WaitGroup
			results [2]Response
			errs    [2]error
		)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = svc.Recommend(ctx, Request{SessionID: sessionID})
			}(i)
		}
		wg.Wait()
		require.NoError(t, errs[0])
		require.NoError(t, errs[1])
		require.Equal(t, sessionID, results[0].SessionID)
		require.Equal(t, sessionID, results[1].SessionID)

		shown := make(map[Signature]struct{})
		for _, rec := range results[0].Recommendations {
			shown[rec.Signature()] = struct{}{}
		}
		for _, rec := range results[1].Recommendations {
			require.NotContains(t, shown, rec.Signature(), "round %d", round)
		}
	}
}
