package outfit

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
	apperrors "github.com/yanqian/fitgpt/pkg/errors"
)

const defaultRemoteTimeout = 20 * time.Second

// Service runs recommendation cycles for client sessions.
type Service interface {
	Recommend(ctx context.Context, req Request) (Response, error)
	ExplainItem(ctx context.Context, itemID int64) (ItemExplanation, error)
}

type service struct {
	cfg       Config
	wardrobe  Wardrobe
	suggester Suggester
	sessions  *sessionRegistry
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires up the recommendation domain. suggester may be nil, in which case only
// the engine ranks outfits.
func NewService(cfg Config, wardrobe Wardrobe, suggester Suggester, logger *slog.Logger) Service {
	if cfg.RemoteTimeout <= 0 {
		cfg.RemoteTimeout = defaultRemoteTimeout
	}
	return &service{
		cfg:       cfg,
		wardrobe:  wardrobe,
		suggester: suggester,
		sessions:  newSessionRegistry(cfg.HistorySize, cfg.MaxSessions, cfg.SessionTTL),
		logger:    logger.With("component", "outfit.service"),
		now:       time.Now,
	}
}

// Recommend computes and records the engine ranking before consulting the remote
// suggester. A remote failure only changes State; the engine list is always returned.
func (s *service) Recommend(ctx context.Context, req Request) (Response, error) {
	start := s.now()
	items, err := s.wardrobe.ActiveItems(ctx)
	if err != nil {
		return Response{}, err
	}
	prefs, err := s.wardrobe.Preferences(ctx)
	if err != nil {
		return Response{}, err
	}

	sessionID, history := s.sessions.acquire(req.SessionID)
	recs := history.Cycle(func(recent []Signature) []Recommendation {
		return Recommend(items, prefs, recent)
	})

	resp := Response{
		SessionID:       sessionID,
		State:           StateSuccess,
		Source:          SourceEngine,
		Recommendations: recs,
	}
	if recs == nil {
		resp.Recommendations = []Recommendation{}
	}

	if s.suggester != nil && !req.SkipRemote && len(items) > 0 {
		remote, remoteErr := s.suggest(ctx, items, prefs)
		switch {
		case remoteErr != nil:
			s.logger.Warn("remote suggestions failed, serving engine ranking", "session_id", sessionID, "error", remoteErr)
			resp.State = StateFallback
			resp.Error = apperrors.Wrap(apperrors.CodeLLM, "remote suggestions unavailable", remoteErr).Error()
		case len(remote) > 0:
			history.Record(remote)
			resp.Source = SourceRemote
			resp.Recommendations = remote
		default:
			s.logger.Info("remote suggestions empty, serving engine ranking", "session_id", sessionID)
		}
	}

	resp.DurationMs = s.now().Sub(start).Milliseconds()
	s.logger.Info("recommendation cycle completed",
		"session_id", sessionID,
		"items", len(items),
		"results", len(resp.Recommendations),
		"source", resp.Source,
		"state", resp.State,
		"history", history.Len(),
	)
	return resp, nil
}

func (s *service) ExplainItem(ctx context.Context, itemID int64) (ItemExplanation, error) {
	item, err := s.wardrobe.GetItem(ctx, itemID)
	if err != nil {
		return ItemExplanation{}, err
	}
	prefs, err := s.wardrobe.Preferences(ctx)
	if err != nil {
		return ItemExplanation{}, err
	}

	out := ItemExplanation{ItemID: item.ID, Explanation: ExplainItem(item, prefs)}
	if s.suggester == nil {
		return out, nil
	}
	remote, err := callWithTimeout(ctx, s.cfg.RemoteTimeout, func(ctx context.Context) (string, error) {
		return s.suggester.ExplainItem(ctx, item, prefs)
	})
	if err != nil {
		s.logger.Warn("remote item explanation failed", "item_id", item.ID, "error", err)
		return out, nil
	}
	out.Remote = strings.TrimSpace(remote)
	return out, nil
}

func (s *service) suggest(ctx context.Context, items []wardrobe.Item, prefs wardrobe.Preferences) ([]Recommendation, error) {
	text, err := callWithTimeout(ctx, s.cfg.RemoteTimeout, func(ctx context.Context) (string, error) {
		return s.suggester.Suggest(ctx, items, prefs)
	})
	if err != nil {
		return nil, err
	}
	recs := ParseSuggestions(text, items)
	for i := range recs {
		recs[i].ItemExplanations = explainItems(recs[i].Items, prefs)
	}
	return recs, nil
}

type textResult struct {
	text string
	err  error
}

// callWithTimeout runs fn with a deadline and returns as soon as the deadline passes, even
// if fn ignores its context.
func callWithTimeout(ctx context.Context, timeout time.Duration, fn func(context.Context) (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan textResult, 1)
	go func() {
		text, err := fn(ctx)
		done <- textResult{text: text, err: err}
	}()

	select {
	case res := <-done:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
