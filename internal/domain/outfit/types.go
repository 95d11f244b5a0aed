package outfit

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
)

const (
	// MaxRecommendations bounds every result list.
	MaxRecommendations = 5
	// DefaultHistorySize bounds the recently-shown history of a session.
	DefaultHistorySize = 20
	// MaxScore is the upper bound of an outfit score after bonuses.
	MaxScore = 3.0
)

// Recommendation is one ranked outfit with its justification.
type Recommendation struct {
	Items            []wardrobe.Item  `json:"items"`
	Score            float64          `json:"score"`
	Explanation      string           `json:"explanation"`
	ItemExplanations map[int64]string `json:"itemExplanations,omitempty"`
}

// Signature returns the id-set key of the recommendation.
func (r Recommendation) Signature() Signature {
	return SignatureOf(r.Items)
}

// Signature is the canonical form of an outfit's item id set: ids sorted ascending and
// joined by commas. Two outfits with the same items share a signature regardless of order.
type Signature string

// SignatureOf builds the signature for a list of items.
func SignatureOf(items []wardrobe.Item) Signature {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return SignatureOfIDs(ids)
}

// SignatureOfIDs builds the signature for a list of ids. Duplicate ids collapse.
func SignatureOfIDs(ids []int64) Signature {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, 0, len(sorted))
	for i, id := range sorted {
		if i > 0 && id == sorted[i-1] {
			continue
		}
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return Signature(strings.Join(parts, ","))
}

// Source reports which producer ranked the list shown to the user.
type Source string

const (
	// SourceEngine means the deterministic engine produced the displayed list.
	SourceEngine Source = "engine"
	// SourceRemote means the remote suggester produced the displayed list.
	SourceRemote Source = "remote"
)

// State is the outcome of a recommendation cycle.
type State string

const (
	// StateSuccess is returned when the displayed list came from the expected producer.
	StateSuccess State = "success"
	// StateFallback is returned when the remote suggester failed and the engine list is shown.
	StateFallback State = "fallback"
)

// Request is the payload accepted by the recommendation service.
type Request struct {
	SessionID string `json:"sessionId,omitempty"`
	// SkipRemote disables the remote suggester for this cycle.
	SkipRemote bool `json:"skipRemote,omitempty"`
}

// Response is returned to API consumers.
type Response struct {
	SessionID       string           `json:"sessionId"`
	State           State            `json:"state"`
	Source          Source           `json:"source"`
	Recommendations []Recommendation `json:"recommendations"`
	Error           string           `json:"error,omitempty"`
	DurationMs      int64            `json:"durationMs,omitempty"`
}

// ItemExplanation carries both the engine and the remote explanation of one item.
type ItemExplanation struct {
	ItemID      int64  `json:"itemId"`
	Explanation string `json:"explanation"`
	Remote      string `json:"remote,omitempty"`
}

// Config holds runtime knobs for the recommendation service.
type Config struct {
	HistorySize   int
	MaxSessions   int
	SessionTTL    time.Duration
	RemoteTimeout time.Duration
}
