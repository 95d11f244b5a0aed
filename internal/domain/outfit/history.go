package outfit

import "sync"

// History remembers the signatures surfaced in recent cycles of one session. It is bounded
// and evicts the oldest signature first. Safe for concurrent use.
type History struct {
	mu      sync.Mutex
	limit   int
	entries []Signature
	index   map[Signature]struct{}
}

// NewHistory builds an empty history holding at most limit signatures.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistorySize
	}
	return &History{
		limit: limit,
		index: make(map[Signature]struct{}, limit),
	}
}

// Snapshot returns the signatures from oldest to newest.
func (h *History) Snapshot() []Signature {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Signature(nil), h.entries...)
}

// Record appends the signatures of recs. Signatures already present keep their position.
func (h *History) Record(recs []Recommendation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recordLocked(recs)
}

// Cycle runs one recommendation cycle under the history lock: fn receives the recent
// signatures and its result is recorded before another cycle can read the history.
func (h *History) Cycle(fn func(recent []Signature) []Recommendation) []Recommendation {
	h.mu.Lock()
	defer h.mu.Unlock()
	recs := fn(append([]Signature(nil), h.entries...))
	h.recordLocked(recs)
	return recs
}

func (h *History) recordLocked(recs []Recommendation) {
	for _, rec := range recs {
		sig := rec.Signature()
		if _, ok := h.index[sig]; ok {
			continue
		}
		h.entries = append(h.entries, sig)
		h.index[sig] = struct{}{}
	}
	for len(h.entries) > h.limit {
		delete(h.index, h.entries[0])
		h.entries = h.entries[1:]
	}
}

// Contains reports whether sig was shown recently.
func (h *History) Contains(sig Signature) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.index[sig]
	return ok
}

// Len returns the number of remembered signatures.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
