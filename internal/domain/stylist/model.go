package stylist

import "github.com/yanqian/fitgpt/pkg/metrics"

// Config configures the stylist chat.
type Config struct {
	Model       string
	Temperature float32
	// MaxHistory bounds how many past messages are replayed to the model.
	MaxHistory int
}

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request carries the conversation so far, oldest first. The last message must come from
// the user.
type Request struct {
	Messages []Message `json:"messages"`
}

// Response is returned by the sync endpoint.
type Response struct {
	Reply      string              `json:"reply"`
	DurationMs int64               `json:"durationMs,omitempty"`
	TokenUsage *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}

// StreamChunk is a streaming update. The final chunk has Completed set and carries the
// whole reply. A stream cut short ends with a chunk carrying Error instead.
type StreamChunk struct {
	Delta     string `json:"delta,omitempty"`
	Reply     string `json:"reply,omitempty"`
	Completed bool   `json:"completed"`
	Error     string `json:"error,omitempty"`
}
