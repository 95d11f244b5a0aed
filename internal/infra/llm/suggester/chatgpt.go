package suggester

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/yanqian/fitgpt/internal/domain/outfit"
	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
	"github.com/yanqian/fitgpt/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/fitgpt/pkg/errors"
)

// Config tunes the remote suggester.
type Config struct {
	Model       string
	Temperature float32
	// MaxPromptTokens caps the outfit prompt. Wardrobe lines that would exceed it are left out.
	MaxPromptTokens int
}

// ChatClient is the subset of the chat completions client the suggester needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// ChatGPT asks an OpenAI-compatible model for outfit suggestions.
type ChatGPT struct {
	cfg     Config
	client  ChatClient
	counter TokenCounter
	logger  *slog.Logger
}

// New constructs the suggester.
func New(cfg Config, client ChatClient, counter TokenCounter, logger *slog.Logger) *ChatGPT {
	if counter == nil {
		counter = NewTokenCounter()
	}
	return &ChatGPT{
		cfg:     cfg,
		client:  client,
		counter: counter,
		logger:  logger.With("component", "llm.suggester"),
	}
}

var _ outfit.Suggester = (*ChatGPT)(nil)

// Suggest returns the raw model text. Parsing is left to the recommendation domain.
func (s *ChatGPT) Suggest(ctx context.Context, items []wardrobe.Item, prefs wardrobe.Preferences) (string, error) {
	prompt, included := s.buildOutfitPrompt(items, prefs)
	if included < len(items) {
		s.logger.Warn("wardrobe truncated to fit prompt budget", "items", len(items), "included", included, "max_tokens", s.cfg.MaxPromptTokens)
	}
	return s.complete(ctx, prompt)
}

// ExplainItem asks for a one or two sentence explanation of a single item.
func (s *ChatGPT) ExplainItem(ctx context.Context, item wardrobe.Item, prefs wardrobe.Preferences) (string, error) {
	return s.complete(ctx, buildItemPrompt(item, prefs))
}

func (s *ChatGPT) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
		Messages:    []chatgpt.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeLLM, "chatgpt request failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.Wrap(apperrors.CodeLLM, "chatgpt returned no choices", nil)
	}
	if resp.Usage != nil {
		s.logger.Debug("chatgpt usage", "prompt_tokens", resp.Usage.PromptTokens, "completion_tokens", resp.Usage.CompletionTokens)
	}
	return resp.Content(), nil
}

// buildOutfitPrompt renders the outfit prompt and reports how many items made it in.
func (s *ChatGPT) buildOutfitPrompt(items []wardrobe.Item, prefs wardrobe.Preferences) (string, int) {
	lines := make([]string, 0, len(items))
	ids := make([]string, 0, len(items))
	budget := s.cfg.MaxPromptTokens
	if budget > 0 {
		budget -= s.counter.Count(renderOutfitPrompt(prefs, nil, nil))
	}
	for _, item := range items {
		line := fmt.Sprintf("%d | %s | %s | %s | %d", item.ID, item.Category, item.Color, item.Season, item.ComfortLevel)
		id := strconv.FormatInt(item.ID, 10)
		if s.cfg.MaxPromptTokens > 0 {
			cost := s.counter.Count(line) + s.counter.Count(id+", ")
			if cost > budget {
				break
			}
			budget -= cost
		}
		lines = append(lines, line)
		ids = append(ids, id)
	}
	return renderOutfitPrompt(prefs, lines, ids), len(lines)
}

func renderOutfitPrompt(prefs wardrobe.Preferences, lines, ids []string) string {
	var b strings.Builder
	b.WriteString("You are a fashion stylist AI. Given a wardrobe and user preferences, recommend exactly 5 unique outfit combinations.\n\n")
	writePreferences(&b, prefs)
	b.WriteString("\nWARDROBE (ID | Category | Color | Season | Comfort):\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nThe ONLY valid item IDs are: ")
	b.WriteString(strings.Join(ids, ", "))
	b.WriteString("\nDo NOT invent or use any IDs not listed above.\n\n")
	b.WriteString("For each outfit, respond in EXACTLY this format (separate outfits with a blank line):\n\n")
	b.WriteString("OUTFIT: id1, id2, id3\nSCORE: 2.5\nEXPLANATION: A brief reason why this outfit works well together.\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- ONLY use item IDs from the wardrobe above, never invent new IDs\n")
	b.WriteString("- Recommend exactly 5 outfits, each one must be a unique combination (no duplicate outfits)\n")
	b.WriteString("- Score from 0.0 to 3.0\n")
	b.WriteString("- Each outfit should have 2-5 items\n")
	b.WriteString("- Prioritize color harmony, season matching, and comfort\n")
	b.WriteString("- Consider the user's style preference")
	return b.String()
}

func buildItemPrompt(item wardrobe.Item, prefs wardrobe.Preferences) string {
	var b strings.Builder
	b.WriteString("You are a fashion stylist AI. Give a brief 1-2 sentence explanation of how this clothing item fits the user's style.\n\n")
	fmt.Fprintf(&b, "ITEM: %s, %s, %s season, comfort %d/5\n\n", item.Category, item.Color, item.Season, item.ComfortLevel)
	writePreferences(&b, prefs)
	b.WriteString("\nRespond with ONLY the explanation, no labels or prefixes.")
	return b.String()
}

func writePreferences(b *strings.Builder, prefs wardrobe.Preferences) {
	b.WriteString("USER PREFERENCES:\n")
	fmt.Fprintf(b, "- Body type: %s\n", prefs.BodyType)
	fmt.Fprintf(b, "- Style: %s\n", prefs.Style)
	fmt.Fprintf(b, "- Comfort preference: %d/5\n", prefs.Comfort)
	fmt.Fprintf(b, "- Preferred seasons: %s\n", strings.Join(prefs.Seasons, ", "))
}
