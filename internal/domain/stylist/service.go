package stylist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
	"github.com/yanqian/fitgpt/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/fitgpt/pkg/errors"
	"github.com/yanqian/fitgpt/pkg/metrics"
)

const defaultMaxHistory = 20

// Service answers free-form styling questions grounded in the user's wardrobe.
type Service interface {
	Chat(ctx context.Context, req Request) (Response, error)
	StreamChat(ctx context.Context, req Request) (<-chan StreamChunk, error)
}

// ChatClient is the chat completions client used by the stylist.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
	CreateChatCompletionStream(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.Stream, error)
}

// Wardrobe provides the context injected into the system prompt.
type Wardrobe interface {
	ActiveItems(ctx context.Context) ([]wardrobe.Item, error)
	Preferences(ctx context.Context) (wardrobe.Preferences, error)
}

type service struct {
	cfg      Config
	client   ChatClient
	wardrobe Wardrobe
	logger   *slog.Logger
	now      func() time.Time
}

// NewService is a wire provider for the stylist domain.
func NewService(cfg Config, client ChatClient, wardrobe Wardrobe, logger *slog.Logger) Service {
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = defaultMaxHistory
	}
	return &service{
		cfg:      cfg,
		client:   client,
		wardrobe: wardrobe,
		logger:   logger.With("component", "stylist.service"),
		now:      time.Now,
	}
}

func (s *service) Chat(ctx context.Context, req Request) (Response, error) {
	start := s.now()
	messages, err := s.buildMessages(ctx, req)
	if err != nil {
		return Response{}, err
	}

	resp, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    messages,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeLLM, "chatgpt request failed", err)
	}
	reply := resp.Content()
	if reply == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeLLM, "chatgpt returned an empty reply", nil)
	}

	out := Response{Reply: reply, DurationMs: s.now().Sub(start).Milliseconds()}
	if resp.Usage != nil {
		out.TokenUsage = metrics.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}.Ptr()
	}
	s.logger.Info("stylist reply generated", "turns", len(req.Messages), "duration_ms", out.DurationMs)
	return out, nil
}

func (s *service) StreamChat(ctx context.Context, req Request) (<-chan StreamChunk, error) {
	messages, err := s.buildMessages(ctx, req)
	if err != nil {
		return nil, err
	}

	stream, err := s.client.CreateChatCompletionStream(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    messages,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeLLM, "chatgpt stream request failed", err)
	}

	out := make(chan StreamChunk)
	go func() {
		defer close(out)
		defer stream.Close()

		var builder strings.Builder
		for {
			chunk, recvErr := stream.Recv()
			if recvErr != nil {
				if errors.Is(recvErr, io.EOF) {
					break
				}
				s.logger.Error("chatgpt stream recv failed", "error", recvErr)
				failed := apperrors.Wrap(apperrors.CodeLLM, "chatgpt stream interrupted", recvErr)
				select {
				case out <- StreamChunk{Error: failed.Error()}:
				case <-ctx.Done():
				}
				return
			}
			for _, choice := range chunk.Choices {
				if choice.Delta.Content == "" {
					continue
				}
				builder.WriteString(choice.Delta.Content)
				select {
				case out <- StreamChunk{Delta: choice.Delta.Content}:
				case <-ctx.Done():
					return
				}
			}
		}

		reply := strings.TrimSpace(builder.String())
		if reply == "" {
			return
		}
		select {
		case out <- StreamChunk{Reply: reply, Completed: true}:
		case <-ctx.Done():
		}
	}()
	return out, nil
}

func (s *service) buildMessages(ctx context.Context, req Request) ([]chatgpt.Message, error) {
	history := make([]chatgpt.Message, 0, len(req.Messages))
	for _, msg := range req.Messages {
		role := strings.ToLower(strings.TrimSpace(msg.Role))
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		if role != "user" && role != "assistant" {
			return nil, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unsupported role %q", msg.Role), nil)
		}
		history = append(history, chatgpt.Message{Role: role, Content: content})
	}
	if len(history) == 0 || history[len(history)-1].Role != "user" {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "conversation must end with a user message", nil)
	}
	if len(history) > s.cfg.MaxHistory {
		history = history[len(history)-s.cfg.MaxHistory:]
	}

	items, err := s.wardrobe.ActiveItems(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := s.wardrobe.Preferences(ctx)
	if err != nil {
		return nil, err
	}

	messages := make([]chatgpt.Message, 0, len(history)+1)
	messages = append(messages, chatgpt.Message{Role: "system", Content: systemPrompt(wardrobeContext(items, prefs))})
	return append(messages, history...), nil
}
