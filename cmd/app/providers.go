package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/fitgpt/internal/domain/outfit"
	"github.com/yanqian/fitgpt/internal/domain/stylist"
	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
	"github.com/yanqian/fitgpt/internal/infra/config"
	"github.com/yanqian/fitgpt/internal/infra/imagestore"
	"github.com/yanqian/fitgpt/internal/infra/llm/chatgpt"
	"github.com/yanqian/fitgpt/internal/infra/llm/suggester"
	"github.com/yanqian/fitgpt/internal/infra/prefstore"
	"github.com/yanqian/fitgpt/internal/infra/wardroberepo"
	httpiface "github.com/yanqian/fitgpt/internal/interface/http"
)

// memoryImagesURL is where the HTTP layer serves images kept in memory.
const memoryImagesURL = "/api/v1/images"

var errLLMNotConfigured = errors.New("llm api key not configured")

type inventoryStore interface {
	wardrobe.Repository
	wardrobe.OutfitRepository
}

// imageBackend pairs the storage used by the wardrobe with an optional reader for the
// HTTP layer. reader is nil when photos are served by the bucket.
type imageBackend struct {
	storage wardrobe.ImageStorage
	reader  httpiface.ImageReader
}

func provideRecommendationConfig(cfg *config.Config) outfit.Config {
	return outfit.Config{
		HistorySize:   cfg.Recommendation.HistorySize,
		MaxSessions:   cfg.Recommendation.MaxSessions,
		SessionTTL:    cfg.Recommendation.SessionTTL,
		RemoteTimeout: cfg.Recommendation.RemoteTimeout,
	}
}

func provideStylistConfig(cfg *config.Config) stylist.Config {
	return stylist.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxHistory:  cfg.Stylist.MaxHistory,
	}
}

func provideSuggesterConfig(cfg *config.Config) suggester.Config {
	return suggester.Config{
		Model:           cfg.LLM.Model,
		Temperature:     cfg.LLM.Temperature,
		MaxPromptTokens: cfg.Recommendation.MaxPromptTokens,
	}
}

// provideChatClient returns the ChatGPT client, or a client that always fails when no API
// key is configured so the engine keeps working offline.
func provideChatClient(cfg *config.Config, logger *slog.Logger) stylist.ChatClient {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Warn("llm api key not set, remote suggestions and stylist chat disabled")
		return unavailableChatClient{}
	}
	client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout)
	if err != nil {
		logger.Error("failed to build chatgpt client, remote features disabled", "error", err)
		return unavailableChatClient{}
	}
	return client
}

func provideSuggester(cfg *config.Config, suggesterCfg suggester.Config, client stylist.ChatClient, logger *slog.Logger) outfit.Suggester {
	if _, offline := client.(unavailableChatClient); offline || !cfg.Recommendation.RemoteEnabled {
		logger.Info("remote outfit suggestions disabled")
		return nil
	}
	return suggester.New(suggesterCfg, client, suggester.NewTokenCounter(), logger)
}

func provideOutfitWardrobe(svc wardrobe.Service) outfit.Wardrobe {
	return svc
}

func provideStylistWardrobe(svc wardrobe.Service) stylist.Wardrobe {
	return svc
}

func provideInventoryStore(cfg *config.Config, logger *slog.Logger) inventoryStore {
	fallback := wardroberepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Storage.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory wardrobe repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory wardrobe repository", "error", err)
		return fallback
	}
	if cfg.Storage.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Storage.Postgres.MaxConns
	}
	if cfg.Storage.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Storage.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory wardrobe repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory wardrobe repository", "error", err)
		pool.Close()
		return fallback
	}
	repo := wardroberepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("postgres schema setup failed, using memory wardrobe repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("postgres wardrobe repository enabled")
	return repo
}

func provideItemRepository(store inventoryStore) wardrobe.Repository {
	return store
}

func provideOutfitRepository(store inventoryStore) wardrobe.OutfitRepository {
	return store
}

func providePreferenceStore(cfg *config.Config, logger *slog.Logger) wardrobe.PreferenceStore {
	if cfg.Storage.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg.Storage.Valkey.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return prefstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return prefstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("valkey preference store enabled", "addr", cfg.Storage.Valkey.Addr)
			return prefstore.NewValkeyStore(client, cfg.Storage.Valkey.Prefix)
		}
	}
	return prefstore.NewMemoryStore()
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideImageBackend(cfg *config.Config, logger *slog.Logger) imageBackend {
	images := cfg.Storage.Images
	if images.Configured() {
		storage, err := imagestore.NewR2Storage(imagestore.R2Options{
			Endpoint:      images.Endpoint,
			AccessKey:     images.AccessKey,
			SecretKey:     images.SecretKey,
			Bucket:        images.Bucket,
			Region:        images.Region,
			PublicBaseURL: images.PublicBaseURL,
		}, logger)
		if err == nil {
			logger.Info("object storage for item images enabled", "bucket", images.Bucket)
			return imageBackend{storage: storage}
		}
		logger.Error("failed to initialize object storage, keeping images in memory", "error", err)
	}
	memory := imagestore.NewMemoryStorage(memoryImagesURL)
	return imageBackend{storage: memory, reader: memory}
}

func provideImageStorage(backend imageBackend) wardrobe.ImageStorage {
	return backend.storage
}

func provideImageReader(backend imageBackend) httpiface.ImageReader {
	return backend.reader
}

type unavailableChatClient struct{}

func (unavailableChatClient) CreateChatCompletion(context.Context, chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	return chatgpt.ChatCompletionResponse{}, errLLMNotConfigured
}

func (unavailableChatClient) CreateChatCompletionStream(context.Context, chatgpt.ChatCompletionRequest) (chatgpt.Stream, error) {
	return nil, errLLMNotConfigured
}
