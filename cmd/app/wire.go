//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/fitgpt/internal/bootstrap"
	"github.com/yanqian/fitgpt/internal/domain/outfit"
	"github.com/yanqian/fitgpt/internal/domain/stylist"
	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
	"github.com/yanqian/fitgpt/internal/infra/config"
	httpiface "github.com/yanqian/fitgpt/internal/interface/http"
	"github.com/yanqian/fitgpt/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideRecommendationConfig,
		provideStylistConfig,
		provideSuggesterConfig,
		provideChatClient,
		provideSuggester,
		provideInventoryStore,
		provideItemRepository,
		provideOutfitRepository,
		providePreferenceStore,
		provideImageBackend,
		provideImageStorage,
		provideImageReader,
		wardrobe.NewService,
		provideOutfitWardrobe,
		provideStylistWardrobe,
		outfit.NewService,
		stylist.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
