// Package di provides dependency injection configuration for Shelf Wrapped.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/shelfwrapped/internal/config"
	"github.com/listenupapp/shelfwrapped/internal/di/providers"
	"github.com/listenupapp/shelfwrapped/internal/logger"
	"github.com/listenupapp/shelfwrapped/internal/sentiment"
	"github.com/listenupapp/shelfwrapped/internal/service"
	"github.com/listenupapp/shelfwrapped/internal/store"
)

// NewContainer creates and configures the DI container for the HTTP server.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	providePipeline(injector)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// NewPipelineContainer creates a container for one-off recaps from an
// already loaded config and logger. It has no HTTP server.
func NewPipelineContainer(cfg *config.Config, log *logger.Logger) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, log)

	providePipeline(injector)

	return injector
}

func providePipeline(injector do.Injector) {
	// Caches
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideRecapCache)

	// Upstream
	do.Provide(injector, providers.ProvideGoodreadsClient)

	// Business services
	do.Provide(injector, providers.ProvideSentimentScorer)
	do.Provide(injector, providers.ProvideEnricher)
	do.Provide(injector, providers.ProvideWrappedService)
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*store.RecapCache](injector)
	_ = do.MustInvoke[*providers.GoodreadsClientHandle](injector)
	_ = do.MustInvoke[*sentiment.Scorer](injector)
	_ = do.MustInvoke[*service.Enricher](injector)
	_ = do.MustInvoke[*service.WrappedService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
