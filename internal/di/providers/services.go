package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/shelfwrapped/internal/config"
	"github.com/listenupapp/shelfwrapped/internal/logger"
	"github.com/listenupapp/shelfwrapped/internal/sentiment"
	"github.com/listenupapp/shelfwrapped/internal/service"
	"github.com/listenupapp/shelfwrapped/internal/store"
)

// ProvideSentimentScorer provides the review scorer backed by the built-in lexicon.
func ProvideSentimentScorer(i do.Injector) (*sentiment.Scorer, error) {
	log := do.MustInvoke[*logger.Logger](i)

	return sentiment.NewScorer(nil, log.Logger), nil
}

// ProvideEnricher provides the genre and sentiment enricher.
func ProvideEnricher(i do.Injector) (*service.Enricher, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	clientHandle := do.MustInvoke[*GoodreadsClientHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	scorer := do.MustInvoke[*sentiment.Scorer](i)

	return service.NewEnricher(clientHandle.Client, storeHandle.Store, scorer, service.EnricherConfig{
		Workers: cfg.Upstream.Workers,
		Stagger: cfg.Upstream.Stagger,
	}, log.Logger), nil
}

// ProvideWrappedService provides the recap service.
func ProvideWrappedService(i do.Injector) (*service.WrappedService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	clientHandle := do.MustInvoke[*GoodreadsClientHandle](i)
	enricher := do.MustInvoke[*service.Enricher](i)
	recaps := do.MustInvoke[*store.RecapCache](i)

	return service.NewWrappedService(clientHandle.Client, enricher, recaps, log.Logger), nil
}
