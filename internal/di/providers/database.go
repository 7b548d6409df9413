package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/shelfwrapped/internal/config"
	"github.com/listenupapp/shelfwrapped/internal/logger"
	"github.com/listenupapp/shelfwrapped/internal/store"
)

// StoreHandle wraps the genre store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the in-memory genre cache.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	st, err := store.New(log.Logger, cfg.Cache.GenreTTL)
	if err != nil {
		return nil, err
	}

	log.Info("Genre cache opened", "ttl", cfg.Cache.GenreTTL)
	return &StoreHandle{Store: st}, nil
}

// ProvideRecapCache provides the bounded cache of finished recaps.
func ProvideRecapCache(i do.Injector) (*store.RecapCache, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return store.NewRecapCache(cfg.Cache.RecapMaxEntries, cfg.Cache.RecapTTL), nil
}
