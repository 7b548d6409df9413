package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/shelfwrapped/internal/config"
	"github.com/listenupapp/shelfwrapped/internal/goodreads"
	"github.com/listenupapp/shelfwrapped/internal/logger"
)

// GoodreadsClientHandle wraps the upstream client with shutdown capability.
type GoodreadsClientHandle struct {
	*goodreads.Client
}

// Shutdown implements do.Shutdownable.
func (h *GoodreadsClientHandle) Shutdown() error {
	h.Client.Close()
	return nil
}

// ProvideGoodreadsClient provides the rate limited upstream client.
func ProvideGoodreadsClient(i do.Injector) (*GoodreadsClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := goodreads.New(goodreads.Options{
		BaseURL:   cfg.Upstream.BaseURL,
		UserAgent: cfg.Upstream.UserAgent,
		PageSize:  cfg.Upstream.PageSize,
		PageDelay: cfg.Upstream.PageDelay,
		Timeout:   cfg.Upstream.HTTPTimeout,
		RPS:       cfg.Upstream.RPS,
		Burst:     cfg.Upstream.Burst,
	}, log.Logger)

	log.Info("Upstream client initialized",
		"base_url", cfg.Upstream.BaseURL,
		"rps", cfg.Upstream.RPS,
	)

	return &GoodreadsClientHandle{Client: client}, nil
}
