package di

import (
	"flag"
	"path/filepath"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/shelfwrapped/internal/config"
	"github.com/listenupapp/shelfwrapped/internal/di/providers"
	"github.com/listenupapp/shelfwrapped/internal/logger"
	"github.com/listenupapp/shelfwrapped/internal/service"
)

func TestPipelineContainer_ResolvesWrappedService(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := config.Load(fs, []string{"-env-file", filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)

	injector := NewPipelineContainer(cfg, logger.Discard())

	svc, err := do.Invoke[*service.WrappedService](injector)
	require.NoError(t, err)
	assert.NotNil(t, svc)

	handle, err := do.Invoke[*providers.StoreHandle](injector)
	require.NoError(t, err)
	n, err := handle.CountCachedGenres()
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = do.Invoke[*providers.HTTPServerHandle](injector)
	assert.Error(t, err, "pipeline container has no HTTP server")

	injector.Shutdown()
}
