package server

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-agro-keeper/internal/config"
	"github.com/MKhiriev/go-agro-keeper/internal/handler"
	"github.com/MKhiriev/go-agro-keeper/internal/handler/http"
	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/internal/service"
	"github.com/MKhiriev/go-agro-keeper/internal/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPruner struct {
	calls chan struct{}
}

func (c *countingPruner) PruneExpiredTokens(ctx context.Context) (int64, error) {
	select {
	case c.calls <- struct{}{}:
	default:
	}
	return 0, nil
}

func newTestHandlers(cfg config.Server) *handler.Handlers {
	return &handler.Handlers{HTTP: http.NewHandler(&service.Services{}, cfg, logger.Nop())}
}

func TestNewServer_NoHTTPAddress(t *testing.T) {
	s, err := NewServer(newTestHandlers(config.Server{}), nil, config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestNewServer_DefaultShutdownTimeout(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0"}

	s, err := NewServer(newTestHandlers(cfg), nil, cfg, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, defaultShutdownTimeout, s.(*server).shutdownTimeout)
}

func TestServer_RunStopsOnContextCancel(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", ShutdownTimeout: time.Second}
	pruner := &countingPruner{calls: make(chan struct{}, 1)}
	ws := workers.NewWorkers(pruner, config.Workers{TokenPruneInterval: time.Hour}, logger.Nop())

	s, err := NewServer(newTestHandlers(cfg), ws, cfg, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.(*server).run(ctx)
	}()

	select {
	case <-pruner.calls:
	case <-time.After(time.Second):
		t.Fatal("workers were not started")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestServer_RunReturnsListenError(t *testing.T) {
	cfg := config.Server{HTTPAddress: "256.0.0.1:bad"}

	s, err := NewServer(newTestHandlers(cfg), nil, cfg, logger.Nop())
	require.NoError(t, err)

	err = s.(*server).run(context.Background())
	assert.Error(t, err)
}
