// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-agro-keeper/internal/config"
	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called and whether it stopped.
type mockWorker struct {
	runCount atomic.Int32
	stopped  atomic.Bool
}

func (m *mockWorker) Run(ctx context.Context) {
	m.runCount.Add(1)
	<-ctx.Done()
	m.stopped.Store(true)
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1, w2, w3 := &mockWorker{}, &mockWorker{}, &mockWorker{}
	ws := &Workers{workers: []Worker{w1, w2, w3}}

	ctx, cancel := context.WithCancel(context.Background())
	ws.Run(ctx)
	cancel()
	ws.Wait()

	for i, w := range []*mockWorker{w1, w2, w3} {
		assert.EqualValues(t, 1, w.runCount.Load(), "worker[%d]", i)
		assert.True(t, w.stopped.Load(), "worker[%d] must stop on cancel", i)
	}
}

func TestWorkers_Run_DoesNotBlock(t *testing.T) {
	w := &mockWorker{}
	ws := &Workers{workers: []Worker{w}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run must return while workers are still running")
	}

	cancel()
	ws.Wait()
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{}

	// Should not panic or block when there are no workers
	ws.Run(context.Background())
	ws.Wait()
}

func TestNewWorkers(t *testing.T) {
	ws := NewWorkers(&fakePruner{}, config.Workers{TokenPruneInterval: time.Minute}, logger.Nop())

	require.Len(t, ws.workers, 1)
	pruner, ok := ws.workers[0].(*ExpiredTokenPruner)
	require.True(t, ok)
	assert.Equal(t, time.Minute, pruner.interval)
}
