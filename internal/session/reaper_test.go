package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/wes-io-live/feed-service/internal/config"
)

type recordingEvicter struct {
	mu    sync.Mutex
	calls []time.Duration
}

func (e *recordingEvicter) EvictIdle(idle time.Duration) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, idle)
	return []string{"expired"}
}

func (e *recordingEvicter) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

func TestReaper_SweepsUntilStopped(t *testing.T) {
	ev := &recordingEvicter{}
	r := NewReaper(ev, config.SessionConfig{
		IdleTimeout:   time.Minute,
		SweepInterval: 5 * time.Millisecond,
	})

	r.Start(context.Background())
	require.Eventually(t, func() bool { return ev.count() >= 2 }, time.Second, time.Millisecond)

	r.Stop()
	select {
	case <-r.Done():
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop")
	}

	ev.mu.Lock()
	defer ev.mu.Unlock()
	for _, idle := range ev.calls {
		assert.Equal(t, time.Minute, idle)
	}
}

func TestReaper_StopsOnContextCancel(t *testing.T) {
	r := NewReaper(&recordingEvicter{}, config.SessionConfig{SweepInterval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	cancel()

	select {
	case <-r.Done():
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop on cancel")
	}
}
