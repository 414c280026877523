package session

import (
	"context"
	"time"

	"github.com/weiawesome/wes-io-live/feed-service/internal/config"
	pkglog "github.com/weiawesome/wes-io-live/feed-service/pkg/log"
)

// Evicter drops sessions that have been idle for longer than idle.
type Evicter interface {
	EvictIdle(idle time.Duration) []string
}

// Reaper periodically evicts idle sessions.
type Reaper struct {
	sessions Evicter
	cfg      config.SessionConfig
	quit     chan struct{}
	doneCh   chan struct{}
}

// NewReaper creates a new Reaper.
func NewReaper(sessions Evicter, cfg config.SessionConfig) *Reaper {
	return &Reaper{
		sessions: sessions,
		cfg:      cfg,
		quit:     make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the reaper in a background goroutine.
func (r *Reaper) Start(ctx context.Context) {
	go r.run(ctx)
}

// Stop signals the reaper to stop and returns immediately.
// Call Done() to wait for it to exit.
func (r *Reaper) Stop() {
	close(r.quit)
}

// Done returns a channel that is closed when the reaper has fully stopped.
func (r *Reaper) Done() <-chan struct{} {
	return r.doneCh
}

func (r *Reaper) run(ctx context.Context) {
	defer close(r.doneCh)

	interval := r.cfg.SweepInterval
	if interval <= 0 {
		interval = 60 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

func (r *Reaper) sweep() {
	l := pkglog.L()

	idle := r.cfg.IdleTimeout
	if idle <= 0 {
		idle = 30 * time.Minute
	}

	evicted := r.sessions.EvictIdle(idle)
	if len(evicted) == 0 {
		l.Debug().Msg("reaper: no idle sessions")
		return
	}

	for _, id := range evicted {
		l.Info().Str(pkglog.FieldSessionID, id).Dur("idle", idle).Msg("reaper: session evicted")
	}
	l.Info().Int("count", len(evicted)).Msg("reaper: sweep complete")
}
