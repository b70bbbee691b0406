package todos

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper periodically runs the past-due sweep in the background.
// A failed tick is logged and the next tick runs as usual.
type Sweeper struct {
	svc      *Service
	interval time.Duration
	log      zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSweeper(svc *Service, interval time.Duration, log zerolog.Logger) *Sweeper {
	return &Sweeper{
		svc:      svc,
		interval: interval,
		log:      log.With().Str("component", "past-due-sweeper").Logger(),
	}
}

// Start launches the sweep loop. It returns immediately; calling Start on a
// running sweeper does nothing. The loop ends when ctx is cancelled or Stop
// is called.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx, s.done)
	s.log.Info().Dur("interval", s.interval).Msg("past-due sweeper started")
}

// Stop cancels the loop and waits for an in-flight sweep to return.
// It is safe to call more than once.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
	s.log.Info().Msg("past-due sweeper stopped")
}

func (s *Sweeper) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("past-due sweep panicked")
		}
	}()

	count, err := s.svc.RunPastDueSweep(ctx, s.svc.clock())
	if err != nil {
		s.log.Error().Err(err).Msg("past-due sweep failed")
		return
	}
	s.log.Debug().Int("count", count).Msg("past-due sweep finished")
}
