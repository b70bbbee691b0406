package todos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweeper_FlipsOverdueTodos(t *testing.T) {
	svc, store, _ := newTestService(t)
	late := store.put(Todo{Description: "late", Status: StatusNotDone, CreationDatetime: testStart, DueDatetime: testStart.Add(-time.Minute)})

	sweeper := NewSweeper(svc, 10*time.Millisecond, zerolog.Nop())
	sweeper.Start(context.Background())
	t.Cleanup(sweeper.Stop)

	assert.Eventually(t, func() bool {
		return store.get(late.ID).Status == StatusPastDue
	}, time.Second, 5*time.Millisecond)
}

func TestSweeper_SurvivesFailedTicks(t *testing.T) {
	svc, store, _ := newTestService(t)
	late := store.put(Todo{Description: "late", Status: StatusNotDone, CreationDatetime: testStart, DueDatetime: testStart.Add(-time.Minute)})
	store.setFindErr(errors.New("connection refused"))

	sweeper := NewSweeper(svc, 5*time.Millisecond, zerolog.Nop())
	sweeper.Start(context.Background())
	t.Cleanup(sweeper.Stop)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, StatusNotDone, store.get(late.ID).Status)

	store.setFindErr(nil)
	assert.Eventually(t, func() bool {
		return store.get(late.ID).Status == StatusPastDue
	}, time.Second, 5*time.Millisecond)
}

func TestSweeper_StartStopLifecycle(t *testing.T) {
	svc, _, _ := newTestService(t)
	sweeper := NewSweeper(svc, time.Hour, zerolog.Nop())

	sweeper.Stop() // not started yet

	sweeper.Start(context.Background())
	first := sweeper.done
	sweeper.Start(context.Background())
	assert.Equal(t, first, sweeper.done, "second Start is a no-op")

	stopped := make(chan struct{})
	go func() {
		sweeper.Stop()
		sweeper.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		require.FailNow(t, "Stop did not return")
	}

	// A stopped sweeper can be started again.
	sweeper.Start(context.Background())
	sweeper.Stop()
}

func TestSweeper_StopsWithParentContext(t *testing.T) {
	svc, _, _ := newTestService(t)
	sweeper := NewSweeper(svc, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	sweeper.Start(ctx)
	done := sweeper.done
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "sweeper did not exit after context cancel")
	}
	sweeper.Stop()
}
