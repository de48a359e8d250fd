package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()

	var a, b int32
	s.AddJob("a", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&a, 1)
		return nil
	})
	s.AddJob("b", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&b, 1)
		return errors.New("boom")
	})

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), atomic.LoadInt32(&a))
	assert.Equal(t, int32(1), atomic.LoadInt32(&b), "a failing job must not stop the others")
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler()

	var runs int32
	s.AddJob("tick", 5*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) >= 2 }, time.Second, time.Millisecond)
	s.Stop()

	after := atomic.LoadInt32(&runs)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&runs), "no runs after Stop")
}

func TestScheduler_AddAfterStartIgnored(t *testing.T) {
	s := NewScheduler()
	s.Start(context.Background())
	defer s.Stop()

	s.AddJob("late", time.Millisecond, func(ctx context.Context) error { return nil })
	assert.Empty(t, s.jobs)
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	assert.NotPanics(t, func() { NewScheduler().Stop() })
}
