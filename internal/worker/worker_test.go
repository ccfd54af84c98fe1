package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPool_StartStop(t *testing.T) {
	var processed atomic.Int64
	processor := func(ctx context.Context, job int) error {
		processed.Add(1)
		return nil
	}

	pool := NewPool(2, 10, processor)

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	for i := 0; i < 5; i++ {
		pool.Submit(i)
	}

	time.Sleep(50 * time.Millisecond)

	cancel()
	pool.Stop()

	if processed.Load() != 5 {
		t.Errorf("expected 5 jobs processed, got %d", processed.Load())
	}
}

func TestPool_DrainsOnStop(t *testing.T) {
	var processed atomic.Int64
	processor := func(ctx context.Context, job string) error {
		processed.Add(1)
		return nil
	}

	pool := NewPool(4, 100, processor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)

	for i := 0; i < 100; i++ {
		pool.Submit("job")
	}
	pool.Stop()

	if processed.Load() != 100 {
		t.Errorf("expected 100 jobs processed, got %d", processed.Load())
	}
}

func TestPool_StructJobs(t *testing.T) {
	type payload struct {
		n int
	}

	var sum atomic.Int64
	pool := NewPool(2, 10, func(ctx context.Context, job payload) error {
		sum.Add(int64(job.n))
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)

	for i := 1; i <= 10; i++ {
		pool.Submit(payload{n: i})
	}
	pool.Stop()

	if sum.Load() != 55 {
		t.Errorf("expected sum 55, got %d", sum.Load())
	}
}
