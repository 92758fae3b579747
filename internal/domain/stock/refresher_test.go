package stock

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeRefreshTarget struct {
	calls atomic.Int64
	err   error
}

func (f *fakeRefreshTarget) Refresh(_ context.Context) error {
	f.calls.Add(1)
	return f.err
}

func TestRefresher_RebuildsUntilCancelled(t *testing.T) {
	target := &fakeRefreshTarget{}
	r := NewRefresher(target, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return target.calls.Load() >= 3 },
		time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop on cancel")
	}
}

func TestRefresher_FailedRebuildRetriesNextTick(t *testing.T) {
	target := &fakeRefreshTarget{err: errors.New("view is locked")}
	r := NewRefresher(target, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	r.Run(ctx)

	assert.GreaterOrEqual(t, target.calls.Load(), int64(2))
}
