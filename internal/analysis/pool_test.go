package analysis_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/cvmatch/internal/analysis"
	"github.com/muhammadolammi/cvmatch/internal/documents"
)

// blockingAnalyzer tracks how many calls run at once and blocks each call
// until release is closed.
type blockingAnalyzer struct {
	running atomic.Int32
	peak    atomic.Int32
	release chan struct{}
}

func (b *blockingAnalyzer) Analyze(ctx context.Context, _, _ *documents.Document) (string, error) {
	n := b.running.Add(1)
	defer b.running.Add(-1)
	for {
		peak := b.peak.Load()
		if n <= peak || b.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	select {
	case <-b.release:
		return "done", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	inner := &blockingAnalyzer{release: make(chan struct{})}
	pool := analysis.StartPool(inner, 2)
	defer pool.Close()

	jd, cv := testDocs()
	results := make(chan string, 5)
	for range 5 {
		go func() {
			out, err := pool.Analyze(context.Background(), jd, cv)
			if err != nil {
				out = err.Error()
			}
			results <- out
		}()
	}

	require.Eventually(t, func() bool { return inner.running.Load() == 2 }, time.Second, 5*time.Millisecond)
	close(inner.release)

	for range 5 {
		assert.Equal(t, "done", <-results)
	}
	assert.LessOrEqual(t, inner.peak.Load(), int32(2))
}

func TestPool_ContextCancelledWhileWaiting(t *testing.T) {
	t.Parallel()

	inner := &blockingAnalyzer{release: make(chan struct{})}
	pool := analysis.StartPool(inner, 1)
	defer pool.Close()
	defer close(inner.release)

	jd, cv := testDocs()
	go func() { _, _ = pool.Analyze(context.Background(), jd, cv) }()
	require.Eventually(t, func() bool { return inner.running.Load() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := pool.Analyze(ctx, jd, cv)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPool_Closed(t *testing.T) {
	t.Parallel()

	pool := analysis.StartPool(&fakeAnalyzer{output: "x"}, 1)
	pool.Close()

	jd, cv := testDocs()
	_, err := pool.Analyze(context.Background(), jd, cv)
	require.ErrorIs(t, err, analysis.ErrPoolClosed)
}
