package analysis

import (
	"context"
	"sync"

	"github.com/muhammadolammi/cvmatch/internal/documents"
	"github.com/muhammadolammi/cvmatch/internal/logging"
)

type job struct {
	ctx   context.Context
	jd    *documents.Document
	cv    *documents.Document
	reply chan reply
}

type reply struct {
	markdown string
	err      error
}

// Pool bounds the number of concurrent model calls. It is itself an
// Analyzer, so it can sit in front of any other one.
type Pool struct {
	analyzer Analyzer
	jobs     chan job
	done     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

// StartPool starts numWorkers workers draining analyses into analyzer.
func StartPool(analyzer Analyzer, numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	p := &Pool{
		analyzer: analyzer,
		jobs:     make(chan job),
		done:     make(chan struct{}),
	}

	p.wg.Add(numWorkers)
	for i := range numWorkers {
		logging.Default().Debug("analysis worker started", "worker", i+1)
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case j := <-p.jobs:
			if err := j.ctx.Err(); err != nil {
				j.reply <- reply{err: err}
				continue
			}
			logging.FromContext(j.ctx).Debug("worker processing analysis", "worker", id+1)
			md, err := p.analyzer.Analyze(j.ctx, j.jd, j.cv)
			j.reply <- reply{markdown: md, err: err}
		}
	}
}

// Analyze queues the pair and waits for a worker to finish it.
func (p *Pool) Analyze(ctx context.Context, jd, cv *documents.Document) (string, error) {
	j := job{ctx: ctx, jd: jd, cv: cv, reply: make(chan reply, 1)}

	select {
	case <-p.done:
		return "", ErrPoolClosed
	case <-ctx.Done():
		return "", ctx.Err()
	case p.jobs <- j:
	}

	select {
	case r := <-j.reply:
		return r.markdown, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close stops the workers after their current analysis and waits for them.
func (p *Pool) Close() {
	p.once.Do(func() { close(p.done) })
	p.wg.Wait()
}
