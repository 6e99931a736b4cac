// Package parallel provides the worker pool used to evaluate frames.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines that execute submitted work.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queue   chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// closeMu lets Close wait for in-flight ExecuteAll calls to finish
	// queueing before the workers stop.
	closeMu sync.RWMutex
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), workers*4),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case work := <-p.queue:
			work()
		}
	}
}

// ExecuteAll runs every work item and waits for all of them to complete.
// On a closed pool the items run on the calling goroutine.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}

	p.closeMu.RLock()
	if !p.running.Load() {
		p.closeMu.RUnlock()
		for _, fn := range work {
			if fn != nil {
				fn()
			}
		}
		return
	}

	var wg sync.WaitGroup
	for _, fn := range work {
		if fn == nil {
			continue
		}
		wg.Add(1)
		p.queue <- func() {
			defer wg.Done()
			fn()
		}
	}
	p.closeMu.RUnlock()
	wg.Wait()
}

// Close stops the workers after queued work has drained.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()

	if !p.running.CompareAndSwap(true, false) {
		return
	}

	// Drain anything still queued before releasing the workers.
	for drained := false; !drained; {
		select {
		case work := <-p.queue:
			work()
		default:
			drained = true
		}
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// Band is a half-open range [Start, End) of rows.
type Band struct {
	Start, End int
}

// Bands splits n rows into at most parts contiguous, non-empty bands of
// nearly equal size.
func Bands(n, parts int) []Band {
	if n <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > n {
		parts = n
	}
	bands := make([]Band, 0, parts)
	size, extra := n/parts, n%parts
	start := 0
	for i := range parts {
		end := start + size
		if i < extra {
			end++
		}
		bands = append(bands, Band{Start: start, End: end})
		start = end
	}
	return bands
}
