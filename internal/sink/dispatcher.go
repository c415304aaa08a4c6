package sink

import (
	"context"
	"slices"
	"sync"

	"github.com/MrSnakeDoc/archivetag/internal/logger"
)

// DefaultQueueSize bounds the number of pushes waiting for the worker
const DefaultQueueSize = 64

type job struct {
	url  string
	tags []string
	done chan Result
}

// Pending is a handle on an enqueued push
type Pending struct {
	done <-chan Result
}

// Wait blocks until the push completes or ctx ends.
// A push whose caller gave up still runs; only its result is dropped.
func (p *Pending) Wait(ctx context.Context) (Result, error) {
	select {
	case r := <-p.done:
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Dispatcher runs remote pushes on a single worker, in enqueue order.
// Callers enqueue while holding their own write lock so the remote sees
// mutations in the same order they were persisted.
type Dispatcher struct {
	pusher Pusher
	logger logger.Logger

	mu     sync.Mutex
	jobs   chan job
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher. Start must be called before the queue fills up.
func NewDispatcher(p Pusher, queueSize int, log logger.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		pusher: p,
		logger: log,
		jobs:   make(chan job, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the worker goroutine
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for j := range d.jobs {
			d.run(j)
		}
	}()
}

// Stop rejects new pushes, aborts the one in flight and drains the queue.
func (d *Dispatcher) Stop() {
	d.cancel()

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
}

// Enqueue schedules a push of url with a snapshot of tags. It never blocks:
// when the queue is full the push is dropped and resolved with DetailQueueFull.
func (d *Dispatcher) Enqueue(url string, tags []string) *Pending {
	done := make(chan Result, 1)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		done <- Result{Detail: DetailStopped}
		return &Pending{done: done}
	}

	select {
	case d.jobs <- job{url: url, tags: slices.Clone(tags), done: done}:
	default:
		d.logger.Warn("push queue full, dropping push",
			logger.String("url", url),
			logger.Int("capacity", cap(d.jobs)))
		done <- Result{Detail: DetailQueueFull}
	}
	return &Pending{done: done}
}

func (d *Dispatcher) run(j job) {
	if d.ctx.Err() != nil {
		j.done <- Result{Detail: DetailStopped}
		return
	}

	r := d.pusher.Push(d.ctx, j.url, j.tags)
	if r.Accepted {
		d.logger.Debug("remote push done",
			logger.String("url", j.url),
			logger.String("status", r.Detail))
	} else {
		d.logger.Warn("remote push failed",
			logger.String("url", j.url),
			logger.String("detail", r.Detail))
	}
	j.done <- r
}
