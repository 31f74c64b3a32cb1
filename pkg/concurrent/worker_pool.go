package concurrent

import (
	"errors"
	"time"
)

// ErrScheduleTimeout is returned by ScheduleTimeout when no worker picked
// the task up within the deadline.
var ErrScheduleTimeout = errors.New("schedule error: timed out")

// WorkerPool is a bounded goroutine pool. Workers are spawned lazily up to
// the pool size and idle workers pull queued tasks, so accepting a burst of
// websocket connections never grows the goroutine count past the bound.
// ref: https://sergey.kamardin.org/articles/million-websocket-and-go/
type WorkerPool struct {
	sem  chan struct{}
	work chan func()
}

func NewWorkerPool(size, queue int) *WorkerPool {
	return &WorkerPool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
	}
}

// Spawn starts n workers eagerly so the first connections do not pay the
// spawn latency.
func (wp *WorkerPool) Spawn(n int) {
	for i := 0; i < n; i++ {
		wp.sem <- struct{}{}
		go wp.worker(func() {})
	}
}

// Schedule blocks until an idle worker or a free pool slot takes the task.
func (wp *WorkerPool) Schedule(task func()) {
	wp.schedule(task, nil)
}

// ScheduleTimeout gives up with ErrScheduleTimeout when the pool stays
// saturated for the whole timeout.
func (wp *WorkerPool) ScheduleTimeout(timeout time.Duration, task func()) error {
	return wp.schedule(task, time.After(timeout))
}

func (wp *WorkerPool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-timeout:
		return ErrScheduleTimeout
	case wp.work <- task:
		return nil
	case wp.sem <- struct{}{}:
		go wp.worker(task)
		return nil
	}
}

func (wp *WorkerPool) worker(task func()) {
	defer func() { <-wp.sem }()

	task()
	for task := range wp.work {
		task()
	}
}

// Close stops all idle workers. Tasks already scheduled still run.
func (wp *WorkerPool) Close() {
	close(wp.work)
}
