package processor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"knights/internal/core"
	"knights/internal/service"

	"github.com/rs/zerolog"
)

const (
	DefaultWorkers = 2
	queueCapacity  = 100
)

var (
	ErrQueueFull     = errors.New("queue is full")
	ErrQueueShutdown = errors.New("queue is shutting down")
	ErrSearchTimeout = errors.New("search timeout")
)

// SearchTask contains a path search request and its response channel
type SearchTask struct {
	Start    core.Square
	End      core.Square
	Response chan<- SearchResult
}

// SearchResult contains the outcome of a queued search
type SearchResult struct {
	Record *service.PathRecord
	Error  error
}

// SearchQueue runs path searches on a fixed worker pool
type SearchQueue struct {
	svc     *service.Service
	log     zerolog.Logger
	tasks   chan SearchTask
	workers int
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	once    sync.Once
}

// NewSearchQueue creates a queue with specified worker count
func NewSearchQueue(svc *service.Service, workerCount int, log zerolog.Logger) *SearchQueue {
	if workerCount < 1 {
		workerCount = DefaultWorkers
	}

	ctx, cancel := context.WithCancel(context.Background())

	q := &SearchQueue{
		svc:     svc,
		log:     log,
		tasks:   make(chan SearchTask, queueCapacity),
		workers: workerCount,
		ctx:     ctx,
		cancel:  cancel,
	}

	q.start()
	return q
}

// Workers returns the size of the pool
func (q *SearchQueue) Workers() int {
	return q.workers
}

func (q *SearchQueue) start() {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
}

// worker processes search tasks; each search owns its own state
func (q *SearchQueue) worker(id int) {
	defer q.wg.Done()

	for {
		select {
		case task, ok := <-q.tasks:
			if !ok {
				return
			}

			record, err := q.svc.FindPath(task.Start, task.End)
			result := SearchResult{Record: record, Error: err}

			// Send result if receiver still listening
			select {
			case task.Response <- result:
			case <-time.After(100 * time.Millisecond):
				q.log.Debug().Int("worker", id).Msg("search result abandoned")
			}

		case <-q.ctx.Done():
			return
		}
	}
}

// Submit adds a task to the queue without blocking
func (q *SearchQueue) Submit(task SearchTask) error {
	select {
	case <-q.ctx.Done():
		return ErrQueueShutdown
	default:
	}

	select {
	case q.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Search submits a task and waits for its result
func (q *SearchQueue) Search(start, end core.Square, timeout time.Duration) (*service.PathRecord, error) {
	respChan := make(chan SearchResult, 1)

	if err := q.Submit(SearchTask{Start: start, End: end, Response: respChan}); err != nil {
		return nil, err
	}

	select {
	case result := <-respChan:
		return result.Record, result.Error
	case <-time.After(timeout):
		return nil, ErrSearchTimeout
	}
}

// Shutdown stops the workers, waiting at most timeout
func (q *SearchQueue) Shutdown(timeout time.Duration) error {
	q.once.Do(q.cancel)

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout exceeded")
	}
}
