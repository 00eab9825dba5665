package sessions

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Desarso/tradesummit/stores"
)

const archiveQueueSize = 256

// Archiver writes conversation records behind the widgets, one job at a
// time and in submission order. Failures are logged and dropped.
type Archiver struct {
	store  stores.MessageStore
	logger *zap.Logger
	jobs   chan func(stores.MessageStore) error
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewArchiver(store stores.MessageStore, logger *zap.Logger) *Archiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Archiver{
		store:  store,
		logger: logger,
		jobs:   make(chan func(stores.MessageStore) error, archiveQueueSize),
		done:   make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Archiver) run() {
	defer close(a.done)
	for job := range a.jobs {
		if err := job(a.store); err != nil {
			a.logger.Warn("archive write failed", zap.Error(err))
		}
	}
}

// Enqueue schedules job. It never blocks; a full queue drops the job.
func (a *Archiver) Enqueue(job func(stores.MessageStore) error) {
	if a == nil {
		return
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		a.logger.Warn("archiver stopped, dropping job")
		return
	}
	select {
	case a.jobs <- job:
	default:
		a.logger.Warn("archive queue full, dropping job")
	}
}

// Flush blocks until every job enqueued before the call has run.
func (a *Archiver) Flush() {
	if a == nil {
		return
	}
	barrier := make(chan struct{})
	a.mu.RLock()
	if a.closed {
		a.mu.RUnlock()
		return
	}
	a.jobs <- func(stores.MessageStore) error {
		close(barrier)
		return nil
	}
	a.mu.RUnlock()
	<-barrier
}

// Stop drains the queue and waits for the worker to exit.
func (a *Archiver) Stop() {
	if a == nil {
		return
	}
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.jobs)
	}
	a.mu.Unlock()
	<-a.done
}
