package worker

import (
	"errors"
	"sync"

	"github.com/nero-collectibles/kassa/pkg/logger"
)

type Handler = func(workerIndex int, job interface{})

// Manager is a small goroutine pool fed from a buffered channel. Workers
// never exit on their own; call Exit to drain and stop them.
type Manager struct {
	jobChannel chan interface{}
	numWorkers int
	do         Handler
	waiter     *sync.WaitGroup
	done       chan struct{}
}

func NewManager(bufferSize, numWorkers int) *Manager {
	return &Manager{
		jobChannel: make(chan interface{}, bufferSize),
		numWorkers: numWorkers,
		waiter:     &sync.WaitGroup{},
		done:       make(chan struct{}),
	}
}

func (m *Manager) Pending() int {
	return len(m.jobChannel)
}

func (m *Manager) Start(handler Handler) error {
	if handler == nil {
		return errors.New("worker: handler must not be nil")
	}
	m.do = handler
	for i := 0; i < m.numWorkers; i++ {
		m.waiter.Add(1)
		go m.run(i)
	}
	return nil
}

func (m *Manager) run(index int) {
	defer m.waiter.Done()
	for {
		select {
		case job, ok := <-m.jobChannel:
			if !ok {
				return
			}
			m.safeDo(index, job)
		case <-m.done:
			// drain what is already queued, then stop
			for {
				select {
				case job, ok := <-m.jobChannel:
					if !ok {
						return
					}
					m.safeDo(index, job)
				default:
					return
				}
			}
		}
	}
}

func (m *Manager) safeDo(index int, job interface{}) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("worker: handler panicked", "worker", index, "panic", r)
		}
	}()
	m.do(index, job)
}

// Publish queues a job. It returns false when the buffer is full rather
// than blocking the caller.
func (m *Manager) Publish(job interface{}) bool {
	select {
	case m.jobChannel <- job:
		return true
	default:
		return false
	}
}

// Exit signals workers to drain the queue and stop, then waits for them.
func (m *Manager) Exit() {
	close(m.done)
	m.waiter.Wait()
}
