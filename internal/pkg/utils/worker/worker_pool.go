package worker

import "sync/atomic"

// WorkerPool fans tasks out to a fixed set of workers round-robin.
type WorkerPool struct {
	workers []*Worker
	next    atomic.Uint64
}

// NewWorkerPool creates a new WorkerPool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	pool := &WorkerPool{
		workers: make([]*Worker, numWorkers),
	}

	for i := 0; i < numWorkers; i++ {
		worker := NewWorker()
		worker.Start()
		pool.workers[i] = worker
	}

	return pool
}

// Stop stops all workers in the pool
func (p *WorkerPool) Stop() {
	for _, worker := range p.workers {
		worker.Stop()
	}
}

// Submit submits a task to the worker pool
func (p *WorkerPool) Submit(task Task) {
	index := p.next.Add(1) % uint64(len(p.workers))
	p.workers[index].Submit(task)
}
