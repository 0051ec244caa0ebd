package transactionservice

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

//go:generate mockgen -source=workerpool.go -destination=mock_workerpool.go -package=transactionservice
type WorkerPoolI interface {
	AddTask(ctx context.Context, task Task) error
	Close()
}

type Task func() error

// WorkerPool bounds how many transfers run at once. Close waits for queued
// transfers to finish so a shutdown never abandons a signed transaction.
type WorkerPool struct {
	tasks   chan Task
	workers sync.WaitGroup
	once    sync.Once
}

func NewWorkerPool(size int) *WorkerPool {
	if size < 1 {
		size = 1
	}
	wp := &WorkerPool{tasks: make(chan Task, size)}

	wp.workers.Add(size)
	for i := 0; i < size; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.workers.Done()
	for task := range wp.tasks {
		if err := run(task); err != nil {
			zap.L().Warn("transfer task failed", zap.Error(err))
		}
	}
}

func run(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transfer task panicked: %v", r)
		}
	}()
	return task()
}

func (wp *WorkerPool) AddTask(ctx context.Context, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.tasks <- task:
		return nil
	}
}

func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		close(wp.tasks)
		wp.workers.Wait()
	})
}
