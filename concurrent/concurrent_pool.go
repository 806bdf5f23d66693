package concurrent

import (
	"context"
	"errors"
	"sync"
)

//通用任务协程池，编解码批量任务在这里并行执行
var ErrExecutorClosed = errors.New("协程池已关闭")

type Executor struct {
	sync.Mutex
	capacity int
	active   int
	workers  chan *worker
	ctx      context.Context
	cancel   context.CancelFunc
	closed   bool
}

func NewExecutor(capacity int) *Executor {
	if capacity <= 0 {
		capacity = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Executor{
		capacity: capacity,
		workers:  make(chan *worker, capacity),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (e *Executor) Capacity() int {
	return e.capacity
}

func (e *Executor) IsClose() bool {
	e.Lock()
	defer e.Unlock()
	return e.closed
}

//取空闲协程，没有且未满时新建，否则等待归还
func (e *Executor) getWorker() (*worker, error) {
	select {
	case w := <-e.workers:
		return w, nil
	default:
	}
	e.Lock()
	if e.active < e.capacity {
		e.active++
		e.Unlock()
		w := &worker{
			e:        e,
			taskChan: make(chan func()),
		}
		w.run()
		return w, nil
	}
	e.Unlock()
	select {
	case w := <-e.workers:
		return w, nil
	case <-e.ctx.Done():
		return nil, ErrExecutorClosed
	}
}

func (e *Executor) recoverWorker(w *worker) {
	select {
	case e.workers <- w:
	case <-e.ctx.Done():
	}
}

func (e *Executor) Submit(task func()) error {
	if e.IsClose() {
		return ErrExecutorClosed
	}
	w, err := e.getWorker()
	if err != nil {
		return err
	}
	select {
	case w.taskChan <- task:
		return nil
	case <-e.ctx.Done():
		return ErrExecutorClosed
	}
}

//提交一批任务并等待全部完成，提交失败的任务不会执行
func (e *Executor) SubmitSyncBatch(tasks []func()) (err error) {
	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for _, t := range tasks {
		cb := t
		serr := e.Submit(func() {
			defer wg.Done()
			cb()
		})
		if serr != nil {
			err = serr
			wg.Done()
		}
	}
	wg.Wait()
	return
}

func (e *Executor) Close() {
	e.Lock()
	e.closed = true
	e.Unlock()
	e.cancel()
}

type worker struct {
	e        *Executor
	taskChan chan func()
}

func (w *worker) run() {
	go func() {
		for {
			select {
			case <-w.e.ctx.Done():
				return
			case task := <-w.taskChan:
				if task != nil {
					task()
				}
				w.e.recoverWorker(w)
			}
		}
	}()
}
