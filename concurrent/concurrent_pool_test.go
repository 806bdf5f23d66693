package concurrent

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmitSyncBatchRunsAll(t *testing.T) {
	e := NewExecutor(3)
	defer e.Close()

	var n int32
	tasks := make([]func(), 50)
	for i := range tasks {
		tasks[i] = func() { atomic.AddInt32(&n, 1) }
	}
	assert.NoError(t, e.SubmitSyncBatch(tasks))
	assert.Equal(t, int32(50), atomic.LoadInt32(&n))
}

func TestSubmitAfterClose(t *testing.T) {
	e := NewExecutor(0)
	assert.Equal(t, 1, e.Capacity())
	e.Close()
	assert.True(t, e.IsClose())
	assert.Equal(t, ErrExecutorClosed, e.Submit(func() {}))
	assert.Equal(t, ErrExecutorClosed, e.SubmitSyncBatch([]func(){func() {}}))
}
