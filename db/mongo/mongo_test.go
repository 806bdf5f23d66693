package mongo

import (
	"dyzs/imgbridge/context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRequiresURL(t *testing.T) {
	context.Set("mongodb.url", "")
	err := Connect()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "连接地址未设置")
}

func TestConcurrentConnectAndDataset(t *testing.T) {
	context.Set("mongodb.url", "")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			assert.Error(t, Connect())
		}()
		go func() {
			defer wg.Done()
			c, err := Dataset("conversion_record")
			assert.Error(t, err)
			assert.Nil(t, c)
		}()
		go func() {
			defer wg.Done()
			Close()
		}()
	}
	wg.Wait()

	lock.Lock()
	assert.Nil(t, session)
	lock.Unlock()
}
