package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAndRun(t *testing.T) {
	var emit func(interface{})
	RegistEmitter("test-emitter", &EmitterWrapper{
		InitFunc: func(e func(interface{})) error {
			emit = e
			return nil
		},
	})
	var inited []string
	RegistHandler("test-double", &HandlerWrapper{
		InitFunc: func(interface{}) error {
			inited = append(inited, "double")
			return nil
		},
		HandleFunc: func(data interface{}, next func(interface{})) {
			next(data.(int) * 2)
		},
	})
	var got []int
	RegistHandler("test-collect", &HandlerWrapper{
		HandleFunc: func(data interface{}, next func(interface{})) {
			got = append(got, data.(int))
		},
	})

	s, err := Build([]string{"test-emitter", "test-double", "test-collect"})
	require.NoError(t, err)
	require.NoError(t, s.Init())
	require.NoError(t, s.Run())
	assert.True(t, s.Running())
	assert.Equal(t, []string{"double"}, inited)

	emit(3)
	s.Emit(5)
	assert.Equal(t, []int{6, 10}, got)

	s.Close()
	assert.False(t, s.Running())

	emitters, handlers := Registered()
	assert.Contains(t, emitters, "test-emitter")
	assert.Contains(t, handlers, "test-collect")
}

func TestBuildRejectsUnknownNodes(t *testing.T) {
	_, err := Build(nil)
	assert.Error(t, err)

	_, err = Build([]string{"no-such-emitter"})
	assert.EqualError(t, err, "未注册的Emitter:no-such-emitter")

	RegistEmitter("test-only-emitter", &EmitterWrapper{InitFunc: func(func(interface{})) error { return nil }})
	_, err = Build([]string{"test-only-emitter", "no-such-handler"})
	assert.EqualError(t, err, "未注册的Handler:no-such-handler")
}

func TestRunBeforeInit(t *testing.T) {
	s := New(&EmitterWrapper{InitFunc: func(func(interface{})) error { return nil }})
	assert.Error(t, s.Run())
}
