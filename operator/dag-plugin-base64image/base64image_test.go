package dag_plugin_base64image

import (
	"dyzs/imgbridge/codec"
	"dyzs/imgbridge/context"
	"dyzs/imgbridge/model"
	"dyzs/imgbridge/stream"
	"dyzs/imgbridge/tensor"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistered(t *testing.T) {
	_, ok := stream.GetHandler(NAME)
	assert.True(t, ok)
}

func TestHandleSingleJob(t *testing.T) {
	require.NoError(t, Init(nil))
	defer Close()

	img, err := tensor.Full([]int{1, 4, 4, 3}, 0.5)
	require.NoError(t, err)
	job := model.NewJob(&model.ProcessParam{Images: img, ManualBase64: "ignored"})

	var forwarded interface{}
	Handle(job, func(d interface{}) { forwarded = d })

	assert.Same(t, job, forwarded)
	res := job.Result()
	require.NotNil(t, res)
	assert.Equal(t, codec.ModeEncode, job.Mode())
	assert.True(t, strings.HasPrefix(res.Base64, "data:image/png;base64,"))
}

func TestHandleBatchConcurrently(t *testing.T) {
	context.Set("base64image_capacity", 3)
	context.Set("base64image_compressLevel", 0)
	defer context.Set("base64image_compressLevel", codec.DefaultCompressLevel)
	require.NoError(t, Init(nil))
	defer Close()

	img, err := tensor.Full([]int{1, 3, 3, 3}, 0.2)
	require.NoError(t, err)
	want, err := codec.EncodeImages(img, 0)
	require.NoError(t, err)

	jobs := make([]*model.Job, 0)
	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			jobs = append(jobs, model.NewJob(&model.ProcessParam{Images: img}))
		} else {
			jobs = append(jobs, model.NewJob(&model.ProcessParam{ManualBase64: want}))
		}
	}
	jobs = append(jobs, model.NewJob(&model.ProcessParam{}))

	called := false
	Handle(jobs, func(interface{}) { called = true })
	assert.True(t, called)

	for i, j := range jobs[:10] {
		res := j.Result()
		require.NotNil(t, res, "job %d", i)
		assert.Equal(t, want, res.Base64, "job %d", i)
	}
	last := jobs[10].Result()
	require.NotNil(t, last)
	assert.True(t, last.Failed())
	assert.Equal(t, codec.Mode(""), jobs[10].Mode())
}

func TestHandleDropsUnknownData(t *testing.T) {
	called := false
	Handle("nope", func(interface{}) { called = true })
	assert.False(t, called)

	Handle([]*model.Job{}, func(interface{}) { called = true })
	assert.False(t, called)
}

func TestMaxPixelsFromConfig(t *testing.T) {
	context.Set("base64image_maxPixels", 4)
	defer context.Set("base64image_maxPixels", 0)
	require.NoError(t, Init(nil))
	defer Close()

	img, err := tensor.Full([]int{1, 3, 3, 3}, 0.2)
	require.NoError(t, err)
	uri, err := codec.EncodeImages(img, 4)
	require.NoError(t, err)

	job := model.NewJob(&model.ProcessParam{ManualBase64: uri})
	Handle(job, func(interface{}) {})
	assert.Contains(t, job.Result().Base64, "图像解析失败")
}

func TestConfiguredLevelIsRecordedOnJob(t *testing.T) {
	context.Set("base64image_compressLevel", 9)
	defer context.Set("base64image_compressLevel", codec.DefaultCompressLevel)
	require.NoError(t, Init(nil))
	defer Close()

	img, err := tensor.Full([]int{1, 8, 8, 3}, 0.3)
	require.NoError(t, err)
	want, err := codec.EncodeImages(img, 9)
	require.NoError(t, err)

	job := model.NewJob(&model.ProcessParam{Images: img})
	Handle(job, func(interface{}) {})

	assert.Equal(t, 9, job.Level())
	assert.Equal(t, want, job.Result().Base64)
	assert.Equal(t, 9, model.NewRecord(job).CompressLevel)

	lvl := 2
	explicit := model.NewJob(&model.ProcessParam{Images: img, CompressLevel: &lvl})
	Handle(explicit, func(interface{}) {})
	assert.Equal(t, 2, explicit.Level())
}

func TestResolveErrorsAreFolded(t *testing.T) {
	require.NoError(t, Init(nil))
	defer Close()

	job := model.NewJob(&model.ProcessParam{ManualBase64: "   "})
	Handle(job, func(interface{}) {})
	res := job.Result()
	require.NotNil(t, res)
	assert.Equal(t, codec.ErrorMarker+"需要提供图像输入或Base64字符串", res.Base64)
	assert.Equal(t, codec.Mode(""), job.Mode())

	bad := &tensor.Tensor{Shape: []int{1, 1 << 62, 4, 1}, Data: []float32{}}
	job = model.NewJob(&model.ProcessParam{Images: bad})
	Handle(job, func(interface{}) {})
	assert.Equal(t, codec.ModeEncode, job.Mode())
	assert.True(t, strings.HasPrefix(job.Result().Base64, codec.ErrorMarker+"张量形状非法"))
}
