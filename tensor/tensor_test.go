package tensor

import (
	"errors"
	"math"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChecksLength(t *testing.T) {
	_, err := New([]int{1, 2, 2, 3}, make([]float32, 11))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	tt, err := New([]int{1, 2, 2, 3}, nil)
	require.NoError(t, err)
	assert.Len(t, tt.Data, 12)
	assert.Equal(t, 4, tt.Rank())

	_, err = New([]int{1, -2}, nil)
	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	nan := float32(math.NaN())
	tt, err := New([]int{5}, []float32{-1, 0.25, 2, nan, 1})
	require.NoError(t, err)

	c := tt.Clamp(0, 1)
	assert.Equal(t, []float32{0, 0.25, 1, 0, 1}, c.Data)
	assert.Equal(t, float32(-1), tt.Data[0])
}

func TestImageSlices(t *testing.T) {
	data := make([]float32, 2*2*1*3)
	for i := range data {
		data[i] = float32(i)
	}
	tt, err := New([]int{2, 2, 1, 3}, data)
	require.NoError(t, err)
	assert.Equal(t, []float32{6, 7, 8, 9, 10, 11}, tt.Image(1))
}

func TestJSONWire(t *testing.T) {
	tt := &Tensor{}
	require.NoError(t, jsoniter.Unmarshal([]byte(`{"shape":[1,1,1,3],"data":[0,0.5,1]}`), tt))
	assert.Equal(t, []int{1, 1, 1, 3}, tt.Shape)

	b, err := jsoniter.Marshal(tt)
	require.NoError(t, err)
	assert.JSONEq(t, `{"shape":[1,1,1,3],"data":[0,0.5,1]}`, string(b))

	err = jsoniter.Unmarshal([]byte(`{"shape":[1,1,1,3],"data":[0]}`), &Tensor{})
	assert.Error(t, err)
}

func TestNilRank(t *testing.T) {
	var tt *Tensor
	assert.Equal(t, 0, tt.Rank())
	assert.Error(t, tt.Validate())
}

func TestSizeOverflow(t *testing.T) {
	assert.Equal(t, -1, Size([]int{1, 1 << 62, 4, 1}))
	assert.Equal(t, -1, Size([]int{1 << 34, 1 << 15, 1 << 15, 1}))
	assert.Equal(t, -1, Size([]int{math.MaxInt, 2}))
	assert.Equal(t, 0, Size([]int{math.MaxInt, 0}))
	assert.Equal(t, math.MaxInt, Size([]int{math.MaxInt, 1}))

	_, err := New([]int{1, 1 << 62, 4, 1}, nil)
	assert.Error(t, err)

	err = jsoniter.Unmarshal([]byte(`{"shape":[1,4611686018427387904,4,1],"data":[]}`), &Tensor{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}
