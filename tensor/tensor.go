package tensor

import (
	"errors"
	"fmt"
	"math"

	jsoniter "github.com/json-iterator/go"
)

var ErrShapeMismatch = errors.New("张量数据长度与形状不匹配")

//图像批张量，行优先，通道在最后 (batch, height, width, channels)
type Tensor struct {
	Shape []int     `json:"shape"`
	Data  []float32 `json:"data"`
}

func New(shape []int, data []float32) (*Tensor, error) {
	size := Size(shape)
	if size < 0 {
		return nil, fmt.Errorf("非法形状: %v", shape)
	}
	if data == nil {
		data = make([]float32, size)
	}
	if len(data) != size {
		return nil, fmt.Errorf("%w: shape=%v, len=%d", ErrShapeMismatch, shape, len(data))
	}
	s := make([]int, len(shape))
	copy(s, shape)
	return &Tensor{Shape: s, Data: data}, nil
}

//全部元素为同一值
func Full(shape []int, v float32) (*Tensor, error) {
	t, err := New(shape, nil)
	if err != nil {
		return nil, err
	}
	for i := range t.Data {
		t.Data[i] = v
	}
	return t, nil
}

//元素个数，维度为负或乘积溢出时返回 -1
func Size(shape []int) int {
	size := 1
	for _, d := range shape {
		if d < 0 {
			return -1
		}
		if d > 0 && size > math.MaxInt/d {
			return -1
		}
		size *= d
	}
	return size
}

func (t *Tensor) Rank() int {
	if t == nil {
		return 0
	}
	return len(t.Shape)
}

func (t *Tensor) Validate() error {
	if t == nil {
		return errors.New("张量为空")
	}
	size := Size(t.Shape)
	if size < 0 || size != len(t.Data) {
		return fmt.Errorf("%w: shape=%v, len=%d", ErrShapeMismatch, t.Shape, len(t.Data))
	}
	return nil
}

//截断到 [lo, hi]，返回新张量
func (t *Tensor) Clamp(lo, hi float32) *Tensor {
	out := &Tensor{
		Shape: append([]int(nil), t.Shape...),
		Data:  make([]float32, len(t.Data)),
	}
	for i, v := range t.Data {
		switch {
		case v != v:
			//NaN
			out.Data[i] = lo
		case v < lo:
			out.Data[i] = lo
		case v > hi:
			out.Data[i] = hi
		default:
			out.Data[i] = v
		}
	}
	return out
}

//批中第 i 张图像的数据切片 (height*width*channels)，rank 必须为 4
func (t *Tensor) Image(i int) []float32 {
	stride := t.Shape[1] * t.Shape[2] * t.Shape[3]
	return t.Data[i*stride : (i+1)*stride]
}

func (t *Tensor) MarshalJSON() ([]byte, error) {
	type plain Tensor
	return jsoniter.Marshal((*plain)(t))
}

func (t *Tensor) UnmarshalJSON(b []byte) error {
	type plain Tensor
	p := &plain{}
	if err := jsoniter.Unmarshal(b, p); err != nil {
		return err
	}
	*t = Tensor(*p)
	return t.Validate()
}
