package codec

import (
	"dyzs/imgbridge/tensor"
	"fmt"
)

//编解码处理器，只持有不可变的选项，可并发使用
type Processor struct {
	MaxPixels int
}

func NewProcessor(maxPixels int) *Processor {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &Processor{MaxPixels: maxPixels}
}

var defaultProcessor = NewProcessor(DefaultMaxPixels)

func Process(compressLevel int, images *tensor.Tensor, manualBase64 string) Result {
	return defaultProcessor.Process(compressLevel, images, manualBase64)
}

//图像输入优先于 manualBase64；任何失败都折叠为带标记的错误字符串
func (p *Processor) Process(compressLevel int, images *tensor.Tensor, manualBase64 string) Result {
	req, err := Resolve(compressLevel, images, manualBase64)
	if err != nil {
		return ErrorResult(err)
	}
	res, err := p.Run(req)
	if err != nil {
		return ErrorResult(err)
	}
	return res
}

//执行已解析的请求，返回类型化错误
func (p *Processor) Run(req Request) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	switch r := req.(type) {
	case EncodeRequest:
		encoded, err := EncodeImages(r.Images, r.CompressLevel)
		if err != nil {
			return Result{}, err
		}
		return Result{Images: r.Images, Base64: encoded}, nil
	case DecodeRequest:
		out, uri, err := decodeBase64(r.Base64, p.MaxPixels)
		if err != nil {
			return Result{}, err
		}
		return Result{Images: out, Base64: uri}, nil
	default:
		return Result{}, errMissingInput()
	}
}

func (p *Processor) DecodeBase64(base64Str string) (*tensor.Tensor, string, error) {
	return decodeBase64(base64Str, p.MaxPixels)
}

//错误折叠为带标记的结果字符串
func ErrorResult(err error) Result {
	return Result{Base64: ErrorMarker + err.Error()}
}
