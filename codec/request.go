package codec

import (
	"dyzs/imgbridge/tensor"
	"strings"
)

type Mode string

const (
	ModeEncode Mode = "encode"
	ModeDecode Mode = "decode"
)

//编码或解码请求，二选一
type Request interface {
	Mode() Mode
}

type EncodeRequest struct {
	Images        *tensor.Tensor
	CompressLevel int
}

func (EncodeRequest) Mode() Mode { return ModeEncode }

type DecodeRequest struct {
	Base64 string
}

func (DecodeRequest) Mode() Mode { return ModeDecode }

//按优先级选择模式：图像输入 > 手动Base64
func Resolve(compressLevel int, images *tensor.Tensor, manualBase64 string) (Request, error) {
	if images != nil {
		return EncodeRequest{Images: images, CompressLevel: compressLevel}, nil
	}
	if strings.TrimSpace(manualBase64) != "" {
		return DecodeRequest{Base64: manualBase64}, nil
	}
	return nil, errMissingInput()
}

type Result struct {
	Images *tensor.Tensor
	Base64 string
}

func (r Result) Failed() bool {
	return r.Images == nil && strings.HasPrefix(r.Base64, ErrorMarker)
}
