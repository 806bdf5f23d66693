package codec

import (
	"bytes"
	"dyzs/imgbridge/tensor"
	"encoding/base64"
	"strings"
)

const (
	MinCompressLevel     = 0
	MaxCompressLevel     = 9
	DefaultCompressLevel = 4

	pngURIPrefix = "data:image/png;base64,"
)

//将图像批编码为以换行分隔的 PNG data URI
func EncodeImages(images *tensor.Tensor, compressLevel int) (string, error) {
	if images.Rank() != 4 {
		return "", errTensorRank(images.Rank())
	}
	if err := images.Validate(); err != nil {
		return "", errTensorShape(err)
	}
	if compressLevel < MinCompressLevel || compressLevel > MaxCompressLevel {
		return "", errCompressLevel(compressLevel)
	}
	batch, height, width, channels := images.Shape[0], images.Shape[1], images.Shape[2], images.Shape[3]
	if channels != 1 && channels != 3 && channels != 4 {
		return "", errChannelCount(channels)
	}
	if batch > 0 && (height == 0 || width == 0) {
		return "", newError(KindInvalidTensorShape, "图像宽高必须大于0", nil)
	}

	clamped := images.Clamp(0, 1)

	uris := make([]string, 0, batch)
	var buf bytes.Buffer
	for i := 0; i < batch; i++ {
		pix := toRGB8(clamped.Image(i), width*height, channels)
		buf.Reset()
		if err := writePNG(&buf, width, height, pix, compressLevel, compressLevel > 0); err != nil {
			return "", err
		}
		uris = append(uris, pngURIPrefix+base64.StdEncoding.EncodeToString(buf.Bytes()))
	}
	//Base64 字母表不含换行，按换行切分可无损还原批次
	return strings.Join(uris, "\n"), nil
}

//按批拆分 EncodeImages 的输出
func SplitBatch(encoded string) []string {
	if encoded == "" {
		return nil
	}
	return strings.Split(encoded, "\n")
}

//[0,1] 浮点转 8 位 RGB：单通道复制为三通道，四通道丢弃 alpha
func toRGB8(src []float32, pixels, channels int) []byte {
	pix := make([]byte, pixels*rgbBytesPerPixel)
	for p := 0; p < pixels; p++ {
		in := src[p*channels : (p+1)*channels]
		out := pix[p*rgbBytesPerPixel : (p+1)*rgbBytesPerPixel]
		if channels == 1 {
			v := uint8(in[0] * 255)
			out[0], out[1], out[2] = v, v, v
			continue
		}
		out[0] = uint8(in[0] * 255)
		out[1] = uint8(in[1] * 255)
		out[2] = uint8(in[2] * 255)
	}
	return pix
}
