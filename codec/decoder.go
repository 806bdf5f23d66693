package codec

import (
	"bytes"
	"dyzs/imgbridge/tensor"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMIMEType = "image/png"

	//超过该像素数视为解压炸弹
	DefaultMaxPixels = 2 * 89478485
)

//解析 data URI 或裸 Base64，返回 (1,H,W,3) 张量与规范化的 data URI
func DecodeBase64(base64Str string) (*tensor.Tensor, string, error) {
	return decodeBase64(base64Str, DefaultMaxPixels)
}

func decodeBase64(base64Str string, maxPixels int) (*tensor.Tensor, string, error) {
	mimeType, payload := splitDataURI(base64Str)
	if payload == "" {
		return nil, "", errEmptyPayload()
	}

	decoded, err := strictDecode(payload)
	if err != nil {
		return nil, "", errBase64(err)
	}

	if err := verifyImage(decoded, maxPixels); err != nil {
		return nil, "", errImageParse(err)
	}
	//校验后重新打开读取像素
	img, _, err := image.Decode(bytes.NewReader(decoded))
	if err != nil {
		return nil, "", errImageParse(err)
	}

	out, err := imageToTensor(img)
	if err != nil {
		return nil, "", errImageParse(err)
	}
	return out, "data:" + mimeType + ";base64," + payload, nil
}

//含 "base64," 时按第一个逗号切分头部与数据
func splitDataURI(s string) (mimeType, payload string) {
	if !strings.Contains(s, "base64,") {
		return DefaultMIMEType, s
	}
	i := strings.Index(s, ",")
	header, payload := s[:i], s[i+1:]
	mimeType = DefaultMIMEType
	if c := strings.Index(header, ":"); c >= 0 {
		mimeType = header[c+1:]
		if sc := strings.Index(mimeType, ";"); sc >= 0 {
			mimeType = mimeType[:sc]
		}
	}
	return mimeType, payload
}

//标准字母表、必须补齐、拒绝非规范尾位与换行
func strictDecode(payload string) ([]byte, error) {
	if i := strings.IndexAny(payload, "\r\n"); i >= 0 {
		return nil, base64.CorruptInputError(i)
	}
	return base64.StdEncoding.Strict().DecodeString(payload)
}

//结构校验：头部可解析且像素数不超过上限，随后完整解码一次检查截断
func verifyImage(data []byte, maxPixels int) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("图像尺寸无效: %dx%d", cfg.Width, cfg.Height)
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return fmt.Errorf("图像像素数 %d 超过上限 %d，疑似解压炸弹", int64(cfg.Width)*int64(cfg.Height), maxPixels)
	}
	_, _, err = image.Decode(bytes.NewReader(data))
	return err
}

//任意颜色模型转为非预乘 8 位 RGB，灰度复制为三通道
func imageToTensor(img image.Image) (*tensor.Tensor, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]float32, h*w*3)
	i := 0
	switch src := img.(type) {
	case *image.Gray:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				v := float32(src.GrayAt(x, y).Y) / 255
				data[i], data[i+1], data[i+2] = v, v, v
				i += 3
			}
		}
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := src.NRGBAAt(x, y)
				data[i], data[i+1], data[i+2] = float32(c.R)/255, float32(c.G)/255, float32(c.B)/255
				i += 3
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				data[i], data[i+1], data[i+2] = float32(c.R)/255, float32(c.G)/255, float32(c.B)/255
				i += 3
			}
		}
	}
	return tensor.New([]int{1, h, w, 3}, data)
}
