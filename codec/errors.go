package codec

import (
	"errors"
	"fmt"
)

//错误前缀标记
const ErrorMarker = "❗ 错误: "

type Kind int

const (
	KindUnknown Kind = iota
	KindMissingInput
	KindInvalidTensorShape
	KindInvalidChannelCount
	KindInvalidCompressLevel
	KindEmptyPayload
	KindBase64Decode
	KindImageParse
)

var kindNames = map[Kind]string{
	KindUnknown:              "Unknown",
	KindMissingInput:         "MissingInputError",
	KindInvalidTensorShape:   "InvalidTensorShapeError",
	KindInvalidChannelCount:  "InvalidChannelCountError",
	KindInvalidCompressLevel: "InvalidCompressLevelError",
	KindEmptyPayload:         "EmptyPayloadError",
	KindBase64Decode:         "Base64DecodeError",
	KindImageParse:           "ImageParseError",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

//返回错误类型，非编解码错误返回 KindUnknown
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

func errMissingInput() error {
	return newError(KindMissingInput, "需要提供图像输入或Base64字符串", nil)
}

func errTensorRank(rank int) error {
	return newError(KindInvalidTensorShape, fmt.Sprintf("输入应为4D张量，实际维度: %d", rank), nil)
}

func errTensorShape(err error) error {
	return newError(KindInvalidTensorShape, "张量形状非法", err)
}

func errChannelCount(c int) error {
	return newError(KindInvalidChannelCount, fmt.Sprintf("不支持的通道数: %d，仅支持 1/3/4", c), nil)
}

func errCompressLevel(level int) error {
	return newError(KindInvalidCompressLevel, fmt.Sprintf("压缩等级应在 0-9 之间，实际: %d", level), nil)
}

func errEmptyPayload() error {
	return newError(KindEmptyPayload, "空Base64内容", nil)
}

func errBase64(err error) error {
	return newError(KindBase64Decode, "Base64解码失败", err)
}

func errImageParse(err error) error {
	return newError(KindImageParse, "图像解析失败", err)
}
