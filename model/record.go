package model

import (
	"dyzs/imgbridge/codec"
	"strings"
)

//转换记录，写入 mongo 用于审计与统计
type Record struct {
	ID            string `json:"id" bson:"id"`
	Mode          string `json:"mode" bson:"mode"`
	CompressLevel int    `json:"compressLevel" bson:"compressLevel"`
	MimeType      string `json:"mimeType" bson:"mimeType"`
	Shape         []int  `json:"shape" bson:"shape"`
	InputLen      int    `json:"inputLen" bson:"inputLen"`
	OutputLen     int    `json:"outputLen" bson:"outputLen"`
	Images        int    `json:"images" bson:"images"`
	Failed        bool   `json:"failed" bson:"failed"`
	Message       string `json:"message" bson:"message"`
	CostMs        int64  `json:"costMs" bson:"costMs"`
	CreateTime    int64  `json:"createTime" bson:"createTime"`
}

func NewRecord(job *Job) *Record {
	r := &Record{
		ID:            job.ID,
		Mode:          string(job.Mode()),
		CompressLevel: job.Level(),
		InputLen:      len(job.Param.ManualBase64),
		CostMs:        job.Cost.Nanoseconds() / 1e6,
		CreateTime:    job.Start.UnixNano() / 1e6,
	}
	res := job.Result()
	if res == nil {
		r.Failed = true
		r.Message = "任务未被处理"
		return r
	}
	if res.Failed() {
		r.Failed = true
		r.Message = strings.TrimPrefix(res.Base64, codec.ErrorMarker)
		return r
	}
	r.OutputLen = len(res.Base64)
	if res.Images != nil {
		r.Shape = append([]int(nil), res.Images.Shape...)
	}
	if r.Mode == string(codec.ModeEncode) {
		r.MimeType = codec.DefaultMIMEType
		r.Images = len(codec.SplitBatch(res.Base64))
		r.InputLen = 0
	} else {
		r.MimeType = mimeOf(res.Base64)
		r.Images = 1
	}
	return r
}

func mimeOf(uri string) string {
	uri = strings.TrimPrefix(uri, "data:")
	if i := strings.Index(uri, ";"); i >= 0 {
		return uri[:i]
	}
	return ""
}
