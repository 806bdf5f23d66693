package model

import (
	"dyzs/imgbridge/codec"
	"dyzs/imgbridge/tensor"
	"dyzs/imgbridge/util/uuid"
	"sync"
	"time"
)

//单次编解码的入参，compressLevel 缺省为 4
type ProcessParam struct {
	CompressLevel *int           `json:"compressLevel"`
	Images        *tensor.Tensor `json:"images"`
	ManualBase64  string         `json:"manualBase64"`
}

func (p *ProcessParam) Level(def int) int {
	if p.CompressLevel == nil {
		return def
	}
	return *p.CompressLevel
}

//流程中传递的编解码任务
type Job struct {
	sync.Mutex
	ID     string
	Param  *ProcessParam
	Start  time.Time
	Cost   time.Duration
	result *codec.Result
	mode   codec.Mode
	level  int
}

func NewJob(param *ProcessParam) *Job {
	if param == nil {
		param = &ProcessParam{}
	}
	return &Job{
		ID:    uuid.JobID(),
		Param: param,
		Start: time.Now(),
	}
}

//记录实际使用的模式与压缩等级
func (j *Job) Finish(mode codec.Mode, level int, res codec.Result) {
	j.Lock()
	j.mode = mode
	j.level = level
	j.result = &res
	j.Cost = time.Since(j.Start)
	j.Unlock()
}

//未处理时返回 nil
func (j *Job) Result() *codec.Result {
	j.Lock()
	defer j.Unlock()
	return j.result
}

func (j *Job) Mode() codec.Mode {
	j.Lock()
	defer j.Unlock()
	return j.mode
}

func (j *Job) Level() int {
	j.Lock()
	defer j.Unlock()
	return j.level
}

type JobResult struct {
	ID        string         `json:"id"`
	Images    *tensor.Tensor `json:"images"`
	Base64Str string         `json:"base64Str"`
	Failed    bool           `json:"failed"`
}

func (j *Job) Output() *JobResult {
	res := j.Result()
	if res == nil {
		return &JobResult{ID: j.ID, Base64Str: codec.ErrorMarker + "任务未被处理", Failed: true}
	}
	return &JobResult{
		ID:        j.ID,
		Images:    res.Images,
		Base64Str: res.Base64,
		Failed:    res.Failed(),
	}
}

const _RESULT_KEY_PREFIX = "imgbridge:result:"

//结果缓存的 redis key
func ResultKey(id string) string {
	return _RESULT_KEY_PREFIX + id
}
