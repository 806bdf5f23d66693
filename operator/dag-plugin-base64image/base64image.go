package dag_plugin_base64image

import (
	"dyzs/imgbridge/codec"
	"dyzs/imgbridge/concurrent"
	"dyzs/imgbridge/context"
	"dyzs/imgbridge/logger"
	"dyzs/imgbridge/model"
	"dyzs/imgbridge/stream"
	"strconv"
)

//图像张量与Base64 PNG 双向转换节点

const NAME = "base64image"

func init() {
	stream.RegistHandler(NAME, &stream.HandlerWrapper{
		InitFunc:   Init,
		HandleFunc: Handle,
		CloseFunc:  Close,
	})
}

var (
	executor     *concurrent.Executor
	processor    = codec.NewProcessor(codec.DefaultMaxPixels)
	defaultLevel = codec.DefaultCompressLevel
)

func Init(config interface{}) error {
	capacity := context.GetIntOr("base64image_capacity", 4)
	maxPixels := context.GetIntOr("base64image_maxPixels", codec.DefaultMaxPixels)
	defaultLevel = codec.DefaultCompressLevel
	if context.IsExsit("base64image_compressLevel") {
		defaultLevel = context.GetInt("base64image_compressLevel")
	}
	logger.LOG_INFO("------------------ base64image config ------------------")
	logger.LOG_INFO("base64image_capacity : " + strconv.Itoa(capacity))
	logger.LOG_INFO("base64image_maxPixels : " + strconv.Itoa(maxPixels))
	logger.LOG_INFO("base64image_compressLevel : " + strconv.Itoa(defaultLevel))
	logger.LOG_INFO("--------------------------------------------------------")
	if executor != nil {
		executor.Close()
	}
	executor = concurrent.NewExecutor(capacity)
	processor = codec.NewProcessor(maxPixels)
	return nil
}

func Handle(data interface{}, next func(interface{})) {
	switch d := data.(type) {
	case *model.Job:
		process(d)
	case []*model.Job:
		if len(d) == 0 {
			return
		}
		processBatch(d)
	default:
		logger.LOG_ERROR("base64image 转换数据异常，不支持的类型")
		return
	}
	next(data)
}

func processBatch(jobs []*model.Job) {
	if executor == nil || len(jobs) == 1 {
		for _, j := range jobs {
			process(j)
		}
		return
	}
	tasks := make([]func(), 0, len(jobs))
	for _, job := range jobs {
		func(j *model.Job) {
			tasks = append(tasks, func() {
				process(j)
			})
		}(job)
	}
	err := executor.SubmitSyncBatch(tasks)
	if err != nil {
		logger.LOG_WARN("批量编解码提交失败，改为顺序执行：", err)
		for _, j := range jobs {
			if j.Result() == nil {
				process(j)
			}
		}
	}
}

func process(job *model.Job) {
	p := job.Param
	level := p.Level(defaultLevel)
	var (
		mode codec.Mode
		res  codec.Result
	)
	req, err := codec.Resolve(level, p.Images, p.ManualBase64)
	if err == nil {
		mode = req.Mode()
		res, err = processor.Run(req)
	}
	if err != nil {
		res = codec.ErrorResult(err)
	}
	job.Finish(mode, level, res)
	if res.Failed() {
		logger.WithFields(map[string]interface{}{
			"job":  job.ID,
			"mode": mode,
		}).Warn(res.Base64)
		return
	}
	logger.LOG_DEBUG("base64image 完成：", job.ID, mode, job.Cost)
}

func Close() error {
	if executor != nil {
		executor.Close()
		executor = nil
	}
	return nil
}
