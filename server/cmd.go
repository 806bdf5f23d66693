package server

import (
	"bytes"
	"dyzs/imgbridge/logger"
	"dyzs/imgbridge/model"
	"dyzs/imgbridge/redis"
	"errors"
	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"net/http"
)

func (s *ImgHttpServer) cmd(ctx *gin.Context) {
	limit := s.bodyLimit()
	size := ctx.Request.ContentLength
	if size > limit {
		responseError(ctx, http.StatusRequestEntityTooLarge, errors.New("请求体超过上限"))
		return
	}
	if size < 0 {
		size = 0
	}
	buff := bytes.NewBuffer(make([]byte, 0, size))
	_, err := buff.ReadFrom(http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			responseError(ctx, http.StatusRequestEntityTooLarge, errors.New("请求体超过上限"))
			return
		}
		logger.LOG_ERROR("读取数据流失败", err)
		responseError(ctx, http.StatusBadRequest, err)
		return
	}
	cmd := &ImgCmd{}
	err = jsoniter.Unmarshal(buff.Bytes(), cmd)
	if err != nil {
		logger.LOG_WARN("json解析失败", err)
		responseError(ctx, http.StatusBadRequest, err)
		return
	}

	switch cmd.Cmd {
	case CMD_PROCESS:
		s.process(ctx, cmd.Param)
	case CMD_PROCESS_BATCH:
		s.processBatch(ctx, cmd.Param)
	default:
		logger.LOG_WARN("未找到指令匹配的处理器：", cmd.Cmd)
		responseError(ctx, http.StatusBadRequest, errors.New("未知指令:"+cmd.Cmd))
	}
}

/**
单次编解码
*/
func (s *ImgHttpServer) process(ctx *gin.Context, param jsoniter.RawMessage) {
	p := &model.ProcessParam{}
	if len(param) > 0 {
		if err := jsoniter.Unmarshal(param, p); err != nil {
			logger.LOG_WARN("参数解析异常:", err)
			responseError(ctx, http.StatusBadRequest, err)
			return
		}
	}
	responseSuccess(ctx, s.runJob(p).Output())
}

/**
批量编解码，每个参数独立成一个任务
*/
func (s *ImgHttpServer) processBatch(ctx *gin.Context, param jsoniter.RawMessage) {
	params := make([]*model.ProcessParam, 0)
	if err := jsoniter.Unmarshal(param, &params); err != nil {
		logger.LOG_WARN("参数解析异常:", err)
		responseError(ctx, http.StatusBadRequest, err)
		return
	}
	jobs := make([]*model.Job, 0, len(params))
	for _, p := range params {
		jobs = append(jobs, model.NewJob(p))
	}
	if len(jobs) > 0 {
		s.emit(jobs)
	}
	outputs := make([]*model.JobResult, 0, len(jobs))
	for _, j := range jobs {
		outputs = append(outputs, j.Output())
	}
	responseSuccess(ctx, outputs)
}

func (s *ImgHttpServer) runJob(p *model.ProcessParam) *model.Job {
	job := model.NewJob(p)
	s.emit(job)
	return job
}

/**
按任务id查询缓存的结果
*/
func (s *ImgHttpServer) result(ctx *gin.Context) {
	if s.results == nil {
		responseError(ctx, http.StatusServiceUnavailable, errors.New("未启用结果缓存"))
		return
	}
	out := &model.JobResult{}
	err := s.results.StringGet(model.ResultKey(ctx.Param("id")), out)
	if errors.Is(err, redis.ErrNotFound) {
		responseError(ctx, http.StatusNotFound, err)
		return
	}
	if err != nil {
		logger.LOG_WARN("读取缓存结果失败：", err)
		responseError(ctx, http.StatusInternalServerError, err)
		return
	}
	responseSuccess(ctx, out)
}
