package server

import (
	"context"
	"dyzs/imgbridge/logger"
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"net/http"
	"time"
)

//结果缓存读取，由 redis.Cache 实现
type ResultReader interface {
	StringGet(name string, v interface{}) error
}

//单个请求体或 websocket 消息的默认上限
const DefaultMaxBodyBytes = 64 << 20

type ImgHttpServer struct {
	//<= 0 时使用 DefaultMaxBodyBytes
	MaxBodyBytes int64

	emit     func(interface{})
	results  ResultReader
	engine   *gin.Engine
	server   *http.Server
	upgrader websocket.Upgrader
}

//emit 把任务推入处理流程，results 可为 nil
func New(emit func(interface{}), results ResultReader) *ImgHttpServer {
	s := &ImgHttpServer{
		emit:    emit,
		results: results,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	//变更日志级别
	engine.GET("/debug", s.debug)
	//处理命令
	engine.POST("/cmd", s.cmd)
	//查询缓存结果
	engine.GET("/result/:id", s.result)
	engine.GET("/ws", s.ws)
	s.engine = engine
	return s
}

func (s *ImgHttpServer) Handler() http.Handler {
	return s.engine
}

//异步监听，端口占用等错误只记录日志
func (s *ImgHttpServer) Start(addr string) {
	s.server = &http.Server{
		Handler:      s.engine,
		Addr:         addr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	go func() {
		logger.LOG_INFO("imgbridge http 监听：", addr)
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LOG_ERROR("http 服务异常退出：", err)
		}
	}()
}

func (s *ImgHttpServer) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *ImgHttpServer) bodyLimit() int64 {
	if s.MaxBodyBytes > 0 {
		return s.MaxBodyBytes
	}
	return DefaultMaxBodyBytes
}

func (s *ImgHttpServer) debug(ctx *gin.Context) {
	level := ctx.Query("level")
	if level != "" {
		logger.ChangeLevel(level)
	}
	responseSuccess(ctx, logger.GetLevel())
}
