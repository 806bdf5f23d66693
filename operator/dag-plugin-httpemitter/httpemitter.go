package dag_plugin_httpemitter

import (
	"dyzs/imgbridge/context"
	"dyzs/imgbridge/logger"
	"dyzs/imgbridge/redis"
	"dyzs/imgbridge/server"
	"dyzs/imgbridge/stream"
	"github.com/gin-gonic/gin"
	"strconv"
	"strings"
)

//HTTP/websocket 入口，请求转成任务推入流程

const (
	NAME = "httpemitter"

	_DEFAULT_PORT = "7777"
)

func init() {
	stream.RegistEmitter(NAME, &stream.EmitterWrapper{
		InitFunc:  Init,
		CloseFunc: Close,
	})
}

var (
	httpServer *server.ImgHttpServer
	results    *redis.Cache
)

func Init(emit func(interface{})) error {
	maxBody := context.GetIntOr("httpemitter_maxBodyBytes", server.DefaultMaxBodyBytes)
	port := context.GetString("port")
	if port == "" {
		port = _DEFAULT_PORT
	}
	logger.LOG_INFO("---------------- httpemitter config ----------------")
	logger.LOG_INFO("port : " + port)
	logger.LOG_INFO("httpemitter_maxBodyBytes : " + strconv.Itoa(maxBody))
	logger.LOG_INFO("redis.addr : " + context.GetString("redis.addr"))
	logger.LOG_INFO("----------------------------------------------------")
	if strings.ToLower(context.GetString("log.level")) != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	_ = Close()

	var reader server.ResultReader
	if addr := context.GetString("redis.addr"); addr != "" {
		results = redis.NewRedisCache(context.GetInt("redis.db"), addr, redis.FOREVER)
		reader = results
	}
	httpServer = server.New(emit, reader)
	httpServer.MaxBodyBytes = int64(maxBody)
	httpServer.Start(":" + port)
	return nil
}

func Close() error {
	var err error
	if httpServer != nil {
		err = httpServer.Close()
		httpServer = nil
	}
	if results != nil {
		_ = results.Close()
		results = nil
	}
	return err
}

