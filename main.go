package main

import (
	"dyzs/imgbridge/context"
	"dyzs/imgbridge/logger"
	_ "dyzs/imgbridge/operator/dag-plugin-base64image"
	_ "dyzs/imgbridge/operator/dag-plugin-convrecord"
	_ "dyzs/imgbridge/operator/dag-plugin-httpemitter"
	_ "dyzs/imgbridge/operator/dag-plugin-resultcache"
	"dyzs/imgbridge/stream"
	"flag"
	"github.com/json-iterator/go/extra"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

var _DEFAULT_FLOW = []string{"httpemitter", "base64image"}

func main() {
	configPath := flag.String("config", "", "配置文件路径，默认为程序目录下的 config.yml")
	flag.Parse()

	if err := context.Load(*configPath); err != nil {
		log.Fatal("Fail to read config file :", err)
	}

	extra.RegisterFuzzyDecoders()

	logger.Init()

	emitters, handlers := stream.Registered()
	logger.LOG_INFO("已注册Emitter：", strings.Join(emitters, ","))
	logger.LOG_INFO("已注册Handler：", strings.Join(handlers, ","))

	flow := context.GetStringSlice("flow")
	if len(flow) == 0 {
		flow = _DEFAULT_FLOW
	}
	logger.LOG_INFO("处理流程：", strings.Join(flow, " -> "))

	s, err := stream.Build(flow)
	if err != nil {
		logger.LOG_ERROR("构建处理流程失败：", err)
		log.Fatal(err)
	}
	if err := s.Init(); err != nil {
		log.Fatal(err)
	}
	if err := s.Run(); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.LOG_WARN("收到退出信号，关闭处理流程")
	s.Close()
}
