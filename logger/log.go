package logger

import (
	"dyzs/imgbridge/util"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
	"path"
	"strings"
	"time"
)

const _LOG_KEEP_HOURS = 72

var _logLevelMap = map[string]log.Level{
	"panic": log.PanicLevel,
	"fatal": log.FatalLevel,
	"error": log.ErrorLevel,
	"warn":  log.WarnLevel,
	"info":  log.InfoLevel,
	"debug": log.DebugLevel,
	"trace": log.TraceLevel,
}

//按配置 log.level 设置级别，并按天切换日志文件
func Init() {
	ChangeLevel(viper.GetString("log.level"))

	dir := path.Join(util.GetAppPath(), "logs")
	exist, err := util.PathExists(dir)
	if err != nil {
		fmt.Println(err)
		return
	}
	if !exist {
		if err := os.Mkdir(dir, os.ModePerm); err != nil {
			fmt.Printf("mkdir failed![%v]\n", err)
			return
		}
	}

	go rotate()
}

func rotate() {
	var currentLogFile *os.File
	var currentLogFileName string
	for {
		logfileName := genLogFileName(time.Now())
		if currentLogFile == nil || currentLogFileName != logfileName {
			f, err := os.OpenFile(logfileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				log.Error("Fail to create log file :", err)
				return
			}
			log.SetOutput(f)
			if currentLogFile != nil {
				currentLogFile.Close()
			}
			currentLogFile, currentLogFileName = f, logfileName
			removeLogFile(genLogFileName(time.Now().Add(-_LOG_KEEP_HOURS * time.Hour)))
		}
		time.Sleep(time.Minute)
	}
}

//变更日志级别，未知级别时使用 info
func ChangeLevel(level string) {
	l, ok := _logLevelMap[strings.ToLower(level)]
	if !ok {
		l = log.InfoLevel
	}
	log.SetLevel(l)
}

func GetLevel() string {
	return log.GetLevel().String()
}

func genLogFileName(date time.Time) string {
	return path.Join(util.GetAppPath(), "logs", "imgbridge."+date.Format("20060102")+".log")
}

func removeLogFile(logName string) {
	exist, _ := util.PathExists(logName)
	if !exist {
		return
	}
	err := os.Remove(logName)
	if err != nil {
		log.Warn("Fail to remove log file:", err)
	} else {
		log.Info("Success to remove log file:", logName)
	}
}

func LOG_DEBUG(vars ...interface{}) {
	if log.GetLevel() == log.DebugLevel {
		fmt.Println(vars...)
	}
	log.Debug(vars...)
}

func LOG_INFO(vars ...interface{}) {
	if log.GetLevel() == log.DebugLevel {
		fmt.Println(vars...)
	}
	log.Info(vars...)
}

func LOG_WARN(vars ...interface{}) {
	if log.GetLevel() == log.DebugLevel {
		fmt.Println(vars...)
	}
	log.Warn(vars...)
}

func LOG_ERROR(vars ...interface{}) {
	if log.GetLevel() == log.DebugLevel {
		fmt.Println(vars...)
	}
	log.Error(vars...)
}

//带字段的结构化日志
func WithFields(fields map[string]interface{}) *log.Entry {
	return log.WithFields(log.Fields(fields))
}
