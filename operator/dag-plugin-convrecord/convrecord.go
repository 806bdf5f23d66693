package dag_plugin_convrecord

import (
	"dyzs/imgbridge/context"
	"dyzs/imgbridge/db/mongo"
	"dyzs/imgbridge/logger"
	"dyzs/imgbridge/model"
	"dyzs/imgbridge/stream"
	"dyzs/imgbridge/util"
	"errors"
	"strings"
	"time"
)

//每次编解码写一条转换记录到 mongo

const (
	NAME = "convrecord"

	DB_DATASET_RECORD = "conversion_record"
)

func init() {
	stream.RegistHandler(NAME, &stream.HandlerWrapper{
		InitFunc:   Init,
		HandleFunc: Handle,
		CloseFunc:  Close,
	})
}

var insert func(records ...interface{}) error

var (
	retryTimes = 3
	retrySpace = time.Second
)

func Init(config interface{}) error {
	logger.LOG_INFO("---------------- convrecord config ----------------")
	logger.LOG_INFO("mongodb.url : " + context.GetString("mongodb.url"))
	logger.LOG_INFO("mongodb.db : " + context.GetString("mongodb.db"))
	logger.LOG_INFO("---------------------------------------------------")
	unConfigKeys := context.Exsit("mongodb.url")
	if len(unConfigKeys) > 0 {
		return errors.New("缺少配置：" + strings.Join(unConfigKeys, ","))
	}
	if err := mongo.Connect(); err != nil {
		return err
	}
	insert = insertMongo
	return nil
}

func insertMongo(records ...interface{}) error {
	client, err := mongo.Dataset(DB_DATASET_RECORD)
	if err != nil {
		return err
	}
	defer client.Database.Session.Close()
	return client.Insert(records...)
}

func Handle(data interface{}, next func(interface{})) {
	var jobs []*model.Job
	switch d := data.(type) {
	case *model.Job:
		jobs = []*model.Job{d}
	case []*model.Job:
		jobs = d
	default:
		logger.LOG_ERROR("convrecord 转换数据异常，不支持的类型")
		return
	}
	if insert != nil && len(jobs) > 0 {
		records := make([]interface{}, 0, len(jobs))
		for _, j := range jobs {
			records = append(records, model.NewRecord(j))
		}
		err := util.Retry(func() error {
			return insert(records...)
		}, retryTimes, retrySpace)
		if err != nil {
			logger.LOG_WARN("转换记录写入mongo失败：", err)
		}
	}
	next(data)
}

func Close() error {
	insert = nil
	mongo.Close()
	return nil
}
