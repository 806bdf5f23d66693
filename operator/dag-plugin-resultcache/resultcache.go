package dag_plugin_resultcache

import (
	"dyzs/imgbridge/context"
	"dyzs/imgbridge/logger"
	"dyzs/imgbridge/model"
	"dyzs/imgbridge/redis"
	"dyzs/imgbridge/stream"
	"dyzs/imgbridge/util"
	"errors"
	"strings"
	"time"
)

//把编解码结果按任务id写入redis，供 /result/:id 查询

const NAME = "resultcache"

func init() {
	stream.RegistHandler(NAME, &stream.HandlerWrapper{
		InitFunc:   Init,
		HandleFunc: Handle,
		CloseFunc:  Close,
	})
}

type resultStore interface {
	StringSet(name string, v interface{}) error
	Close() error
}

var store resultStore

//未配置时默认缓存10分钟
const _DEFAULT_EXPIRE_SECONDS = 600

var (
	retryTimes = 3
	retrySpace = 200 * time.Millisecond
)

func Init(config interface{}) error {
	logger.LOG_INFO("---------------- resultcache config ----------------")
	logger.LOG_INFO("redis.addr : " + context.GetString("redis.addr"))
	logger.LOG_INFO("resultcache_expire : " + context.GetString("resultcache_expire"))
	logger.LOG_INFO("----------------------------------------------------")
	unConfigKeys := context.Exsit("redis.addr")
	if len(unConfigKeys) > 0 {
		return errors.New("缺少配置：" + strings.Join(unConfigKeys, ","))
	}
	expire := context.GetIntOr("resultcache_expire", _DEFAULT_EXPIRE_SECONDS)
	_ = Close()
	store = redis.NewRedisCache(context.GetInt("redis.db"), context.GetString("redis.addr"), time.Duration(expire)*time.Second)
	return nil
}

func Handle(data interface{}, next func(interface{})) {
	switch d := data.(type) {
	case *model.Job:
		save(d)
	case []*model.Job:
		for _, j := range d {
			save(j)
		}
	default:
		logger.LOG_ERROR("resultcache 转换数据异常，不支持的类型")
		return
	}
	next(data)
}

func save(job *model.Job) {
	if store == nil || job.Result() == nil {
		return
	}
	key, out := model.ResultKey(job.ID), job.Output()
	err := util.Retry(func() error {
		return store.StringSet(key, out)
	}, retryTimes, retrySpace)
	if err != nil {
		logger.LOG_WARN("结果写入redis失败：job - "+job.ID, err)
	}
}

func Close() error {
	if store != nil {
		err := store.Close()
		store = nil
		return err
	}
	return nil
}

