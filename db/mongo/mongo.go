package mongo

import (
	"dyzs/imgbridge/context"
	"dyzs/imgbridge/logger"
	"errors"
	"github.com/globalsign/mgo"
	"sync"
	"time"
)

var (
	lock      sync.Mutex
	session   *mgo.Session
	currentDB string
)

//建立连接，已有会话时先关闭
func Connect() error {
	lock.Lock()
	defer lock.Unlock()
	return connect()
}

//调用方需持有 lock
func connect() (err error) {
	url := context.GetString("mongodb.url")
	db := context.GetString("mongodb.db")
	if url == "" {
		return errors.New("mongodb 连接地址未设置")
	}
	if db == "" {
		logger.LOG_WARN("mongodb 未指定库，使用连接串中的默认库")
	}
	s, err := mgo.DialWithTimeout(url, 5*time.Second)
	if err != nil {
		logger.LOG_ERROR("连接数据库异常", err)
		return
	}
	if session != nil {
		session.Close()
	}
	currentDB = db
	session = s
	return
}

//获取集合，使用会话副本，调用方用完需关闭 Database.Session
func Dataset(c string) (clt *mgo.Collection, err error) {
	lock.Lock()
	defer lock.Unlock()
	if session == nil {
		if err = connect(); err != nil {
			return nil, err
		}
	}
	return session.Copy().DB(currentDB).C(c), nil
}

func Close() {
	lock.Lock()
	defer lock.Unlock()
	if session != nil {
		session.Close()
		session = nil
	}
}
