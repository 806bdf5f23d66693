package redis

import (
	"errors"
	"github.com/gomodule/redigo/redis"
	jsoniter "github.com/json-iterator/go"
)

var ErrNotFound = errors.New("缓存不存在")

func Serialization(v interface{}) ([]byte, error) {
	if s, ok := v.(string); ok {
		return []byte(s), nil
	}
	return jsoniter.Marshal(v)
}

func Deserialization(b []byte, v interface{}) error {
	if s, ok := v.(*string); ok {
		*s = string(b)
		return nil
	}
	return jsoniter.Unmarshal(b, v)
}

// string 类型 添加, v 可以是任意类型，按默认过期时间写入
func (c *Cache) StringSet(name string, v interface{}) error {
	s, err := Serialization(v)
	if err != nil {
		return err
	}
	conn := c.pool.Get()
	defer conn.Close()
	if c.defaultExpiration > 0 {
		_, err = conn.Do("SETEX", name, int64(c.defaultExpiration.Seconds()), s)
	} else {
		_, err = conn.Do("SET", name, s)
	}
	return err
}

// 获取 字符串类型的值，不存在时返回 ErrNotFound
func (c *Cache) StringGet(name string, v interface{}) error {
	conn := c.pool.Get()
	defer conn.Close()
	if conn.Err() != nil {
		return conn.Err()
	}
	temp, err := redis.Bytes(conn.Do("GET", name))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return ErrNotFound
		}
		return err
	}
	return Deserialization(temp, v)
}
