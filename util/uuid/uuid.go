package uuid

import (
	"github.com/satori/go.uuid"
	"strings"
)

const _JOB_PREFIX = "img"

//不带连字符
func UUIDShort() string {
	return strings.ReplaceAll(uuid.NewV4().String(), "-", "")
}

//编解码任务id，同时作为结果缓存的key
func JobID() string {
	return _JOB_PREFIX + UUIDShort()
}
