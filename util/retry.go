package util

import "time"

//最多执行 times 次，成功即返回；times <= 1 只执行一次，返回最后一次的错误
func Retry(f func() error, times int, space time.Duration) error {
	if times < 1 {
		times = 1
	}
	var err error
	for attempt := 1; ; attempt++ {
		if err = f(); err == nil || attempt >= times {
			return err
		}
		time.Sleep(space)
	}
}
