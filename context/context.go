package context

import (
	"dyzs/imgbridge/util"
	"github.com/spf13/viper"
	"strings"
)

//读取可执行文件目录下的 config.yml，path 为空时使用默认位置
func Load(path string) error {
	if path == "" {
		path = util.GetAppPath() + "config.yml"
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	return viper.ReadInConfig()
}

//配置
func Set(key string, value interface{}) {
	viper.Set(key, value)
}

func IsExsit(key string) bool {
	return viper.IsSet(key)
}

//返回未配置的key
func Exsit(keys ...string) []string {
	unset := make([]string, 0)
	for _, k := range keys {
		if !viper.IsSet(k) || strings.TrimSpace(viper.GetString(k)) == "" {
			unset = append(unset, k)
		}
	}
	return unset
}

func GetString(key string) string {
	return viper.GetString(key)
}
func GetStringSlice(key string) []string {
	return viper.GetStringSlice(key)
}
func GetInt(key string) int {
	return viper.GetInt(key)
}

//大于0时返回配置值，否则返回默认值
func GetIntOr(key string, def int) int {
	if v := viper.GetInt(key); v > 0 {
		return v
	}
	return def
}
