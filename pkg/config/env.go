package config

import (
	"os"
	"time"
)

// 环境变量
const (
	EnvAPIURL    = "STARFALL_API_URL"
	EnvAssetsDir = "STARFALL_ASSETS_DIR"
)

// 默认值
const (
	DefaultAPIURL    = "http://localhost:8080"
	DefaultAssetsDir = "assets"
)

// 排行榜相关
const (
	LeaderboardDefaultLimit = 10
	LeaderboardMinLimit     = 1
	LeaderboardMaxLimit     = 100
	LeaderboardTimeout      = 10 * time.Second

	AliasMinLength = 3
	AliasMaxLength = 30

	// MessageDuration 提示消息自动消失前的显示时长
	MessageDuration = 3500 * time.Millisecond
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
