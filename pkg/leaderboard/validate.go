package leaderboard

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/gonewx/starfall/pkg/config"
)

// ErrAliasLength 别名长度不在允许范围内
var ErrAliasLength = errors.New("alias must be between 3 and 30 characters")

// NormalizeAlias 去掉别名首尾空白
func NormalizeAlias(alias string) string {
	return strings.TrimSpace(alias)
}

// ValidateAlias 校验别名：去掉首尾空白后长度为 3 到 30 个字符
//
// 返回:
//   - string: 规范化后的别名
//   - error: 长度不符合时返回 ErrAliasLength
func ValidateAlias(alias string) (string, error) {
	a := NormalizeAlias(alias)
	n := utf8.RuneCountInString(a)
	if n < config.AliasMinLength || n > config.AliasMaxLength {
		return "", ErrAliasLength
	}
	return a, nil
}

// ClampLimit 把排行榜条数限制在 [1, 100]，非正数使用默认值 10
func ClampLimit(limit int) int {
	if limit <= 0 {
		return config.LeaderboardDefaultLimit
	}
	if limit < config.LeaderboardMinLimit {
		return config.LeaderboardMinLimit
	}
	if limit > config.LeaderboardMaxLimit {
		return config.LeaderboardMaxLimit
	}
	return limit
}
