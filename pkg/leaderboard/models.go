package leaderboard

import (
	"fmt"
	"time"

	"github.com/gonewx/starfall/pkg/game"
)

// ScorePostBody 提交分数的请求体
type ScorePostBody struct {
	Alias       string `json:"alias"`
	Points      int    `json:"points"`
	MaxCombo    int    `json:"maxCombo"`
	DurationSec int    `json:"durationSec"`
	Metadata    string `json:"metadata"`
}

// ScoreCreated 提交成功后服务器返回的记录ID
type ScoreCreated struct {
	ID string `json:"id"`
}

// ScoreTopItem 排行榜中的一条记录
type ScoreTopItem struct {
	ID          string    `json:"id"`
	Alias       string    `json:"alias"`
	Points      int       `json:"points"`
	DurationSec int       `json:"durationSec"`
	CreatedAt   time.Time `json:"createdAt"`
	MaxCombo    *int      `json:"maxCombo,omitempty"`
}

// ScoreByAliasItem 某个别名的一条历史记录
type ScoreByAliasItem struct {
	ID          string    `json:"id"`
	Points      int       `json:"points"`
	MaxCombo    *int      `json:"maxCombo,omitempty"`
	DurationSec *int      `json:"durationSec,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewScorePostBody 根据结束时的结果构造提交请求体
//
// 参数:
//   - alias: 已校验的别名（会去掉首尾空白）
//   - result: 游戏结束时冻结的结果
//   - now: 提交时间，写入 metadata
func NewScorePostBody(alias string, result game.SessionResult, now time.Time) ScorePostBody {
	return ScorePostBody{
		Alias:       NormalizeAlias(alias),
		Points:      result.Score,
		MaxCombo:    result.MaxCombo,
		DurationSec: result.DurationSec,
		Metadata:    FormatMetadata(result.Difficulty.String(), now),
	}
}

// FormatMetadata 生成 "Difficulty: <d> | Date: <本地时间>" 格式的附加信息
func FormatMetadata(difficulty string, now time.Time) string {
	if difficulty == "" {
		difficulty = "easy"
	}
	return fmt.Sprintf("Difficulty: %s | Date: %s", difficulty, now.Local().Format("2006-01-02 15:04:05"))
}

// FormatOptionalInt 把可选整数格式化为文本，缺失时为 "-"
func FormatOptionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
