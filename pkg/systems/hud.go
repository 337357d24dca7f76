package systems

import (
	"fmt"
	"time"

	"github.com/gonewx/starfall/pkg/game"
)

// HUDLines 返回左上角 HUD 的文本行
func HUDLines(state game.RunState) []string {
	return []string{
		fmt.Sprintf("Score: %d", state.Score),
		fmt.Sprintf("Life: %d", state.Life),
		fmt.Sprintf("Combo: %d (max %d)", state.Combo, state.MaxCombo),
		fmt.Sprintf("Time: %.1fs", state.Elapsed.Seconds()),
	}
}

// SummaryLine 返回游戏结束遮罩上的结果摘要
func SummaryLine(state game.RunState) string {
	return fmt.Sprintf("Score %d | MaxCombo %d | Time %ds",
		state.Score, state.MaxCombo, int(state.Elapsed/time.Second))
}
