package game

// Phase 一局游戏所处的阶段
//
// 状态转换：
//
//	Running <-> Paused   （切换暂停）
//	Running  -> GameOver （生命值归零）
//
// GameOver 是终止状态，重新开始必须创建新的会话。
type Phase int

const (
	// PhaseRunning 正常运行：生成器和物理每帧推进
	PhaseRunning Phase = iota
	// PhasePaused 暂停：模拟冻结，画面继续绘制并叠加遮罩
	PhasePaused
	// PhaseGameOver 游戏结束：结果冻结，等待提交分数
	PhaseGameOver
)

// String 实现 fmt.Stringer
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "gameover"
	}
	return "unknown"
}

// TogglePause 返回切换暂停后的阶段
// GameOver 不受影响
func (p Phase) TogglePause() Phase {
	switch p {
	case PhaseRunning:
		return PhasePaused
	case PhasePaused:
		return PhaseRunning
	}
	return p
}
