package systems

import "github.com/gonewx/starfall/pkg/game"

// ScoreSystem 把物理步骤的结算事件折叠进计分状态
type ScoreSystem struct{}

// NewScoreSystem 创建计分系统
func NewScoreSystem() *ScoreSystem {
	return &ScoreSystem{}
}

// Apply 按事件顺序依次应用，返回新的 RunState
func (s *ScoreSystem) Apply(state game.RunState, outcomes []Outcome) game.RunState {
	for _, o := range outcomes {
		switch o.Kind {
		case OutcomeKill:
			state = state.ApplyKill()
		case OutcomeMiss:
			state = state.ApplyMiss()
		case OutcomePlayerHit:
			state = state.ApplyPlayerHit()
		}
	}
	return state
}
