package game

import (
	"time"

	"github.com/gonewx/starfall/pkg/config"
)

// RunState 一局游戏的计分状态
//
// RunState 是不可变值：所有修改方法都返回新的 RunState，
// 会话在每帧结束时整体替换旧值，渲染和场景读取的始终是完整的一帧快照。
//
// 不变量：
//   - Score >= 0, Combo >= 0
//   - MaxCombo 只增不减，等于本局观察到的最大 Combo
//   - 0 <= Life <= life.Max
type RunState struct {
	Score    int
	Combo    int
	MaxCombo int
	Life     int
	Elapsed  time.Duration
	Phase    Phase

	rules Rules
}

// Rules 计分和扣血规则（来自 GameConfig）
type Rules struct {
	KillBase    int
	MaxLife     int
	MissPenalty int
	HitPenalty  int
}

// RulesFromConfig 从玩法配置提取计分规则
func RulesFromConfig(cfg *config.GameConfig) Rules {
	return Rules{
		KillBase:    cfg.Scoring.KillBase,
		MaxLife:     cfg.Life.Max,
		MissPenalty: cfg.Life.MissPenalty,
		HitPenalty:  cfg.Life.HitPenalty,
	}
}

// NewRunState 创建一局开始时的状态：满血、零分、运行中
func NewRunState(cfg *config.GameConfig) RunState {
	return RunState{
		Life:  cfg.Life.Initial,
		Phase: PhaseRunning,
		rules: RulesFromConfig(cfg),
	}
}

// ApplyKill 击毁一个敌人
// 连击数加一，得分增加 KillBase * 新连击数
func (s RunState) ApplyKill() RunState {
	s.Combo++
	if s.Combo > s.MaxCombo {
		s.MaxCombo = s.Combo
	}
	s.Score += s.rules.KillBase * s.Combo
	return s
}

// ApplyMiss 敌人漏到画面底部
func (s RunState) ApplyMiss() RunState {
	s.Combo = 0
	s.Life = s.clampLife(s.Life - s.rules.MissPenalty)
	return s
}

// ApplyPlayerHit 敌人撞上玩家飞船
func (s RunState) ApplyPlayerHit() RunState {
	s.Combo = 0
	s.Life = s.clampLife(s.Life - s.rules.HitPenalty)
	return s
}

// Advance 累加游戏时间，仅在运行中生效
func (s RunState) Advance(dt time.Duration) RunState {
	if s.Phase != PhaseRunning || dt <= 0 {
		return s
	}
	s.Elapsed += dt
	return s
}

// WithPhase 返回阶段替换后的状态
func (s RunState) WithPhase(p Phase) RunState {
	s.Phase = p
	return s
}

// CheckGameOver 生命值归零时进入 GameOver
func (s RunState) CheckGameOver() RunState {
	if s.Life <= 0 && s.Phase != PhaseGameOver {
		s.Phase = PhaseGameOver
	}
	return s
}

// DurationSec 返回整秒的游戏时长（向下取整）
func (s RunState) DurationSec() int {
	return int(s.Elapsed / time.Second)
}

func (s RunState) clampLife(life int) int {
	if life < 0 {
		return 0
	}
	if s.rules.MaxLife > 0 && life > s.rules.MaxLife {
		return s.rules.MaxLife
	}
	return life
}

// SessionResult 一局结束时冻结的结果，用于提交分数
type SessionResult struct {
	Score       int
	MaxCombo    int
	DurationSec int
	Difficulty  config.Difficulty
}

// Result 从当前状态生成结果
func (s RunState) Result(d config.Difficulty) SessionResult {
	return SessionResult{
		Score:       s.Score,
		MaxCombo:    s.MaxCombo,
		DurationSec: s.DurationSec(),
		Difficulty:  d,
	}
}
