// Package session 管理一局游戏：实体世界、计分状态和阶段转换。
//
// Session 是游戏状态的唯一所有者。场景每帧调用一次 Tick 推进模拟，
// 渲染和界面只读取 Snapshot/View 返回的快照。
package session

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/gonewx/starfall/pkg/components"
	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/ecs"
	"github.com/gonewx/starfall/pkg/entities"
	"github.com/gonewx/starfall/pkg/game"
	"github.com/gonewx/starfall/pkg/systems"
)

// Options 创建会话的可选依赖
type Options struct {
	// Rand 敌人生成使用的随机源，为 nil 时使用随机种子
	Rand *rand.Rand

	// Sound 音效播放器，为 nil 时静音
	Sound systems.SoundPlayer

	// Bullet 子弹规格，尺寸为 0 时使用配置中的默认尺寸
	Bullet entities.BulletSpec
}

// Session 一局游戏
type Session struct {
	cfg        *config.GameConfig
	difficulty config.Difficulty

	em     *ecs.EntityManager
	player ecs.EntityID
	bullet entities.BulletSpec

	spawner    *systems.SpawnSystem
	physics    *systems.PhysicsSystem
	explosions *systems.ExplosionSystem
	score      *systems.ScoreSystem

	state     game.RunState
	fireTimer time.Duration
	result    *game.SessionResult
	closed    bool
}

// New 开始一局新游戏
//
// 参数:
//   - cfg: 玩法配置
//   - difficulty: 难度，整局不变
//   - opts: 可选依赖
//
// 返回:
//   - *Session: 处于运行阶段的新会话
//   - error: 配置为 nil 或玩家创建失败
func New(cfg *config.GameConfig, difficulty config.Difficulty, opts Options) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("game config cannot be nil")
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	bullet := opts.Bullet
	if bullet.W <= 0 || bullet.H <= 0 {
		bullet.W, bullet.H = cfg.Bullet.Width, cfg.Bullet.Height
	}
	if bullet.Velocity == 0 {
		bullet.Velocity = cfg.Bullet.Velocity
	}

	em := ecs.NewEntityManager()
	player, err := entities.NewPlayer(em, cfg.Player)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	interval := cfg.Difficulty.SpawnInterval(difficulty)
	log.Printf("[Session] 新的一局: 难度=%s, 生成间隔=%v, 子弹=%.0fx%.0f", difficulty, interval, bullet.W, bullet.H)

	return &Session{
		cfg:        cfg,
		difficulty: difficulty,
		em:         em,
		player:     player,
		bullet:     bullet,
		spawner:    systems.NewSpawnSystem(em, cfg.Enemy, interval, rng),
		physics:    systems.NewPhysicsSystem(em, cfg, player, opts.Sound),
		explosions: systems.NewExplosionSystem(em, cfg.Explosion),
		score:      systems.NewScoreSystem(),
		state:      game.NewRunState(cfg),
	}, nil
}

// Tick 推进一帧
//
// 执行顺序：暂停切换 -> 计时 -> 指针移动和射击 -> 生成敌人 -> 物理和碰撞
// -> 爆炸动画 -> 计分 -> 阶段检查 -> 清理已销毁实体。
// 暂停和结束阶段只处理暂停切换，不推进模拟。关闭后调用无效果。
func (s *Session) Tick(dt time.Duration, intent systems.Intent) {
	if s.closed {
		return
	}
	if dt < 0 {
		dt = 0
	}

	if intent.TogglePause && s.state.Phase != game.PhaseGameOver {
		s.state = s.state.WithPhase(s.state.Phase.TogglePause())
		log.Printf("[Session] 阶段切换: %s", s.state.Phase)
	}

	if s.state.Phase == game.PhaseRunning {
		s.state = s.state.Advance(dt)

		if intent.PointerPressed || intent.PointerHeld {
			s.physics.MovePlayerTo(intent.PointerX)
		}
		s.handleFire(dt, intent)

		s.spawner.Update(dt)
		outcomes := s.physics.Update(dt, intent)
		s.explosions.Update(dt)

		s.state = s.score.Apply(s.state, outcomes).CheckGameOver()
		if s.state.Phase == game.PhaseGameOver {
			result := s.state.Result(s.difficulty)
			s.result = &result
			log.Printf("[Session] 游戏结束: 得分=%d, 最大连击=%d, 时长=%ds",
				result.Score, result.MaxCombo, result.DurationSec)
		}
	}

	s.em.RemoveMarkedEntities()
}

// handleFire 处理射击：按键或指针按下立即射击一发并重置自动射击计时，
// 保持按住指针时按 AutoFireInterval 自动射击
func (s *Session) handleFire(dt time.Duration, intent systems.Intent) {
	switch {
	case intent.Fire || intent.PointerPressed:
		s.fire()
		s.fireTimer = 0
	case intent.PointerHeld:
		s.fireTimer += dt
		if s.fireTimer >= s.cfg.AutoFireInterval {
			s.fire()
			s.fireTimer = 0
		}
	default:
		s.fireTimer = 0
	}
}

func (s *Session) fire() {
	player, ok := ecs.GetComponent[*components.BodyComponent](s.em, s.player)
	if !ok {
		return
	}
	if _, err := entities.NewBullet(s.em, player, s.bullet); err != nil {
		log.Printf("[Session] 发射子弹失败: %v", err)
	}
}

// Snapshot 返回当前计分状态
func (s *Session) Snapshot() game.RunState {
	return s.state
}

// View 返回渲染当前帧所需的只读视图
func (s *Session) View(sprites *game.Sprites) systems.RenderView {
	return systems.RenderView{State: s.state, Sprites: sprites}
}

// World 返回实体管理器（只供渲染读取）
func (s *Session) World() *ecs.EntityManager {
	return s.em
}

// Player 返回玩家实体ID
func (s *Session) Player() ecs.EntityID {
	return s.player
}

// Difficulty 返回本局难度
func (s *Session) Difficulty() config.Difficulty {
	return s.difficulty
}

// Result 返回游戏结束时冻结的结果
//
// 返回:
//   - game.SessionResult: 结束时的结果
//   - bool: 是否已经结束
func (s *Session) Result() (game.SessionResult, bool) {
	if s.result == nil {
		return game.SessionResult{}, false
	}
	return *s.result, true
}

// Close 结束会话，之后 Tick 不再生效
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	log.Printf("[Session] 会话已关闭 (实体数: %d)", s.em.EntityCount())
}

// Closed 会话是否已关闭
func (s *Session) Closed() bool {
	return s.closed
}
