package systems

import (
	"log"
	"time"

	"github.com/gonewx/starfall/pkg/components"
	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/ecs"
	"github.com/gonewx/starfall/pkg/entities"
)

// OutcomeKind 一次碰撞/越界结算的结果类型
type OutcomeKind int

const (
	// OutcomeKill 子弹击毁敌人
	OutcomeKill OutcomeKind = iota
	// OutcomeMiss 敌人漏到画面底部
	OutcomeMiss
	// OutcomePlayerHit 敌人撞上玩家
	OutcomePlayerHit
)

// String 实现 fmt.Stringer
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeKill:
		return "kill"
	case OutcomeMiss:
		return "miss"
	case OutcomePlayerHit:
		return "player-hit"
	}
	return "unknown"
}

// Outcome 物理步骤产生的一次结算事件，由 ScoreSystem 折叠进 RunState
type Outcome struct {
	Kind  OutcomeKind
	Enemy ecs.EntityID
}

// SoundPlayer 即发即弃的音效播放接口（由 game.AudioManager 实现）
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

// PhysicsSystem 运动积分和碰撞检测
//
// 每帧按固定顺序执行：
//  1. 玩家按键盘方向移动并限制在画布内
//  2. 子弹移动，越过顶部后移除
//  3. 敌人移动和旋转，越过底部记为漏掉
//  4. 子弹与敌人碰撞：每颗子弹击中按生成顺序第一个重叠的敌人
//  5. 敌人与玩家碰撞
//
// 被结算的实体立即标记 Alive=false 并延迟销毁，帧末统一清理。
type PhysicsSystem struct {
	em     *ecs.EntityManager
	cfg    *config.GameConfig
	player ecs.EntityID
	sound  SoundPlayer // 可为 nil
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 玩法配置
//   - player: 玩家实体ID
//   - sound: 音效播放器，可为 nil
func NewPhysicsSystem(em *ecs.EntityManager, cfg *config.GameConfig, player ecs.EntityID, sound SoundPlayer) *PhysicsSystem {
	return &PhysicsSystem{
		em:     em,
		cfg:    cfg,
		player: player,
		sound:  sound,
	}
}

// Update 推进一帧物理
//
// 参数:
//   - dt: 本帧时间增量，为 0 时没有实体移动
//   - intent: 本帧输入意图（只使用键盘方向）
//
// 返回:
//   - []Outcome: 本帧发生的结算事件，按发生顺序排列
func (ps *PhysicsSystem) Update(dt time.Duration, intent Intent) []Outcome {
	// 每参考帧速度 -> 本帧位移的比例
	scale := dt.Seconds() * ps.cfg.ReferenceTickRate

	ps.movePlayer(dt, intent.Direction())

	bullets := ps.entitiesOf(components.KindBullet)
	enemies := ps.entitiesOf(components.KindEnemy)

	var outcomes []Outcome

	for _, id := range bullets {
		body := ps.body(id)
		if body == nil || !body.Alive {
			continue
		}
		body.X += body.VX * scale
		body.Y += body.VY * scale
		if body.Y < ps.cfg.Bullet.DespawnY {
			ps.kill(id, body)
		}
	}

	for _, id := range enemies {
		body := ps.body(id)
		if body == nil || !body.Alive {
			continue
		}
		body.X += body.VX * scale
		body.Y += body.VY * scale
		if spin, ok := ecs.GetComponent[*components.SpinComponent](ps.em, id); ok {
			spin.Angle += spin.Spin * scale
		}
		if body.Y > ps.cfg.Enemy.DespawnY {
			ps.kill(id, body)
			outcomes = append(outcomes, Outcome{Kind: OutcomeMiss, Enemy: id})
			ps.play(config.SoundHit)
		}
	}

	for _, bid := range bullets {
		bullet := ps.body(bid)
		if bullet == nil || !bullet.Alive {
			continue
		}
		for _, eid := range enemies {
			enemy := ps.body(eid)
			if enemy == nil || !enemy.Alive || !Overlap(bullet, enemy) {
				continue
			}
			ps.kill(bid, bullet)
			ps.kill(eid, enemy)
			if _, err := entities.NewExplosion(ps.em, enemy); err != nil {
				log.Printf("[PhysicsSystem] 创建爆炸特效失败: %v", err)
			}
			outcomes = append(outcomes, Outcome{Kind: OutcomeKill, Enemy: eid})
			ps.play(config.SoundExplosion)
			break
		}
	}

	if player := ps.body(ps.player); player != nil {
		for _, eid := range enemies {
			enemy := ps.body(eid)
			if enemy == nil || !enemy.Alive || !Overlap(enemy, player) {
				continue
			}
			ps.kill(eid, enemy)
			outcomes = append(outcomes, Outcome{Kind: OutcomePlayerHit, Enemy: eid})
			ps.play(config.SoundHit)
		}
	}

	return outcomes
}

// MovePlayerTo 把玩家水平中心移动到指针位置（限制在画布内）
func (ps *PhysicsSystem) MovePlayerTo(pointerX float64) {
	if p := ps.body(ps.player); p != nil {
		p.X = ClampPlayerX(pointerX-p.W/2, p.W)
	}
}

// movePlayer 按键盘方向移动玩家
func (ps *PhysicsSystem) movePlayer(dt time.Duration, dir float64) {
	p := ps.body(ps.player)
	if p == nil {
		return
	}
	p.X = ClampPlayerX(p.X+dir*ps.cfg.Player.Speed*dt.Seconds(), p.W)
}

// entitiesOf 按生成顺序返回指定类别的实体
func (ps *PhysicsSystem) entitiesOf(kind components.EntityKind) []ecs.EntityID {
	all := ecs.GetEntitiesWith2[*components.BodyComponent, *components.KindComponent](ps.em)
	result := make([]ecs.EntityID, 0, len(all))
	for _, id := range all {
		if k, ok := ecs.GetComponent[*components.KindComponent](ps.em, id); ok && k.Kind == kind {
			result = append(result, id)
		}
	}
	return result
}

func (ps *PhysicsSystem) body(id ecs.EntityID) *components.BodyComponent {
	b, ok := ecs.GetComponent[*components.BodyComponent](ps.em, id)
	if !ok {
		return nil
	}
	return b
}

func (ps *PhysicsSystem) kill(id ecs.EntityID, body *components.BodyComponent) {
	body.Alive = false
	ps.em.DestroyEntity(id)
}

func (ps *PhysicsSystem) play(soundID string) {
	if ps.sound != nil {
		ps.sound.PlaySound(soundID)
	}
}
