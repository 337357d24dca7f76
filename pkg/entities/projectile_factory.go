package entities

import (
	"fmt"

	"github.com/gonewx/starfall/pkg/components"
	"github.com/gonewx/starfall/pkg/ecs"
)

// BulletSpec 子弹的几何和速度参数
// 尺寸在一局开始时确定（来自精灵图或默认值），整局不变
type BulletSpec struct {
	W, H     float64 // 逻辑尺寸
	Velocity float64 // 垂直速度（单位/参考帧，负值向上）
}

// NewBullet 创建玩家子弹实体
// 子弹水平居中于飞船，底边贴着飞船顶边
//
// 参数:
//   - em: 实体管理器
//   - player: 玩家飞船当前的矩形
//   - spec: 子弹尺寸和速度
//
// 返回:
//   - ecs.EntityID: 子弹实体ID
//   - error: 如果创建失败返回错误信息
func NewBullet(em *ecs.EntityManager, player *components.BodyComponent, spec BulletSpec) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if player == nil {
		return 0, fmt.Errorf("player body cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.BodyComponent{
		X:     player.X + player.W/2 - spec.W/2,
		Y:     player.Y - spec.H,
		W:     spec.W,
		H:     spec.H,
		VY:    spec.Velocity,
		Alive: true,
	})
	ecs.AddComponent(em, id, &components.KindComponent{Kind: components.KindBullet})

	return id, nil
}
