package entities

import (
	"fmt"

	"github.com/gonewx/starfall/pkg/components"
	"github.com/gonewx/starfall/pkg/ecs"
)

// NewExplosion 创建爆炸特效实体
// 位置和尺寸复制自被击毁的敌人，从第 0 帧开始播放
//
// 参数:
//   - em: 实体管理器
//   - enemy: 被击毁敌人的矩形
//
// 返回:
//   - ecs.EntityID: 爆炸实体ID
//   - error: 如果创建失败返回错误信息
func NewExplosion(em *ecs.EntityManager, enemy *components.BodyComponent) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if enemy == nil {
		return 0, fmt.Errorf("enemy body cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.BodyComponent{
		X:     enemy.X,
		Y:     enemy.Y,
		W:     enemy.W,
		H:     enemy.H,
		Alive: true,
	})
	ecs.AddComponent(em, id, &components.ExplosionComponent{})
	ecs.AddComponent(em, id, &components.KindComponent{Kind: components.KindExplosion})

	return id, nil
}
