package entities

import (
	"fmt"

	"github.com/gonewx/starfall/pkg/components"
	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/ecs"
)

// NewPlayer 创建玩家飞船实体
// 每局只创建一次，位于配置的固定起始位置，始终存活
//
// 参数:
//   - em: 实体管理器
//   - cfg: 玩家配置（起始位置和尺寸）
//
// 返回:
//   - ecs.EntityID: 玩家实体ID
//   - error: 如果创建失败返回错误信息
func NewPlayer(em *ecs.EntityManager, cfg config.PlayerConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.BodyComponent{
		X:     cfg.X,
		Y:     cfg.Y,
		W:     cfg.Width,
		H:     cfg.Height,
		Alive: true,
	})
	ecs.AddComponent(em, id, &components.KindComponent{Kind: components.KindPlayer})

	return id, nil
}
