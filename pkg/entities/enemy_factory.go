package entities

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/gonewx/starfall/pkg/components"
	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/ecs"
)

// NewEnemy 创建敌人（陨石）实体
//
// 初始状态全部随机：
//   - X 在 [0, 画布宽 - 敌人宽) 内均匀分布，Y 固定在画布上方
//   - 下落速度在 [MinSpeed, MaxSpeed) 内均匀分布
//   - 初始角度在 [0, 2π) 内，角速度在 [-MaxSpin, MaxSpin) 内
//
// 参数:
//   - em: 实体管理器
//   - cfg: 敌人配置
//   - rng: 随机数源（测试中使用固定种子）
//
// 返回:
//   - ecs.EntityID: 敌人实体ID
//   - error: 如果创建失败返回错误信息
func NewEnemy(em *ecs.EntityManager, cfg config.EnemyConfig, rng *rand.Rand) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if rng == nil {
		return 0, fmt.Errorf("random source cannot be nil")
	}

	x := rng.Float64() * (config.CanvasWidth - cfg.Width)
	vy := cfg.MinSpeed + rng.Float64()*(cfg.MaxSpeed-cfg.MinSpeed)
	angle := rng.Float64() * 2 * math.Pi
	spin := (rng.Float64()*2 - 1) * cfg.MaxSpin

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.BodyComponent{
		X:     x,
		Y:     cfg.SpawnY,
		W:     cfg.Width,
		H:     cfg.Height,
		VY:    vy,
		Alive: true,
	})
	ecs.AddComponent(em, id, &components.SpinComponent{Angle: angle, Spin: spin})
	ecs.AddComponent(em, id, &components.KindComponent{Kind: components.KindEnemy})

	return id, nil
}
