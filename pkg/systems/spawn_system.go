package systems

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/ecs"
	"github.com/gonewx/starfall/pkg/entities"
)

// SpawnSystem 按难度间隔生成敌人
//
// 时间累加器达到间隔时生成一个敌人并清零累加器（不保留余量），
// 所以一帧最多生成一个敌人。
type SpawnSystem struct {
	em          *ecs.EntityManager
	cfg         config.EnemyConfig
	interval    time.Duration
	accumulator time.Duration
	rng         *rand.Rand
}

// NewSpawnSystem 创建敌人生成系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 敌人配置
//   - interval: 生成间隔（由难度决定，整局不变）
//   - rng: 随机数源
func NewSpawnSystem(em *ecs.EntityManager, cfg config.EnemyConfig, interval time.Duration, rng *rand.Rand) *SpawnSystem {
	return &SpawnSystem{
		em:       em,
		cfg:      cfg,
		interval: interval,
		rng:      rng,
	}
}

// Update 累加时间，到达间隔时生成一个敌人
//
// 返回:
//   - bool: 本帧是否生成了敌人
func (s *SpawnSystem) Update(dt time.Duration) bool {
	s.accumulator += dt
	if s.accumulator < s.interval {
		return false
	}
	s.accumulator = 0

	if _, err := entities.NewEnemy(s.em, s.cfg, s.rng); err != nil {
		log.Printf("[SpawnSystem] 生成敌人失败: %v", err)
		return false
	}
	return true
}

// Interval 返回生成间隔
func (s *SpawnSystem) Interval() time.Duration {
	return s.interval
}
