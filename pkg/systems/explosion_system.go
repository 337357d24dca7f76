package systems

import (
	"time"

	"github.com/gonewx/starfall/pkg/components"
	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/ecs"
)

// ExplosionSystem 推进爆炸帧动画，播放完毕后移除实体
type ExplosionSystem struct {
	em  *ecs.EntityManager
	cfg config.ExplosionConfig
}

// NewExplosionSystem 创建爆炸动画系统
func NewExplosionSystem(em *ecs.EntityManager, cfg config.ExplosionConfig) *ExplosionSystem {
	return &ExplosionSystem{em: em, cfg: cfg}
}

// Update 推进所有爆炸动画
func (s *ExplosionSystem) Update(dt time.Duration) {
	frameDuration := s.cfg.FrameDuration()
	for _, id := range ecs.GetEntitiesWith2[*components.ExplosionComponent, *components.BodyComponent](s.em) {
		ex, _ := ecs.GetComponent[*components.ExplosionComponent](s.em, id)
		body, _ := ecs.GetComponent[*components.BodyComponent](s.em, id)
		if !body.Alive {
			continue
		}

		ex.Elapsed += dt.Seconds()
		for ex.Elapsed >= frameDuration && ex.Frame < s.cfg.Frames {
			ex.Elapsed -= frameDuration
			ex.Frame++
		}

		if ex.Frame >= s.cfg.Frames {
			body.Alive = false
			s.em.DestroyEntity(id)
		}
	}
}
