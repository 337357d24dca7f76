package systems

import (
	"testing"

	"github.com/gonewx/starfall/pkg/components"
	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/ecs"
	"github.com/gonewx/starfall/pkg/entities"
)

// recordingSound 记录播放过的音效
type recordingSound struct {
	played []string
}

func (r *recordingSound) PlaySound(soundID string) bool {
	r.played = append(r.played, soundID)
	return true
}

// testWorld 带玩家的最小游戏世界
type testWorld struct {
	em      *ecs.EntityManager
	cfg     *config.GameConfig
	player  ecs.EntityID
	sound   *recordingSound
	physics *PhysicsSystem
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	player, err := entities.NewPlayer(em, cfg.Player)
	if err != nil {
		t.Fatalf("NewPlayer() error: %v", err)
	}
	sound := &recordingSound{}
	return &testWorld{
		em:      em,
		cfg:     cfg,
		player:  player,
		sound:   sound,
		physics: NewPhysicsSystem(em, cfg, player, sound),
	}
}

// addBody 直接添加一个指定类别和矩形的实体
func (w *testWorld) addBody(kind components.EntityKind, body components.BodyComponent) ecs.EntityID {
	id := w.em.CreateEntity()
	body.Alive = true
	ecs.AddComponent(w.em, id, &body)
	ecs.AddComponent(w.em, id, &components.KindComponent{Kind: kind})
	if kind == components.KindEnemy {
		ecs.AddComponent(w.em, id, &components.SpinComponent{})
	}
	return id
}

func (w *testWorld) body(id ecs.EntityID) *components.BodyComponent {
	b, _ := ecs.GetComponent[*components.BodyComponent](w.em, id)
	return b
}

func (w *testWorld) count(kind components.EntityKind) int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.KindComponent](w.em) {
		if k, _ := ecs.GetComponent[*components.KindComponent](w.em, id); k.Kind == kind {
			n++
		}
	}
	return n
}
