package systems

import (
	"math"
	"testing"
	"time"

	"github.com/gonewx/starfall/pkg/components"
	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/ecs"
)

// TestPhysicsZeroDelta dt=0 时任何实体都不移动
func TestPhysicsZeroDelta(t *testing.T) {
	w := newTestWorld(t)
	bullet := w.addBody(components.KindBullet, components.BodyComponent{X: 100, Y: 300, W: 6, H: 12, VY: -10})
	enemy := w.addBody(components.KindEnemy, components.BodyComponent{X: 300, Y: 50, W: 36, H: 36, VY: 3})
	spin, _ := ecs.GetComponent[*components.SpinComponent](w.em, enemy)
	spin.Spin = 0.05

	ids := []ecs.EntityID{w.player, bullet, enemy}
	before := make([]components.BodyComponent, len(ids))
	for i, id := range ids {
		before[i] = *w.body(id)
	}

	outcomes := w.physics.Update(0, Intent{Left: true})
	if len(outcomes) != 0 {
		t.Errorf("dt=0 produced outcomes: %v", outcomes)
	}

	for i, id := range ids {
		if got := *w.body(id); got != before[i] {
			t.Errorf("entity %d moved with dt=0: %+v -> %+v", id, before[i], got)
		}
	}
	if spin.Angle != 0 {
		t.Errorf("enemy rotated with dt=0: %v", spin.Angle)
	}
}

// TestPlayerMovementClamped 玩家始终位于 [0, 480-w]
func TestPlayerMovementClamped(t *testing.T) {
	w := newTestWorld(t)
	p := w.body(w.player)

	w.physics.Update(500*time.Millisecond, Intent{Right: true})
	if p.X != 340 {
		t.Errorf("after 0.5s right: x = %v, want 340", p.X)
	}

	for i := 0; i < 10; i++ {
		w.physics.Update(time.Second, Intent{Right: true})
		if p.X < 0 || p.X > 380 {
			t.Fatalf("player x out of range: %v", p.X)
		}
	}
	if p.X != 380 {
		t.Errorf("x = %v, want clamped 380", p.X)
	}

	for i := 0; i < 10; i++ {
		w.physics.Update(time.Second, Intent{Left: true})
	}
	if p.X != 0 {
		t.Errorf("x = %v, want clamped 0", p.X)
	}
}

func TestMovePlayerTo(t *testing.T) {
	w := newTestWorld(t)
	p := w.body(w.player)

	tests := []struct {
		pointerX, want float64
	}{
		{240, 190},
		{10, 0},
		{470, 380},
	}
	for _, tt := range tests {
		w.physics.MovePlayerTo(tt.pointerX)
		if p.X != tt.want {
			t.Errorf("MovePlayerTo(%v): x = %v, want %v", tt.pointerX, p.X, tt.want)
		}
	}
}

// TestIntegrationPerReferenceTick 速度以参考帧（1/60 秒）为单位
func TestIntegrationPerReferenceTick(t *testing.T) {
	w := newTestWorld(t)
	bullet := w.addBody(components.KindBullet, components.BodyComponent{X: 100, Y: 300, W: 6, H: 12, VY: -10})
	enemy := w.addBody(components.KindEnemy, components.BodyComponent{X: 300, Y: 50, W: 36, H: 36, VY: 3})
	spin, _ := ecs.GetComponent[*components.SpinComponent](w.em, enemy)
	spin.Spin = 0.05

	w.physics.Update(500*time.Millisecond, Intent{})

	if got := w.body(bullet).Y; got != 0 {
		t.Errorf("bullet y = %v, want 0", got)
	}
	if got := w.body(enemy).Y; got != 140 {
		t.Errorf("enemy y = %v, want 140", got)
	}
	if math.Abs(spin.Angle-1.5) > 1e-9 {
		t.Errorf("enemy angle = %v, want 1.5", spin.Angle)
	}
}

// TestBulletLeavesTop 子弹越过顶部后移除，不影响计分
func TestBulletLeavesTop(t *testing.T) {
	w := newTestWorld(t)
	bullet := w.addBody(components.KindBullet, components.BodyComponent{X: 100, Y: -15, W: 6, H: 12, VY: -10})

	outcomes := w.physics.Update(time.Second/60, Intent{})
	if len(outcomes) != 0 {
		t.Errorf("bullet leaving the top should not produce outcomes: %v", outcomes)
	}
	if w.body(bullet).Alive {
		t.Error("bullet above y=-20 should be dead")
	}
	w.em.RemoveMarkedEntities()
	if w.count(components.KindBullet) != 0 {
		t.Error("dead bullet should be purged")
	}
}

// TestEnemyMiss 敌人越过 y=760 记为漏掉
func TestEnemyMiss(t *testing.T) {
	w := newTestWorld(t)
	enemy := w.addBody(components.KindEnemy, components.BodyComponent{X: 10, Y: 758, W: 36, H: 36, VY: 3})

	outcomes := w.physics.Update(time.Second/60, Intent{})
	if len(outcomes) != 1 || outcomes[0].Kind != OutcomeMiss || outcomes[0].Enemy != enemy {
		t.Fatalf("outcomes = %v, want one miss", outcomes)
	}
	if w.body(enemy).Alive {
		t.Error("missed enemy should be dead")
	}
	if len(w.sound.played) != 1 || w.sound.played[0] != config.SoundHit {
		t.Errorf("played = %v, want [hit]", w.sound.played)
	}

	w.em.RemoveMarkedEntities()
	if w.count(components.KindEnemy) != 0 {
		t.Error("missed enemy should be removed")
	}
}

// TestOneBulletTwoEnemies 一颗子弹只与第一个敌人重叠：一次击杀，第二个敌人存活
func TestOneBulletTwoEnemies(t *testing.T) {
	w := newTestWorld(t)
	first := w.addBody(components.KindEnemy, components.BodyComponent{X: 100, Y: 200, W: 36, H: 36})
	second := w.addBody(components.KindEnemy, components.BodyComponent{X: 300, Y: 200, W: 36, H: 36})
	bullet := w.addBody(components.KindBullet, components.BodyComponent{X: 110, Y: 210, W: 6, H: 12})

	outcomes := w.physics.Update(0, Intent{})
	if len(outcomes) != 1 || outcomes[0].Kind != OutcomeKill || outcomes[0].Enemy != first {
		t.Fatalf("outcomes = %v, want one kill of first enemy", outcomes)
	}
	if w.body(first).Alive || w.body(bullet).Alive {
		t.Error("bullet and first enemy should be dead")
	}
	if !w.body(second).Alive {
		t.Error("second enemy should stay alive")
	}
	if n := w.count(components.KindExplosion); n != 1 {
		t.Errorf("explosions = %d, want 1", n)
	}
	if len(w.sound.played) != 1 || w.sound.played[0] != config.SoundExplosion {
		t.Errorf("played = %v, want [explosion]", w.sound.played)
	}

	w.em.RemoveMarkedEntities()
	if w.count(components.KindEnemy) != 1 || w.count(components.KindBullet) != 0 {
		t.Error("compaction should keep only the second enemy")
	}
}

// TestBulletOverlappingTwoEnemiesHitsEarlierSpawn 同时重叠两个敌人时击中先生成的
func TestBulletOverlappingTwoEnemiesHitsEarlierSpawn(t *testing.T) {
	w := newTestWorld(t)
	earlier := w.addBody(components.KindEnemy, components.BodyComponent{X: 100, Y: 200, W: 36, H: 36})
	later := w.addBody(components.KindEnemy, components.BodyComponent{X: 110, Y: 200, W: 36, H: 36})
	w.addBody(components.KindBullet, components.BodyComponent{X: 120, Y: 210, W: 6, H: 12})

	outcomes := w.physics.Update(0, Intent{})
	if len(outcomes) != 1 || outcomes[0].Enemy != earlier {
		t.Fatalf("outcomes = %v, want kill of earlier enemy %d", outcomes, earlier)
	}
	if !w.body(later).Alive {
		t.Error("later enemy should survive")
	}
}

func TestTwoBulletsTwoEnemies(t *testing.T) {
	w := newTestWorld(t)
	w.addBody(components.KindEnemy, components.BodyComponent{X: 100, Y: 200, W: 36, H: 36})
	w.addBody(components.KindEnemy, components.BodyComponent{X: 110, Y: 200, W: 36, H: 36})
	w.addBody(components.KindBullet, components.BodyComponent{X: 120, Y: 210, W: 6, H: 12})
	w.addBody(components.KindBullet, components.BodyComponent{X: 125, Y: 210, W: 6, H: 12})

	outcomes := w.physics.Update(0, Intent{})
	if len(outcomes) != 2 {
		t.Fatalf("outcomes = %v, want two kills", outcomes)
	}
	if outcomes[0].Enemy == outcomes[1].Enemy {
		t.Error("an enemy cannot be killed twice")
	}
}

// TestEnemyHitsPlayer 敌人撞上玩家：敌人销毁，记为被撞
func TestEnemyHitsPlayer(t *testing.T) {
	w := newTestWorld(t)
	enemy := w.addBody(components.KindEnemy, components.BodyComponent{X: 240, Y: 610, W: 36, H: 36})

	outcomes := w.physics.Update(0, Intent{})
	if len(outcomes) != 1 || outcomes[0].Kind != OutcomePlayerHit {
		t.Fatalf("outcomes = %v, want one player hit", outcomes)
	}
	if w.body(enemy).Alive {
		t.Error("enemy should die on player collision")
	}
	if !w.body(w.player).Alive {
		t.Error("player is always alive")
	}
	if w.count(components.KindExplosion) != 0 {
		t.Error("player collisions do not create explosions")
	}
}

// TestKilledEnemyCannotHitPlayer 已被子弹击毁的敌人不再与玩家碰撞
func TestKilledEnemyCannotHitPlayer(t *testing.T) {
	w := newTestWorld(t)
	w.addBody(components.KindEnemy, components.BodyComponent{X: 240, Y: 610, W: 36, H: 36})
	w.addBody(components.KindBullet, components.BodyComponent{X: 250, Y: 620, W: 6, H: 12})

	outcomes := w.physics.Update(0, Intent{})
	if len(outcomes) != 1 || outcomes[0].Kind != OutcomeKill {
		t.Fatalf("outcomes = %v, want only a kill", outcomes)
	}
}

func TestOutcomeKindString(t *testing.T) {
	if OutcomeKill.String() != "kill" || OutcomeMiss.String() != "miss" || OutcomePlayerHit.String() != "player-hit" {
		t.Error("unexpected outcome names")
	}
}

func TestPhysicsNilSound(t *testing.T) {
	w := newTestWorld(t)
	w.physics = NewPhysicsSystem(w.em, w.cfg, w.player, nil)
	w.addBody(components.KindEnemy, components.BodyComponent{X: 240, Y: 610, W: 36, H: 36})
	if got := w.physics.Update(0, Intent{}); len(got) != 1 {
		t.Errorf("outcomes = %v", got)
	}
}
