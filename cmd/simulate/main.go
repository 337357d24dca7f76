// simulate 在没有窗口的情况下用脚本机器人玩一局，打印结果
// 用于调整难度表和计分参数
//
// 用法:
//
//	go run ./cmd/simulate -difficulty hard -duration 120s -seed 42
//	go run ./cmd/simulate -config data/game.yaml -idle
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gonewx/starfall/pkg/components"
	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/ecs"
	"github.com/gonewx/starfall/pkg/game"
	"github.com/gonewx/starfall/pkg/session"
	"github.com/gonewx/starfall/pkg/systems"
)

var (
	difficulty = flag.String("difficulty", "normal", "难度: easy, normal, hard")
	duration   = flag.Duration("duration", 2*time.Minute, "最长模拟时长")
	step       = flag.Duration("dt", time.Second/60, "每帧时间增量")
	seed       = flag.Uint64("seed", 1, "随机种子")
	configPath = flag.String("config", "data/game.yaml", "玩法配置文件")
	idle       = flag.Bool("idle", false, "机器人不操作（测量纯漏怪时的存活时间）")
	verbose    = flag.Bool("verbose", false, "显示详细日志")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultGameConfig()
	if data, err := os.ReadFile(*configPath); err == nil {
		if cfg, err = config.ParseGameConfig(data); err != nil {
			fmt.Fprintf(os.Stderr, "配置无效: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Fprintf(os.Stderr, "使用默认配置 (%v)\n", err)
	}

	d := config.ParseDifficulty(*difficulty)
	sess, err := session.New(cfg, d, session.Options{
		Rand: rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15)),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "创建会话失败: %v\n", err)
		os.Exit(1)
	}
	defer sess.Close()

	b := &bot{idle: *idle}
	ticks := run(sess, b, *step, *duration)

	state := sess.Snapshot()
	fmt.Printf("difficulty=%s ticks=%d phase=%s\n", d, ticks, state.Phase)
	fmt.Printf("%s\n", systems.SummaryLine(state))
	fmt.Printf("life=%d shots=%d\n", state.Life, b.shots)
}

// run 推进会话直到游戏结束或达到最长时长，返回执行的帧数
// 第一帧的 dt 为 0
func run(sess *session.Session, b *bot, dt, limit time.Duration) int {
	ticks := 0
	var elapsed time.Duration
	for elapsed < limit {
		frameDt := dt
		if ticks == 0 {
			frameDt = 0
		}
		sess.Tick(frameDt, b.intent(sess))
		elapsed += frameDt
		ticks++
		if sess.Snapshot().Phase == game.PhaseGameOver {
			break
		}
	}
	return ticks
}

// bot 简单的脚本机器人：追踪最低的敌人，对准后射击
type bot struct {
	idle     bool
	cooldown int
	shots    int
}

// fireEvery 两次射击之间间隔的帧数（模拟按键节奏）
const fireEvery = 8

// intent 根据当前世界状态生成本帧输入
func (b *bot) intent(sess *session.Session) systems.Intent {
	if b.idle {
		return systems.Intent{}
	}

	world := sess.World()
	player, ok := ecs.GetComponent[*components.BodyComponent](world, sess.Player())
	if !ok {
		return systems.Intent{}
	}

	target := lowestEnemy(world)
	var in systems.Intent
	if target != nil {
		dx := target.CenterX() - player.CenterX()
		switch {
		case dx < -4:
			in.Left = true
		case dx > 4:
			in.Right = true
		}
	}

	if b.cooldown > 0 {
		b.cooldown--
	} else if target != nil {
		in.Fire = true
		b.cooldown = fireEvery
		b.shots++
	}
	return in
}

// lowestEnemy 返回最接近底部的存活敌人
func lowestEnemy(world *ecs.EntityManager) *components.BodyComponent {
	var lowest *components.BodyComponent
	for _, id := range ecs.GetEntitiesWith2[*components.BodyComponent, *components.KindComponent](world) {
		kind, _ := ecs.GetComponent[*components.KindComponent](world, id)
		if kind.Kind != components.KindEnemy {
			continue
		}
		body, _ := ecs.GetComponent[*components.BodyComponent](world, id)
		if !body.Alive {
			continue
		}
		if lowest == nil || body.Y > lowest.Y {
			lowest = body
		}
	}
	return lowest
}
