package scenes

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/gonewx/starfall/pkg/components"
	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/ecs"
	"github.com/gonewx/starfall/pkg/entities"
	"github.com/gonewx/starfall/pkg/game"
	"github.com/gonewx/starfall/pkg/leaderboard"
)

// fakeScores 记录调用的排行榜服务
type fakeScores struct {
	mu sync.Mutex

	posted  []leaderboard.ScorePostBody
	limits  []int
	aliases []string

	postErr error
	top     []leaderboard.ScoreTopItem
	history []leaderboard.ScoreByAliasItem
}

func (f *fakeScores) PostScore(ctx context.Context, body leaderboard.ScorePostBody) (leaderboard.ScoreCreated, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posted = append(f.posted, body)
	if f.postErr != nil {
		return leaderboard.ScoreCreated{}, f.postErr
	}
	return leaderboard.ScoreCreated{ID: "id-1"}, nil
}

func (f *fakeScores) GetTop(ctx context.Context, limit int) ([]leaderboard.ScoreTopItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limits = append(f.limits, limit)
	return f.top, nil
}

func (f *fakeScores) GetByAlias(ctx context.Context, alias string) ([]leaderboard.ScoreByAliasItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aliases = append(f.aliases, alias)
	return f.history, nil
}

func (f *fakeScores) postCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.posted)
}

func (f *fakeScores) limitCalls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.limits...)
}

// fakeNavigator 记录跳转的路由
type fakeNavigator struct {
	routes []string
}

func (n *fakeNavigator) Navigate(route string) {
	n.routes = append(n.routes, route)
}

func (n *fakeNavigator) last() string {
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}

func newTestDeps(t *testing.T) (*Deps, *fakeScores, *fakeNavigator) {
	t.Helper()
	cfg := config.DefaultGameConfig()
	scores := &fakeScores{}
	nav := &fakeNavigator{}
	rm := game.NewResourceManager(nil, cfg.Assets)
	settings := game.NewSettingsManager(nil)
	return &Deps{
		Config:    cfg,
		Resources: rm,
		Audio:     game.NewAudioManager(nil, rm, settings),
		Settings:  settings,
		Scores:    scores,
		Navigator: nav,
		Context:   context.Background(),
	}, scores, nav
}

// waitUntil 轮询直到条件满足或超时
func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		time.Sleep(time.Millisecond)
	}
}

// forceGameOver 把生命值设为一次漏怪就归零，然后让一个敌人越过底部
func forceGameOver(t *testing.T, s *PlayScene) {
	t.Helper()
	world := s.Session().World()
	id, err := entities.NewEnemy(world, s.deps.Config.Enemy, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("NewEnemy() error: %v", err)
	}
	b, _ := ecs.GetComponent[*components.BodyComponent](world, id)
	b.Y = 759
}
