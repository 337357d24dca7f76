// Package scenes 实现各个路由对应的场景：菜单、游戏、排行榜和别名历史。
package scenes

import (
	"context"
	"io/fs"

	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/game"
	"github.com/gonewx/starfall/pkg/leaderboard"
)

// Scene game.Scene 的别名，方便本包内引用
type Scene = game.Scene

// ScoreService 排行榜服务（由 leaderboard.Client 实现）
type ScoreService interface {
	PostScore(ctx context.Context, body leaderboard.ScorePostBody) (leaderboard.ScoreCreated, error)
	GetTop(ctx context.Context, limit int) ([]leaderboard.ScoreTopItem, error)
	GetByAlias(ctx context.Context, alias string) ([]leaderboard.ScoreByAliasItem, error)
}

// Navigator 路由跳转（由 game.SceneManager 实现）
type Navigator interface {
	Navigate(route string)
}

// Deps 场景共享的依赖
type Deps struct {
	Config    *config.GameConfig
	Resources *game.ResourceManager
	Audio     *game.AudioManager
	Settings  *game.SettingsManager
	Scores    ScoreService
	Navigator Navigator

	// Assets 以资源目录为根的文件系统，为 nil 时使用降级渲染
	Assets fs.FS

	// Context 应用生命周期，场景的后台任务都派生自它
	Context context.Context
}

// NewSceneFactory 创建路由 -> 场景的工厂函数
// 无法识别的路由返回 nil，由 SceneManager 回退到菜单
func NewSceneFactory(deps *Deps) game.SceneFactory {
	return func(name, param string) game.Scene {
		switch name {
		case game.RouteMenu, "":
			return NewMenuScene(deps)
		case game.RoutePlay:
			d := deps.Settings.GetSettings().LastDifficulty
			if param != "" {
				d = config.ParseDifficulty(param)
			}
			return NewPlayScene(deps, d)
		case game.RouteRanking:
			return NewRankingScene(deps)
		case game.RouteAlias:
			if leaderboard.NormalizeAlias(param) == "" {
				return NewRankingScene(deps)
			}
			return NewAliasScene(deps, param)
		}
		return nil
	}
}

func (d *Deps) context() context.Context {
	if d.Context == nil {
		return context.Background()
	}
	return d.Context
}

func (d *Deps) navigate(route string) {
	if d.Navigator != nil {
		d.Navigator.Navigate(route)
	}
}
