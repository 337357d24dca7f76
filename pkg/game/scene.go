package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (e.g., menu, gameplay, ranking).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the real time elapsed since the last update.
	Update(deltaTime time.Duration)

	// Draw renders the scene to the provided screen.
	// Draw must not mutate scene state.
	Draw(screen *ebiten.Image)
}

// Disposable 是一个可选接口，用于在场景被切换掉时释放资源
//
// 实现此接口的场景会在以下时机被调用 Dispose()：
//   - SceneManager 切换到其他场景
//   - 游戏窗口关闭
//
// 游戏场景借此取消后台加载和进行中的分数提交，并关闭会话。
type Disposable interface {
	Dispose()
}
