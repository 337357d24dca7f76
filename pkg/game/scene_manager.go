package game

import (
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// 路由名称
const (
	RouteMenu    = "menu"
	RoutePlay    = "play"
	RouteRanking = "ranking"
	RouteAlias   = "alias"
)

// SceneFactory 场景工厂函数类型
// 根据路由名和参数创建场景，避免 game 包依赖 scenes 包
// 返回 nil 表示无法识别的路由
type SceneFactory func(name, param string) Scene

// ParseRoute 把 "alias/Neo" 形式的路由拆成名称和参数
func ParseRoute(route string) (name, param string) {
	route = strings.Trim(route, "/")
	name, param, _ = strings.Cut(route, "/")
	return name, param
}

// JoinRoute 构造带参数的路由
func JoinRoute(name, param string) string {
	if param == "" {
		return name
	}
	return name + "/" + param
}

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	currentRoute string
	sceneFactory SceneFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use Navigate or SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The outgoing scene is disposed if it implements Disposable.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	if d, ok := sm.currentScene.(Disposable); ok {
		d.Dispose()
	}
	sm.currentScene = scene
}

// Navigate 切换到指定路由的场景
// 无法识别的路由回退到菜单
//
// 参数:
//   - route: 路由，如 "menu", "play/hard", "alias/Neo"
func (sm *SceneManager) Navigate(route string) {
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return
	}

	name, param := ParseRoute(route)
	scene := sm.sceneFactory(name, param)
	if scene == nil {
		log.Printf("[SceneManager] 未知路由 %q，回退到菜单", route)
		name, param = RouteMenu, ""
		scene = sm.sceneFactory(RouteMenu, "")
	}
	if scene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景: %s", route)
		return
	}

	sm.SwitchTo(scene)
	sm.currentRoute = JoinRoute(name, param)
	log.Printf("[SceneManager] 切换到场景: %s", sm.currentRoute)
}

// CurrentRoute 返回当前场景的路由
func (sm *SceneManager) CurrentRoute() string {
	return sm.currentRoute
}

// GetCurrentScene 返回当前活动的场景
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Close 释放当前场景（游戏退出时调用）
func (sm *SceneManager) Close() {
	sm.SwitchTo(nil)
	sm.currentRoute = ""
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime time.Duration) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
