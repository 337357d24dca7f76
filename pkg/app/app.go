// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端、浏览器和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/embedded"
	"github.com/gonewx/starfall/pkg/game"
	"github.com/gonewx/starfall/pkg/leaderboard"
	"github.com/gonewx/starfall/pkg/scenes"
	"github.com/gonewx/starfall/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// 音频采样率
const sampleRate = 48000

// maxFrameDelta 单帧时间增量上限
// 窗口被拖动或浏览器标签页切到后台后，下一帧不会一次推进太多
const maxFrameDelta = 250 * time.Millisecond

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Difficulty 默认难度（如 "hard"），为空则使用上次选择的难度
	Difficulty string
	// APIURL 排行榜服务地址
	APIURL string
	// StartRoute 启动后进入的路由，为空则进入菜单
	StartRoute string
	// Now 时钟，为 nil 时使用 time.Now（测试可注入）
	Now func() time.Time
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	resourceManager *game.ResourceManager
	settingsManager *game.SettingsManager

	ctx    context.Context
	cancel context.CancelFunc

	now      func() time.Time
	lastTick time.Time
	verbose  bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化资源文件系统。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if !embedded.IsInitialized() {
		return nil, fmt.Errorf("embedded.Init() must be called before NewApp")
	}

	gameConfig, err := config.LoadGameConfig(config.GameConfigPath)
	if err != nil {
		return nil, fmt.Errorf("玩法配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载玩法配置: %s", config.GameConfigPath)

	// 初始化音频上下文
	audioContext := audio.NewContext(sampleRate)

	// 创建资源管理器并开始预加载精灵图
	ctx, cancel := context.WithCancel(context.Background())
	assets := embedded.Assets()
	resourceManager := game.NewResourceManager(audioContext, gameConfig.Assets)
	resourceManager.PreloadSprites(ctx, assets)
	if assets != nil {
		if ship := "assets/" + gameConfig.Assets.Ship; !embedded.Exists(ship) {
			log.Printf("[App] Warning: 资源目录缺少 %s，精灵图加载会失败并使用纯色渲染", ship)
		}
		n := resourceManager.LoadSounds(assets)
		log.Printf("[App] 加载了 %d 个音效", n)
	}

	settingsManager := game.NewSettingsManager(openStorage())
	if cfg.Difficulty != "" {
		settingsManager.SetLastDifficulty(config.ParseDifficulty(cfg.Difficulty))
	}

	audioManager := game.NewAudioManager(audioContext, resourceManager, settingsManager)
	log.Printf("[App] AudioManager initialized")

	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = config.GetEnv(config.EnvAPIURL, config.DefaultAPIURL)
	}
	scoreClient := leaderboard.NewClient(apiURL, nil)
	log.Printf("[App] 排行榜服务: %s", scoreClient.BaseURL())

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(scenes.NewSceneFactory(&scenes.Deps{
		Config:    gameConfig,
		Resources: resourceManager,
		Audio:     audioManager,
		Settings:  settingsManager,
		Scores:    scoreClient,
		Navigator: sceneManager,
		Assets:    assets,
		Context:   ctx,
	}))

	startRoute := cfg.StartRoute
	if startRoute == "" {
		startRoute = game.RouteMenu
	}
	sceneManager.Navigate(startRoute)

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &App{
		sceneManager:    sceneManager,
		resourceManager: resourceManager,
		settingsManager: settingsManager,
		ctx:             ctx,
		cancel:          cancel,
		now:             now,
		verbose:         cfg.Verbose,
	}, nil
}

// openStorage 打开跨平台存储（浏览器 localStorage / 用户数据目录）
// 失败时返回 nil，设置只保存在内存中
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: 存储目录不可用: %v", err)
	}
	m, err := gdata.Open(gdata.Config{AppName: "starfall"})
	if err != nil {
		log.Printf("[App] Warning: 无法打开存储: %v (设置不会被保存)", err)
		return nil
	}
	return m
}

// frameDelta 返回距上一帧的真实时间，第一帧为 0
func (a *App) frameDelta() time.Duration {
	t := a.now()
	if a.lastTick.IsZero() {
		a.lastTick = t
		return 0
	}
	dt := t.Sub(a.lastTick)
	a.lastTick = t
	if dt < 0 {
		return 0
	}
	return min(dt, maxFrameDelta)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.resourceManager.Poll()
	a.sceneManager.Update(a.frameDelta())
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.CanvasWidth, config.CanvasHeight
}

// Close 释放当前场景、取消后台任务并保存设置
// 游戏窗口关闭时调用
func (a *App) Close() {
	a.sceneManager.Close()
	a.cancel()
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] 保存设置失败: %v", err)
	}
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
