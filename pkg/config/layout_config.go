package config

// 逻辑画布尺寸
// 所有游戏坐标都基于此固定分辨率，Ebitengine 负责缩放到实际窗口/浏览器画布
const (
	CanvasWidth  = 480
	CanvasHeight = 720
)

// 窗口初始尺寸（桌面端）
const (
	GameWindowWidth  = CanvasWidth
	GameWindowHeight = CanvasHeight
	GameWindowTitle  = "Starfall"
)

// HUD 布局
const (
	HUDMarginX     = 10 // HUD 文本左边距
	HUDFirstLineY  = 20 // 第一行文本基线
	HUDLineSpacing = 20 // 行距
)

// 覆盖层
const (
	PauseOverlayAlpha    = 0.5  // 暂停遮罩不透明度
	GameOverOverlayAlpha = 0.65 // 结束遮罩不透明度
	SummaryTextX         = 60   // 结束摘要文本X坐标
	SummaryTextY         = 330  // 结束摘要文本基线Y坐标
)
