package scenes

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/game"
	"github.com/gonewx/starfall/pkg/leaderboard"
	"github.com/gonewx/starfall/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 菜单按钮下标
const (
	menuButtonEasy = iota
	menuButtonNormal
	menuButtonHard
	menuButtonPlay
	menuButtonRanking
)

// 音量调节步长
const volumeStep = 0.1

// MenuScene 主菜单
//
// 键位：
//   - 左/右、1/2/3：选择难度
//   - 上/下：排行榜显示条数 ±1，PageUp/PageDown ±10
//   - Enter：开始游戏；R：打开排行榜
//   - S：音效开关；-/=：音量
type MenuScene struct {
	deps *Deps

	difficulty config.Difficulty
	limit      int

	top      []leaderboard.ScoreTopItem
	topErr   error
	loadTask *asyncTask[[]leaderboard.ScoreTopItem]

	buttons []button
}

// NewMenuScene 创建菜单场景并开始加载排行榜
func NewMenuScene(deps *Deps) *MenuScene {
	s := &MenuScene{
		deps:       deps,
		difficulty: deps.Settings.GetSettings().LastDifficulty,
		limit:      config.LeaderboardDefaultLimit,
		buttons: []button{
			{label: "EASY", x: 60, y: 150, w: 110, h: 34},
			{label: "NORMAL", x: 185, y: 150, w: 110, h: 34},
			{label: "HARD", x: 310, y: 150, w: 110, h: 34},
			{label: "PLAY", x: 60, y: 200, w: 175, h: 40},
			{label: "RANKING", x: 245, y: 200, w: 175, h: 40},
		},
	}
	s.loadTop()
	return s
}

// loadTop 按当前条数重新加载排行榜，取消尚未完成的旧请求
func (s *MenuScene) loadTop() {
	if s.deps.Scores == nil {
		return
	}
	if s.loadTask != nil {
		s.loadTask.stop()
	}
	limit := s.limit
	scores := s.deps.Scores
	s.loadTask = startTask(s.deps.context(), func(ctx context.Context) ([]leaderboard.ScoreTopItem, error) {
		return scores.GetTop(ctx, limit)
	})
}

// SetDifficulty 选择难度
func (s *MenuScene) SetDifficulty(d config.Difficulty) {
	s.difficulty = d
}

// Difficulty 返回当前选择的难度
func (s *MenuScene) Difficulty() config.Difficulty {
	return s.difficulty
}

// cycleDifficulty 在难度列表中循环移动
func (s *MenuScene) cycleDifficulty(step int) {
	n := len(config.Difficulties)
	idx := 0
	for i, d := range config.Difficulties {
		if d == s.difficulty {
			idx = i
		}
	}
	s.difficulty = config.Difficulties[((idx+step)%n+n)%n]
}

// AdjustLimit 调整排行榜显示条数（限制在 1 到 100），变化时重新加载
func (s *MenuScene) AdjustLimit(delta int) {
	n := max(config.LeaderboardMinLimit, min(config.LeaderboardMaxLimit, s.limit+delta))
	if n == s.limit {
		return
	}
	s.limit = n
	s.loadTop()
}

// Limit 返回排行榜显示条数
func (s *MenuScene) Limit() int {
	return s.limit
}

// Play 以当前难度开始游戏
func (s *MenuScene) Play() {
	log.Printf("[MenuScene] 开始游戏: 难度=%s", s.difficulty)
	s.deps.navigate(game.JoinRoute(game.RoutePlay, s.difficulty.String()))
}

// Update 处理输入并轮询排行榜加载结果
func (s *MenuScene) Update(deltaTime time.Duration) {
	s.pollTop()

	if utils.AnyInputJustPressed() && s.deps.Audio != nil {
		s.deps.Audio.Unlock()
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		s.cycleDifficulty(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		s.cycleDifficulty(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit1):
		s.SetDifficulty(config.DifficultyEasy)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit2):
		s.SetDifficulty(config.DifficultyNormal)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit3):
		s.SetDifficulty(config.DifficultyHard)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		s.AdjustLimit(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		s.AdjustLimit(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		s.AdjustLimit(10)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		s.AdjustLimit(-10)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		s.toggleSound()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		s.changeVolume(-volumeStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		s.changeVolume(volumeStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.deps.navigate(game.RouteRanking)
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		s.Play()
		return
	}

	switch pressedButton(s.buttons) {
	case menuButtonEasy:
		s.SetDifficulty(config.DifficultyEasy)
	case menuButtonNormal:
		s.SetDifficulty(config.DifficultyNormal)
	case menuButtonHard:
		s.SetDifficulty(config.DifficultyHard)
	case menuButtonPlay:
		s.Play()
	case menuButtonRanking:
		s.deps.navigate(game.RouteRanking)
	}
}

// pollTop 检查排行榜是否加载完成
func (s *MenuScene) pollTop() {
	if s.loadTask == nil {
		return
	}
	r, done := s.loadTask.poll()
	if !done {
		return
	}
	s.loadTask = nil
	s.top, s.topErr = r.value, r.err
	if r.err != nil {
		log.Printf("[MenuScene] 加载排行榜失败: %v", r.err)
	}
}

func (s *MenuScene) toggleSound() {
	settings := s.deps.Settings
	settings.SetSoundEnabled(!settings.GetSettings().SoundEnabled)
	s.saveSettings()
}

func (s *MenuScene) changeVolume(delta float64) {
	if s.deps.Audio == nil {
		return
	}
	s.deps.Audio.SetSoundVolume(s.deps.Audio.GetSoundVolume() + delta)
	s.saveSettings()
}

func (s *MenuScene) saveSettings() {
	if err := s.deps.Settings.Save(); err != nil {
		log.Printf("[MenuScene] 保存设置失败: %v", err)
	}
}

// Dispose 取消未完成的加载
func (s *MenuScene) Dispose() {
	if s.loadTask != nil {
		s.loadTask.stop()
		s.loadTask = nil
	}
}

// topLines 生成排行榜文本行
func (s *MenuScene) topLines() []string {
	switch {
	case s.loadTask != nil && s.top == nil:
		return []string{"Loading..."}
	case s.topErr != nil:
		return []string{"Could not load the leaderboard."}
	case len(s.top) == 0:
		return []string{"No scores yet."}
	}
	lines := make([]string, 0, len(s.top))
	for i, item := range s.top {
		lines = append(lines, fmt.Sprintf("%3d. %-16s %7d  %4ds", i+1, truncate(item.Alias, 16), item.Points, item.DurationSec))
	}
	return lines
}

// Draw 绘制菜单
func (s *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	if s.deps.Resources != nil {
		drawBackground(screen, s.deps.Resources.Sprites())
	}

	face := utils.DefaultFace()
	utils.DrawText(screen, "STARFALL", face, 60, 80, colorTitle)
	utils.DrawText(screen, "Destroy the falling asteroids. Don't let them pass.", face, 60, 110, colorText)

	for i, b := range s.buttons {
		selected := i <= menuButtonHard && config.Difficulties[i] == s.difficulty
		b.draw(screen, selected)
	}

	settings := s.deps.Settings.GetSettings()
	sound := "off"
	if settings.SoundEnabled {
		sound = fmt.Sprintf("on (%.0f%%)", settings.SoundVolume*100)
	}
	hints := []string{
		"Enter: play   R: ranking   Left/Right, 1-3: difficulty",
		fmt.Sprintf("S: sound %s   -/=: volume", sound),
	}
	if utils.IsMobile() {
		hints = []string{"Tap a difficulty, then PLAY", fmt.Sprintf("Sound %s", sound)}
	}
	drawLines(screen, hints, 60, 265, colorDim)

	utils.DrawText(screen, fmt.Sprintf("TOP %d  (Up/Down to change)", s.limit), face, 60, 320, colorHighlight)

	// 只绘制画布内放得下的行
	lines := s.topLines()
	maxRows := (config.CanvasHeight - 360) / rowHeight
	if len(lines) > maxRows {
		lines = lines[:maxRows]
	}
	clr := colorText
	if s.topErr != nil {
		clr = colorError
	}
	drawLines(screen, lines, 60, 345, clr)
}

// truncate 截断过长的文本
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
