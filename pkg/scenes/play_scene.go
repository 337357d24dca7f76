package scenes

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gonewx/starfall/pkg/components"
	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/entities"
	"github.com/gonewx/starfall/pkg/game"
	"github.com/gonewx/starfall/pkg/leaderboard"
	"github.com/gonewx/starfall/pkg/session"
	"github.com/gonewx/starfall/pkg/systems"
	"github.com/gonewx/starfall/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 提交失败时的默认提示
const submitFailedMessage = "Could not save the score. Try again."

// 游戏结束表单按钮下标
const (
	playButtonSubmit = iota
	playButtonMenu
)

// PlayScene 游戏场景
//
// 每帧把输入收集成一个 Intent 交给 Session.Tick，然后绘制会话快照。
// 游戏结束后显示别名输入表单：Enter 提交分数，Esc 返回菜单。
// 运行或暂停时 M 返回菜单。
type PlayScene struct {
	deps       *Deps
	difficulty config.Difficulty

	ctx    context.Context
	cancel context.CancelFunc

	session *session.Session
	input   *systems.InputSystem
	render  *systems.RenderSystem

	alias      *components.TextInputComponent
	textInput  *systems.TextInputSystem
	textRender *systems.TextInputRenderSystem
	buttons    []button
	formReady  bool

	toast      Toast
	submitTask *asyncTask[leaderboard.ScoreCreated]

	started bool
}

// NewPlayScene 开始一局新游戏
//
// 参数:
//   - deps: 场景共享依赖
//   - difficulty: 本局难度
func NewPlayScene(deps *Deps, difficulty config.Difficulty) *PlayScene {
	ctx, cancel := context.WithCancel(deps.context())

	s := &PlayScene{
		deps:       deps,
		difficulty: difficulty,
		ctx:        ctx,
		cancel:     cancel,
		input:      systems.NewInputSystem(),
		alias: &components.TextInputComponent{
			X: 60, Y: 380, Width: 360, Height: 30,
			MaxLength:   config.AliasMaxLength,
			Placeholder: "your alias",
		},
		textInput:  systems.NewTextInputSystem(),
		textRender: systems.NewTextInputRenderSystem(),
		buttons: []button{
			{label: "SUBMIT", x: 60, y: 425, w: 170, h: 34},
			{label: "MENU", x: 250, y: 425, w: 170, h: 34},
		},
	}

	var sprites *game.Sprites
	if deps.Resources != nil {
		deps.Resources.PreloadSprites(ctx, deps.Assets)
		deps.Resources.Poll()
		sprites = deps.Resources.Sprites()
	}

	// 子弹尺寸在一局开始时确定
	bw, bh := sprites.BulletSize(deps.Config.Bullet)
	opts := session.Options{
		Bullet: entities.BulletSpec{W: bw, H: bh, Velocity: deps.Config.Bullet.Velocity},
	}
	if deps.Audio != nil {
		opts.Sound = deps.Audio
	}

	sess, err := session.New(deps.Config, difficulty, opts)
	if err != nil {
		// 配置已在启动时验证，这里只可能是编程错误
		log.Printf("[PlayScene] 错误: 创建会话失败: %v", err)
	}
	s.session = sess
	if sess != nil {
		s.render = systems.NewRenderSystem(sess.World())
	}
	return s
}

// Session 返回当前会话
func (s *PlayScene) Session() *session.Session {
	return s.session
}

// Update 推进一帧
func (s *PlayScene) Update(deltaTime time.Duration) {
	if s.session == nil {
		s.deps.navigate(game.RouteMenu)
		return
	}
	if s.deps.Resources != nil {
		s.deps.Resources.Poll()
	}

	intent := s.input.Poll()
	if s.session.Snapshot().Phase == game.PhaseGameOver {
		s.textInput.Update(deltaTime, s.alias)
	} else if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.deps.navigate(game.RouteMenu)
		return
	}

	if s.step(deltaTime, intent) {
		return
	}

	if s.session.Snapshot().Phase != game.PhaseGameOver {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		s.Submit()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.deps.navigate(game.RouteMenu)
		return
	}
	switch pressedButton(s.buttons) {
	case playButtonSubmit:
		s.Submit()
	case playButtonMenu:
		s.deps.navigate(game.RouteMenu)
	}
}

// step 应用一帧输入意图并推进模拟
// 第一帧的 dt 总是 0
//
// 返回:
//   - bool: 是否已经跳转离开本场景
func (s *PlayScene) step(deltaTime time.Duration, intent systems.Intent) bool {
	if !s.started {
		deltaTime = 0
		s.started = true
	}

	if intent.Any() && s.deps.Audio != nil {
		s.deps.Audio.Unlock()
	}

	s.session.Tick(deltaTime, intent)

	if s.session.Snapshot().Phase == game.PhaseGameOver && !s.formReady {
		s.openForm()
	}

	s.toast.Update(deltaTime)
	return s.pollSubmit()
}

// openForm 游戏结束时打开别名表单，预填上次使用的别名
func (s *PlayScene) openForm() {
	s.formReady = true
	s.alias.SetText(s.deps.Settings.GetSettings().LastAlias)
	s.alias.IsFocused = true
	s.alias.CursorVisible = true
}

// Alias 返回别名输入框
func (s *PlayScene) Alias() *components.TextInputComponent {
	return s.alias
}

// Submitting 是否有提交正在进行
func (s *PlayScene) Submitting() bool {
	return s.submitTask != nil
}

// Toast 返回提示消息
func (s *PlayScene) Toast() *Toast {
	return &s.toast
}

// Submit 校验别名并在后台提交分数
// 别名不合法时只显示提示，不发送请求；提交进行中时忽略
func (s *PlayScene) Submit() {
	if s.submitTask != nil {
		return
	}
	result, ok := s.session.Result()
	if !ok {
		return
	}

	alias, err := leaderboard.ValidateAlias(s.alias.Text)
	if err != nil {
		s.toast.Show(leaderboard.ErrorMessage(err, submitFailedMessage), config.MessageDuration)
		return
	}
	if s.deps.Scores == nil {
		s.toast.Show(submitFailedMessage, config.MessageDuration)
		return
	}

	body := leaderboard.NewScorePostBody(alias, result, time.Now())
	scores := s.deps.Scores
	log.Printf("[PlayScene] 提交分数: %s %d 分", alias, body.Points)
	s.submitTask = startTask(s.ctx, func(ctx context.Context) (leaderboard.ScoreCreated, error) {
		return scores.PostScore(ctx, body)
	})
}

// pollSubmit 检查提交结果：成功时记住别名和难度并跳转到排行榜，失败时显示提示
func (s *PlayScene) pollSubmit() bool {
	if s.submitTask == nil {
		return false
	}
	r, done := s.submitTask.poll()
	if !done {
		return false
	}
	s.submitTask = nil

	if r.err != nil {
		log.Printf("[PlayScene] 提交分数失败: %v", r.err)
		s.toast.Show(leaderboard.ErrorMessage(r.err, submitFailedMessage), config.MessageDuration)
		return false
	}

	log.Printf("[PlayScene] 分数已保存: id=%s", r.value.ID)
	settings := s.deps.Settings
	settings.SetLastAlias(leaderboard.NormalizeAlias(s.alias.Text))
	settings.SetLastDifficulty(s.difficulty)
	if err := settings.Save(); err != nil {
		log.Printf("[PlayScene] 保存设置失败: %v", err)
	}
	s.deps.navigate(game.RouteRanking)
	return true
}

// Dispose 取消预加载和未完成的提交，关闭会话
func (s *PlayScene) Dispose() {
	s.cancel()
	if s.submitTask != nil {
		s.submitTask.stop()
		s.submitTask = nil
	}
	if s.session != nil {
		s.session.Close()
	}
}

// Draw 绘制游戏画面和结束表单
func (s *PlayScene) Draw(screen *ebiten.Image) {
	if s.session == nil {
		return
	}
	var sprites *game.Sprites
	if s.deps.Resources != nil {
		sprites = s.deps.Resources.Sprites()
	}
	s.render.Draw(screen, s.session.View(sprites))

	face := utils.DefaultFace()
	switch s.session.Snapshot().Phase {
	case game.PhasePaused:
		utils.DrawText(screen, "PAUSED", face, 60, 300, colorTitle)
		utils.DrawText(screen, "P/Esc: resume   M: menu", face, 60, 330, colorText)
	case game.PhaseGameOver:
		utils.DrawText(screen, "GAME OVER", face, 60, 300, colorTitle)
		utils.DrawText(screen, fmt.Sprintf("Difficulty: %s", s.difficulty), face, 60, 355, colorDim)
		s.textRender.DrawInputBox(screen, s.alias)
		for _, b := range s.buttons {
			b.draw(screen, false)
		}
		hint := "Enter: submit   Esc: menu"
		if s.submitTask != nil {
			hint = "Saving..."
		}
		utils.DrawText(screen, hint, face, 60, 485, colorDim)
		s.toast.Draw(screen, 60, 520, 360)
	}
}
