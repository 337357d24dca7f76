package scenes

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gonewx/starfall/pkg/components"
	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/game"
	"github.com/gonewx/starfall/pkg/leaderboard"
	"github.com/gonewx/starfall/pkg/systems"
	"github.com/gonewx/starfall/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 排行榜页面显示条数
const rankingLimit = 10

// RankingScene 排行榜
// 显示前 10 名；输入别名后按 Enter 查看该别名的历史记录，Esc 返回菜单
type RankingScene struct {
	deps *Deps

	top      []leaderboard.ScoreTopItem
	err      error
	loadTask *asyncTask[[]leaderboard.ScoreTopItem]

	search     *components.TextInputComponent
	textInput  *systems.TextInputSystem
	textRender *systems.TextInputRenderSystem

	buttons []button
}

// 排行榜按钮下标
const (
	rankingButtonSearch = iota
	rankingButtonBack
)

// NewRankingScene 创建排行榜场景并开始加载
func NewRankingScene(deps *Deps) *RankingScene {
	s := &RankingScene{
		deps: deps,
		search: &components.TextInputComponent{
			X: 60, Y: 540, Width: 240, Height: 30,
			MaxLength:   config.AliasMaxLength,
			Placeholder: "alias",
			IsFocused:   true,
		},
		textInput:  systems.NewTextInputSystem(),
		textRender: systems.NewTextInputRenderSystem(),
		buttons: []button{
			{label: "SEARCH", x: 310, y: 540, w: 110, h: 30},
			{label: "BACK", x: 60, y: 600, w: 110, h: 30},
		},
	}
	s.reload()
	return s
}

func (s *RankingScene) reload() {
	if s.deps.Scores == nil {
		return
	}
	if s.loadTask != nil {
		s.loadTask.stop()
	}
	s.err = nil
	scores := s.deps.Scores
	s.loadTask = startTask(s.deps.context(), func(ctx context.Context) ([]leaderboard.ScoreTopItem, error) {
		return scores.GetTop(ctx, rankingLimit)
	})
}

// Search 打开输入别名的历史记录，输入为空时不做任何事
func (s *RankingScene) Search() {
	q := leaderboard.NormalizeAlias(s.search.Text)
	if q == "" {
		return
	}
	s.deps.navigate(game.JoinRoute(game.RouteAlias, q))
}

// Update 处理输入并轮询加载结果
func (s *RankingScene) Update(deltaTime time.Duration) {
	s.poll()
	s.textInput.Update(deltaTime, s.search)

	if utils.AnyInputJustPressed() && s.deps.Audio != nil {
		s.deps.Audio.Unlock()
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		s.Search()
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.deps.navigate(game.RouteMenu)
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		s.reload()
	}

	switch pressedButton(s.buttons) {
	case rankingButtonSearch:
		s.Search()
	case rankingButtonBack:
		s.deps.navigate(game.RouteMenu)
	}
}

func (s *RankingScene) poll() {
	if s.loadTask == nil {
		return
	}
	r, done := s.loadTask.poll()
	if !done {
		return
	}
	s.loadTask = nil
	s.top, s.err = r.value, r.err
	if r.err != nil {
		log.Printf("[RankingScene] 加载排行榜失败: %v", r.err)
	}
}

// Loading 是否正在加载
func (s *RankingScene) Loading() bool {
	return s.loadTask != nil
}

// Dispose 取消未完成的加载
func (s *RankingScene) Dispose() {
	if s.loadTask != nil {
		s.loadTask.stop()
		s.loadTask = nil
	}
}

// rows 生成排行榜文本行
func (s *RankingScene) rows() []string {
	switch {
	case s.loadTask != nil:
		return []string{"Loading..."}
	case s.err != nil:
		return []string{"Could not load the ranking. F5 to retry."}
	case len(s.top) == 0:
		return []string{"No scores yet."}
	}
	lines := []string{fmt.Sprintf("%-3s %-16s %7s %5s %5s  %s", "#", "ALIAS", "POINTS", "COMBO", "TIME", "DATE")}
	for i, item := range s.top {
		lines = append(lines, fmt.Sprintf("%-3d %-16s %7d %5s %4ds  %s",
			i+1, truncate(item.Alias, 16), item.Points, leaderboard.FormatOptionalInt(item.MaxCombo),
			item.DurationSec, item.CreatedAt.Local().Format("01-02")))
	}
	return lines
}

// Draw 绘制排行榜
func (s *RankingScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	if s.deps.Resources != nil {
		drawBackground(screen, s.deps.Resources.Sprites())
	}

	face := utils.DefaultFace()
	utils.DrawText(screen, "RANKING - TOP 10", face, 60, 80, colorTitle)

	clr := colorText
	if s.err != nil {
		clr = colorError
	}
	drawLines(screen, s.rows(), 30, 120, clr)

	utils.DrawText(screen, "Search alias history:", face, 60, 530, colorDim)
	s.textRender.DrawInputBox(screen, s.search)
	for _, b := range s.buttons {
		b.draw(screen, false)
	}
	utils.DrawText(screen, "Enter: search   Esc: menu", face, 60, 660, colorDim)
}
