package scenes

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gonewx/starfall/pkg/game"
	"github.com/gonewx/starfall/pkg/leaderboard"
	"github.com/gonewx/starfall/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AliasScene 某个别名的历史分数，Esc/Backspace 返回排行榜
type AliasScene struct {
	deps  *Deps
	alias string

	rows     []leaderboard.ScoreByAliasItem
	err      error
	loadTask *asyncTask[[]leaderboard.ScoreByAliasItem]

	back button
}

// NewAliasScene 创建别名历史场景并开始加载
func NewAliasScene(deps *Deps, alias string) *AliasScene {
	s := &AliasScene{
		deps:  deps,
		alias: leaderboard.NormalizeAlias(alias),
		back:  button{label: "BACK", x: 60, y: 640, w: 110, h: 30},
	}
	if deps.Scores != nil && s.alias != "" {
		scores, a := deps.Scores, s.alias
		s.loadTask = startTask(deps.context(), func(ctx context.Context) ([]leaderboard.ScoreByAliasItem, error) {
			return scores.GetByAlias(ctx, a)
		})
	}
	return s
}

// Alias 返回正在查看的别名
func (s *AliasScene) Alias() string {
	return s.alias
}

// Update 处理输入并轮询加载结果
func (s *AliasScene) Update(deltaTime time.Duration) {
	s.poll()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		s.deps.navigate(game.RouteRanking)
		return
	}
	if pressedButton([]button{s.back}) == 0 {
		s.deps.navigate(game.RouteRanking)
	}
}

func (s *AliasScene) poll() {
	if s.loadTask == nil {
		return
	}
	r, done := s.loadTask.poll()
	if !done {
		return
	}
	s.loadTask = nil
	s.rows, s.err = r.value, r.err
	if r.err != nil {
		log.Printf("[AliasScene] 加载 %q 的历史记录失败: %v", s.alias, r.err)
	}
}

// Dispose 取消未完成的加载
func (s *AliasScene) Dispose() {
	if s.loadTask != nil {
		s.loadTask.stop()
		s.loadTask = nil
	}
}

func (s *AliasScene) lines() []string {
	switch {
	case s.loadTask != nil:
		return []string{"Loading..."}
	case s.err != nil:
		return []string{"Could not load the history."}
	case len(s.rows) == 0:
		return []string{"No scores for this alias."}
	}
	lines := []string{fmt.Sprintf("%-3s %7s %5s %5s  %s", "#", "POINTS", "COMBO", "TIME", "DATE")}
	for i, row := range s.rows {
		duration := "-"
		if row.DurationSec != nil {
			duration = fmt.Sprintf("%ds", *row.DurationSec)
		}
		lines = append(lines, fmt.Sprintf("%-3d %7d %5s %5s  %s",
			i+1, row.Points, leaderboard.FormatOptionalInt(row.MaxCombo), duration,
			row.CreatedAt.Local().Format("2006-01-02 15:04")))
	}
	return lines
}

// Draw 绘制历史记录
func (s *AliasScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	if s.deps.Resources != nil {
		drawBackground(screen, s.deps.Resources.Sprites())
	}

	face := utils.DefaultFace()
	utils.DrawText(screen, "HISTORY: "+truncate(s.alias, 30), face, 60, 80, colorTitle)

	lines := s.lines()
	if maxRows := (620 - 120) / rowHeight; len(lines) > maxRows {
		lines = lines[:maxRows]
	}
	clr := colorText
	if s.err != nil {
		clr = colorError
	}
	drawLines(screen, lines, 60, 120, clr)

	s.back.draw(screen, false)
	utils.DrawText(screen, "Esc: back", face, 190, 660, colorDim)
}
