package systems

import (
	"image/color"

	"github.com/gonewx/starfall/pkg/components"
	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/ecs"
	"github.com/gonewx/starfall/pkg/game"
	"github.com/gonewx/starfall/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 降级渲染颜色（精灵图未加载时使用）
var (
	colorBackground = color.RGBA{0x00, 0x00, 0x00, 0xff}
	colorPlayer     = color.RGBA{0x44, 0xaa, 0xff, 0xff}
	colorBullet     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorEnemy      = color.RGBA{0xff, 0x55, 0x55, 0xff}
	colorHUD        = color.RGBA{0x00, 0xff, 0x00, 0xff}
	colorOverlayFg  = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// RenderView 渲染一帧所需的只读数据
type RenderView struct {
	State   game.RunState
	Sprites *game.Sprites // 为 nil 时使用纯色降级渲染
}

// RenderSystem 绘制游戏画面
//
// 绘制顺序：背景、玩家、子弹、敌人（绕中心旋转）、爆炸、HUD、暂停/结束遮罩。
// 所有几何尺寸都使用实体的逻辑宽高，精灵图按需缩放。
// 渲染不修改任何实体或状态。
type RenderSystem struct {
	em   *ecs.EntityManager
	face text.Face
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		em:   em,
		face: utils.DefaultFace(),
	}
}

// Draw 绘制一帧
func (s *RenderSystem) Draw(screen *ebiten.Image, view RenderView) {
	sprites := view.Sprites

	if sprites != nil {
		drawSprite(screen, sprites.Background, 0, 0, config.CanvasWidth, config.CanvasHeight)
	} else {
		screen.Fill(colorBackground)
	}

	s.forEach(components.KindPlayer, func(id ecs.EntityID, b *components.BodyComponent) {
		if sprites != nil {
			drawSprite(screen, sprites.Ship, b.X, b.Y, b.W, b.H)
		} else {
			fillRect(screen, b.X, b.Y, b.W, b.H, colorPlayer)
		}
	})

	s.forEach(components.KindBullet, func(id ecs.EntityID, b *components.BodyComponent) {
		if sprites != nil {
			drawSprite(screen, sprites.Bullet, b.X, b.Y, b.W, b.H)
		} else {
			fillRect(screen, b.X, b.Y, b.W, b.H, colorBullet)
		}
	})

	s.forEach(components.KindEnemy, func(id ecs.EntityID, b *components.BodyComponent) {
		if sprites == nil {
			fillRect(screen, b.X, b.Y, b.W, b.H, colorEnemy)
			return
		}
		angle := 0.0
		if spin, ok := ecs.GetComponent[*components.SpinComponent](s.em, id); ok {
			angle = spin.Angle
		}
		drawRotatedSprite(screen, sprites.Enemy, b, angle)
	})

	// 没有精灵图时不绘制爆炸
	if sprites != nil && len(sprites.Explosions) > 0 {
		s.forEach(components.KindExplosion, func(id ecs.EntityID, b *components.BodyComponent) {
			ex, ok := ecs.GetComponent[*components.ExplosionComponent](s.em, id)
			if !ok {
				return
			}
			frame := min(ex.Frame, len(sprites.Explosions)-1)
			drawSprite(screen, sprites.Explosions[frame], b.X, b.Y, b.W, b.H)
		})
	}

	s.drawHUD(screen, view.State)

	switch view.State.Phase {
	case game.PhasePaused:
		drawOverlay(screen, config.PauseOverlayAlpha)
	case game.PhaseGameOver:
		drawOverlay(screen, config.GameOverOverlayAlpha)
		utils.DrawText(screen, SummaryLine(view.State), s.face,
			config.SummaryTextX, config.SummaryTextY, colorOverlayFg)
	}
}

func (s *RenderSystem) drawHUD(screen *ebiten.Image, state game.RunState) {
	for i, line := range HUDLines(state) {
		y := float64(config.HUDFirstLineY + i*config.HUDLineSpacing)
		utils.DrawText(screen, line, s.face, config.HUDMarginX, y, colorHUD)
	}
}

// forEach 按生成顺序遍历指定类别的存活实体
func (s *RenderSystem) forEach(kind components.EntityKind, fn func(ecs.EntityID, *components.BodyComponent)) {
	for _, id := range ecs.GetEntitiesWith2[*components.BodyComponent, *components.KindComponent](s.em) {
		k, _ := ecs.GetComponent[*components.KindComponent](s.em, id)
		if k.Kind != kind {
			continue
		}
		b, _ := ecs.GetComponent[*components.BodyComponent](s.em, id)
		if !b.Alive {
			continue
		}
		fn(id, b)
	}
}

// drawSprite 把图像缩放到 w x h 绘制在 (x, y)
func drawSprite(screen, img *ebiten.Image, x, y, w, h float64) {
	if img == nil {
		return
	}
	bounds := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(bounds.Dx()), h/float64(bounds.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// drawRotatedSprite 以实体中心为轴旋转绘制
func drawRotatedSprite(screen, img *ebiten.Image, b *components.BodyComponent, angle float64) {
	if img == nil {
		return
	}
	bounds := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(b.W/float64(bounds.Dx()), b.H/float64(bounds.Dy()))
	op.GeoM.Translate(-b.W/2, -b.H/2)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(b.CenterX(), b.CenterY())
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func fillRect(screen *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// drawOverlay 用半透明黑色覆盖整个画布
func drawOverlay(screen *ebiten.Image, alpha float64) {
	a := uint8(alpha * 255)
	vector.DrawFilledRect(screen, 0, 0, config.CanvasWidth, config.CanvasHeight,
		color.RGBA{A: a}, false)
}
