package systems

import (
	"image/color"

	"github.com/decker502/ripple/pkg/components"
	"github.com/decker502/ripple/pkg/ecs"
	"github.com/decker502/ripple/pkg/game"
	"github.com/decker502/ripple/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// gradientRings 渐变近似绘制的同心圆数量
// 波纹渐变用由外向内的同心圆叠加近似径向渐变。
const gradientRings = 4

// RenderSystem 波纹渲染系统
//
// 每个表面的波纹画在独立的覆盖层上再合成到屏幕，
// 隔离波纹重绘对兄弟内容的影响。覆盖层在首次需要时惰性创建。
type RenderSystem struct {
	engine *game.Engine
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(engine *game.Engine) *RenderSystem {
	return &RenderSystem{engine: engine}
}

// Draw 绘制所有表面的活动波纹
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	em := s.engine.EM
	now := s.engine.State.Now()

	for _, surface := range ecs.GetEntitiesWith2[*components.SurfaceComponent, *components.SurfaceStateComponent](em) {
		state, ok := ecs.GetComponent[*components.SurfaceStateComponent](em, surface)
		if !ok || len(state.Active) == 0 {
			continue
		}
		bounds, ok := ecs.GetComponent[*components.BoundsComponent](em, surface)
		if !ok || bounds.Width <= 0 || bounds.Height <= 0 {
			continue // 未布局的表面没有可绘制区域
		}

		overlay := s.ensureOverlay(state, bounds)
		if overlay == nil {
			continue
		}
		overlay.Clear()

		if !s.engine.Config.DisableHoverHighlight {
			s.drawPressedHighlight(overlay, state, bounds)
		}

		for _, node := range state.Active {
			s.drawNode(overlay, node, now)
		}

		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Translate(bounds.X, bounds.Y)
		screen.DrawImage(overlay, opts)
	}
}

// ensureOverlay 惰性创建或按尺寸重建覆盖层
func (s *RenderSystem) ensureOverlay(state *components.SurfaceStateComponent, bounds *components.BoundsComponent) *ebiten.Image {
	w := int(bounds.Width)
	h := int(bounds.Height)
	if w <= 0 || h <= 0 {
		return nil
	}
	if state.Overlay == nil || state.Overlay.Bounds().Dx() != w || state.Overlay.Bounds().Dy() != h {
		state.Overlay = ebiten.NewImage(w, h)
	}
	return state.Overlay
}

// drawPressedHighlight 绘制按压态的轻微高亮
func (s *RenderSystem) drawPressedHighlight(overlay *ebiten.Image, state *components.SurfaceStateComponent, bounds *components.BoundsComponent) {
	pressed := false
	for _, node := range state.Active {
		if node.Phase == components.RippleExpanding {
			pressed = true
			break
		}
	}
	if !pressed {
		return
	}
	vector.DrawFilledRect(overlay, 0, 0, float32(bounds.Width), float32(bounds.Height),
		color.NRGBA{R: 255, G: 255, B: 255, A: 12}, true)
}

// drawNode 绘制单个波纹节点
//
// 节点以固定起始直径乘以缓动后的缩放系数呈现（合成期缩放，
// 不改变节点字面尺寸）；淡出阶段整体不透明度线性衰减。
func (s *RenderSystem) drawNode(overlay *ebiten.Image, node *components.RippleNode, now float64) {
	if node.ExpandDuration <= 0 {
		return
	}

	progress := utils.Clamp01((now - node.StartedAt) / node.ExpandDuration)
	eased := utils.EaseOutCubic(progress)
	scale := utils.Lerp(1, node.TargetScale, eased)
	drawRadius := node.StartDiameter / 2 * scale

	alphaFactor := 1.0
	if node.Phase == components.RippleFading && node.FadeDuration > 0 {
		fadeProgress := utils.Clamp01((now - node.FadeStartedAt) / node.FadeDuration)
		alphaFactor = 1 - fadeProgress
	}
	if alphaFactor <= 0 {
		return
	}

	// 模糊晕圈（仅配置开启时，近似为一圈更大的低透明度圆）
	if node.Blur > 0 {
		r, g, b, a := node.Gradient.At(0)
		haloAlpha := a * 0.25 * alphaFactor
		clr := color.NRGBA{
			R: uint8(r * 255),
			G: uint8(g * 255),
			B: uint8(b * 255),
			A: uint8(utils.Clamp01(haloAlpha) * 255),
		}
		vector.DrawFilledCircle(overlay, float32(node.X), float32(node.Y),
			float32(drawRadius+node.Blur), clr, true)
	}

	// 由外向内叠加同心圆近似径向渐变
	for k := gradientRings; k >= 1; k-- {
		t := float64(k) / gradientRings
		r, g, b, a := node.Gradient.At(t)
		alpha := a * alphaFactor
		if alpha <= 0 {
			continue
		}
		clr := color.NRGBA{
			R: uint8(r * 255),
			G: uint8(g * 255),
			B: uint8(b * 255),
			A: uint8(utils.Clamp01(alpha) * 255),
		}
		vector.DrawFilledCircle(overlay, float32(node.X), float32(node.Y),
			float32(drawRadius*t), clr, true)
	}
}
