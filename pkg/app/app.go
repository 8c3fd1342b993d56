// Package app 提供波纹演示应用的核心包装器
//
// 该包将演示程序的初始化逻辑从 main 包提取出来，
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"image/color"
	"io"
	"log"

	"github.com/decker502/ripple/pkg/components"
	"github.com/decker502/ripple/pkg/config"
	"github.com/decker502/ripple/pkg/ecs"
	"github.com/decker502/ripple/pkg/game"
	"github.com/decker502/ripple/pkg/scheduler"
	"github.com/decker502/ripple/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/quasilyte/gdata/v2"
)

const (
	// WindowWidth 逻辑屏幕宽度
	WindowWidth = 800
	// WindowHeight 逻辑屏幕高度
	WindowHeight = 600

	// tickDelta 固定逻辑帧步长（秒）
	tickDelta = 1.0 / 60.0
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 指定波纹配置文件路径，为空则按默认候选路径查找
	ConfigPath string
	// DisablePersistence 禁用设置持久化（降级模式，用于命令行验证工具）
	DisablePersistence bool
}

// demoSurface 演示面板上的一块静态底板
type demoSurface struct {
	id    ecs.EntityID
	label string
	base  color.NRGBA
}

// App 是演示应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	engine *game.Engine
	sched  *scheduler.FrameScheduler

	input    *systems.InputSystem
	ripples  *systems.RippleSystem
	upgrades *systems.UpgradeSystem
	render   *systems.RenderSystem

	surfaces []demoSurface

	// focusables 可键盘聚焦的表面，Tab 循环切换
	focusables []ecs.EntityID
	focusIndex int
}

// NewApp 创建并初始化演示应用
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 加载波纹配置（缺失或损坏时回退默认值）
	var paths []string
	if cfg.ConfigPath != "" {
		paths = []string{cfg.ConfigPath}
	}
	rippleCfg := config.LoadRippleConfig(paths...)

	// 初始化 gdata 跨平台存储（失败时进入降级模式）
	var gdataManager *gdata.Manager
	if !cfg.DisablePersistence {
		m, err := gdata.Open(gdata.Config{
			AppName: "ripple_demo",
		})
		if err != nil {
			log.Printf("[App] gdata 初始化失败，设置将不持久化: %v", err)
		} else {
			gdataManager = m
		}
	}

	settings := game.NewSettingsManager(gdataManager)
	if err := settings.Load(); err != nil {
		log.Printf("[App] 设置加载失败，使用默认值: %v", err)
	}

	engine := game.NewEngine(rippleCfg, settings)
	log.Printf("[App] 引擎初始化完成: 档位=%v 并发上限=%d", engine.State.Tier, engine.MaxActive())

	a := &App{
		engine: engine,
		sched:  scheduler.NewFrameScheduler(),
	}
	a.ripples = systems.NewRippleSystem(engine)
	a.input = systems.NewInputSystem(engine, a.ripples, a.sched)
	a.upgrades = systems.NewUpgradeSystem(engine)
	a.render = systems.NewRenderSystem(engine)

	a.buildDemoScene()
	if len(a.focusables) > 0 {
		a.input.SetFocus(a.focusables[0])
	}
	return a, nil
}

// buildDemoScene 搭建演示节点树
//
// 面板携带继承颜色；四个按钮分别演示继承色、覆盖色、
// 标记指令色和禁用态；卡片演示委托（波纹落在缩略图上）。
func (a *App) buildDemoScene() {
	e := a.engine

	panel := e.NewNode(ecs.InvalidEntity, "panel", 40, 40, 720, 520)
	e.EM.AddComponent(panel, &components.StyleComponent{
		Props: map[string]string{
			components.StyleKeyRippleColor: "rgba(33,150,243,0.35)",
		},
	})
	a.surfaces = append(a.surfaces, demoSurface{panel, "panel", color.NRGBA{R: 30, G: 34, B: 42, A: 255}})

	inherit := e.NewNode(panel, "btn_inherit", 80, 100, 200, 56)
	e.MarkSurface(inherit, "wave", "", "")
	a.addButton(inherit, "继承颜色")

	override := e.NewNode(panel, "btn_override", 320, 100, 200, 56)
	e.MarkSurface(override, "wave", "rgba(76,175,80,0.5)", "")
	a.addButton(override, "覆盖颜色")

	directive := e.NewNode(panel, "btn_directive", 560, 100, 200, 56)
	e.MarkSurface(directive, "wave;c=#ff5722", "", "")
	a.addButton(directive, "标记指令色")

	disabled := e.NewNode(panel, "btn_disabled", 80, 200, 200, 56)
	e.MarkSurface(disabled, "wave", "", "")
	if sc, ok := ecs.GetComponent[*components.SurfaceComponent](e.EM, disabled); ok {
		sc.Disabled = true
	}
	a.surfaces = append(a.surfaces, demoSurface{disabled, "禁用", color.NRGBA{R: 52, G: 56, B: 62, A: 255}})

	// 委托卡片：点击卡片任意位置，波纹落在内部缩略图上
	card := e.NewNode(panel, "card", 80, 300, 420, 200)
	e.MarkSurface(card, "wave", "", "thumb")
	a.surfaces = append(a.surfaces, demoSurface{card, "委托卡片", color.NRGBA{R: 44, G: 48, B: 58, A: 255}})
	thumb := e.NewNode(card, "thumb", 100, 340, 120, 120)
	e.MarkSurface(thumb, "wave", "", "")
	a.surfaces = append(a.surfaces, demoSurface{thumb, "缩略图", color.NRGBA{R: 66, G: 72, B: 86, A: 255}})
}

// addButton 注册按钮底板并加入焦点循环
func (a *App) addButton(id ecs.EntityID, label string) {
	a.surfaces = append(a.surfaces, demoSurface{id, label, color.NRGBA{R: 58, G: 64, B: 76, A: 255}})
	a.focusables = append(a.focusables, id)
}

// Update 更新演示逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.engine.State.Advance(tickDelta)

	// Tab 循环键盘焦点
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(a.focusables) > 0 {
		a.focusIndex = (a.focusIndex + 1) % len(a.focusables)
		a.input.SetFocus(a.focusables[a.focusIndex])
	}

	a.input.Update()
	a.sched.Flush()
	a.ripples.Update()
	a.upgrades.Update()
	a.engine.EM.RemoveMarkedEntities()
	return nil
}

// Draw 绘制演示画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 18, G: 20, B: 26, A: 255})

	em := a.engine.EM
	for _, s := range a.surfaces {
		bounds, ok := ecs.GetComponent[*components.BoundsComponent](em, s.id)
		if !ok {
			continue
		}
		vector.DrawFilledRect(screen, float32(bounds.X), float32(bounds.Y),
			float32(bounds.Width), float32(bounds.Height), s.base, true)
	}

	// 焦点框
	if len(a.focusables) > 0 {
		if bounds, ok := ecs.GetComponent[*components.BoundsComponent](em, a.focusables[a.focusIndex]); ok {
			vector.StrokeRect(screen, float32(bounds.X)-2, float32(bounds.Y)-2,
				float32(bounds.Width)+4, float32(bounds.Height)+4, 2,
				color.NRGBA{R: 120, G: 170, B: 255, A: 200}, true)
		}
	}

	a.render.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

// Engine 返回底层引擎（供移动端与验证工具访问编程接口）
func (a *App) Engine() *game.Engine {
	return a.engine
}
