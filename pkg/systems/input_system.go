package systems

import (
	"github.com/decker502/ripple/pkg/components"
	"github.com/decker502/ripple/pkg/ecs"
	"github.com/decker502/ripple/pkg/game"
	"github.com/decker502/ripple/pkg/scheduler"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// press 一次按压的路由结果
type press struct {
	// surface 波纹所在表面（释放信号的目标）
	surface ecs.EntityID
	// via 监听释放的节点：委托场景下是携带委托属性的祖先，
	// 其余场景就是表面自身
	via ecs.EntityID
}

// InputSystem 交互路由系统
//
// 全局监听指针/触摸/键盘输入，定位目标表面（直接命中或经由
// 委托属性），通过帧调度器把激活写入批量推迟到当帧统一执行。
// 快速滚动/滑动期间抑制新波纹的产生。
type InputSystem struct {
	engine       *game.Engine
	rippleSystem *RippleSystem
	sched        *scheduler.FrameScheduler

	// focused 键盘焦点实体，宿主通过 SetFocus 维护
	focused ecs.EntityID

	// mousePress 鼠标按压槽（单指针，最多一个）
	mousePressed bool
	mousePress   press

	// touchPresses 触摸按压表，按触摸ID独立跟踪
	// 多点触控下每根手指的释放各自路由到自己按下的表面
	touchPresses map[ebiten.TouchID]press

	// touchIDBuf 触摸ID查询的复用缓冲
	touchIDBuf []ebiten.TouchID
}

// NewInputSystem 创建交互路由系统
func NewInputSystem(engine *game.Engine, rippleSystem *RippleSystem, sched *scheduler.FrameScheduler) *InputSystem {
	return &InputSystem{
		engine:       engine,
		rippleSystem: rippleSystem,
		sched:        sched,
		touchPresses: make(map[ebiten.TouchID]press),
	}
}

// SetFocus 设置键盘焦点实体
func (s *InputSystem) SetFocus(id ecs.EntityID) {
	s.focused = id
}

// Update 处理当帧输入
func (s *InputSystem) Update() {
	s.recordGestures()
	s.handlePointerDown()
	s.handleTouchDown()
	s.handleKeyDown()
	s.handleRelease()
}

// recordGestures 记录滚动刻和触摸移动采样（快速手势检测）
func (s *InputSystem) recordGestures() {
	state := s.engine.State
	cfg := s.engine.Config

	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		state.RecordScrollTick(cfg.ScrollCooldown)
	}

	s.touchIDBuf = ebiten.AppendTouchIDs(s.touchIDBuf[:0])
	for _, id := range s.touchIDBuf {
		x, y := ebiten.TouchPosition(id)
		state.RecordTouchMove(float64(x), float64(y))
	}
}

// handlePointerDown 处理鼠标按下
// 仅响应主键；其他键直接忽略。
func (s *InputSystem) handlePointerDown() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	x, y := ebiten.CursorPosition()
	if p, ok := s.pressAt(float64(x), float64(y)); ok {
		s.mousePress = p
		s.mousePressed = true
	}
}

// handleTouchDown 处理新触摸
// 每个命中表面的触摸各占一个按压表条目。
func (s *InputSystem) handleTouchDown() {
	ids := inpututil.AppendJustPressedTouchIDs(s.touchIDBuf[:0])
	s.touchIDBuf = ids
	for _, id := range ids {
		x, y := ebiten.TouchPosition(id)
		if p, ok := s.pressAt(float64(x), float64(y)); ok {
			s.touchPresses[id] = p
		}
	}
}

// handleKeyDown 处理键盘激活
// 只响应空格/回车，作用于当前焦点实体。
func (s *InputSystem) handleKeyDown() {
	if s.focused == ecs.InvalidEntity {
		return
	}
	if !inpututil.IsKeyJustPressed(ebiten.KeySpace) && !inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return
	}

	target, _ := s.resolveSurface(s.focused)
	if target == ecs.InvalidEntity {
		return
	}
	if s.engine.State.SuppressRipples(s.engine.Config.FlickVelocity) {
		return
	}
	s.engine.Upgrade(target)

	// 键盘激活取几何中心，无需坐标
	act := components.Activation{FromKeyboard: true}
	s.sched.Schedule(func() {
		s.rippleSystem.Activate(target, act)
	})
}

// handleRelease 处理释放信号（抬起/离开/触摸结束或取消）
//
// 委托场景下释放信号来自携带委托属性的祖先，
// 转发为直接淡出代理表面的活动波纹，不派发合成输入事件。
func (s *InputSystem) handleRelease() {
	// 鼠标：抬起，或指针离开监听节点的包围盒
	if s.mousePressed {
		release := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
		if !release {
			if bounds, ok := ecs.GetComponent[*components.BoundsComponent](s.engine.EM, s.mousePress.via); ok {
				x, y := ebiten.CursorPosition()
				if !bounds.Contains(float64(x), float64(y)) {
					release = true
				}
			}
		}
		if release {
			s.rippleSystem.Release(s.mousePress.surface)
			s.mousePressed = false
		}
	}

	// 触摸：结束或取消，逐个按压独立判定
	for id, p := range s.touchPresses {
		if inpututil.IsTouchJustReleased(id) {
			s.rippleSystem.Release(p.surface)
			delete(s.touchPresses, id)
		}
	}
}

// pressAt 在屏幕坐标处触发一次按压
//
// 命中并通过抑制检查后，把激活写入调度到当帧统一执行，
// 返回供释放路由使用的按压记录。
func (s *InputSystem) pressAt(px, py float64) (press, bool) {
	em := s.engine.EM

	hit := s.hitTest(s.engine.State.Root, px, py)
	if hit == ecs.InvalidEntity {
		return press{}, false
	}

	target, delegator := s.resolveSurface(hit)
	if target == ecs.InvalidEntity {
		return press{}, false
	}
	// 解析出的表面必须仍挂载在文档中
	if !game.IsAttached(em, s.engine.State.Root, target) {
		return press{}, false
	}

	// 快速手势抑制
	if s.engine.State.SuppressRipples(s.engine.Config.FlickVelocity) {
		return press{}, false
	}

	s.engine.Upgrade(target)

	// 屏幕坐标原样携带，状态机按目标表面（委托场景下是代理表面
	// 而非收到事件的祖先）的包围盒换算并钳制
	delegated := delegator != ecs.InvalidEntity
	act := components.Activation{
		X:         px,
		Y:         py,
		Delegated: delegated,
	}
	s.sched.Schedule(func() {
		s.rippleSystem.Activate(target, act)
	})

	// 释放监听：委托场景下在携带委托属性的祖先上监听指针离开，
	// 其余场景在表面自身上监听（命中表面内部的子节点不算离开）
	via := target
	if delegated {
		via = delegator
	}
	return press{surface: target, via: via}, true
}

// resolveSurface 从命中节点解析目标表面
//
// 顺序：先沿祖先链（含自身）找委托属性并解析其指名的后代表面，
// 再退回最近的携带表面标记的祖先。返回目标表面和完成解析的
// 委托祖先（无委托时为 InvalidEntity）。
func (s *InputSystem) resolveSurface(hit ecs.EntityID) (target, delegator ecs.EntityID) {
	em := s.engine.EM

	delegator = game.FindAncestor(em, hit, func(id ecs.EntityID) bool {
		sc, ok := ecs.GetComponent[*components.SurfaceComponent](em, id)
		return ok && sc.DelegateTarget != ""
	})
	if delegator != ecs.InvalidEntity {
		sc, _ := ecs.GetComponent[*components.SurfaceComponent](em, delegator)
		if t := game.FindDescendantByName(em, delegator, sc.DelegateTarget); t != ecs.InvalidEntity {
			return t, delegator
		}
	}

	target = game.FindAncestor(em, hit, func(id ecs.EntityID) bool {
		sc, ok := ecs.GetComponent[*components.SurfaceComponent](em, id)
		return ok && !sc.Disabled
	})
	return target, ecs.InvalidEntity
}

// hitTest 自根向下查找包含屏幕坐标点的最深节点
//
// 子节点按绘制顺序排列（后者在上），倒序遍历保证上层优先。
// 无包围盒的节点只作为容器参与递归，自身不命中。
func (s *InputSystem) hitTest(id ecs.EntityID, px, py float64) ecs.EntityID {
	em := s.engine.EM
	if !em.Exists(id) {
		return ecs.InvalidEntity
	}

	node, ok := ecs.GetComponent[*components.NodeComponent](em, id)
	if ok {
		for i := len(node.Children) - 1; i >= 0; i-- {
			if found := s.hitTest(node.Children[i], px, py); found != ecs.InvalidEntity {
				return found
			}
		}
	}

	if bounds, ok := ecs.GetComponent[*components.BoundsComponent](em, id); ok && bounds.Contains(px, py) {
		return id
	}
	return ecs.InvalidEntity
}
