// Package systems 提供波纹引擎的各个运行时系统
//
// 系统持有同一份 EntityManager/EngineState 引用，每帧按固定顺序
// 执行：输入路由 → 帧调度器冲刷 → 波纹状态机 → 实体清理。
package systems

import (
	"log"

	"github.com/decker502/ripple/pkg/colorx"
	"github.com/decker502/ripple/pkg/components"
	"github.com/decker502/ripple/pkg/ecs"
	"github.com/decker502/ripple/pkg/game"
	"github.com/decker502/ripple/pkg/geometry"
	"github.com/decker502/ripple/pkg/pool"
)

// fadeDeadlineScale 淡出兜底截止时刻相对淡出时长的放大系数
// 正常完成按淡出耗时判定；表面在动画中途被移除时完成信号
// 不再可靠，截止时刻兜底回收。
const fadeDeadlineScale = 1.25

// RippleSystem 波纹状态机系统
//
// 管理每次激活的生命周期：
// 空闲 → 扩张 → （释放/到期）→ 淡出 → 回收。
// 并发上限按表面独立计算，不设跨表面的全局限流
// （早期的全局限流已被按表面上限取代，这是有意的简化）。
type RippleSystem struct {
	engine *game.Engine
}

// NewRippleSystem 创建波纹状态机系统
func NewRippleSystem(engine *game.Engine) *RippleSystem {
	return &RippleSystem{engine: engine}
}

// Activate 在表面上触发一次波纹
//
// 入口检查（禁用、最小激活间隔）不通过时返回 false。
// 并发上限已满时先强制最旧的活动波纹转入淡出腾出位置，
// 绝不静默丢弃。调用方（输入路由）负责快速手势抑制和
// 经由帧调度器批量执行。
func (s *RippleSystem) Activate(surface ecs.EntityID, act components.Activation) bool {
	em := s.engine.EM
	now := s.engine.State.Now()

	sc, ok := ecs.GetComponent[*components.SurfaceComponent](em, surface)
	if !ok || sc.Disabled {
		return false
	}

	// 路由层保证表面已升级；这里兜底（幂等）
	s.engine.Upgrade(surface)
	state, ok := ecs.GetComponent[*components.SurfaceStateComponent](em, surface)
	if !ok {
		return false
	}

	// 表面级最小激活间隔
	if now-state.LastActivation < s.engine.Config.MinInterval {
		return false
	}

	bounds, ok := ecs.GetComponent[*components.BoundsComponent](em, surface)
	if !ok {
		return false
	}

	// 激活点：键盘激活取几何中心，指针激活按表面包围盒
	// 换算为局部坐标并钳制（委托转发的点可能落在表面之外）
	var lx, ly float64
	if act.FromKeyboard {
		lx, ly = bounds.Center()
	} else {
		lx, ly = bounds.ClampLocal(act.X, act.Y)
	}

	// 并发上限：满员时强制最旧的波纹立即淡出
	capacity := s.engine.MaxActive()
	for expandingCount(state) >= capacity {
		s.evictOldest(state, now)
	}

	cfg := s.engine.Config
	node := pool.Acquire(state)
	node.X = lx
	node.Y = ly
	node.Radius = geometry.CoverageRadius(lx, ly, bounds.Width, bounds.Height)
	node.StartDiameter = geometry.StartDiameter
	node.TargetScale = geometry.FinalScale(node.Radius, geometry.StartDiameter)
	node.ExpandDuration = cfg.ExpandDuration
	node.FadeDuration = cfg.FadeDuration
	node.Phase = components.RippleExpanding
	node.StartedAt = now
	node.FromKeyboard = act.FromKeyboard
	node.Gradient = s.resolveGradient(surface, sc, state, now)
	if cfg.EnableBlur {
		node.Blur = geometry.BlurForPoint(lx, ly, bounds.Width, bounds.Height)
	}

	// 键盘激活没有与视觉释放语义对应的抬起事件，
	// 在扩张结束前按固定提前量调度淡出
	if act.FromKeyboard {
		node.FadeScheduled = true
		node.FadeAt = now + maxf(0, cfg.ExpandDuration-cfg.KeyReleaseLead)
	}

	state.Active = append(state.Active, node)
	state.LastActivation = now
	return true
}

// Release 表面收到释放信号（指针抬起/离开、触摸结束/取消）
//
// 扩张中的波纹按淡出提前量调度淡出：
// 淡出开始时刻 = 激活时刻 + max(0, 扩张时长 - 提前量)；
// 该时刻已过则立即开始淡出。委托场景下由路由层直接对
// 代理表面调用本方法转发释放，不派发合成输入事件。
func (s *RippleSystem) Release(surface ecs.EntityID) {
	em := s.engine.EM
	state, ok := ecs.GetComponent[*components.SurfaceStateComponent](em, surface)
	if !ok {
		return
	}

	cfg := s.engine.Config
	for _, node := range state.Active {
		if node.Phase != components.RippleExpanding || node.FadeScheduled {
			continue
		}
		node.FadeScheduled = true
		node.FadeAt = node.StartedAt + maxf(0, node.ExpandDuration-cfg.FadeOffset)
	}
}

// Update 推进所有表面上波纹的阶段转换
func (s *RippleSystem) Update() {
	em := s.engine.EM
	now := s.engine.State.Now()

	for _, surface := range ecs.GetEntitiesWith2[*components.SurfaceComponent, *components.SurfaceStateComponent](em) {
		state, ok := ecs.GetComponent[*components.SurfaceStateComponent](em, surface)
		if !ok {
			continue
		}
		s.updateSurface(state, now)
	}
}

// updateSurface 推进单个表面的波纹
func (s *RippleSystem) updateSurface(state *components.SurfaceStateComponent, now float64) {
	capacity := s.engine.MaxActive()

	remaining := state.Active[:0]
	for _, node := range state.Active {
		switch node.Phase {
		case components.RippleExpanding:
			if node.FadeScheduled && now >= node.FadeAt {
				beginFade(node, now)
			}
			remaining = append(remaining, node)

		case components.RippleFading:
			// 正常完成（按耗时）或兜底截止，先到者生效
			if now-node.FadeStartedAt >= node.FadeDuration || now >= node.FadeDeadline {
				pool.Release(state, node, capacity)
				continue // 回收，不保留
			}
			remaining = append(remaining, node)

		default:
			// 空闲节点不应出现在活动列表，防御性回收
			log.Printf("[RippleSystem] 活动列表中出现空闲节点（已回收）")
			pool.Release(state, node, capacity)
		}
	}
	// 清理尾部引用，防止已回收节点被活动列表持有
	for i := len(remaining); i < len(state.Active); i++ {
		state.Active[i] = nil
	}
	state.Active = remaining
}

// evictOldest 强制最旧的扩张中波纹立即淡出
func (s *RippleSystem) evictOldest(state *components.SurfaceStateComponent, now float64) {
	for _, node := range state.Active {
		if node.Phase == components.RippleExpanding {
			beginFade(node, now)
			return
		}
	}
}

// beginFade 将节点转入淡出阶段
func beginFade(node *components.RippleNode, now float64) {
	node.Phase = components.RippleFading
	node.FadeStartedAt = now
	node.FadeDeadline = now + node.FadeDuration*fadeDeadlineScale
}

// resolveGradient 解析表面的波纹渐变
//
// 颜色优先级见 colorx.PickColor；继承查找结果按表面缓存
// （含"确认无继承颜色"），渐变按原始颜色全局缓存。
func (s *RippleSystem) resolveGradient(surface ecs.EntityID, sc *components.SurfaceComponent, state *components.SurfaceStateComponent, now float64) colorx.Gradient {
	ttl := s.engine.State.ColorTTL()

	inherited := func() (string, bool) {
		if state.HasCachedColor && now-state.ColorCachedAt < ttl {
			return state.CachedColor, state.CachedColorFound
		}
		v, found := game.InheritedStyle(s.engine.EM, surface, components.StyleKeyRippleColor)
		state.CachedColor = v
		state.CachedColorFound = found
		state.HasCachedColor = true
		state.ColorCachedAt = now
		return v, found
	}

	raw, ok := colorx.PickColor(sc.ColorOverride, sc.Marker, inherited)
	if !ok {
		return colorx.DefaultGradient()
	}
	return s.engine.State.Gradients.Resolve(raw, now)
}

// expandingCount 统计扩张中的波纹数
func expandingCount(state *components.SurfaceStateComponent) int {
	n := 0
	for _, node := range state.Active {
		if node.Phase == components.RippleExpanding {
			n++
		}
	}
	return n
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
