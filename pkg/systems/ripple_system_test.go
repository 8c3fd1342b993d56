package systems

import (
	"testing"

	"github.com/decker502/ripple/pkg/components"
	"github.com/decker502/ripple/pkg/config"
	"github.com/decker502/ripple/pkg/ecs"
	"github.com/decker502/ripple/pkg/game"
	"github.com/decker502/ripple/pkg/geometry"
	"github.com/decker502/ripple/pkg/perf"
)

// newRippleRig 创建测试用引擎与状态机（中档，上限2）
// 返回引擎、状态机和一个已升级的 100×50 表面。
func newRippleRig(t *testing.T) (*game.Engine, *RippleSystem, ecs.EntityID) {
	t.Helper()
	e := game.NewEngineWithTier(config.DefaultRippleConfig(), nil, perf.TierMedium)
	rs := NewRippleSystem(e)

	surface := e.NewNode(ecs.InvalidEntity, "btn", 10, 20, 100, 50)
	e.MarkSurface(surface, "wave", "", "")
	e.Upgrade(surface)
	return e, rs, surface
}

// surfaceState 取表面状态（测试辅助）
func surfaceState(t *testing.T, e *game.Engine, id ecs.EntityID) *components.SurfaceStateComponent {
	t.Helper()
	state, ok := ecs.GetComponent[*components.SurfaceStateComponent](e.EM, id)
	if !ok {
		t.Fatal("表面应已升级")
	}
	return state
}

// TestActivateCreatesNode 测试激活创建波纹节点
func TestActivateCreatesNode(t *testing.T) {
	e, rs, surface := newRippleRig(t)

	// 屏幕 (60,45) 相对表面包围盒 (10,20) = 局部 (50,25)
	if !rs.Activate(surface, components.Activation{X: 60, Y: 45}) {
		t.Fatal("激活应成功")
	}

	state := surfaceState(t, e, surface)
	if len(state.Active) != 1 {
		t.Fatalf("活动波纹数 = %d, 期望 1", len(state.Active))
	}

	node := state.Active[0]
	if node.Phase != components.RippleExpanding {
		t.Errorf("节点阶段 = %v, 期望 RippleExpanding", node.Phase)
	}
	if node.X != 50 || node.Y != 25 {
		t.Errorf("激活点 = (%v, %v), 期望局部坐标 (50, 25)", node.X, node.Y)
	}
	if node.Radius < geometry.MinRadius {
		t.Errorf("半径 %v 低于下限", node.Radius)
	}
	if node.TargetScale <= 1 {
		t.Errorf("缩放系数 %v 应大于1", node.TargetScale)
	}
}

// TestActivationPointClamped 测试盒外激活点钳制
// 委托转发的激活点可能落在代理表面之外，必须钳制后再算几何。
func TestActivationPointClamped(t *testing.T) {
	e, rs, surface := newRippleRig(t)

	// 屏幕 (-20,220) → 局部 (-30,200)，钳制到 100×50 的盒内
	rs.Activate(surface, components.Activation{X: -20, Y: 220, Delegated: true})

	node := surfaceState(t, e, surface).Active[0]
	if node.X != 0 || node.Y != 50 {
		t.Errorf("钳制后激活点 = (%v, %v), 期望 (0, 50)", node.X, node.Y)
	}
}

// TestKeyboardActivationCenter 测试键盘激活取几何中心并预调度淡出
func TestKeyboardActivationCenter(t *testing.T) {
	e, rs, surface := newRippleRig(t)

	rs.Activate(surface, components.Activation{FromKeyboard: true})

	node := surfaceState(t, e, surface).Active[0]
	if node.X != 50 || node.Y != 25 {
		t.Errorf("键盘激活点 = (%v, %v), 期望几何中心 (50, 25)", node.X, node.Y)
	}
	if !node.FadeScheduled {
		t.Fatal("键盘激活应预调度淡出")
	}
	cfg := e.Config
	want := cfg.ExpandDuration - cfg.KeyReleaseLead
	if node.FadeAt != want {
		t.Errorf("淡出调度时刻 = %v, 期望 %v", node.FadeAt, want)
	}
}

// TestMinIntervalSuppression 测试表面级最小激活间隔
// 快于最小间隔的第二次激活被抑制。
func TestMinIntervalSuppression(t *testing.T) {
	e, rs, surface := newRippleRig(t)

	if !rs.Activate(surface, components.Activation{X: 10, Y: 10}) {
		t.Fatal("首次激活应成功")
	}
	e.State.Advance(0.01) // 快于 MinInterval (0.08)
	if rs.Activate(surface, components.Activation{X: 20, Y: 20}) {
		t.Error("过快的第二次激活应被抑制")
	}
	if n := len(surfaceState(t, e, surface).Active); n != 1 {
		t.Errorf("活动波纹数 = %d, 期望 1", n)
	}

	e.State.Advance(0.1) // 超过最小间隔后放行
	if !rs.Activate(surface, components.Activation{X: 20, Y: 20}) {
		t.Error("超过最小间隔后应放行")
	}
}

// TestCapEviction 测试并发上限与强制驱逐
// 上限为N时第N+1次激活强制最旧的波纹转入淡出，而非并发第N+1个扩张实例。
func TestCapEviction(t *testing.T) {
	e, rs, surface := newRippleRig(t) // 中档上限2

	rs.Activate(surface, components.Activation{X: 10, Y: 10})
	first := surfaceState(t, e, surface).Active[0]

	e.State.Advance(0.1)
	rs.Activate(surface, components.Activation{X: 20, Y: 20})
	e.State.Advance(0.1)
	rs.Activate(surface, components.Activation{X: 30, Y: 30})

	state := surfaceState(t, e, surface)
	expanding := 0
	for _, n := range state.Active {
		if n.Phase == components.RippleExpanding {
			expanding++
		}
	}
	if expanding > 2 {
		t.Errorf("扩张中的波纹数 = %d, 不应超过上限 2", expanding)
	}
	if first.Phase != components.RippleFading {
		t.Error("最旧的波纹应被强制转入淡出")
	}
	if len(state.Active) != 3 {
		t.Errorf("驱逐应淡出而非丢弃: 活动数 = %d, 期望 3", len(state.Active))
	}
}

// TestLowTierCapOne 测试低档上限为1
func TestLowTierCapOne(t *testing.T) {
	e := game.NewEngineWithTier(config.DefaultRippleConfig(), nil, perf.TierLow)
	rs := NewRippleSystem(e)
	surface := e.NewNode(ecs.InvalidEntity, "btn", 0, 0, 100, 50)
	e.MarkSurface(surface, "wave", "", "")
	e.Upgrade(surface)

	rs.Activate(surface, components.Activation{X: 10, Y: 10})
	first := surfaceState(t, e, surface).Active[0]
	e.State.Advance(0.1)
	rs.Activate(surface, components.Activation{X: 20, Y: 20})

	if first.Phase != components.RippleFading {
		t.Error("低档第二次激活应驱逐第一个波纹")
	}
}

// TestReleaseFadeOffset 测试释放信号的淡出提前量策略
// 淡出开始时刻 = 激活时刻 + max(0, 扩张时长 - 提前量)。
func TestReleaseFadeOffset(t *testing.T) {
	e, rs, surface := newRippleRig(t)
	cfg := e.Config

	rs.Activate(surface, components.Activation{X: 50, Y: 25})
	node := surfaceState(t, e, surface).Active[0]

	e.State.Advance(0.1)
	rs.Release(surface)

	if !node.FadeScheduled {
		t.Fatal("释放后应已调度淡出")
	}
	want := cfg.ExpandDuration - cfg.FadeOffset // 0.45 - 0.15 = 0.3
	if node.FadeAt != want {
		t.Errorf("淡出调度时刻 = %v, 期望 %v", node.FadeAt, want)
	}

	// 调度时刻未到：仍在扩张
	rs.Update()
	if node.Phase != components.RippleExpanding {
		t.Error("调度时刻未到不应开始淡出")
	}

	// 到达调度时刻：转入淡出
	e.State.Advance(0.25) // now = 0.35 > 0.3
	rs.Update()
	if node.Phase != components.RippleFading {
		t.Error("到达调度时刻应转入淡出")
	}
}

// TestReleaseAfterOffsetMomentPassed 测试调度时刻已过时立即淡出
func TestReleaseAfterOffsetMomentPassed(t *testing.T) {
	e, rs, surface := newRippleRig(t)

	rs.Activate(surface, components.Activation{X: 50, Y: 25})
	node := surfaceState(t, e, surface).Active[0]

	e.State.Advance(1.0) // 远超扩张时长
	rs.Release(surface)
	rs.Update()

	if node.Phase != components.RippleFading {
		t.Error("调度时刻已过应立即开始淡出")
	}
}

// TestFadeCompletionRecycles 测试淡出完成后回收入池
func TestFadeCompletionRecycles(t *testing.T) {
	e, rs, surface := newRippleRig(t)

	rs.Activate(surface, components.Activation{X: 50, Y: 25})
	rs.Release(surface)

	// 推进到淡出开始
	e.State.Advance(0.35)
	rs.Update()

	// 推进完整淡出时长
	e.State.Advance(e.Config.FadeDuration + 0.01)
	rs.Update()

	state := surfaceState(t, e, surface)
	if len(state.Active) != 0 {
		t.Errorf("淡出完成后活动数 = %d, 期望 0", len(state.Active))
	}
	if len(state.Idle) != 1 {
		t.Errorf("淡出完成后池大小 = %d, 期望 1", len(state.Idle))
	}
	if state.Idle[0].Phase != components.RippleIdle {
		t.Error("入池节点应为空闲阶段")
	}
}

// TestFadeFallbackDeadline 测试兜底截止回收
// 完成信号丢失（时间一次性跨过截止时刻）也要回收。
func TestFadeFallbackDeadline(t *testing.T) {
	e, rs, surface := newRippleRig(t)

	rs.Activate(surface, components.Activation{X: 50, Y: 25})
	node := surfaceState(t, e, surface).Active[0]
	rs.Release(surface)

	e.State.Advance(0.35)
	rs.Update()
	if node.Phase != components.RippleFading {
		t.Fatal("应已进入淡出")
	}

	// 一次性跨过兜底截止时刻
	e.State.Advance(node.FadeDuration * 2)
	rs.Update()

	state := surfaceState(t, e, surface)
	if len(state.Active) != 0 {
		t.Error("跨过兜底截止时刻应回收")
	}
}

// TestRecycledNodeReused 测试回收节点的复用与残留清理
func TestRecycledNodeReused(t *testing.T) {
	e, rs, surface := newRippleRig(t)

	rs.Activate(surface, components.Activation{X: 80, Y: 40})
	first := surfaceState(t, e, surface).Active[0]

	// 完整生命周期
	rs.Release(surface)
	e.State.Advance(0.35)
	rs.Update()
	e.State.Advance(e.Config.FadeDuration + 0.01)
	rs.Update()

	// 再次激活应复用池中节点；屏幕 (20,30) → 局部 (10,10)
	e.State.Advance(0.1)
	rs.Activate(surface, components.Activation{X: 20, Y: 30})
	state := surfaceState(t, e, surface)
	second := state.Active[0]

	if second != first {
		t.Error("应复用回收入池的节点")
	}
	if second.X != 10 || second.Y != 10 {
		t.Errorf("复用节点坐标 = (%v, %v), 期望新激活点 (10, 10)", second.X, second.Y)
	}
	if second.FadeScheduled {
		t.Error("复用节点不应残留淡出调度")
	}
}

// TestDisabledSurface 测试禁用表面不产生波纹
func TestDisabledSurface(t *testing.T) {
	e, rs, surface := newRippleRig(t)
	sc, _ := ecs.GetComponent[*components.SurfaceComponent](e.EM, surface)
	sc.Disabled = true

	if rs.Activate(surface, components.Activation{X: 10, Y: 10}) {
		t.Error("禁用表面不应激活")
	}
}

// TestZeroSizeSurface 测试零尺寸表面
// 未布局的表面仍产生有限几何（半径取下限），不报错。
func TestZeroSizeSurface(t *testing.T) {
	e := game.NewEngineWithTier(config.DefaultRippleConfig(), nil, perf.TierMedium)
	rs := NewRippleSystem(e)
	surface := e.NewNode(ecs.InvalidEntity, "ghost", 0, 0, 0, 0)
	e.MarkSurface(surface, "wave", "", "")
	e.Upgrade(surface)

	if !rs.Activate(surface, components.Activation{X: 0, Y: 0}) {
		t.Fatal("零尺寸表面激活不应失败")
	}
	node := surfaceState(t, e, surface).Active[0]
	if node.Radius != geometry.MinRadius {
		t.Errorf("零尺寸表面半径 = %v, 期望下限 %v", node.Radius, geometry.MinRadius)
	}
}

// TestPerSurfaceIndependence 测试表面间互不影响
// 并发上限按表面独立计算，没有跨表面的全局限流。
func TestPerSurfaceIndependence(t *testing.T) {
	e, rs, surfaceA := newRippleRig(t)
	surfaceB := e.NewNode(ecs.InvalidEntity, "other", 0, 100, 100, 50)
	e.MarkSurface(surfaceB, "wave", "", "")
	e.Upgrade(surfaceB)

	// A 表面打满上限
	rs.Activate(surfaceA, components.Activation{X: 10, Y: 10})
	e.State.Advance(0.1)
	rs.Activate(surfaceA, components.Activation{X: 20, Y: 20})
	e.State.Advance(0.1)

	// B 表面不受 A 的占用影响（也不受 A 的最小间隔影响）
	if !rs.Activate(surfaceB, components.Activation{X: 10, Y: 10}) {
		t.Error("其他表面的占用不应影响本表面激活")
	}
	stateB := surfaceState(t, e, surfaceB)
	if stateB.Active[0].Phase != components.RippleExpanding {
		t.Error("B 表面的波纹应正常扩张")
	}
}

// TestInheritedColorCached 测试继承颜色按表面缓存
func TestInheritedColorCached(t *testing.T) {
	e := game.NewEngineWithTier(config.DefaultRippleConfig(), nil, perf.TierMedium)
	rs := NewRippleSystem(e)

	panel := e.NewNode(ecs.InvalidEntity, "panel", 0, 0, 400, 300)
	e.EM.AddComponent(panel, &components.StyleComponent{
		Props: map[string]string{components.StyleKeyRippleColor: "rgba(0,128,255,0.4)"},
	})
	surface := e.NewNode(panel, "btn", 10, 10, 100, 50)
	e.MarkSurface(surface, "wave", "", "")
	e.Upgrade(surface)

	rs.Activate(surface, components.Activation{X: 10, Y: 10})
	state := surfaceState(t, e, surface)
	if !state.HasCachedColor || !state.CachedColorFound {
		t.Fatal("激活后应缓存继承颜色")
	}
	if state.CachedColor != "rgba(0,128,255,0.4)" {
		t.Errorf("缓存颜色 = %q", state.CachedColor)
	}

	node := state.Active[0]
	if node.Gradient.Raw != "rgba(0,128,255,0.4)" {
		t.Errorf("渐变来源 = %q, 期望继承颜色", node.Gradient.Raw)
	}
}

// TestRefreshColorsInvalidatesCache 测试继承颜色缓存的主动失效
// 祖先样式变更后 RefreshColors 使下一次激活立即重新解析，不等缓存过期。
func TestRefreshColorsInvalidatesCache(t *testing.T) {
	e := game.NewEngineWithTier(config.DefaultRippleConfig(), nil, perf.TierMedium)
	rs := NewRippleSystem(e)

	style := &components.StyleComponent{
		Props: map[string]string{components.StyleKeyRippleColor: "rgba(0,128,255,0.4)"},
	}
	panel := e.NewNode(ecs.InvalidEntity, "panel", 0, 0, 400, 300)
	e.EM.AddComponent(panel, style)
	surface := e.NewNode(panel, "btn", 10, 10, 100, 50)
	e.MarkSurface(surface, "wave", "", "")
	e.Upgrade(surface)

	rs.Activate(surface, components.Activation{X: 20, Y: 20})

	// 样式变更但缓存未过期：仍用旧颜色
	style.Props[components.StyleKeyRippleColor] = "rgba(255,0,0,0.4)"
	e.State.Advance(0.1)
	rs.Activate(surface, components.Activation{X: 40, Y: 30})
	state := surfaceState(t, e, surface)
	if got := state.Active[1].Gradient.Raw; got != "rgba(0,128,255,0.4)" {
		t.Errorf("缓存有效期内渐变来源 = %q, 期望旧颜色", got)
	}

	// 主动失效后：立即用新颜色
	e.RefreshColors(surface)
	e.State.Advance(0.1)
	rs.Activate(surface, components.Activation{X: 60, Y: 40})
	if got := state.Active[2].Gradient.Raw; got != "rgba(255,0,0,0.4)" {
		t.Errorf("失效后渐变来源 = %q, 期望新颜色", got)
	}
}
