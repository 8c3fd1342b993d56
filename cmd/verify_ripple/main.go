// verify_ripple 波纹生命周期的无头验证程序
//
// 不启动窗口，按脚本推进引擎时间并打印每一步的阶段转换，
// 用于快速核对状态机行为：
//
//	go run ./cmd/verify_ripple
package main

import (
	"fmt"
	"os"

	"github.com/decker502/ripple/pkg/components"
	"github.com/decker502/ripple/pkg/config"
	"github.com/decker502/ripple/pkg/ecs"
	"github.com/decker502/ripple/pkg/game"
	"github.com/decker502/ripple/pkg/perf"
	"github.com/decker502/ripple/pkg/systems"
)

var failed bool

func check(name string, ok bool) {
	if ok {
		fmt.Printf("✅ %s\n", name)
	} else {
		fmt.Printf("❌ %s\n", name)
		failed = true
	}
}

func phaseName(p components.RipplePhase) string {
	switch p {
	case components.RippleIdle:
		return "空闲"
	case components.RippleExpanding:
		return "扩张"
	case components.RippleFading:
		return "淡出"
	}
	return "未知"
}

func dump(label string, state *components.SurfaceStateComponent) {
	fmt.Printf("  [%s] 活动=%d 池=%d", label, len(state.Active), len(state.Idle))
	for i, n := range state.Active {
		fmt.Printf("  #%d:%s", i, phaseName(n.Phase))
	}
	fmt.Println()
}

func main() {
	fmt.Println("=== 波纹生命周期验证 ===")
	fmt.Println()

	e := game.NewEngineWithTier(config.DefaultRippleConfig(), nil, perf.TierMedium)
	rs := systems.NewRippleSystem(e)
	cfg := e.Config

	surface := e.NewNode(ecs.InvalidEntity, "btn", 0, 0, 200, 80)
	e.MarkSurface(surface, "wave", "", "")

	// 1. 升级
	fmt.Println("--- 升级 ---")
	check("首次升级返回 true", e.Upgrade(surface))
	check("重复升级返回 false（幂等）", !e.Upgrade(surface))
	state, _ := ecs.GetComponent[*components.SurfaceStateComponent](e.EM, surface)

	// 2. 激活与扩张
	fmt.Println("--- 激活 ---")
	check("指针激活成功", rs.Activate(surface, components.Activation{X: 100, Y: 40}))
	dump("激活后", state)
	node := state.Active[0]
	check("节点进入扩张阶段", node.Phase == components.RippleExpanding)
	check("覆盖半径有限且为正", node.Radius > 0)

	// 3. 释放与淡出提前量
	fmt.Println("--- 释放 ---")
	e.State.Advance(0.10)
	rs.Release(surface)
	wantFadeAt := cfg.ExpandDuration - cfg.FadeOffset
	check("释放后已调度淡出", node.FadeScheduled)
	check(fmt.Sprintf("淡出调度时刻 = %.2fs（扩张 %.2fs - 提前量 %.2fs）", node.FadeAt, cfg.ExpandDuration, cfg.FadeOffset),
		node.FadeAt == wantFadeAt)

	e.State.Advance(wantFadeAt) // 越过调度时刻
	rs.Update()
	dump("到达调度时刻", state)
	check("波纹转入淡出", node.Phase == components.RippleFading)

	// 4. 回收
	e.State.Advance(cfg.FadeDuration + 0.01)
	rs.Update()
	dump("淡出完成", state)
	check("节点回收入池", len(state.Active) == 0 && len(state.Idle) == 1)

	// 5. 并发上限与驱逐（中档上限 2）
	fmt.Println("--- 并发上限 ---")
	e.State.Advance(0.1)
	rs.Activate(surface, components.Activation{X: 20, Y: 20})
	first := state.Active[0]
	e.State.Advance(0.1)
	rs.Activate(surface, components.Activation{X: 60, Y: 40})
	e.State.Advance(0.1)
	rs.Activate(surface, components.Activation{X: 120, Y: 60})
	dump("第三次激活后", state)
	check("最旧的波纹被驱逐进淡出", first.Phase == components.RippleFading)
	check("驱逐是淡出而非丢弃", len(state.Active) == 3)

	// 6. 最小激活间隔
	fmt.Println("--- 最小激活间隔 ---")
	check("过快的再次激活被抑制", !rs.Activate(surface, components.Activation{X: 10, Y: 10}))

	// 7. ClearRipples 编程接口
	fmt.Println("--- ClearRipples ---")
	e.ClearRipples(surface)
	rs.Update()
	dump("清除后", state)
	allLeaving := true
	for _, n := range state.Active {
		if n.Phase == components.RippleExpanding {
			allLeaving = false
		}
	}
	check("清除后没有扩张中的波纹", allLeaving)

	// 8. SetFadeDuration 编程接口
	fmt.Println("--- SetFadeDuration ---")
	e.SetFadeDuration(0.5)
	check("淡出时长已更新", e.Config.FadeDuration == 0.5)

	fmt.Println()
	if failed {
		fmt.Println("=== 存在失败项 ===")
		os.Exit(1)
	}
	fmt.Println("=== 全部通过 ===")
}
