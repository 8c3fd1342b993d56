package components

import "github.com/decker502/ripple/pkg/colorx"

// RipplePhase 波纹节点所处阶段
type RipplePhase int

const (
	// RippleIdle 空闲（在池中待复用）
	RippleIdle RipplePhase = iota
	// RippleExpanding 扩张中
	RippleExpanding
	// RippleFading 淡出中
	RippleFading
)

// RippleNode 单次激活对应的瞬态视觉节点
//
// 生命周期：池中取出 → 扩张 → （释放/到期）→ 淡出 → 回收入池。
// 所有时间字段为引擎时间（秒）。
type RippleNode struct {
	// X, Y 激活点（表面局部坐标，已钳制到表面范围内）
	X float64
	Y float64

	// Radius 覆盖半径
	Radius float64
	// StartDiameter 起始直径
	StartDiameter float64
	// TargetScale 最终缩放系数（最终直径/起始直径）
	TargetScale float64
	// Blur 模糊量（像素），仅配置开启时参与渲染
	Blur float64

	// Gradient 背景渐变
	Gradient colorx.Gradient

	// ExpandDuration 扩张时长（秒）
	ExpandDuration float64
	// FadeDuration 淡出时长（秒）
	FadeDuration float64

	// Phase 当前阶段
	Phase RipplePhase
	// StartedAt 激活时刻
	StartedAt float64
	// FromKeyboard 是否键盘激活（键盘激活按固定提前量调度淡出）
	FromKeyboard bool

	// FadeScheduled 淡出是否已调度
	FadeScheduled bool
	// FadeAt 调度的淡出开始时刻
	FadeAt float64
	// FadeStartedAt 淡出实际开始时刻
	FadeStartedAt float64
	// FadeDeadline 淡出兜底截止时刻
	// 正常完成信号可能因表面在动画中途被移除而丢失，
	// 截止时刻一到无条件回收。
	FadeDeadline float64
}

// Reset 清除全部视觉与时序状态
// 池回收和复用前都会调用，防止上一次激活的残留泄漏到新激活。
func (n *RippleNode) Reset() {
	*n = RippleNode{Phase: RippleIdle}
}
