// Package geometry 提供波纹几何计算
//
// 全部为纯函数：输入激活点与表面尺寸，输出覆盖半径、缩放系数等。
// 任何输入（包括零尺寸表面）都返回有限正值，不产生错误状态。
package geometry

import "math"

const (
	// ExpansionMargin 覆盖半径的扩张余量（乘性系数）
	ExpansionMargin = 0.1

	// MinRadius 覆盖半径下限（像素）
	// 表面未布局（零尺寸）或激活点极端退化时的兜底值。
	MinRadius = 12.0

	// StartDiameter 波纹节点的固定起始直径（像素）
	// 动画通过缩放变换放大节点，而非改变节点实际尺寸，
	// 以便走合成器友好的 transform 路径。
	StartDiameter = 24.0

	// BlurMin / BlurMax 模糊量插值边界（像素）
	// 仅最早期行为保留：按激活点居中程度插值，默认关闭。
	BlurMin = 0.0
	BlurMax = 4.0
)

// CoverageRadius 计算以 (x, y) 为圆心完全覆盖 w×h 矩形所需的半径
//
// 取四角距离与四边方向极值的最大者（角距在数学上不小于边距，
// 但极端纵横比下边方向极值仍一并求值），再按扩张余量和
// 对角线比例放大，最后以 MinRadius 兜底。
//
// 参数为表面局部坐标：x ∈ [0, w], y ∈ [0, h]（调用方负责钳制）。
func CoverageRadius(x, y, w, h float64) float64 {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	// 四角距离
	d1 := math.Hypot(x, y)
	d2 := math.Hypot(w-x, y)
	d3 := math.Hypot(x, h-y)
	d4 := math.Hypot(w-x, h-y)

	// 四边方向极值
	ex := math.Max(x, w-x)
	ey := math.Max(y, h-y)

	dist := d1
	for _, d := range []float64{d2, d3, d4, ex, ey} {
		if d > dist {
			dist = d
		}
	}

	diag := math.Hypot(w, h)
	r := dist*(1+ExpansionMargin) + diag*ExpansionMargin

	if r < MinRadius || math.IsNaN(r) || math.IsInf(r, 0) {
		return MinRadius
	}
	return r
}

// FinalScale 计算波纹节点的最终缩放系数
//
// 返回"最终直径 / 起始直径"，即施加在节点上的变换倍率，
// 不是节点的字面尺寸。startDiameter 非正时按 StartDiameter 处理。
func FinalScale(radius, startDiameter float64) float64 {
	if startDiameter <= 0 {
		startDiameter = StartDiameter
	}
	return (radius * 2) / startDiameter
}

// CenterOffsetRatio 计算激活点偏离表面中心的程度
//
// 返回 0(正中) ~ 1(角落)，零尺寸表面返回 0。
func CenterOffsetRatio(x, y, w, h float64) float64 {
	half := math.Hypot(w, h) / 2
	if half <= 0 {
		return 0
	}
	off := math.Hypot(x-w/2, y-h/2)
	ratio := off / half
	if ratio > 1 {
		return 1
	}
	return ratio
}

// BlurForPoint 按激活点居中程度在 BlurMin/BlurMax 间插值模糊量
//
// 激活点越居中模糊越强。最早期行为，仅在配置开启时参与渲染；
// 默认行为使用固定时长、固定几何的渐变。
func BlurForPoint(x, y, w, h float64) float64 {
	ratio := CenterOffsetRatio(x, y, w, h)
	return BlurMax - (BlurMax-BlurMin)*ratio
}
