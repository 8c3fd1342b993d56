// Package colorx 提供波纹颜色解析和渐变生成
//
// 颜色来源优先级（高到低）：
//  1. 节点显式颜色覆盖属性
//  2. 标记属性值内嵌的 c=<颜色> / c:<颜色> 指令
//  3. 沿祖先链继承的 rippleColor 自定义样式属性
//  4. 均未命中时使用中性默认渐变
package colorx

import (
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// MinStopAlpha 渐变首个色标的最小不透明度
// 即使来源颜色近乎全透明，波纹也要保持可见的下限。
const MinStopAlpha = 0.1

// Stop 渐变色标
type Stop struct {
	Offset float64 // 位置 0.0(圆心) ~ 1.0(边缘)
	R      float64 // 红色通道 0~1
	G      float64 // 绿色通道 0~1
	B      float64 // 蓝色通道 0~1
	A      float64 // 不透明度 0~1
}

// Gradient 径向渐变
// 色标按 Offset 升序排列，渲染时从外向内叠加绘制。
type Gradient struct {
	// Raw 生成该渐变的原始颜色字符串，空串表示默认渐变
	Raw string
	// Stops 色标列表（至少一个）
	Stops []Stop
}

// DefaultGradient 返回中性默认渐变（柔和的白色衰减）
func DefaultGradient() Gradient {
	return Gradient{
		Raw: "",
		Stops: []Stop{
			{Offset: 0.0, R: 1, G: 1, B: 1, A: 0.35},
			{Offset: 0.65, R: 1, G: 1, B: 1, A: 0.18},
			{Offset: 1.0, R: 1, G: 1, B: 1, A: 0.0},
		},
	}
}

// 常用命名颜色表
// go-colorful 只解析十六进制字符串，命名颜色在这里兜底。
var namedColors = map[string]string{
	"white":  "#ffffff",
	"black":  "#000000",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"yellow": "#ffff00",
	"orange": "#ffa500",
	"purple": "#800080",
	"gray":   "#808080",
	"grey":   "#808080",
}

// ResolveGradient 将颜色字符串转换为径向渐变
//
// 函数式颜色（rgb(...)/rgba(...) 等带括号的通道列表）按通道分解，
// 缺省 alpha 视为 1，首个色标不透明度取 max(alpha, MinStopAlpha)。
// 其他字符串（十六进制、命名颜色）按固定不透明度序列生成色标。
// 空串或无法解析时返回默认渐变，绝不报错。
func ResolveGradient(raw string) Gradient {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultGradient()
	}

	if r, g, b, a, ok := parseFunctionColor(raw); ok {
		first := math.Max(a, MinStopAlpha)
		return Gradient{
			Raw: raw,
			Stops: []Stop{
				{Offset: 0.0, R: r, G: g, B: b, A: first},
				{Offset: 0.65, R: r, G: g, B: b, A: first * 0.5},
				{Offset: 1.0, R: r, G: g, B: b, A: 0.0},
			},
		}
	}

	hex := raw
	if mapped, ok := namedColors[strings.ToLower(raw)]; ok {
		hex = mapped
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		// 无法识别的颜色字符串，退回默认渐变
		return DefaultGradient()
	}
	return Gradient{
		Raw: raw,
		Stops: []Stop{
			{Offset: 0.0, R: c.R, G: c.G, B: c.B, A: 0.8},
			{Offset: 0.65, R: c.R, G: c.G, B: c.B, A: 0.4},
			{Offset: 1.0, R: c.R, G: c.G, B: c.B, A: 0.0},
		},
	}
}

// At 采样渐变在 offset (0~1) 处的颜色
// 相邻色标间线性插值；offset 越界时钳制到首末色标。
func (g Gradient) At(offset float64) (r, gr, b, a float64) {
	stops := g.Stops
	if len(stops) == 0 {
		return 0, 0, 0, 0
	}
	if offset <= stops[0].Offset {
		s := stops[0]
		return s.R, s.G, s.B, s.A
	}
	last := stops[len(stops)-1]
	if offset >= last.Offset {
		return last.R, last.G, last.B, last.A
	}
	for i := 1; i < len(stops); i++ {
		if offset <= stops[i].Offset {
			lo, hi := stops[i-1], stops[i]
			span := hi.Offset - lo.Offset
			t := 0.0
			if span > 0 {
				t = (offset - lo.Offset) / span
			}
			return lo.R + (hi.R-lo.R)*t,
				lo.G + (hi.G-lo.G)*t,
				lo.B + (hi.B-lo.B)*t,
				lo.A + (hi.A-lo.A)*t
		}
	}
	return last.R, last.G, last.B, last.A
}

// parseFunctionColor 解析函数式颜色字符串，如 rgba(33, 150, 243, 0.3)
//
// 返回归一化通道值 (0~1) 和 alpha；第四个分量缺省时 alpha=1。
// 通道值支持 0~255 整数或小数，alpha 支持 0~1 小数。
func parseFunctionColor(raw string) (r, g, b, a float64, ok bool) {
	open := strings.IndexByte(raw, '(')
	close := strings.LastIndexByte(raw, ')')
	if open <= 0 || close <= open {
		return 0, 0, 0, 0, false
	}

	parts := strings.Split(raw[open+1:close], ",")
	if len(parts) < 3 || len(parts) > 4 {
		return 0, 0, 0, 0, false
	}

	channels := make([]float64, 0, 4)
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, 0, 0, 0, false
		}
		channels = append(channels, v)
	}

	r = clamp01(channels[0] / 255)
	g = clamp01(channels[1] / 255)
	b = clamp01(channels[2] / 255)
	a = 1.0
	if len(channels) == 4 {
		a = clamp01(channels[3])
	}
	return r, g, b, a, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
