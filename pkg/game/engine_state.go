// Package game 提供波纹引擎的全局状态与对外门面
//
// 进程内只有一个可视文档，快速手势检测、性能档位、全局渐变缓存
// 这类单份状态集中放在 EngineState 里，启动时创建一次，
// 按引用传给需要的系统，不做环境全局变量。
package game

import (
	"math"

	"github.com/decker502/ripple/pkg/colorx"
	"github.com/decker502/ripple/pkg/ecs"
	"github.com/decker502/ripple/pkg/perf"
)

// gestureSample 触摸移动采样
type gestureSample struct {
	t float64 // 采样时刻（引擎时间，秒）
	x float64
	y float64
}

const (
	// maxGestureSamples 滚动历史保留的采样数
	maxGestureSamples = 5
	// gestureSampleAge 采样有效期（秒），过期采样不参与速度计算
	gestureSampleAge = 0.15
	// scrollBurstWindow 两次滚动刻间隔小于该值视为连续滚动（秒）
	scrollBurstWindow = 0.25
)

// EngineState 引擎全局状态
//
// 单线程使用：全部字段只在事件/帧循环线程上读写。
type EngineState struct {
	// now 引擎时间（秒），每帧由宿主推进
	now float64

	// Tier 性能档位，启动时检测一次
	Tier perf.Tier

	// Gradients 全局渐变缓存（按原始颜色字符串共享）
	Gradients *colorx.GradientCache

	// Root 文档根实体
	// "仍挂载在文档中" = 沿父链可达根实体
	Root ecs.EntityID

	// samples 触摸移动采样环（快速手势检测）
	samples []gestureSample

	// lastScrollTick 上一次滚动刻时刻
	lastScrollTick float64
	// scrollCooldownUntil 滚动抑制窗口截止时刻
	scrollCooldownUntil float64
}

// NewEngineState 创建引擎全局状态
func NewEngineState(tier perf.Tier) *EngineState {
	return &EngineState{
		Tier:           tier,
		Gradients:      colorx.NewGradientCache(colorx.ColorCacheTTL * perf.TTLScale(tier)),
		samples:        make([]gestureSample, 0, maxGestureSamples),
		lastScrollTick: -1e9,
	}
}

// Advance 推进引擎时间
func (s *EngineState) Advance(dt float64) {
	s.now += dt
}

// Now 返回当前引擎时间（秒）
func (s *EngineState) Now() float64 {
	return s.now
}

// ColorTTL 返回当前档位下的继承颜色缓存有效期（秒）
func (s *EngineState) ColorTTL() float64 {
	return colorx.ColorCacheTTL * perf.TTLScale(s.Tier)
}

// RecordTouchMove 记录一次触摸移动采样
func (s *EngineState) RecordTouchMove(x, y float64) {
	s.samples = append(s.samples, gestureSample{t: s.now, x: x, y: y})
	if len(s.samples) > maxGestureSamples {
		s.samples = s.samples[len(s.samples)-maxGestureSamples:]
	}
}

// RecordScrollTick 记录一次滚动刻
//
// 短时间内连续的滚动刻打开抑制窗口；孤立的一次滚动不抑制。
// cooldown 为窗口时长（秒）。
func (s *EngineState) RecordScrollTick(cooldown float64) {
	if s.now-s.lastScrollTick < scrollBurstWindow {
		s.scrollCooldownUntil = s.now + cooldown
	}
	s.lastScrollTick = s.now
}

// SuppressRipples 判断当前是否应抑制新波纹
//
// 两种抑制来源：滚动抑制窗口未过；触摸移动速度超过阈值
// （最旧与最新有效采样之间的位移/时间）。动静平息后自然解除。
func (s *EngineState) SuppressRipples(flickVelocity float64) bool {
	if s.now < s.scrollCooldownUntil {
		return true
	}

	// 丢弃过期采样
	valid := s.samples[:0]
	for _, sm := range s.samples {
		if s.now-sm.t <= gestureSampleAge {
			valid = append(valid, sm)
		}
	}
	s.samples = valid

	if len(s.samples) < 2 {
		return false
	}
	first := s.samples[0]
	last := s.samples[len(s.samples)-1]
	dt := last.t - first.t
	if dt <= 0 {
		return false
	}
	v := math.Hypot(last.x-first.x, last.y-first.y) / dt
	return v > flickVelocity
}
