package components

import "github.com/hajimehoshi/ebiten/v2"

// SurfaceStateComponent 表面的波纹运行时状态
//
// 由升级层在表面初始化时挂载，随表面实体一同存续；
// 不同表面的状态互不共享，彼此之间没有任何竞争。
type SurfaceStateComponent struct {
	// Idle 空闲波纹节点池（栈式使用，后进先出）
	Idle []*RippleNode
	// Active 活动中的波纹节点（扩张或淡出），按激活先后排列
	Active []*RippleNode

	// CachedColor 已解析的继承颜色
	CachedColor string
	// HasCachedColor 继承颜色缓存是否有效（含"确认无继承颜色"的缓存）
	HasCachedColor bool
	// CachedColorFound 缓存的查找结果（区分"缓存了空结果"）
	CachedColorFound bool
	// ColorCachedAt 继承颜色缓存写入时刻（引擎时间，秒）
	ColorCachedAt float64

	// LastActivation 最近一次激活时刻，用于表面级最小激活间隔
	// 初始为负值，保证首次激活不被误判为过快
	LastActivation float64

	// Overlay 波纹绘制层（惰性创建）
	// 波纹画在独立的覆盖层上再合成，隔离对兄弟内容的重绘影响。
	Overlay *ebiten.Image
}

// NewSurfaceState 创建表面状态
func NewSurfaceState() *SurfaceStateComponent {
	return &SurfaceStateComponent{
		Idle:           make([]*RippleNode, 0, 2),
		Active:         make([]*RippleNode, 0, 2),
		LastActivation: -1e9,
	}
}

// InvalidateColorCache 使继承颜色缓存失效
func (s *SurfaceStateComponent) InvalidateColorCache() {
	s.HasCachedColor = false
	s.CachedColorFound = false
	s.CachedColor = ""
}
