package colorx

// gradientEntry 渐变缓存条目
type gradientEntry struct {
	gradient Gradient
	cachedAt float64 // 写入时刻（引擎时间，秒）
}

// GradientCache 全局渐变缓存
//
// 按原始颜色字符串缓存计算出的渐变，多个表面共享同一颜色时
// 不重复生成。短暂读到过期前的旧值无碍，一致性是建议性的。
type GradientCache struct {
	ttl     float64
	entries map[string]gradientEntry
}

// NewGradientCache 创建渐变缓存
// ttl 为条目有效期（秒），低性能档位调用方应传放大后的值。
func NewGradientCache(ttl float64) *GradientCache {
	return &GradientCache{
		ttl:     ttl,
		entries: make(map[string]gradientEntry),
	}
}

// Resolve 返回颜色对应的渐变，优先命中缓存
// now 为引擎时间（秒）。
func (c *GradientCache) Resolve(raw string, now float64) Gradient {
	if e, ok := c.entries[raw]; ok && now-e.cachedAt < c.ttl {
		return e.gradient
	}
	g := ResolveGradient(raw)
	c.entries[raw] = gradientEntry{gradient: g, cachedAt: now}
	return g
}

// Len 返回当前缓存条目数（测试用）
func (c *GradientCache) Len() int {
	return len(c.entries)
}
