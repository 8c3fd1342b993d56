package systems

import (
	"github.com/decker502/ripple/pkg/game"
)

// UpgradeSystem 升级观察系统
//
// 每帧扫描新出现的表面标记并挂载运行时状态，承担帧驱动宿主里
// 变更观察的角色：动态加入文档的节点最迟在下一帧被升级。
// 升级操作幂等，扫描重复执行没有额外效果。
type UpgradeSystem struct {
	engine *game.Engine
}

// NewUpgradeSystem 创建升级观察系统
func NewUpgradeSystem(engine *game.Engine) *UpgradeSystem {
	return &UpgradeSystem{engine: engine}
}

// Update 执行一轮升级扫描
func (s *UpgradeSystem) Update() {
	s.engine.UpgradeAll()
}
