package game

import (
	"log"

	"github.com/decker502/ripple/pkg/components"
	"github.com/decker502/ripple/pkg/config"
	"github.com/decker502/ripple/pkg/ecs"
	"github.com/decker502/ripple/pkg/perf"
)

// Engine 波纹引擎门面
//
// 面向宿主程序的编程接口：建树、升级表面、强制清除波纹、
// 调整淡出时长。各系统持有同一份 EntityManager/EngineState 引用，
// 这里的操作下一帧即被系统观察到。
type Engine struct {
	EM       *ecs.EntityManager
	State    *EngineState
	Config   *config.RippleConfig
	Settings *SettingsManager
	Theme    *config.Theme
}

// NewEngine 创建引擎（性能档位自动检测）
//
// settings 可为 nil（不持久化）。持久化设置中的调整值
// （淡出时长、档位覆盖）在这里套用到配置上。
func NewEngine(cfg *config.RippleConfig, settings *SettingsManager) *Engine {
	return NewEngineWithTier(cfg, settings, perf.Detect())
}

// NewEngineWithTier 以指定性能档位创建引擎
// 测试和宿主强制指定档位时使用。
func NewEngineWithTier(cfg *config.RippleConfig, settings *SettingsManager, tier perf.Tier) *Engine {
	if cfg == nil {
		cfg = config.DefaultRippleConfig()
	}
	if settings != nil {
		switch settings.Settings().TierOverride {
		case "low":
			tier = perf.TierLow
		case "medium":
			tier = perf.TierMedium
		case "high":
			tier = perf.TierHigh
		}
		if d := settings.Settings().FadeDuration; d > 0 {
			cfg.FadeDuration = d
		}
		if !settings.Settings().HoverHighlight {
			cfg.DisableHoverHighlight = true
		}
	}

	em := ecs.NewEntityManager()
	state := NewEngineState(tier)

	e := &Engine{
		EM:       em,
		State:    state,
		Config:   cfg,
		Settings: settings,
		Theme:    config.LoadTheme(cfg.ThemePath),
	}

	// 建立文档根节点
	root := em.CreateEntity()
	em.AddComponent(root, &components.NodeComponent{Parent: ecs.InvalidEntity})
	state.Root = root

	return e
}

// NewNode 在父节点下创建一个界面节点
// parent 为 InvalidEntity 时挂到文档根下。
func (e *Engine) NewNode(parent ecs.EntityID, name string, x, y, w, h float64) ecs.EntityID {
	if parent == ecs.InvalidEntity {
		parent = e.State.Root
	}

	id := e.EM.CreateEntity()
	e.EM.AddComponent(id, &components.NodeComponent{Parent: parent, Name: name})
	e.EM.AddComponent(id, &components.BoundsComponent{X: x, Y: y, Width: w, Height: h})

	if pn, ok := ecs.GetComponent[*components.NodeComponent](e.EM, parent); ok {
		pn.Children = append(pn.Children, id)
	}
	return id
}

// MarkSurface 将节点标记为交互表面
// 主题中按名称配置的颜色在这里套用为覆盖属性（节点自身未覆盖时）。
func (e *Engine) MarkSurface(id ecs.EntityID, marker, colorOverride, delegateTarget string) {
	if colorOverride == "" {
		if node, ok := ecs.GetComponent[*components.NodeComponent](e.EM, id); ok {
			if c, found := e.Theme.ColorFor(node.Name); found {
				colorOverride = c
			}
		}
	}
	e.EM.AddComponent(id, &components.SurfaceComponent{
		Marker:         marker,
		ColorOverride:  colorOverride,
		DelegateTarget: delegateTarget,
	})
}

// Upgrade 升级单个表面（挂载运行时状态）
//
// 幂等：已升级的表面重复调用无额外效果。
// 返回本次调用是否执行了升级。
func (e *Engine) Upgrade(id ecs.EntityID) bool {
	if !ecs.HasComponent[*components.SurfaceComponent](e.EM, id) {
		return false
	}
	if ecs.HasComponent[*components.SurfaceStateComponent](e.EM, id) {
		return false
	}
	e.EM.AddComponent(id, components.NewSurfaceState())
	return true
}

// UpgradeAll 全文档升级扫描
// 返回本次新升级的表面数。
func (e *Engine) UpgradeAll() int {
	upgraded := 0
	for _, id := range ecs.GetEntitiesWith1[*components.SurfaceComponent](e.EM) {
		if e.Upgrade(id) {
			upgraded++
		}
	}
	if upgraded > 0 {
		log.Printf("[Engine] 升级扫描完成: 新升级 %d 个表面", upgraded)
	}
	return upgraded
}

// ClearRipples 强制清除表面上的活动波纹
//
// 扩张中的节点立即转入淡出调度（下一帧由状态机执行），
// 已在淡出的节点不受影响。绝不静默丢弃。
func (e *Engine) ClearRipples(id ecs.EntityID) {
	state, ok := ecs.GetComponent[*components.SurfaceStateComponent](e.EM, id)
	if !ok {
		return
	}
	now := e.State.Now()
	for _, node := range state.Active {
		if node.Phase == components.RippleExpanding && (!node.FadeScheduled || node.FadeAt > now) {
			node.FadeScheduled = true
			node.FadeAt = now
		}
	}
}

// RefreshColors 使表面的继承颜色缓存立即失效
//
// 继承颜色按有效期缓存在表面状态上；宿主修改祖先节点的样式后
// 调用本方法，下一次激活即重新解析，不必等缓存过期。
func (e *Engine) RefreshColors(id ecs.EntityID) {
	if state, ok := ecs.GetComponent[*components.SurfaceStateComponent](e.EM, id); ok {
		state.InvalidateColorCache()
	}
}

// SetFadeDuration 调整淡出时长（秒）
// 非正值忽略。设置管理器存在时同步持久化。
func (e *Engine) SetFadeDuration(seconds float64) {
	if seconds <= 0 {
		return
	}
	e.Config.FadeDuration = seconds
	if e.Settings != nil {
		e.Settings.SetFadeDuration(seconds)
		if err := e.Settings.Save(); err != nil {
			log.Printf("[Engine] 淡出时长持久化失败: %v", err)
		}
	}
}

// MaxActive 返回表面并发波纹上限
// 配置覆盖值优先，否则按性能档位取值。
func (e *Engine) MaxActive() int {
	if e.Config.MaxActive > 0 {
		return e.Config.MaxActive
	}
	return perf.PoolCap(e.State.Tier)
}
