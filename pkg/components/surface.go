package components

// SurfaceComponent 交互表面标记组件
// 持有该组件的节点可以产生波纹反馈。对应标记属性及其可选指令。
type SurfaceComponent struct {
	// Marker 标记属性的原始值
	// 可内嵌颜色指令，如 "c=#2196f3" 或 "wave c: rgba(0,0,0,0.2)"
	Marker string

	// ColorOverride 显式颜色覆盖属性
	// 非空（去空白后）时优先级高于 Marker 内嵌指令
	ColorOverride string

	// DelegateTarget 委托目标名称
	// 非空时，本节点收到的激活转发给指定名称的后代表面，
	// 用于可点击区域与视觉表面不一致的场景
	DelegateTarget string

	// Disabled 是否禁用波纹
	Disabled bool
}
