package components

import "github.com/decker502/ripple/pkg/ecs"

// NodeComponent 节点树组件
// 记录界面节点在文档树中的位置（父节点、子节点）和可选名称。
//
// 波纹引擎的"文档"即以根实体为起点的节点树：
// 委托解析、样式继承和"是否仍挂载在文档中"的判断都沿这棵树进行。
type NodeComponent struct {
	// Parent 父节点实体ID，根节点为 InvalidEntity
	Parent ecs.EntityID
	// Children 子节点实体ID列表（绘制顺序，后者在上）
	Children []ecs.EntityID
	// Name 节点名称，委托属性通过名称定位目标子节点，可为空
	Name string
}
