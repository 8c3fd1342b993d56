package game

import (
	"github.com/decker502/ripple/pkg/components"
	"github.com/decker502/ripple/pkg/ecs"
)

// 节点树遍历辅助函数
//
// 树结构通过 NodeComponent 的父子引用表达，这里集中委托解析、
// 样式继承、挂载判断所需的遍历逻辑。遍历带深度上限，
// 防御父链成环的坏数据。

// maxTreeDepth 遍历深度上限
const maxTreeDepth = 256

// IsAttached 判断实体是否仍挂载在文档中（沿父链可达根实体）
func IsAttached(em *ecs.EntityManager, root, id ecs.EntityID) bool {
	cur := id
	for depth := 0; depth < maxTreeDepth; depth++ {
		if cur == ecs.InvalidEntity || !em.Exists(cur) {
			return false
		}
		if cur == root {
			return true
		}
		node, ok := ecs.GetComponent[*components.NodeComponent](em, cur)
		if !ok {
			return false
		}
		cur = node.Parent
	}
	return false
}

// InheritedStyle 沿祖先链查找自定义样式属性
//
// 从实体自身开始向上，返回第一个非空值；到根仍未命中返回 ("", false)。
// 样式组件缺失按"无值"处理，不报错。
func InheritedStyle(em *ecs.EntityManager, id ecs.EntityID, key string) (string, bool) {
	cur := id
	for depth := 0; depth < maxTreeDepth; depth++ {
		if cur == ecs.InvalidEntity || !em.Exists(cur) {
			return "", false
		}
		if style, ok := ecs.GetComponent[*components.StyleComponent](em, cur); ok {
			if v, found := style.Get(key); found {
				return v, true
			}
		}
		node, ok := ecs.GetComponent[*components.NodeComponent](em, cur)
		if !ok {
			return "", false
		}
		cur = node.Parent
	}
	return "", false
}

// FindDescendantByName 在后代中按名称查找携带表面标记的节点
//
// 深度优先。委托属性通过名称指定代理表面，点击区域与
// 视觉表面不一致时使用。
func FindDescendantByName(em *ecs.EntityManager, id ecs.EntityID, name string) ecs.EntityID {
	if name == "" {
		return ecs.InvalidEntity
	}
	node, ok := ecs.GetComponent[*components.NodeComponent](em, id)
	if !ok {
		return ecs.InvalidEntity
	}
	for _, child := range node.Children {
		if !em.Exists(child) {
			continue
		}
		if cn, ok := ecs.GetComponent[*components.NodeComponent](em, child); ok && cn.Name == name {
			if ecs.HasComponent[*components.SurfaceComponent](em, child) {
				return child
			}
		}
		if found := FindDescendantByName(em, child, name); found != ecs.InvalidEntity {
			return found
		}
	}
	return ecs.InvalidEntity
}

// FindAncestor 从实体自身向上返回第一个满足谓词的实体
//
// pred 对每个祖先（含自身）调用一次；返回 InvalidEntity 表示未命中。
func FindAncestor(em *ecs.EntityManager, id ecs.EntityID, pred func(ecs.EntityID) bool) ecs.EntityID {
	cur := id
	for depth := 0; depth < maxTreeDepth; depth++ {
		if cur == ecs.InvalidEntity || !em.Exists(cur) {
			return ecs.InvalidEntity
		}
		if pred(cur) {
			return cur
		}
		node, ok := ecs.GetComponent[*components.NodeComponent](em, cur)
		if !ok {
			return ecs.InvalidEntity
		}
		cur = node.Parent
	}
	return ecs.InvalidEntity
}
