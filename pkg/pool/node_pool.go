// Package pool 提供表面级波纹节点池
//
// 每个表面维护自己的空闲节点栈，避免重复创建/销毁视觉节点的开销。
// 池容量在回收时动态读取（不在建池时固定），运行中才检出的
// 性能档位对已初始化的表面同样生效。
package pool

import "github.com/decker502/ripple/pkg/components"

// template 共享的惰性模板节点
// 池空时按模板克隆新节点，模板本身从不参与动画。
var template = components.RippleNode{Phase: components.RippleIdle}

// Acquire 从表面的空闲池取出一个节点
//
// 池非空时弹出栈顶；池空时克隆模板新建。
// 取出的节点保证不携带上一次激活的任何残留状态。
func Acquire(state *components.SurfaceStateComponent) *components.RippleNode {
	if n := len(state.Idle); n > 0 {
		node := state.Idle[n-1]
		state.Idle[n-1] = nil // 防止池槽位持有引用
		state.Idle = state.Idle[:n-1]
		node.Reset()
		return node
	}
	node := template
	return &node
}

// Release 将节点归还表面的空闲池
//
// 节点先重置为隐藏/零状态；仅当池未达容量上限时入池，
// 超限的节点直接丢弃交给GC，防止大容量档位切换后池无界增长。
// capacity 为当前性能档位的池容量，回收时读取。
func Release(state *components.SurfaceStateComponent, node *components.RippleNode, capacity int) {
	if node == nil {
		return
	}
	node.Reset()
	if len(state.Idle) < capacity {
		state.Idle = append(state.Idle, node)
	}
}
