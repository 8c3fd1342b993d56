// Package scheduler 提供帧对齐的批处理队列
//
// 近乎同时的多次激活（多点触控、委托连带触发等）产生的视觉写入
// 统一推迟到下一帧集中执行，一帧只做一次布局写入，避免反复触发
// 布局计算。
package scheduler

import "log"

// FrameScheduler 帧调度器
//
// 单线程使用：Schedule 在事件处理阶段调用，Flush 由宿主在每帧
// Update 中调用一次。同一帧入队的任务按入队顺序各执行一次，
// 单个任务的失败被隔离，不影响后续任务。
type FrameScheduler struct {
	queue   []func()
	pending bool
}

// NewFrameScheduler 创建帧调度器
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{
		queue: make([]func(), 0, 8),
	}
}

// Schedule 追加一个零参任务到队列
// 返回本次调用前是否已有待执行任务（即是否复用了已挂起的帧回调）。
func (s *FrameScheduler) Schedule(task func()) bool {
	wasPending := s.pending
	s.queue = append(s.queue, task)
	s.pending = true
	return wasPending
}

// Pending 是否有待执行任务
func (s *FrameScheduler) Pending() bool {
	return s.pending
}

// Flush 执行队列中的全部任务并清空队列
//
// 任务按入队顺序执行；任务内的 panic 被捕获并记录，
// 不会中断同一帧的其他任务。Flush 执行期间新入队的任务
// 留到下一帧。
func (s *FrameScheduler) Flush() {
	if !s.pending {
		return
	}

	// 摘下当前队列再执行，执行期间的新任务进入新队列
	tasks := s.queue
	s.queue = make([]func(), 0, 8)
	s.pending = false

	for _, task := range tasks {
		runIsolated(task)
	}
}

// runIsolated 在panic隔离下执行单个任务
func runIsolated(task func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[FrameScheduler] 任务执行失败（已隔离）: %v", r)
		}
	}()
	task()
}
