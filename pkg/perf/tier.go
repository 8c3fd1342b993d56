// Package perf 提供宿主性能档位检测
//
// 档位是对宿主设备能力的粗分类（低/中/高），用于缩放池容量、
// 并发波纹上限和颜色缓存有效期。进程内只检测一次。
package perf

import (
	"log"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Tier 性能档位
type Tier int

const (
	// TierLow 低性能档位
	TierLow Tier = iota
	// TierMedium 中性能档位
	TierMedium
	// TierHigh 高性能档位
	TierHigh
)

// String 返回档位的可读名称
func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierHigh:
		return "high"
	default:
		return "medium"
	}
}

const (
	lowMemBytes  = 3 << 30 // 低档内存阈值 3GiB
	highMemBytes = 8 << 30 // 高档内存阈值 8GiB
)

// Classify 按逻辑CPU数与总内存划分档位
//
// 规则：CPU < 4 或内存 < 3GiB 判低档；CPU ≥ 8 且内存 ≥ 8GiB 判高档；
// 其余为中档。纯函数，便于测试。
func Classify(cpus int, totalMem uint64) Tier {
	if cpus < 4 || totalMem < lowMemBytes {
		return TierLow
	}
	if cpus >= 8 && totalMem >= highMemBytes {
		return TierHigh
	}
	return TierMedium
}

// Detect 探测宿主性能档位
//
// 探测失败不报错，退回中档（探测只影响视觉预算，不影响正确性）。
func Detect() Tier {
	cpus, err := cpu.Counts(true)
	if err != nil {
		log.Printf("[Perf] CPU探测失败: %v（按中档处理）", err)
		return TierMedium
	}

	v, err := mem.VirtualMemory()
	if err != nil {
		log.Printf("[Perf] 内存探测失败: %v（按中档处理）", err)
		return TierMedium
	}

	tier := Classify(cpus, v.Total)
	log.Printf("[Perf] 性能档位: %s (CPU=%d, 内存=%dMiB)", tier, cpus, v.Total>>20)
	return tier
}

// PoolCap 返回档位对应的池容量与表面并发波纹上限
// 低档 1，其余 2。
func PoolCap(t Tier) int {
	if t == TierLow {
		return 1
	}
	return 2
}

// TTLScale 返回档位对应的颜色缓存有效期放大倍数
// 低档下祖先链样式读取代价更高，缓存有效期放大4倍。
func TTLScale(t Tier) float64 {
	if t == TierLow {
		return 4
	}
	return 1
}
