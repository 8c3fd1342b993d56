// Package config 提供波纹引擎的外部配置加载
//
// 配置文件是可选的：按候选路径顺序逐个尝试，全部失败时静默保留
// 默认值，绝不让配置问题影响宿主程序。
package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCandidatePaths 配置文件的默认候选路径（按顺序尝试）
var DefaultCandidatePaths = []string{
	"ripple.yaml",
	"config/ripple.yaml",
	"assets/config/ripple.yaml",
}

// RippleConfig 波纹引擎配置
// 对应 ripple.yaml 的结构，全部字段可省略，省略即用默认值。
type RippleConfig struct {
	// ExpandDuration 扩张时长（秒）
	ExpandDuration float64 `yaml:"expandDuration"`
	// FadeDuration 淡出时长（秒）
	FadeDuration float64 `yaml:"fadeDuration"`
	// FadeOffset 淡出提前量（秒）
	// 释放信号到达时，淡出开始时刻取 max(0, 扩张时长-提前量)（自激活起算）
	FadeOffset float64 `yaml:"fadeOffset"`
	// KeyReleaseLead 键盘激活的淡出提前量（秒）
	// 键盘激活没有与视觉释放对应的抬起事件，按固定提前量调度淡出
	KeyReleaseLead float64 `yaml:"keyReleaseLead"`
	// MinInterval 同一表面两次激活的最小间隔（秒）
	MinInterval float64 `yaml:"minInterval"`
	// MaxActive 表面并发波纹上限覆盖值，0 表示按性能档位取值
	MaxActive int `yaml:"maxActive"`
	// FlickVelocity 快速手势判定阈值（像素/秒）
	FlickVelocity float64 `yaml:"flickVelocity"`
	// ScrollCooldown 滚动后的波纹抑制窗口（秒）
	ScrollCooldown float64 `yaml:"scrollCooldown"`
	// EnableBlur 启用按激活点居中程度插值的模糊（早期行为，默认关闭）
	EnableBlur bool `yaml:"enableBlur"`
	// DisableHoverHighlight 抑制内建的按压高亮（对应原生点击高亮的关闭开关）
	DisableHoverHighlight bool `yaml:"disableHoverHighlight"`
	// ThemePath 主题文件路径，空串时按默认候选路径自动发现
	ThemePath string `yaml:"themePath"`
}

// DefaultRippleConfig 返回默认配置
func DefaultRippleConfig() *RippleConfig {
	return &RippleConfig{
		ExpandDuration: 0.45,
		FadeDuration:   0.3,
		FadeOffset:     0.15,
		KeyReleaseLead: 0.1,
		MinInterval:    0.08,
		MaxActive:      0,
		FlickVelocity:  800,
		ScrollCooldown: 0.15,
	}
}

// LoadRippleConfig 按候选路径加载配置
//
// paths 为空时使用 DefaultCandidatePaths。逐个路径尝试读取并解析，
// 第一个成功的生效；某个路径失败则尝试下一个；全部失败时静默
// 返回默认配置。省略的字段保持默认值。
func LoadRippleConfig(paths ...string) *RippleConfig {
	if len(paths) == 0 {
		paths = DefaultCandidatePaths
	}

	cfg := DefaultRippleConfig()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue // 候选路径不存在是常态，继续下一个
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Printf("[Config] 配置解析失败: %s: %v（尝试下一候选）", path, err)
			cfg = DefaultRippleConfig() // 丢弃半解析结果
			continue
		}
		log.Printf("[Config] 已加载配置: %s", path)
		cfg.sanitize()
		return cfg
	}

	cfg.sanitize()
	return cfg
}

// sanitize 修正非法字段值
// 非正的时长回退默认值，负的上限归零（表示按档位取值）。
func (c *RippleConfig) sanitize() {
	def := DefaultRippleConfig()
	if c.ExpandDuration <= 0 {
		c.ExpandDuration = def.ExpandDuration
	}
	if c.FadeDuration <= 0 {
		c.FadeDuration = def.FadeDuration
	}
	if c.FadeOffset < 0 {
		c.FadeOffset = def.FadeOffset
	}
	if c.KeyReleaseLead < 0 {
		c.KeyReleaseLead = def.KeyReleaseLead
	}
	if c.MinInterval < 0 {
		c.MinInterval = def.MinInterval
	}
	if c.MaxActive < 0 {
		c.MaxActive = 0
	}
	if c.FlickVelocity <= 0 {
		c.FlickVelocity = def.FlickVelocity
	}
	if c.ScrollCooldown < 0 {
		c.ScrollCooldown = def.ScrollCooldown
	}
}
