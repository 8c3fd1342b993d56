package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// RippleSettings 可持久化的引擎设置
// 宿主通过编程接口调整的参数在这里落盘，跨运行保留。
type RippleSettings struct {
	// FadeDuration 淡出时长（秒），0 表示未调整过，使用配置值
	FadeDuration float64 `yaml:"fadeDuration"`
	// TierOverride 性能档位覆盖（"low"/"medium"/"high"），空串表示自动检测
	TierOverride string `yaml:"tierOverride"`
	// HoverHighlight 是否绘制内建按压高亮
	HoverHighlight bool `yaml:"hoverHighlight"`
}

// DefaultRippleSettings 返回默认设置
func DefaultRippleSettings() *RippleSettings {
	return &RippleSettings{
		FadeDuration:   0,
		TierOverride:   "",
		HoverHighlight: true,
	}
}

// SettingsManager 设置管理器
// 负责引擎设置的加载、保存和内存管理。
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *RippleSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "ripple"
	settingsProperty = "settings"
)

// NewSettingsManager 创建设置管理器
//
// gdataManager 为 nil 时进入降级模式：设置仅存在内存中，不持久化。
// 加载失败不是致命错误，使用默认设置继续。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultRippleSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] 设置加载失败: %v（使用默认设置）", err)
	}

	return sm
}

// Load 从 gdata 加载设置
// 降级模式或文件不存在时使用默认设置，返回 nil。
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultRippleSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultRippleSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultRippleSettings()
		return fmt.Errorf("设置读取失败: %w", err)
	}

	var loaded RippleSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultRippleSettings()
		return fmt.Errorf("设置反序列化失败: %w", err)
	}

	sm.settings = &loaded
	return nil
}

// Save 保存设置到 gdata
// 降级模式下不持久化也不报错。
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("设置序列化失败: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("设置保存失败: %w", err)
	}

	return nil
}

// Settings 返回当前设置
func (sm *SettingsManager) Settings() *RippleSettings {
	return sm.settings
}

// SetFadeDuration 记录调整后的淡出时长（秒）
// 仅修改内存中的设置，需调用 Save() 持久化。非正值清除调整。
func (sm *SettingsManager) SetFadeDuration(seconds float64) {
	if seconds <= 0 {
		sm.settings.FadeDuration = 0
		return
	}
	sm.settings.FadeDuration = seconds
}

// SetHoverHighlight 设置内建按压高亮开关
// 仅修改内存中的设置，需调用 Save() 持久化。
func (sm *SettingsManager) SetHoverHighlight(enabled bool) {
	sm.settings.HoverHighlight = enabled
}
