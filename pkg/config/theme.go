package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultThemePaths 主题文件的默认候选路径
var DefaultThemePaths = []string{
	"theme.yaml",
	"config/theme.yaml",
	"assets/config/theme.yaml",
}

// Theme 主题配置
// 按节点名称指定波纹颜色，升级层在表面初始化时套用。
type Theme struct {
	// Colors 节点名称 -> 颜色字符串
	Colors map[string]string `yaml:"colors"`
}

// LoadTheme 按候选路径自动发现并加载主题
//
// path 非空时只尝试该路径。任何失败都静默返回空主题，
// 主题缺失只意味着所有表面走默认颜色解析。
func LoadTheme(path string) *Theme {
	paths := DefaultThemePaths
	if path != "" {
		paths = []string{path}
	}

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		theme := &Theme{}
		if err := yaml.Unmarshal(data, theme); err != nil {
			log.Printf("[Config] 主题解析失败: %s: %v", p, err)
			continue
		}
		log.Printf("[Config] 已加载主题: %s (%d 项颜色)", p, len(theme.Colors))
		return theme
	}

	return &Theme{Colors: map[string]string{}}
}

// ColorFor 查询节点名称对应的主题颜色
func (t *Theme) ColorFor(name string) (string, bool) {
	if t == nil || t.Colors == nil || name == "" {
		return "", false
	}
	v, ok := t.Colors[name]
	return v, ok && v != ""
}
